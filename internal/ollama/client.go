// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError is an error from the Ollama client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeConnection
	ErrTypeInvalidResponse
	ErrTypeThrottled
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning     = &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running"}
	ErrTimeout        = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrModelNotFound  = &ClientError{Type: ErrTypeModelNotFound, Message: "model not found"}
	ErrTitleThrottled = &ClientError{Type: ErrTypeThrottled, Message: "title generation rate limit reached"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Ollama client.
type ClientConfig struct {
	// BaseURL is the Ollama API base URL (default: http://127.0.0.1:11434)
	// Note: explicit IPv4 instead of localhost to avoid IPv6 resolution
	// issues on Windows
	BaseURL string

	// Timeout for non-streaming requests (default: 30s)
	Timeout time.Duration

	// ChatModel used for conversation turns (default: "qwen2.5:7b")
	ChatModel string

	// TitleModel used for card title generation; falls back to ChatModel
	TitleModel string

	// TitleInterval is the minimum spacing between title generations
	// (default: 10s). Requests arriving faster are rejected with
	// ErrTitleThrottled rather than queued.
	TitleInterval time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:11434",
		Timeout:       30 * time.Second,
		ChatModel:     "qwen2.5:7b",
		TitleInterval: 10 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the Ollama API. Safe for concurrent use.
type Client struct {
	config       *ClientConfig
	httpClient   *http.Client
	titleLimiter *rate.Limiter
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client, filling defaults for zero values.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:11434"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.ChatModel == "" {
		config.ChatModel = "qwen2.5:7b"
	}
	if config.TitleInterval == 0 {
		config.TitleInterval = 10 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		titleLimiter: rate.NewLimiter(rate.Every(config.TitleInterval), 1),
	}
}

// Config returns the client configuration.
func (c *Client) Config() *ClientConfig {
	return c.config
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that Ollama is reachable.
func (c *Client) CheckRunning(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from Ollama: " + resp.Status,
		}
	}

	return nil
}

// =============================================================================
// MODEL OPERATIONS
// =============================================================================

// ListModels retrieves the installed models.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "failed to list models: " + resp.Status,
		}
	}

	var result ListModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Models, nil
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// StreamCallback is called for each chunk received during streaming.
type StreamCallback func(chunk StreamChunk)

// ChatStream sends a streaming chat request and calls the callback for each
// chunk, synchronously and in order. Cancelling the context aborts the
// generation server-side by closing the connection.
func (c *Client) ChatStream(ctx context.Context, model string, messages []Message, callback StreamCallback) error {
	if model == "" {
		model = c.config.ChatModel
	}

	reqBody := ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	// No client timeout while streaming; lifetime is owned by the context.
	streamClient := &http.Client{}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := streamClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return ErrTimeout
		}
		return ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrModelNotFound
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return &ClientError{
				Type:    ErrTypeInvalidResponse,
				Message: apiErr.Error,
			}
		}
		return &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "stream request failed: " + resp.Status,
		}
	}

	reader := NewStreamReader(resp.Body)
	return reader.Process(ctx, callback)
}

// ChatStreamChan runs ChatStream in a goroutine and returns a channel of
// chunks. The channel is closed when streaming completes; errors arrive as
// a terminal chunk with Error set.
func (c *Client) ChatStreamChan(ctx context.Context, model string, messages []Message) <-chan StreamChunk {
	ch := make(chan StreamChunk)

	go func() {
		defer close(ch)

		err := c.ChatStream(ctx, model, messages, func(chunk StreamChunk) {
			select {
			case ch <- chunk:
			case <-ctx.Done():
			}
		})

		if err != nil {
			select {
			case ch <- StreamChunk{Error: err, Done: true}:
			case <-ctx.Done():
			}
		}
	}()

	return ch
}

// =============================================================================
// TITLE GENERATION
// =============================================================================

// titleSystemPrompt steers the model toward short plain-text titles.
const titleSystemPrompt = "You title chat conversations. Reply with a title of at most six words. No quotes, no punctuation at the end, no explanation."

// GenerateTitle asks the model for a short title summarizing the given
// conversation excerpt. Calls arriving faster than the configured interval
// return ErrTitleThrottled; callers treat that as "keep the current title".
func (c *Client) GenerateTitle(ctx context.Context, excerpt string) (string, error) {
	if !c.titleLimiter.Allow() {
		return "", ErrTitleThrottled
	}

	model := c.config.TitleModel
	if model == "" {
		model = c.config.ChatModel
	}

	reqBody := GenerateRequest{
		Model:  model,
		Prompt: excerpt,
		System: titleSystemPrompt,
		Stream: false,
		Options: &Options{
			Temperature: 0.3,
			NumPredict:  32,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrModelNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "title request failed: " + resp.Status,
		}
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	title := strings.TrimSpace(strings.Trim(strings.TrimSpace(result.Response), `"`))
	if title == "" {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "empty title from model"}
	}
	return title, nil
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

// IsModelNotFound reports whether the error is a missing-model error.
func IsModelNotFound(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeModelNotFound
}

// IsNotRunning reports whether the error indicates Ollama is unreachable.
func IsNotRunning(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeNotRunning
}

// IsThrottled reports whether the error is a title rate-limit rejection.
func IsThrottled(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeThrottled
}
