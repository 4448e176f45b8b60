// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import "time"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Message is a chat message sent to or received from the model.
type Message struct {
	Role      string     `json:"role"` // "user", "assistant", "system", "tool"
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	Function ToolFunction `json:"function"`
}

// ToolFunction carries the function name and its arguments.
type ToolFunction struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ChatRequest is the request body for /api/chat.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  *Options  `json:"options,omitempty"`
}

// GenerateRequest is the request body for /api/generate.
type GenerateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	System  string   `json:"system,omitempty"`
	Options *Options `json:"options,omitempty"`
}

// Options holds model inference parameters.
type Options struct {
	Temperature float64  `json:"temperature,omitempty"`
	TopK        int      `json:"top_k,omitempty"`
	TopP        float64  `json:"top_p,omitempty"`
	NumCtx      int      `json:"num_ctx,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
	Stop        []string `json:"stop,omitempty"`
	Seed        int      `json:"seed,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// GenerateResponse is the (non-streaming) response from /api/generate.
type GenerateResponse struct {
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
	Response   string    `json:"response"`
	Done       bool      `json:"done"`
	DoneReason string    `json:"done_reason,omitempty"`
}

// ModelInfo describes one installed model, from /api/tags.
type ModelInfo struct {
	Name       string    `json:"name"`
	ModifiedAt time.Time `json:"modified_at"`
	Size       int64     `json:"size"`
	Digest     string    `json:"digest"`
}

// ListModelsResponse is the response from /api/tags.
type ListModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// =============================================================================
// STREAMING TYPES
// =============================================================================

// StreamChunk is one parsed line of a streaming chat response.
type StreamChunk struct {
	Content   string
	ToolCalls []ToolCall
	Model     string

	// Done marks the final chunk; the timing and token fields below are
	// only populated there.
	Done       bool
	DoneReason string

	TotalDuration time.Duration
	EvalDuration  time.Duration

	PromptTokens     int
	CompletionTokens int

	// Error is set on a synthetic terminal chunk when streaming fails.
	Error error
}

// apiError is the error body Ollama returns on non-200 responses.
type apiError struct {
	Error string `json:"error"`
}

// =============================================================================
// HELPERS
// =============================================================================

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

// NewToolResultMessage creates a tool result message.
func NewToolResultMessage(content string) Message {
	return Message{Role: "tool", Content: content}
}

// HasToolCalls reports whether the message carries tool calls.
func (m *Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}
