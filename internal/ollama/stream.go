// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"
)

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader parses a newline-delimited JSON chat stream.
type StreamReader struct {
	reader *bufio.Reader
	// PERFORMANCE: strings.Builder avoids quadratic allocations
	accumulator strings.Builder
	chunkCount  int
	model       string
}

// NewStreamReader wraps an io.Reader carrying an NDJSON chat response.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{
		reader: bufio.NewReader(r),
	}
}

// Process reads the stream and calls the callback for each chunk, in order.
// Blocks until the final chunk, EOF, or context cancellation.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			chunk, err := s.readChunk()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}

			if chunk != nil {
				callback(*chunk)
				if chunk.Done {
					return nil
				}
			}
		}
	}
}

// readChunk reads and parses a single stream line. Malformed lines are
// skipped rather than aborting a generation that is otherwise healthy.
func (s *StreamReader) readChunk() (*StreamChunk, error) {
	line, err := s.reader.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) == 0 {
			return nil, io.EOF
		}
		// Process a trailing unterminated line before surfacing the error.
		if len(line) == 0 {
			return nil, err
		}
	}

	if len(strings.TrimSpace(string(line))) == 0 {
		return nil, nil
	}

	var response struct {
		Model   string `json:"model"`
		Message struct {
			Role      string     `json:"role"`
			Content   string     `json:"content"`
			ToolCalls []ToolCall `json:"tool_calls,omitempty"`
		} `json:"message"`
		Done            bool   `json:"done"`
		DoneReason      string `json:"done_reason,omitempty"`
		TotalDuration   int64  `json:"total_duration,omitempty"`
		PromptEvalCount int    `json:"prompt_eval_count,omitempty"`
		EvalCount       int    `json:"eval_count,omitempty"`
		EvalDuration    int64  `json:"eval_duration,omitempty"`
	}
	if err := json.Unmarshal(line, &response); err != nil {
		return nil, nil
	}

	if response.Model != "" {
		s.model = response.Model
	}

	if response.Message.Content != "" {
		s.accumulator.WriteString(response.Message.Content)
	}
	s.chunkCount++

	chunk := &StreamChunk{
		Content:    response.Message.Content,
		ToolCalls:  response.Message.ToolCalls,
		Model:      s.model,
		Done:       response.Done,
		DoneReason: response.DoneReason,
	}

	if response.Done {
		chunk.TotalDuration = time.Duration(response.TotalDuration)
		chunk.EvalDuration = time.Duration(response.EvalDuration)
		chunk.PromptTokens = response.PromptEvalCount
		chunk.CompletionTokens = response.EvalCount
	}

	return chunk, nil
}

// Accumulated returns all content received so far.
func (s *StreamReader) Accumulated() string {
	return s.accumulator.String()
}

// ChunkCount returns the number of chunks parsed.
func (s *StreamReader) ChunkCount() int {
	return s.chunkCount
}

// Model returns the model name reported by the stream.
func (s *StreamReader) Model() string {
	return s.model
}
