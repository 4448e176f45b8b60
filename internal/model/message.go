// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for card trees and messages.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE KIND
// =============================================================================

// MessageKind is the variant tag of a message: a plain text message or one
// carrying a sequence of structured tool/reasoning sub-calls.
type MessageKind string

const (
	KindText    MessageKind = "text"
	KindToolUse MessageKind = "tool_use"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a card's history.
//
// Message is a tagged variant: Kind selects which fields are meaningful.
// KindText messages carry Content (and optionally Attachments); KindToolUse
// messages additionally carry an ordered ToolCalls trace interleaved with
// reasoning text in Content.
type Message struct {
	// Identity
	ID        string      `json:"id"`
	Role      Role        `json:"role"`
	Kind      MessageKind `json:"kind"`
	Timestamp time.Time   `json:"timestamp"`

	// Content
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`

	// Tool/reasoning trace (KindToolUse only)
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// Streaming state (not persisted)
	// PERFORMANCE: strings.Builder avoids quadratic allocations during streaming
	IsStreaming   bool            `json:"-"`
	streamContent strings.Builder `json:"-"`
}

// Attachment references a file attached to a user message. The core only
// carries the reference; upload and preview handling live outside it.
type Attachment struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type,omitempty"`
	Size      int64  `json:"size,omitempty"`
}

// ToolCallStatus tracks the lifecycle of a single tool call.
type ToolCallStatus string

const (
	ToolCallRunning ToolCallStatus = "running"
	ToolCallDone    ToolCallStatus = "done"
	ToolCallFailed  ToolCallStatus = "failed"
)

// ToolCall is one structured sub-invocation inside a tool-use message.
type ToolCall struct {
	Name   string         `json:"name"`
	Input  string         `json:"input,omitempty"`
	Result string         `json:"result,omitempty"`
	Status ToolCallStatus `json:"status"`
}

// NewMessage creates a new text message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Kind:      KindText,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new streaming assistant message.
func NewAssistantMessage() *Message {
	return &Message{
		ID:          "msg_" + uuid.NewString(),
		Role:        RoleAssistant,
		Kind:        KindText,
		Timestamp:   time.Now(),
		IsStreaming: true,
	}
}

// =============================================================================
// MESSAGE PATCH
// =============================================================================

// MessagePatch is a partial update merged into an existing message, used for
// incremental streaming accumulation. Zero-value fields are skipped.
type MessagePatch struct {
	// AppendText is appended to the message content.
	AppendText string

	// SetContent replaces the content when non-nil. Used for the synthetic
	// failure text written on stream errors.
	SetContent *string

	// ToolCall merges one tool call fragment at ToolCallIndex: a fresh index
	// appends a call, an existing index accumulates input/result text and
	// updates status. Merging a tool call promotes the message to KindToolUse.
	ToolCall      *ToolCall
	ToolCallIndex int

	// Finalize marks the end of streaming; accumulated content is committed.
	Finalize bool
}

// Apply merges the patch into the message.
func (m *Message) Apply(patch MessagePatch) {
	if patch.AppendText != "" {
		m.AppendText(patch.AppendText)
	}

	if patch.SetContent != nil {
		m.Content = *patch.SetContent
		m.streamContent.Reset()
	}

	if patch.ToolCall != nil {
		m.mergeToolCall(patch.ToolCallIndex, *patch.ToolCall)
	}

	if patch.Finalize {
		m.FinalizeStream()
	}
}

// mergeToolCall accumulates a tool call fragment at the given index.
func (m *Message) mergeToolCall(index int, tc ToolCall) {
	if index < 0 {
		return
	}
	m.Kind = KindToolUse

	// Grow the slice up to and including index
	for len(m.ToolCalls) <= index {
		m.ToolCalls = append(m.ToolCalls, ToolCall{Status: ToolCallRunning})
	}

	existing := &m.ToolCalls[index]
	if tc.Name != "" {
		existing.Name = tc.Name
	}
	existing.Input += tc.Input
	existing.Result += tc.Result
	if tc.Status != "" {
		existing.Status = tc.Status
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// AppendText appends streamed text to the message.
func (m *Message) AppendText(text string) {
	if m.IsStreaming {
		m.streamContent.WriteString(text)
		return
	}
	m.Content += text
}

// FinalizeStream commits accumulated streamed content.
func (m *Message) FinalizeStream() {
	if !m.IsStreaming {
		return
	}
	m.Content += m.streamContent.String()
	m.streamContent.Reset()
	m.IsStreaming = false
}

// DisplayContent returns the content to display (streaming or final).
func (m *Message) DisplayContent() string {
	if m.IsStreaming {
		return m.Content + m.streamContent.String()
	}
	return m.Content
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	content := strings.ReplaceAll(m.DisplayContent(), "\n", " ")
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content and no tool calls.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0 && m.streamContent.Len() == 0 && len(m.ToolCalls) == 0
}

// Clone returns a copy of the message. Streamed-but-uncommitted content is
// folded into the copy's Content.
func (m *Message) Clone() *Message {
	clone := &Message{
		ID:          m.ID,
		Role:        m.Role,
		Kind:        m.Kind,
		Timestamp:   m.Timestamp,
		Content:     m.DisplayContent(),
		IsStreaming: m.IsStreaming,
	}
	if len(m.Attachments) > 0 {
		clone.Attachments = append([]Attachment(nil), m.Attachments...)
	}
	if len(m.ToolCalls) > 0 {
		clone.ToolCalls = append([]ToolCall(nil), m.ToolCalls...)
	}
	return clone
}
