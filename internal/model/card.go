// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for card trees and messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CARD NODE TYPE
// =============================================================================

// CardNode is one conversational unit in the tree. Each card holds an
// ordered message history and is positioned in the tree by ParentID; an
// empty ParentID marks a root. Children ids are kept in creation order and
// Depth caches the distance from the root (root depth = 0).
//
// Cards are never re-parented after creation; ancestry only changes when a
// subtree is deleted wholesale.
type CardNode struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Tree position
	ParentID string   `json:"parent_id,omitempty"`
	Children []string `json:"children,omitempty"`
	Depth    int      `json:"depth"`

	// Messages
	Messages []*Message `json:"messages"`
}

// NewCardNode creates a card with a generated ID at the given tree position.
func NewCardNode(parentID string, depth int) *CardNode {
	now := time.Now()
	return &CardNode{
		ID:        "card_" + uuid.NewString(),
		ParentID:  parentID,
		Depth:     depth,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AppendMessage adds a message to the card. Re-appending a message with a
// previously seen ID is a no-op, guarding against duplicate delivery from a
// retried stream. Returns true if the message was added.
func (c *CardNode) AppendMessage(msg *Message) bool {
	if msg == nil {
		return false
	}
	for _, existing := range c.Messages {
		if existing.ID == msg.ID {
			return false
		}
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.updateTitle()
	return true
}

// MessageByID returns a message by its ID, or nil.
func (c *CardNode) MessageByID(id string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// PatchMessage merges a partial update into an existing message. Unknown
// message ids are a no-op. Returns true if a message was patched.
func (c *CardNode) PatchMessage(msgID string, patch MessagePatch) bool {
	msg := c.MessageByID(msgID)
	if msg == nil {
		return false
	}
	msg.Apply(patch)
	c.UpdatedAt = time.Now()
	return true
}

// LastMessage returns the most recent message, or nil if empty.
func (c *CardNode) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastAssistantMessage returns the most recent assistant message, or nil.
func (c *CardNode) LastAssistantMessage() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i]
		}
	}
	return nil
}

// MessageCount returns the number of messages.
func (c *CardNode) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if the card has no messages.
func (c *CardNode) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// CHILD BOOKKEEPING
// =============================================================================

// AddChild appends a child id in creation order. Duplicate ids are ignored.
func (c *CardNode) AddChild(id string) {
	for _, existing := range c.Children {
		if existing == id {
			return
		}
	}
	c.Children = append(c.Children, id)
	c.UpdatedAt = time.Now()
}

// RemoveChild severs a child reference. Unknown ids are a no-op.
func (c *CardNode) RemoveChild(id string) {
	for i, existing := range c.Children {
		if existing == id {
			c.Children = append(c.Children[:i], c.Children[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// ChildIndex returns the position of a child id, or -1.
func (c *CardNode) ChildIndex(id string) int {
	for i, existing := range c.Children {
		if existing == id {
			return i
		}
	}
	return -1
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle auto-generates a title from the first user message if not set.
// An asynchronous title regeneration may later replace it with a model
// generated summary via SetTitle.
func (c *CardNode) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			c.Title = msg.Preview(50)
			return
		}
	}
}

// SetTitle replaces the card title.
func (c *CardNode) SetTitle(title string) {
	c.Title = title
	c.UpdatedAt = time.Now()
}

// DisplayTitle returns the card title or a default.
func (c *CardNode) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New Card"
}

// Preview returns a short preview of the card's latest user message.
func (c *CardNode) Preview() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i].Preview(100)
		}
	}
	if len(c.Messages) > 0 {
		return c.Messages[0].Preview(100)
	}
	return "Empty card"
}

// Clone creates a deep copy of the card.
func (c *CardNode) Clone() *CardNode {
	clone := &CardNode{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ParentID:  c.ParentID,
		Depth:     c.Depth,
		Messages:  make([]*Message, len(c.Messages)),
	}
	if len(c.Children) > 0 {
		clone.Children = append([]string(nil), c.Children...)
	}
	for i, msg := range c.Messages {
		clone.Messages[i] = msg.Clone()
	}
	return clone
}
