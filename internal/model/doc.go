// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for card trees and messages.
//
// This package defines the core domain types used throughout the application
// for representing branching conversations: a Project owns a forest of
// CardNode values, each card holds an ordered message history, and a
// Message is a tagged variant (plain text or a tool-use trace).
//
// # Key Types
//
//   - Project: Container for a card forest plus the current focus card
//   - CardNode: One conversational unit, positioned in the tree by ParentID
//   - Message: Single message with role, kind, content, and optional tool calls
//   - ToolCall: One structured sub-invocation inside a tool-use message
//
// # Usage
//
// Create a card and append an exchange:
//
//	card := model.NewCardNode("", 0)
//	card.AppendMessage(model.NewUserMessage("Hello!"))
//	card.AppendMessage(model.NewAssistantMessage())
package model
