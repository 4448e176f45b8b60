// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for card trees and messages.
package model

import (
	"errors"
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessageStreamingAccumulation(t *testing.T) {
	msg := NewAssistantMessage()
	if !msg.IsStreaming {
		t.Fatal("assistant messages start streaming")
	}

	msg.AppendText("Hello")
	msg.AppendText(", world")
	if got := msg.DisplayContent(); got != "Hello, world" {
		t.Errorf("DisplayContent() = %q during streaming", got)
	}
	if msg.Content != "" {
		t.Error("content commits only on finalize")
	}

	msg.FinalizeStream()
	if msg.Content != "Hello, world" {
		t.Errorf("Content = %q after finalize", msg.Content)
	}
	if msg.IsStreaming {
		t.Error("finalize ends streaming")
	}
}

func TestMessagePatchSetContent(t *testing.T) {
	msg := NewAssistantMessage()
	msg.AppendText("partial answer")

	failure := "Response failed: connection reset"
	msg.Apply(MessagePatch{SetContent: &failure, Finalize: true})

	if msg.Content != failure {
		t.Errorf("Content = %q, want failure text", msg.Content)
	}
	if msg.IsStreaming {
		t.Error("patched message should be finalized")
	}
}

func TestMessagePatchToolCallMerging(t *testing.T) {
	msg := NewAssistantMessage()

	msg.Apply(MessagePatch{ToolCall: &ToolCall{Name: "search", Input: `{"q":`}, ToolCallIndex: 0})
	msg.Apply(MessagePatch{ToolCall: &ToolCall{Input: `"go"}`}, ToolCallIndex: 0})
	msg.Apply(MessagePatch{ToolCall: &ToolCall{Status: ToolCallDone, Result: "3 hits"}, ToolCallIndex: 0})

	if msg.Kind != KindToolUse {
		t.Error("merging a tool call promotes the message to KindToolUse")
	}
	if len(msg.ToolCalls) != 1 {
		t.Fatalf("ToolCalls = %d, want 1", len(msg.ToolCalls))
	}
	tc := msg.ToolCalls[0]
	if tc.Name != "search" || tc.Input != `{"q":"go"}` || tc.Result != "3 hits" || tc.Status != ToolCallDone {
		t.Errorf("merged call = %+v", tc)
	}
}

func TestMessagePatchToolCallGapFill(t *testing.T) {
	msg := NewAssistantMessage()
	msg.Apply(MessagePatch{ToolCall: &ToolCall{Name: "late"}, ToolCallIndex: 2})

	if len(msg.ToolCalls) != 3 {
		t.Fatalf("ToolCalls = %d, want 3 with placeholders", len(msg.ToolCalls))
	}
	if msg.ToolCalls[0].Status != ToolCallRunning {
		t.Error("gap entries default to running")
	}
	if msg.ToolCalls[2].Name != "late" {
		t.Error("late entry landed at the wrong index")
	}
}

func TestMessagePreviewUnicode(t *testing.T) {
	msg := NewUserMessage("日本語のテキストです、長い質問")
	preview := msg.Preview(5)
	if strings.Contains(preview, "�") {
		t.Error("preview must not split runes")
	}
}

// =============================================================================
// CARD NODE TESTS
// =============================================================================

func TestCardNodeAppendIsIdempotent(t *testing.T) {
	node := NewCardNode("", 0)
	msg := NewUserMessage("hi")

	if !node.AppendMessage(msg) {
		t.Fatal("first append should succeed")
	}
	if node.AppendMessage(msg) {
		t.Error("re-appending the same message id is a no-op")
	}
	if node.MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1", node.MessageCount())
	}
}

func TestCardNodeTitleFromFirstUserMessage(t *testing.T) {
	node := NewCardNode("", 0)
	node.AppendMessage(NewUserMessage("How do goroutines get scheduled?"))

	if !strings.HasPrefix(node.Title, "How do goroutines") {
		t.Errorf("Title = %q, want derived from first user message", node.Title)
	}

	// A model-generated title replaces the derived one
	node.SetTitle("Goroutine scheduling")
	node.AppendMessage(NewUserMessage("follow-up"))
	if node.Title != "Goroutine scheduling" {
		t.Error("explicit title survives later appends")
	}
}

func TestCardNodeChildBookkeeping(t *testing.T) {
	node := NewCardNode("", 0)
	node.AddChild("a")
	node.AddChild("b")
	node.AddChild("a") // duplicate ignored

	if len(node.Children) != 2 {
		t.Fatalf("Children = %v", node.Children)
	}
	if node.ChildIndex("b") != 1 {
		t.Errorf("ChildIndex(b) = %d", node.ChildIndex("b"))
	}

	node.RemoveChild("a")
	if len(node.Children) != 1 || node.Children[0] != "b" {
		t.Errorf("Children after remove = %v", node.Children)
	}
}

func TestCardNodeClone(t *testing.T) {
	node := NewCardNode("parent", 2)
	node.AppendMessage(NewUserMessage("original"))

	clone := node.Clone()
	clone.Messages[0].Content = "mutated"
	clone.AddChild("new")

	if node.Messages[0].Content != "original" {
		t.Error("clone must not share message backing")
	}
	if len(node.Children) != 0 {
		t.Error("clone must not share the children slice")
	}
}

// =============================================================================
// PROJECT TESTS
// =============================================================================

func TestProjectValidate(t *testing.T) {
	p := NewProject("demo")
	root := NewCardNode("", 0)
	p.Nodes[root.ID] = root
	p.RootIDs = []string{root.ID}
	p.CurrentCardID = root.ID

	if err := p.Validate(); err != nil {
		t.Fatalf("valid project rejected: %v", err)
	}

	// Dangling parent reference is corruption
	orphan := NewCardNode("card_missing", 1)
	p.Nodes[orphan.ID] = orphan
	if err := p.Validate(); !errors.Is(err, ErrCorruptTree) {
		t.Errorf("Validate() = %v, want ErrCorruptTree", err)
	}
}

func TestProjectMeta(t *testing.T) {
	p := NewProject("demo")
	root := NewCardNode("", 0)
	p.Nodes[root.ID] = root
	p.RootIDs = []string{root.ID}

	meta := p.Meta()
	if meta.Name != "demo" || meta.CardCount != 1 {
		t.Errorf("Meta() = %+v", meta)
	}
}

func TestProjectClone(t *testing.T) {
	p := NewProject("demo")
	root := NewCardNode("", 0)
	root.AppendMessage(NewUserMessage("hi"))
	p.Nodes[root.ID] = root
	p.RootIDs = []string{root.ID}
	p.CurrentCardID = root.ID

	clone := p.Clone()
	clone.Nodes[root.ID].Messages[0].Content = "changed"
	if p.Nodes[root.ID].Messages[0].Content != "hi" {
		t.Error("clone must deep-copy nodes")
	}
}
