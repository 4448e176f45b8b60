// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stack

import (
	"context"
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cardstack-tui/internal/model"
	"github.com/jeranaias/cardstack-tui/internal/nav"
	"github.com/jeranaias/cardstack-tui/internal/ui/components"
)

// =============================================================================
// STREAM LIFECYCLE
// =============================================================================

// submit sends the composer text as a user message on the focus card and
// opens a response stream. An empty composer or an active stream is a no-op.
func (m *Model) submit() tea.Cmd {
	content := strings.TrimSpace(m.input.Value())
	if content == "" || m.streamCardID != "" {
		return nil
	}
	m.input.Reset()
	m.session.RecordActivity()

	userMsg := model.NewUserMessage(content)
	cardID := m.store.FocusID()
	var animCmd tea.Cmd
	if cardID == "" {
		// First message of an empty project creates the root card
		oldPath := m.store.PathIDs(cardID)
		cardID = m.store.CreateNode([]*model.Message{userMsg}, "")
		m.refreshTreeMap()
		animCmd = m.animateTo(oldPath, m.store.PathIDs(cardID), nav.HintCreate)
	} else {
		m.store.AppendMessage(cardID, userMsg)
	}
	m.session.MarkDirty()

	return tea.Batch(animCmd, m.openStream(cardID))
}

// openStream starts the chat stream for a card and subscribes to its
// channel. The assistant placeholder is appended before the first chunk so
// streaming text has a target from frame one.
func (m *Model) openStream(cardID string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.streamCancel = cancel
	m.streamCh = m.client.ChatStreamChan(ctx, m.cfg.Ollama.ChatModel, m.contextMessages())

	asst := model.NewAssistantMessage()
	m.store.AppendMessage(cardID, asst)
	m.streamCardID = cardID
	m.streamMsgID = asst.ID
	m.streamToolIdx = 0
	m.status = components.StatusThinking

	return tea.Batch(
		m.spinner.Start("Thinking"),
		waitForChunk(m.streamCh, cardID, asst.ID),
	)
}

// handleChunk merges one stream chunk into the target message and re-arms
// the subscription. Terminal chunks (done or error) close the stream out.
func (m *Model) handleChunk(msg StreamChunkMsg) tea.Cmd {
	if msg.CardID != m.streamCardID || msg.MessageID != m.streamMsgID {
		return nil // stale delivery from a superseded stream
	}

	chunk := msg.Chunk
	if chunk.Error != nil {
		m.failStream(chunk.Error)
		return nil
	}

	if chunk.Content != "" {
		m.status = components.StatusStreaming
		m.store.PatchMessage(msg.CardID, msg.MessageID, model.MessagePatch{AppendText: chunk.Content})
	}
	for _, tc := range chunk.ToolCalls {
		// Index counts across the whole stream: calls arriving in separate
		// chunks land in separate slots instead of merging into the first.
		m.store.PatchMessage(msg.CardID, msg.MessageID, model.MessagePatch{
			ToolCall:      &model.ToolCall{Name: tc.Function.Name, Input: encodeArgs(tc.Function.Arguments), Status: model.ToolCallRunning},
			ToolCallIndex: m.streamToolIdx,
		})
		m.streamToolIdx++
	}

	if chunk.Done {
		return m.finishStream(msg.CardID, msg.MessageID)
	}
	return waitForChunk(m.streamCh, msg.CardID, msg.MessageID)
}

// finishStream finalizes the assistant message and kicks off title
// generation for a card completing its first exchange.
func (m *Model) finishStream(cardID, msgID string) tea.Cmd {
	m.store.PatchMessage(cardID, msgID, model.MessagePatch{Finalize: true})
	m.session.MarkDirty()
	m.refreshTreeMap()
	m.clearStream()

	node := m.store.Node(cardID)
	if node == nil || node.MessageCount() > 2 {
		return nil
	}
	return generateTitleCmd(m.client, cardID, titleExcerpt(node))
}

// failStream records the failure on the streaming message so the card shows
// what happened, then closes the stream out.
func (m *Model) failStream(err error) {
	failure := "Response failed: " + err.Error()
	m.store.PatchMessage(m.streamCardID, m.streamMsgID, model.MessagePatch{
		SetContent: &failure,
		Finalize:   true,
	})
	m.session.MarkDirty()
	m.errText = err.Error()
	m.clearStream()
	m.status = components.StatusError
}

// handleStreamClosed finalizes after the channel closes without a terminal
// chunk (cancellation).
func (m *Model) handleStreamClosed(msg StreamClosedMsg) {
	if msg.CardID != m.streamCardID || msg.MessageID != m.streamMsgID {
		return
	}
	m.store.PatchMessage(msg.CardID, msg.MessageID, model.MessagePatch{Finalize: true})
	m.session.MarkDirty()
	m.clearStream()
}

// cancelStream aborts the active stream; the closed channel finalizes the
// message through handleStreamClosed.
func (m *Model) cancelStream() {
	if m.streamCancel != nil {
		m.streamCancel()
		m.streamCancel = nil
	}
}

// clearStream resets stream bookkeeping.
func (m *Model) clearStream() {
	if m.streamCancel != nil {
		m.streamCancel()
		m.streamCancel = nil
	}
	m.streamCh = nil
	m.streamCardID = ""
	m.streamMsgID = ""
	m.streamToolIdx = 0
	m.spinner.Stop()
	if m.status != components.StatusError {
		m.status = components.StatusReady
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// titleExcerpt builds the opening-exchange excerpt the title model sees.
func titleExcerpt(node *model.CardNode) string {
	var b strings.Builder
	for _, msg := range node.Messages {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(msg.Role.DisplayName())
		b.WriteString(": ")
		b.WriteString(msg.Preview(200))
	}
	return b.String()
}

// encodeArgs renders tool arguments for display.
func encodeArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	data, err := json.Marshal(args)
	if err != nil {
		return ""
	}
	return string(data)
}
