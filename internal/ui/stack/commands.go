// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stack

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cardstack-tui/internal/model"
	"github.com/jeranaias/cardstack-tui/internal/ollama"
	"github.com/jeranaias/cardstack-tui/internal/storage"
)

// =============================================================================
// STREAMING COMMANDS
// =============================================================================

// waitForChunk reads one chunk from the stream channel. The update loop
// re-arms it after every delivery, so the channel drains without blocking
// rendering. A closed channel yields StreamClosedMsg.
func waitForChunk(ch <-chan ollama.StreamChunk, cardID, messageID string) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-ch
		if !ok {
			return StreamClosedMsg{CardID: cardID, MessageID: messageID}
		}
		return StreamChunkMsg{CardID: cardID, MessageID: messageID, Chunk: chunk}
	}
}

// =============================================================================
// TITLE COMMANDS
// =============================================================================

// generateTitleCmd asks the title model to summarize a card's opening
// exchange. Throttled attempts surface as TitleGeneratedMsg with
// ollama.ErrTitleThrottled and no title.
func generateTitleCmd(client *ollama.Client, cardID, excerpt string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		title, err := client.GenerateTitle(ctx, excerpt)
		return TitleGeneratedMsg{CardID: cardID, Title: title, Err: err}
	}
}

// =============================================================================
// PERSISTENCE COMMANDS
// =============================================================================

// saveProjectCmd persists the project snapshot.
func saveProjectCmd(store *storage.ProjectStore, p *model.Project) tea.Cmd {
	snapshot := p.Clone()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := store.Save(ctx, snapshot)
		return ProjectSavedMsg{ProjectID: snapshot.ID, Err: err}
	}
}

// listProjectsCmd loads the project catalog for the picker.
func listProjectsCmd(store *storage.ProjectStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		metas, err := store.List(ctx)
		return ProjectListMsg{Projects: metas, Err: err}
	}
}

// loadProjectCmd loads a stored project by id.
func loadProjectCmd(store *storage.ProjectStore, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		p, err := store.Load(ctx, id)
		return ProjectLoadedMsg{Project: p, Err: err}
	}
}

// =============================================================================
// HEALTH COMMANDS
// =============================================================================

// checkOllamaCmd probes Ollama availability.
func checkOllamaCmd(client *ollama.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := client.CheckRunning(ctx)
		return OllamaStatusMsg{Running: err == nil, Err: err}
	}
}
