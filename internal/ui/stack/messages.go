// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stack provides the stacked-card view for the TUI.
//
// This file defines the Bubble Tea message types used by the stacked view.
// Messages are organized into the following categories:
//   - Streaming: chunk delivery, completion, and errors
//   - Titles: asynchronous card title generation
//   - Persistence: project save/load/list results
//   - Configuration: hot-reload notifications
//   - Health: Ollama availability
//
// All message types follow Bubble Tea conventions and are immutable.
package stack

import (
	"github.com/jeranaias/cardstack-tui/internal/config"
	"github.com/jeranaias/cardstack-tui/internal/model"
	"github.com/jeranaias/cardstack-tui/internal/ollama"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamChunkMsg delivers one chunk from the active response stream. A Done
// chunk or one carrying an error terminates the subscription.
type StreamChunkMsg struct {
	CardID    string
	MessageID string
	Chunk     ollama.StreamChunk
}

// StreamClosedMsg signals that the stream channel closed without a terminal
// chunk (context cancellation or transport teardown).
type StreamClosedMsg struct {
	CardID    string
	MessageID string
}

// =============================================================================
// TITLE MESSAGES
// =============================================================================

// TitleGeneratedMsg delivers an asynchronously generated card title.
// A throttled attempt arrives with ollama.ErrTitleThrottled and keeps the
// card's current title.
type TitleGeneratedMsg struct {
	CardID string
	Title  string
	Err    error
}

// =============================================================================
// PERSISTENCE MESSAGES
// =============================================================================

// ProjectSavedMsg reports the outcome of a project save.
type ProjectSavedMsg struct {
	ProjectID string
	Err       error
}

// ProjectListMsg delivers the stored project catalog for the picker.
type ProjectListMsg struct {
	Projects []model.ProjectMeta
	Err      error
}

// ProjectLoadedMsg delivers a project selected from the picker.
type ProjectLoadedMsg struct {
	Project *model.Project
	Err     error
}

// =============================================================================
// CONFIGURATION MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a validated configuration after a file change.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ConfigErrorMsg reports a rejected configuration file change; the previous
// configuration stays in effect.
type ConfigErrorMsg struct {
	Err error
}

// =============================================================================
// HEALTH MESSAGES
// =============================================================================

// OllamaStatusMsg reports Ollama connection status.
type OllamaStatusMsg struct {
	Running bool
	Err     error
}
