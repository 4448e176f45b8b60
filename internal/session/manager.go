// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager tracks session state and autosave scheduling.
type Manager struct {
	mu sync.Mutex

	sessionID    string
	startTime    time.Time
	lastActivity time.Time

	autoSaveEnabled  bool
	autoSaveInterval time.Duration
	lastAutoSave     time.Time
	isDirty          bool
}

// Config holds configuration for the session manager.
type Config struct {
	// AutoSaveEnabled enables automatic saving
	AutoSaveEnabled bool

	// AutoSaveInterval is how often to auto-save (default: 30 seconds)
	AutoSaveInterval time.Duration
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		AutoSaveEnabled:  true,
		AutoSaveInterval: 30 * time.Second,
	}
}

// NewManager creates a new session manager.
func NewManager(cfg Config) *Manager {
	if cfg.AutoSaveInterval == 0 {
		cfg.AutoSaveInterval = 30 * time.Second
	}
	now := time.Now()
	return &Manager{
		sessionID:        generateSessionID(),
		startTime:        now,
		lastActivity:     now,
		autoSaveEnabled:  cfg.AutoSaveEnabled,
		autoSaveInterval: cfg.AutoSaveInterval,
		lastAutoSave:     now,
	}
}

// =============================================================================
// SESSION STATE
// =============================================================================

// SessionID returns the current session ID.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Duration returns how long the session has been active.
func (m *Manager) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.startTime)
}

// RecordActivity notes user activity.
func (m *Manager) RecordActivity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActivity = time.Now()
}

// IdleTime returns how long since last activity.
func (m *Manager) IdleTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.lastActivity)
}

// =============================================================================
// DIRTY TRACKING
// =============================================================================

// MarkDirty flags unsaved changes. Every tree mutation calls this.
func (m *Manager) MarkDirty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isDirty = true
}

// MarkClean clears the dirty flag after a successful save.
func (m *Manager) MarkClean() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isDirty = false
	m.lastAutoSave = time.Now()
}

// IsDirty reports whether there are unsaved changes.
func (m *Manager) IsDirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isDirty
}

// ShouldAutoSave reports whether an autosave is due.
func (m *Manager) ShouldAutoSave() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.autoSaveEnabled || !m.isDirty {
		return false
	}
	return time.Since(m.lastAutoSave) >= m.autoSaveInterval
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent periodically to evaluate autosave.
type TickMsg struct {
	Time time.Time
}

// AutoSaveMsg tells the update loop to persist the current project.
type AutoSaveMsg struct{}

// TickCmd returns a command that ticks once a second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick processes a tick, emitting an autosave message when due and
// rescheduling the next tick.
func (m *Manager) HandleTick() tea.Cmd {
	var cmds []tea.Cmd

	if m.ShouldAutoSave() {
		cmds = append(cmds, func() tea.Msg {
			return AutoSaveMsg{}
		})
	}

	cmds = append(cmds, TickCmd())
	return tea.Batch(cmds...)
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// SetAutoSaveEnabled enables or disables auto-save.
func (m *Manager) SetAutoSaveEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoSaveEnabled = enabled
}

// SetAutoSaveInterval updates the auto-save interval.
func (m *Manager) SetAutoSaveInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoSaveInterval = d
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateSessionID creates a unique session ID.
func generateSessionID() string {
	return "sess_" + time.Now().Format("20060102_150405")
}
