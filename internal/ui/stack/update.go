// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stack

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cardstack-tui/internal/anim"
	"github.com/jeranaias/cardstack-tui/internal/config"
	"github.com/jeranaias/cardstack-tui/internal/model"
	"github.com/jeranaias/cardstack-tui/internal/ollama"
	"github.com/jeranaias/cardstack-tui/internal/session"
	"github.com/jeranaias/cardstack-tui/internal/tree"
	"github.com/jeranaias/cardstack-tui/internal/ui/components"
)

// mapTickMsg drives the minimap glide between animation bursts.
type mapTickMsg struct{}

// mapTickCmd schedules the next minimap glide step.
func mapTickCmd() tea.Cmd {
	return tea.Tick(anim.FrameInterval, func(time.Time) tea.Msg {
		return mapTickMsg{}
	})
}

// mapResumeCmd wakes the controller when a manual hold may expire.
func (m *Model) mapResumeCmd() tea.Cmd {
	return tea.Tick(m.mapCtrl.IdleResume()+50*time.Millisecond, func(time.Time) tea.Msg {
		return mapTickMsg{}
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update is the Bubble Tea update loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case anim.TickMsg:
		cmd := m.seq.HandleTick(msg)
		if !m.seq.Active() && m.status == components.StatusAnimating {
			m.status = components.StatusReady
		}
		return m, cmd

	case mapTickMsg:
		if m.mapCtrl.Step() {
			return m, mapTickCmd()
		}
		return m, nil

	case session.TickMsg:
		return m, m.session.HandleTick()

	case session.AutoSaveMsg:
		if !m.session.IsDirty() {
			return m, nil
		}
		m.status = components.StatusSaving
		return m, saveProjectCmd(m.projects, m.store.Project())

	case ProjectSavedMsg:
		if msg.Err != nil {
			m.errText = "save failed: " + msg.Err.Error()
			m.status = components.StatusError
			return m, nil
		}
		m.session.MarkClean()
		if m.status == components.StatusSaving {
			m.status = components.StatusReady
		}
		return m, nil

	case StreamChunkMsg:
		return m, m.handleChunk(msg)

	case StreamClosedMsg:
		m.handleStreamClosed(msg)
		return m, nil

	case TitleGeneratedMsg:
		m.handleTitle(msg)
		return m, nil

	case ProjectListMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.picker.Projects = msg.Projects
		m.picker.Selected = 0
		return m, nil

	case ProjectLoadedMsg:
		return m, m.handleProjectLoaded(msg)

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case ConfigErrorMsg:
		m.errText = "config rejected: " + msg.Err.Error()
		return m, nil

	case OllamaStatusMsg:
		m.ollamaUp = msg.Running
		if !msg.Running {
			m.errText = "ollama is not reachable; responses are unavailable"
		}
		return m, nil
	}

	// Spinner ticks and everything else the components own
	return m, m.spinner.Update(msg)
}

// =============================================================================
// RESIZE
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	m.input.SetWidth(m.stackWidth())
	m.statusBar.Width = msg.Width
	m.picker.Width = minIntS(msg.Width-4, 72)
	m.mapView.SetSize(m.minimapWidth()-4, maxIntS(msg.Height-8, 4))

	m.refreshTreeMap()
	if !m.seq.Active() {
		m.seq.SetStack(m.store.PathIDs(m.store.FocusID()), m.stackViewport())
	}
	if p, ok := m.treeMap.Position(m.store.FocusID()); ok {
		m.mapCtrl.FocusChanged(p)
		return mapTickCmd()
	}
	return nil
}

// =============================================================================
// KEYS
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		m.cancelStream()
		return m, tea.Quit
	}

	if m.mode == modePicker {
		return m, m.handlePickerKey(msg)
	}

	m.errText = ""

	switch {
	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keyMap.Cancel):
		m.cancelStream()
		return m, nil

	case key.Matches(msg, m.keyMap.NewChild):
		return m, m.branchHere()

	case key.Matches(msg, m.keyMap.Delete):
		return m, m.deleteFocus()

	case key.Matches(msg, m.keyMap.ToggleMinimap):
		m.showMinimap = !m.showMinimap
		m.input.SetWidth(m.stackWidth())
		return m, nil

	case key.Matches(msg, m.keyMap.MapUp):
		return m, m.scrollMap(0, -4)
	case key.Matches(msg, m.keyMap.MapDown):
		return m, m.scrollMap(0, 4)
	case key.Matches(msg, m.keyMap.MapLeft):
		return m, m.scrollMap(-4, 0)
	case key.Matches(msg, m.keyMap.MapRight):
		return m, m.scrollMap(4, 0)

	case key.Matches(msg, m.keyMap.Projects):
		m.mode = modePicker
		return m, listProjectsCmd(m.projects)

	case key.Matches(msg, m.keyMap.PrevSibling):
		return m, m.switchSibling(-1)
	case key.Matches(msg, m.keyMap.NextSibling):
		return m, m.switchSibling(1)

	// Left/right edit the composer while it holds text and navigate the
	// tree when it is empty.
	case key.Matches(msg, m.keyMap.Ascend) && m.input.Value() == "":
		return m, m.ascend()
	case key.Matches(msg, m.keyMap.Descend) && m.input.Value() == "":
		return m, m.descend()
	}

	return m, m.input.Update(msg)
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.picker.MoveUp()
	case "down", "j":
		m.picker.MoveDown()
	case "esc":
		m.mode = modeStack
	case "enter":
		return m.choosePickerEntry()
	}
	return nil
}

// choosePickerEntry opens the selected project, flushing the current one
// first if it has unsaved changes.
func (m *Model) choosePickerEntry() tea.Cmd {
	var flush tea.Cmd
	if m.session.IsDirty() {
		flush = saveProjectCmd(m.projects, m.store.Project())
	}

	if meta := m.picker.Current(); meta != nil {
		if meta.ID == m.store.Project().ID {
			m.mode = modeStack
			return flush
		}
		return tea.Batch(flush, loadProjectCmd(m.projects, meta.ID))
	}
	return tea.Batch(flush, func() tea.Msg {
		return ProjectLoadedMsg{Project: newProjectNow()}
	})
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m *Model) handleTitle(msg TitleGeneratedMsg) {
	if msg.Err != nil || msg.Title == "" {
		return // throttled or failed; the derived title stands
	}
	node := m.store.Node(msg.CardID)
	if node == nil {
		return
	}
	node.SetTitle(msg.Title)
	m.session.MarkDirty()
}

func (m *Model) handleProjectLoaded(msg ProjectLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.errText = "open failed: " + msg.Err.Error()
		return nil
	}

	m.cancelStream()
	m.store = tree.NewStore(msg.Project)
	m.mode = modeStack
	m.refreshTreeMap()
	m.seq.SetStack(m.store.PathIDs(m.store.FocusID()), m.stackViewport())
	m.session.MarkClean()

	if p, ok := m.treeMap.Position(m.store.FocusID()); ok {
		m.mapCtrl.FocusChanged(p)
		return mapTickCmd()
	}
	return nil
}

// scrollMap applies a manual scroll and arms the idle-resume wakeup.
func (m *Model) scrollMap(dx, dy float64) tea.Cmd {
	if !m.showMinimap {
		return nil
	}
	m.mapCtrl.ManualScroll(dx, dy)
	return m.mapResumeCmd()
}

// applyConfig swaps in a hot-reloaded configuration.
func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.client = NewOllamaClient(cfg)
	m.markdown = components.NewMarkdownRenderer(cfg.UI.MarkdownWidth)
	m.showMinimap = cfg.UI.ShowMinimap
	m.seq.SetReducedMotion(cfg.Animation.ReduceMotion)
	m.mapCtrl.SetIdleResume(time.Duration(cfg.Minimap.IdleResumeSecs) * time.Second)
	m.refreshTreeMap()
	m.errText = ""
}

// NewOllamaClient maps the application configuration onto a client.
func NewOllamaClient(cfg *config.Config) *ollama.Client {
	return ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:       cfg.Ollama.URL,
		ChatModel:     cfg.Ollama.ChatModel,
		TitleModel:    cfg.Ollama.TitleModel,
		TitleInterval: time.Duration(cfg.Ollama.TitleIntervalSecs) * time.Second,
	})
}

// newProjectNow backs the picker's new-project row.
func newProjectNow() *model.Project {
	return model.NewProject("Untitled")
}

func minIntS(a, b int) int {
	if a < b {
		return a
	}
	return b
}
