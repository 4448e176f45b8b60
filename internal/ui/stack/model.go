// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stack

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cardstack-tui/internal/anim"
	"github.com/jeranaias/cardstack-tui/internal/config"
	"github.com/jeranaias/cardstack-tui/internal/layout"
	"github.com/jeranaias/cardstack-tui/internal/minimap"
	"github.com/jeranaias/cardstack-tui/internal/model"
	"github.com/jeranaias/cardstack-tui/internal/ollama"
	"github.com/jeranaias/cardstack-tui/internal/session"
	"github.com/jeranaias/cardstack-tui/internal/storage"
	"github.com/jeranaias/cardstack-tui/internal/tree"
	"github.com/jeranaias/cardstack-tui/internal/ui/components"
	"github.com/jeranaias/cardstack-tui/internal/ui/styles"
)

// =============================================================================
// VIEW MODE
// =============================================================================

// viewMode selects the top-level screen.
type viewMode int

const (
	modeStack viewMode = iota
	modePicker
)

// =============================================================================
// STACK MODEL
// =============================================================================

// Model is the Bubble Tea model for the stacked-card view.
type Model struct {
	mode viewMode

	// Styling
	theme  *styles.Theme
	keyMap KeyMap

	// Configuration
	cfg *config.Config

	// Dimensions
	width  int
	height int

	// Card tree
	store *tree.Store

	// Persistence
	projects *storage.ProjectStore

	// Session autosave
	session *session.Manager

	// Ollama client
	client   *ollama.Client
	ollamaUp bool

	// Motion
	seq     *anim.Sequencer
	mapCtrl *minimap.Controller
	treeMap layout.TreeMap

	// UI components
	input     components.Input
	spinner   components.ThinkingSpinner
	statusBar *components.StatusBar
	mapView   *components.MinimapView
	picker    *components.ProjectPicker
	markdown  *components.MarkdownRenderer

	// Active stream
	streamCh      <-chan ollama.StreamChunk
	streamCancel  context.CancelFunc
	streamCardID  string
	streamMsgID   string
	streamToolIdx int

	// View state
	showMinimap bool
	showHelp    bool
	status      components.Status
	errText     string
}

// New creates the stacked view over an open project.
func New(cfg *config.Config, projects *storage.ProjectStore, project *model.Project, client *ollama.Client) *Model {
	theme := styles.NewTheme()

	m := &Model{
		mode:        modeStack,
		theme:       theme,
		keyMap:      DefaultKeyMap(),
		cfg:         cfg,
		store:       tree.NewStore(project),
		projects:    projects,
		session:     session.NewManager(session.DefaultConfig()),
		client:      client,
		seq:         anim.NewSequencer(),
		mapCtrl:     minimap.NewController(nil),
		input:       components.NewInput(theme),
		spinner:     components.NewThinkingSpinner(theme),
		statusBar:   components.NewStatusBar(theme),
		mapView:     components.NewMinimapView(theme),
		picker:      components.NewProjectPicker(theme),
		markdown:    components.NewMarkdownRenderer(cfg.UI.MarkdownWidth),
		showMinimap: cfg.UI.ShowMinimap,
		status:      components.StatusReady,
	}

	m.seq.SetReducedMotion(cfg.Animation.ReduceMotion)
	m.mapCtrl.SetIdleResume(time.Duration(cfg.Minimap.IdleResumeSecs) * time.Second)
	m.mapView.Controller = m.mapCtrl
	m.refreshTreeMap()
	m.seq.SetStack(m.store.PathIDs(m.store.FocusID()), m.stackViewport())
	if p, ok := m.treeMap.Position(m.store.FocusID()); ok {
		m.mapCtrl.FocusChanged(p)
	}

	return m
}

// Init starts the session ticker and probes Ollama.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.input.Focus(),
		session.TickCmd(),
		checkOllamaCmd(m.client),
	)
}

// Project returns the open project.
func (m *Model) Project() *model.Project {
	return m.store.Project()
}

// =============================================================================
// GEOMETRY
// =============================================================================

// stackViewport derives the animation canvas from the terminal size. The
// minimap pane and the composer strip are carved off first.
func (m *Model) stackViewport() layout.Viewport {
	w := float64(m.stackWidth())
	h := float64(maxIntS(m.height-6, 10))
	return layout.Viewport{CenterX: w / 2, CenterY: h / 2, Height: h}
}

// stackWidth is the cell width left for cards after the minimap pane.
func (m *Model) stackWidth() int {
	w := m.width
	if w <= 0 {
		w = 120
	}
	if m.showMinimap {
		w -= m.minimapWidth()
	}
	return maxIntS(w, 40)
}

// minimapWidth sizes the minimap pane from the terminal width.
func (m *Model) minimapWidth() int {
	if m.width >= 140 {
		return 36
	}
	return 28
}

// refreshTreeMap recomputes the full-tree layout and hands it to the scroll
// controller. Called after every tree mutation and orientation change.
func (m *Model) refreshTreeMap() {
	orientation := layout.Vertical
	if m.cfg.Minimap.Orientation == "horizontal" {
		orientation = layout.Horizontal
	}

	cfg := layout.DefaultTreeMapConfig(orientation)
	cfg.CrossSize = float64(maxIntS(m.minimapWidth()-4, 16))

	m.treeMap = layout.ComputeTreeMap(m.store.Project().Nodes, cfg)
	m.mapView.Tree = &m.treeMap
	m.mapCtrl.SetContent(&m.treeMap)
}

func maxIntS(a, b int) int {
	if a > b {
		return a
	}
	return b
}
