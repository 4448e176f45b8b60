// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/cardstack-tui/internal/layout"
	"github.com/jeranaias/cardstack-tui/internal/nav"
	"github.com/jeranaias/cardstack-tui/internal/ui/styles"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// FrameInterval is the tick rate while a transition is playing.
const FrameInterval = time.Second / 30

// StaggerStep is the per-card delay offset when several cards enter or
// exit in the same phase, so a cascade reads as a cascade instead of a
// block move.
const StaggerStep = 40 * time.Millisecond

// Exit and enter drift distances, in the same units as layout positions.
const (
	exitDriftX = 36.0
	exitDriftY = 18.0
	sideSlide  = 48.0
	deleteRise = 48.0
	exitShrink = 0.85
	enterBoost = 1.15
	deleteGrow = 1.2
)

// =============================================================================
// NODE STATE
// =============================================================================

// NodeState describes what a card is doing during the current phase.
type NodeState int

const (
	// StateStable: the card is at its committed position.
	StateStable NodeState = iota
	// StateEntering: the card is materializing toward its target.
	StateEntering
	// StateExiting: the card is leaving and is dropped when the phase ends.
	StateExiting
	// StateMoving: the card persists but is travelling to a new position.
	StateMoving
)

// String returns the state name.
func (s NodeState) String() string {
	switch s {
	case StateStable:
		return "stable"
	case StateEntering:
		return "entering"
	case StateExiting:
		return "exiting"
	case StateMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// CardFrame is one card's interpolated presentation for a single render.
type CardFrame struct {
	ID        string
	State     NodeState
	Transform layout.Transform
}

// =============================================================================
// PHASES
// =============================================================================

type phaseNode struct {
	id          string
	state       NodeState
	from        layout.Transform
	to          layout.Transform
	delay       time.Duration
	removeAfter bool
}

type phase struct {
	duration time.Duration
	maxDelay time.Duration
	easing   styles.EasingFunc
	nodes    []phaseNode
}

// total is the wall time the phase occupies: every card's travel plus the
// largest stagger offset.
func (p phase) total() time.Duration {
	return p.duration + p.maxDelay
}

// treatment decides how cards that leave or join the stack are styled at the
// far end of their travel.
type treatment struct {
	exit  func(layout.Transform) layout.Transform
	enter func(layout.Transform) layout.Transform
}

func exitUpperRight(t layout.Transform) layout.Transform {
	t.Position.X += exitDriftX
	t.Position.Y -= exitDriftY
	t.Scale *= exitShrink
	t.Opacity = 0
	return t
}

func exitRight(t layout.Transform) layout.Transform {
	t.Position.X += sideSlide
	t.Opacity = 0
	return t
}

func exitUpwardGrowing(t layout.Transform) layout.Transform {
	t.Position.Y -= deleteRise
	t.Scale *= deleteGrow
	t.Opacity = 0
	return t
}

func enterNear(t layout.Transform) layout.Transform {
	t.Scale *= enterBoost
	t.Opacity = 0
	return t
}

func enterFromLeft(t layout.Transform) layout.Transform {
	t.Position.X -= sideSlide
	t.Opacity = 0
	return t
}

var (
	descendTreatment = treatment{exit: exitUpperRight, enter: enterNear}
	ascendTreatment  = treatment{exit: exitUpperRight, enter: enterNear}
	siblingTreatment = treatment{exit: exitRight, enter: enterFromLeft}
	deleteTreatment  = treatment{exit: exitUpwardGrowing, enter: enterNear}
)

// =============================================================================
// SEQUENCER
// =============================================================================

// Sequencer plays classified transitions as phased card movement.
// It is single-goroutine state, driven from the Bubble Tea update loop.
type Sequencer struct {
	generation uint64

	phases     []phase
	phaseIdx   int
	phaseStart time.Time
	active     bool

	// Transition timings, swapped as a pair when reduced motion toggles.
	normal  styles.TransitionConfig
	fast    styles.TransitionConfig
	reduced bool

	// Committed presentation: transforms of cards when nothing is playing.
	current map[string]layout.Transform
	order   []string
}

// NewSequencer returns an idle sequencer with an empty stack.
func NewSequencer() *Sequencer {
	return &Sequencer{
		normal:  styles.TransitionNormal,
		fast:    styles.TransitionFast,
		current: make(map[string]layout.Transform),
	}
}

// Generation returns the current generation token.
func (s *Sequencer) Generation() uint64 { return s.generation }

// Active reports whether a transition is playing.
func (s *Sequencer) Active() bool { return s.active }

// SetReducedMotion switches transition timings to their shortened form and
// back. Takes effect from the next Start.
func (s *Sequencer) SetReducedMotion(on bool) {
	s.reduced = on
	if on {
		s.normal = styles.ReducedMotion(styles.TransitionNormal)
		s.fast = styles.ReducedMotion(styles.TransitionFast)
		return
	}
	s.normal = styles.TransitionNormal
	s.fast = styles.TransitionFast
}

// ReducedMotion reports whether shortened timings are in effect.
func (s *Sequencer) ReducedMotion() bool { return s.reduced }

// SetStack replaces the committed stack without animation. Used on first
// load and on viewport resize, where sliding cards around would just be
// noise.
func (s *Sequencer) SetStack(path []string, vp layout.Viewport) {
	s.commitRemaining()
	transforms := layout.PathLayout(len(path), vp)
	s.current = make(map[string]layout.Transform, len(path))
	s.order = make([]string, len(path))
	for i, id := range path {
		s.current[id] = transforms[i]
		s.order[i] = id
	}
	s.active = false
	s.phases = nil
}

// Start begins playing a transition from oldPath to newPath. An in-flight
// transition is superseded: its final state is committed instantly and the
// new one starts from there. Returns the generation token the caller should
// schedule ticks with.
func (s *Sequencer) Start(tr nav.Transition, oldPath, newPath []string, vp layout.Viewport, now time.Time) uint64 {
	s.commitRemaining()

	oldT := layout.PathLayout(len(oldPath), vp)
	newT := layout.PathLayout(len(newPath), vp)

	switch tr.Kind {
	case nav.DescendToChild, nav.CreateChild:
		s.phases = []phase{
			buildPhase(oldPath, newPath, oldT, newT, s.current, descendTreatment, s.normal),
		}
	case nav.AscendToParent:
		s.phases = []phase{
			buildPhase(oldPath, newPath, oldT, newT, s.current, ascendTreatment, s.normal),
		}
	case nav.SwitchSibling:
		s.phases = []phase{
			buildPhase(oldPath, newPath, oldT, newT, s.current, siblingTreatment, s.fast),
		}
	case nav.Delete:
		s.phases = []phase{
			buildPhase(oldPath, newPath, oldT, newT, s.current, deleteTreatment, s.normal),
		}
	default:
		s.phases = s.buildJumpPhases(tr, oldPath, newPath, vp)
	}

	s.generation++
	s.phaseIdx = 0
	s.phaseStart = now
	s.active = len(s.phases) > 0
	if !s.active {
		s.refreshCommitted(newPath, newT)
	}
	return s.generation
}

// buildPhase assembles one phase moving fromPath's cards to toPath's
// arrangement. Cards present in both paths travel; cards only in toPath
// enter via the treatment; cards only in fromPath exit via the treatment
// and are dropped at commit. Exiting cards sort last so they render on top.
// When several cards enter (or exit) together each gets a StaggerStep
// delay on top of the previous one, ordered by path position.
//
// committed overrides fromT for cards we already have on screen, so a
// superseded transition hands off without a position snap.
func buildPhase(fromPath, toPath []string, fromT, toT []layout.Transform, committed map[string]layout.Transform, tm treatment, cfg styles.TransitionConfig) phase {
	fromIdx := make(map[string]int, len(fromPath))
	for i, id := range fromPath {
		fromIdx[id] = i
	}
	toSet := make(map[string]bool, len(toPath))
	for _, id := range toPath {
		toSet[id] = true
	}

	startAt := func(id string, fallback layout.Transform) layout.Transform {
		if t, ok := committed[id]; ok {
			return t
		}
		return fallback
	}

	nodes := make([]phaseNode, 0, len(fromPath)+len(toPath))
	var maxDelay time.Duration
	entering := 0
	for i, id := range toPath {
		target := toT[i]
		if j, ok := fromIdx[id]; ok {
			from := startAt(id, fromT[j])
			state := StateMoving
			if from == target {
				state = StateStable
			}
			nodes = append(nodes, phaseNode{id: id, state: state, from: from, to: target})
			continue
		}
		delay := time.Duration(entering) * StaggerStep
		entering++
		if delay > maxDelay {
			maxDelay = delay
		}
		nodes = append(nodes, phaseNode{id: id, state: StateEntering, from: tm.enter(target), to: target, delay: delay})
	}
	exiting := 0
	for i, id := range fromPath {
		if toSet[id] {
			continue
		}
		delay := time.Duration(exiting) * StaggerStep
		exiting++
		if delay > maxDelay {
			maxDelay = delay
		}
		from := startAt(id, fromT[i])
		nodes = append(nodes, phaseNode{
			id:          id,
			state:       StateExiting,
			from:        from,
			to:          tm.exit(from),
			delay:       delay,
			removeAfter: true,
		})
	}

	return phase{duration: cfg.Duration, maxDelay: maxDelay, easing: cfg.Easing, nodes: nodes}
}

// buildJumpPhases decomposes an unrelated jump into an ascend to the common
// ancestor followed by a descend to the new focus. Without a common
// ancestor the whole old stack tears down and the new one builds up.
func (s *Sequencer) buildJumpPhases(tr nav.Transition, oldPath, newPath []string, vp layout.Viewport) []phase {
	committed := s.current
	pivotLen := 0
	if tr.HasCommonAncestor {
		for i, id := range newPath {
			if id == tr.CommonAncestorID {
				pivotLen = i + 1
				break
			}
		}
	}
	pivot := newPath[:pivotLen]

	oldT := layout.PathLayout(len(oldPath), vp)
	pivotT := layout.PathLayout(pivotLen, vp)
	newT := layout.PathLayout(len(newPath), vp)

	up := buildPhase(oldPath, pivot, oldT, pivotT, committed, ascendTreatment, s.normal)
	// The second phase starts from the pivot arrangement, not from whatever
	// was committed before the jump began.
	down := buildPhase(pivot, newPath, pivotT, newT, nil, descendTreatment, s.normal)
	return []phase{up, down}
}

// =============================================================================
// TICKING
// =============================================================================

// TickMsg is one animation frame. Generation pins it to the transition that
// scheduled it.
type TickMsg struct {
	Generation uint64
	Time       time.Time
}

// TickCmd schedules the next frame for the given generation.
func TickCmd(generation uint64) tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return TickMsg{Generation: generation, Time: t}
	})
}

// HandleTick advances the animation for a frame message. Stale-generation
// frames are dropped. Returns the follow-up tick command, or nil once the
// transition has committed.
func (s *Sequencer) HandleTick(msg TickMsg) tea.Cmd {
	if msg.Generation != s.generation {
		return nil
	}
	if done := s.Tick(msg.Generation, msg.Time); done {
		return nil
	}
	return TickCmd(s.generation)
}

// Tick advances phase state to the given time. Returns true when the
// sequencer is idle afterwards (including for stale or spurious ticks).
func (s *Sequencer) Tick(generation uint64, now time.Time) bool {
	if generation != s.generation {
		return !s.active
	}
	if !s.active {
		return true
	}

	for s.active {
		ph := s.phases[s.phaseIdx]
		end := s.phaseStart.Add(ph.total())
		if now.Before(end) {
			return false
		}
		s.commitPhase(ph)
		s.phaseIdx++
		s.phaseStart = end
		if s.phaseIdx >= len(s.phases) {
			s.active = false
			s.phases = nil
		}
	}
	return true
}

// commitPhase lands every card of a phase at its exact target. Exiting
// cards are removed outright; if the same card ever comes back it enters
// fresh rather than resuming a half-finished exit.
func (s *Sequencer) commitPhase(ph phase) {
	for _, n := range ph.nodes {
		if n.removeAfter {
			delete(s.current, n.id)
			continue
		}
		s.current[n.id] = n.to
	}
	order := make([]string, 0, len(ph.nodes))
	for _, n := range ph.nodes {
		if !n.removeAfter {
			order = append(order, n.id)
		}
	}
	s.order = order
}

// commitRemaining fast-forwards all unfinished phases. Called when a new
// transition supersedes the current one.
func (s *Sequencer) commitRemaining() {
	if !s.active {
		return
	}
	for i := s.phaseIdx; i < len(s.phases); i++ {
		s.commitPhase(s.phases[i])
	}
	s.phases = nil
	s.active = false
}

func (s *Sequencer) refreshCommitted(path []string, transforms []layout.Transform) {
	s.current = make(map[string]layout.Transform, len(path))
	s.order = make([]string, len(path))
	for i, id := range path {
		s.current[id] = transforms[i]
		s.order[i] = id
	}
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot returns the frame to render at the given time, back to front.
// While idle it is the committed stack; mid-phase it is interpolated with
// the phase's easing curve.
func (s *Sequencer) Snapshot(now time.Time) []CardFrame {
	if !s.active {
		frames := make([]CardFrame, 0, len(s.order))
		for _, id := range s.order {
			frames = append(frames, CardFrame{ID: id, State: StateStable, Transform: s.current[id]})
		}
		return frames
	}

	ph := s.phases[s.phaseIdx]
	elapsed := now.Sub(s.phaseStart)

	frames := make([]CardFrame, 0, len(ph.nodes))
	for _, n := range ph.nodes {
		t := 1.0
		if ph.duration > 0 {
			// Each card's clock starts after its stagger delay.
			t = float64(elapsed-n.delay) / float64(ph.duration)
		}
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		eased := t
		if ph.easing != nil {
			eased = ph.easing(t)
		}
		frames = append(frames, CardFrame{
			ID:        n.id,
			State:     n.state,
			Transform: layout.Lerp(n.from, n.to, eased),
		})
	}
	return frames
}
