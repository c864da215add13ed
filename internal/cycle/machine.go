package cycle

import (
	"fmt"
	"slices"
	"time"
)

// State is the full cycler state. It is a plain value so a Machine can be
// inspected and copied freely.
type State struct {
	Count    int
	Current  int
	Interval time.Duration
	Loop     bool

	// Running is true while a frame loop is scheduled.
	Running bool

	Paused             bool
	PausedByBreakpoint bool

	HasVisibility       bool
	Visible             bool
	VisibilityThreshold float64

	HasBreakpoint   bool
	Breakpoint      int
	BelowBreakpoint bool

	// IntervalStart is the timestamp of the first frame of the current
	// interval window; valid only when HasIntervalStart is set.
	IntervalStart    time.Time
	HasIntervalStart bool
}

// Effect is an instruction produced by a Machine transition. The shell
// applies effects in the order they are returned.
type Effect interface {
	isEffect()
}

// SetTag adds or removes the active tag on the element at Index.
type SetTag struct {
	Index int
	On    bool
}

// Emit dispatches Event to observers. Element fields are left empty by the
// Machine and filled in by the shell.
type Emit struct {
	Event Event
}

// RequestFrame asks the scheduler for the next frame.
type RequestFrame struct{}

// CancelFrame drops any pending frame.
type CancelFrame struct{}

func (SetTag) isEffect()       {}
func (Emit) isEffect()         {}
func (RequestFrame) isEffect() {}
func (CancelFrame) isEffect()  {}

// Machine is the pure activation state machine. Transitions mutate only
// the Machine's own State and describe every side effect as an Effect.
type Machine struct {
	state State
}

// NewMachine returns a Machine starting from s.
func NewMachine(s State) *Machine {
	return &Machine{state: s}
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

// atEnd reports whether the cycle has nowhere left to advance to.
func (m *Machine) atEnd() bool {
	return m.state.Count == 0 || (!m.state.Loop && m.state.Current >= m.state.Count-1)
}

// Activate moves the active index to index. tags holds the current tag
// state of every element and must have length Count.
func (m *Machine) Activate(tags []bool, index int, triggeredBy string) ([]Effect, error) {
	if index < 0 || index >= m.state.Count {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidIndex, index, m.state.Count)
	}
	if len(tags) != m.state.Count {
		return nil, fmt.Errorf("%w: got %d tags for %d elements", ErrInvalidIndex, len(tags), m.state.Count)
	}

	effects := []Effect{CancelFrame{}}
	m.state.Running = false

	var deactivated []int
	for i := index + 1; i < m.state.Count; i++ {
		if !tags[i] {
			continue
		}
		deactivated = append(deactivated, i)
		effects = append(effects,
			SetTag{Index: i, On: false},
			Emit{Event: Event{
				Kind:               KindDeactivated,
				Index:              i,
				TriggeredBy:        triggeredBy,
				DeactivatedIndices: slices.Clone(deactivated),
			}},
		)
	}

	for i := 0; i <= index; i++ {
		if tags[i] && i != index {
			continue
		}
		trigger := TriggerImmediate
		if i == index {
			trigger = triggeredBy
		}
		effects = append(effects,
			SetTag{Index: i, On: true},
			Emit{Event: Event{Kind: KindActivated, Index: i, TriggeredBy: trigger}},
		)
	}

	m.state.Current = index

	if m.state.Loop || index < m.state.Count-1 {
		effects = append(effects, m.StartInterval()...)
	}
	return effects, nil
}

// StartInterval starts a fresh interval window unless something holds the
// loop dormant: a hidden visibility target, a viewport at or under the
// breakpoint, an active pause, or a finished non-looping cycle.
func (m *Machine) StartInterval() []Effect {
	s := &m.state
	if s.HasVisibility && !s.Visible {
		return nil
	}
	if s.HasBreakpoint && s.BelowBreakpoint {
		return nil
	}
	if s.Paused || m.atEnd() {
		return nil
	}

	s.HasIntervalStart = false
	s.Running = true
	return []Effect{
		Emit{Event: Event{Kind: KindStarted, Index: s.Current}},
		RequestFrame{},
	}
}

// Frame advances the loop to now. tags is the current element tag state,
// needed when the frame completes an interval and activates the next index.
func (m *Machine) Frame(now time.Time, tags []bool) []Effect {
	s := &m.state
	if !s.Running {
		return nil
	}

	if !s.HasIntervalStart {
		s.IntervalStart = now
		s.HasIntervalStart = true
	}

	elapsed := now.Sub(s.IntervalStart)
	progress := float64(elapsed) / float64(s.Interval)

	effects := make([]Effect, 0, s.Current+2)
	effects = append(effects, Emit{Event: Event{Kind: KindProgressed, Index: s.Current, Progress: progress}})
	for i := 0; i < s.Current; i++ {
		effects = append(effects, Emit{Event: Event{Kind: KindProgressed, Index: i, Progress: 1}})
	}

	if elapsed < s.Interval {
		return append(effects, RequestFrame{})
	}

	s.IntervalStart = now
	next := s.Current + 1
	if next >= s.Count {
		if !s.Loop {
			s.Running = false
			return effects
		}
		next = 0
	}

	more, err := m.Activate(tags, next, TriggerInterval)
	if err != nil {
		s.Running = false
		return effects
	}
	return append(effects, more...)
}

// Pause suspends advancement. It is a no-op when already paused.
func (m *Machine) Pause(source string) []Effect {
	s := &m.state
	if s.Paused {
		return nil
	}
	s.Paused = true
	s.Running = false
	return []Effect{
		CancelFrame{},
		Emit{Event: Event{Kind: KindPaused, Index: s.Current, Source: source}},
	}
}

// Resume lifts a pause. A non-breakpoint resume cannot lift a pause held
// by the breakpoint.
func (m *Machine) Resume(source string) []Effect {
	s := &m.state
	if !s.Paused {
		return nil
	}
	if source != SourceBreakpoint && s.PausedByBreakpoint {
		return nil
	}
	s.Paused = false
	effects := m.StartInterval()
	return append(effects, Emit{Event: Event{Kind: KindResumed, Index: s.Current, Source: source}})
}

// ObserveVisibility records a visibility ratio for the configured target.
func (m *Machine) ObserveVisibility(ratio float64) []Effect {
	s := &m.state
	s.Visible = ratio >= s.VisibilityThreshold
	if !s.Visible {
		return m.Pause(SourceVisibility)
	}

	effects := m.Resume(SourceVisibility)
	if !s.Paused && !s.Running {
		effects = append(effects, m.StartInterval()...)
	}
	return effects
}

// ObserveWidth evaluates the breakpoint against a viewport width.
func (m *Machine) ObserveWidth(width int) []Effect {
	s := &m.state
	if !s.HasBreakpoint {
		return nil
	}
	s.BelowBreakpoint = width <= s.Breakpoint
	if s.BelowBreakpoint {
		effects := m.Pause(SourceBreakpoint)
		s.PausedByBreakpoint = true
		return effects
	}
	if s.PausedByBreakpoint {
		effects := m.Resume(SourceBreakpoint)
		s.PausedByBreakpoint = false
		return effects
	}
	return nil
}
