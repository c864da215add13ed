package cycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Cycler applies Machine transitions to a list of elements. It owns the
// pending frame, the watcher registrations and event dispatch.
type Cycler struct {
	id        string
	elements  []Element
	tag       string
	machine   *Machine
	observer  Observer
	scheduler Scheduler
	logger    zerolog.Logger

	frameID      FrameID
	framePending bool

	dispatching bool
	closed      bool
	detach      []func()
}

// New builds a Cycler over elements and starts it: click handlers are
// registered, index 0 is activated, and the frame loop starts unless a
// visibility or breakpoint option holds it dormant.
func New(elements []Element, opts ...Option) (*Cycler, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validate(o); err != nil {
		return nil, err
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	var observer Observer = nopObserver{}
	if len(o.observers) > 0 {
		observer = o.observers
	}

	s := State{
		Count:               len(elements),
		Interval:            o.interval,
		Loop:                o.loop,
		HasVisibility:       o.hasVisibility,
		VisibilityThreshold: o.visibilityThreshold,
		HasBreakpoint:       o.hasBreakpoint,
		Breakpoint:          o.breakpoint,
	}
	if o.hasBreakpoint {
		s.BelowBreakpoint = o.viewport.Width() <= o.breakpoint
	}

	c := &Cycler{
		id:        o.id,
		elements:  append([]Element(nil), elements...),
		tag:       o.activeTag,
		machine:   NewMachine(s),
		observer:  observer,
		scheduler: o.scheduler,
		logger:    o.logger.With().Str("cycler", o.id).Logger(),
	}

	for i, el := range c.elements {
		clickable, ok := el.(Clickable)
		if !ok {
			continue
		}
		index := i
		c.detach = append(c.detach, clickable.OnClick(func() {
			c.handleClick(index)
		}))
	}

	if len(c.elements) > 0 {
		if err := c.Activate(0, TriggerInterval); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	if o.hasVisibility {
		c.detach = append(c.detach, o.visibility.Observe(o.visibilityTarget, o.visibilityThreshold, c.handleVisibility))
	} else if !c.machine.state.Running {
		c.apply(c.machine.StartInterval())
	}

	if o.hasBreakpoint {
		c.detach = append(c.detach, o.viewport.OnResize(c.handleResize))
		c.handleResize(o.viewport.Width())
	}

	c.logger.Debug().
		Int("elements", len(c.elements)).
		Dur("interval", o.interval).
		Bool("loop", o.loop).
		Msg("cycler started")

	return c, nil
}

func validate(o options) error {
	switch {
	case o.interval <= 0:
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidConfiguration, o.interval)
	case o.activeTag == "":
		return fmt.Errorf("%w: active tag is empty", ErrInvalidConfiguration)
	case o.scheduler == nil:
		return fmt.Errorf("%w: no scheduler", ErrInvalidConfiguration)
	case o.hasVisibility && o.visibility == nil:
		return fmt.Errorf("%w: visibility option without a source", ErrInvalidConfiguration)
	case o.hasVisibility && (o.visibilityThreshold < 0 || o.visibilityThreshold > 1):
		return fmt.Errorf("%w: visibility threshold %v not in [0, 1]", ErrInvalidConfiguration, o.visibilityThreshold)
	case o.hasBreakpoint && o.viewport == nil:
		return fmt.Errorf("%w: breakpoint option without a viewport", ErrInvalidConfiguration)
	}
	return nil
}

// ID returns the instance id.
func (c *Cycler) ID() string { return c.id }

// Len returns the number of elements.
func (c *Cycler) Len() int { return len(c.elements) }

// Current returns the active index.
func (c *Cycler) Current() int { return c.machine.state.Current }

// Paused reports whether advancement is suspended.
func (c *Cycler) Paused() bool { return c.machine.state.Paused }

// PausedByBreakpoint reports whether the breakpoint holds the pause.
func (c *Cycler) PausedByBreakpoint() bool { return c.machine.state.PausedByBreakpoint }

// Running reports whether a frame loop is scheduled.
func (c *Cycler) Running() bool { return c.machine.state.Running }

// Visible returns the last visibility verdict.
func (c *Cycler) Visible() bool { return c.machine.state.Visible }

// Snapshot returns a copy of the full state.
func (c *Cycler) Snapshot() State { return c.machine.State() }

// Element returns the element at index, or nil when out of range.
func (c *Cycler) Element(index int) Element {
	if index < 0 || index >= len(c.elements) {
		return nil
	}
	return c.elements[index]
}

func (c *Cycler) guard() error {
	if c.closed {
		return ErrClosed
	}
	if c.dispatching {
		return ErrReentrant
	}
	return nil
}

// Activate makes index the current element. Everything up to and including
// index ends up tagged; everything after it is untagged.
func (c *Cycler) Activate(index int, triggeredBy string) error {
	if err := c.guard(); err != nil {
		return err
	}
	effects, err := c.machine.Activate(c.tags(), index, triggeredBy)
	if err != nil {
		return err
	}
	c.apply(effects)
	return nil
}

// Pause suspends advancement. source is one of the Source constants.
func (c *Cycler) Pause(source string) error {
	if err := c.guard(); err != nil {
		return err
	}
	c.apply(c.machine.Pause(source))
	return nil
}

// Resume lifts a pause unless the breakpoint holds it and source is not
// SourceBreakpoint.
func (c *Cycler) Resume(source string) error {
	if err := c.guard(); err != nil {
		return err
	}
	c.apply(c.machine.Resume(source))
	return nil
}

// Frame delivers a scheduled frame. Frames other than the pending one are
// ignored.
func (c *Cycler) Frame(id FrameID, now time.Time) {
	if c.closed || c.dispatching || !c.framePending || id != c.frameID {
		return
	}
	c.framePending = false
	c.apply(c.machine.Frame(now, c.tags()))
}

// Close cancels the pending frame and detaches click, visibility and
// resize registrations. It may be called from an observer; effects of the
// transition being dispatched are dropped. Calling Close more than once is
// a no-op.
func (c *Cycler) Close() error {
	if c.closed {
		return nil
	}
	c.cancelFrame()
	c.closed = true
	c.machine.state.Running = false
	for _, detach := range c.detach {
		if detach != nil {
			detach()
		}
	}
	c.detach = nil
	c.logger.Debug().Msg("cycler closed")
	return nil
}

func (c *Cycler) handleClick(index int) {
	if err := c.Activate(index, TriggerClick); err != nil && !errors.Is(err, ErrClosed) {
		c.logger.Warn().Err(err).Int("index", index).Msg("click dropped")
	}
}

func (c *Cycler) handleVisibility(ratio float64) {
	if err := c.guard(); err != nil {
		if !errors.Is(err, ErrClosed) {
			c.logger.Warn().Err(err).Float64("ratio", ratio).Msg("visibility update dropped")
		}
		return
	}
	c.apply(c.machine.ObserveVisibility(ratio))
}

func (c *Cycler) handleResize(width int) {
	if err := c.guard(); err != nil {
		if !errors.Is(err, ErrClosed) {
			c.logger.Warn().Err(err).Int("width", width).Msg("resize dropped")
		}
		return
	}
	c.apply(c.machine.ObserveWidth(width))
}

func (c *Cycler) tags() []bool {
	tags := make([]bool, len(c.elements))
	for i, el := range c.elements {
		tags[i] = el.HasTag(c.tag)
	}
	return tags
}

// apply stops at the first effect after Close, which an observer may call
// mid-dispatch.
func (c *Cycler) apply(effects []Effect) {
	for _, eff := range effects {
		if c.closed {
			return
		}
		switch e := eff.(type) {
		case SetTag:
			c.elements[e.Index].SetTag(c.tag, e.On)
		case Emit:
			c.emit(e.Event)
		case RequestFrame:
			c.frameID++
			c.framePending = true
			c.scheduler.RequestFrame(c.frameID)
		case CancelFrame:
			c.cancelFrame()
		}
	}
}

func (c *Cycler) cancelFrame() {
	if !c.framePending {
		return
	}
	c.framePending = false
	c.scheduler.CancelFrame(c.frameID)
}

func (c *Cycler) emit(ev Event) {
	ev.Element = c.Element(ev.Index)
	if len(ev.DeactivatedIndices) > 0 {
		ev.Deactivated = make([]Element, len(ev.DeactivatedIndices))
		for i, idx := range ev.DeactivatedIndices {
			ev.Deactivated[i] = c.elements[idx]
		}
	}

	if ev.Kind != KindProgressed {
		c.logger.Trace().
			Str("kind", ev.Kind.String()).
			Int("index", ev.Index).
			Str("triggered_by", ev.TriggeredBy).
			Str("source", ev.Source).
			Msg("event")
	}

	c.dispatching = true
	defer func() { c.dispatching = false }()
	c.observer.Handle(ev)
}
