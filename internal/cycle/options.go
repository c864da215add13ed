package cycle

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tinytelemetry/cycler/internal/model"
)

// Option configures optional behavior of a Cycler.
type Option func(*options)

// options holds the configuration collected from Options.
type options struct {
	interval  time.Duration
	activeTag string
	loop      bool
	observers Observers
	scheduler Scheduler
	logger    zerolog.Logger
	id        string

	visibility          VisibilitySource
	visibilityTarget    Element
	visibilityThreshold float64
	hasVisibility       bool

	viewport      Viewport
	breakpoint    int
	hasBreakpoint bool
}

// defaultOptions returns options with the shared defaults.
func defaultOptions() options {
	return options{
		interval:            model.DefaultInterval,
		activeTag:           model.DefaultActiveTag,
		visibilityThreshold: model.DefaultVisibilityThreshold,
		logger:              zerolog.Nop(),
	}
}

// WithInterval sets how long each element stays current. Must be > 0.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// WithActiveTag sets the tag toggled on elements. Defaults to "active".
func WithActiveTag(tag string) Option {
	return func(o *options) {
		o.activeTag = tag
	}
}

// WithLoop makes the cycle wrap to index 0 after the last element instead
// of stopping there.
func WithLoop(loop bool) Option {
	return func(o *options) {
		o.loop = loop
	}
}

// WithObserver adds an event observer. Observers are called in the order
// they were added.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, obs)
	}
}

// WithScheduler sets the frame scheduler. Required.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithID sets the instance id used in log context. Defaults to a random
// UUID.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// WithVisibility gates the cycle on target being at least threshold
// visible, as reported by source. threshold must be in [0, 1]; 0 treats
// every report as visible.
func WithVisibility(source VisibilitySource, target Element, threshold float64) Option {
	return func(o *options) {
		o.visibility = source
		o.visibilityTarget = target
		o.visibilityThreshold = threshold
		o.hasVisibility = true
	}
}

// WithBreakpoint pauses the cycle while the viewport is width or narrower.
func WithBreakpoint(viewport Viewport, width int) Option {
	return func(o *options) {
		o.viewport = viewport
		o.breakpoint = width
		o.hasBreakpoint = true
	}
}
