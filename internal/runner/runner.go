// Package runner hosts a cycle.Cycler without a terminal UI. A single
// goroutine owns the cycler; frames come from a time.Ticker and every
// other interaction is funnelled through Do.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinytelemetry/cycler/internal/cycle"
)

// ErrStopped is returned by Do once Run has returned.
var ErrStopped = errors.New("runner: stopped")

// Runner is a cycle.Scheduler that delivers frames on a fixed tick.
type Runner struct {
	frame  time.Duration
	logger zerolog.Logger
	cmds   chan func(*cycle.Cycler)
	done   chan struct{}

	cycler     *cycle.Cycler
	pending    cycle.FrameID
	hasPending bool
}

// New returns a Runner ticking every frame.
func New(frame time.Duration, logger zerolog.Logger) *Runner {
	return &Runner{
		frame:  frame,
		logger: logger,
		cmds:   make(chan func(*cycle.Cycler)),
		done:   make(chan struct{}),
	}
}

// NewCycler builds a cycler scheduled by r. It must be called before Run.
func (r *Runner) NewCycler(elements []cycle.Element, opts ...cycle.Option) (*cycle.Cycler, error) {
	opts = append(opts, cycle.WithScheduler(r), cycle.WithLogger(r.logger))
	c, err := cycle.New(elements, opts...)
	if err != nil {
		return nil, err
	}
	r.cycler = c
	return c, nil
}

// RequestFrame implements cycle.Scheduler.
func (r *Runner) RequestFrame(id cycle.FrameID) {
	r.pending = id
	r.hasPending = true
}

// CancelFrame implements cycle.Scheduler.
func (r *Runner) CancelFrame(id cycle.FrameID) {
	if r.hasPending && r.pending == id {
		r.hasPending = false
	}
}

// Run owns the cycler until ctx is done, then closes it. A panic raised by
// an observer ends Run with an error.
func (r *Runner) Run(ctx context.Context) (err error) {
	if r.cycler == nil {
		return errors.New("runner: no cycler")
	}
	defer close(r.done)
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("runner: panic in cycle loop: %v", p)
		}
		_ = r.cycler.Close()
	}()

	ticker := time.NewTicker(r.frame)
	defer ticker.Stop()

	r.logger.Debug().Dur("frame", r.frame).Msg("runner started")
	for {
		select {
		case <-ctx.Done():
			r.logger.Debug().Msg("runner stopped")
			return nil
		case now := <-ticker.C:
			if !r.hasPending {
				continue
			}
			id := r.pending
			r.hasPending = false
			r.cycler.Frame(id, now)
		case fn := <-r.cmds:
			fn(r.cycler)
		}
	}
}

// Do runs fn on the owner goroutine. It returns once fn has been handed
// over, not when it has finished.
func (r *Runner) Do(ctx context.Context, fn func(*cycle.Cycler)) error {
	select {
	case r.cmds <- fn:
		return nil
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Query runs fn on the owner goroutine and waits for it to finish.
func (r *Runner) Query(ctx context.Context, fn func(*cycle.Cycler)) error {
	finished := make(chan struct{})
	err := r.Do(ctx, func(c *cycle.Cycler) {
		defer close(finished)
		fn(c)
	})
	if err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
