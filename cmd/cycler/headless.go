package main

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/cycler/internal/cycle"
	"github.com/tinytelemetry/cycler/internal/logging"
	"github.com/tinytelemetry/cycler/internal/model"
	"github.com/tinytelemetry/cycler/internal/runner"
)

// headlessOptions are the flags local to the run command.
type headlessOptions struct {
	Width    int
	Duration time.Duration
}

// runHeadless cycles the deck without a terminal UI, logging every event.
// Commands are read line by line from in until ctx ends or a quit command
// arrives. EOF on in does not stop the cycle.
func runHeadless(ctx context.Context, cfg appConfig, opts headlessOptions, logger zerolog.Logger, in io.Reader) error {
	deck, err := loadDeck(cfg.SlidesFile)
	if err != nil {
		return err
	}

	items := make([]*runner.Item, len(deck.Slides))
	for i, s := range deck.Slides {
		items[i] = runner.NewItem(s.Title)
	}

	d := runner.Deck{
		Items:      items,
		Visibility: runner.NewVisibility(1),
		Logger:     logger,
	}

	cycleOpts := []cycle.Option{
		cycle.WithInterval(cfg.Interval),
		cycle.WithLoop(cfg.Loop),
		cycle.WithActiveTag(cfg.ActiveTag),
		cycle.WithObserver(logging.NewEventObserver(logger)),
		cycle.WithVisibility(d.Visibility, items[0], cfg.VisibilityThreshold),
	}
	if cfg.Breakpoint > 0 {
		d.Viewport = runner.NewViewport(opts.Width)
		cycleOpts = append(cycleOpts, cycle.WithBreakpoint(d.Viewport, cfg.Breakpoint))
	}

	r := runner.New(model.FrameDuration(cfg.FrameRate), logger)
	if _, err := r.NewCycler(runner.Elements(items), cycleOpts...); err != nil {
		return err
	}

	if opts.Duration > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, opts.Duration)
		defer cancelTimeout()
	}
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	// Use errgroup for concurrent goroutine lifecycle management.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.Run(gctx)
	})

	g.Go(func() error {
		return readCommands(gctx, in, r, d, quit)
	})

	logger.Info().Int("slides", len(items)).Dur("interval", cfg.Interval).Msg("cycling")
	return g.Wait()
}

func readCommands(ctx context.Context, in io.Reader, r *runner.Runner, d runner.Deck, quit context.CancelFunc) error {
	src := runner.NewLineSource(ctx, in, d.Logger)
	defer src.Stop()

	for {
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-src.Lines():
			if !ok {
				return nil
			}
			line = l
		}

		cmd, err := runner.ParseCommand(line)
		if err != nil {
			d.Logger.Warn().Err(err).Str("line", line).Msg("bad command")
			continue
		}
		if cmd.Op == runner.OpQuit {
			quit()
			return nil
		}

		err = r.Query(ctx, func(c *cycle.Cycler) {
			if err := cmd.Apply(c, d); err != nil {
				d.Logger.Warn().Err(err).Str("command", string(cmd.Op)).Msg("command failed")
			}
		})
		if err != nil {
			if errors.Is(err, runner.ErrStopped) || ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}
