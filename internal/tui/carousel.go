package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/cycler/internal/cycle"
	"github.com/tinytelemetry/cycler/internal/logging"
	"github.com/tinytelemetry/cycler/internal/model"
)

// TriggerKey marks activations made from the keyboard.
const TriggerKey = "key"

const maxEventLines = 200

// Config holds the carousel settings.
type Config struct {
	Interval            time.Duration
	Loop                bool
	ActiveTag           string
	Breakpoint          int // columns, 0 disables the breakpoint
	VisibilityThreshold float64
	PauseOnBlur         bool
	FrameRate           int
}

// CarouselPage shows a deck of slides as tabs that a cycler advances on a
// timer. Each tab carries a progress bar; the active slide fills the body
// pane.
type CarouselPage struct {
	cfg    Config
	logger zerolog.Logger
	keys   KeyMap
	help   help.Model
	bar    progress.Model

	panels   []*Panel
	progress []float64
	events   []string

	cycler     *cycle.Cycler
	sched      *tickScheduler
	viewport   *terminalViewport
	visibility *paneVisibility

	focused bool
	width   int
	height  int
	err     error
	now     func() time.Time
}

// NewCarouselPage validates cfg and prepares a page for deck. The cycler
// itself is built on the first window size message, once the terminal
// geometry is known.
func NewCarouselPage(deck model.Deck, cfg Config, logger zerolog.Logger) (*CarouselPage, error) {
	if len(deck.Slides) == 0 {
		return nil, errors.New("tui: deck has no slides")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %s", cycle.ErrInvalidConfiguration, cfg.Interval)
	}
	if cfg.VisibilityThreshold < 0 || cfg.VisibilityThreshold > 1 {
		return nil, fmt.Errorf("%w: visibility threshold %v not in [0, 1]", cycle.ErrInvalidConfiguration, cfg.VisibilityThreshold)
	}
	if cfg.ActiveTag == "" {
		cfg.ActiveTag = model.DefaultActiveTag
	}

	panels := make([]*Panel, len(deck.Slides))
	for i, s := range deck.Slides {
		panels[i] = NewPanel(s)
	}

	return &CarouselPage{
		cfg:    cfg,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(tabBarWidth),
			progress.WithoutPercentage(),
		),
		panels:     panels,
		progress:   make([]float64, len(panels)),
		sched:      &tickScheduler{frame: model.FrameDuration(cfg.FrameRate)},
		viewport:   &terminalViewport{},
		visibility: &paneVisibility{},
		focused:    true,
		now:        time.Now,
	}, nil
}

func (p *CarouselPage) ID() string { return "carousel" }

// Err returns the error that stopped the page, if any.
func (p *CarouselPage) Err() error { return p.err }

// Close disposes of the cycler.
func (p *CarouselPage) Close() error {
	if p.cycler == nil {
		return nil
	}
	return p.cycler.Close()
}

func (p *CarouselPage) start() error {
	opts := []cycle.Option{
		cycle.WithInterval(p.cfg.Interval),
		cycle.WithLoop(p.cfg.Loop),
		cycle.WithActiveTag(p.cfg.ActiveTag),
		cycle.WithScheduler(p.sched),
		cycle.WithLogger(p.logger),
		cycle.WithObserver(logging.NewEventObserver(p.logger)),
		cycle.WithObserver(cycle.ObserverFunc(p.handleEvent)),
		cycle.WithVisibility(p.visibility, p.panels[0], p.cfg.VisibilityThreshold),
	}
	if p.cfg.Breakpoint > 0 {
		opts = append(opts, cycle.WithBreakpoint(p.viewport, p.cfg.Breakpoint))
	}

	c, err := cycle.New(panelElements(p.panels), opts...)
	if err != nil {
		return err
	}
	p.cycler = c
	return nil
}

// handleEvent mirrors cycle events into page state. It must not call back
// into the cycler.
func (p *CarouselPage) handleEvent(ev cycle.Event) {
	switch ev.Kind {
	case cycle.KindActivated:
		p.progress[ev.Index] = 0
		p.logEvent("activated %d (%s)", ev.Index+1, ev.TriggeredBy)
	case cycle.KindDeactivated:
		p.progress[ev.Index] = 0
		p.logEvent("deactivated %d", ev.Index+1)
	case cycle.KindPaused:
		p.logEvent("paused by %s", sourceLabel(ev.Source))
	case cycle.KindResumed:
		p.logEvent("resumed by %s", sourceLabel(ev.Source))
	case cycle.KindStarted:
		p.logEvent("started at %d", ev.Index+1)
	case cycle.KindProgressed:
		p.progress[ev.Index] = min(max(ev.Progress, 0), 1)
	}
}

func (p *CarouselPage) logEvent(format string, args ...any) {
	line := p.now().Format("15:04:05") + " " + fmt.Sprintf(format, args...)
	p.events = append(p.events, line)
	if len(p.events) > maxEventLines {
		p.events = p.events[len(p.events)-maxEventLines:]
	}
}

func sourceLabel(source string) string {
	if source == cycle.SourceManual {
		return "user"
	}
	return source
}
