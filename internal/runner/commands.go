package runner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tinytelemetry/cycler/internal/cycle"
)

// TriggerCommand marks activations requested through a goto command.
const TriggerCommand = "command"

// Op is a headless command verb.
type Op string

const (
	OpClick   Op = "click"
	OpGoto    Op = "goto"
	OpPause   Op = "pause"
	OpResume  Op = "resume"
	OpWidth   Op = "width"
	OpVisible Op = "visible"
	OpStatus  Op = "status"
	OpQuit    Op = "quit"
)

// Command is one parsed line of headless input.
type Command struct {
	Op    Op
	Index int // zero-based
	Width int
	Ratio float64
}

// ParseCommand parses a line such as "click 2", "width 90" or "pause".
// Slide numbers are one-based; a bare number is shorthand for click.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	if n, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
		return Command{Op: OpClick, Index: n - 1}, nil
	}

	op := Op(fields[0])
	args := fields[1:]
	switch op {
	case OpPause, OpResume, OpStatus, OpQuit:
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%s takes no arguments", op)
		}
		return Command{Op: op}, nil
	case OpClick, OpGoto:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%s needs a slide number", op)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, fmt.Errorf("%s: invalid slide number %q", op, args[0])
		}
		return Command{Op: op, Index: n - 1}, nil
	case OpWidth:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("width needs a column count")
		}
		w, err := strconv.Atoi(args[0])
		if err != nil || w < 0 {
			return Command{}, fmt.Errorf("width: invalid column count %q", args[0])
		}
		return Command{Op: op, Width: w}, nil
	case OpVisible:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("visible needs a ratio")
		}
		r, err := strconv.ParseFloat(args[0], 64)
		if err != nil || r < 0 || r > 1 {
			return Command{}, fmt.Errorf("visible: ratio %q not in [0, 1]", args[0])
		}
		return Command{Op: op, Ratio: r}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

// Deck is the set of signal sources a command can drive.
type Deck struct {
	Items      []*Item
	Viewport   *Viewport
	Visibility *Visibility
	Logger     zerolog.Logger
}

// Apply executes cmd against c. It must run on the owner goroutine.
func (cmd Command) Apply(c *cycle.Cycler, d Deck) error {
	switch cmd.Op {
	case OpClick:
		if cmd.Index < 0 || cmd.Index >= len(d.Items) {
			return fmt.Errorf("%w: slide %d", cycle.ErrInvalidIndex, cmd.Index+1)
		}
		d.Items[cmd.Index].Click()
	case OpGoto:
		return c.Activate(cmd.Index, TriggerCommand)
	case OpPause:
		return c.Pause(cycle.SourceManual)
	case OpResume:
		return c.Resume(cycle.SourceManual)
	case OpWidth:
		if d.Viewport == nil {
			return fmt.Errorf("no breakpoint configured")
		}
		d.Viewport.SetWidth(cmd.Width)
	case OpVisible:
		if d.Visibility == nil {
			return fmt.Errorf("no visibility gate configured")
		}
		d.Visibility.SetRatio(cmd.Ratio)
	case OpStatus:
		s := c.Snapshot()
		d.Logger.Info().
			Int("current", s.Current).
			Int("count", s.Count).
			Bool("running", s.Running).
			Bool("paused", s.Paused).
			Bool("paused_by_breakpoint", s.PausedByBreakpoint).
			Msg("status")
	}
	return nil
}
