package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/cycler/internal/cycle"
)

// handleKeyPress dispatches key events. It returns a command only when the
// key ends the program.
func (p *CarouselPage) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	k := p.keys

	switch {
	case key.Matches(msg, k.ForceQuit), key.Matches(msg, k.Quit):
		return tea.Quit

	case key.Matches(msg, k.Help):
		p.help.ShowAll = !p.help.ShowAll

	case p.cycler == nil:
		return nil

	case key.Matches(msg, k.Pause):
		p.togglePause()

	case key.Matches(msg, k.Next):
		next := p.cycler.Current() + 1
		if next >= p.cycler.Len() {
			if !p.cfg.Loop {
				return nil
			}
			next = 0
		}
		p.activate(next)

	case key.Matches(msg, k.Prev):
		prev := p.cycler.Current() - 1
		if prev < 0 {
			if !p.cfg.Loop {
				return nil
			}
			prev = p.cycler.Len() - 1
		}
		p.activate(prev)

	case key.Matches(msg, k.Jump):
		idx := int(msg.Runes[0] - '1')
		if idx < len(p.panels) {
			p.panels[idx].Click()
		}
	}
	return nil
}

func (p *CarouselPage) togglePause() {
	if !p.cycler.Paused() {
		p.report(p.cycler.Pause(cycle.SourceManual))
		return
	}
	if p.cycler.PausedByBreakpoint() {
		p.logEvent("terminal narrower than %d columns, resume held", p.cfg.Breakpoint+1)
		return
	}
	p.report(p.cycler.Resume(cycle.SourceManual))
}

func (p *CarouselPage) activate(index int) {
	p.report(p.cycler.Activate(index, TriggerKey))
}

func (p *CarouselPage) report(err error) {
	if err == nil {
		return
	}
	p.logger.Warn().Err(err).Msg("carousel action failed")
	p.logEvent("error: %v", err)
}

// handleMouse activates the tab under a left click.
func (p *CarouselPage) handleMouse(msg tea.MouseMsg) {
	if p.cycler == nil || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if idx, ok := p.tabAt(msg.X, msg.Y); ok {
		p.panels[idx].Click()
	}
}
