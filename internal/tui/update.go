package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (p *CarouselPage) Init() tea.Cmd {
	return nil
}

// Update handles messages. Frame requests made by the cycler while handling
// msg come back as the returned command.
func (p *CarouselPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	if p.err != nil {
		return nil, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.help.Width = msg.Width
		p.viewport.setWidth(msg.Width)
		p.visibility.set(p.focused, p.paneFit())
		if p.cycler == nil {
			if err := p.start(); err != nil {
				p.err = err
				return tea.Quit, nil
			}
		}

	case tea.FocusMsg:
		p.focused = true
		p.visibility.set(p.focused, p.paneFit())

	case tea.BlurMsg:
		if p.cfg.PauseOnBlur {
			p.focused = false
			p.visibility.set(p.focused, p.paneFit())
		}

	case FrameMsg:
		if p.cycler != nil {
			p.cycler.Frame(msg.ID, msg.Time)
		}

	case tea.MouseMsg:
		p.handleMouse(msg)

	case tea.KeyMsg:
		if cmd := p.handleKeyPress(msg); cmd != nil {
			return cmd, nil
		}
	}

	return p.sched.cmd(), nil
}
