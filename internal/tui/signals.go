package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/cycler/internal/cycle"
)

// FrameMsg delivers a scheduled frame to the carousel.
type FrameMsg struct {
	ID   cycle.FrameID
	Time time.Time
}

// tickScheduler turns frame requests into tea.Tick commands. Requests made
// during an Update are collected and returned from that Update. A tick that
// was already issued cannot be recalled; the cycler drops it as stale.
type tickScheduler struct {
	frame  time.Duration
	queued []cycle.FrameID
	latest cycle.FrameID
}

func (s *tickScheduler) RequestFrame(id cycle.FrameID) {
	s.queued = append(s.queued, id)
	s.latest = id
}

func (s *tickScheduler) CancelFrame(id cycle.FrameID) {
	for i, q := range s.queued {
		if q == id {
			s.queued = append(s.queued[:i], s.queued[i+1:]...)
			return
		}
	}
}

// cmd drains the queued requests.
func (s *tickScheduler) cmd() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.queued))
	for _, id := range s.queued {
		cmds = append(cmds, tea.Tick(s.frame, func(t time.Time) tea.Msg {
			return FrameMsg{ID: id, Time: t}
		}))
	}
	s.queued = s.queued[:0]
	return tea.Batch(cmds...)
}

// terminalViewport reports the terminal width taken from tea.WindowSizeMsg.
type terminalViewport struct {
	width    int
	handlers []func(int)
}

func (v *terminalViewport) Width() int { return v.width }

func (v *terminalViewport) OnResize(fn func(int)) func() {
	v.handlers = append(v.handlers, fn)
	idx := len(v.handlers) - 1
	return func() { v.handlers[idx] = nil }
}

func (v *terminalViewport) setWidth(width int) {
	if width == v.width {
		return
	}
	v.width = width
	for _, fn := range v.handlers {
		if fn != nil {
			fn(width)
		}
	}
}

// paneVisibility reports how much of the slide pane is on screen: the share
// of its rows that fit in the terminal, or 0 while the terminal is blurred.
type paneVisibility struct {
	focused  bool
	fit      float64
	handlers []func(float64)
}

func (v *paneVisibility) ratio() float64 {
	if !v.focused {
		return 0
	}
	return v.fit
}

func (v *paneVisibility) Observe(_ cycle.Element, _ float64, fn func(float64)) func() {
	v.handlers = append(v.handlers, fn)
	idx := len(v.handlers) - 1
	fn(v.ratio())
	return func() { v.handlers[idx] = nil }
}

func (v *paneVisibility) set(focused bool, fit float64) {
	before := v.ratio()
	v.focused = focused
	v.fit = fit
	after := v.ratio()
	if after == before {
		return
	}
	for _, fn := range v.handlers {
		if fn != nil {
			fn(after)
		}
	}
}
