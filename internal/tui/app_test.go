package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type stubPage struct {
	id       string
	next     string
	inits    int
	msgs     int
	closeErr error
	closed   bool
}

func (s *stubPage) ID() string { return s.id }

func (s *stubPage) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	s.msgs++
	if s.next != "" {
		return nil, &PageNav{PageID: s.next}
	}
	return nil, nil
}

func (s *stubPage) View(width, height int) string { return s.id }

func (s *stubPage) Close() error {
	s.closed = true
	return s.closeErr
}

func TestApp_RoutesToRequestedPage(t *testing.T) {
	t.Parallel()

	first := &stubPage{id: "first", next: "second"}
	second := &stubPage{id: "second"}
	app := NewApp(first, second)

	if got := app.View(); got != "first" {
		t.Fatalf("initial view = %q, want first", got)
	}

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if got := app.View(); got != "second" {
		t.Fatalf("view after nav = %q, want second", got)
	}
	if second.inits != 1 {
		t.Fatalf("second page inits = %d, want 1", second.inits)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if first.msgs != 1 || second.msgs != 1 {
		t.Fatalf("msgs = %d/%d, want 1/1", first.msgs, second.msgs)
	}
}

func TestApp_IgnoresUnknownPage(t *testing.T) {
	t.Parallel()

	only := &stubPage{id: "only", next: "missing"}
	app := NewApp(only)

	app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := app.View(); got != "only" {
		t.Fatalf("view = %q, want only", got)
	}
}

func TestApp_CloseJoinsPageErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	a := &stubPage{id: "a", closeErr: boom}
	b := &stubPage{id: "b"}
	app := NewApp(a, b)

	err := app.Close()
	if !errors.Is(err, boom) {
		t.Fatalf("Close error = %v, want boom", err)
	}
	if !a.closed || !b.closed {
		t.Fatal("every page should be closed")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("error text = %q", err.Error())
	}
}
