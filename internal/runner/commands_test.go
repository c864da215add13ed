package runner

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/cycler/internal/cycle"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want Command
	}{
		{"2", Command{Op: OpClick, Index: 1}},
		{"click 3", Command{Op: OpClick, Index: 2}},
		{"  GOTO 1 ", Command{Op: OpGoto, Index: 0}},
		{"pause", Command{Op: OpPause}},
		{"resume", Command{Op: OpResume}},
		{"width 72", Command{Op: OpWidth, Width: 72}},
		{"visible 0.25", Command{Op: OpVisible, Ratio: 0.25}},
		{"status", Command{Op: OpStatus}},
		{"quit", Command{Op: OpQuit}},
	}

	for _, tt := range tests {
		got, err := ParseCommand(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestParseCommand_Errors(t *testing.T) {
	t.Parallel()

	for _, line := range []string{
		"",
		"jump 2",
		"click",
		"click two",
		"pause now",
		"width -3",
		"visible 1.5",
		"visible x",
	} {
		_, err := ParseCommand(line)
		assert.Error(t, err, "%q", line)
	}
}

func newDeck(t *testing.T, n int) (*cycle.Cycler, Deck) {
	t.Helper()

	items := make([]*Item, n)
	for i := range items {
		items[i] = NewItem(string(rune('A' + i)))
	}
	d := Deck{
		Items:      items,
		Viewport:   NewViewport(120),
		Visibility: NewVisibility(1),
		Logger:     zerolog.Nop(),
	}
	clock := cycle.NewVirtualClock(time.Unix(0, 0), 10*time.Millisecond)
	c, err := cycle.New(Elements(items),
		cycle.WithScheduler(clock),
		cycle.WithBreakpoint(d.Viewport, 80),
		cycle.WithVisibility(d.Visibility, items[0], 0.5),
	)
	require.NoError(t, err)
	clock.Bind(c)
	t.Cleanup(func() { _ = c.Close() })
	return c, d
}

func TestCommand_Apply(t *testing.T) {
	t.Parallel()

	c, d := newDeck(t, 4)
	require.True(t, c.Running())

	require.NoError(t, Command{Op: OpClick, Index: 2}.Apply(c, d))
	assert.Equal(t, 2, c.Current())
	assert.True(t, d.Items[1].HasTag("active"))

	require.NoError(t, Command{Op: OpGoto, Index: 0}.Apply(c, d))
	assert.Equal(t, 0, c.Current())
	assert.False(t, d.Items[2].HasTag("active"))

	require.NoError(t, Command{Op: OpWidth, Width: 60}.Apply(c, d))
	assert.True(t, c.PausedByBreakpoint())

	require.NoError(t, Command{Op: OpResume}.Apply(c, d))
	assert.True(t, c.Paused(), "manual resume cannot lift a breakpoint pause")

	require.NoError(t, Command{Op: OpWidth, Width: 100}.Apply(c, d))
	assert.False(t, c.Paused())

	require.NoError(t, Command{Op: OpVisible, Ratio: 0.1}.Apply(c, d))
	assert.True(t, c.Paused())
	require.NoError(t, Command{Op: OpVisible, Ratio: 0.9}.Apply(c, d))
	assert.False(t, c.Paused())

	require.NoError(t, Command{Op: OpStatus}.Apply(c, d))
}

func TestCommand_ApplyOutOfRange(t *testing.T) {
	t.Parallel()

	c, d := newDeck(t, 2)
	require.ErrorIs(t, Command{Op: OpClick, Index: 5}.Apply(c, d), cycle.ErrInvalidIndex)
	require.ErrorIs(t, Command{Op: OpGoto, Index: -1}.Apply(c, d), cycle.ErrInvalidIndex)
}
