package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinytelemetry/cycler/internal/logging"
)

// syncBuffer is a bytes.Buffer safe for the runner and reader goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Split(strings.TrimSpace(b.buf.String()), "\n")
}

func (b *syncBuffer) hasLine(parts ...string) bool {
	for _, line := range b.lines() {
		ok := true
		for _, p := range parts {
			if !strings.Contains(line, p) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func testAppConfig() appConfig {
	return appConfig{
		Interval:            time.Second,
		ActiveTag:           "active",
		VisibilityThreshold: 0.5,
		FrameRate:           50,
		LogLevel:            "debug",
		LogFormat:           "json",
	}
}

func testLogger(t *testing.T) (zerolog.Logger, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	logger, err := logging.New(buf, "debug", "json")
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	return logger, buf
}

func TestRunHeadless_CommandsFromInput(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger(t)
	in := strings.NewReader("3\n\n# comment\nstatus\nbogus\nquit\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := runHeadless(ctx, testAppConfig(), headlessOptions{}, logger, in); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("runHeadless returned only after the timeout; quit was ignored")
	}

	if !buf.hasLine(`"message":"activated"`, `"index":2`, `"triggered_by":"click"`) {
		t.Fatalf("missing click activation in log:\n%s", strings.Join(buf.lines(), "\n"))
	}
	if !buf.hasLine(`"message":"status"`, `"current":2`) {
		t.Fatal("missing status line")
	}
	if !buf.hasLine(`"message":"bad command"`) {
		t.Fatal("missing bad command warning")
	}
}

func TestRunHeadless_AdvancesUntilDuration(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger(t)
	cfg := testAppConfig()
	cfg.Interval = 40 * time.Millisecond
	cfg.FrameRate = 200

	start := time.Now()
	err := runHeadless(context.Background(), cfg, headlessOptions{Duration: 500 * time.Millisecond}, logger, strings.NewReader(""))
	if err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 400*time.Millisecond {
		t.Fatalf("returned after %s, want about 500ms", elapsed)
	}

	if !buf.hasLine(`"message":"activated"`, `"index":4`, `"triggered_by":"interval"`) {
		t.Fatalf("deck did not reach the last slide:\n%s", strings.Join(buf.lines(), "\n"))
	}
}

func TestRunHeadless_BreakpointWidthCommands(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger(t)
	cfg := testAppConfig()
	cfg.Breakpoint = 80

	in := strings.NewReader("width 100\nquit\n")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := runHeadless(ctx, cfg, headlessOptions{Width: 60}, logger, in); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if !buf.hasLine(`"message":"paused"`, `"source":"breakpoint"`) {
		t.Fatal("missing breakpoint pause")
	}
	if !buf.hasLine(`"message":"resumed"`, `"source":"breakpoint"`) {
		t.Fatal("missing breakpoint resume")
	}
}

func TestRunHeadless_BadSlidesFile(t *testing.T) {
	t.Parallel()

	logger, _ := testLogger(t)
	cfg := testAppConfig()
	cfg.SlidesFile = writeSlides(t, "slides: []\n")

	if err := runHeadless(context.Background(), cfg, headlessOptions{}, logger, strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty slides file")
	}
}
