package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultMaxLineSize is the longest command line a LineSource accepts.
const DefaultMaxLineSize = 64 * 1024

// LineSource reads command lines from a reader in a background goroutine.
// Blank lines and lines starting with '#' are skipped.
type LineSource struct {
	ch     chan string
	cancel context.CancelFunc
}

// NewLineSource starts reading r. The channel returned by Lines closes at
// EOF, on a read error, or after Stop.
func NewLineSource(ctx context.Context, r io.Reader, logger zerolog.Logger) *LineSource {
	ctx, cancel := context.WithCancel(ctx)
	s := &LineSource{
		ch:     make(chan string),
		cancel: cancel,
	}
	go s.read(ctx, r, logger)
	return s
}

func (s *LineSource) read(ctx context.Context, r io.Reader, logger zerolog.Logger) {
	defer close(s.ch)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), DefaultMaxLineSize)

	// A blocked Scan can't observe ctx, so it runs on its own goroutine and
	// is abandoned on Stop.
	results := make(chan string)
	go func() {
		defer close(results)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			select {
			case results <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				logger.Warn().Int("max", DefaultMaxLineSize).Msg("command line too long, stopping input")
				return
			}
			logger.Warn().Err(err).Msg("command input error")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-results:
			if !ok {
				return
			}
			select {
			case s.ch <- line:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *LineSource) Lines() <-chan string { return s.ch }
func (s *LineSource) Stop()                { s.cancel() }
