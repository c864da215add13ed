package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/cycler/internal/logging"
	"github.com/tinytelemetry/cycler/internal/tui"
)

func runTUI(cfg appConfig) error {
	logger, cleanupLogger := configureRuntimeLogger(cfg)
	defer cleanupLogger()

	deck, err := loadDeck(cfg.SlidesFile)
	if err != nil {
		return err
	}

	page, err := tui.NewCarouselPage(deck, cfg.carousel(), logger)
	if err != nil {
		return err
	}
	app := tui.NewApp(page)
	defer app.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if cfg.PauseOnBlur {
		opts = append(opts, tea.WithReportFocus())
	}

	logger.Info().Int("slides", len(deck.Slides)).Str("config", cfg.ConfigPath).Msg("starting terminal ui")

	p := tea.NewProgram(app, opts...)
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal, try: cycler run")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return page.Err()
}

// configureRuntimeLogger sends the TUI's log to a file, since the terminal
// belongs to the UI. It falls back to stderr when the file can't be opened.
func configureRuntimeLogger(cfg appConfig) (zerolog.Logger, func()) {
	path := cfg.LogFile
	if path == "" {
		var err error
		if path, err = logging.DefaultFilePath(); err != nil {
			return stderrLogger(cfg), func() {}
		}
	}

	f, err := logging.OpenFile(path)
	if err != nil {
		return stderrLogger(cfg), func() {}
	}

	logger, err := logging.New(f, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		_ = f.Close()
		return stderrLogger(cfg), func() {}
	}
	return logger, func() { _ = f.Close() }
}

func stderrLogger(cfg appConfig) zerolog.Logger {
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return logger
}
