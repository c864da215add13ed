package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tinytelemetry/cycler/internal/logging"
	"github.com/tinytelemetry/cycler/internal/model"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := newViper()
	var configPath string
	var cfg appConfig

	root := &cobra.Command{
		Use:   "cycler",
		Short: "Cycle through a deck of slides on a timer",
		Long: "cycler shows a deck of slides as tabs and advances through them on a fixed\n" +
			"interval. Earlier slides stay marked as done, clicking a tab jumps to it,\n" +
			"and the cycle pauses while the terminal is too narrow or the deck is hidden.",
		Version:       fmt.Sprintf("%s (commit %s, built %s, %s, %s/%s)", version, commit, buildTime, goVersion, runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}
			loaded, err := loadConfig(v, configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = loaded
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/cycler/config.yml)")
	flags.Duration("interval", model.DefaultInterval, "time each slide stays current")
	flags.Bool("loop", false, "wrap to the first slide after the last")
	flags.String("active-tag", model.DefaultActiveTag, "tag set on active slides")
	flags.Int("breakpoint", model.DefaultBreakpoint, "pause while the terminal is this many columns or narrower (0 disables)")
	flags.Float64("visibility-threshold", model.DefaultVisibilityThreshold, "share of the slide pane that must be visible to keep cycling")
	flags.Bool("pause-on-blur", false, "pause while the terminal window is unfocused")
	flags.String("slides-file", "", "YAML file with the slides to show")
	flags.Int("frame-rate", model.DefaultFrameRate, "progress updates per second")
	flags.String("log-level", model.DefaultLogLevel, "log level (trace, debug, info, warn, error)")
	flags.String("log-format", model.DefaultLogFormat, "log format (console or json)")
	flags.String("log-file", "", "log file (default is $HOME/.local/state/cycler/cycler.log for the terminal UI, stderr for run)")

	root.AddCommand(newRunCmd(&cfg))
	return root
}

func newRunCmd(cfg *appConfig) *cobra.Command {
	var opts headlessOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Cycle without a terminal UI, logging events and reading commands from stdin",
		Long: "run cycles the deck headlessly. Each event is logged. Commands are read\n" +
			"from stdin, one per line:\n\n" +
			"  click N | goto N | N     activate slide N (one-based)\n" +
			"  pause | resume           manual pause and resume\n" +
			"  width COLS               report a new viewport width\n" +
			"  visible RATIO            report how much of the deck is visible\n" +
			"  status                   log the current state\n" +
			"  quit                     stop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := os.Stderr
			if cfg.LogFile != "" {
				f, err := logging.OpenFile(cfg.LogFile)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			logger, err := logging.New(out, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			return runHeadless(ctx, *cfg, opts, logger, os.Stdin)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", 120, "initial viewport width in columns, used with --breakpoint")
	cmd.Flags().DurationVar(&opts.Duration, "duration", 0, "stop after this long (0 runs until interrupted)")
	return cmd
}
