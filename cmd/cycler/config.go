package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/cycler/internal/model"
	"github.com/tinytelemetry/cycler/internal/tui"
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	Interval            time.Duration `mapstructure:"interval"`
	Loop                bool          `mapstructure:"loop"`
	ActiveTag           string        `mapstructure:"active-tag"`
	Breakpoint          int           `mapstructure:"breakpoint"`
	VisibilityThreshold float64       `mapstructure:"visibility-threshold"`
	PauseOnBlur         bool          `mapstructure:"pause-on-blur"`
	SlidesFile          string        `mapstructure:"slides-file"`
	FrameRate           int           `mapstructure:"frame-rate"`
	LogLevel            string        `mapstructure:"log-level"`
	LogFormat           string        `mapstructure:"log-format"`
	LogFile             string        `mapstructure:"log-file"`
	ConfigPath          string        `mapstructure:"-"` // not from config file
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CYCLER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("interval", model.DefaultInterval)
	v.SetDefault("loop", false)
	v.SetDefault("active-tag", model.DefaultActiveTag)
	v.SetDefault("breakpoint", model.DefaultBreakpoint)
	v.SetDefault("visibility-threshold", model.DefaultVisibilityThreshold)
	v.SetDefault("pause-on-blur", false)
	v.SetDefault("slides-file", "")
	v.SetDefault("frame-rate", model.DefaultFrameRate)
	v.SetDefault("log-level", model.DefaultLogLevel)
	v.SetDefault("log-format", model.DefaultLogFormat)
	v.SetDefault("log-file", "")
	return v
}

func loadConfig(v *viper.Viper, configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "cycler", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.Interval <= 0 {
		return cfg, fmt.Errorf("invalid interval: %s", cfg.Interval)
	}
	if cfg.FrameRate <= 0 {
		return cfg, fmt.Errorf("invalid frame-rate: %d", cfg.FrameRate)
	}
	if cfg.VisibilityThreshold < 0 || cfg.VisibilityThreshold > 1 {
		return cfg, fmt.Errorf("invalid visibility-threshold: %v", cfg.VisibilityThreshold)
	}
	if cfg.Breakpoint < 0 {
		return cfg, fmt.Errorf("invalid breakpoint: %d", cfg.Breakpoint)
	}
	if strings.TrimSpace(cfg.ActiveTag) == "" {
		return cfg, errors.New("invalid active-tag: empty")
	}

	// Expand ~ in file paths
	cfg.SlidesFile = expandHome(cfg.SlidesFile, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func (c appConfig) carousel() tui.Config {
	return tui.Config{
		Interval:            c.Interval,
		Loop:                c.Loop,
		ActiveTag:           c.ActiveTag,
		Breakpoint:          c.Breakpoint,
		VisibilityThreshold: c.VisibilityThreshold,
		PauseOnBlur:         c.PauseOnBlur,
		FrameRate:           c.FrameRate,
	}
}
