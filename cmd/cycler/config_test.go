package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/tinytelemetry/cycler/internal/model"
)

func writeHomeConfig(t *testing.T, body string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	if body == "" {
		return home
	}
	dir := filepath.Join(home, ".config", "cycler")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return home
}

func TestLoadConfig_Defaults(t *testing.T) {
	writeHomeConfig(t, "")

	cfg, err := loadConfig(newViper(), "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Interval != model.DefaultInterval {
		t.Fatalf("interval = %s, want %s", cfg.Interval, model.DefaultInterval)
	}
	if cfg.FrameRate != model.DefaultFrameRate {
		t.Fatalf("frame-rate = %d, want %d", cfg.FrameRate, model.DefaultFrameRate)
	}
	if cfg.ActiveTag != model.DefaultActiveTag {
		t.Fatalf("active-tag = %q, want %q", cfg.ActiveTag, model.DefaultActiveTag)
	}
	if cfg.Loop || cfg.PauseOnBlur || cfg.Breakpoint != 0 {
		t.Fatalf("unexpected non-default config: %+v", cfg)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	home := writeHomeConfig(t, "interval: 3s\nloop: true\nbreakpoint: 90\nslides-file: ~/deck.yml\n")

	cfg, err := loadConfig(newViper(), "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Interval != 3*time.Second {
		t.Fatalf("interval = %s, want 3s", cfg.Interval)
	}
	if !cfg.Loop {
		t.Fatal("loop = false, want true")
	}
	if cfg.Breakpoint != 90 {
		t.Fatalf("breakpoint = %d, want 90", cfg.Breakpoint)
	}
	if want := filepath.Join(home, "deck.yml"); cfg.SlidesFile != want {
		t.Fatalf("slides-file = %q, want %q", cfg.SlidesFile, want)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	writeHomeConfig(t, "interval: 3s\n")
	t.Setenv("CYCLER_INTERVAL", "750ms")
	t.Setenv("CYCLER_VISIBILITY_THRESHOLD", "0.25")

	cfg, err := loadConfig(newViper(), "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Interval != 750*time.Millisecond {
		t.Fatalf("interval = %s, want 750ms", cfg.Interval)
	}
	if cfg.VisibilityThreshold != 0.25 {
		t.Fatalf("visibility-threshold = %v, want 0.25", cfg.VisibilityThreshold)
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	writeHomeConfig(t, "interval: 3s\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Duration("interval", model.DefaultInterval, "")
	if err := fs.Parse([]string{"--interval=5s"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	v := newViper()
	if err := v.BindPFlags(fs); err != nil {
		t.Fatalf("bind: %v", err)
	}
	cfg, err := loadConfig(v, "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Interval != 5*time.Second {
		t.Fatalf("interval = %s, want 5s", cfg.Interval)
	}
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	writeHomeConfig(t, "")
	path := filepath.Join(t.TempDir(), "custom.yml")
	if err := os.WriteFile(path, []byte("frame-rate: 12\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(newViper(), path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.FrameRate != 12 {
		t.Fatalf("frame-rate = %d, want 12", cfg.FrameRate)
	}
	if cfg.ConfigPath != path {
		t.Fatalf("config path = %q, want %q", cfg.ConfigPath, path)
	}
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero interval":       "interval: 0s\n",
		"negative interval":   "interval: -1s\n",
		"zero frame rate":     "frame-rate: 0\n",
		"threshold above 1":   "visibility-threshold: 1.5\n",
		"negative threshold":  "visibility-threshold: -0.1\n",
		"negative breakpoint": "breakpoint: -4\n",
		"empty tag":           "active-tag: \"\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			writeHomeConfig(t, body)
			if _, err := loadConfig(newViper(), ""); err == nil {
				t.Fatalf("expected error for %q", body)
			}
		})
	}
}
