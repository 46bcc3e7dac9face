package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/TFMV/orbitgraph/physics"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Physics != physics.DefaultTuning() {
		t.Error("default physics should be the default tuning")
	}
	if cfg.Interaction.ClickTolerance != 0 {
		t.Errorf("expected click tolerance 0, got %v", cfg.Interaction.ClickTolerance)
	}
	if cfg.Style.Theme != "light" {
		t.Errorf("expected light theme, got %q", cfg.Style.Theme)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := Dir(); dir != "/tmp/test-xdg/orbitgraph" {
		t.Errorf("expected /tmp/test-xdg/orbitgraph, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	if dir := Dir(); dir != filepath.Join(home, ".config", "orbitgraph") {
		t.Errorf("unexpected dir %q", dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Window.Width = 1024
	cfg.Physics.Attraction = 0.02
	cfg.Style.Theme = "dark"
	cfg.Render.Timeout = 5 * time.Second

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Window.Width != 1024 {
		t.Errorf("expected width 1024, got %d", loaded.Window.Width)
	}
	if loaded.Physics.Attraction != 0.02 {
		t.Errorf("expected attraction 0.02, got %v", loaded.Physics.Attraction)
	}
	if loaded.Style.Theme != "dark" {
		t.Errorf("expected dark theme, got %q", loaded.Style.Theme)
	}
	if loaded.Render.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", loaded.Render.Timeout)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[physics]\nsafe_zone = 35.0\n\n[log]\nlevel = \"debug\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Physics.SafeZone != 35 {
		t.Errorf("expected safe zone 35, got %v", cfg.Physics.SafeZone)
	}
	if cfg.Physics.RepulsionWeight != physics.DefaultTuning().RepulsionWeight {
		t.Errorf("unset tuning should keep its default, got %v", cfg.Physics.RepulsionWeight)
	}
	if cfg.Log.Level != "debug" || cfg.Window.Height != 600 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ORBIT_WINDOW_WIDTH", "1280")
	t.Setenv("ORBIT_PHYSICS_REPULSION_GAIN", "0.3")
	t.Setenv("ORBIT_STYLE_THEME", "dark")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Physics.RepulsionGain != 0.3 {
		t.Errorf("expected repulsion gain 0.3, got %v", cfg.Physics.RepulsionGain)
	}
	if cfg.Style.Theme != "dark" {
		t.Errorf("expected dark theme, got %q", cfg.Style.Theme)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for an explicit missing file")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[physics]\namortization = 1.5\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	_, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), "amortization") {
		t.Errorf("expected amortization error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"tps", func(c *Config) { c.Window.TPS = -1 }, "window.tps"},
		{"tolerance", func(c *Config) { c.Interaction.ClickTolerance = -2 }, "click_tolerance"},
		{"theme", func(c *Config) { c.Style.Theme = "neon" }, "style"},
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"format", func(c *Config) { c.Render.Format = "gif" }, "render"},
		{"ticks", func(c *Config) { c.Render.MaxTicks = 0 }, "max_ticks"},
		{"tuning", func(c *Config) { c.Physics.Smoothing = 0 }, "smoothing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	cfg := Default()
	cfg.Window.Width = 0
	cfg.Log.Level = "loud"
	if err := cfg.Validate(); strings.Count(err.Error(), "\n") != 1 {
		t.Errorf("expected both errors joined, got %v", err)
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Style.Theme = "dark"
	cfg.Interaction.ClickTolerance = 3
	cfg.Render.Seed = 9

	gopts, err := cfg.GraphOptions()
	if err != nil {
		t.Fatalf("GraphOptions failed: %v", err)
	}
	if gopts.Style.Name != "dark" || gopts.ClickTolerance != 3 {
		t.Errorf("unexpected graph options %+v", gopts)
	}

	ropts := cfg.RenderOptions("")
	if ropts.Format != "svg" || ropts.Seed != 9 || ropts.Theme != "dark" {
		t.Errorf("unexpected render options %+v", ropts)
	}
	if got := cfg.RenderOptions("png").Format; got != "png" {
		t.Errorf("explicit format should win, got %q", got)
	}
}
