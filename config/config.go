// Package config loads orbitgraph settings from a TOML file with ORBIT_*
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/TFMV/orbitgraph/graph"
	"github.com/TFMV/orbitgraph/internal/logging"
	"github.com/TFMV/orbitgraph/physics"
	"github.com/TFMV/orbitgraph/render"
)

// EnvPrefix prefixes every environment override, e.g. ORBIT_WINDOW_WIDTH.
const EnvPrefix = "ORBIT"

// Config holds orbitgraph configuration.
type Config struct {
	Window      WindowConfig      `mapstructure:"window" toml:"window"`
	Physics     physics.Tuning    `mapstructure:"physics" toml:"physics"`
	Interaction InteractionConfig `mapstructure:"interaction" toml:"interaction"`
	Style       StyleConfig       `mapstructure:"style" toml:"style"`
	Log         LogConfig         `mapstructure:"log" toml:"log"`
	Render      RenderConfig      `mapstructure:"render" toml:"render"`
}

// WindowConfig controls the interactive window.
type WindowConfig struct {
	Width  int    `mapstructure:"width" toml:"width"`
	Height int    `mapstructure:"height" toml:"height"`
	Title  string `mapstructure:"title" toml:"title"`
	TPS    int    `mapstructure:"tps" toml:"tps"` // simulation ticks per second
}

// InteractionConfig controls pointer handling.
type InteractionConfig struct {
	ClickTolerance float64 `mapstructure:"click_tolerance" toml:"click_tolerance"` // pixels a press may travel and still click
	OpenLinks      bool    `mapstructure:"open_links" toml:"open_links"`           // open https://<label> on click
}

// StyleConfig selects the palette.
type StyleConfig struct {
	Theme string `mapstructure:"theme" toml:"theme"` // "light" or "dark"
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"` // debug, info, warn, error
}

// RenderConfig holds the defaults of the headless render command.
type RenderConfig struct {
	Format     string        `mapstructure:"format" toml:"format"`
	Width      float64       `mapstructure:"width" toml:"width"`
	Height     float64       `mapstructure:"height" toml:"height"`
	ShowLabels bool          `mapstructure:"show_labels" toml:"show_labels"`
	Seed       int64         `mapstructure:"seed" toml:"seed"`
	MaxTicks   int           `mapstructure:"max_ticks" toml:"max_ticks"`
	Timeout    time.Duration `mapstructure:"timeout" toml:"timeout"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Window:      WindowConfig{Width: 800, Height: 600, Title: "orbitgraph", TPS: 60},
		Physics:     physics.DefaultTuning(),
		Interaction: InteractionConfig{ClickTolerance: 0, OpenLinks: true},
		Style:       StyleConfig{Theme: "light"},
		Log:         LogConfig{Level: "info"},
		Render: RenderConfig{
			Format:     "svg",
			Width:      800,
			Height:     600,
			ShowLabels: true,
			Seed:       1,
			MaxTicks:   2000,
			Timeout:    30 * time.Second,
		},
	}
}

// Dir returns the orbitgraph config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "orbitgraph")
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads configuration from path layered over the defaults, then applies
// ORBIT_* environment overrides. An empty path reads DefaultPath if it
// exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	// AutomaticEnv only overrides keys viper already knows.
	var defaults bytes.Buffer
	if err := toml.NewEncoder(&defaults).Encode(Default()); err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	if err := v.ReadConfig(&defaults); err != nil {
		return nil, fmt.Errorf("reading defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultPath()); err == nil {
			path = DefaultPath()
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Physics.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("physics: %w", err))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS))
	}
	if c.Interaction.ClickTolerance < 0 {
		errs = append(errs, fmt.Errorf("interaction.click_tolerance must be >= 0, got %v", c.Interaction.ClickTolerance))
	}
	if _, err := graph.StyleByName(c.Style.Theme); err != nil {
		errs = append(errs, fmt.Errorf("style: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := render.GetRenderer(c.Render.Format); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %vx%v", c.Render.Width, c.Render.Height))
	}
	if c.Render.MaxTicks <= 0 {
		errs = append(errs, fmt.Errorf("render.max_ticks must be positive, got %d", c.Render.MaxTicks))
	}
	if c.Render.Timeout < 0 {
		errs = append(errs, fmt.Errorf("render.timeout must be >= 0, got %v", c.Render.Timeout))
	}

	return errors.Join(errs...)
}

// GraphOptions builds the graph options the window host uses.
func (c *Config) GraphOptions() (*graph.Options, error) {
	style, err := graph.StyleByName(c.Style.Theme)
	if err != nil {
		return nil, err
	}
	opts := graph.DefaultOptions()
	opts.Tuning = c.Physics
	opts.Style = style
	opts.ClickTolerance = c.Interaction.ClickTolerance
	return opts, nil
}

// RenderOptions builds output options for format, falling back to the
// configured format when it is empty.
func (c *Config) RenderOptions(format string) *render.OutputOptions {
	if format == "" {
		format = c.Render.Format
	}
	opts := render.NewDefaultOptions(format)
	opts.Width = c.Render.Width
	opts.Height = c.Render.Height
	opts.Theme = c.Style.Theme
	opts.ShowLabels = c.Render.ShowLabels
	opts.Tuning = c.Physics
	opts.Seed = c.Render.Seed
	opts.MaxTicks = c.Render.MaxTicks
	opts.Timeout = c.Render.Timeout
	return opts
}
