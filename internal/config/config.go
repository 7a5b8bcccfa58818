// Package config loads grailnav settings from a TOML or YAML file. Missing
// or invalid fields keep their defaults.
package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wesen/grailnav/internal/hostgraph"
	"github.com/wesen/grailnav/pkg/navigator"
)

// Config holds grailnav configuration.
type Config struct {
	Navigator NavigatorConfig `toml:"navigator" yaml:"navigator"`
	View      ViewConfig      `toml:"view" yaml:"view"`
	Log       LogConfig       `toml:"log" yaml:"log"`
	Watch     WatchConfig     `toml:"watch" yaml:"watch"`

	// Warnings collects unknown keys and fields reset to defaults.
	Warnings []string `toml:"-" yaml:"-"`
}

// NavigatorConfig controls the minimap.
type NavigatorConfig struct {
	Container             string        `toml:"container" yaml:"container"`
	LiveFramerate         LiveFramerate `toml:"live_framerate" yaml:"live_framerate"`
	DblClickDelayMS       int           `toml:"dbl_click_delay_ms" yaml:"dbl_click_delay_ms"`
	RemoveCustomContainer bool          `toml:"remove_custom_container" yaml:"remove_custom_container"`
	RerenderDelayMS       int           `toml:"rerender_delay_ms" yaml:"rerender_delay_ms"`
	Border                BorderConfig  `toml:"border" yaml:"border"`
}

// BorderConfig is the view rectangle border, in panel pixels.
type BorderConfig struct {
	Top    float64 `toml:"top" yaml:"top"`
	Right  float64 `toml:"right" yaml:"right"`
	Bottom float64 `toml:"bottom" yaml:"bottom"`
	Left   float64 `toml:"left" yaml:"left"`
}

// ViewConfig controls the main canvas.
type ViewConfig struct {
	MinZoom        float64 `toml:"min_zoom" yaml:"min_zoom"`
	MaxZoom        float64 `toml:"max_zoom" yaml:"max_zoom"`
	ZoomingEnabled bool    `toml:"zooming_enabled" yaml:"zooming_enabled"`
	PanStep        int     `toml:"pan_step" yaml:"pan_step"`         // cells per arrow key
	MinimapWidth   int     `toml:"minimap_width" yaml:"minimap_width"` // columns
}

// LogConfig controls logging. Without a file nothing is logged.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file" yaml:"file"`
}

// WatchConfig controls reloading the graph file on change.
type WatchConfig struct {
	Enabled    bool `toml:"enabled" yaml:"enabled"`
	DebounceMS int  `toml:"debounce_ms" yaml:"debounce_ms"`
}

// MinMinimapWidth is the narrowest sidebar that still fits the info panel.
const MinMinimapWidth = 16

// Default returns the default configuration.
func Default() *Config {
	limits := hostgraph.DefaultLimits()
	return &Config{
		Navigator: NavigatorConfig{
			DblClickDelayMS:       int(navigator.DefaultDoubleClickDelay / time.Millisecond),
			RemoveCustomContainer: true,
			RerenderDelayMS:       int(navigator.DefaultRerenderDelay / time.Millisecond),
		},
		View: ViewConfig{
			MinZoom:        limits.MinZoom,
			MaxZoom:        limits.MaxZoom,
			ZoomingEnabled: limits.ZoomingEnabled,
			PanStep:        4,
			MinimapWidth:   34,
		},
		Log:   LogConfig{Level: "info"},
		Watch: WatchConfig{Enabled: true, DebounceMS: int(hostgraph.DefaultDebounce / time.Millisecond)},
	}
}

// ConfigDir returns the grailnav config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "grailnav")
}

// DefaultPath is where LoadDefault looks for a config file.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadDefault reads DefaultPath, returning defaults when it doesn't exist.
func LoadDefault() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// Load reads a config file. The format follows the extension: .yaml and
// .yml are YAML, anything else TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseTOML(data)
	}
}

// ParseTOML decodes TOML onto the defaults.
func ParseTOML(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	for _, key := range md.Undecoded() {
		cfg.warnf("unknown key %q", key.String())
	}
	cfg.normalize()
	return cfg, nil
}

// ParseYAML decodes YAML onto the defaults.
func ParseYAML(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.normalize()
	return cfg, nil
}

// WriteTOML encodes cfg as TOML.
func (c *Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// WriteYAML encodes cfg as YAML.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// normalize resets invalid fields to their defaults.
func (c *Config) normalize() {
	def := Default()

	if c.Navigator.DblClickDelayMS < 0 {
		c.warnf("navigator.dbl_click_delay_ms %d is negative, using %d", c.Navigator.DblClickDelayMS, def.Navigator.DblClickDelayMS)
		c.Navigator.DblClickDelayMS = def.Navigator.DblClickDelayMS
	}
	if c.Navigator.RerenderDelayMS < 0 {
		c.warnf("navigator.rerender_delay_ms %d is negative, using %d", c.Navigator.RerenderDelayMS, def.Navigator.RerenderDelayMS)
		c.Navigator.RerenderDelayMS = def.Navigator.RerenderDelayMS
	}
	if c.Navigator.LiveFramerate.FPS < 0 {
		c.warnf("navigator.live_framerate %g is negative, using instant", c.Navigator.LiveFramerate.FPS)
		c.Navigator.LiveFramerate = LiveFramerate{}
	}
	b := &c.Navigator.Border
	if b.Top < 0 || b.Right < 0 || b.Bottom < 0 || b.Left < 0 {
		c.warnf("navigator.border has negative widths, using zero")
		*b = BorderConfig{}
	}

	if c.View.MinZoom <= 0 || c.View.MaxZoom < c.View.MinZoom {
		c.warnf("view zoom range [%g, %g] is invalid, using [%g, %g]", c.View.MinZoom, c.View.MaxZoom, def.View.MinZoom, def.View.MaxZoom)
		c.View.MinZoom, c.View.MaxZoom = def.View.MinZoom, def.View.MaxZoom
	}
	if c.View.PanStep <= 0 {
		c.View.PanStep = def.View.PanStep
	}
	if c.View.MinimapWidth < MinMinimapWidth {
		c.warnf("view.minimap_width %d is below %d", c.View.MinimapWidth, MinMinimapWidth)
		c.View.MinimapWidth = MinMinimapWidth
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		c.warnf("log.level %q is unknown, using %q", c.Log.Level, def.Log.Level)
		c.Log.Level = def.Log.Level
	}

	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = def.Watch.DebounceMS
	}
}

// NavigatorOptions converts the navigator section to constructor options.
func (c *Config) NavigatorOptions() []navigator.Option {
	n := c.Navigator
	opts := []navigator.Option{
		navigator.WithLiveRate(n.LiveFramerate.Rate()),
		navigator.WithDoubleClickDelay(time.Duration(n.DblClickDelayMS) * time.Millisecond),
		navigator.WithRemoveCustomContainer(n.RemoveCustomContainer),
		navigator.WithRerenderDelay(time.Duration(n.RerenderDelayMS) * time.Millisecond),
		navigator.WithBorder(navigator.Insets{
			Top: n.Border.Top, Right: n.Border.Right, Bottom: n.Border.Bottom, Left: n.Border.Left,
		}),
	}
	if n.Container != "" {
		opts = append(opts, navigator.WithContainerSelector(n.Container))
	}
	return opts
}

// Limits returns the engine zoom limits.
func (c *Config) Limits() hostgraph.Limits {
	return hostgraph.Limits{
		MinZoom:        c.View.MinZoom,
		MaxZoom:        c.View.MaxZoom,
		ZoomingEnabled: c.View.ZoomingEnabled,
	}
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Debounce returns the file watch debounce.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
