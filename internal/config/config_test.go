package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Navigator.DblClickDelayMS != 200 {
		t.Errorf("expected dbl_click_delay_ms 200, got %d", cfg.Navigator.DblClickDelayMS)
	}
	if cfg.Navigator.RerenderDelayMS != 500 {
		t.Errorf("expected rerender_delay_ms 500, got %d", cfg.Navigator.RerenderDelayMS)
	}
	if !cfg.Navigator.RemoveCustomContainer {
		t.Error("default remove_custom_container should be true")
	}
	if got := cfg.Navigator.LiveFramerate.Rate().String(); got != "instant" {
		t.Errorf("expected instant live rate, got %s", got)
	}
	if !cfg.View.ZoomingEnabled {
		t.Error("default zooming should be enabled")
	}
	if cfg.Debounce() != 150*time.Millisecond {
		t.Errorf("expected 150ms debounce, got %v", cfg.Debounce())
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := ConfigDir(); dir != "/tmp/test-xdg/grailnav" {
		t.Errorf("expected /tmp/test-xdg/grailnav, got %q", dir)
	}
}

func TestLoadDefaultMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if cfg.View.MinimapWidth != Default().View.MinimapWidth {
		t.Error("expected defaults")
	}
}

// ── TOML ──

func TestParseTOMLOverridesSomeFields(t *testing.T) {
	cfg, err := ParseTOML([]byte(`
[navigator]
container = "#minimap"
live_framerate = 30
rerender_delay_ms = 0

[navigator.border]
top = 1
left = 2

[view]
max_zoom = 4
`))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if cfg.Navigator.Container != "#minimap" {
		t.Errorf("container: got %q", cfg.Navigator.Container)
	}
	if cfg.Navigator.LiveFramerate.FPS != 30 || cfg.Navigator.LiveFramerate.OnDragEnd {
		t.Errorf("live_framerate: got %+v", cfg.Navigator.LiveFramerate)
	}
	if cfg.Navigator.RerenderDelayMS != 0 {
		t.Errorf("explicit zero should be kept, got %d", cfg.Navigator.RerenderDelayMS)
	}
	if cfg.Navigator.Border.Top != 1 || cfg.Navigator.Border.Left != 2 {
		t.Errorf("border: got %+v", cfg.Navigator.Border)
	}
	// Untouched fields keep their defaults.
	if cfg.Navigator.DblClickDelayMS != 200 || cfg.View.MinZoom != 0.1 || cfg.View.MaxZoom != 4 {
		t.Errorf("fallback failed: %+v %+v", cfg.Navigator, cfg.View)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", cfg.Warnings)
	}
}

func TestParseTOMLLiveFramerateFalse(t *testing.T) {
	cfg, err := ParseTOML([]byte("[navigator]\nlive_framerate = false\n"))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if got := cfg.Navigator.LiveFramerate.Rate().String(); got != "on-drag-end" {
		t.Errorf("expected on-drag-end, got %s", got)
	}

	if _, err := ParseTOML([]byte("[navigator]\nlive_framerate = \"fast\"\n")); err == nil {
		t.Error("expected error for a string live_framerate")
	}
}

func TestParseTOMLUnknownKeys(t *testing.T) {
	cfg, err := ParseTOML([]byte("[view]\nzoom_speed = 3\n"))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if len(cfg.Warnings) != 1 || !strings.Contains(cfg.Warnings[0], "view.zoom_speed") {
		t.Errorf("expected unknown key warning, got %v", cfg.Warnings)
	}
}

func TestParseTOMLSyntaxError(t *testing.T) {
	if _, err := ParseTOML([]byte("[navigator\n")); err == nil {
		t.Error("expected parse error")
	}
}

func TestNormalize(t *testing.T) {
	cfg, err := ParseTOML([]byte(`
[navigator]
dbl_click_delay_ms = -5
live_framerate = -1

[navigator.border]
top = -1

[view]
min_zoom = 5
max_zoom = 2
pan_step = 0
minimap_width = 3

[log]
level = "loud"
`))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	def := Default()
	if cfg.Navigator.DblClickDelayMS != def.Navigator.DblClickDelayMS {
		t.Errorf("negative delay not reset: %d", cfg.Navigator.DblClickDelayMS)
	}
	if cfg.Navigator.LiveFramerate != (LiveFramerate{}) {
		t.Errorf("negative fps not reset: %+v", cfg.Navigator.LiveFramerate)
	}
	if cfg.Navigator.Border != (BorderConfig{}) {
		t.Errorf("negative border not reset: %+v", cfg.Navigator.Border)
	}
	if cfg.View.MinZoom != def.View.MinZoom || cfg.View.MaxZoom != def.View.MaxZoom {
		t.Errorf("inverted zoom range not reset: %+v", cfg.View)
	}
	if cfg.View.PanStep != def.View.PanStep || cfg.View.MinimapWidth != MinMinimapWidth {
		t.Errorf("view sizes not reset: %+v", cfg.View)
	}
	if cfg.Log.Level != "info" || cfg.LogLevel() != slog.LevelInfo {
		t.Errorf("bad level not reset: %q", cfg.Log.Level)
	}
	if len(cfg.Warnings) < 5 {
		t.Errorf("expected a warning per reset field, got %v", cfg.Warnings)
	}
}

// ── YAML ──

func TestParseYAML(t *testing.T) {
	cfg, err := ParseYAML([]byte(`
navigator:
  live_framerate: false
  remove_custom_container: false
view:
  zooming_enabled: false
log:
  level: debug
`))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if !cfg.Navigator.LiveFramerate.OnDragEnd {
		t.Error("live_framerate false not decoded")
	}
	if cfg.Navigator.RemoveCustomContainer || cfg.View.ZoomingEnabled {
		t.Error("booleans not decoded")
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("expected debug, got %v", cfg.LogLevel())
	}
	if cfg.Navigator.RerenderDelayMS != 500 {
		t.Error("missing fields should keep defaults")
	}

	cfg, err = ParseYAML([]byte("navigator:\n  live_framerate: 12.5\n"))
	if err != nil || cfg.Navigator.LiveFramerate.FPS != 12.5 {
		t.Errorf("fractional fps: %+v (%v)", cfg.Navigator.LiveFramerate, err)
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	cfg, err := ParseYAML(nil)
	if err != nil || cfg.View.PanStep != Default().View.PanStep {
		t.Errorf("empty yaml should give defaults: %v", err)
	}
}

// ── Files ──

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "c.toml")
	yamlPath := filepath.Join(dir, "c.yml")
	if err := os.WriteFile(tomlPath, []byte("[view]\npan_step = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte("view:\n  pan_step: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for path, want := range map[string]int{tomlPath: 7, yamlPath: 9} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		if cfg.View.PanStep != want {
			t.Errorf("%s: expected pan_step %d, got %d", path, want, cfg.View.PanStep)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Navigator.LiveFramerate = LiveFramerate{OnDragEnd: true}
	cfg.View.PanStep = 11

	var tb bytes.Buffer
	if err := cfg.WriteTOML(&tb); err != nil {
		t.Fatalf("WriteTOML: %v", err)
	}
	if !strings.Contains(tb.String(), "live_framerate = false") {
		t.Errorf("expected live_framerate = false in:\n%s", tb.String())
	}
	back, err := ParseTOML(tb.Bytes())
	if err != nil {
		t.Fatalf("re-parse TOML: %v", err)
	}
	if !back.Navigator.LiveFramerate.OnDragEnd || back.View.PanStep != 11 {
		t.Errorf("TOML round trip lost values: %+v", back)
	}

	var yb bytes.Buffer
	if err := cfg.WriteYAML(&yb); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err = ParseYAML(yb.Bytes())
	if err != nil {
		t.Fatalf("re-parse YAML: %v", err)
	}
	if !back.Navigator.LiveFramerate.OnDragEnd || back.View.PanStep != 11 {
		t.Errorf("YAML round trip lost values: %+v", back)
	}
}

func TestNavigatorOptions(t *testing.T) {
	cfg := Default()
	if n := len(cfg.NavigatorOptions()); n != 5 {
		t.Errorf("expected 5 options without a container, got %d", n)
	}
	cfg.Navigator.Container = "#minimap"
	if n := len(cfg.NavigatorOptions()); n != 6 {
		t.Errorf("expected container option, got %d options", n)
	}
	l := cfg.Limits()
	if l.MinZoom != cfg.View.MinZoom || l.MaxZoom != cfg.View.MaxZoom || !l.ZoomingEnabled {
		t.Errorf("limits mismatch: %+v", l)
	}
}
