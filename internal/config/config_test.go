// ABOUTME: Tests for YAML config loading, defaults, overlay, and validation.
// ABOUTME: Uses temp files; a missing file must fall back to defaults.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FPS != 15 || cfg.Quality != 85 {
		t.Errorf("defaults not applied: fps=%d quality=%d", cfg.FPS, cfg.Quality)
	}
	if cfg.Viewport.Width != 1920 || cfg.Viewport.Height != 1080 {
		t.Errorf("default viewport = %dx%d", cfg.Viewport.Width, cfg.Viewport.Height)
	}
}

func TestLoad_OverlaysFileOnDefaults(t *testing.T) {
	path := writeConfig(t, "fps: 30\nstatus_bar: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FPS != 30 {
		t.Errorf("fps = %d, want 30", cfg.FPS)
	}
	if !cfg.StatusBar {
		t.Error("status_bar not applied")
	}
	// Untouched fields keep defaults.
	if cfg.Quality != 85 {
		t.Errorf("quality = %d, want default 85", cfg.Quality)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	for _, content := range []string{
		"fps: 0\n",
		"fps: 200\n",
		"jpeg_quality: 101\n",
		"viewport:\n  width: -5\n  height: 100\n",
		"filter: lanczos\n",
	} {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("config %q accepted, want validation error", content)
		}
	}
}

func TestLoad_AcceptsFilterNames(t *testing.T) {
	for _, content := range []string{"filter: bilinear\n", "filter: catmullrom\n"} {
		if _, err := Load(writeConfig(t, content)); err != nil {
			t.Errorf("config %q rejected: %v", content, err)
		}
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "fps: [not a number\n")); err == nil {
		t.Error("malformed YAML accepted")
	}
}

func TestPeriod(t *testing.T) {
	cfg := &Config{FPS: 15}
	if got := cfg.Period(); got != time.Second/15 {
		t.Errorf("period = %v, want %v", got, time.Second/15)
	}
}
