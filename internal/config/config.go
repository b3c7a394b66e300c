// ABOUTME: YAML settings loading with defaults, file overlay, and validation.
// ABOUTME: Frame rate, capture quality, viewport, browser path, log destination.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the renderer settings. Zero values in the file leave
// the defaults in place.
type Config struct {
	// FPS is the target frame rate; the frame period is 1000/FPS ms.
	FPS int `yaml:"fps,omitempty"`
	// Quality is the JPEG quality requested from the capture source.
	Quality int `yaml:"jpeg_quality,omitempty"`
	// Viewport is the browser window size in pixels.
	Viewport Viewport `yaml:"viewport,omitempty"`
	// ChromePath overrides browser executable discovery.
	ChromePath string `yaml:"chrome_path,omitempty"`
	// LogFile receives session logs while the terminal shows frames.
	LogFile string `yaml:"log_file,omitempty"`
	// StatusBar reserves the bottom row for URL and frame statistics.
	StatusBar bool `yaml:"status_bar,omitempty"`
	// Filter picks the live resampling kernel: "bilinear" (default)
	// or "catmullrom".
	Filter string `yaml:"filter,omitempty"`
}

// Viewport is a pixel width/height pair.
type Viewport struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// Default returns the built-in settings: 15fps, JPEG quality 85, a
// 1920×1080 viewport, and a log file under the user cache directory.
func Default() *Config {
	return &Config{
		FPS:      15,
		Quality:  85,
		Viewport: Viewport{Width: 1920, Height: 1080},
		LogFile:  defaultLogFile(),
	}
}

// File returns the default config file path,
// ~/.config/glimpse/config.yaml (respecting XDG_CONFIG_HOME).
func File() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "glimpse", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "glimpse", "config.yaml")
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "glimpse.log"
	}
	return filepath.Join(dir, "glimpse", "glimpse.log")
}

// Load reads settings from path overlaid on the defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.FPS < 1 || c.FPS > 60 {
		return fmt.Errorf("fps must be in [1,60], got %d", c.FPS)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("jpeg_quality must be in [1,100], got %d", c.Quality)
	}
	if c.Viewport.Width < 1 || c.Viewport.Height < 1 {
		return fmt.Errorf("viewport must be positive, got %dx%d",
			c.Viewport.Width, c.Viewport.Height)
	}
	switch c.Filter {
	case "", "bilinear", "catmullrom":
	default:
		return fmt.Errorf("filter must be bilinear or catmullrom, got %q", c.Filter)
	}
	return nil
}

// Period returns the frame period derived from the target frame rate.
func (c *Config) Period() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
