// Package config loads spanview's viewer defaults from a YAML file: lane
// row height, minimum visible span width, WASD spring smoothing constants,
// and the PIX/Tracy parser capability flags, resolving the open question on
// empirical smoothing constants by making them configurable rather than
// hard-coded.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dicklesworthstone/spanscope/pkg/parser/pixformat"
	"github.com/dicklesworthstone/spanscope/pkg/parser/tracyformat"
)

// Spring mirrors viewport.Spring's tunables in a serializable shape.
type Spring struct {
	Acceleration float64 `yaml:"acceleration"`
	Friction     float64 `yaml:"friction"`
	SnapEpsilon  float64 `yaml:"snap_epsilon"`
}

// Capabilities gates optional binary-format sections, mirroring the parser
// packages' own Capabilities structs in a YAML-friendly shape.
type Capabilities struct {
	PIXFrameMarkers bool `yaml:"pix_frame_markers"`
	TracyLocks      bool `yaml:"tracy_locks"`
	TracyPlots      bool `yaml:"tracy_plots"`
}

// Config holds every user-tunable viewer default.
type Config struct {
	DefaultRowHeight float32      `yaml:"default_row_height"`
	MinSpanWidthPx   float32      `yaml:"min_span_width_px"`
	Theme            string       `yaml:"theme"`
	Spring           Spring       `yaml:"spring"`
	Capabilities     Capabilities `yaml:"capabilities"`
}

// Default returns the built-in defaults used when no config file is present.
func Default() Config {
	return Config{
		DefaultRowHeight: 20,
		MinSpanWidthPx:   0.5,
		Theme:            "dark",
		Spring: Spring{
			Acceleration: 0.006,
			Friction:     0.85,
			SnapEpsilon:  1e-5,
		},
	}
}

// Load reads a YAML config file at path, falling back to Default() for any
// field the file omits.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating or truncating the file.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// PIXCapabilities projects the PIX-relevant flags into pixformat's shape.
func (c Config) PIXCapabilities() pixformat.Capabilities {
	return pixformat.Capabilities{FrameMarkers: c.Capabilities.PIXFrameMarkers}
}

// TracyCapabilities projects the Tracy-relevant flags into tracyformat's shape.
func (c Config) TracyCapabilities() tracyformat.Capabilities {
	return tracyformat.Capabilities{Locks: c.Capabilities.TracyLocks, Plots: c.Capabilities.TracyPlots}
}
