// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pens

import (
	"fmt"
	"os"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// Config carries the overridable pieces of the pen model: the color
// palette, per-tool segment lengths, and per-tool base style entries.
// Zero values mean "use the device defaults".
type Config struct {
	// Palette overrides the full color table as "#rrggbb" strings.
	// When set it must cover the whole color enum range.
	Palette []string `yaml:"palette,omitempty"`

	// SegmentLengths overrides how many samples form one styled
	// sub-path, keyed by tool name (e.g. "ballpoint").
	SegmentLengths map[string]int `yaml:"segment_lengths,omitempty"`

	// Tools overrides base style table entries, keyed by tool name.
	Tools map[string]ToolOverride `yaml:"tools,omitempty"`
}

// ToolOverride replaces individual fields of one tool table row. Unset
// fields keep the device default; Width and Opacity are pointers so
// zero is a valid override value.
type ToolOverride struct {
	// SegmentLength replaces how many samples form one styled sub-path.
	SegmentLength int `yaml:"segment_length,omitempty"`

	// Linecap and Linejoin replace the SVG stroke endpoint styles.
	// Valid values are "round", "square", and "butt".
	Linecap  string `yaml:"linecap,omitempty"`
	Linejoin string `yaml:"linejoin,omitempty"`

	// Opacity fixes the stroke opacity, in [0, 1], disabling any
	// pressure-driven variation.
	Opacity *float64 `yaml:"opacity,omitempty"`

	// Width fixes the stroke width, disabling the tool's pressure and
	// speed response.
	Width *float64 `yaml:"width,omitempty"`
}

// validate checks the override fields against their legal ranges before
// any of them touch the tool table.
func (o ToolOverride) validate(name string) error {
	if o.SegmentLength < 0 {
		return fmt.Errorf("segment length for %s must be positive, got %d", name, o.SegmentLength)
	}
	for _, v := range []string{o.Linecap, o.Linejoin} {
		switch v {
		case "", "round", "square", "butt":
		default:
			return fmt.Errorf("invalid linecap/linejoin %q for %s (want round, square, or butt)", v, name)
		}
	}
	if o.Opacity != nil && (*o.Opacity < 0 || *o.Opacity > 1) {
		return fmt.Errorf("opacity for %s must be in [0, 1], got %g", name, *o.Opacity)
	}
	if o.Width != nil && *o.Width <= 0 {
		return fmt.Errorf("width for %s must be positive, got %g", name, *o.Width)
	}
	return nil
}

// apply merges the set fields of the override into one tool table row.
func (o ToolOverride) apply(spec toolSpec) toolSpec {
	if o.SegmentLength > 0 {
		spec.segmentLength = o.SegmentLength
	}
	if o.Linecap != "" {
		spec.linecap = o.Linecap
	}
	if o.Linejoin != "" {
		spec.linejoin = o.Linejoin
	}
	if o.Opacity != nil {
		spec.opacity = *o.Opacity
		spec.opacityFn = nil
	}
	if o.Width != nil {
		w := *o.Width
		spec.baseWidth = func(float64) float64 { return w }
		spec.width = nil
	}
	return spec
}

// DefaultConfig returns an empty override set.
func DefaultConfig() Config {
	return Config{}
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading pens config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing pens config %s: %w", path, err)
	}
	return cfg, nil
}

// palette resolves the configured palette, validating its size against
// the color enum range at load time.
func (c Config) palette() ([]RGB, error) {
	def := DefaultPalette()
	if c.Palette == nil {
		return def, nil
	}
	if len(c.Palette) != len(def) {
		return nil, fmt.Errorf("palette must have %d entries to cover the color enum, got %d", len(def), len(c.Palette))
	}
	out := make([]RGB, len(c.Palette))
	for i, s := range c.Palette {
		if len(s) != 7 || s[0] != '#' {
			return nil, fmt.Errorf("palette entry %d: invalid color %q, want \"#rrggbb\"", i, s)
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: invalid color %q: %w", i, s, err)
		}
		out[i] = RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}
	}
	return out, nil
}
