// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pens maps physical pen data to rendering parameters. A stroke
// resolves to a Pen once; the renderer then re-evaluates segment color,
// width, and opacity every SegmentLength samples so pressure and speed
// variation along a single stroke stays visible. All per-tool behavior
// is table data, not renderer branching.
// See docs/ARCHITECTURE § Pen Model.
package pens

import (
	"fmt"
	"math"

	"github.com/pdiddy/rmconvert/pkg/types"
)

// SVG filter ids for the textured pencil tools. The renderer embeds
// matching filter definitions in the document header.
const (
	FilterPencil           = "pencilTexture"
	FilterMechanicalPencil = "mechPencilTexture"
)

// defaultSegmentLength effectively disables re-styling: tools whose
// appearance does not vary along the stroke render as one sub-path.
const defaultSegmentLength = 1000

// RGB is one palette color.
type RGB struct {
	R, G, B uint8
}

// String formats the color as an SVG rgb() literal.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

var white = RGB{255, 255, 255}

// DefaultPalette is the device color table, indexed by types.ColorIndex.
func DefaultPalette() []RGB {
	return []RGB{
		{0, 0, 0},       // black
		{125, 125, 125}, // gray
		{255, 255, 255}, // white
		{255, 255, 0},   // yellow
		{0, 255, 0},     // green
		{255, 0, 255},   // pink
		{0, 0, 255},     // blue
		{255, 0, 0},     // red
		{125, 125, 125}, // gray overlap
	}
}

// SegmentInput is the per-sample physical data a segment style is
// derived from. LastWidth is the width of the previous segment, letting
// smoothing tools damp width changes.
type SegmentInput struct {
	Speed     float64
	Direction float64
	Width     float64
	Pressure  float64
	LastWidth float64
}

// toolSpec is one row of the tool table. Nil function fields fall back
// to the fixed base value.
type toolSpec struct {
	name          string
	segmentLength int
	linecap       string
	linejoin      string
	filter        string
	opacity       float64
	overrideColor *RGB

	baseWidth func(thickness float64) float64
	width     func(base float64, in SegmentInput) float64
	intensity func(in SegmentInput) float64
	opacityFn func(base float64, in SegmentInput) float64
}

// Pen holds the resolved rendering parameters for one stroke.
type Pen struct {
	Name          string
	SegmentLength int
	Linecap       string
	Linejoin      string

	// Filter is the SVG filter id for textured tools, or empty for
	// smooth polyline rendering.
	Filter string

	base      RGB
	baseWidth float64
	spec      toolSpec
}

// SegmentWidth returns the stroke width for the segment starting at in.
func (p Pen) SegmentWidth(in SegmentInput) float64 {
	if p.spec.width == nil {
		return p.baseWidth
	}
	return p.spec.width(p.baseWidth, in)
}

// SegmentColor returns the stroke color for the segment starting at in.
// Intensity-driven tools blend from white toward the palette color as
// pressure rises and speed falls.
func (p Pen) SegmentColor(in SegmentInput) string {
	if p.spec.intensity == nil {
		return p.base.String()
	}
	i := p.spec.intensity(in)
	blend := func(c uint8) uint8 {
		return uint8(math.Round(255*(1-i) + float64(c)*i))
	}
	return RGB{blend(p.base.R), blend(p.base.G), blend(p.base.B)}.String()
}

// SegmentOpacity returns the stroke opacity for the segment starting at in.
func (p Pen) SegmentOpacity(in SegmentInput) float64 {
	if p.spec.opacityFn == nil {
		return p.spec.opacity
	}
	return p.spec.opacityFn(p.spec.opacity, in)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// pressureIntensity darkens with pressure and lightens with speed.
func pressureIntensity(in SegmentInput) float64 {
	return clamp01(-0.1*in.Speed/35 + 1.2*in.Pressure + 0.5)
}

func defaultTools() map[types.ToolKind]toolSpec {
	ballpoint := toolSpec{
		name:          "ballpoint",
		segmentLength: 5,
		opacity:       1,
		baseWidth:     func(th float64) float64 { return th },
		width: func(base float64, in SegmentInput) float64 {
			return math.Max(0.5+in.Pressure+in.Width-0.5*in.Speed/50, 0.4)
		},
		intensity: pressureIntensity,
	}

	fineliner := toolSpec{
		name:      "fineliner",
		opacity:   1,
		baseWidth: func(th float64) float64 { return math.Pow(th, 2.1) * 1.3 },
	}

	marker := toolSpec{
		name:          "marker",
		segmentLength: 3,
		opacity:       0.9,
		baseWidth:     func(th float64) float64 { return th },
		width: func(base float64, in SegmentInput) float64 {
			return math.Max(0.9*(in.Width/4-0.4*in.Direction)+0.1*in.LastWidth, 0.9)
		},
	}

	pencil := toolSpec{
		name:          "pencil",
		segmentLength: 2,
		opacity:       1,
		baseWidth:     func(th float64) float64 { return th * th / 2 },
		width: func(base float64, in SegmentInput) float64 {
			w := 0.7 * ((0.8*base+0.5*in.Pressure)*(in.Width/3) -
				0.25*math.Pow(math.Abs(in.Direction), 1.8) -
				0.6*in.Speed/50)
			return math.Min(math.Max(w, 0.5), base*10)
		},
		opacityFn: func(base float64, in SegmentInput) float64 {
			return 0.1 + 0.9*clamp01(in.Pressure-0.2*in.Speed/50)
		},
	}
	pencilTextured := pencil
	pencilTextured.filter = FilterPencil

	mechanicalPencil := toolSpec{
		name:      "mechanical_pencil",
		opacity:   0.7,
		baseWidth: func(th float64) float64 { return th * th },
	}
	mechanicalPencilTextured := mechanicalPencil
	mechanicalPencilTextured.filter = FilterMechanicalPencil

	highlighter := toolSpec{
		name:      "highlighter",
		linecap:   "square",
		opacity:   0.3,
		baseWidth: func(float64) float64 { return 15 },
	}

	eraser := toolSpec{
		name:          "eraser",
		linecap:       "square",
		opacity:       1,
		overrideColor: &white,
		baseWidth:     func(th float64) float64 { return th * 2 },
	}

	eraseArea := toolSpec{
		name:          "erase_area",
		linecap:       "square",
		opacity:       0,
		overrideColor: &white,
		baseWidth:     func(th float64) float64 { return th },
	}

	paintbrush := toolSpec{
		name:          "paintbrush",
		segmentLength: 2,
		opacity:       1,
		baseWidth:     func(th float64) float64 { return th },
		width: func(base float64, in SegmentInput) float64 {
			return math.Max((0.7*base+0.8*in.Pressure)*in.Width/3, 0.6)
		},
		intensity: pressureIntensity,
	}

	caligraphy := toolSpec{
		name:          "caligraphy",
		segmentLength: 2,
		opacity:       1,
		baseWidth:     func(th float64) float64 { return th },
		width: func(base float64, in SegmentInput) float64 {
			return math.Max(0.9*in.Pressure*in.Width/3+0.1*in.LastWidth, 0.6)
		},
	}

	return map[types.ToolKind]toolSpec{
		types.ToolBallpointV1:        ballpoint,
		types.ToolBallpointV2:        ballpoint,
		types.ToolFinelinerV1:        fineliner,
		types.ToolFinelinerV2:        fineliner,
		types.ToolMarkerV1:           marker,
		types.ToolMarkerV2:           marker,
		types.ToolPencilV1:           pencil,
		types.ToolPencilV2:           pencilTextured,
		types.ToolMechanicalPencilV1: mechanicalPencil,
		types.ToolMechanicalPencilV2: mechanicalPencilTextured,
		types.ToolHighlighterV1:      highlighter,
		types.ToolHighlighterV2:      highlighter,
		types.ToolEraser:             eraser,
		types.ToolEraseArea:          eraseArea,
		types.ToolPaintbrushV1:       paintbrush,
		types.ToolPaintbrushV2:       paintbrush,
		types.ToolCaligraphy:         caligraphy,
	}
}

// Resolver turns (tool, color, thickness) triples into Pens using the
// loaded tool table and palette. Immutable after construction.
type Resolver struct {
	palette  []RGB
	tools    map[types.ToolKind]toolSpec
	fallback toolSpec
}

// NewResolver builds a Resolver from cfg, validating overrides against
// the known enum ranges.
func NewResolver(cfg Config) (*Resolver, error) {
	palette, err := cfg.palette()
	if err != nil {
		return nil, err
	}

	tools := defaultTools()
	for name, n := range cfg.SegmentLengths {
		if n <= 0 {
			return nil, fmt.Errorf("segment length for %s must be positive, got %d", name, n)
		}
		found := false
		for kind, spec := range tools {
			if spec.name == name {
				spec.segmentLength = n
				tools[kind] = spec
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("segment length override for unknown tool %q", name)
		}
	}

	for name, ov := range cfg.Tools {
		if err := ov.validate(name); err != nil {
			return nil, err
		}
		found := false
		for kind, spec := range tools {
			if spec.name == name {
				tools[kind] = ov.apply(spec)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("tool override for unknown tool %q", name)
		}
	}

	for kind, spec := range tools {
		if spec.segmentLength == 0 {
			spec.segmentLength = defaultSegmentLength
		}
		if spec.linecap == "" {
			spec.linecap = "round"
		}
		if spec.linejoin == "" {
			spec.linejoin = "round"
		}
		tools[kind] = spec
	}

	return &Resolver{
		palette:  palette,
		tools:    tools,
		fallback: tools[types.ToolBallpointV2],
	}, nil
}

// Known reports whether the tool kind has a table entry. Unknown kinds
// still resolve (to the ballpoint entry) so a stroke is never lost, but
// callers should report them.
func (r *Resolver) Known(tool types.ToolKind) bool {
	_, ok := r.tools[tool]
	return ok
}

// PaletteColor returns the palette entry for index. An out-of-range
// index is a data-integrity error: continuing would mis-render the
// whole document.
func (r *Resolver) PaletteColor(index types.ColorIndex) (RGB, error) {
	if int(index) < 0 || int(index) >= len(r.palette) {
		return RGB{}, fmt.Errorf("color index %d outside palette range 0-%d", index, len(r.palette)-1)
	}
	return r.palette[index], nil
}

// Resolve builds the Pen for one stroke. It fails only on an
// out-of-range color index.
func (r *Resolver) Resolve(tool types.ToolKind, color types.ColorIndex, thickness float64) (Pen, error) {
	base, err := r.PaletteColor(color)
	if err != nil {
		return Pen{}, fmt.Errorf("resolving pen for tool %s: %w", tool, err)
	}

	spec, ok := r.tools[tool]
	if !ok {
		spec = r.fallback
	}
	if spec.overrideColor != nil {
		base = *spec.overrideColor
	}

	return Pen{
		Name:          spec.name,
		SegmentLength: spec.segmentLength,
		Linecap:       spec.linecap,
		Linejoin:      spec.linejoin,
		Filter:        spec.filter,
		base:          base,
		baseWidth:     spec.baseWidth(thickness),
		spec:          spec,
	}, nil
}
