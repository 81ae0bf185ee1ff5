// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geometry computes the page canvas from the decoded block
// sequence: one pass over all drawable blocks accumulates the content
// bounding box, from which the canvas size and the coordinate offsets
// are derived. See docs/ARCHITECTURE § Geometry.
package geometry

import (
	"math"

	"github.com/pdiddy/rmconvert/pkg/types"
)

// ScreenWidth is the device's native screen width in document units.
const ScreenWidth = 1404

// Config carries the device constants the canvas derivation depends on.
// Overridable so tests can use synthetic geometries.
type Config struct {
	// ScreenWidth is the native screen width; half of it is the
	// minimum x offset applied to every drawn coordinate.
	ScreenWidth float64
}

// DefaultConfig returns the device defaults.
func DefaultConfig() Config {
	return Config{ScreenWidth: ScreenWidth}
}

// CanvasInfo is the derived page size and coordinate-shift constants.
// Computed once per document and shared read-only by the renderer.
type CanvasInfo struct {
	Height  int
	Width   int
	XOffset float64
	YOffset float64
}

// Limits is a running bounding box over document coordinates.
type Limits struct {
	XMin, XMax float64
	YMin, YMax float64
	set        bool
}

// Known reports whether any point has been accumulated.
func (l *Limits) Known() bool { return l.set }

func (l *Limits) extend(x, y float64) {
	if !l.set {
		l.XMin, l.XMax = x, x
		l.YMin, l.YMax = y, y
		l.set = true
		return
	}
	l.XMin = math.Min(l.XMin, x)
	l.XMax = math.Max(l.XMax, x)
	l.YMin = math.Min(l.YMin, y)
	l.YMax = math.Max(l.YMax, y)
}

// Bounds accumulates the content bounding box over all drawable blocks.
// Strokes contribute every sample; highlights contribute the corners of
// their first rectangle. Text blocks are excluded: their anchor-based
// coordinates would corrupt the scale of drawing-heavy pages. Blocks
// with tombstoned items and blocks of other kinds contribute nothing.
func Bounds(blocks []types.Block) Limits {
	var l Limits
	for _, b := range blocks {
		switch b.Kind {
		case types.KindStroke:
			if b.Line == nil || b.Line.Value == nil {
				continue
			}
			for _, p := range b.Line.Value.Points {
				l.extend(p.X, p.Y)
			}
		case types.KindHighlight:
			if b.Glyph == nil || b.Glyph.Value == nil || len(b.Glyph.Value.Rectangles) == 0 {
				continue
			}
			r := b.Glyph.Value.Rectangles[0]
			l.extend(r.X, r.Y)
			l.extend(r.X+r.W, r.Y+r.H)
		}
	}
	return l
}

// Canvas derives the canvas from the block sequence. A page with no
// drawable content yields a 0x0 canvas, which is valid.
//
// The x offset is max(half screen width, width/2), so strokes drawn
// relative to the device's center point never go negative. Negative
// y extent trims the height instead of shifting: on the device,
// content above y=0 is overflow, not shifted content. The asymmetry
// is deliberate and must match device semantics.
func Canvas(blocks []types.Block, cfg Config) CanvasInfo {
	l := Bounds(blocks)

	width := 0.0
	height := 0.0
	if l.Known() {
		width = math.Ceil(l.XMax - l.XMin)
		height = math.Ceil(l.YMax - l.YMin)
		if l.YMin < 0 {
			height += l.YMin
		}
	}

	return CanvasInfo{
		Height:  int(height),
		Width:   int(width),
		XOffset: math.Max(cfg.ScreenWidth/2, width/2),
		YOffset: 0,
	}
}
