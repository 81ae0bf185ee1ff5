// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/rmconvert/pkg/types"
)

func strokeBlock(points ...types.Sample) types.Block {
	return types.Block{
		Kind: types.KindStroke,
		Line: &types.LineItem{
			ItemID: "1:1",
			Value:  &types.Stroke{Tool: types.ToolBallpointV2, Points: points},
		},
	}
}

func TestCanvas_Empty(t *testing.T) {
	tests := []struct {
		name   string
		blocks []types.Block
	}{
		{"no blocks", nil},
		{"tombstoned stroke", []types.Block{{Kind: types.KindStroke, Line: &types.LineItem{ItemID: "1:2"}}}},
		{"tombstoned highlight", []types.Block{{Kind: types.KindHighlight, Glyph: &types.GlyphItem{ItemID: "1:3"}}}},
		{"unrecognized kind", []types.Block{{Kind: "author_ids"}}},
		{"text only", []types.Block{{Kind: types.KindText, Text: &types.RootText{PosX: 50, PosY: 100}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Canvas(tt.blocks, DefaultConfig())
			assert.Equal(t, 0, c.Width)
			assert.Equal(t, 0, c.Height)
			assert.Equal(t, float64(ScreenWidth)/2, c.XOffset)
			assert.Equal(t, 0.0, c.YOffset)
		})
	}
}

func TestCanvas_StrokeExtent(t *testing.T) {
	blocks := []types.Block{
		strokeBlock(
			types.Sample{X: -10.5, Y: 20},
			types.Sample{X: 89, Y: 120.25},
		),
	}
	c := Canvas(blocks, DefaultConfig())

	assert.Equal(t, 100, c.Width) // ceil(89 - -10.5)
	assert.Equal(t, 101, c.Height)
	assert.Equal(t, 702.0, c.XOffset)
	assert.Equal(t, 0.0, c.YOffset)
}

func TestCanvas_WidePageShiftsByHalfWidth(t *testing.T) {
	blocks := []types.Block{
		strokeBlock(
			types.Sample{X: -1000, Y: 0},
			types.Sample{X: 1000, Y: 10},
		),
	}
	c := Canvas(blocks, DefaultConfig())

	assert.Equal(t, 2000, c.Width)
	assert.Equal(t, 1000.0, c.XOffset, "offset follows width/2 once past half screen width")
}

func TestCanvas_NegativeYTrimsHeight(t *testing.T) {
	blocks := []types.Block{
		strokeBlock(
			types.Sample{X: 0, Y: -40},
			types.Sample{X: 10, Y: 100},
		),
	}
	c := Canvas(blocks, DefaultConfig())

	// Height is trimmed by the negative extent, not translated.
	assert.Equal(t, 100, c.Height)
	assert.Equal(t, 0.0, c.YOffset)
}

func TestCanvas_HighlightUsesFirstRectangleOnly(t *testing.T) {
	blocks := []types.Block{
		{
			Kind: types.KindHighlight,
			Glyph: &types.GlyphItem{
				ItemID: "1:4",
				Value: &types.GlyphRange{
					Color: types.ColorYellow,
					Rectangles: []types.Rect{
						{X: 10, Y: 20, W: 5, H: 2},
						{X: 900, Y: 900, W: 50, H: 50},
					},
				},
			},
		},
	}
	l := Bounds(blocks)

	assert.True(t, l.Known())
	assert.Equal(t, 10.0, l.XMin)
	assert.Equal(t, 15.0, l.XMax)
	assert.Equal(t, 20.0, l.YMin)
	assert.Equal(t, 22.0, l.YMax)
}

func TestCanvas_TextExcludedFromBounds(t *testing.T) {
	blocks := []types.Block{
		strokeBlock(types.Sample{X: 0, Y: 0}, types.Sample{X: 10, Y: 10}),
		{Kind: types.KindText, Text: &types.RootText{PosX: 5000, PosY: 5000}},
	}
	c := Canvas(blocks, DefaultConfig())

	assert.Equal(t, 10, c.Width)
	assert.Equal(t, 10, c.Height)
}

func TestCanvas_ConfigOverride(t *testing.T) {
	blocks := []types.Block{
		strokeBlock(types.Sample{X: 0, Y: 0}, types.Sample{X: 10, Y: 10}),
	}
	c := Canvas(blocks, Config{ScreenWidth: 100})

	assert.Equal(t, 50.0, c.XOffset)
}
