// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svg

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rmconvert/internal/diag"
	"github.com/pdiddy/rmconvert/internal/geometry"
	"github.com/pdiddy/rmconvert/internal/pens"
	"github.com/pdiddy/rmconvert/pkg/types"
)

func resolver(t *testing.T, cfg pens.Config) *pens.Resolver {
	t.Helper()
	r, err := pens.NewResolver(cfg)
	require.NoError(t, err)
	return r
}

func render(t *testing.T, blocks []types.Block, res *pens.Resolver, sink diag.Sink) string {
	t.Helper()
	canvas := geometry.Canvas(blocks, geometry.DefaultConfig())
	var buf bytes.Buffer
	require.NoError(t, Render(blocks, canvas, res, sink, &buf))
	return buf.String()
}

func ballpointStroke(points ...types.Sample) types.Block {
	return types.Block{
		Kind: types.KindStroke,
		Line: &types.LineItem{
			ItemID: "1:10",
			Value: &types.Stroke{
				Tool:           types.ToolBallpointV2,
				Color:          types.ColorBlack,
				ThicknessScale: 2,
				Points:         points,
			},
		},
	}
}

func TestRender_EmptyDocumentIsWellFormed(t *testing.T) {
	blocks := []types.Block{
		{Kind: types.KindStroke, Line: &types.LineItem{ItemID: "1:1"}},
		{Kind: types.KindHighlight, Glyph: &types.GlyphItem{ItemID: "1:2"}},
	}
	out := render(t, blocks, resolver(t, pens.DefaultConfig()), diag.Discard)

	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" height="0" width="0">`)
	assert.Contains(t, out, `<g id="p1"`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.NotContains(t, out, "<polyline")
	assert.NotContains(t, out, "<rect x=")
}

func TestRender_SubPathCountFollowsSegmentLength(t *testing.T) {
	// 3 samples with segment length 2: sub-paths of 2 and 1 samples.
	res := resolver(t, pens.Config{SegmentLengths: map[string]int{"ballpoint": 2}})
	blocks := []types.Block{ballpointStroke(
		types.Sample{X: 0, Y: 0, Pressure: 0.5, Width: 2},
		types.Sample{X: 1, Y: 1, Pressure: 0.5, Width: 2},
		types.Sample{X: 2, Y: 2, Pressure: 0.5, Width: 2},
	)}
	out := render(t, blocks, res, diag.Discard)

	assert.Equal(t, 1, strings.Count(out, "<g>"))
	assert.Equal(t, 2, strings.Count(out, "<polyline"))
}

func TestRender_SubPathCountsPerStrokeSize(t *testing.T) {
	res := resolver(t, pens.Config{SegmentLengths: map[string]int{"ballpoint": 5}})
	for _, tt := range []struct {
		samples int
		want    int
	}{
		{1, 1},
		{5, 1},
		{6, 2},
		{11, 3},
	} {
		points := make([]types.Sample, tt.samples)
		for i := range points {
			points[i] = types.Sample{X: float64(i), Y: float64(i), Width: 2}
		}
		out := render(t, []types.Block{ballpointStroke(points...)}, res, diag.Discard)
		assert.Equal(t, tt.want, strings.Count(out, "<polyline"), "%d samples", tt.samples)
	}
}

func TestRender_TranslationInvariant(t *testing.T) {
	blocks := []types.Block{ballpointStroke(
		types.Sample{X: -5, Y: 12.5, Width: 2},
		types.Sample{X: 30, Y: 40, Width: 2},
	)}
	out := render(t, blocks, resolver(t, pens.DefaultConfig()), diag.Discard)

	// Offsets are (702, 0) for a narrow page: every emitted coordinate
	// is sample + offset, exactly.
	assert.Contains(t, out, "697.000,12.500 ")
	assert.Contains(t, out, "732.000,40.000 ")
}

func TestRender_HighlightRectangle(t *testing.T) {
	blocks := []types.Block{{
		Kind: types.KindHighlight,
		Glyph: &types.GlyphItem{
			ItemID: "1:20",
			Value: &types.GlyphRange{
				Color:      types.ColorYellow,
				Text:       "marked words",
				Rectangles: []types.Rect{{X: 10, Y: 20, W: 5, H: 2}},
			},
		},
	}}
	out := render(t, blocks, resolver(t, pens.DefaultConfig()), diag.Discard)

	want := `<rect x="712" y="20" width="5" height="2" style="fill:rgb(255, 255, 0);fill-opacity:0.5"/>`
	assert.Contains(t, out, want)

	// Idempotent on rectangle geometry.
	again := render(t, blocks, resolver(t, pens.DefaultConfig()), diag.Discard)
	assert.Equal(t, out, again)
}

func TestRender_HighlightTextNotRendered(t *testing.T) {
	blocks := []types.Block{{
		Kind: types.KindHighlight,
		Glyph: &types.GlyphItem{
			ItemID: "1:21",
			Value: &types.GlyphRange{
				Color:      types.ColorYellow,
				Text:       "secret words",
				Rectangles: []types.Rect{{X: 0, Y: 0, W: 10, H: 2}},
			},
		},
	}}
	out := render(t, blocks, resolver(t, pens.DefaultConfig()), diag.Discard)
	assert.NotContains(t, out, "<text")
}

func TestRender_UnrecognizedBlockBetweenStrokes(t *testing.T) {
	blocks := []types.Block{
		ballpointStroke(types.Sample{X: 0, Y: 0, Width: 2}, types.Sample{X: 1, Y: 1, Width: 2}),
		{Kind: "migration_info"},
		ballpointStroke(types.Sample{X: 2, Y: 2, Width: 2}, types.Sample{X: 3, Y: 3, Width: 2}),
	}
	var rec diag.Recorder
	out := render(t, blocks, resolver(t, pens.DefaultConfig()), &rec)

	assert.Equal(t, 2, strings.Count(out, "<g>"))
	require.Len(t, rec.Warnings, 1)
	assert.Contains(t, rec.Warnings[0], "migration_info")
}

func TestRender_OutOfRangeColorIsFatal(t *testing.T) {
	blocks := []types.Block{{
		Kind: types.KindStroke,
		Line: &types.LineItem{
			ItemID: "1:30",
			Value: &types.Stroke{
				Tool:           types.ToolBallpointV2,
				Color:          types.ColorIndex(42),
				ThicknessScale: 2,
				Points:         []types.Sample{{X: 0, Y: 0}},
			},
		},
	}}
	canvas := geometry.Canvas(blocks, geometry.DefaultConfig())
	var buf bytes.Buffer

	err := Render(blocks, canvas, resolver(t, pens.DefaultConfig()), diag.Discard, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside palette range")
}

func TestRender_UnknownToolWarnsAndRenders(t *testing.T) {
	blocks := []types.Block{{
		Kind: types.KindStroke,
		Line: &types.LineItem{
			ItemID: "1:31",
			Value: &types.Stroke{
				Tool:           types.ToolKind(99),
				Color:          types.ColorBlack,
				ThicknessScale: 2,
				Points:         []types.Sample{{X: 0, Y: 0, Width: 2}, {X: 1, Y: 1, Width: 2}},
			},
		},
	}}
	var rec diag.Recorder
	out := render(t, blocks, resolver(t, pens.DefaultConfig()), &rec)

	assert.Contains(t, out, "<polyline")
	require.Len(t, rec.Warnings, 1)
	assert.Contains(t, rec.Warnings[0], "unknown tool kind 99")
}

func TestRender_TextOverlayBestEffort(t *testing.T) {
	blocks := []types.Block{
		ballpointStroke(types.Sample{X: 0, Y: 0, Width: 2}, types.Sample{X: 100, Y: 100, Width: 2}),
		{
			Kind: types.KindText,
			Text: &types.RootText{
				PosX: -20,
				PosY: 30,
				Items: []types.TextItem{
					{ItemID: "2:1", Text: "hello <world>"},
					{ItemID: "2:2", Text: "   "},
				},
			},
		},
	}
	var rec diag.Recorder
	out := render(t, blocks, resolver(t, pens.DefaultConfig()), &rec)

	// Anchored at (posX + width/2, posY + height/2): canvas is 100x100.
	assert.Contains(t, out, `<text x="30" y="80" class="default">hello &lt;world&gt;</text>`)
	// The blank item emits nothing.
	assert.Equal(t, 1, strings.Count(out, "<text"))
	require.Len(t, rec.Warnings, 1)
	assert.Contains(t, rec.Warnings[0], "layout will be incorrect")
}

func TestRender_PageInfoIsInformational(t *testing.T) {
	blocks := []types.Block{{
		Kind: types.KindPageInfo,
		Page: &types.PageInfo{Loads: 3, Merges: 1, TextChars: 120, TextLines: 4},
	}}
	var rec diag.Recorder
	out := render(t, blocks, resolver(t, pens.DefaultConfig()), &rec)

	assert.NotContains(t, out, "120")
	require.Len(t, rec.Notices, 1)
	assert.Contains(t, rec.Notices[0], "3 loads")
}

func TestRender_FilterDefinitionsPresent(t *testing.T) {
	out := render(t, nil, resolver(t, pens.DefaultConfig()), diag.Discard)
	assert.Contains(t, out, fmt.Sprintf("id=%q", pens.FilterPencil))
	assert.Contains(t, out, fmt.Sprintf("id=%q", pens.FilterMechanicalPencil))
}

func TestRender_TexturedPencilStrokeCarriesFilter(t *testing.T) {
	blocks := []types.Block{{
		Kind: types.KindStroke,
		Line: &types.LineItem{
			ItemID: "1:40",
			Value: &types.Stroke{
				Tool:           types.ToolPencilV2,
				Color:          types.ColorBlack,
				ThicknessScale: 2,
				Points: []types.Sample{
					{X: 0, Y: 0, Pressure: 0.5, Width: 2},
					{X: 1, Y: 1, Pressure: 0.5, Width: 2},
				},
			},
		},
	}}
	out := render(t, blocks, resolver(t, pens.DefaultConfig()), diag.Discard)
	assert.Contains(t, out, `<polyline filter="url(#pencilTexture)"`)
}
