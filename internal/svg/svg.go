// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package svg renders a decoded block sequence into a layered SVG
// document. Rendering is two-pass: the geometry package sizes the
// canvas first, then this package walks the blocks in input order so
// later blocks layer on top of earlier ones. A malformed or tombstoned
// block degrades to a no-op with a diagnostic; the only fatal condition
// is a palette or tool-table integrity violation.
// See docs/ARCHITECTURE § SVG Renderer.
package svg

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/rmconvert/internal/diag"
	"github.com/pdiddy/rmconvert/internal/geometry"
	"github.com/pdiddy/rmconvert/internal/pens"
	"github.com/pdiddy/rmconvert/pkg/types"
)

// header opens the document: viewport sized to the canvas, the page
// flip script stub, and the noise-texture filter definitions used by
// the textured pencil tools. The filter parameters approximate graphite
// on the device display and are not meant to be tuned.
const header = `<svg xmlns="http://www.w3.org/2000/svg" height="%d" width="%d">
    <script type="application/ecmascript"> <![CDATA[
        var visiblePage = 'p1';
        function goToPage(page) {
            document.getElementById(visiblePage).setAttribute('style', 'display: none');
            document.getElementById(page).setAttribute('style', 'display: inline');
            visiblePage = page;
        }
    ]]>
    </script>
    <defs>
        <filter x="-10%%" y="-10%%" width="120%%" height="120%%" filterUnits="objectBoundingBox" id="mechPencilTexture">
            <feTurbulence type="fractalNoise" baseFrequency="0.5" numOctaves="5" stitchTiles="stitch" result="f1">
            </feTurbulence>
            <feColorMatrix type="matrix" values="0 0 0 0 0, 0 0 0 0 0, 0 0 0 0 0, 0 0 0 -1.5 1.5" result="f2">
            </feColorMatrix>
            <feComposite operator="in" in2="f2b" in="SourceGraphic" result="f3">
            </feComposite>
            <feTurbulence type="fractalNoise" baseFrequency="1.2" numOctaves="3" result="noise">
            </feTurbulence>
            <feDisplacementMap xChannelSelector="R" yChannelSelector="G" scale="2.5" in="f3" result="f4">
            </feDisplacementMap>
        </filter>
        <filter x="-2000%%" y="-2000%%" width="5000%%" height="5000%%" filterUnits="objectBoundingBox" id="pencilTexture">
            <feTurbulence type="fractalNoise" baseFrequency="0.5" numOctaves="10" stitchTiles="stitch" result="f1">
            </feTurbulence>
            <feColorMatrix type="matrix" values="0 0 0 0 0, 0 0 0 0 0, 0 0 0 0 0, 0 0 0 -1.9 1.7" result="f2">
            </feColorMatrix>
            <feComposite operator="in" in2="f2" in="SourceGraphic" result="f3">
            </feComposite>
            <feTurbulence type="fractalNoise" baseFrequency="1.2" numOctaves="3" result="noise">
            </feTurbulence>
            <feDisplacementMap xChannelSelector="R" yChannelSelector="G" scale="2" in="f3" result="f4">
            </feDisplacementMap>
        </filter>
    </defs>
`

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Render writes the SVG document for blocks to w. The canvas must have
// been derived from the same block sequence so all blocks share one
// offset pair.
func Render(blocks []types.Block, canvas geometry.CanvasInfo, res *pens.Resolver, sink diag.Sink, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, header, canvas.Height, canvas.Width)
	fmt.Fprint(bw, `    <g id="p1" style="display:inline">`+"\n")
	fmt.Fprint(bw, `        <filter id="blurMe"><feGaussianBlur in="SourceGraphic" stdDeviation="10" /></filter>`+"\n")

	// Debug registration line down the page center.
	fmt.Fprintf(bw, `        <line x1="%g" y1="0" x2="%g" y2="%d" stroke="red" stroke-width="1"/>`+"\n",
		float64(canvas.Width)/2, float64(canvas.Width)/2, canvas.Height)

	for _, b := range blocks {
		switch b.Kind {
		case types.KindStroke:
			if err := drawStroke(bw, b.Line, canvas, res, sink); err != nil {
				return err
			}
		case types.KindHighlight:
			if err := drawHighlight(bw, b.Glyph, canvas, res, sink); err != nil {
				return err
			}
		case types.KindText:
			drawText(bw, b.Text, canvas, sink)
		case types.KindPageInfo:
			if b.Page != nil {
				sink.Noticef("page info: %d loads, %d merges, %d text chars, %d text lines",
					b.Page.Loads, b.Page.Merges, b.Page.TextChars, b.Page.TextLines)
			}
		default:
			sink.Warnf("not converting block kind %q", b.Kind)
		}
	}

	fmt.Fprint(bw, "    </g>\n")
	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}

// drawStroke emits one styling group per stroke, chunked into polyline
// sub-paths. Every SegmentLength-th sample closes the open sub-path and
// opens a new one with freshly resolved color, width, and opacity, so
// pressure and speed variation along the stroke stays visible. Each
// sub-path after the first starts at the previous sample so segments
// join without gaps.
func drawStroke(w io.Writer, line *types.LineItem, canvas geometry.CanvasInfo, res *pens.Resolver, sink diag.Sink) error {
	if line == nil || line.Value == nil {
		return nil
	}
	stroke := line.Value

	if !res.Known(stroke.Tool) {
		sink.Warnf("unknown tool kind %d, rendering as ballpoint", stroke.Tool)
	}
	pen, err := res.Resolve(stroke.Tool, stroke.Color, stroke.ThicknessScale)
	if err != nil {
		return fmt.Errorf("stroke %s: %w", line.ItemID, err)
	}

	filter := ""
	if pen.Filter != "" {
		filter = fmt.Sprintf(` filter="url(#%s)"`, pen.Filter)
	}

	fmt.Fprintf(w, "        <!-- stroke item_id: %s tool: %s color: %d thickness_scale: %g -->\n",
		line.ItemID, pen.Name, stroke.Color, stroke.ThicknessScale)
	fmt.Fprint(w, "<g>")

	open := false
	first := true
	var lastX, lastY, lastWidth float64
	for i, s := range stroke.Points {
		x := s.X + canvas.XOffset
		y := s.Y + canvas.YOffset

		if i%pen.SegmentLength == 0 {
			in := pens.SegmentInput{
				Speed:     s.Speed,
				Direction: s.Direction,
				Width:     s.Width,
				Pressure:  s.Pressure,
				LastWidth: lastWidth,
			}
			color := pen.SegmentColor(in)
			width := pen.SegmentWidth(in)
			opacity := pen.SegmentOpacity(in)
			lastWidth = width

			if open {
				fmt.Fprint(w, "\" />\n")
			}
			fmt.Fprintf(w, "        <polyline%s style=\"fill:none; stroke:%s ;stroke-width:%.3f;opacity:%g\" ", filter, color, width, opacity)
			fmt.Fprintf(w, "stroke-linecap=\"%s\" stroke-linejoin=\"%s\" points=\"", pen.Linecap, pen.Linejoin)
			open = true
		}

		if !first {
			// Join to the previous position.
			fmt.Fprintf(w, "%.3f,%.3f ", lastX, lastY)
		}
		lastX, lastY = x, y
		first = false
		fmt.Fprintf(w, "%.3f,%.3f ", x, y)
	}

	if open {
		fmt.Fprint(w, "\" /></g>\n")
	} else {
		fmt.Fprint(w, "</g>\n")
	}
	return nil
}

// drawHighlight emits a semi-transparent band over the first rectangle
// of the glyph range. The highlighted text itself is carried for
// annotation only and is not rendered.
func drawHighlight(w io.Writer, glyph *types.GlyphItem, canvas geometry.CanvasInfo, res *pens.Resolver, sink diag.Sink) error {
	if glyph == nil || glyph.Value == nil {
		return nil
	}
	item := glyph.Value

	if len(item.Rectangles) == 0 {
		sink.Warnf("highlight %s has no rectangles, skipping", glyph.ItemID)
		return nil
	}

	color, err := res.PaletteColor(item.Color)
	if err != nil {
		return fmt.Errorf("highlight %s: %w", glyph.ItemID, err)
	}

	r := item.Rectangles[0]
	fmt.Fprintf(w, "        <!-- highlight item_id: %s text: %q -->\n", glyph.ItemID, item.Text)
	fmt.Fprintf(w, `        <rect x="%g" y="%g" width="%g" height="%g" style="fill:%s;fill-opacity:0.5"/>`+"\n",
		r.X+canvas.XOffset, r.Y+canvas.YOffset, r.W, r.H, color)
	return nil
}

// drawText emits a best-effort overlay for the embedded text layer.
// Text anchors are relative to the canvas center, a different
// convention from stroke coordinates, so placement is approximate.
// This limitation is intentional and matches the wider toolchain.
func drawText(w io.Writer, text *types.RootText, canvas geometry.CanvasInfo, sink diag.Sink) {
	if text == nil {
		return
	}
	sink.Warnf("rendering notes with text is approximate; layout will be incorrect")

	fmt.Fprint(w, "        <style>\n")
	fmt.Fprint(w, "            .default {\n")
	fmt.Fprint(w, "                font: 50px serif\n")
	fmt.Fprint(w, "            }\n")
	fmt.Fprint(w, "        </style>\n")

	x := text.PosX + float64(canvas.Width)/2
	y := text.PosY + float64(canvas.Height)/2
	for _, item := range text.Items {
		trimmed := strings.TrimSpace(item.Text)
		if trimmed == "" {
			// Blank items advance layout bookkeeping only.
			continue
		}
		fmt.Fprintf(w, `        <text x="%g" y="%g" class="default">%s</text>`+"\n",
			x, y, textEscaper.Replace(trimmed))
	}
}
