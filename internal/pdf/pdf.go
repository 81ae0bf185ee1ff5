// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf turns the rendered SVG document into a one-page PDF. It
// consumes the SVG text verbatim: the vector document is rasterized at
// its declared size and embedded as the page image. Layout decisions
// all happen upstream in the SVG renderer.
// See docs/ARCHITECTURE § PDF Output.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Converter rasterizes SVG text into a single-page PDF.
type Converter struct {
	// Scale is the raster resolution in pixels per SVG unit. Higher
	// values sharpen strokes at the cost of output size.
	Scale float64
}

// NewConverter returns a Converter at 1:1 raster scale.
func NewConverter() *Converter {
	return &Converter{Scale: 1}
}

// Convert reads an SVG document from svg and writes a PDF to out. An
// empty (0x0) document produces a blank A4 page rather than an error:
// a blank notebook page is a valid document.
func (c *Converter) Convert(svg io.Reader, out io.Writer) error {
	icon, err := oksvg.ReadIconStream(svg)
	if err != nil {
		return fmt.Errorf("parsing SVG: %w", err)
	}

	w := icon.ViewBox.W
	h := icon.ViewBox.H
	if w <= 0 || h <= 0 {
		doc := gofpdf.New("P", "pt", "A4", "")
		doc.AddPage()
		if err := doc.Output(out); err != nil {
			return fmt.Errorf("writing blank PDF: %w", err)
		}
		return nil
	}

	pw := int(math.Ceil(w * c.Scale))
	ph := int(math.Ceil(h * c.Scale))
	rgba := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(rgba, rgba.Bounds(), image.White, image.Point{}, draw.Src)

	icon.SetTarget(0, 0, float64(pw), float64(ph))
	icon.Draw(rasterx.NewDasher(pw, ph, rasterx.NewScannerGV(pw, ph, rgba, rgba.Bounds())), 1)

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, rgba); err != nil {
		return fmt.Errorf("encoding page raster: %w", err)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	doc.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("page", opts, &pngBuf)
	doc.ImageOptions("page", 0, 0, w, h, false, opts, 0, "")

	if err := doc.Output(out); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}
