// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the decoded scene model shared by the exporters.
// Blocks arrive already decoded from the binary notebook format; this
// package never touches raw bytes. See docs/ARCHITECTURE § Scene Model.
package types

import "fmt"

// BlockKind tags the variant carried by a Block.
type BlockKind string

const (
	KindStroke    BlockKind = "stroke"
	KindHighlight BlockKind = "highlight"
	KindText      BlockKind = "text"
	KindPageInfo  BlockKind = "page_info"
)

// Block is one decoded scene record. Exactly one payload field matching
// Kind is set; any other Kind value is passed through so exporters can
// report it instead of failing.
type Block struct {
	// Kind selects the payload variant.
	Kind BlockKind `json:"kind" yaml:"kind"`

	// Line is the stroke payload for KindStroke blocks.
	Line *LineItem `json:"line,omitempty" yaml:"line,omitempty"`

	// Glyph is the highlight payload for KindHighlight blocks.
	Glyph *GlyphItem `json:"glyph,omitempty" yaml:"glyph,omitempty"`

	// Text is the payload for KindText blocks.
	Text *RootText `json:"text,omitempty" yaml:"text,omitempty"`

	// Page is the payload for KindPageInfo blocks.
	Page *PageInfo `json:"page,omitempty" yaml:"page,omitempty"`
}

// LineItem wraps a stroke with its CRDT identity. Value is nil when the
// entry was tombstoned by a delete; such items render nothing.
type LineItem struct {
	// ItemID is the CRDT item identifier, e.g. "1:42".
	ItemID string `json:"item_id" yaml:"item_id"`

	// Value is the stroke payload, or nil for a tombstoned entry.
	Value *Stroke `json:"value,omitempty" yaml:"value,omitempty"`
}

// GlyphItem wraps a highlighted glyph range with its CRDT identity.
// Value is nil when the entry was tombstoned.
type GlyphItem struct {
	ItemID string      `json:"item_id" yaml:"item_id"`
	Value  *GlyphRange `json:"value,omitempty" yaml:"value,omitempty"`
}

// ToolKind identifies the physical pen used for a stroke. The numeric
// values match the device's tool enum.
type ToolKind int

const (
	ToolPaintbrushV1       ToolKind = 0
	ToolPencilV1           ToolKind = 1
	ToolBallpointV1        ToolKind = 2
	ToolMarkerV1           ToolKind = 3
	ToolFinelinerV1        ToolKind = 4
	ToolHighlighterV1      ToolKind = 5
	ToolEraser             ToolKind = 6
	ToolMechanicalPencilV1 ToolKind = 7
	ToolEraseArea          ToolKind = 8
	ToolPaintbrushV2       ToolKind = 12
	ToolMechanicalPencilV2 ToolKind = 13
	ToolPencilV2           ToolKind = 14
	ToolBallpointV2        ToolKind = 15
	ToolMarkerV2           ToolKind = 16
	ToolFinelinerV2        ToolKind = 17
	ToolHighlighterV2      ToolKind = 18
	ToolCaligraphy         ToolKind = 21
)

// String returns the tool name used in diagnostics and config keys.
func (t ToolKind) String() string {
	switch t {
	case ToolPaintbrushV1, ToolPaintbrushV2:
		return "paintbrush"
	case ToolPencilV1, ToolPencilV2:
		return "pencil"
	case ToolBallpointV1, ToolBallpointV2:
		return "ballpoint"
	case ToolMarkerV1, ToolMarkerV2:
		return "marker"
	case ToolFinelinerV1, ToolFinelinerV2:
		return "fineliner"
	case ToolHighlighterV1, ToolHighlighterV2:
		return "highlighter"
	case ToolEraser:
		return "eraser"
	case ToolEraseArea:
		return "erase_area"
	case ToolMechanicalPencilV1, ToolMechanicalPencilV2:
		return "mechanical_pencil"
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// ColorIndex selects an entry in the device color palette.
type ColorIndex int

const (
	ColorBlack ColorIndex = iota
	ColorGray
	ColorWhite
	ColorYellow
	ColorGreen
	ColorPink
	ColorBlue
	ColorRed
	ColorGrayOverlap
)

// Stroke is one pen stroke: a tool, a palette color, a thickness scale,
// and the ordered pen-contact samples.
type Stroke struct {
	Tool           ToolKind   `json:"tool" yaml:"tool"`
	Color          ColorIndex `json:"color" yaml:"color"`
	ThicknessScale float64    `json:"thickness_scale" yaml:"thickness_scale"`
	Points         []Sample   `json:"points" yaml:"points"`
}

// Sample is one physical pen-contact data point. X and Y are document
// units in an unbounded space centered near the page's top-center.
// Pressure is normalized to [0, 1].
type Sample struct {
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Speed     float64 `json:"speed" yaml:"speed"`
	Direction float64 `json:"direction" yaml:"direction"`
	Width     float64 `json:"width" yaml:"width"`
	Pressure  float64 `json:"pressure" yaml:"pressure"`
}

// GlyphRange is a highlighted span of recognized text. Rectangles holds
// the axis-aligned boxes covering the span; only the first is rendered.
type GlyphRange struct {
	Color      ColorIndex `json:"color" yaml:"color"`
	Text       string     `json:"text" yaml:"text"`
	Rectangles []Rect     `json:"rectangles" yaml:"rectangles"`
}

// Rect is an axis-aligned rectangle in document units.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// PageInfo carries bookkeeping counters about the page. Informational
// only; it produces no visual output.
type PageInfo struct {
	Loads     int `json:"loads" yaml:"loads"`
	Merges    int `json:"merges" yaml:"merges"`
	TextChars int `json:"text_chars" yaml:"text_chars"`
	TextLines int `json:"text_lines" yaml:"text_lines"`
}
