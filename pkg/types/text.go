// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ParagraphStyle is the closed set of paragraph styles a text block can
// carry. Unknown values are treated as plain by the formatter, with a
// diagnostic.
type ParagraphStyle string

const (
	StylePlain   ParagraphStyle = "plain"
	StyleHeading ParagraphStyle = "heading"
	StyleBold    ParagraphStyle = "bold"
	StyleBullet  ParagraphStyle = "bullet"
	StyleBullet2 ParagraphStyle = "bullet2"
)

// RootText is the embedded text layer of a page. PosX/PosY anchor the
// layer in a coordinate convention different from stroke coordinates;
// SVG text placement derived from them is approximate.
type RootText struct {
	// PosX, PosY anchor the text layer.
	PosX float64 `json:"pos_x" yaml:"pos_x"`
	PosY float64 `json:"pos_y" yaml:"pos_y"`

	// Items are the raw text items in document order. A blank Text
	// advances layout bookkeeping but emits nothing.
	Items []TextItem `json:"items" yaml:"items"`

	// Paragraphs is the resolved paragraph sequence used by the
	// Markdown formatter.
	Paragraphs []Paragraph `json:"paragraphs,omitempty" yaml:"paragraphs,omitempty"`
}

// TextItem is one CRDT text item within a text layer.
type TextItem struct {
	ItemID string `json:"item_id" yaml:"item_id"`
	Text   string `json:"text" yaml:"text"`
}

// Paragraph is one styled line of the text layer.
type Paragraph struct {
	Style ParagraphStyle `json:"style" yaml:"style"`
	Text  string         `json:"text" yaml:"text"`
}
