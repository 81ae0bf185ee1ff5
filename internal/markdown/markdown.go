// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown formats the text layer of a page as line-oriented
// Markdown. One pass, stateless: each non-blank paragraph becomes one
// styled line followed by a blank separator line.
// See docs/ARCHITECTURE § Markdown Formatter.
package markdown

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/rmconvert/internal/diag"
	"github.com/pdiddy/rmconvert/pkg/types"
)

// Format writes the Markdown rendition of all text blocks in blocks to
// w, in input order. Blank paragraphs are reported to sink with their
// style tag instead of being emitted; unknown styles degrade to plain
// text with a warning.
func Format(blocks []types.Block, sink diag.Sink, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, b := range blocks {
		if b.Kind != types.KindText || b.Text == nil {
			continue
		}
		for _, p := range b.Text.Paragraphs {
			line := strings.TrimSpace(p.Text)
			if line == "" {
				sink.Noticef("blank paragraph (style %s)", p.Style)
				continue
			}
			switch p.Style {
			case types.StyleHeading:
				fmt.Fprintf(bw, "# %s\n\n", line)
			case types.StyleBold:
				fmt.Fprintf(bw, "**%s**\n\n", line)
			case types.StyleBullet:
				fmt.Fprintf(bw, "* %s\n\n", line)
			case types.StyleBullet2:
				fmt.Fprintf(bw, "  * %s\n\n", line)
			case types.StylePlain:
				fmt.Fprintf(bw, "%s\n\n", line)
			default:
				sink.Warnf("unknown paragraph style %q, treating as plain", p.Style)
				fmt.Fprintf(bw, "%s\n\n", line)
			}
		}
	}

	return bw.Flush()
}
