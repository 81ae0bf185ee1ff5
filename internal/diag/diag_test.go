// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterPrefixes(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriter(&buf)

	s.Warnf("skipping block %d", 3)
	s.Noticef("page %s", "abc")

	assert.Equal(t, "warning: skipping block 3\nnotice: page abc\n", buf.String())
}

func TestWriterLevelFiltersNotices(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterLevel(&buf, 0)

	s.Noticef("page %s", "abc")
	s.Warnf("skipping block %d", 3)

	assert.Equal(t, "warning: skipping block 3\n", buf.String(),
		"verbosity 0 keeps warnings and drops notices")

	buf.Reset()
	v := NewWriterLevel(&buf, 1)
	v.Noticef("page %s", "abc")
	assert.Equal(t, "notice: page abc\n", buf.String())
}

func TestRecorderCaptures(t *testing.T) {
	var r Recorder
	r.Warnf("a %d", 1)
	r.Noticef("b")

	assert.Equal(t, []string{"a 1"}, r.Warnings)
	assert.Equal(t, []string{"b"}, r.Notices)
}
