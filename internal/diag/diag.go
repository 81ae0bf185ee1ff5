// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diag is the diagnostics channel for recoverable conversion
// conditions: unknown block kinds, blank paragraphs, unknown styles.
// Exporters report through a Sink and keep going; nothing here is fatal.
package diag

import (
	"fmt"
	"io"
)

// Sink receives diagnostics from the exporters. Warnf is for conditions
// that degrade output (skipped blocks, approximate layout); Noticef is
// for informational records (page counters, blank paragraphs).
type Sink interface {
	Warnf(format string, args ...any)
	Noticef(format string, args ...any)
}

// Writer is a Sink that prints prefixed lines to an io.Writer,
// typically stderr. Notices can be filtered out for quiet runs.
type Writer struct {
	w       io.Writer
	notices bool
}

// NewWriter returns a Sink writing warnings and notices to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, notices: true}
}

// NewWriterLevel returns a Sink writing to w at the given verbosity:
// 0 emits warnings only, 1 and above also emits notices.
func NewWriterLevel(w io.Writer, verbosity int) *Writer {
	return &Writer{w: w, notices: verbosity >= 1}
}

func (s *Writer) Warnf(format string, args ...any) {
	fmt.Fprintf(s.w, "warning: "+format+"\n", args...)
}

func (s *Writer) Noticef(format string, args ...any) {
	if !s.notices {
		return
	}
	fmt.Fprintf(s.w, "notice: "+format+"\n", args...)
}

// Recorder is a Sink that captures messages for inspection in tests.
type Recorder struct {
	Warnings []string
	Notices  []string
}

func (r *Recorder) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Recorder) Noticef(format string, args ...any) {
	r.Notices = append(r.Notices, fmt.Sprintf(format, args...))
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Warnf(string, ...any)   {}
func (discard) Noticef(string, ...any) {}
