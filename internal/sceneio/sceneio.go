// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sceneio reads decoded block dumps. The binary notebook format
// is decoded by an external tool; this package only materializes its
// JSON or YAML dump into the ordered in-memory block list the two-pass
// renderer needs. See docs/ARCHITECTURE § Input Boundary.
package sceneio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rmconvert/pkg/types"
)

// Format identifies a dump encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Dump is the on-disk representation of one decoded page.
type Dump struct {
	// PageID is the page UUID, when the decoder recorded it.
	PageID string `json:"page_id,omitempty" yaml:"page_id,omitempty"`

	// Blocks is the decoded block sequence in document order.
	Blocks []types.Block `json:"blocks" yaml:"blocks"`
}

// Decode reads a dump in the given format from r.
func Decode(r io.Reader, format Format) (*Dump, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dump: %w", err)
	}

	var d Dump
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing JSON dump: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing YAML dump: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dump format %q", format)
	}
	return &d, nil
}

// ReadDump loads a dump file, picking the format from the extension.
func ReadDump(path string) (*Dump, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	d, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// FormatForPath maps a file extension to a dump format.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("cannot tell dump format from extension of %s", path)
}
