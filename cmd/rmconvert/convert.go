// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rmconvert/internal/diag"
	"github.com/pdiddy/rmconvert/internal/geometry"
	"github.com/pdiddy/rmconvert/internal/markdown"
	"github.com/pdiddy/rmconvert/internal/pdf"
	"github.com/pdiddy/rmconvert/internal/pens"
	"github.com/pdiddy/rmconvert/internal/sceneio"
	"github.com/pdiddy/rmconvert/internal/svg"
	"github.com/pdiddy/rmconvert/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [dumps...]",
	Short: "Convert decoded page dumps to SVG, PDF, or Markdown",
	Long: `Convert renders one or more decoded page dumps into the requested
output format. Formats are guessed from file extensions (.svg, .pdf,
.md) and can be forced with --to. Output goes to stdout unless
--output names a file. Multiple inputs are concatenated into one
output stream.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("from", "f", "blocks", "input format (only decoded block dumps are supported)")
	convertCmd.Flags().StringP("to", "t", "", "output format: svg, pdf, or markdown (default: guess from --output)")
	convertCmd.Flags().StringP("output", "o", "", "output filename (default: write to standard out)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	output, _ := cmd.Flags().GetString("output")

	if from != "blocks" {
		return fmt.Errorf("source format %q not supported; decode the notebook to a block dump first", from)
	}
	if to == "" {
		if output == "" {
			return fmt.Errorf("must specify --output or --to")
		}
		guessed, err := guessFormat(output)
		if err != nil {
			return err
		}
		to = guessed
	}
	to = normalizeFormat(to)
	if to != "svg" && to != "pdf" && to != "markdown" {
		return fmt.Errorf("unsupported output format %q (want svg, pdf, or markdown)", to)
	}
	if err := validateOutput(to, output); err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	sink := diagSinkFromFlags(cmd)
	for _, in := range args {
		if err := convertOne(in, to, out, sink); err != nil {
			return err
		}
	}
	return nil
}

// validateOutput rejects combinations that would corrupt a terminal:
// PDF is a binary format and must go to a file.
func validateOutput(to, output string) error {
	if to == "pdf" && output == "" {
		return fmt.Errorf("pdf output is binary; name a file with --output")
	}
	return nil
}

// diagSink builds the diagnostics channel from the verbosity flags.
// Quiet drops everything; otherwise warnings always print and notices
// need at least one -v.
func diagSink(quiet bool, verbose int, w io.Writer) diag.Sink {
	if quiet {
		return diag.Discard
	}
	return diag.NewWriterLevel(w, verbose)
}

func diagSinkFromFlags(cmd *cobra.Command) diag.Sink {
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetCount("verbose")
	return diagSink(quiet, verbose, os.Stderr)
}

// convertOne runs the full pipeline for one dump file: read, size the
// canvas, render to the requested format.
func convertOne(path, to string, out io.Writer, sink diag.Sink) error {
	dump, err := sceneio.ReadDump(path)
	if err != nil {
		return err
	}
	if id := pageID(path, dump); id != "" {
		sink.Noticef("converting page %s", id)
	}

	switch to {
	case "markdown":
		return markdown.Format(dump.Blocks, sink, out)
	case "svg":
		return renderSVG(dump.Blocks, sink, out)
	case "pdf":
		var buf bytes.Buffer
		if err := renderSVG(dump.Blocks, sink, &buf); err != nil {
			return err
		}
		return pdf.NewConverter().Convert(&buf, out)
	}
	return fmt.Errorf("unsupported output format %q", to)
}

func renderSVG(blocks []types.Block, sink diag.Sink, out io.Writer) error {
	pensCfg := pens.DefaultConfig()
	if path := viper.GetString("pens-config"); path != "" {
		cfg, err := pens.LoadConfig(path)
		if err != nil {
			return err
		}
		pensCfg = cfg
	}
	res, err := pens.NewResolver(pensCfg)
	if err != nil {
		return err
	}

	geoCfg := geometry.DefaultConfig()
	if w := viper.GetFloat64("screen-width"); w > 0 {
		geoCfg.ScreenWidth = w
	}

	canvas := geometry.Canvas(blocks, geoCfg)
	return svg.Render(blocks, canvas, res, sink, out)
}

// pageID extracts the page UUID: the dump's own record if present,
// otherwise the filename stem (device pages are named "<uuid>.rm").
func pageID(path string, dump *sceneio.Dump) string {
	if dump.PageID != "" {
		return dump.PageID
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, ".rm")
	if id, err := uuid.Parse(base); err == nil {
		return id.String()
	}
	return ""
}

// guessFormat maps an output filename to a format name.
func guessFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return "svg", nil
	case ".pdf":
		return "pdf", nil
	case ".md", ".markdown":
		return "markdown", nil
	}
	return "", fmt.Errorf("cannot guess output format from %s; use --to", path)
}

func normalizeFormat(f string) string {
	f = strings.ToLower(f)
	if f == "md" {
		return "markdown"
	}
	return f
}
