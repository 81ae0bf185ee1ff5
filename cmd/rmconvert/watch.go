// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch DUMP",
	Short: "Re-convert a page dump whenever it changes",
	Long: `Watch monitors a decoded page dump and re-runs the conversion each
time the decoder rewrites it. Useful while iterating on pen or
geometry configuration. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("to", "t", "", "output format: svg, pdf, or markdown (default: guess from --output)")
	watchCmd.Flags().StringP("output", "o", "", "output filename (required)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	to, _ := cmd.Flags().GetString("to")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return fmt.Errorf("watch requires --output")
	}
	if to == "" {
		guessed, err := guessFormat(output)
		if err != nil {
			return err
		}
		to = guessed
	}
	to = normalizeFormat(to)

	sink := diagSinkFromFlags(cmd)
	reconvert := func() {
		f, err := os.Create(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		if err := convertOne(input, to, f, sink); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", output)
	}
	reconvert()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and decoders often replace the file
	// rather than writing it in place.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(input), err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				reconvert()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
