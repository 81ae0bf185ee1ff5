// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rmconvert CLI: it converts
// decoded reMarkable page dumps into SVG, PDF, or Markdown.
// See docs/ARCHITECTURE § CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the rmconvert CLI.
var rootCmd = &cobra.Command{
	Use:   "rmconvert",
	Short: "Convert decoded reMarkable pages to SVG, PDF, or Markdown",
	Long: `rmconvert renders decoded reMarkable v6 notebook pages. The binary .rm
format is decoded upstream into a block dump (JSON or YAML); rmconvert
turns that dump into vector graphics or Markdown text.

Device constants (screen width, pen tables, color palette) are
configuration, overridable through rmconvert.yaml or flags.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rmconvert.yaml or ~/.config/rmconvert/config.yaml)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "also print informational notices (page IDs, page counters)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress all diagnostics")
	rootCmd.PersistentFlags().Float64("screen-width", 1404, "native screen width in document units")
	rootCmd.PersistentFlags().String("pens-config", "", "YAML file overriding the pen tables and palette")

	viper.BindPFlag("screen-width", rootCmd.PersistentFlags().Lookup("screen-width"))
	viper.BindPFlag("pens-config", rootCmd.PersistentFlags().Lookup("pens-config"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rmconvert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rmconvert"))
		}
	}

	viper.SetEnvPrefix("RMCONVERT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
