// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hymnal CLI. Running it with no
// arguments builds the hymnal; subcommands inspect past runs.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hymnal/internal/config"
	"github.com/pdiddy/hymnal/internal/pipeline"
	"github.com/pdiddy/hymnal/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds SMTP credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd builds the hymnal when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "hymnal",
	Short: "Build a PDF hymnal from MuseScore scores",
	Long: `hymnal exports every score in src/ to PDF with MuseScore, merges the
pages into dist/hymnal.pdf, optionally converts the result to an e-book, and
optionally emails it to a Kindle address.

Settings are read from config.json when present. Without one, the MuseScore
path defaults to the standard install location for the host OS.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := s.Keys()
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
	RunE: runBuild,
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultFile, "config file (JSON, YAML, or TOML)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(pipeline.ExitCode(err))
	}
}
