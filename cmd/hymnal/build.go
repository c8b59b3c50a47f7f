// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hymnal/internal/config"
	"github.com/pdiddy/hymnal/internal/history"
	"github.com/pdiddy/hymnal/internal/pipeline"
	"github.com/pdiddy/hymnal/pkg/types"
)

func resolveConfig(cmd *cobra.Command) types.Config {
	file, _ := cmd.Flags().GetString("config")
	return config.Resolve(file, config.HostOSType(), loadedSecrets, os.Stdout)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := resolveConfig(cmd)

	report, err := pipeline.New(os.Stdout).Run(ctx, cfg)
	if report == nil {
		// The converter was never located; leave no trace of the run.
		return err
	}

	if err == nil && cfg.ReportPath != "" {
		if werr := pipeline.WriteReport(cfg.ReportPath, report); werr != nil {
			fmt.Fprintf(os.Stderr, "warning: writing report: %v\n", werr)
		}
	}
	if cfg.HistoryPath != "" {
		recordHistory(ctx, cfg.HistoryPath, report, err)
	}
	return err
}

// recordHistory appends the run to the ledger. Ledger failures only warn.
func recordHistory(ctx context.Context, path string, report *types.RunReport, runErr error) {
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Record(ctx, report, pipeline.ExitCode(runErr), runErr); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}
