// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hymnal/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent builds from the history ledger",
	Long: `History prints the most recent runs recorded in the SQLite ledger named
by historyPath in the config file. Recording is disabled when historyPath
is empty.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of runs to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig(cmd)
	if cfg.HistoryPath == "" {
		return fmt.Errorf("history is disabled: set historyPath in the config file")
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	formatHistory(os.Stdout, entries)
	return nil
}

func formatHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-8s  %-7s  %-5s  %-9s  %s\n",
		"Run", "Started", "Duration", "Scores", "Exit", "Delivered", "Error")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range entries {
		delivered := "no"
		if e.Delivered {
			delivered = "yes"
		}
		fmt.Fprintf(w, "%-5d  %-20s  %-8s  %-7d  %-5d  %-9s  %s\n",
			e.ID,
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			e.FinishedAt.Sub(e.StartedAt).Round(time.Second),
			e.Sources,
			e.ExitCode,
			delivered,
			e.Error,
		)
	}
}
