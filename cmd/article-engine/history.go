// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List articles recorded in the run history",
	Long: `History reads the SQLite ledger that every finished run is appended to
and lists the most recent articles first. Use --query to filter by title or
topic.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list (negative for all)")
	historyCmd.Flags().String("query", "", "only list runs whose title or topic contains this text")
	historyCmd.Flags().String("format", string(history.FormatTable), "output format: table, json, yaml")
	historyCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Store.HistoryDB == "" {
		return fmt.Errorf("history is disabled (store.history_db is empty)")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	query, _ := cmd.Flags().GetString("query")
	format, _ := cmd.Flags().GetString("format")
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		format = string(history.FormatJSON)
	}

	s, err := history.NewStore(cfg.Store.HistoryDB)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Write(context.Background(), os.Stdout, history.Format(format), history.QueryOptions{
		Query: query,
		Limit: limit,
	})
}
