package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tx-convert/internal/history"
	"github.com/pdiddy/tx-convert/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past conversion batches",
	Long: `History lists recent conversion batches recorded by convert. Use --batch
to show the per-task results of one batch.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of batches to list")
	historyCmd.Flags().String("batch", "", "show per-task results for this batch ID")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath := viper.GetString("history_path")
	if dbPath == "" {
		var err error
		dbPath, err = history.DefaultPath()
		if err != nil {
			return err
		}
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if batchID, _ := cmd.Flags().GetString("batch"); batchID != "" {
		results, err := store.Results(cmd.Context(), batchID)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("no tasks recorded for batch %s", batchID)
		}
		for _, res := range results {
			fmt.Fprintf(out, "%-9s %-8s %s\n", res.Outcome,
				res.Duration.Truncate(time.Millisecond), res.Task.SourcePath)
			if res.Message != "" && res.Outcome == types.OutcomeFailed {
				fmt.Fprintf(out, "          %s\n", res.Message)
			}
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	batches, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		fmt.Fprintln(out, "No batches recorded yet.")
		return nil
	}

	for _, b := range batches {
		fmt.Fprintf(out, "%s  %s  %d converted, %d skipped, %d failed  %s\n",
			b.ID, b.StartedAt.Local().Format("2006-01-02 15:04"),
			b.Summary.Succeeded, b.Summary.Skipped, b.Summary.Failed, b.Root)
	}
	return nil
}
