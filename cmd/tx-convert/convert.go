package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tx-convert/internal/history"
	"github.com/pdiddy/tx-convert/internal/maketx"
	"github.com/pdiddy/tx-convert/internal/prefs"
	"github.com/pdiddy/tx-convert/internal/runner"
	"github.com/pdiddy/tx-convert/internal/scan"
	"github.com/pdiddy/tx-convert/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [folder]",
	Short: "Convert all textures in a folder to .tx",
	Long: `Convert scans the folder for image textures and runs maketx for each one
whose .tx output is missing or stale. Color maps are converted from sRGB to
ACEScg, data maps from raw, and displacement maps at float precision.

Tool output streams to stdout as it arrives. The command exits nonzero when
any conversion fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Bool("recursive", true, "scan subdirectories")
	convertCmd.Flags().String("filter", "", "only convert files whose name contains this substring")
	convertCmd.Flags().Bool("verbose", false, "pass -v to maketx")
	convertCmd.Flags().Int("workers", 0, "concurrent maketx processes (0 = cores minus one)")
	convertCmd.Flags().String("maketx", "", "path to the maketx executable (default: stored preference, then PATH)")
	convertCmd.Flags().String("ocio", "", "OpenColorIO config file (default: stored preference, then $OCIO)")
	convertCmd.Flags().Bool("no-history", false, "do not record this batch in the history database")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	root := args[0]

	recursive, _ := cmd.Flags().GetBool("recursive")
	filter, _ := cmd.Flags().GetString("filter")
	verbose, _ := cmd.Flags().GetBool("verbose")
	workers, _ := cmd.Flags().GetInt("workers")
	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !cmd.Flags().Changed("workers") {
		workers = viper.GetInt("workers")
	}

	// Configuration errors stop the batch before any process starts.
	maketxPath := stringSetting(cmd, "maketx", "maketx_path", loadedPrefs.MaketxPath)
	tool, err := maketx.NewTool(maketxPath)
	if err != nil {
		return err
	}

	ocioFlag, _ := cmd.Flags().GetString("ocio")
	if ocioFlag == "" {
		ocioFlag = viper.GetString("ocio_path")
	}
	ocio, err := prefs.ResolveOCIO(ocioFlag, loadedPrefs)
	if err != nil {
		return err
	}

	rememberMaketx(tool.Path())

	textures, err := scan.Textures(root, types.ScanConfig{Recursive: recursive, Filter: filter})
	if err != nil {
		return err
	}
	if len(textures) == 0 {
		return fmt.Errorf("no convertible textures in %s (check extensions or filter)", root)
	}

	toolCfg := types.ToolConfig{MaketxPath: tool.Path(), OCIOPath: ocio, Verbose: verbose}
	tasks := make([]types.Task, len(textures))
	for i, tex := range textures {
		tasks[i] = maketx.NewTask(tex, toolCfg)
	}

	sink := runner.NewSink(cmd.OutOrStdout())
	r := runner.New(tool, types.RunnerConfig{Workers: workers}, sink)
	sink.Printf("Found %d texture(s). Using %d worker(s).", len(tasks), r.Workers())

	started := time.Now()
	results, summary := r.Run(cmd.Context(), tasks)
	finished := time.Now()
	sink.Close()

	if !noHistory {
		recordBatch(cmd, root, started, finished, results, summary)
	}

	if err := cmd.Context().Err(); err != nil {
		return fmt.Errorf("batch cancelled: %d of %d tasks completed", len(results), len(tasks))
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d of %d conversions failed", summary.Failed, summary.Total())
	}
	return nil
}

// stringSetting resolves a string option: command flag, then config file,
// then the stored-preference fallback.
func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// rememberMaketx persists the resolved tool path so the next run finds it
// without flags. Failure to save is a warning, never fatal.
func rememberMaketx(path string) {
	if path == "" || path == loadedPrefs.MaketxPath {
		return
	}
	loadedPrefs.MaketxPath = path
	if err := prefs.Save(prefsPath, loadedPrefs); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save preferences: %v\n", err)
	}
}

// recordBatch writes the finished batch to the history database. History is
// observability only; failures must not fail the batch.
func recordBatch(cmd *cobra.Command, root string, started, finished time.Time, results []types.Result, summary types.Summary) {
	dbPath := viper.GetString("history_path")
	if dbPath == "" {
		var err error
		dbPath, err = history.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
			return
		}
	}

	store, err := history.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
		return
	}
	defer store.Close()

	// Record even when the batch was cancelled.
	ctx := context.WithoutCancel(cmd.Context())

	id, err := store.RecordBatch(ctx, root, started, finished, results, summary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record batch: %v\n", err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded batch %s\n", id)
}
