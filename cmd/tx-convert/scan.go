package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tx-convert/internal/runner"
	"github.com/pdiddy/tx-convert/internal/scan"
	"github.com/pdiddy/tx-convert/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan [folder]",
	Short: "List convertible textures without running maketx",
	Long: `Scan is a dry run of convert: it lists every candidate texture with its
classification and whether an up-to-date .tx output already exists.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().Bool("recursive", true, "scan subdirectories")
	scanCmd.Flags().String("filter", "", "only list files whose name contains this substring")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	recursive, _ := cmd.Flags().GetBool("recursive")
	filter, _ := cmd.Flags().GetString("filter")

	textures, err := scan.Textures(args[0], types.ScanConfig{Recursive: recursive, Filter: filter})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	pending := 0
	for _, tex := range textures {
		needed, err := runner.NeedsConversion(tex.Path, types.OutputPath(tex.Path))
		if err != nil {
			return err
		}
		status := "up-to-date"
		if needed {
			status = "convert"
			pending++
		}
		fmt.Fprintf(out, "%-13s %-11s %s\n", tex.Kind, status, tex.Path)
	}
	fmt.Fprintf(out, "\n%d texture(s), %d to convert\n", len(textures), pending)
	return nil
}
