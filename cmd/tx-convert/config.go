package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tx-convert/internal/prefs"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or set stored preferences",
	Long: `Config manages the preference file that remembers the maketx executable
and OCIO config between runs. With no flags it prints the current values;
with --maketx or --ocio it updates them.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().String("maketx", "", "store this maketx executable path")
	configCmd.Flags().String("ocio", "", "store this OpenColorIO config file path")

	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if !cmd.Flags().Changed("maketx") && !cmd.Flags().Changed("ocio") {
		fmt.Fprintf(out, "Preferences (%s):\n", prefsPath)
		fmt.Fprintf(out, "  maketx: %s\n", orUnset(loadedPrefs.MaketxPath))
		fmt.Fprintf(out, "  ocio:   %s\n", orUnset(loadedPrefs.OCIOPath))
		return nil
	}

	if cmd.Flags().Changed("maketx") {
		loadedPrefs.MaketxPath, _ = cmd.Flags().GetString("maketx")
	}
	if cmd.Flags().Changed("ocio") {
		loadedPrefs.OCIOPath, _ = cmd.Flags().GetString("ocio")
	}

	if err := prefs.Save(prefsPath, loadedPrefs); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved preferences to %s\n", prefsPath)
	return nil
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
