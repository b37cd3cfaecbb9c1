// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tx-convert CLI, a batch maketx
// wrapper that converts image textures into Arnold .tx files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tx-convert/internal/prefs"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedPrefs holds the stored preferences read at startup; prefsPath is
// where changes are written back.
var (
	loadedPrefs prefs.Prefs
	prefsPath   string
)

// rootCmd is the base command for the tx-convert CLI.
var rootCmd = &cobra.Command{
	Use:   "tx-convert",
	Short: "Batch-convert textures to Arnold .tx with maketx",
	Long: `tx-convert scans a folder for image textures, classifies each one by its
filename (color, raw data, or displacement), and runs the external maketx
tool to produce ACEScg .tx files next to the sources.

Conversions run in parallel up to one process per core minus one. Outputs
that are already newer than their source are skipped. Each batch is recorded
in a local history database for later inspection.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, err := prefs.DefaultPath()
		if err != nil {
			return err
		}
		prefsPath = path

		p, err := prefs.Load(prefsPath)
		if err != nil {
			return err
		}
		loadedPrefs = p
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tx-convert.yaml or ~/.config/tx-convert/tx-convert.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tx-convert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tx-convert"))
		}
	}

	viper.SetEnvPrefix("TX_CONVERT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
