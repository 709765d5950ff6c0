// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the compliance-engine CLI.
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

// rootCmd is the base command for the compliance-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "compliance-engine",
	Short: "Extract compliance obligations into an auditable matrix",
	Long: `compliance-engine extracts compliance obligations (sentences imposing a
duty: "must", "shall", "required", ...) from policy documents and assembles
them into a deduplicated, citation-backed obligation matrix, exported as a
spreadsheet an analyst can defend in an audit.

The extract subcommand runs the whole pipeline over a batch of up to 100
documents; per-document failures are reported without aborting the batch.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./compliance-engine.yaml or ~/.config/compliance-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("compliance-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "compliance-engine"))
		}
	}

	viper.SetEnvPrefix("COMPLIANCE_ENGINE")
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
