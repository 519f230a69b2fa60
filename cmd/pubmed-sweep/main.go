// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-sweep CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-sweep/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value for
// key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the pubmed-sweep CLI.
var rootCmd = &cobra.Command{
	Use:   "pubmed-sweep",
	Short: "Batch retrieval and deduplication of PubMed records",
	Long: `pubmed-sweep queries the PubMed literature database, retrieves
bibliographic metadata in batches, removes duplicate records by exact and
fuzzy matching, and exports the results to CSV files with a summary report.

Oversized boolean/MeSH queries are split at top-level connectives so each
chunk fits the server's length limit. Network calls are paced and retried
with exponential backoff.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-sweep.yaml or ~/.config/pubmed-sweep/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-sweep")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-sweep"))
		}
	}

	viper.SetEnvPrefix("PUBMED_SWEEP")
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
