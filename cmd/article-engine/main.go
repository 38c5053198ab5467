// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the article-engine CLI. The root
// command runs the interactive article pipeline; subcommands list preset
// sites and recorded runs.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/article-engine/internal/secrets"
	"github.com/pdiddy/article-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

// rootCmd is the base command for the article-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "article-engine",
	Short: "Interactive pipeline that turns news sites into finished articles",
	Long: `article-engine collects text from the sites you pick, asks a language
model for topics, titles and outlines, writes the article section by
section, refines it, and saves it as Markdown.

Every choice is yours: pick a suggestion by number or type your own.
Answer "revise" at the end to start over from source selection.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir, logrus.StandardLogger())
		if err != nil {
			return err
		}
		loadedSecrets = s
		if names := s.Names(); len(names) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", names)
		}
		return nil
	},
	RunE: runPipeline,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./article-engine.yaml or ~/.config/article-engine/config.yaml)")
	rootCmd.PersistentFlags().String("output-dir", "", "directory finished articles are saved to (default articles)")
	rootCmd.PersistentFlags().String("model", "", "model name sent to the completion endpoint")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("article-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "article-engine"))
		}
	}

	configureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig builds the run configuration: defaults, then the config file
// and environment, then command-line flags. The API key falls back to the
// llm-api-key secret.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	defaultHistory := types.DefaultConfig().Store.HistoryDB
	cfg, err := decodeConfig(viper.GetViper())
	if err != nil {
		return cfg, err
	}

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.Store.OutputDir = dir
		if cfg.Store.HistoryDB == defaultHistory {
			cfg.Store.HistoryDB = filepath.Join(dir, "history.db")
		}
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.LLM.Model = model
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	cfg.LLM.APIKey = loadedSecrets.Get(secrets.LLMAPIKey, cfg.LLM.APIKey)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
