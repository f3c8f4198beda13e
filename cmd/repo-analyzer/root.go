package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sozercan/repo-analyzer/internal/analyzer"
	"github.com/sozercan/repo-analyzer/internal/config"
	"github.com/sozercan/repo-analyzer/internal/llm"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "repo-analyzer",
	Short: "Ask an LLM questions about a GitHub repository",
	Long: `repo-analyzer forwards a repository URL and a repo/code-related question to a
hosted language model and presents its answer as a summary plus collapsible sections.
Nothing is cloned or analyzed locally.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Optional config file (yaml, toml or json); overrides environment variables")
}

// setup loads configuration once, installs the logger and builds the pipeline.
func setup() (*config.Config, *analyzer.Analyzer, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.SetDefault(newLogger(cfg.Log))

	llmProvider, err := llm.NewOpenAI(cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	return cfg, analyzer.New(llmProvider), nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
