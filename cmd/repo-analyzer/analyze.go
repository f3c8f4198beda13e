package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sozercan/repo-analyzer/apimodels"
	"github.com/sozercan/repo-analyzer/internal/llm"
)

var (
	analyzeRepo  string
	analyzeQuery string
	analyzeRaw   bool
	analyzeModel string
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Short:   "Run a single analysis and print it to the terminal",
	Example: `  repo-analyzer analyze --repo https://github.com/org/repo --query "find bugs in this repo"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a, err := setup()
		if err != nil {
			return err
		}

		resp, err := a.Analyze(cmd.Context(), apimodels.AnalysisRequest{
			RepositoryURL: analyzeRepo,
			Query:         analyzeQuery,
		}, llm.WithModel(analyzeModel))
		if err != nil {
			return err
		}

		if analyzeRaw {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Raw)
			return err
		}
		return writeResult(cmd.OutOrStdout(), resp)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRepo, "repo", "", "GitHub repository URL")
	analyzeCmd.Flags().StringVar(&analyzeQuery, "query", "", "Question about the repository")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Model to use for this run (overrides LLM_MODEL)")
	analyzeCmd.Flags().BoolVar(&analyzeRaw, "raw", false, "Print the model's answer without sectioning")
	rootCmd.AddCommand(analyzeCmd)
}

// writeResult prints the summary blocks first, then every other section under
// its header.
func writeResult(w io.Writer, resp *apimodels.AnalysisResponse) error {
	var b strings.Builder

	for _, s := range resp.Summaries {
		b.WriteString("📌 Summary\n")
		b.WriteString(indent(s.Body))
		b.WriteString("\n\n")
	}
	for _, s := range resp.Sections {
		fmt.Fprintf(&b, "📂 %s\n", s.Header)
		b.WriteString(indent(s.Body))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "model=%s tokens=%d duration=%s\n", resp.Metadata.Model, resp.Metadata.TokensUsed, resp.Metadata.Duration)

	_, err := io.WriteString(w, b.String())
	return err
}

func indent(s string) string {
	if s == "" {
		return ""
	}
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
