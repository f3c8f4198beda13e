package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sozercan/repo-analyzer/apimodels"
	"github.com/sozercan/repo-analyzer/internal/llm"
)

var (
	ErrInputMissing         = errors.New("input missing")
	ErrMissingRepositoryURL = fmt.Errorf("%w: please enter a GitHub repo URL before analyzing", ErrInputMissing)
	ErrMissingQuery         = fmt.Errorf("%w: please enter a question to analyze", ErrInputMissing)
	ErrQueryOutOfScope      = errors.New("only repository/code-related questions are allowed, please rephrase your query")
)

// GenerationError wraps any failure of the generation service call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("error during analysis: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type Analyzer struct {
	llmProvider llm.Provider
}

func New(llmProvider llm.Provider) *Analyzer {
	return &Analyzer{
		llmProvider: llmProvider,
	}
}

// Validate applies the input checks and the keyword gate. It never touches the
// network.
func Validate(req apimodels.AnalysisRequest) error {
	if strings.TrimSpace(req.RepositoryURL) == "" {
		return ErrMissingRepositoryURL
	}
	if strings.TrimSpace(req.Query) == "" {
		return ErrMissingQuery
	}
	if !IsRepoRelated(req.Query) {
		return ErrQueryOutOfScope
	}
	return nil
}

// Analyze runs one request through the gate, a single generation call and the
// sectionizer. Any failure aborts the request without partial output.
func (a *Analyzer) Analyze(ctx context.Context, req apimodels.AnalysisRequest, opts ...llm.Option) (*apimodels.AnalysisResponse, error) {
	if err := Validate(req); err != nil {
		slog.Warn("Rejected analysis request", "repositoryUrl", req.RepositoryURL, "query", req.Query, "error", err)
		return nil, err
	}

	slog.Info("Starting analysis", "repositoryUrl", req.RepositoryURL, "query", req.Query)
	startTime := time.Now()

	llmResp, err := a.llmProvider.Generate(ctx, BuildPrompt(req.RepositoryURL, req.Query), opts...)
	if err != nil {
		slog.Error("LLM analysis failed", "error", err)
		return nil, &GenerationError{Err: err}
	}

	summaries, sections := Partition(Sectionize(llmResp.Content))
	slog.Info("Analysis complete", "summaries", len(summaries), "sections", len(sections), "duration", time.Since(startTime))

	return &apimodels.AnalysisResponse{
		Summaries: summaries,
		Sections:  sections,
		Raw:       llmResp.Content,
		Metadata: apimodels.AnalysisMetadata{
			Duration:   time.Since(startTime).String(),
			Model:      llmResp.Model,
			TokensUsed: llmResp.Usage.TotalTokens,
		},
	}, nil
}
