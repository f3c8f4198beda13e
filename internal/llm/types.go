package llm

import (
	"context"
	"errors"
)

var (
	// ErrMissingAPIKey is returned by every call when no credential is configured.
	ErrMissingAPIKey = errors.New("no API key configured for the generation service (set GEMINI_API_KEY)")
	ErrEmptyResponse = errors.New("generation service returned no choices")
)

type Provider interface {
	// Generate sends a single prompt and returns the model's text answer
	Generate(ctx context.Context, prompt string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

// WithModel overrides the configured model for one call.
func WithModel(model string) Option {
	return func(o *Options) {
		if model != "" {
			o.Model = model
		}
	}
}

type Response struct {
	Content string
	Model   string
	Usage   Usage
}
