package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/sozercan/repo-analyzer/internal/config"
)

// OpenAI talks to any OpenAI-compatible chat completions endpoint, which
// includes Gemini's compatibility layer.
type OpenAI struct {
	client *openai.Client
	cfg    config.LLMConfig
}

func NewOpenAI(cfg config.LLMConfig, extra ...option.RequestOption) (*OpenAI, error) {
	// One attempt per analysis; failures go straight back to the user.
	opts := []option.RequestOption{option.WithMaxRetries(0)}

	switch cfg.Provider {
	case config.ProviderAzure:
		opts = append(opts,
			azure.WithEndpoint(cfg.Endpoint(), cfg.APIVersion),
			azure.WithAPIKey(cfg.APIKey),
		)
	case config.ProviderGemini, config.ProviderOpenAI:
		opts = append(opts,
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.Endpoint()),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
	opts = append(opts, extra...)

	slog.Info("Creating LLM client", "provider", cfg.Provider, "endpoint", cfg.Endpoint(), "model", cfg.Model)
	return &OpenAI{
		client: openai.NewClient(opts...),
		cfg:    cfg,
	}, nil
}

func (o *OpenAI) Generate(ctx context.Context, prompt string, opts ...Option) (*Response, error) {
	if o.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	options := &Options{
		Model:       o.cfg.Model,
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.F(openai.ChatModel(options.Model)),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Temperature: openai.F(options.Temperature),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.F(options.MaxTokens)
	}

	slog.Debug("Sending prompt to generation service", "model", options.Model, "promptLength", len(prompt))
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return &Response{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
