package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderAzure  = "azure"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8000" mapstructure:"port"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0" mapstructure:"host"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s" mapstructure:"readTimeout"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"5m" mapstructure:"writeTimeout"`
}

// LLMConfig describes the generation service. APIKey is deliberately optional:
// a missing key fails each analysis, not startup.
type LLMConfig struct {
	Provider    string  `envconfig:"LLM_PROVIDER" default:"gemini" mapstructure:"provider"`
	APIKey      string  `envconfig:"GEMINI_API_KEY" mapstructure:"apiKey"`
	APIEndpoint string  `envconfig:"LLM_ENDPOINT" mapstructure:"endpoint"`
	Model       string  `envconfig:"LLM_MODEL" default:"gemini-2.5-pro" mapstructure:"model"`
	APIVersion  string  `envconfig:"LLM_API_VERSION" default:"2024-06-01" mapstructure:"apiVersion"`
	MaxTokens   int64   `envconfig:"LLM_MAX_TOKENS" default:"8192" mapstructure:"maxTokens"`
	Temperature float64 `envconfig:"LLM_TEMPERATURE" default:"0" mapstructure:"temperature"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info" mapstructure:"level"`
	Format string `envconfig:"LOG_FORMAT" default:"text" mapstructure:"format"`
}

// Endpoint returns the configured base URL, falling back to the provider default.
func (c LLMConfig) Endpoint() string {
	if c.APIEndpoint != "" {
		return c.APIEndpoint
	}
	switch c.Provider {
	case ProviderOpenAI:
		return "https://api.openai.com/v1/"
	case ProviderAzure:
		return ""
	default:
		return "https://generativelanguage.googleapis.com/v1beta/openai/"
	}
}

// LoadConfig reads .env (if present) and the process environment. When file is
// non-empty its values override the environment.
func LoadConfig(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if file != "" {
		if err := mergeFile(file, &cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Info("configuration loaded successfully", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	return &cfg, nil
}

func mergeFile(file string, cfg *Config) error {
	v := viper.New()
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", file, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", file, err)
	}
	slog.Debug("merged config file", "file", v.ConfigFileUsed())
	return nil
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	case ProviderAzure:
		if c.LLM.APIEndpoint == "" {
			return fmt.Errorf("LLM_ENDPOINT is required for provider %q", ProviderAzure)
		}
	default:
		return fmt.Errorf("unknown LLM provider %q", c.LLM.Provider)
	}
	return nil
}
