package assistant

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider names a model backend.
type Provider string

const (
	ProviderOpenAI       Provider = "openai"
	ProviderGitHubModels Provider = "github_models"
	ProviderAnthropic    Provider = "anthropic"
	ProviderOllama       Provider = "ollama"
)

// GitHubModelsURL is the OpenAI-compatible endpoint of GitHub Models.
const GitHubModelsURL = "https://models.inference.ai.azure.com"

// Providers lists the supported backends.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderGitHubModels, ProviderAnthropic, ProviderOllama}
}

// Valid reports whether p is a supported backend.
func (p Provider) Valid() bool {
	for _, known := range Providers() {
		if p == known {
			return true
		}
	}
	return false
}

// NeedsKey reports whether the backend requires an API key.
func (p Provider) NeedsKey() bool { return p != ProviderOllama }

// ModelConfig selects and authenticates a chat model.
type ModelConfig struct {
	Provider Provider
	Model    string
	APIKey   string
	// BaseURL overrides the provider endpoint; for ollama it is the server URL.
	BaseURL string
}

// NewModel initializes the chat model for cfg.Provider. Empty means openai.
func NewModel(cfg ModelConfig) (llms.Model, error) {
	switch cfg.Provider {
	case "", ProviderOpenAI:
		return newOpenAI(cfg.Model, cfg.APIKey, cfg.BaseURL)
	case ProviderGitHubModels:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = GitHubModelsURL
		}
		return newOpenAI(cfg.Model, cfg.APIKey, baseURL)
	case ProviderAnthropic:
		opts := []anthropic.Option{
			anthropic.WithModel(cfg.Model),
			anthropic.WithToken(cfg.APIKey),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		llm, err := anthropic.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Anthropic client: %w", err)
		}
		return llm, nil
	case ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		llm, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Ollama client: %w", err)
		}
		return llm, nil
	}
	return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
}

func newOpenAI(model, apiKey, baseURL string) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithModel(model),
		openai.WithToken(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return llm, nil
}

// Ping sends a short prompt to check that the model answers.
func Ping(ctx context.Context, model llms.Model) error {
	_, err := llms.GenerateFromSinglePrompt(ctx, model, "ตอบว่า OK", llms.WithMaxTokens(8))
	if err != nil {
		return fmt.Errorf("model did not answer: %w", err)
	}
	return nil
}
