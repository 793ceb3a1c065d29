package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Valid(t *testing.T) {
	for _, p := range Providers() {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, Provider("cohere").Valid())
	assert.False(t, ProviderOllama.NeedsKey())
	assert.True(t, ProviderGitHubModels.NeedsKey())
}

func TestNewModel(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ModelConfig
		wantErr bool
	}{
		{name: "default is openai", cfg: ModelConfig{Model: "gpt-4o-mini", APIKey: "k"}},
		{name: "github models", cfg: ModelConfig{Provider: ProviderGitHubModels, Model: "gpt-4o-mini", APIKey: "k"}},
		{name: "anthropic", cfg: ModelConfig{Provider: ProviderAnthropic, Model: "claude-3-5-haiku-latest", APIKey: "k"}},
		{name: "ollama", cfg: ModelConfig{Provider: ProviderOllama, Model: "llama3", BaseURL: "http://localhost:11434"}},
		{name: "unknown", cfg: ModelConfig{Provider: "cohere"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := NewModel(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, model)
		})
	}
}

func TestPing(t *testing.T) {
	assert.NoError(t, Ping(context.Background(), &fakeModel{reply: "OK"}))

	err := Ping(context.Background(), &fakeModel{err: errors.New("quota")})
	assert.ErrorContains(t, err, "quota")
}
