package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-nlpdocs/config"
)

func TestBuildBackends(t *testing.T) {
	tests := []struct {
		name     string
		backends config.Backends
		want     [4]string
	}{
		{
			name: "all hugging face",
			backends: config.Backends{
				Sentiment: config.BackendHuggingFace,
				Entities:  config.BackendHuggingFace,
				Summary:   config.BackendHuggingFace,
				Answer:    config.BackendHuggingFace,
			},
			want: [4]string{"huggingface", "huggingface", "huggingface", "huggingface"},
		},
		{
			name: "openai for generation",
			backends: config.Backends{
				Sentiment: config.BackendHuggingFace,
				Entities:  config.BackendHuggingFace,
				Summary:   config.BackendOpenAI,
				Answer:    config.BackendOpenAI,
			},
			want: [4]string{"huggingface", "huggingface", "openai", "openai"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Backends: tt.backends, OpenAI: config.OpenAIConfig{APIKey: "sk-test"}}

			b, release, err := buildBackends(context.Background(), cfg)
			defer release()
			require.NoError(t, err)
			assert.Equal(t, tt.want, [4]string{b.Sentiment.Name(), b.Entities.Name(), b.Summary.Name(), b.Answer.Name()})
		})
	}
}

func TestBuildBackends_BadGoogleCredentials(t *testing.T) {
	cfg := &config.Config{
		Backends: config.Backends{
			Sentiment: config.BackendGoogle,
			Entities:  config.BackendGoogle,
			Summary:   config.BackendHuggingFace,
			Answer:    config.BackendHuggingFace,
		},
		Google: config.GoogleConfig{Credentials: "%%%"},
	}

	_, release, err := buildBackends(context.Background(), cfg)
	defer release()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "natural language credentials")
}
