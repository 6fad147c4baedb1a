package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeDemo, cfg.Mode)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.ExtractTimeout)
	assert.Empty(t, cfg.Schedule)
	assert.Equal(t, Backends{
		Sentiment: BackendHuggingFace,
		Entities:  BackendHuggingFace,
		Summary:   BackendHuggingFace,
		Answer:    BackendHuggingFace,
	}, cfg.Backends)
	assert.False(t, cfg.Uses(BackendOpenAI))
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("APP_MODE", "serve")
	t.Setenv("EXTRACT_TIMEOUT", "5s")
	t.Setenv("DOCS_SCHEDULE", "*/30 * * * *")
	t.Setenv("SENTIMENT_BACKEND", "google")
	t.Setenv("NATURAL_LANGUAGE_CREDENTIALS", "e30=")
	t.Setenv("QA_BACKEND", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("HF_SUMMARY_MODEL", "sshleifer/distilbart-cnn-12-6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeServe, cfg.Mode)
	assert.Equal(t, 5*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, "*/30 * * * *", cfg.Schedule)
	assert.Equal(t, BackendGoogle, cfg.Backends.Sentiment)
	assert.Equal(t, BackendOpenAI, cfg.Backends.Answer)
	assert.Equal(t, "sshleifer/distilbart-cnn-12-6", cfg.HuggingFace.SummaryModel)
	assert.True(t, cfg.Uses(BackendGoogle))
	assert.True(t, cfg.Uses(BackendOpenAI))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		message string
	}{
		{"unknown mode", map[string]string{"APP_MODE": "batch"}, "APP_MODE"},
		{"google cannot summarize", map[string]string{"SUMMARY_BACKEND": "google"}, "SUMMARY_BACKEND"},
		{"openai without key", map[string]string{"QA_BACKEND": "openai"}, "OPENAI_API_KEY"},
		{"google without credentials", map[string]string{"NER_BACKEND": "google"}, "NATURAL_LANGUAGE_CREDENTIALS"},
		{"negative timeout", map[string]string{"EXTRACT_TIMEOUT": "-1s"}, "EXTRACT_TIMEOUT"},
		{"schedule in demo mode", map[string]string{"APP_MODE": "demo", "DOCS_SCHEDULE": "@every 1m"}, "DOCS_SCHEDULE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
