package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ModeDemo  = "demo"
	ModeServe = "serve"

	BackendHuggingFace = "huggingface"
	BackendGoogle      = "google"
	BackendOpenAI      = "openai"
)

type Config struct {
	Mode           string
	ListenAddr     string
	LogLevel       string
	LogFormat      string
	ExtractTimeout time.Duration
	// cron spec for re-running the walkthrough in serve mode; empty disables it
	Schedule string

	Backends    Backends
	HuggingFace HuggingFaceConfig
	OpenAI      OpenAIConfig
	Google      GoogleConfig
}

// Backends selects the service used for each task.
type Backends struct {
	Sentiment string
	Entities  string
	Summary   string
	Answer    string
}

type HuggingFaceConfig struct {
	BaseURL        string
	Token          string
	SentimentModel string
	EntityModel    string
	SummaryModel   string
	AnswerModel    string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type GoogleConfig struct {
	// base64 encoded service account JSON
	Credentials string
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_MODE", ModeDemo)
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("EXTRACT_TIMEOUT", "30s")
	v.SetDefault("DOCS_SCHEDULE", "")

	v.SetDefault("SENTIMENT_BACKEND", BackendHuggingFace)
	v.SetDefault("NER_BACKEND", BackendHuggingFace)
	v.SetDefault("SUMMARY_BACKEND", BackendHuggingFace)
	v.SetDefault("QA_BACKEND", BackendHuggingFace)

	v.SetDefault("HF_API_URL", "")
	v.SetDefault("HF_API_TOKEN", "")
	v.SetDefault("HF_SENTIMENT_MODEL", "")
	v.SetDefault("HF_NER_MODEL", "")
	v.SetDefault("HF_SUMMARY_MODEL", "")
	v.SetDefault("HF_QA_MODEL", "")

	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("OPENAI_MODEL", "")

	v.SetDefault("NATURAL_LANGUAGE_CREDENTIALS", "")
	return v
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Mode:           v.GetString("APP_MODE"),
		ListenAddr:     v.GetString("LISTEN_ADDR"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		ExtractTimeout: v.GetDuration("EXTRACT_TIMEOUT"),
		Schedule:       v.GetString("DOCS_SCHEDULE"),
		Backends: Backends{
			Sentiment: v.GetString("SENTIMENT_BACKEND"),
			Entities:  v.GetString("NER_BACKEND"),
			Summary:   v.GetString("SUMMARY_BACKEND"),
			Answer:    v.GetString("QA_BACKEND"),
		},
		HuggingFace: HuggingFaceConfig{
			BaseURL:        v.GetString("HF_API_URL"),
			Token:          v.GetString("HF_API_TOKEN"),
			SentimentModel: v.GetString("HF_SENTIMENT_MODEL"),
			EntityModel:    v.GetString("HF_NER_MODEL"),
			SummaryModel:   v.GetString("HF_SUMMARY_MODEL"),
			AnswerModel:    v.GetString("HF_QA_MODEL"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  v.GetString("OPENAI_API_KEY"),
			BaseURL: v.GetString("OPENAI_BASE_URL"),
			Model:   v.GetString("OPENAI_MODEL"),
		},
		Google: GoogleConfig{
			Credentials: v.GetString("NATURAL_LANGUAGE_CREDENTIALS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Mode != ModeDemo && c.Mode != ModeServe {
		return fmt.Errorf("APP_MODE must be %q or %q, got %q", ModeDemo, ModeServe, c.Mode)
	}
	if c.ExtractTimeout < 0 {
		return fmt.Errorf("EXTRACT_TIMEOUT must not be negative")
	}
	if c.Schedule != "" && c.Mode != ModeServe {
		return fmt.Errorf("DOCS_SCHEDULE requires APP_MODE=%q, got %q", ModeServe, c.Mode)
	}

	checks := []struct {
		key     string
		value   string
		allowed []string
	}{
		{"SENTIMENT_BACKEND", c.Backends.Sentiment, []string{BackendHuggingFace, BackendGoogle}},
		{"NER_BACKEND", c.Backends.Entities, []string{BackendHuggingFace, BackendGoogle}},
		{"SUMMARY_BACKEND", c.Backends.Summary, []string{BackendHuggingFace, BackendOpenAI}},
		{"QA_BACKEND", c.Backends.Answer, []string{BackendHuggingFace, BackendOpenAI}},
	}
	for _, ch := range checks {
		if !contains(ch.allowed, ch.value) {
			return fmt.Errorf("%s must be one of %v, got %q", ch.key, ch.allowed, ch.value)
		}
	}

	if c.Uses(BackendGoogle) && c.Google.Credentials == "" {
		return fmt.Errorf("NATURAL_LANGUAGE_CREDENTIALS is required by the google backend")
	}
	if c.Uses(BackendOpenAI) && c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required by the openai backend")
	}
	return nil
}

// Uses reports whether any task is served by backend.
func (c *Config) Uses(backend string) bool {
	b := c.Backends
	return b.Sentiment == backend || b.Entities == backend || b.Summary == backend || b.Answer == backend
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
