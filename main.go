package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"go-nlpdocs/config"
	"go-nlpdocs/cronjobs"
	"go-nlpdocs/demo"
	"go-nlpdocs/logger"
	"go-nlpdocs/mlmodel"
	"go-nlpdocs/nlp"
	"go-nlpdocs/routes"
	"go-nlpdocs/summarization"
)

// buildBackends acquires every client the configuration selects, once.
// The returned func releases them.
func buildBackends(ctx context.Context, cfg *config.Config) (nlp.Backends, func(), error) {
	var backends nlp.Backends
	closers := []func(){}
	release := func() {
		for _, c := range closers {
			c()
		}
	}

	hf := mlmodel.NewClient(cfg.HuggingFace.BaseURL, cfg.HuggingFace.Token, mlmodel.Models{
		Sentiment: cfg.HuggingFace.SentimentModel,
		Entities:  cfg.HuggingFace.EntityModel,
		Summary:   cfg.HuggingFace.SummaryModel,
		Answer:    cfg.HuggingFace.AnswerModel,
	}, nil)

	var google *nlp.GoogleBackend
	if cfg.Uses(config.BackendGoogle) {
		langClient, err := nlp.NewLanguageClient(ctx, cfg.Google.Credentials)
		if err != nil {
			return backends, release, err
		}
		closers = append(closers, func() { langClient.Close() })
		google = nlp.NewGoogleBackend(langClient)
	}

	var openAI *summarization.OpenAIBackend
	if cfg.Uses(config.BackendOpenAI) {
		openAI = summarization.NewOpenAIBackend(summarization.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL), cfg.OpenAI.Model)
	}

	switch cfg.Backends.Sentiment {
	case config.BackendGoogle:
		backends.Sentiment = google
	default:
		backends.Sentiment = hf
	}
	switch cfg.Backends.Entities {
	case config.BackendGoogle:
		backends.Entities = google
	default:
		backends.Entities = hf
	}
	switch cfg.Backends.Summary {
	case config.BackendOpenAI:
		backends.Summary = openAI
	default:
		backends.Summary = hf
	}
	switch cfg.Backends.Answer {
	case config.BackendOpenAI:
		backends.Answer = openAI
	default:
		backends.Answer = hf
	}

	return backends, release, nil
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	backends, release, err := buildBackends(ctx, cfg)
	defer release()
	if err != nil {
		return err
	}
	log.Info("backends ready",
		zap.String("sentiment", backends.Sentiment.Name()),
		zap.String("ner", backends.Entities.Name()),
		zap.String("summarization", backends.Summary.Name()),
		zap.String("question-answering", backends.Answer.Name()),
	)

	adapter := nlp.NewAdapter(backends, cfg.ExtractTimeout, log.Named("nlp"))
	walkthrough := demo.New(adapter, os.Stdout, log.Named("demo"))

	switch cfg.Mode {
	case config.ModeServe:
		if cfg.Schedule != "" {
			c, err := cronjobs.InitCronJobs(cfg.Schedule, walkthrough, 0, log.Named("cron"))
			if err != nil {
				return err
			}
			defer cronjobs.Stop(c)
		}

		r := routes.SetupRouter(adapter, log.Named("http"))
		log.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := r.Run(cfg.ListenAddr); err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	default:
		return walkthrough.Run(ctx)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("nlpdocs failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}
