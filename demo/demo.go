// Package demo runs the documentation walkthrough end to end and prints every step.
package demo

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"go-nlpdocs/display"
	"go-nlpdocs/docs"
	"go-nlpdocs/types"
)

// Extractor is the adapter surface the walkthrough needs.
type Extractor interface {
	docs.EntityRecognizer
	docs.Summarizer
	AnalyzeSentiment(ctx context.Context, text string) (types.SentimentResult, error)
	Answer(ctx context.Context, question, passage string) (types.AnswerResult, error)
	AnswerAll(ctx context.Context, passage string, questions []string) ([]types.AnswerResult, error)
}

type Walkthrough struct {
	ext Extractor
	out io.Writer
	log *zap.Logger
}

func New(ext Extractor, out io.Writer, log *zap.Logger) *Walkthrough {
	if log == nil {
		log = zap.NewNop()
	}
	return &Walkthrough{ext: ext, out: out, log: log}
}

type step struct {
	name string
	run  func(ctx context.Context) error
}

// Run executes every step in order and stops at the first failure.
func (w *Walkthrough) Run(ctx context.Context) error {
	steps := []step{
		{"comment sentiment", w.commentSentiment},
		{"project documentation", w.projectDocumentation},
		{"project summary", w.projectSummary},
		{"compliance documentation", w.complianceDocumentation},
		{"product questions", w.productQuestions},
		{"webinar theme", w.webinarTheme},
	}
	for _, s := range steps {
		w.log.Info("walkthrough step", zap.String("step", s.name))
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (w *Walkthrough) commentSentiment(ctx context.Context) error {
	negative, err := w.ext.AnalyzeSentiment(ctx, negativeComment)
	if err != nil {
		return err
	}
	positive, err := w.ext.AnalyzeSentiment(ctx, positiveComment)
	if err != nil {
		return err
	}
	display.Sentiments(w.out, negative, positive)
	return nil
}

func (w *Walkthrough) projectDocumentation(ctx context.Context) error {
	entities, info, doc, err := docs.GenerateDocumentation(ctx, w.ext, projectParticipants)
	if err != nil {
		return err
	}
	display.Entities(w.out, entities)
	display.StructuredInfo(w.out, info)
	display.Document(w.out, "Generated Documentation", doc)
	return nil
}

func (w *Walkthrough) projectSummary(ctx context.Context) error {
	summary, err := w.ext.Summarize(ctx, projectDescription, docs.SummaryOptions)
	if err != nil {
		return err
	}
	display.Summary(w.out, "Summary of the project", summary)
	return nil
}

func (w *Walkthrough) complianceDocumentation(ctx context.Context) error {
	_, doc, err := docs.GenerateComplianceDocumentation(ctx, w.ext, part11Requirements)
	if err != nil {
		return err
	}
	display.Document(w.out, "Generated Documentation", doc)
	return nil
}

func (w *Walkthrough) productQuestions(ctx context.Context) error {
	answers, err := w.ext.AnswerAll(ctx, productDescription, productQuestions)
	if err != nil {
		return err
	}
	for _, a := range answers {
		display.Answers(w.out, a)
	}
	return nil
}

// webinarTheme answers against the summary rather than the raw paragraph.
func (w *Walkthrough) webinarTheme(ctx context.Context) error {
	summary, err := w.ext.Summarize(ctx, webinarIntro, docs.SummaryOptions)
	if err != nil {
		return err
	}
	fmt.Fprintln(w.out, "Summary 1:", summary.SummaryText)

	answer, err := w.ext.Answer(ctx, webinarQuestion, summary.SummaryText)
	if err != nil {
		return err
	}
	display.Answers(w.out, answer)
	return nil
}
