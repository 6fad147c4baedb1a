package nlp

import (
	"context"
	"fmt"

	"go-nlpdocs/types"
)

// Backend is anything that can serve at least one task.
type Backend interface {
	Name() string
}

type SentimentBackend interface {
	Backend
	Sentiment(ctx context.Context, text string, opts types.Options) (types.SentimentResult, error)
}

type EntityBackend interface {
	Backend
	Entities(ctx context.Context, text string, opts types.Options) ([]types.EntityResult, error)
}

type SummaryBackend interface {
	Backend
	Summarize(ctx context.Context, text string, opts types.Options) (types.SummaryResult, error)
}

type AnswerBackend interface {
	Backend
	Answer(ctx context.Context, question, passage string, opts types.Options) (types.AnswerResult, error)
}

// Backends picks one implementation per task. A nil field leaves that task unsupported.
type Backends struct {
	Sentiment SentimentBackend
	Entities  EntityBackend
	Summary   SummaryBackend
	Answer    AnswerBackend
}

// ExtractionError records which call failed. Unwrap exposes the sentinel from types.
type ExtractionError struct {
	Task      types.TaskKind
	Backend   string
	RequestID string
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("%s extraction (request %s): %v", e.Task, e.RequestID, e.Err)
	}
	return fmt.Sprintf("%s extraction via %s (request %s): %v", e.Task, e.Backend, e.RequestID, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
