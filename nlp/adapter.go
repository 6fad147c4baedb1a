package nlp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-nlpdocs/types"
)

// Input bounds per task, counted in whitespace-separated words. Subword
// tokenizers only ever produce more tokens than words, so anything over the
// bound is certain to be rejected by the model.
var defaultMaxInputTokens = map[types.TaskKind]int{
	types.TaskSentiment: 512,
	types.TaskEntities:  512,
	types.TaskSummary:   1024,
	// question answering pipelines stride over long contexts
	types.TaskAnswer: 0,
}

// Adapter routes extraction requests to the configured backends.
type Adapter struct {
	backends Backends
	timeout  time.Duration
	log      *zap.Logger
	validate *validator.Validate
}

// NewAdapter builds an adapter. timeout bounds every backend call; zero disables it.
func NewAdapter(backends Backends, timeout time.Duration, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		backends: backends,
		timeout:  timeout,
		log:      log,
		validate: validator.New(),
	}
}

// Supports reports whether a backend is configured for task.
func (a *Adapter) Supports(task types.TaskKind) bool {
	_, err := a.backendFor(task)
	return err == nil
}

func (a *Adapter) backendFor(task types.TaskKind) (Backend, error) {
	var b Backend
	switch task {
	case types.TaskSentiment:
		if a.backends.Sentiment != nil {
			b = a.backends.Sentiment
		}
	case types.TaskEntities:
		if a.backends.Entities != nil {
			b = a.backends.Entities
		}
	case types.TaskSummary:
		if a.backends.Summary != nil {
			b = a.backends.Summary
		}
	case types.TaskAnswer:
		if a.backends.Answer != nil {
			b = a.backends.Answer
		}
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedTask, task)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: no backend configured for %q", types.ErrUnsupportedTask, task)
	}
	return b, nil
}

func (a *Adapter) checkOptions(opts types.Options) error {
	if err := a.validate.Struct(opts); err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidOptions, err)
	}
	if opts.MaxLength > 0 && opts.MinLength > opts.MaxLength {
		return fmt.Errorf("%w: min_length %d exceeds max_length %d", types.ErrInvalidOptions, opts.MinLength, opts.MaxLength)
	}
	return nil
}

func checkInputLength(req types.Request) error {
	limit := req.Options.MaxInputTokens
	if limit == 0 {
		limit = defaultMaxInputTokens[req.Task]
	}
	if limit == 0 {
		return nil
	}
	words := len(strings.Fields(req.Text)) + len(strings.Fields(req.Question))
	if words > limit {
		return fmt.Errorf("%w: %d words, limit %d", types.ErrInputTooLong, words, limit)
	}
	return nil
}

// Extract runs one request against its task's backend. Every failure is an
// *ExtractionError wrapping one of the sentinels in types where one applies.
func (a *Adapter) Extract(ctx context.Context, req types.Request) (types.Response, error) {
	resp := types.Response{Task: req.Task, RequestID: uuid.NewString()}
	log := a.log.With(zap.String("request_id", resp.RequestID), zap.String("task", string(req.Task)))

	backend, err := a.backendFor(req.Task)
	if err != nil {
		log.Warn("extraction rejected", zap.Error(err))
		return resp, &ExtractionError{Task: req.Task, RequestID: resp.RequestID, Err: err}
	}
	fail := func(err error) (types.Response, error) {
		return resp, &ExtractionError{Task: req.Task, Backend: backend.Name(), RequestID: resp.RequestID, Err: err}
	}
	log = log.With(zap.String("backend", backend.Name()))

	if err := a.checkOptions(req.Options); err != nil {
		log.Warn("extraction rejected", zap.Error(err))
		return fail(err)
	}
	if err := checkInputLength(req); err != nil {
		log.Warn("extraction rejected", zap.Error(err))
		return fail(err)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	started := time.Now()
	log.Debug("extraction started", zap.Int("text_bytes", len(req.Text)))

	switch req.Task {
	case types.TaskSentiment:
		var res types.SentimentResult
		res, err = a.backends.Sentiment.Sentiment(ctx, req.Text, req.Options)
		if err == nil {
			err = checkSentiment(res)
			resp.Sentiment = &res
		}
	case types.TaskEntities:
		var res []types.EntityResult
		res, err = a.backends.Entities.Entities(ctx, req.Text, req.Options)
		if err == nil {
			err = checkEntities(res, req.Text)
			resp.Entities = res
		}
	case types.TaskSummary:
		var res types.SummaryResult
		res, err = a.backends.Summary.Summarize(ctx, req.Text, req.Options)
		if err == nil {
			resp.Summary = &res
		}
	case types.TaskAnswer:
		var res types.AnswerResult
		res, err = a.backends.Answer.Answer(ctx, req.Question, req.Text, req.Options)
		if err == nil {
			err = checkAnswer(res, req.Text)
			resp.Answer = &res
		}
	}

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, types.ErrServiceUnavailable) {
			err = fmt.Errorf("%w: %w", types.ErrServiceUnavailable, err)
		}
		log.Error("extraction failed", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		resp.Sentiment, resp.Entities, resp.Summary, resp.Answer = nil, nil, nil, nil
		return fail(err)
	}

	log.Info("extraction finished", zap.Duration("elapsed", time.Since(started)))
	return resp, nil
}

func (a *Adapter) AnalyzeSentiment(ctx context.Context, text string) (types.SentimentResult, error) {
	resp, err := a.Extract(ctx, types.Request{Task: types.TaskSentiment, Text: text})
	if err != nil {
		return types.SentimentResult{}, err
	}
	return *resp.Sentiment, nil
}

func (a *Adapter) RecognizeEntities(ctx context.Context, text string, opts types.Options) ([]types.EntityResult, error) {
	resp, err := a.Extract(ctx, types.Request{Task: types.TaskEntities, Text: text, Options: opts})
	if err != nil {
		return nil, err
	}
	return resp.Entities, nil
}

func (a *Adapter) Summarize(ctx context.Context, text string, opts types.Options) (types.SummaryResult, error) {
	resp, err := a.Extract(ctx, types.Request{Task: types.TaskSummary, Text: text, Options: opts})
	if err != nil {
		return types.SummaryResult{}, err
	}
	return *resp.Summary, nil
}

func (a *Adapter) Answer(ctx context.Context, question, passage string) (types.AnswerResult, error) {
	resp, err := a.Extract(ctx, types.Request{Task: types.TaskAnswer, Text: passage, Question: question})
	if err != nil {
		return types.AnswerResult{}, err
	}
	return *resp.Answer, nil
}

// AnswerAll asks every question against the same passage concurrently.
// Results follow question order; the first failure cancels the rest.
func (a *Adapter) AnswerAll(ctx context.Context, passage string, questions []string) ([]types.AnswerResult, error) {
	answers := make([]types.AnswerResult, len(questions))
	g, ctx := errgroup.WithContext(ctx)
	for i, q := range questions {
		i, q := i, q
		g.Go(func() error {
			ans, err := a.Answer(ctx, q, passage)
			if err != nil {
				return err
			}
			answers[i] = ans
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return answers, nil
}

func checkScore(score float64) error {
	if score < 0 || score > 1 {
		return fmt.Errorf("%w: score %v outside [0,1]", types.ErrMalformedResponse, score)
	}
	return nil
}

func checkSpan(start, end int, source string) error {
	if start < 0 || start > end || end > len(source) {
		return fmt.Errorf("%w: span [%d,%d) outside text of %d bytes", types.ErrMalformedResponse, start, end, len(source))
	}
	return nil
}

func checkSentiment(res types.SentimentResult) error {
	if res.Label != types.Positive && res.Label != types.Negative {
		return fmt.Errorf("%w: unknown sentiment label %q", types.ErrMalformedResponse, res.Label)
	}
	return checkScore(res.Score)
}

func checkEntities(entities []types.EntityResult, source string) error {
	for _, e := range entities {
		if err := checkScore(e.Score); err != nil {
			return err
		}
		if err := checkSpan(e.Start, e.End, source); err != nil {
			return err
		}
	}
	return nil
}

func checkAnswer(res types.AnswerResult, source string) error {
	if err := checkScore(res.Score); err != nil {
		return err
	}
	return checkSpan(res.Start, res.End, source)
}
