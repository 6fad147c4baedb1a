package nlp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-nlpdocs/types"
)

type stubBackend struct {
	sentiment types.SentimentResult
	entities  []types.EntityResult
	summary   types.SummaryResult
	answers   map[string]types.AnswerResult
	err       error
	block     bool

	mu       sync.Mutex
	lastOpts types.Options
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) wait(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.err
}

func (s *stubBackend) Sentiment(ctx context.Context, _ string, _ types.Options) (types.SentimentResult, error) {
	return s.sentiment, s.wait(ctx)
}

func (s *stubBackend) Entities(ctx context.Context, _ string, opts types.Options) ([]types.EntityResult, error) {
	s.mu.Lock()
	s.lastOpts = opts
	s.mu.Unlock()
	return s.entities, s.wait(ctx)
}

func (s *stubBackend) Summarize(ctx context.Context, _ string, opts types.Options) (types.SummaryResult, error) {
	s.mu.Lock()
	s.lastOpts = opts
	s.mu.Unlock()
	return s.summary, s.wait(ctx)
}

func (s *stubBackend) Answer(ctx context.Context, question, _ string, _ types.Options) (types.AnswerResult, error) {
	if err := s.wait(ctx); err != nil {
		return types.AnswerResult{}, err
	}
	ans, ok := s.answers[question]
	if !ok {
		return types.AnswerResult{}, errors.New("unexpected question")
	}
	return ans, nil
}

func newTestAdapter(t *testing.T, b *stubBackend, timeout time.Duration) *Adapter {
	return NewAdapter(Backends{Sentiment: b, Entities: b, Summary: b, Answer: b}, timeout, zaptest.NewLogger(t))
}

func TestAdapter_Extract_Variants(t *testing.T) {
	text := "Dr. Emily Phillips works in Berlin."
	b := &stubBackend{
		sentiment: types.SentimentResult{Label: types.Negative, Score: 0.9997},
		entities: []types.EntityResult{
			{EntityGroup: types.GroupPerson, Word: "Emily Phillips", Score: 0.99, Start: 4, End: 18},
			{EntityGroup: types.GroupLocation, Word: "Berlin", Score: 0.99, Start: 28, End: 34},
		},
		summary: types.SummaryResult{SummaryText: "Emily works in Berlin."},
		answers: map[string]types.AnswerResult{
			"Where?": {Answer: "Berlin", Score: 0.8, Start: 28, End: 34},
		},
	}
	a := newTestAdapter(t, b, time.Second)
	ctx := context.Background()

	resp, err := a.Extract(ctx, types.Request{Task: types.TaskSentiment, Text: text})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RequestID)
	require.NotNil(t, resp.Sentiment)
	assert.Equal(t, types.Negative, resp.Sentiment.Label)

	resp, err = a.Extract(ctx, types.Request{Task: types.TaskEntities, Text: text})
	require.NoError(t, err)
	assert.Len(t, resp.Entities, 2)
	assert.Equal(t, "Berlin", text[resp.Entities[1].Start:resp.Entities[1].End])

	resp, err = a.Extract(ctx, types.Request{Task: types.TaskSummary, Text: text})
	require.NoError(t, err)
	assert.Equal(t, "Emily works in Berlin.", resp.Summary.SummaryText)

	resp, err = a.Extract(ctx, types.Request{Task: types.TaskAnswer, Text: text, Question: "Where?"})
	require.NoError(t, err)
	assert.Equal(t, "Berlin", resp.Answer.Answer)
}

func TestAdapter_Extract_Errors(t *testing.T) {
	longText := strings.Repeat("word ", 600)

	tests := []struct {
		name     string
		backends Backends
		req      types.Request
		want     error
	}{
		{
			name:     "unknown task",
			backends: Backends{Sentiment: &stubBackend{}},
			req:      types.Request{Task: "translation", Text: "hi"},
			want:     types.ErrUnsupportedTask,
		},
		{
			name:     "task without backend",
			backends: Backends{Sentiment: &stubBackend{}},
			req:      types.Request{Task: types.TaskSummary, Text: "hi"},
			want:     types.ErrUnsupportedTask,
		},
		{
			name:     "input too long",
			backends: Backends{Sentiment: &stubBackend{sentiment: types.SentimentResult{Label: types.Positive, Score: 1}}},
			req:      types.Request{Task: types.TaskSentiment, Text: longText},
			want:     types.ErrInputTooLong,
		},
		{
			name:     "input bound override",
			backends: Backends{Summary: &stubBackend{}},
			req:      types.Request{Task: types.TaskSummary, Text: "one two three", Options: types.Options{MaxInputTokens: 2}},
			want:     types.ErrInputTooLong,
		},
		{
			name:     "min above max",
			backends: Backends{Summary: &stubBackend{}},
			req:      types.Request{Task: types.TaskSummary, Text: "hi", Options: types.Options{MaxLength: 10, MinLength: 30}},
			want:     types.ErrInvalidOptions,
		},
		{
			name:     "unknown aggregation",
			backends: Backends{Entities: &stubBackend{}},
			req:      types.Request{Task: types.TaskEntities, Text: "hi", Options: types.Options{AggregationStrategy: "mean"}},
			want:     types.ErrInvalidOptions,
		},
		{
			name:     "negative length",
			backends: Backends{Summary: &stubBackend{}},
			req:      types.Request{Task: types.TaskSummary, Text: "hi", Options: types.Options{MaxLength: -1}},
			want:     types.ErrInvalidOptions,
		},
		{
			name:     "backend unavailable",
			backends: Backends{Sentiment: &stubBackend{err: types.ErrServiceUnavailable}},
			req:      types.Request{Task: types.TaskSentiment, Text: "hi"},
			want:     types.ErrServiceUnavailable,
		},
		{
			name:     "score out of range",
			backends: Backends{Sentiment: &stubBackend{sentiment: types.SentimentResult{Label: types.Positive, Score: 1.5}}},
			req:      types.Request{Task: types.TaskSentiment, Text: "hi"},
			want:     types.ErrMalformedResponse,
		},
		{
			name:     "unknown label",
			backends: Backends{Sentiment: &stubBackend{sentiment: types.SentimentResult{Label: "NEUTRAL", Score: 0.5}}},
			req:      types.Request{Task: types.TaskSentiment, Text: "hi"},
			want:     types.ErrMalformedResponse,
		},
		{
			name: "span past end of text",
			backends: Backends{Entities: &stubBackend{entities: []types.EntityResult{
				{EntityGroup: types.GroupPerson, Word: "x", Score: 0.5, Start: 1, End: 40},
			}}},
			req:  types.Request{Task: types.TaskEntities, Text: "hi"},
			want: types.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdapter(tt.backends, time.Second, zaptest.NewLogger(t))

			resp, err := a.Extract(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var extErr *ExtractionError
			require.True(t, errors.As(err, &extErr))
			assert.Equal(t, tt.req.Task, extErr.Task)
			assert.Equal(t, resp.RequestID, extErr.RequestID)
			assert.Nil(t, resp.Sentiment)
			assert.Nil(t, resp.Entities)
		})
	}
}

func TestAdapter_Timeout(t *testing.T) {
	a := newTestAdapter(t, &stubBackend{block: true}, 20*time.Millisecond)

	_, err := a.AnalyzeSentiment(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrServiceUnavailable))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestAdapter_Supports(t *testing.T) {
	a := NewAdapter(Backends{Summary: &stubBackend{}}, 0, nil)

	assert.True(t, a.Supports(types.TaskSummary))
	assert.False(t, a.Supports(types.TaskSentiment))
	assert.False(t, a.Supports("translation"))
}

func TestAdapter_HelpersPassOptions(t *testing.T) {
	b := &stubBackend{summary: types.SummaryResult{SummaryText: "s"}}
	a := newTestAdapter(t, b, 0)
	opts := types.Options{MaxLength: 60, MinLength: 30, CleanUpSpaces: true}

	res, err := a.Summarize(context.Background(), "text", opts)
	require.NoError(t, err)
	assert.Equal(t, "s", res.SummaryText)
	assert.Equal(t, opts, b.lastOpts)

	_, err = a.RecognizeEntities(context.Background(), "text", types.Options{AggregationStrategy: types.AggregationFirst})
	require.NoError(t, err)
	assert.Equal(t, types.AggregationFirst, b.lastOpts.AggregationStrategy)
}

func TestAdapter_AnswerAll(t *testing.T) {
	passage := "The module ensures compliance. The dashboard provides navigation."
	b := &stubBackend{answers: map[string]types.AnswerResult{
		"What does the module ensure?":     {Answer: "compliance", Score: 0.9, Start: 19, End: 29},
		"What does the dashboard provide?": {Answer: "navigation", Score: 0.7, Start: 54, End: 64},
	}}
	a := newTestAdapter(t, b, time.Second)

	answers, err := a.AnswerAll(context.Background(), passage, []string{
		"What does the dashboard provide?",
		"What does the module ensure?",
	})
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "navigation", answers[0].Answer)
	assert.Equal(t, "compliance", answers[1].Answer)
	assert.Equal(t, "compliance", passage[answers[1].Start:answers[1].End])
}

func TestAdapter_AnswerAll_FailsFast(t *testing.T) {
	a := newTestAdapter(t, &stubBackend{err: types.ErrServiceUnavailable}, time.Second)

	answers, err := a.AnswerAll(context.Background(), "passage", []string{"a?", "b?"})
	assert.Nil(t, answers)
	assert.True(t, errors.Is(err, types.ErrServiceUnavailable))
}
