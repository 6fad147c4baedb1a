package types

import "fmt"

// TaskKind names an extraction the adapter knows how to run.
type TaskKind string

const (
	TaskSentiment TaskKind = "sentiment-analysis"
	TaskEntities  TaskKind = "ner"
	TaskSummary   TaskKind = "summarization"
	TaskAnswer    TaskKind = "question-answering"
)

// ParseTaskKind returns ErrUnsupportedTask for anything outside the four known kinds.
func ParseTaskKind(s string) (TaskKind, error) {
	switch k := TaskKind(s); k {
	case TaskSentiment, TaskEntities, TaskSummary, TaskAnswer:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedTask, s)
}

type SentimentLabel string

const (
	Positive SentimentLabel = "POSITIVE"
	Negative SentimentLabel = "NEGATIVE"
)

type EntityGroup string

const (
	GroupPerson       EntityGroup = "PER"
	GroupOrganization EntityGroup = "ORG"
	GroupLocation     EntityGroup = "LOC"
	GroupMisc         EntityGroup = "MISC"
)

// SentimentResult is the top label of a binary sentiment classifier.
type SentimentResult struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

// EntityResult is one recognized span. Start and End are byte offsets into the source text.
type EntityResult struct {
	EntityGroup EntityGroup `json:"entity_group"`
	Score       float64     `json:"score"`
	Word        string      `json:"word"`
	Start       int         `json:"start"`
	End         int         `json:"end"`
}

type SummaryResult struct {
	SummaryText string `json:"summary_text"`
}

// AnswerResult is an extractive answer span inside the question context.
type AnswerResult struct {
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Answer string  `json:"answer"`
}

type AggregationStrategy string

const (
	AggregationNone    AggregationStrategy = "none"
	AggregationSimple  AggregationStrategy = "simple"
	AggregationFirst   AggregationStrategy = "first"
	AggregationAverage AggregationStrategy = "average"
	AggregationMax     AggregationStrategy = "max"
)

// Options tune a single extraction call. Zero values mean "backend default".
type Options struct {
	// upper bound on generated summary length, in tokens
	MaxLength int `json:"max_length,omitempty" validate:"gte=0"`
	// lower bound on generated summary length, in tokens
	MinLength int `json:"min_length,omitempty" validate:"gte=0"`
	// span-merging policy for entity recognition
	AggregationStrategy AggregationStrategy `json:"aggregation_strategy,omitempty" validate:"omitempty,oneof=none simple first average max"`
	DoSample            bool                `json:"do_sample,omitempty"`
	CleanUpSpaces       bool                `json:"clean_up_tokenization_spaces,omitempty"`
	// overrides the per-task input bound
	MaxInputTokens int `json:"max_input_tokens,omitempty" validate:"gte=0"`
}

// Request is what the adapter receives. Question is only read for TaskAnswer,
// where Text is the context the answer must come from.
type Request struct {
	Task     TaskKind `json:"task"`
	Text     string   `json:"text"`
	Question string   `json:"question,omitempty"`
	Options  Options  `json:"options"`
}

// Response carries exactly one populated variant, matching Task.
type Response struct {
	Task      TaskKind         `json:"task"`
	RequestID string           `json:"request_id"`
	Sentiment *SentimentResult `json:"sentiment,omitempty"`
	Entities  []EntityResult   `json:"entities,omitempty"`
	Summary   *SummaryResult   `json:"summary,omitempty"`
	Answer    *AnswerResult    `json:"answer,omitempty"`
}
