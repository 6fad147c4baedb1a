package mlmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-nlpdocs/types"
)

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type entitySpan struct {
	EntityGroup string  `json:"entity_group"`
	Entity      string  `json:"entity"`
	Score       float64 `json:"score"`
	Word        string  `json:"word"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
}

type summaryParams struct {
	MaxLength     int  `json:"max_length,omitempty"`
	MinLength     int  `json:"min_length,omitempty"`
	DoSample      bool `json:"do_sample"`
	CleanUpSpaces bool `json:"clean_up_tokenization_spaces"`
}

type qaInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

func (c *Client) Sentiment(ctx context.Context, text string, _ types.Options) (types.SentimentResult, error) {
	var result types.SentimentResult

	var raw json.RawMessage
	if err := c.callModel(ctx, c.models.Sentiment, map[string]any{"inputs": text}, &raw); err != nil {
		return result, err
	}

	// single inputs come back either as [[...]] or [...]
	var labels []labelScore
	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		labels = nested[0]
	} else if err := json.Unmarshal(raw, &labels); err != nil {
		return result, fmt.Errorf("%w: sentiment payload: %v", types.ErrMalformedResponse, err)
	}
	if len(labels) == 0 {
		return result, fmt.Errorf("%w: no sentiment labels", types.ErrMalformedResponse)
	}

	best := labels[0]
	for _, l := range labels[1:] {
		if l.Score > best.Score {
			best = l
		}
	}
	result.Label = normalizeLabel(best.Label)
	result.Score = best.Score
	return result, nil
}

func normalizeLabel(label string) types.SentimentLabel {
	switch strings.ToUpper(label) {
	case "LABEL_0", "NEG", "NEGATIVE":
		return types.Negative
	case "LABEL_1", "POS", "POSITIVE":
		return types.Positive
	}
	return types.SentimentLabel(strings.ToUpper(label))
}

func (c *Client) Entities(ctx context.Context, text string, opts types.Options) ([]types.EntityResult, error) {
	strategy := opts.AggregationStrategy
	if strategy == "" {
		strategy = types.AggregationSimple
	}
	payload := map[string]any{
		"inputs":     text,
		"parameters": map[string]any{"aggregation_strategy": strategy},
	}

	var spans []entitySpan
	if err := c.callModel(ctx, c.models.Entities, payload, &spans); err != nil {
		return nil, err
	}

	offsets := byteOffsets(text)
	entities := make([]types.EntityResult, 0, len(spans))
	for _, s := range spans {
		start, end, err := toByteSpan(offsets, s.Start, s.End)
		if err != nil {
			return nil, err
		}
		group := s.EntityGroup
		if group == "" {
			// no aggregation: per-token "B-PER" / "I-PER" tags
			group = strings.TrimPrefix(strings.TrimPrefix(s.Entity, "B-"), "I-")
		}
		entities = append(entities, types.EntityResult{
			EntityGroup: types.EntityGroup(group),
			Score:       s.Score,
			Word:        s.Word,
			Start:       start,
			End:         end,
		})
	}
	return entities, nil
}

func (c *Client) Summarize(ctx context.Context, text string, opts types.Options) (types.SummaryResult, error) {
	var result types.SummaryResult
	payload := map[string]any{
		"inputs": text,
		"parameters": summaryParams{
			MaxLength:     opts.MaxLength,
			MinLength:     opts.MinLength,
			DoSample:      opts.DoSample,
			CleanUpSpaces: opts.CleanUpSpaces,
		},
	}

	var out []types.SummaryResult
	if err := c.callModel(ctx, c.models.Summary, payload, &out); err != nil {
		return result, err
	}
	if len(out) == 0 {
		return result, fmt.Errorf("%w: empty summary list", types.ErrMalformedResponse)
	}
	return out[0], nil
}

func (c *Client) Answer(ctx context.Context, question, passage string, _ types.Options) (types.AnswerResult, error) {
	var result types.AnswerResult
	payload := map[string]any{"inputs": qaInputs{Question: question, Context: passage}}

	if err := c.callModel(ctx, c.models.Answer, payload, &result); err != nil {
		return result, err
	}

	start, end, err := toByteSpan(byteOffsets(passage), result.Start, result.End)
	if err != nil {
		return types.AnswerResult{}, err
	}
	result.Start, result.End = start, end
	return result, nil
}

// byteOffsets maps character index i to its byte offset; the final entry is len(text).
func byteOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

// The inference API reports character offsets.
func toByteSpan(offsets []int, start, end int) (int, int, error) {
	if start < 0 || end < start || end >= len(offsets) {
		return 0, 0, fmt.Errorf("%w: character span [%d,%d) outside text of %d characters", types.ErrMalformedResponse, start, end, len(offsets)-1)
	}
	return offsets[start], offsets[end], nil
}
