package summarization

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-nlpdocs/types"
)

type answerPayload struct {
	Answer string `json:"answer"`
}

// Answer asks for a verbatim span of passage and locates it. The score is the
// geometric mean token probability of the completion, or 0 when the API
// returns no logprobs.
func (o *OpenAIBackend) Answer(ctx context.Context, question, passage string, _ types.Options) (types.AnswerResult, error) {
	var result types.AnswerResult

	prompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s\n\nReply with a JSON object {\"answer\": \"...\"} where answer is the shortest span copied verbatim from the context that answers the question.", passage, question)

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You answer questions by extracting text spans. Never paraphrase.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			LogProbs:    true,
			MaxTokens:   defaultMaxTokens,
			N:           1,
			Temperature: math.SmallestNonzeroFloat32,
		},
	)
	if err != nil {
		return result, fmt.Errorf("openai chat completion: %w", classifyError(err))
	}
	if len(resp.Choices) == 0 {
		return result, fmt.Errorf("%w: openai returned no choices", types.ErrMalformedResponse)
	}

	choice := resp.Choices[0]
	var payload answerPayload
	if err := json.Unmarshal([]byte(choice.Message.Content), &payload); err != nil {
		return result, fmt.Errorf("%w: answer payload: %v", types.ErrMalformedResponse, err)
	}

	answer := strings.TrimSpace(payload.Answer)
	start := strings.Index(passage, answer)
	if answer == "" || start < 0 {
		return result, fmt.Errorf("%w: answer %q is not a span of the context", types.ErrMalformedResponse, answer)
	}

	result.Answer = answer
	result.Start = start
	result.End = start + len(answer)
	result.Score = meanProbability(choice.LogProbs)
	return result, nil
}

func meanProbability(lp *openai.LogProbs) float64 {
	if lp == nil || len(lp.Content) == 0 {
		return 0
	}
	var sum float64
	for _, tok := range lp.Content {
		sum += tok.LogProb
	}
	return math.Exp(sum / float64(len(lp.Content)))
}
