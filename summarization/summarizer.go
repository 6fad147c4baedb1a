package summarization

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-nlpdocs/types"
)

const defaultMaxTokens = 150

// tokenizationSpaces undoes the spaces a subword tokenizer leaves before
// punctuation and English contractions.
var tokenizationSpaces = strings.NewReplacer(
	" .", ".",
	" ?", "?",
	" !", "!",
	" ,", ",",
	" ' ", "'",
	" n't", "n't",
	" 'm", "'m",
	" 's", "'s",
	" 've", "'ve",
	" 're", "'re",
)

// NewClient returns an OpenAI client, pointed at baseURL when it is set.
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// OpenAIBackend produces summaries and extractive answers from chat completions.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

func NewOpenAIBackend(client *openai.Client, model string) *OpenAIBackend {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIBackend{client: client, model: model}
}

func (o *OpenAIBackend) Name() string { return "openai" }

// Summarize maps max_length onto the completion token cap and min_length onto the prompt.
// CleanUpSpaces removes spaces before punctuation and contractions; other
// whitespace, newlines included, is kept.
func (o *OpenAIBackend) Summarize(ctx context.Context, text string, opts types.Options) (types.SummaryResult, error) {
	var result types.SummaryResult

	maxTokens := defaultMaxTokens
	if opts.MaxLength > 0 {
		maxTokens = opts.MaxLength
	}

	prompt := "Summarize the following text in one or two sentences. Keep names, organizations and regulations exactly as written."
	if opts.MinLength > 0 {
		prompt += fmt.Sprintf(" Use at least %d words.", opts.MinLength)
	}
	prompt += fmt.Sprintf("\n\n---\n%s\n---\n\nSummary:", text)

	// zero is dropped by omitempty, so greedy decoding needs the smallest nonzero value
	temperature := float32(math.SmallestNonzeroFloat32)
	if opts.DoSample {
		temperature = 0.7
	}

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that writes concise, factual summaries of technical and regulatory text.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   maxTokens,
			N:           1,
			Temperature: temperature,
		},
	)
	if err != nil {
		return result, fmt.Errorf("openai chat completion: %w", classifyError(err))
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return result, fmt.Errorf("%w: openai returned empty response or choices", types.ErrMalformedResponse)
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if opts.CleanUpSpaces {
		summary = tokenizationSpaces.Replace(summary)
	}
	result.SummaryText = summary
	return result, nil
}

// classifyError attaches the matching sentinel to an OpenAI client error.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, ok := apiErr.Code.(string); ok && code == "context_length_exceeded" {
			return fmt.Errorf("%w: %w", types.ErrInputTooLong, err)
		}
		if unavailableStatus(apiErr.HTTPStatusCode) {
			return fmt.Errorf("%w: %w", types.ErrServiceUnavailable, err)
		}
		return err
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if unavailableStatus(reqErr.HTTPStatusCode) {
			return fmt.Errorf("%w: %w", types.ErrServiceUnavailable, err)
		}
		return err
	}

	// anything else never reached the API
	return fmt.Errorf("%w: %w", types.ErrServiceUnavailable, err)
}

func unavailableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
