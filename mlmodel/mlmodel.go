package mlmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go-nlpdocs/types"
)

const DefaultBaseURL = "https://api-inference.huggingface.co/models/"

// responses larger than this are treated as malformed
const maxResponseBytes = 10 << 20

// Models names the hosted model used for each task.
type Models struct {
	Sentiment string
	Entities  string
	Summary   string
	Answer    string
}

var DefaultModels = Models{
	Sentiment: "distilbert/distilbert-base-uncased-finetuned-sst-2-english",
	Entities:  "dslim/bert-base-NER",
	Summary:   "facebook/bart-large-cnn",
	Answer:    "distilbert-base-cased-distilled-squad",
}

// Client calls the Hugging Face Inference API. It serves all four tasks.
type Client struct {
	baseURL    string
	token      string
	models     Models
	httpClient *http.Client
}

// NewClient builds a client. Empty model names fall back to DefaultModels.
func NewClient(baseURL, token string, models Models, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if models.Sentiment == "" {
		models.Sentiment = DefaultModels.Sentiment
	}
	if models.Entities == "" {
		models.Entities = DefaultModels.Entities
	}
	if models.Summary == "" {
		models.Summary = DefaultModels.Summary
	}
	if models.Answer == "" {
		models.Answer = DefaultModels.Answer
	}
	return &Client{baseURL: baseURL, token: token, models: models, httpClient: httpClient}
}

func (c *Client) Name() string { return "huggingface" }

type errorBody struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

func (c *Client) callModel(ctx context.Context, model string, payload, out any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+model, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", types.ErrServiceUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return statusError(model, resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", types.ErrMalformedResponse, model, err)
	}
	return nil
}

func statusError(model string, code int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)
	msg := body.Error
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	err := fmt.Errorf("model %s returned status %d: %s", model, code, msg)

	switch {
	case code == http.StatusTooManyRequests || code >= 500:
		return fmt.Errorf("%w: %w", types.ErrServiceUnavailable, err)
	case code == http.StatusRequestEntityTooLarge || isLengthMessage(msg):
		return fmt.Errorf("%w: %w", types.ErrInputTooLong, err)
	}
	return err
}

func isLengthMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, hint := range []string{"too long", "sequence length", "maximum length", "index out of range"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
