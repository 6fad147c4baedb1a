package nlp

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-nlpdocs/types"
)

// Cloud Natural Language rejects documents above this size.
const maxGoogleDocumentBytes = 1_000_000

// languageAPI is the slice of *language.Client the backend calls.
type languageAPI interface {
	AnalyzeSentiment(ctx context.Context, req *languagepb.AnalyzeSentimentRequest, opts ...gax.CallOption) (*languagepb.AnalyzeSentimentResponse, error)
	AnalyzeEntities(ctx context.Context, req *languagepb.AnalyzeEntitiesRequest, opts ...gax.CallOption) (*languagepb.AnalyzeEntitiesResponse, error)
}

// NewLanguageClient decodes base64 service-account JSON and dials the Natural Language API.
// The caller owns the client and must Close it.
func NewLanguageClient(ctx context.Context, encodedCreds string) (*language.Client, error) {
	creds, err := base64.StdEncoding.DecodeString(encodedCreds)
	if err != nil {
		return nil, fmt.Errorf("decode natural language credentials: %w", err)
	}

	client, err := language.NewClient(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("create natural language client: %w", err)
	}
	return client, nil
}

// GoogleBackend serves sentiment and entity extraction from Cloud Natural Language v2.
type GoogleBackend struct {
	client languageAPI
}

func NewGoogleBackend(client languageAPI) *GoogleBackend {
	return &GoogleBackend{client: client}
}

func (g *GoogleBackend) Name() string { return "google" }

func plainText(text string) *languagepb.Document {
	return &languagepb.Document{
		Source: &languagepb.Document_Content{
			Content: text,
		},
		Type: languagepb.Document_PLAIN_TEXT,
	}
}

// Sentiment folds the document score from [-1,1] into a label and a confidence in [0.5,1].
func (g *GoogleBackend) Sentiment(ctx context.Context, text string, _ types.Options) (types.SentimentResult, error) {
	var result types.SentimentResult
	if len(text) > maxGoogleDocumentBytes {
		return result, fmt.Errorf("%w: %d bytes", types.ErrInputTooLong, len(text))
	}

	req := &languagepb.AnalyzeSentimentRequest{
		Document:     plainText(text),
		EncodingType: languagepb.EncodingType_UTF8,
	}
	resp, err := g.client.AnalyzeSentiment(ctx, req)
	if err != nil {
		return result, fmt.Errorf("AnalyzeSentiment: %w", classifyStatus(err))
	}
	if resp.GetDocumentSentiment() == nil {
		return result, fmt.Errorf("%w: no document sentiment", types.ErrMalformedResponse)
	}

	score := float64(resp.GetDocumentSentiment().GetScore())
	result.Label = types.Positive
	if score < 0 {
		result.Label = types.Negative
		score = -score
	}
	result.Score = (1 + score) / 2
	return result, nil
}

// Entities returns one result per mention, ordered by position in text.
// Offsets are UTF-8 byte offsets, as requested from the API.
func (g *GoogleBackend) Entities(ctx context.Context, text string, _ types.Options) ([]types.EntityResult, error) {
	if len(text) > maxGoogleDocumentBytes {
		return nil, fmt.Errorf("%w: %d bytes", types.ErrInputTooLong, len(text))
	}

	req := &languagepb.AnalyzeEntitiesRequest{
		Document:     plainText(text),
		EncodingType: languagepb.EncodingType_UTF8,
	}
	resp, err := g.client.AnalyzeEntities(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("AnalyzeEntities: %w", classifyStatus(err))
	}

	var entities []types.EntityResult
	for _, e := range resp.GetEntities() {
		group := googleEntityGroup(e.GetType())
		for _, m := range e.GetMentions() {
			span := m.GetText()
			if span == nil {
				continue
			}
			start := int(span.GetBeginOffset())
			entities = append(entities, types.EntityResult{
				EntityGroup: group,
				Score:       float64(m.GetProbability()),
				Word:        span.GetContent(),
				Start:       start,
				End:         start + len(span.GetContent()),
			})
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})
	return entities, nil
}

func googleEntityGroup(t languagepb.Entity_Type) types.EntityGroup {
	switch t {
	case languagepb.Entity_PERSON:
		return types.GroupPerson
	case languagepb.Entity_ORGANIZATION:
		return types.GroupOrganization
	case languagepb.Entity_LOCATION, languagepb.Entity_ADDRESS:
		return types.GroupLocation
	}
	return types.GroupMisc
}

// classifyStatus attaches the matching sentinel to a gRPC error.
func classifyStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Internal:
		return fmt.Errorf("%w: %w", types.ErrServiceUnavailable, err)
	case codes.InvalidArgument:
		msg := strings.ToLower(st.Message())
		if strings.Contains(msg, "too long") || strings.Contains(msg, "too large") || strings.Contains(msg, "size") {
			return fmt.Errorf("%w: %w", types.ErrInputTooLong, err)
		}
	}
	return err
}
