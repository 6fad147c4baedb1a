package docs

import (
	"context"

	"go-nlpdocs/types"
)

type EntityRecognizer interface {
	RecognizeEntities(ctx context.Context, text string, opts types.Options) ([]types.EntityResult, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string, opts types.Options) (types.SummaryResult, error)
}

// EntityOptions merges sub-word spans into whole entities.
var EntityOptions = types.Options{AggregationStrategy: types.AggregationSimple}

// SummaryOptions keeps summaries to roughly two sentences, decoded greedily.
var SummaryOptions = types.Options{
	MaxLength:     60,
	MinLength:     30,
	DoSample:      false,
	CleanUpSpaces: true,
}

// GenerateDocumentation recognizes entities in text and renders project documentation from them.
func GenerateDocumentation(ctx context.Context, r EntityRecognizer, text string) ([]types.EntityResult, types.StructuredInfo, Document, error) {
	entities, err := r.RecognizeEntities(ctx, text, EntityOptions)
	if err != nil {
		return nil, types.StructuredInfo{}, "", err
	}
	info := GroupEntities(entities)
	doc, err := RenderDocumentation(info, text)
	if err != nil {
		return entities, info, "", err
	}
	return entities, info, doc, nil
}

// GenerateComplianceDocumentation summarizes requirementText and renders the compliance summary.
func GenerateComplianceDocumentation(ctx context.Context, s Summarizer, requirementText string) (types.SummaryResult, Document, error) {
	summary, err := s.Summarize(ctx, requirementText, SummaryOptions)
	if err != nil {
		return types.SummaryResult{}, "", err
	}
	doc, err := RenderComplianceDocumentation(summary.SummaryText, requirementText)
	if err != nil {
		return summary, "", err
	}
	return summary, doc, nil
}
