// Package docs turns extraction results into fixed-template documents.
package docs

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"go-nlpdocs/types"
)

// Document is rendered template output.
type Document string

var funcMap = template.FuncMap{
	"join": func(items []string) string { return strings.Join(items, ", ") },
}

// Task lines are dropped when their category is empty.
var documentationTemplate = template.Must(template.New("documentation").Funcs(funcMap).Parse(`
    Project Documentation
    Participants:
    - Persons: {{join .Info.Person}}
    - Organizations: {{join .Info.Organization}}
    - Locations: {{join .Info.Location}}
    Description:
    {{.Description}}
    Tasks:
{{- with .LeadOrganization}}
    - Collaborate with {{.}} to implement a new feature for the EHR module.
{{- end}}
{{- with .PrimaryLocation}}
    - Ensure that the integration with the healthcare facilities in {{.}} is seamless.
{{- end}}
    `))

var complianceTemplate = template.Must(template.New("compliance").Parse(`
    Compliance Summary for Part-11 Regulation
    Summary:
    {{.Summary}}
    Detailed Requirements:
    {{.FullText}}
    `))

// GroupEntities buckets PER, ORG and LOC entities by category in input order.
// Other groups (MISC and anything unknown) are dropped.
func GroupEntities(entities []types.EntityResult) types.StructuredInfo {
	info := types.StructuredInfo{
		Person:       []string{},
		Organization: []string{},
		Location:     []string{},
	}
	for _, e := range entities {
		switch e.EntityGroup {
		case types.GroupPerson:
			info.Person = append(info.Person, e.Word)
		case types.GroupOrganization:
			info.Organization = append(info.Organization, e.Word)
		case types.GroupLocation:
			info.Location = append(info.Location, e.Word)
		}
	}
	return info
}

// RenderDocumentation fills the project documentation template. sourceText is embedded verbatim.
func RenderDocumentation(info types.StructuredInfo, sourceText string) (Document, error) {
	data := struct {
		Info             types.StructuredInfo
		Description      string
		LeadOrganization string
		PrimaryLocation  string
	}{Info: info, Description: sourceText}
	data.LeadOrganization, _ = info.First(types.CategoryOrganization)
	data.PrimaryLocation, _ = info.First(types.CategoryLocation)

	var b strings.Builder
	if err := documentationTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render documentation: %w", err)
	}
	return Document(b.String()), nil
}

func RenderComplianceDocumentation(summary, fullText string) (Document, error) {
	data := struct {
		Summary  string
		FullText string
	}{summary, fullText}

	var b strings.Builder
	if err := complianceTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render compliance documentation: %w", err)
	}
	return Document(b.String()), nil
}

// FormatSentiment prints the label with the score rounded to 4 decimal places.
func FormatSentiment(s types.SentimentResult) string {
	return fmt.Sprintf("%s (score: %s)", s.Label, strconv.FormatFloat(s.Score, 'f', 4, 64))
}

// FormatStructuredInfo prints one "Category: a, b" line per category.
func FormatStructuredInfo(info types.StructuredInfo) string {
	var b strings.Builder
	for _, c := range types.Categories {
		fmt.Fprintf(&b, "%s: %s\n", c, strings.Join(info.Get(c), ", "))
	}
	return b.String()
}
