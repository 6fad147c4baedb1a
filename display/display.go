package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"go-nlpdocs/docs"
	"go-nlpdocs/types"
)

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 6, 64)
}

// Sentiments prints each result on one line, in input order.
func Sentiments(w io.Writer, results ...types.SentimentResult) {
	for _, r := range results {
		fmt.Fprintln(w, docs.FormatSentiment(r))
	}
}

// Entities renders one row per entity, columns in result field order.
func Entities(w io.Writer, entities []types.EntityResult) {
	table := newTable(w, []string{"entity_group", "score", "word", "start", "end"})
	for _, e := range entities {
		table.Append([]string{
			string(e.EntityGroup),
			formatScore(e.Score),
			e.Word,
			strconv.Itoa(e.Start),
			strconv.Itoa(e.End),
		})
	}
	table.Render()
}

// Answers renders one row per answer.
func Answers(w io.Writer, answers ...types.AnswerResult) {
	table := newTable(w, []string{"score", "start", "end", "answer"})
	for _, a := range answers {
		table.Append([]string{
			formatScore(a.Score),
			strconv.Itoa(a.Start),
			strconv.Itoa(a.End),
			a.Answer,
		})
	}
	table.Render()
}

func StructuredInfo(w io.Writer, info types.StructuredInfo) {
	fmt.Fprintln(w, "\nStructured Information:")
	fmt.Fprint(w, docs.FormatStructuredInfo(info))
}

func Document(w io.Writer, title string, doc docs.Document) {
	fmt.Fprintf(w, "\n%s:\n", title)
	fmt.Fprintln(w, doc)
}

func Summary(w io.Writer, title string, s types.SummaryResult) {
	fmt.Fprintf(w, "%s:\n\n%s\n", title, s.SummaryText)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}
