package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/revelaction/lemmix/stat"
	sent "github.com/revelaction/lemmix/sentence"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// EntityTable prints the entities of doc.
func EntityTable(w io.Writer, doc sent.Doc) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Text", "Label", "Tokens"})
	for i, e := range doc.Entities {
		t.AppendRow(table.Row{i, doc.SpanText(e.Span), e.Label, fmt.Sprintf("%d-%d", e.Start, e.End)})
	}
	t.Render()
}

// TokenTable prints one row per token of doc.
func TokenTable(w io.Writer, doc sent.Doc) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Id", "Text", "Lemma", "Pos", "Tag", "Dep", "Head", "Sent"})
	for _, tok := range doc.Tokens {
		t.AppendRow(table.Row{tok.Id, tok.Text, tok.Lemma, tok.Pos, tok.Tag, tok.Dep, tok.Head, tok.SentenceId})
	}
	t.Render()
}

// StatsTable prints the summary of a scored review batch.
func StatsTable(w io.Writer, st stat.Stats) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Scored reviews", st.Count},
		{"Failed reviews", st.Failed},
		{"Average subjectivity", fmt.Sprintf("%.4f", st.MeanSubjectivity)},
		{"Average polarity", fmt.Sprintf("%.4f", st.MeanPolarity)},
		{fmt.Sprintf("Negative reviews (polarity < %.2f)", st.Threshold), st.Negatives},
	})
	t.Render()
}

// DocStatsTable prints the counts of a doc.
func DocStatsTable(w io.Writer, st stat.DocStats) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Sentences", "Tokens", "Tokens/Sentence", "Noun chunks", "Entities"})
	t.AppendRow(table.Row{st.NumSentences, st.NumTokens, st.TokensPerSentenceMean, st.NumNounChunks, st.NumEntities})
	t.Render()
}
