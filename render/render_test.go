package render

import (
	"bytes"
	"testing"

	sent "github.com/revelaction/lemmix/sentence"
)

// testDoc is "Google builds cars in Paris."
func testDoc() sent.Doc {
	return sent.Doc{
		Text: "Google builds cars in Paris.",
		Tokens: []sent.Token{
			{Id: 0, Head: 1, Pos: "PROPN", Tag: "NNP", Dep: "nsubj", Idx: 0, Text: "Google", Lemma: "Google", Index: 0},
			{Id: 1, Head: 1, Pos: "VERB", Tag: "VBZ", Dep: "ROOT", Idx: 7, Text: "builds", Lemma: "build", Index: 1},
			{Id: 2, Head: 1, Pos: "NOUN", Tag: "NNS", Dep: "dobj", Idx: 14, Text: "cars", Lemma: "car", Index: 2},
			{Id: 3, Head: 1, Pos: "ADP", Tag: "IN", Dep: "prep", Idx: 19, Text: "in", Lemma: "in", Index: 3},
			{Id: 4, Head: 3, Pos: "PROPN", Tag: "NNP", Dep: "pobj", Idx: 22, Text: "Paris", Lemma: "Paris", Index: 4},
			{Id: 5, Head: 1, Pos: "PUNCT", Tag: ".", Dep: "punct", Idx: 27, Text: ".", Lemma: ".", Index: 5},
		},
		Sentences:  []sent.Span{{Start: 0, End: 6}},
		NounChunks: []sent.Span{{Start: 0, End: 1}, {Start: 2, End: 3}, {Start: 4, End: 5}},
		Entities: []sent.Entity{
			{Span: sent.Span{Start: 0, End: 1}, Label: "ORG"},
			{Span: sent.Span{Start: 4, End: 5}, Label: "GPE"},
		},
	}
}

func TestRendererFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"all", "Google builds cars in Paris.\n"},
		{"lemma", "Google build car in Paris .\n"},
		{"ents", "Google ORG | Paris GPE\n"},
		{"chunks", "Google | cars | Paris\n"},
		{"deps", "Google/nsubj→builds builds/ROOT→builds cars/dobj→builds in/prep→builds Paris/pobj→in ./punct→builds\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		r := &Renderer{Format: tt.format, Out: &buf}
		r.Doc(testDoc())

		if got := buf.String(); got != tt.want {
			t.Errorf("format %s: got %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestRendererPrefixAndColor(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Format: "all", Out: &buf, HasPrefix: true, HasColor: true}
	r.Doc(testDoc())

	want := " 0 ✍  " + Green256 + "Google" + Off + " builds cars in " + Green256 + "Paris" + Off + ".\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSentenceSharedOffset(t *testing.T) {
	// multi token word: both parts carry the text and offset of the word
	tokens := []sent.Token{
		{Id: 0, Idx: 0, Text: "quiero"},
		{Id: 1, Idx: 7, Text: "envolverse"},
		{Id: 2, Idx: 7, Text: "envolverse"},
		{Id: 3, Idx: 17, Text: "."},
	}

	r := NewRenderer()
	if got := r.sentence(tokens, nil); got != "quiero envolverse." {
		t.Fatalf("got %q", got)
	}
}

func TestNextFormat(t *testing.T) {
	r := NewRenderer()
	seen := []string{r.Format}
	for range SupportedFormats() {
		r.NextFormat()
		seen = append(seen, r.Format)
	}

	want := []string{"all", "lemma", "ents", "chunks", "deps", "all"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
}

func TestTables(t *testing.T) {
	var buf bytes.Buffer
	EntityTable(&buf, testDoc())

	out := buf.String()
	for _, s := range []string{"Google", "ORG", "Paris", "GPE"} {
		if !bytes.Contains([]byte(out), []byte(s)) {
			t.Errorf("expected %q in entity table:\n%s", s, out)
		}
	}
}
