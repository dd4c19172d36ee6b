package prose

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/lemmix/analyze"
	sent "github.com/revelaction/lemmix/sentence"
)

func TestSpans(t *testing.T) {
	// "Hi there. Bye."
	tokens := []sent.Token{{Idx: 0}, {Idx: 3}, {Idx: 8}, {Idx: 10}, {Idx: 13}}

	got := spans(tokens, []int{9, 14})
	assert.Equal(t, []sent.Span{{Start: 0, End: 3}, {Start: 3, End: 5}}, got)

	got = spans(tokens, nil)
	assert.Equal(t, []sent.Span{{Start: 0, End: 5}}, got)
}

func TestEntities(t *testing.T) {
	labels := []string{"B-PERSON", "I-PERSON", "O", "O", "B-GPE", "I-ORG", "O", "B-ORG"}
	sentences := []sent.Span{{Start: 0, End: 7}, {Start: 7, End: 8}}

	want := []sent.Entity{
		{Span: sent.Span{Start: 0, End: 2}, Label: "PERSON"},
		{Span: sent.Span{Start: 4, End: 5}, Label: "GPE"},
		{Span: sent.Span{Start: 5, End: 6}, Label: "ORG"},
		{Span: sent.Span{Start: 7, End: 8}, Label: "ORG"},
	}
	assert.Equal(t, want, entities(labels, sentences))
}

func TestUniversal(t *testing.T) {
	tests := []struct {
		tag, text, want string
	}{
		{"NNS", "cars", "NOUN"},
		{"NNP", "Google", "PROPN"},
		{"VBD", "started", "VERB"},
		{"VBD", "was", "AUX"},
		{"MD", "can", "AUX"},
		{"RB", "not", "PART"},
		{"PRP$", "our", "PRON"},
		{"CD", "2007", "NUM"},
		{".", ".", "PUNCT"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Universal(tt.tag, tt.text), "%s/%s", tt.tag, tt.text)
	}
}

func TestAnnotate(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	text := "Sebastian Thrun started working on self-driving cars at Google in 2007. Few people took him seriously."
	doc, err := analyze.New(c).Analyze(context.Background(), text, true)
	require.NoError(t, err)

	require.NoError(t, doc.Validate())
	assert.NotEmpty(t, doc.Tokens)
	assert.NotNil(t, doc.Sentiment)

	runes := []rune(text)
	for _, tok := range doc.Tokens {
		assert.Equal(t, tok.Text, string(runes[tok.Idx:tok.End()]))
		assert.NotEmpty(t, tok.Lemma)
	}
}
