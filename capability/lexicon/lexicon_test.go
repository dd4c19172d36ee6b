package lexicon

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/lemmix/analyze"
	sent "github.com/revelaction/lemmix/sentence"
)

const thrun = "Sebastian Thrun started working on self-driving cars at Google in 2007."

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New()
	require.NoError(t, err)
	return e
}

func texts(tokens []sent.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("I don't like it.")

	want := []string{"I", "do", "n't", "like", "it", "."}
	if diff := cmp.Diff(want, texts(tokens)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	idx := []int{}
	for _, tok := range tokens {
		idx = append(idx, tok.Idx)
	}
	assert.Equal(t, []int{0, 2, 4, 8, 13, 15}, idx)
}

func TestTokenizeRuneOffsets(t *testing.T) {
	text := "Café “naïve” ok"
	tokens := Tokenize(text)
	runes := []rune(text)

	for _, tok := range tokens {
		got := string(runes[tok.Idx:tok.End()])
		assert.Equal(t, tok.Text, got)
	}
}

func TestSplitSentences(t *testing.T) {
	tokens := Tokenize("Mr. Smith left. He came back! Did he?")
	spans := SplitSentences(tokens)

	want := []sent.Span{{Start: 0, End: 5}, {Start: 5, End: 9}, {Start: 9, End: 12}}
	assert.Equal(t, want, spans)
}

func TestSplitSentencesNoTerminal(t *testing.T) {
	tokens := Tokenize("no punctuation here")
	assert.Equal(t, []sent.Span{{Start: 0, End: 3}}, SplitSentences(tokens))
}

func TestLemmatize(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		word string
		pos  string
		want string
	}{
		{"cars", "NOUN", "car"},
		{"companies", "NOUN", "company"},
		{"glasses", "NOUN", "glass"},
		{"running", "VERB", "run"},
		{"making", "VERB", "make"},
		{"stopped", "VERB", "stop"},
		{"driving", "VERB", "drive"},
		{"talking", "VERB", "talk"},
		{"was", "AUX", "be"},
		{"Google", "PROPN", "Google"},
		{"I", "PRON", "I"},
		{"The", "DET", "the"},
	}

	for _, tt := range tests {
		if got := e.Lemmatize(tt.word, tt.pos); got != tt.want {
			t.Errorf("Lemmatize(%q, %q) = %q, want %q", tt.word, tt.pos, got, tt.want)
		}
	}
}

func TestAnnotateValidDoc(t *testing.T) {
	inputs := []string{
		thrun,
		"The friendly staff cleaned our spacious room. We would stay again!",
		"“Quoted.” And then some more words without an end",
		"...",
		"Dr. J. Smith paid $20 for 50% of it in 1999?!",
	}

	an := analyze.New(newEngine(t))

	for _, text := range inputs {
		doc, err := an.Analyze(context.Background(), text, true)
		require.NoError(t, err, text)
		require.NoError(t, doc.Validate(), text)

		words := len(strings.Fields(text))
		assert.GreaterOrEqual(t, len(doc.Tokens), words, text)

		for _, tok := range doc.Tokens {
			assert.NotEmpty(t, tok.Pos, "%s: token %q", text, tok.Text)
			assert.NotEmpty(t, tok.Dep, "%s: token %q", text, tok.Text)
			assert.NotEmpty(t, tok.Lemma, "%s: token %q", text, tok.Text)
		}

		roots := 0
		for _, tok := range doc.Tokens {
			if tok.Dep == "ROOT" {
				roots++
				assert.Equal(t, tok.Id, tok.Head)
			}
		}
		assert.Equal(t, len(doc.Sentences), roots, text)
	}
}

func TestRecognize(t *testing.T) {
	an := analyze.New(newEngine(t))
	doc, err := an.Analyze(context.Background(), thrun, false)
	require.NoError(t, err)

	got := map[string]string{}
	for _, ent := range doc.Entities {
		got[doc.SpanText(ent.Span)] = ent.Label
	}

	want := map[string]string{
		"Sebastian Thrun": "PERSON",
		"Google":          "ORG",
		"2007":            "DATE",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("entities mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizeNamesInContext(t *testing.T) {
	an := analyze.New(newEngine(t))

	tests := []struct {
		text string
		want map[string]string
	}{
		{"Mr. Smith left.", map[string]string{"Smith": "PERSON"}},
		{"We met Dr. Jones yesterday.", map[string]string{"Jones": "PERSON", "yesterday": "DATE"}},
		{"“Hello,” she said.", map[string]string{}},
		{"She said “Hello” twice.", map[string]string{}},
	}

	for _, tt := range tests {
		doc, err := an.Analyze(context.Background(), tt.text, false)
		require.NoError(t, err)

		got := map[string]string{}
		for _, ent := range doc.Entities {
			got[doc.SpanText(ent.Span)] = ent.Label
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q entities mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}

func TestAnnotateDeterminerAtSentenceStart(t *testing.T) {
	an := analyze.New(newEngine(t))

	tests := []struct {
		text  string
		chunk string
	}{
		{"The cat sat.", "The cat"},
		{"A dog barked.", "A dog"},
		{"Cats sleep. The cat sat.", "The cat"},
	}

	for _, tt := range tests {
		done := make(chan sent.Doc, 1)
		go func() {
			doc, err := an.Analyze(context.Background(), tt.text, false)
			assert.NoError(t, err)
			done <- doc
		}()

		select {
		case doc := <-done:
			require.NoError(t, doc.Validate(), tt.text)

			chunks := []string{}
			for _, c := range doc.NounChunks {
				chunks = append(chunks, doc.SpanText(c))
			}
			assert.Contains(t, chunks, tt.chunk, tt.text)
		case <-time.After(5 * time.Second):
			t.Fatalf("Analyze(%q) did not return", tt.text)
		}
	}
}

func TestChunkAndParse(t *testing.T) {
	e := newEngine(t)
	ann, err := e.Annotate(context.Background(), "The friendly staff cleaned our spacious room.", false)
	require.NoError(t, err)

	chunks := []string{}
	for _, c := range ann.NounChunks {
		chunks = append(chunks, strings.Join(texts(ann.Tokens[c.Start:c.End]), " "))
	}
	assert.Equal(t, []string{"The friendly staff", "our spacious room"}, chunks)

	deps := map[string]string{}
	for _, tok := range ann.Tokens {
		deps[tok.Text] = tok.Dep
	}
	assert.Equal(t, "ROOT", deps["cleaned"])
	assert.Equal(t, "nsubj", deps["staff"])
	assert.Equal(t, "dobj", deps["room"])
	assert.Equal(t, "poss", deps["our"])
	assert.Equal(t, "det", deps["The"])
	assert.Equal(t, "amod", deps["friendly"])
	assert.Equal(t, "punct", deps["."])
}

func TestScore(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		text string
		sign int
	}{
		{"The hotel was very good.", 1},
		{"The room was not clean.", -1},
		{"The room has a window.", 0},
		{"Terrible service, but the breakfast was excellent and the beds comfortable.", 1},
	}

	for _, tt := range tests {
		ann, err := e.Annotate(context.Background(), tt.text, true)
		require.NoError(t, err)
		require.NotNil(t, ann.Polarity)
		require.NotNil(t, ann.Subjectivity)

		p := *ann.Polarity
		switch tt.sign {
		case 1:
			assert.Greater(t, p, 0.0, tt.text)
		case -1:
			assert.Less(t, p, 0.0, tt.text)
		default:
			assert.Zero(t, p, tt.text)
			assert.Zero(t, *ann.Subjectivity, tt.text)
		}
		assert.GreaterOrEqual(t, *ann.Subjectivity, 0.0)
		assert.LessOrEqual(t, *ann.Subjectivity, 1.0)
	}
}

func TestIntensifierAndNegation(t *testing.T) {
	e := newEngine(t)

	score := func(text string) float64 {
		return e.Score(Tokenize(text)).Polarity
	}

	assert.Greater(t, score("very good"), score("good"))
	assert.InDelta(t, -0.35, score("not good"), 1e-9)
}

func TestIntensifierBeforeCurlyApostrophe(t *testing.T) {
	e := newEngine(t)
	e.data.Sentiment["can't-miss"] = entry{Polarity: 0.5, Subjectivity: 0.5, Pos: "ADJ"}

	tokens := func(words ...string) []sent.Token {
		out := make([]sent.Token, len(words))
		for i, w := range words {
			out[i] = sent.Token{Text: w, Pos: "ADJ"}
		}
		return out
	}

	plain := e.Score(tokens("can’t-miss")).Polarity
	assert.InDelta(t, 0.5, plain, 1e-9)
	assert.Greater(t, e.Score(tokens("very", "can’t-miss")).Polarity, plain)
	assert.Equal(t, e.Score(tokens("very", "can't-miss")), e.Score(tokens("very", "can’t-miss")))
}

func TestAnnotateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine(t).Annotate(ctx, "text", false)
	assert.ErrorIs(t, err, context.Canceled)
}
