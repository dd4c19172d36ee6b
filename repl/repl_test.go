package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/c-bata/go-prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/lemmix/analyze"
	"github.com/revelaction/lemmix/render"
	sent "github.com/revelaction/lemmix/sentence"
)

// wordCapability annotates every whitespace separated word as a NOUN.
type wordCapability struct{}

func (wordCapability) Name() string { return "words" }

func (wordCapability) Annotate(_ context.Context, text string, withSentiment bool) (*analyze.Annotation, error) {
	ann := &analyze.Annotation{}
	runeOff := 0
	for _, f := range strings.SplitAfter(text, " ") {
		w := strings.TrimSpace(f)
		if w != "" {
			id := len(ann.Tokens)
			ann.Tokens = append(ann.Tokens, sent.Token{Text: w, Idx: runeOff, Head: id, Pos: "NOUN", Dep: "ROOT", Lemma: strings.ToLower(w)})
		}
		runeOff += utf8.RuneCountInString(f)
	}
	if withSentiment {
		p, s := 0.5, 0.6
		ann.Polarity, ann.Subjectivity = &p, &s
	}
	return ann, nil
}

type memRepo struct {
	docs []sent.Doc
}

func (m *memRepo) List(string) ([]sent.Doc, error) { return m.docs, nil }

func (m *memRepo) Read(id int) (sent.Doc, error) { return m.docs[id], nil }

func (m *memRepo) Labels(string) ([]string, error) { return nil, nil }

func newHandler(t *testing.T) (*Handler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r := render.NewRenderer()
	r.Out = &buf

	repo := &memRepo{docs: []sent.Doc{{
		Id:        0,
		Title:     "stored.json",
		Text:      "stored text",
		Tokens:    []sent.Token{{Id: 0, Text: "stored", Idx: 0}, {Id: 1, Text: "text", Idx: 7}},
		Sentences: []sent.Span{{Start: 0, End: 2}},
	}}}

	return NewHandler(analyze.New(wordCapability{}), repo, r), &buf
}

func TestEvalText(t *testing.T) {
	h, buf := newHandler(t)

	require.NoError(t, h.Eval(context.Background(), "Nice  Hotel"))

	assert.Equal(t, "Nice  Hotel\n🎭 polarity 0.500, subjectivity 0.600\n", buf.String())
	assert.True(t, h.lemmas["nice"])
	assert.True(t, h.lemmas["hotel"])
}

func TestEvalEmpty(t *testing.T) {
	h, buf := newHandler(t)

	require.NoError(t, h.Eval(context.Background(), "   "))
	assert.Empty(t, buf.String())
}

func TestEvalCommands(t *testing.T) {
	h, buf := newHandler(t)
	ctx := context.Background()

	require.NoError(t, h.Eval(ctx, ":docs"))
	assert.Equal(t, "📖 0 stored.json\n", buf.String())

	buf.Reset()
	require.NoError(t, h.Eval(ctx, ":doc 0"))
	assert.Equal(t, "stored text\n", buf.String())

	buf.Reset()
	require.NoError(t, h.Eval(ctx, ":format lemma"))
	assert.Equal(t, "lemma", h.Renderer.Format)

	assert.Error(t, h.Eval(ctx, ":doc x"))
	assert.Error(t, h.Eval(ctx, ":doc"))
	assert.Error(t, h.Eval(ctx, ":format nope"))
	assert.Error(t, h.Eval(ctx, ":unknown"))
}

func TestEvalWithoutRepo(t *testing.T) {
	h, _ := newHandler(t)
	h.DocRepo = nil

	assert.Error(t, h.Eval(context.Background(), ":docs"))
}

func TestEvalAnalysisError(t *testing.T) {
	h, _ := newHandler(t)
	h.Analyzer = analyze.New(nil)

	err := h.Eval(context.Background(), "text")
	assert.ErrorIs(t, err, analyze.ErrUnavailable)
}

func TestCompleteLemma(t *testing.T) {
	h, _ := newHandler(t)
	require.NoError(t, h.Eval(context.Background(), "hotel house hot"))

	got := h.completeLemma("ho")
	texts := []string{}
	for _, s := range got {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"hot", "hotel", "house"}, texts)

	assert.Empty(t, h.completeLemma("h"))
	assert.Len(t, h.completeLemma("hot"), 1)
}

func TestCompleterCommands(t *testing.T) {
	h, _ := newHandler(t)

	b := prompt.NewBuffer()
	b.InsertText(":do", false, true)

	got := h.completer(*b.Document())
	require.Len(t, got, 2)
	assert.Equal(t, ":docs", got[0].Text)
	assert.Equal(t, ":doc", got[1].Text)
}
