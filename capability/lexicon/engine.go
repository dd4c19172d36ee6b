// Package lexicon is an offline, rule based language capability. It
// tokenizes, tags, lemmatizes, parses, chunks, recognizes entities and scores
// sentiment from the word lists embedded in the binary.
package lexicon

import (
	"context"

	"github.com/revelaction/lemmix/analyze"
	sent "github.com/revelaction/lemmix/sentence"
)

const Name = "lexicon"

type Engine struct {
	data *Data
}

func New() (*Engine, error) {
	d, err := LoadData()
	if err != nil {
		return nil, err
	}

	return &Engine{data: d}, nil
}

func (e *Engine) Name() string {
	return Name
}

// Annotate runs the whole pass over text.
func (e *Engine) Annotate(ctx context.Context, text string, withSentiment bool) (*analyze.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := Tokenize(text)
	sentences := SplitSentences(tokens)
	e.Tag(tokens, sentences)

	ann := e.Complete(tokens, sentences)
	ann.Entities = e.Recognize(tokens, sentences)

	if withSentiment {
		s := e.Score(tokens)
		ann.Polarity = &s.Polarity
		ann.Subjectivity = &s.Subjectivity
	}

	return ann, nil
}

// Complete lemmatizes and parses tagged tokens split into sentences and
// returns them with their noun chunks. Entities and sentiment are left to the
// caller.
func (e *Engine) Complete(tokens []sent.Token, sentences []sent.Span) *analyze.Annotation {
	for i := range tokens {
		tokens[i].Lemma = e.Lemmatize(tokens[i].Text, tokens[i].Pos)
	}

	e.Parse(tokens, sentences)

	return &analyze.Annotation{
		Tokens:     tokens,
		Sentences:  sentences,
		NounChunks: e.Chunk(tokens, sentences),
		Entities:   []sent.Entity{},
	}
}
