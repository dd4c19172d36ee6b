package render

import (
	"strings"
	"unicode"

	sent "github.com/revelaction/lemmix/sentence"
)

// LemmaText joins the lemmas of every token of doc with a single space.
// Whitespace inside a lemma is replaced by an underscore, and an empty
// lemma by the token text, so that the result splits back into one field
// per token.
func LemmaText(doc sent.Doc) string {
	lemmas := make([]string, 0, len(doc.Tokens))
	for _, t := range doc.Tokens {
		lemmas = append(lemmas, lemmaField(t))
	}
	return strings.Join(lemmas, " ")
}

func lemmaField(t sent.Token) string {
	l := strings.TrimSpace(t.Lemma)
	if l == "" {
		l = strings.TrimSpace(t.Text)
	}
	if l == "" {
		return "_"
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, l)
}
