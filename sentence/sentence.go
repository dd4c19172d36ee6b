package sentence

import (
	"errors"
	"fmt"
	"strings"
)

// Doc is the annotated view of a text. It is built once per analysis and
// never mutated afterwards.
type Doc struct {
	Id int `json:"id"`

	Title string `json:"title,omitempty"`

	Labels []string `json:"labels,omitempty"`

	// Text is the normalized text the token offsets refer to.
	Text string `json:"text"`

	Tokens     []Token  `json:"tokens"`
	Sentences  []Span   `json:"sentences"`
	NounChunks []Span   `json:"noun_chunks"`
	Entities   []Entity `json:"entities"`

	// Sentiment is nil unless the analysis was requested with sentiment.
	Sentiment *Sentiment `json:"sentiment,omitempty"`
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	// Position of the token in the doc, starting at 0.
	Id int `json:"id"`

	// Doc position of the syntactic head. A root token points to itself.
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`

	// A string containing detailed POS data
	Tag string `json:"tag"`

	// the index of the start character (rune) of the token in Doc.Text
	Idx int `json:"idx"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// End returns the rune offset just after the token.
func (t Token) End() int {
	return t.Idx + len([]rune(t.Text))
}

// Span is a half-open range [Start, End) of doc token positions.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Entity is a labeled span, f.ex. PERSON or ORG.
type Entity struct {
	Span
	Label string `json:"label"`
}

// Sentiment holds the document scores. Polarity is in [-1, 1], Subjectivity
// in [0, 1].
type Sentiment struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// SpanTokens returns the tokens covered by s.
func (d Doc) SpanTokens(s Span) []Token {
	return d.Tokens[s.Start:s.End]
}

// SpanText returns the original text covered by s. When the doc carries no
// text (old exports), the text is rebuilt from the tokens.
func (d Doc) SpanText(s Span) string {
	if s.Len() <= 0 {
		return ""
	}

	tokens := d.SpanTokens(s)
	runes := []rune(d.Text)
	start, end := tokens[0].Idx, tokens[len(tokens)-1].End()
	if start >= 0 && end <= len(runes) && start <= end {
		return string(runes[start:end])
	}

	var str strings.Builder
	for i, t := range tokens {
		if i > 0 && t.Idx > tokens[i-1].End() {
			str.WriteString(" ")
		}
		str.WriteString(t.Text)
	}
	return str.String()
}

// Lemmas returns the lemma of every token in document order.
func (d Doc) Lemmas() []string {
	lemmas := make([]string, 0, len(d.Tokens))
	for _, t := range d.Tokens {
		lemmas = append(lemmas, t.Lemma)
	}
	return lemmas
}

// EntityTokens returns the tokens that are part of an entity.
func (d Doc) EntityTokens() []Token {
	tokens := []Token{}
	for _, e := range d.Entities {
		tokens = append(tokens, d.SpanTokens(e.Span)...)
	}
	return tokens
}

// SentenceTokens returns the tokens grouped by sentence.
func (d Doc) SentenceTokens() [][]Token {
	out := make([][]Token, 0, len(d.Sentences))
	for _, s := range d.Sentences {
		out = append(out, d.SpanTokens(s))
	}
	return out
}

var (
	ErrSpanRange     = errors.New("span out of token range")
	ErrSentenceGap   = errors.New("sentences do not partition the tokens")
	ErrHeadRange     = errors.New("token head out of range")
	ErrTokenPosition = errors.New("token id does not match its position")
)

// Validate checks that every span references a valid token range of the doc
// and that the sentences partition the token sequence without gaps or
// overlaps.
func (d Doc) Validate() error {
	n := len(d.Tokens)

	for i, t := range d.Tokens {
		if t.Id != i {
			return fmt.Errorf("%w: token %d has id %d", ErrTokenPosition, i, t.Id)
		}
		if t.Head < 0 || t.Head >= n {
			return fmt.Errorf("%w: token %d head %d", ErrHeadRange, i, t.Head)
		}
	}

	next := 0
	for i, s := range d.Sentences {
		if !validSpan(s, n) || s.Len() == 0 {
			return fmt.Errorf("%w: sentence %d [%d,%d)", ErrSpanRange, i, s.Start, s.End)
		}
		if s.Start != next {
			return fmt.Errorf("%w: sentence %d starts at %d, expected %d", ErrSentenceGap, i, s.Start, next)
		}
		next = s.End
	}
	if next != n {
		return fmt.Errorf("%w: sentences end at %d, doc has %d tokens", ErrSentenceGap, next, n)
	}

	for i, s := range d.NounChunks {
		if !validSpan(s, n) || s.Len() == 0 {
			return fmt.Errorf("%w: noun chunk %d [%d,%d)", ErrSpanRange, i, s.Start, s.End)
		}
	}

	for i, e := range d.Entities {
		if !validSpan(e.Span, n) || e.Len() == 0 {
			return fmt.Errorf("%w: entity %d [%d,%d)", ErrSpanRange, i, e.Start, e.End)
		}
	}

	return nil
}

func validSpan(s Span, n int) bool {
	return s.Start >= 0 && s.End <= n && s.Start <= s.End
}
