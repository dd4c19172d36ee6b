// Package prose is a language capability backed by github.com/jdkato/prose.
// Tokenization, tagging, sentence segmentation and entity extraction come
// from prose; lemmas, dependencies, noun chunks and sentiment from the
// lexicon engine.
package prose

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"

	"github.com/revelaction/lemmix/analyze"
	"github.com/revelaction/lemmix/capability/lexicon"
	sent "github.com/revelaction/lemmix/sentence"
)

const Name = "prose"

type Capability struct {
	lex *lexicon.Engine
}

func New() (*Capability, error) {
	lex, err := lexicon.New()
	if err != nil {
		return nil, err
	}

	return &Capability{lex: lex}, nil
}

func (c *Capability) Name() string {
	return Name
}

func (c *Capability) Annotate(ctx context.Context, text string, withSentiment bool) (*analyze.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}

	tokens, labels := align(text, doc.Tokens())
	sentences := spans(tokens, sentenceBounds(text, doc.Sentences()))

	ann := c.lex.Complete(tokens, sentences)
	ann.Entities = entities(labels, sentences)

	if withSentiment {
		s := c.lex.Score(tokens)
		ann.Polarity = &s.Polarity
		ann.Subjectivity = &s.Subjectivity
	}

	return ann, nil
}

// align converts prose tokens into tokens with rune offsets into text, and
// returns their IOB entity labels. A token that cannot be found in the text
// keeps the offset of the previous token end.
func align(text string, ptoks []prose.Token) ([]sent.Token, []string) {
	tokens := make([]sent.Token, 0, len(ptoks))
	labels := make([]string, 0, len(ptoks))

	byteOff, runeOff := 0, 0
	for _, pt := range ptoks {
		if pt.Text == "" {
			continue
		}

		idx := runeOff
		if pos := strings.Index(text[byteOff:], pt.Text); pos >= 0 {
			idx = runeOff + utf8.RuneCountInString(text[byteOff:byteOff+pos])
			byteOff += pos + len(pt.Text)
			runeOff = idx + utf8.RuneCountInString(pt.Text)
		}

		tokens = append(tokens, sent.Token{
			Id:   len(tokens),
			Text: pt.Text,
			Idx:  idx,
			Tag:  pt.Tag,
			Pos:  Universal(pt.Tag, pt.Text),
		})
		labels = append(labels, pt.Label)
	}

	return tokens, labels
}

// sentenceBounds returns the rune offset where each sentence ends.
func sentenceBounds(text string, ss []prose.Sentence) []int {
	ends := []int{}

	byteOff, runeOff := 0, 0
	for _, s := range ss {
		st := strings.TrimSpace(s.Text)
		if st == "" {
			continue
		}
		pos := strings.Index(text[byteOff:], st)
		if pos < 0 {
			continue
		}
		runeOff += utf8.RuneCountInString(text[byteOff : byteOff+pos+len(st)])
		byteOff += pos + len(st)
		ends = append(ends, runeOff)
	}

	return ends
}

// spans partitions tokens into sentences using the sentence end offsets. A
// token belongs to the first sentence ending after its start.
func spans(tokens []sent.Token, ends []int) []sent.Span {
	out := []sent.Span{}

	start, e := 0, 0
	for i, t := range tokens {
		for e < len(ends) && t.Idx >= ends[e] {
			if i > start {
				out = append(out, sent.Span{Start: start, End: i})
				start = i
			}
			e++
		}
	}

	if start < len(tokens) {
		out = append(out, sent.Span{Start: start, End: len(tokens)})
	}

	return out
}

// entities decodes IOB labels ("B-PERSON", "I-PERSON", "O") into entity
// spans. Entities never cross a sentence boundary.
func entities(labels []string, sentences []sent.Span) []sent.Entity {
	ents := []sent.Entity{}

	for _, s := range sentences {
		cur := -1
		for i := s.Start; i <= s.End; i++ {
			prefix, label := "O", ""
			if i < s.End {
				prefix, label, _ = strings.Cut(labels[i], "-")
			}

			if cur >= 0 && (prefix != "I" || label != ents[cur].Label) {
				ents[cur].End = i
				cur = -1
			}

			if prefix == "B" || (prefix == "I" && cur < 0 && label != "") {
				ents = append(ents, sent.Entity{Span: sent.Span{Start: i, End: i + 1}, Label: label})
				cur = len(ents) - 1
			}
		}
	}

	return ents
}

// Universal maps a Penn Treebank tag to a universal POS tag.
func Universal(tag, text string) string {
	switch tag {
	case "NN", "NNS":
		return "NOUN"
	case "NNP", "NNPS":
		return "PROPN"
	case "VB", "VBD", "VBG", "VBN", "VBP", "VBZ":
		switch strings.ToLower(text) {
		case "is", "am", "are", "was", "were", "be", "been", "being", "'s", "'re", "'m",
			"has", "have", "had", "do", "does", "did":
			return "AUX"
		}
		return "VERB"
	case "MD":
		return "AUX"
	case "JJ", "JJR", "JJS":
		return "ADJ"
	case "RB", "RBR", "RBS", "WRB":
		if strings.EqualFold(text, "not") || strings.EqualFold(text, "n't") {
			return "PART"
		}
		return "ADV"
	case "PRP", "PRP$", "WP", "WP$", "EX":
		return "PRON"
	case "DT", "PDT", "WDT":
		return "DET"
	case "IN":
		return "ADP"
	case "CC":
		return "CCONJ"
	case "CD":
		return "NUM"
	case "TO", "POS", "RP":
		return "PART"
	case "UH":
		return "INTJ"
	case "SYM", "$", "#":
		return "SYM"
	case "FW", "LS":
		return "X"
	}
	return "PUNCT"
}
