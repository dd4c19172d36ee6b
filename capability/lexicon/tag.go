package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sent "github.com/revelaction/lemmix/sentence"
)

var adjSuffixes = []string{"ous", "ful", "ive", "able", "ible", "less", "ish", "ic", "al", "ant", "ent"}

var possessives = map[string]bool{
	"my": true, "your": true, "his": true, "her": true, "its": true, "our": true, "their": true,
}

var modals = map[string]bool{
	"will": true, "would": true, "shall": true, "should": true, "can": true, "could": true,
	"may": true, "might": true, "must": true, "ca": true, "wo": true, "'ll": true, "'d": true,
}

var subjectPronouns = map[string]bool{
	"i": true, "you": true, "we": true, "they": true, "he": true, "she": true, "it": true, "who": true,
}

func isWord(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}

func isNumber(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsDigit(r)
}

func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

var openingQuotes = map[string]bool{`"`: true, "“": true, "‘": true, "'": true}

// opensQuote reports whether tokens[i] is a quote attached to the following
// word. The quoted word starts a sentence of its own.
func opensQuote(tokens []sent.Token, i int) bool {
	return i >= 0 && i+1 < len(tokens) && openingQuotes[tokens[i].Text] && tokens[i].End() == tokens[i+1].Idx
}

func isNominal(pos string) bool {
	return pos == "NOUN" || pos == "PROPN" || pos == "PRON"
}

// Tag sets Pos and Tag of every token.
func (e *Engine) Tag(tokens []sent.Token, sentences []sent.Span) {
	for _, s := range sentences {
		for i := s.Start; i < s.End; i++ {
			tokens[i].Pos = e.coarse(tokens, i, i == s.Start || opensQuote(tokens, i-1))
		}

		// context pass: verbs after "to", modals and subject pronouns
		for i := s.Start + 1; i < s.End; i++ {
			if tokens[i].Pos != "NOUN" || tokens[i].Text != strings.ToLower(tokens[i].Text) {
				continue
			}
			prev := strings.ToLower(tokens[i-1].Text)
			switch {
			case prev == "to":
				tokens[i].Pos = "VERB"
				tokens[i-1].Pos = "PART"
			case modals[prev], tokens[i-1].Pos == "PART" && i > s.Start+1 && tokens[i-2].Pos == "AUX":
				tokens[i].Pos = "VERB"
			case subjectPronouns[prev] && tokens[i-1].Pos == "PRON":
				tokens[i].Pos = "VERB"
			}
		}

		for i := s.Start; i < s.End; i++ {
			tokens[i].Tag = e.fine(tokens, i)
		}
	}
}

// coarse returns the universal POS of tokens[i] without context.
func (e *Engine) coarse(tokens []sent.Token, i int, first bool) string {
	text := tokens[i].Text
	lower := strings.ToLower(text)

	switch {
	case isNumber(text):
		return "NUM"
	case !isWord(text) && !isClitic(text):
		if text == "$" || text == "%" || text == "&" {
			return "SYM"
		}
		return "PUNCT"
	}

	lower = strings.ReplaceAll(lower, "’", "'")

	if lower == "'s" {
		if i > 0 && (tokens[i-1].Pos == "NOUN" || tokens[i-1].Pos == "PROPN") {
			return "PART"
		}
		return "AUX"
	}

	if isCapitalized(text) && lower != "i" {
		_, known := e.data.Gazetteer[lower]
		if !first || known || e.nextCapitalized(tokens, i) {
			if _, closed := e.data.Words[lower]; !closed || !first {
				return "PROPN"
			}
		}
	}

	if pos, ok := e.data.Words[lower]; ok {
		return pos
	}
	if irr, ok := e.data.Irregular[lower]; ok {
		return irr.Pos
	}
	if en, ok := e.data.Sentiment[lower]; ok && en.Intensity == 0 {
		return en.Pos
	}

	n := utf8.RuneCountInString(lower)
	switch {
	case strings.HasSuffix(lower, "ing") && n > 5:
		return "VERB"
	case strings.HasSuffix(lower, "ed") && n > 4:
		return "VERB"
	case strings.HasSuffix(lower, "ly") && n > 4:
		return "ADV"
	}
	for _, suf := range adjSuffixes {
		if strings.HasSuffix(lower, suf) && n > len(suf)+3 {
			return "ADJ"
		}
	}

	return "NOUN"
}

// isClitic reports whether s is an apostrophe followed by letters, as split
// from a word by the tokenizer.
func isClitic(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return (r == '\'' || r == '’') && isWord(s[size:])
}

func (e *Engine) nextCapitalized(tokens []sent.Token, i int) bool {
	return i+1 < len(tokens) && isWord(tokens[i+1].Text) && isCapitalized(tokens[i+1].Text)
}

// fine returns a Penn Treebank style tag.
func (e *Engine) fine(tokens []sent.Token, i int) string {
	t := tokens[i]
	lower := strings.ToLower(t.Text)

	switch t.Pos {
	case "NOUN":
		if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
			return "NNS"
		}
		return "NN"
	case "PROPN":
		if strings.HasSuffix(t.Text, "s") && t.Text != strings.ToUpper(t.Text) {
			return "NNPS"
		}
		return "NNP"
	case "VERB":
		switch {
		case strings.HasSuffix(lower, "ing"):
			return "VBG"
		case strings.HasSuffix(lower, "ed"):
			return "VBD"
		case e.irregularPast(lower):
			return "VBD"
		case strings.HasSuffix(lower, "s"):
			return "VBZ"
		}
		return "VB"
	case "AUX":
		if modals[lower] {
			return "MD"
		}
		return "VB"
	case "ADJ":
		switch {
		case strings.HasSuffix(lower, "est"):
			return "JJS"
		case strings.HasSuffix(lower, "er"):
			return "JJR"
		}
		return "JJ"
	case "ADV":
		return "RB"
	case "DET":
		return "DT"
	case "PRON":
		if possessives[lower] {
			return "PRP$"
		}
		return "PRP"
	case "ADP", "SCONJ":
		return "IN"
	case "CCONJ":
		return "CC"
	case "NUM":
		return "CD"
	case "PART":
		if lower == "to" {
			return "TO"
		}
		if lower == "'s" || lower == "’s" {
			return "POS"
		}
		return "RB"
	case "INTJ":
		return "UH"
	case "SYM":
		return t.Text
	}

	if t.Text == `"` || t.Text == "“" || t.Text == "”" {
		return "``"
	}
	return t.Text
}

func (e *Engine) irregularPast(lower string) bool {
	irr, ok := e.data.Irregular[lower]
	return ok && irr.Pos == "VERB" && irr.Lemma != lower && !strings.HasSuffix(lower, "s")
}
