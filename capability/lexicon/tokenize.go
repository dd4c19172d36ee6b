package lexicon

import (
	"regexp"
	"strings"
	"unicode/utf8"

	sent "github.com/revelaction/lemmix/sentence"
)

// words with inner apostrophes, numbers with separators, or any other single
// non space character.
var reToken = regexp.MustCompile(`[\pL\pM]+(?:['’][\pL\pM]+)*|\pN+(?:[.,:]\pN+)*|\S`)

// clitics split from the end of a word, longest first.
var clitics = []string{"n't", "n’t", "'s", "’s", "'re", "’re", "'ve", "’ve", "'ll", "’ll", "'m", "’m", "'d", "’d"}

var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "st": true, "jr": true, "sr": true,
	"inc": true, "ltd": true, "co": true, "corp": true, "vs": true, "etc": true, "prof": true,
	"u.s": true, "e.g": true, "i.e": true,
}

// Tokenize splits text into tokens. Only Text and Idx (rune offset) are set.
func Tokenize(text string) []sent.Token {
	tokens := []sent.Token{}

	byteOff, runeOff := 0, 0
	for _, loc := range reToken.FindAllStringIndex(text, -1) {
		runeOff += utf8.RuneCountInString(text[byteOff:loc[0]])
		byteOff = loc[0]

		word := text[loc[0]:loc[1]]
		for _, part := range splitClitic(word) {
			tokens = append(tokens, sent.Token{Id: len(tokens), Text: part, Idx: runeOff})
			runeOff += utf8.RuneCountInString(part)
			byteOff += len(part)
		}
	}

	return tokens
}

func splitClitic(word string) []string {
	for _, c := range clitics {
		cut := len(word) - len(c)
		if cut > 0 && strings.EqualFold(word[cut:], c) {
			return []string{word[:cut], word[cut:]}
		}
	}
	return []string{word}
}

func isTerminal(s string) bool {
	return s == "." || s == "!" || s == "?" || s == "…"
}

func isClosing(s string) bool {
	switch s {
	case `"`, "'", ")", "]", "”", "’", "»":
		return true
	}
	return false
}

// SplitSentences partitions the tokens into sentences. A sentence ends after
// a run of terminal punctuation, plus any closing quote or bracket directly
// attached to it.
func SplitSentences(tokens []sent.Token) []sent.Span {
	spans := []sent.Span{}
	start := 0

	for i := 0; i < len(tokens); i++ {
		if !isTerminal(tokens[i].Text) {
			continue
		}

		if tokens[i].Text == "." && isAbbreviation(tokens, i) {
			continue
		}

		end := i + 1
		for end < len(tokens) && isTerminal(tokens[end].Text) {
			end++
		}
		for end < len(tokens) && isClosing(tokens[end].Text) && tokens[end].Idx == tokens[end-1].End() {
			end++
		}

		spans = append(spans, sent.Span{Start: start, End: end})
		start = end
		i = end - 1
	}

	if start < len(tokens) {
		spans = append(spans, sent.Span{Start: start, End: len(tokens)})
	}

	return spans
}

// isAbbreviation reports whether the period at i belongs to a known
// abbreviation directly preceding it.
func isAbbreviation(tokens []sent.Token, i int) bool {
	if i == 0 {
		return false
	}
	prev := tokens[i-1]
	if prev.End() != tokens[i].Idx {
		return false
	}
	if abbreviations[strings.ToLower(prev.Text)] {
		return true
	}
	// single letter initials, f.ex. "J. Smith"
	return utf8.RuneCountInString(prev.Text) == 1 && strings.ToUpper(prev.Text) == prev.Text && isWord(prev.Text)
}
