package lexicon

import (
	"strings"

	sent "github.com/revelaction/lemmix/sentence"
)

// Chunk returns the base noun phrases of the tokens, in document order.
// A chunk is a maximal run of determiners, adjectives, numbers, possessive
// pronouns and nouns ending on a noun. Other pronouns are chunks on their
// own. Chunks never cross a sentence boundary.
func (e *Engine) Chunk(tokens []sent.Token, sentences []sent.Span) []sent.Span {
	chunks := []sent.Span{}

	for _, s := range sentences {
		i := s.Start
		for i < s.End {
			t := tokens[i]
			if t.Pos == "PRON" && !possessives[strings.ToLower(t.Text)] {
				chunks = append(chunks, sent.Span{Start: i, End: i + 1})
				i++
				continue
			}

			if !inChunk(t) {
				i++
				continue
			}

			start, last := i, -1
			for i < s.End && inChunk(tokens[i]) {
				// a determiner after a nominal starts a new phrase
				if last >= start && last == i-1 && tokens[i].Pos == "DET" {
					break
				}
				if tokens[i].Pos == "NOUN" || tokens[i].Pos == "PROPN" {
					last = i
				}
				i++
			}

			if last >= 0 {
				chunks = append(chunks, sent.Span{Start: start, End: last + 1})
				i = last + 1
			}
			i = max(i, start+1)
		}
	}

	return chunks
}

func inChunk(t sent.Token) bool {
	switch t.Pos {
	case "DET", "ADJ", "NUM", "NOUN", "PROPN":
		return true
	case "PRON":
		return possessives[strings.ToLower(t.Text)]
	case "PART":
		// possessive 's inside "Google's cars"
		return t.Tag == "POS"
	}
	return false
}
