package lexicon

import (
	"strconv"
	"strings"

	sent "github.com/revelaction/lemmix/sentence"
)

var orgSuffixes = map[string]bool{
	"inc": true, "corp": true, "ltd": true, "co": true, "company": true, "university": true,
	"group": true, "bank": true, "times": true, "agency": true, "institute": true,
}

var honorifics = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "miss": true, "dr": true, "prof": true, "sir": true,
}

// labels of names that must start with a capital letter
var properLabels = map[string]bool{"PERSON": true, "ORG": true, "GPE": true, "NORP": true}

// Recognize returns the named entities of the tokens, sorted by start.
//
// Known names are looked up in the gazetteer, longest match first. Other runs
// of proper nouns are labelled by shape and context, numbers by their
// neighbours.
func (e *Engine) Recognize(tokens []sent.Token, sentences []sent.Span) []sent.Entity {
	ents := []sent.Entity{}

	for _, s := range sentences {
		i := s.Start
		for i < s.End {
			if n, label := e.lookup(tokens, i, s.End); n > 0 {
				ents = append(ents, sent.Entity{Span: sent.Span{Start: i, End: i + n}, Label: label})
				i += n
				continue
			}

			t := tokens[i]
			switch t.Pos {
			case "PROPN":
				j := i
				for j < s.End && tokens[j].Pos == "PROPN" {
					j++
				}
				if j-i == 1 && honorifics[strings.ToLower(t.Text)] {
					i = j
					continue
				}
				ents = append(ents, sent.Entity{Span: sent.Span{Start: i, End: j}, Label: properLabel(tokens, i, j, s)})
				i = j
				continue

			case "NUM":
				if label := numberLabel(tokens, i, s); label != "" {
					start, end := i, i+1
					if label == "MONEY" && i > s.Start && tokens[i-1].Text == "$" {
						start = i - 1
					}
					if label == "PERCENT" {
						end = i + 2
					}
					ents = append(ents, sent.Entity{Span: sent.Span{Start: start, End: end}, Label: label})
					i = end
					continue
				}
			}
			i++
		}
	}

	return ents
}

// lookup returns the length in tokens and the label of the longest gazetteer
// phrase starting at i, or 0.
func (e *Engine) lookup(tokens []sent.Token, i, end int) (int, string) {
	for n := min(e.data.MaxPhrase, end-i); n > 0; n-- {
		words := make([]string, n)
		for k := 0; k < n; k++ {
			words[k] = strings.ToLower(tokens[i+k].Text)
		}

		label, ok := e.data.Gazetteer[strings.Join(words, " ")]
		if !ok {
			continue
		}
		if properLabels[label] && !isCapitalized(tokens[i].Text) {
			continue
		}
		return n, label
	}
	return 0, ""
}

func properLabel(tokens []sent.Token, start, end int, s sent.Span) string {
	last := strings.TrimSuffix(strings.ToLower(tokens[end-1].Text), ".")
	if orgSuffixes[last] {
		return "ORG"
	}

	if afterHonorific(tokens, start, s) {
		return "PERSON"
	}

	if end-start == 1 {
		text := tokens[start].Text
		if len(text) > 1 && text == strings.ToUpper(text) {
			return "ORG"
		}
		if start > s.Start {
			switch strings.ToLower(tokens[start-1].Text) {
			case "in", "at", "from", "to", "near":
				return "GPE"
			}
		}
	}

	if end-start >= 2 {
		return "PERSON"
	}

	return "ORG"
}

// afterHonorific reports whether the name at start follows a title like
// "Mr." or "Dr".
func afterHonorific(tokens []sent.Token, start int, s sent.Span) bool {
	i := start - 1
	if i >= s.Start && tokens[i].Text == "." {
		i--
	}
	return i >= s.Start && honorifics[strings.ToLower(tokens[i].Text)]
}

func numberLabel(tokens []sent.Token, i int, s sent.Span) string {
	text := tokens[i].Text
	if i > s.Start && tokens[i-1].Text == "$" {
		return "MONEY"
	}
	if i+1 < s.End && tokens[i+1].Text == "%" {
		return "PERCENT"
	}
	if n, err := strconv.Atoi(text); err == nil && len(text) == 4 && n >= 1000 && n < 2100 {
		return "DATE"
	}
	return "CARDINAL"
}
