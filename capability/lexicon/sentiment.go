package lexicon

import (
	"strings"

	sent "github.com/revelaction/lemmix/sentence"
)

var negations = map[string]bool{"not": true, "n't": true, "never": true, "no": true}

// negation multiplies the polarity of a negated word
const negation = -0.5

// Score returns the mean polarity and subjectivity of the sentiment bearing
// words of the tokens. An intensifier ("very") multiplies the scores of the
// following word, a negation flips and halves its polarity. Punctuation ends
// the reach of both. Text without sentiment bearing words scores zero.
func (e *Engine) Score(tokens []sent.Token) sent.Sentiment {
	var polarity, subjectivity float64
	var assessed int

	intensity, negated := 1.0, false
	reset := func() { intensity, negated = 1.0, false }

	for i, t := range tokens {
		word := normalize(t.Text)

		if t.Pos == "PUNCT" {
			reset()
			continue
		}

		if negations[word] {
			negated = true
			continue
		}

		en, ok := e.data.Sentiment[word]
		if !ok {
			continue
		}

		if en.Intensity != 0 && i+1 < len(tokens) && e.assessable(tokens[i+1]) {
			intensity *= en.Intensity
			continue
		}

		p := en.Polarity * intensity
		if negated {
			p *= negation
		}
		polarity += clamp(p, -1, 1)
		subjectivity += clamp(en.Subjectivity*intensity, 0, 1)
		assessed++
		reset()
	}

	if assessed == 0 {
		return sent.Sentiment{}
	}

	return sent.Sentiment{
		Polarity:     clamp(polarity/float64(assessed), -1, 1),
		Subjectivity: clamp(subjectivity/float64(assessed), 0, 1),
	}
}

func (e *Engine) assessable(t sent.Token) bool {
	_, ok := e.data.Sentiment[normalize(t.Text)]
	return ok
}

// normalize lowercases s and replaces typographic apostrophes.
func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "’", "'")
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
