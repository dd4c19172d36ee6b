package lexicon

import (
	"strings"

	sent "github.com/revelaction/lemmix/sentence"
)

var modifierDeps = map[string]string{"DET": "det", "ADJ": "amod", "NUM": "nummod"}

// Parse attaches every token to a head inside its sentence and sets the
// dependency label. The root of a sentence points to itself with label ROOT.
//
// The attachment is rule based: the first verb is the root, nominals before
// it are subjects, nominals after it objects, modifiers attach to the next
// nominal and prepositions to the closest preceding content word.
func (e *Engine) Parse(tokens []sent.Token, sentences []sent.Span) {
	for _, s := range sentences {
		parseSentence(tokens, s)
	}
}

func parseSentence(tokens []sent.Token, s sent.Span) {
	root := findRoot(tokens, s)
	tokens[root].Head = root
	tokens[root].Dep = "ROOT"

	hasSubj, hasObj := false, false

	for i := s.Start; i < s.End; i++ {
		if i == root {
			continue
		}

		t := &tokens[i]
		lower := strings.ToLower(t.Text)
		t.Head, t.Dep = root, "dep"

		switch t.Pos {
		case "PUNCT", "SYM":
			t.Dep = "punct"

		case "DET", "ADJ", "NUM":
			if n := nextNominal(tokens, i, s); n >= 0 {
				t.Head, t.Dep = n, modifierDeps[t.Pos]
			} else if t.Pos == "NUM" && i > s.Start && tokens[i-1].Pos == "ADP" {
				t.Head, t.Dep = i-1, "pobj"
			} else if t.Pos == "ADJ" {
				t.Dep = "acomp"
			} else if t.Pos == "NUM" {
				t.Dep = "npadvmod"
			}

		case "AUX":
			if v := nextPos(tokens, i, s, "VERB"); v >= 0 {
				t.Head, t.Dep = v, "aux"
			} else {
				t.Dep = "aux"
			}

		case "PART":
			switch lower {
			case "not", "n't", "n’t", "never":
				t.Dep = "neg"
				if v := nextPos(tokens, i, s, "VERB"); v >= 0 {
					t.Head = v
				}
			case "to":
				t.Dep = "aux"
				if v := nextPos(tokens, i, s, "VERB"); v >= 0 {
					t.Head = v
				}
			default:
				t.Dep = "case"
				if i > s.Start {
					t.Head = i - 1
				}
			}

		case "ADP":
			t.Dep = "prep"
			if h := prevContent(tokens, i, s); h >= 0 {
				t.Head = h
			}

		case "ADV":
			t.Dep = "advmod"

		case "CCONJ":
			t.Dep = "cc"

		case "SCONJ":
			t.Dep = "mark"
			if v := nextPos(tokens, i, s, "VERB"); v >= 0 && v != i {
				t.Head = v
			}

		case "INTJ":
			t.Dep = "intj"

		case "VERB":
			switch {
			case i > s.Start && strings.EqualFold(tokens[i-1].Text, "to"):
				t.Dep = "xcomp"
			case hasMark(tokens, i, s):
				t.Dep = "advcl"
			default:
				t.Dep = "conj"
			}

		case "NOUN", "PROPN", "PRON":
			if possessives[lower] {
				if n := nextNominal(tokens, i, s); n >= 0 {
					t.Head, t.Dep = n, "poss"
					continue
				}
			}

			// compounds: "car companies", "Sebastian Thrun"
			if i+1 < s.End && (tokens[i+1].Pos == "NOUN" || tokens[i+1].Pos == "PROPN") && t.Pos != "PRON" {
				t.Head, t.Dep = i+1, "compound"
				continue
			}

			if a := governingAdp(tokens, i, s); a >= 0 {
				t.Head, t.Dep = a, "pobj"
				continue
			}

			switch {
			case i < root && !hasSubj:
				t.Dep = "nsubj"
				hasSubj = true
			case i > root && !hasObj:
				t.Dep = "dobj"
				hasObj = true
			case i > root:
				t.Dep = "conj"
			default:
				t.Dep = "npadvmod"
			}
		}
	}
}

func findRoot(tokens []sent.Token, s sent.Span) int {
	for _, pos := range []string{"VERB", "AUX", "NOUN", "PROPN", "PRON"} {
		for i := s.Start; i < s.End; i++ {
			if tokens[i].Pos != pos {
				continue
			}
			// a verb introduced by a subordinating conjunction is not the main clause
			if pos == "VERB" && hasMark(tokens, i, s) && laterVerb(tokens, i, s) {
				continue
			}
			return i
		}
	}
	return s.Start
}

func laterVerb(tokens []sent.Token, i int, s sent.Span) bool {
	for j := i + 1; j < s.End; j++ {
		if tokens[j].Pos == "VERB" {
			return true
		}
	}
	return false
}

// hasMark reports whether the clause of the verb at i is introduced by a
// subordinating conjunction with no other verb in between.
func hasMark(tokens []sent.Token, i int, s sent.Span) bool {
	for j := i - 1; j >= s.Start; j-- {
		switch tokens[j].Pos {
		case "SCONJ":
			return true
		case "VERB", "PUNCT":
			return false
		}
	}
	return false
}

// nextNominal returns the first NOUN or PROPN after i, only crossing
// modifiers, or -1.
func nextNominal(tokens []sent.Token, i int, s sent.Span) int {
	for j := i + 1; j < s.End; j++ {
		switch tokens[j].Pos {
		case "NOUN", "PROPN":
			// the last noun of a compound run is the head
			for j+1 < s.End && (tokens[j+1].Pos == "NOUN" || tokens[j+1].Pos == "PROPN") {
				j++
			}
			return j
		case "DET", "ADJ", "NUM", "ADV":
			continue
		default:
			return -1
		}
	}
	return -1
}

func nextPos(tokens []sent.Token, i int, s sent.Span, pos string) int {
	for j := i + 1; j < s.End; j++ {
		if tokens[j].Pos == pos {
			return j
		}
		if tokens[j].Pos == "PUNCT" {
			return -1
		}
	}
	return -1
}

// prevContent returns the closest preceding verb or nominal, or -1.
func prevContent(tokens []sent.Token, i int, s sent.Span) int {
	for j := i - 1; j >= s.Start; j-- {
		switch tokens[j].Pos {
		case "VERB", "NOUN", "PROPN", "PRON", "ADJ":
			return j
		case "PUNCT":
			return -1
		}
	}
	return -1
}

// governingAdp returns the preposition governing the nominal at i, skipping
// its modifiers, or -1.
func governingAdp(tokens []sent.Token, i int, s sent.Span) int {
	for j := i - 1; j >= s.Start; j-- {
		switch tokens[j].Pos {
		case "ADP":
			return j
		case "DET", "ADJ", "NUM":
			continue
		case "NOUN", "PROPN":
			if tokens[j].Dep == "compound" {
				continue
			}
			return -1
		case "PRON":
			if possessives[strings.ToLower(tokens[j].Text)] {
				continue
			}
			return -1
		default:
			return -1
		}
	}
	return -1
}
