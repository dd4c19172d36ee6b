package lexicon

import (
	"strings"
)

const vowels = "aeiou"

// Lemmatize returns the base form of word for the given universal POS.
func (e *Engine) Lemmatize(word, pos string) string {
	switch pos {
	case "PROPN", "PUNCT", "NUM", "SYM":
		return word
	}

	if word == "I" {
		return word
	}

	lower := strings.ReplaceAll(strings.ToLower(word), "’", "'")
	if irr, ok := e.data.Irregular[lower]; ok {
		return irr.Lemma
	}

	switch pos {
	case "NOUN":
		return nounLemma(lower)
	case "VERB":
		return verbLemma(lower)
	}

	return lower
}

func nounLemma(w string) string {
	n := len(w)
	switch {
	case n > 4 && strings.HasSuffix(w, "ies"):
		return w[:n-3] + "y"
	case n > 4 && (strings.HasSuffix(w, "ches") || strings.HasSuffix(w, "shes")):
		return w[:n-2]
	case n > 3 && (strings.HasSuffix(w, "ses") || strings.HasSuffix(w, "xes") || strings.HasSuffix(w, "zes")):
		return w[:n-2]
	case n > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us") && !strings.HasSuffix(w, "is"):
		return w[:n-1]
	}
	return w
}

func verbLemma(w string) string {
	n := len(w)
	switch {
	case n > 4 && strings.HasSuffix(w, "ies"):
		return w[:n-3] + "y"
	case n > 4 && strings.HasSuffix(w, "ied"):
		return w[:n-3] + "y"
	case n > 5 && strings.HasSuffix(w, "ing"):
		return restoreStem(w[:n-3])
	case n > 4 && strings.HasSuffix(w, "ed"):
		return restoreStem(w[:n-2])
	case n > 4 && (strings.HasSuffix(w, "ches") || strings.HasSuffix(w, "shes") || strings.HasSuffix(w, "sses") || strings.HasSuffix(w, "xes")):
		return w[:n-2]
	case n > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return w[:n-1]
	}
	return w
}

// restoreStem undoes consonant doubling ("running" -> "run") and restores a
// dropped final e ("making" -> "make") on a stripped -ing/-ed stem.
func restoreStem(stem string) string {
	n := len(stem)
	if n < 2 {
		return stem
	}

	last, prev := stem[n-1], stem[n-2]
	if last == prev && !strings.ContainsRune(vowels, rune(last)) && !strings.ContainsRune("lsz", rune(last)) {
		return stem[:n-1]
	}

	if last == 'v' || (last == 'c' && prev != 'c') || (last == 'u' && prev == 'g') {
		return stem + "e"
	}

	if n <= 3 && isCVC(stem) {
		return stem + "e"
	}

	return stem
}

func isCVC(s string) bool {
	n := len(s)
	if n < 3 {
		return false
	}
	c1, v, c2 := s[n-3], s[n-2], s[n-1]
	consonant := func(b byte) bool { return !strings.ContainsRune(vowels, rune(b)) }
	return consonant(c1) && !consonant(v) && consonant(c2) && !strings.ContainsRune("wxy", rune(c2))
}
