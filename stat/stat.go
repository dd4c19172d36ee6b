// Package stat aggregates sentiment scores of review rows and token counts
// of docs.
package stat

import (
	sent "github.com/revelaction/lemmix/sentence"
)

const DefaultNegativityThreshold = -0.3

// Handler accumulates the scores of a batch.
type Handler struct {
	stats Stats

	sumPolarity     float64
	sumSubjectivity float64
}

type Stats struct {
	// Number of scored rows
	Count int

	MeanSubjectivity float64
	MeanPolarity     float64

	// Rows with polarity strictly below Threshold
	Negatives int
	Threshold float64

	// Rows that could not be scored
	Failed int
}

func NewHandler(threshold float64) *Handler {
	return &Handler{
		stats: Stats{Threshold: threshold},
	}
}

func (h *Handler) Get() Stats {
	return h.stats
}

func (h *Handler) Aggregate(s sent.Sentiment) {
	h.stats.Count++
	h.sumPolarity += s.Polarity
	h.sumSubjectivity += s.Subjectivity

	if s.Polarity < h.stats.Threshold {
		h.stats.Negatives++
	}

	h.stats.MeanPolarity = h.sumPolarity / float64(h.stats.Count)
	h.stats.MeanSubjectivity = h.sumSubjectivity / float64(h.stats.Count)
}

func (h *Handler) Fail() {
	h.stats.Failed++
}

type DocStats struct {
	NumSentences          int
	NumTokens             int
	NumEntities           int
	NumNounChunks         int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int
}

func Doc(doc sent.Doc) DocStats {
	st := DocStats{
		NumSentences:         len(doc.Sentences),
		NumTokens:            len(doc.Tokens),
		NumEntities:          len(doc.Entities),
		NumNounChunks:        len(doc.NounChunks),
		TokensPerSentenceDis: map[int]int{},
	}

	for _, s := range doc.Sentences {
		st.TokensPerSentenceDis[s.Len()]++
	}

	if st.NumSentences > 0 {
		st.TokensPerSentenceMean = st.NumTokens / st.NumSentences
	}

	return st
}
