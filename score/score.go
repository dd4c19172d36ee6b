// Package score computes the sentiment of a batch of review rows.
package score

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/revelaction/lemmix/analyze"
	sent "github.com/revelaction/lemmix/sentence"
	"github.com/revelaction/lemmix/stat"
	"github.com/revelaction/lemmix/table"
)

var ErrEmptyReview = errors.New("empty review")

// RowScoringError is the failure of a single row. The row is skipped and the
// batch goes on.
type RowScoringError struct {
	Index int
	Err   error
}

func (e *RowScoringError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

func (e *RowScoringError) Unwrap() error {
	return e.Err
}

// ScoredReviewRow is a review row with its sentiment scores.
type ScoredReviewRow struct {
	table.ReviewRow
	Polarity     float64
	Subjectivity float64
}

func (r ScoredReviewRow) Sentiment() sent.Sentiment {
	return sent.Sentiment{Polarity: r.Polarity, Subjectivity: r.Subjectivity}
}

// TableRows converts scored rows for the table writer.
func TableRows(rows []ScoredReviewRow) []table.ScoredRow {
	out := make([]table.ScoredRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.ScoredRow{
			Index:        r.Index,
			Columns:      r.Columns,
			Polarity:     r.Polarity,
			Subjectivity: r.Subjectivity,
		})
	}
	return out
}

type Result struct {
	// Scored rows, in input order
	Scored []ScoredReviewRow

	Failed []*RowScoringError

	// Stats over the scored rows only
	Stats stat.Stats
}

// Scorer scores at most Cap rows of a table.
type Scorer struct {
	Analyzer *analyze.Analyzer

	// Cap is the maximum number of rows considered, counted from the start
	// of the input. Zero or less scores nothing.
	Cap int

	// Threshold below which a polarity counts as negative
	Threshold float64

	Logger *logrus.Logger

	// OnProgress is called after each considered row, if set.
	OnProgress func(done, total int)
}

func New(an *analyze.Analyzer, cap int, threshold float64) *Scorer {
	return &Scorer{
		Analyzer:  an,
		Cap:       cap,
		Threshold: threshold,
		Logger:    logrus.New(),
	}
}

// Score analyzes the first Cap rows with sentiment. A row that cannot be
// scored is logged, recorded in Result.Failed and skipped.
func (s *Scorer) Score(ctx context.Context, rows []table.ReviewRow) Result {
	logger := s.Logger
	if logger == nil {
		logger = logrus.New()
	}

	total := min(max(s.Cap, 0), len(rows))
	h := stat.NewHandler(s.Threshold)
	res := Result{Scored: []ScoredReviewRow{}, Failed: []*RowScoringError{}}

	for i, row := range rows[:total] {
		scored, err := s.scoreRow(ctx, row)
		if err != nil {
			rerr := &RowScoringError{Index: row.Index, Err: err}
			logger.WithError(err).WithField("row", row.Index).Warn("skipping review row")
			res.Failed = append(res.Failed, rerr)
			h.Fail()
		} else {
			res.Scored = append(res.Scored, scored)
			h.Aggregate(scored.Sentiment())
		}

		if s.OnProgress != nil {
			s.OnProgress(i+1, total)
		}
	}

	res.Stats = h.Get()

	logger.WithFields(logrus.Fields{
		"considered": total,
		"scored":     len(res.Scored),
		"failed":     len(res.Failed),
		"negatives":  res.Stats.Negatives,
	}).Info("reviews scored")

	return res
}

func (s *Scorer) scoreRow(ctx context.Context, row table.ReviewRow) (ScoredReviewRow, error) {
	if row.Err != nil {
		return ScoredReviewRow{}, row.Err
	}

	if row.Review == "" {
		return ScoredReviewRow{}, ErrEmptyReview
	}

	if s.Analyzer == nil {
		return ScoredReviewRow{}, analyze.ErrUnavailable
	}

	doc, err := s.Analyzer.Analyze(ctx, row.Review, true)
	if err != nil {
		return ScoredReviewRow{}, err
	}

	scored := ScoredReviewRow{ReviewRow: row}
	if doc.Sentiment != nil {
		scored.Polarity = doc.Sentiment.Polarity
		scored.Subjectivity = doc.Sentiment.Subjectivity
	}

	return scored, nil
}

// Reviews scores at most cap rows with the default negativity threshold.
func Reviews(ctx context.Context, an *analyze.Analyzer, rows []table.ReviewRow, cap int) ([]ScoredReviewRow, stat.Stats) {
	res := New(an, cap, stat.DefaultNegativityThreshold).Score(ctx, rows)
	return res.Scored, res.Stats
}
