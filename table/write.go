package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/revelaction/lemmix/stat"
)

const (
	ReviewsSheet = "Reviews"
	SummarySheet = "Summary"
)

// ScoredRow is an output row: the original cells plus the scores.
type ScoredRow struct {
	Index        int
	Columns      []string
	Polarity     float64
	Subjectivity float64
}

// OutputHeader returns the header of the written table: an index column, the
// original columns and the two score columns.
func OutputHeader(header []string) []string {
	out := make([]string, 0, len(header)+3)
	out = append(out, "")
	out = append(out, header...)
	return append(out, "Polarity", "Subjectivity")
}

// Write writes the scored rows to path, as CSV when the path ends in .csv
// and as an xlsx workbook otherwise. The workbook has a second sheet with
// the stats.
func Write(path string, header []string, rows []ScoredRow, st stat.Stats) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return writeCSV(path, header, rows)
	}
	return writeXLSX(path, header, rows, st)
}

func writeXLSX(path string, header []string, rows []ScoredRow, st stat.Stats) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), ReviewsSheet); err != nil {
		return err
	}

	h := []interface{}{}
	for _, c := range OutputHeader(header) {
		h = append(h, c)
	}
	if err := f.SetSheetRow(ReviewsSheet, "A1", &h); err != nil {
		return err
	}

	for i, r := range rows {
		row := []interface{}{r.Index}
		for _, c := range r.Columns {
			row = append(row, c)
		}
		// short rows keep the score columns aligned
		for j := len(r.Columns); j < len(header); j++ {
			row = append(row, "")
		}
		row = append(row, r.Polarity, r.Subjectivity)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ReviewsSheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}

	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Scored reviews", st.Count},
		{"Failed reviews", st.Failed},
		{"Average subjectivity", st.MeanSubjectivity},
		{"Average polarity", st.MeanPolarity},
		{fmt.Sprintf("Negative reviews (polarity < %g)", st.Threshold), st.Negatives},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeCSV(path string, header []string, rows []ScoredRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(OutputHeader(header)); err != nil {
		f.Close()
		return err
	}

	for _, r := range rows {
		rec := []string{strconv.Itoa(r.Index)}
		rec = append(rec, r.Columns...)
		for j := len(r.Columns); j < len(header); j++ {
			rec = append(rec, "")
		}
		rec = append(rec,
			strconv.FormatFloat(r.Polarity, 'f', -1, 64),
			strconv.FormatFloat(r.Subjectivity, 'f', -1, 64),
		)
		if err := w.Write(rec); err != nil {
			f.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
