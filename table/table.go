// Package table reads review tables from CSV and writes scored tables as
// spreadsheets.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	ReviewColumn = "Review"
	RatingColumn = "Rating"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrMissingReview = errors.New("missing review text")
	ErrBadRating     = errors.New("rating is not a number")
	ErrShortRow      = errors.New("row has fewer cells than the header")
)

// ReviewRow is one record of the input table.
type ReviewRow struct {
	// Index is the 0 based position of the row, header excluded.
	Index int

	Review string
	Rating float64

	// Columns holds every cell of the row, in header order.
	Columns []string

	// Err is set when the row could not be decoded. Such a row is kept so
	// that it can be reported.
	Err error
}

type Table struct {
	Header []string
	Rows   []ReviewRow
}

// Read reads the CSV file at path.
func Read(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	return ReadFrom(f)
}

// ReadFrom reads a CSV table with a header containing the Review and Rating
// columns. Problems of single rows are stored in ReviewRow.Err.
func ReadFrom(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, fmt.Errorf("%w: empty table", ErrMissingColumn)
		}
		return Table{}, err
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	reviewCol, ratingCol := column(header, ReviewColumn), column(header, RatingColumn)
	if reviewCol < 0 {
		return Table{}, fmt.Errorf("%w: %s", ErrMissingColumn, ReviewColumn)
	}
	if ratingCol < 0 {
		return Table{}, fmt.Errorf("%w: %s", ErrMissingColumn, RatingColumn)
	}

	t := Table{Header: header, Rows: []ReviewRow{}}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				t.Rows = append(t.Rows, ReviewRow{Index: len(t.Rows), Columns: []string{}, Err: err})
				continue
			}
			return Table{}, err
		}

		t.Rows = append(t.Rows, decodeRow(len(t.Rows), rec, reviewCol, ratingCol))
	}

	return t, nil
}

func column(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func decodeRow(index int, rec []string, reviewCol, ratingCol int) ReviewRow {
	row := ReviewRow{Index: index, Columns: rec}

	if reviewCol >= len(rec) || ratingCol >= len(rec) {
		row.Err = ErrShortRow
		return row
	}

	row.Review = strings.TrimSpace(rec[reviewCol])
	if row.Review == "" {
		row.Err = ErrMissingReview
		return row
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(rec[ratingCol]), 64)
	if err != nil {
		row.Err = fmt.Errorf("%w: %q", ErrBadRating, rec[ratingCol])
		return row
	}
	row.Rating = rating

	return row
}
