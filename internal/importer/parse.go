package importer

import (
	"errors"

	"github.com/southswell/backoffice/internal/csvio"
)

// ErrEmptyFile is returned when the uploaded text yields no rows at all.
var ErrEmptyFile = errors.New("import: file contains no rows")

// Parse runs the forward pipeline over the raw decoded text of an
// uploaded export: tokenize, detect the schema variant from the header,
// then classify and extract every data row against the snapshot.
//
// Rows whose first cell is not timestamp-shaped are formatting noise and
// are dropped without being counted or reported. Parse performs no I/O
// and never mutates the snapshot.
func Parse(text string, snap Snapshot) (*ParseResult, error) {
	rows := csvio.ReadAll(text)
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	cols := Detect(rows[0])

	result := &ParseResult{Variant: cols.Variant}
	for _, row := range rows {
		if !LooksLikeStamp(cellAt(row, cols.Timestamp)) {
			continue
		}
		result.Rows = append(result.Rows, classifyRow(row, cols, snap))
		result.DataRows++
	}
	return result, nil
}

// Counts tallies rows per status, for operator-facing summaries.
func (r *ParseResult) Counts() (skipped, fresh, conflicting int) {
	for _, row := range r.Rows {
		switch row.Status {
		case StatusSkip:
			skipped++
		case StatusConflict:
			conflicting++
		default:
			fresh++
		}
	}
	return skipped, fresh, conflicting
}
