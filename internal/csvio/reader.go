// Package csvio tokenizes raw tabular text into rows of fields.
//
// The source files come from a third-party form export we do not control,
// so parsing is lenient and best-effort: lazy quoting, variable field
// counts per row, CRLF or LF terminators, and a final row without a
// trailing terminator are all accepted. Malformed rows are skipped, never
// fatal.
package csvio

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ReadAll tokenizes raw text into rows of fields.
//
// Rows consisting entirely of empty fields are discarded; they are blank
// separators in the export, not data. Rows that fail to parse at all are
// skipped.
func ReadAll(text string) [][]string {
	r := csv.NewReader(strings.NewReader(stripBOM(text)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		if allEmpty(row) {
			continue
		}
		for i, cell := range row {
			row[i] = CleanCell(cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// CleanCell removes common export artifacts from a cell value:
// surrounding whitespace, an Excel formula prefix (="..."), and any
// remaining surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// stripBOM drops a leading UTF-8 byte order mark, which some spreadsheet
// exports prepend.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

func allEmpty(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
