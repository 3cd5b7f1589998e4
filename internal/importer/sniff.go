package importer

// sniff.go holds the small pure heuristics the pipeline uses to read an
// uncontrolled export: cells routinely embed free text next to the value
// ("3, Du 7 au 10"), dates appear mid-sentence, and booleans are
// affirmative phrases in the form's language. Each heuristic defaults to
// absent/zero/false instead of raising; classification never blocks on a
// bad cell.

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

var (
	stampRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}:\d{2}$`)
	intRe   = regexp.MustCompile(`\d+`)
	dateRe  = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})`)
)

// affirmativeTokens is the small fixed vocabulary that marks a transfer
// cell as a yes, one set of tokens per form-language edition.
var affirmativeTokens = []string{
	"oui", "besoin", // fr
	"yes", "need", // en
	"sí", "si", "necesito", "necesita", // es
}

// keyFolder performs Unicode case folding, the comparison form for
// natural keys and identity fields.
var keyFolder = cases.Fold()

// LooksLikeStamp reports whether a cell matches the DD/MM/YYYY HH:MM:SS
// shape the form system writes into the first column of every data row.
// Rows whose first cell does not match are formatting noise.
func LooksLikeStamp(cell string) bool {
	return stampRe.MatchString(strings.TrimSpace(cell))
}

// FirstInt extracts the first integer embedded in a cell, 0 when none is
// found. Exports routinely wrap the number in free text.
func FirstInt(cell string) int {
	m := intRe.FindString(cell)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// DateIn finds a DD/MM/YYYY date embedded anywhere in a cell and returns
// it in canonical YYYY-MM-DD form, or "" when no valid date is present.
// Some exports carry a two-digit-year defect (year 26 meaning 2026);
// years below 100 are shifted into the 2000s.
func DateIn(cell string) string {
	m := dateRe.FindStringSubmatch(cell)
	if m == nil {
		return ""
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components; reject those.
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return ""
	}
	return t.Format("2006-01-02")
}

// AddNights returns date + nights in canonical form, or "" when the date
// is unset or not canonical.
func AddNights(date string, nights int) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, nights).Format("2006-01-02")
}

// Affirmative reports whether a free-text cell reads as a yes in any of
// the form languages. The transfer question is answered in prose
// ("Oui, besoin de la navette"), so this is a vocabulary check, not a
// boolean parse.
func Affirmative(cell string) bool {
	folded := " " + foldWords(cell) + " "
	for _, token := range affirmativeTokens {
		if strings.Contains(folded, " "+keyFolder.String(token)+" ") {
			return true
		}
	}
	return false
}

// FoldKey normalizes a value for natural-key and identity comparison:
// trimmed and Unicode case-folded. Empty in, empty out.
func FoldKey(s string) string {
	return keyFolder.String(strings.TrimSpace(s))
}

// foldWords case-folds a cell and flattens punctuation to spaces so
// vocabulary tokens match on word boundaries.
func foldWords(cell string) string {
	folded := keyFolder.String(cell)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch r {
		case ',', ';', '.', '!', '?', '(', ')', '/', ':':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// stampID derives the per-row import id from the timestamp cell. The
// form system never reuses a submission timestamp, so the cell itself is
// the id.
func stampID(cell string) string {
	return strings.TrimSpace(cell)
}

// cellAt returns the trimmed cell at index i, "" when the row is short.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
