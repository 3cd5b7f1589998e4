package importer

import "strings"

// ColumnMap binds the semantic fields of the export to column indexes.
// Exactly one map is active per import run, selected once from the header
// row. The traveler block is a fixed-width repeating group of
// TravelerWidth columns (first name, last name, passport) starting at
// TravelerStart, for up to MaxTravelers slots.
type ColumnMap struct {
	Variant string

	Timestamp      int
	ReferentName   int
	Nights         int
	ArrivalDate    int
	ArrivalTime    int
	DepartureTime  int
	Transfer       int
	Luggage        int
	BoardBags      int
	EmergencyName  int
	EmergencyPhone int
	TravelerStart  int
}

const (
	// TravelerWidth is the number of columns per traveler slot.
	TravelerWidth = 3
	// MaxTravelers bounds the repeating traveler block. The form itself
	// stops at four travelers per submission.
	MaxTravelers = 4
)

// The column layouts of the known form-language editions. The French
// edition is the original; the English edition is column-identical; the
// Spanish edition added a phone column before the traveler block.
var (
	frenchColumns = ColumnMap{
		Variant:        "fr",
		Timestamp:      0,
		ReferentName:   1,
		Nights:         2,
		ArrivalDate:    3,
		ArrivalTime:    4,
		DepartureTime:  5,
		Transfer:       6,
		Luggage:        7,
		BoardBags:      8,
		EmergencyName:  9,
		EmergencyPhone: 10,
		TravelerStart:  11,
	}

	englishColumns = ColumnMap{
		Variant:        "en",
		Timestamp:      0,
		ReferentName:   1,
		Nights:         2,
		ArrivalDate:    3,
		ArrivalTime:    4,
		DepartureTime:  5,
		Transfer:       6,
		Luggage:        7,
		BoardBags:      8,
		EmergencyName:  9,
		EmergencyPhone: 10,
		TravelerStart:  11,
	}

	spanishColumns = ColumnMap{
		Variant:        "es",
		Timestamp:      0,
		ReferentName:   1,
		Nights:         2,
		ArrivalDate:    3,
		ArrivalTime:    4,
		DepartureTime:  5,
		Transfer:       6,
		Luggage:        7,
		BoardBags:      8,
		EmergencyName:  9,
		EmergencyPhone: 10,
		TravelerStart:  12,
	}
)

// headerMarkers maps a substring of the form's timestamp header cell to
// the matching column layout. This is a closed set: one entry per survey
// language edition the resort ships, not a general i18n mechanism.
var headerMarkers = []struct {
	marker  string
	columns ColumnMap
}{
	{"horodateur", frenchColumns},
	{"timestamp", englishColumns},
	{"marca temporal", spanishColumns},
}

// Detect selects the column layout for an import run from the header row.
// It inspects the first cell, the only header cell that reliably
// discriminates the form language. Unknown headers fall back to the
// French layout (the original edition) rather than failing; a
// misattributed column is recoverable, a refused import is not.
func Detect(header []string) ColumnMap {
	if len(header) == 0 {
		return frenchColumns
	}
	cell := strings.ToLower(strings.TrimSpace(header[0]))
	for _, m := range headerMarkers {
		if strings.Contains(cell, m.marker) {
			return m.columns
		}
	}
	return frenchColumns
}
