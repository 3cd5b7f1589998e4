// Package importer implements the external-form import reconciliation
// engine: it ingests the raw text of a form-system spreadsheet export,
// classifies each row against the bookings the application already holds,
// extracts draft person and reservation records, walks the operator
// through conflict resolution one case at a time, and finally materializes
// new entities with freshly assigned identifiers.
//
// The pipeline is pure with respect to the application state: it receives
// a Snapshot of existing persons and reservations, performs no I/O, and
// only ever returns new collections to append.
package importer

// Status classifies an import row against the existing application state.
type Status string

const (
	// StatusSkip marks a row whose import id was already imported.
	StatusSkip Status = "skip"
	// StatusNew marks a row ready to be committed.
	StatusNew Status = "new"
	// StatusConflict marks a row whose referent collides with a stored
	// person under a different identity; the operator must decide.
	StatusConflict Status = "conflict"
)

// Resolution is the operator's decision on a conflicting row.
type Resolution string

const (
	// ResolutionKeep retains the stored identity: no person is created
	// for the referent and the reservation links to the existing person.
	ResolutionKeep Resolution = "keep"
	// ResolutionReplace accepts the incoming identity: a new person is
	// created from the draft as usual.
	ResolutionReplace Resolution = "replace"
)

// Conflict records one mismatched identity field between a stored person
// and the incoming referent sharing the same natural key.
type Conflict struct {
	Field    string `json:"field"`
	Stored   string `json:"stored"`
	Incoming string `json:"incoming"`
}

// PersonDraft is a person extracted from one traveler slot of a row.
// Exactly one draft per row is the referent (the first slot); it alone
// carries the emergency contact fields.
type PersonDraft struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Passport       string `json:"passport,omitempty"`
	IsReferent     bool   `json:"isReferent"`
	EmergencyName  string `json:"emergencyName,omitempty"`
	EmergencyPhone string `json:"emergencyPhone,omitempty"`
	ImportID       string `json:"importId"`
}

// ReservationDraft is the stay extracted from one row. Dates use the
// canonical YYYY-MM-DD form; an unparseable date is left empty rather
// than guessed.
type ReservationDraft struct {
	CheckIn        string `json:"checkIn,omitempty"`
	CheckOut       string `json:"checkOut,omitempty"`
	Nights         int    `json:"nights"`
	ArrivalTime    string `json:"arrivalTime,omitempty"`
	DepartureTime  string `json:"departureTime,omitempty"`
	NeedsTransfer  bool   `json:"needsTransfer"`
	Luggage        int    `json:"luggage"`
	BoardBags      int    `json:"boardBags"`
	EmergencyName  string `json:"emergencyName,omitempty"`
	EmergencyPhone string `json:"emergencyPhone,omitempty"`
	ImportID       string `json:"importId"`
}

// ImportRow is the unit of work: one data row of the export, decomposed
// and classified. Conflicts is non-empty exactly when Status is
// StatusConflict; Resolution is set only by the stepper, at which point
// Status transitions to StatusNew. Conflicts is kept after resolution for
// audit.
type ImportRow struct {
	ImportID    string           `json:"importId"`
	Status      Status           `json:"status"`
	Persons     []PersonDraft    `json:"persons"`
	Reservation ReservationDraft `json:"reservation"`
	Conflicts   []Conflict       `json:"conflicts,omitempty"`
	Resolution  Resolution       `json:"resolution,omitempty"`

	// ExistingClientID is the identifier of the stored person the
	// referent collided with, set only for rows classified conflict.
	ExistingClientID string `json:"existingClientId,omitempty"`
}

// ParseResult is the outcome of one import run, before resolution.
type ParseResult struct {
	Rows []*ImportRow `json:"rows"`
	// Variant is the detected schema-variant label.
	Variant string `json:"variant"`
	// DataRows counts rows recognized as data rows (noise excluded).
	DataRows int `json:"dataRows"`
}

// Referent returns the referent draft of the row, or nil if the row
// produced no persons (skip rows, for instance).
func (r *ImportRow) Referent() *PersonDraft {
	for i := range r.Persons {
		if r.Persons[i].IsReferent {
			return &r.Persons[i]
		}
	}
	return nil
}
