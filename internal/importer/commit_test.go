package importer

import (
	"errors"
	"testing"

	"github.com/southswell/backoffice/internal/booking"
)

// parseFixture runs the pipeline over a one-conflict fixture: an existing
// person Jean Dupont / AB123456 and an incoming row naming Jean Dupond
// with the same passport plus one companion.
func parseFixture(t *testing.T) *ParseResult {
	t.Helper()
	existing := []booking.Person{{
		ID:        "p1",
		FirstName: "Jean",
		LastName:  "Dupont",
		Passport:  "AB123456",
	}}
	text := buildCSV(t,
		frenchHeader,
		dataRow("05/02/2026 10:00:00", "3", "05/02/2026", "oui",
			"Jean", "Dupond", "AB123456",
			"Claire", "Dupond", "CD654321"),
	)
	result, err := Parse(text, BuildSnapshot(existing, nil))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return result
}

func TestMaterialize_RefusesUnresolvedConflicts(t *testing.T) {
	result := parseFixture(t)
	_, _, err := Materialize(result.Rows, 0)
	if !errors.Is(err, ErrUnresolvedConflicts) {
		t.Errorf("err = %v, want ErrUnresolvedConflicts", err)
	}
}

func TestMaterialize_KeepReusesStoredPerson(t *testing.T) {
	result := parseFixture(t)
	s := NewStepper(result.Rows)
	if _, err := s.Resolve(ResolutionKeep); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	persons, reservations, err := Materialize(result.Rows, 41)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	// Only the companion becomes a new person.
	if len(persons) != 1 {
		t.Fatalf("expected 1 new person, got %d", len(persons))
	}
	if persons[0].FirstName != "Claire" {
		t.Errorf("new person = %q, want the companion", persons[0].FirstName)
	}

	if len(reservations) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(reservations))
	}
	res := reservations[0]
	if res.ClientID != "p1" {
		t.Errorf("ClientID = %q, want the stored person p1", res.ClientID)
	}
	if res.Number != 42 {
		t.Errorf("Number = %d, want 42", res.Number)
	}
	// Participants snapshot includes the suppressed referent.
	if len(res.Participants) != 2 {
		t.Fatalf("Participants = %d, want 2", len(res.Participants))
	}
	if res.Participants[0].LastName != "Dupond" {
		t.Errorf("participant snapshot = %+v, want incoming name", res.Participants[0])
	}
}

func TestMaterialize_ReplaceCreatesNewPerson(t *testing.T) {
	result := parseFixture(t)
	s := NewStepper(result.Rows)
	if _, err := s.Resolve(ResolutionReplace); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	persons, reservations, err := Materialize(result.Rows, 0)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	if len(persons) != 2 {
		t.Fatalf("expected 2 new persons, got %d", len(persons))
	}
	referent := persons[0]
	if referent.LastName != "Dupond" {
		t.Errorf("referent LastName = %q, want incoming Dupond", referent.LastName)
	}
	if reservations[0].ClientID != referent.ID {
		t.Errorf("ClientID = %q, want new referent %q", reservations[0].ClientID, referent.ID)
	}
	if reservations[0].ClientID == "p1" {
		t.Error("replace must not link to the stored person")
	}
}

func TestMaterialize_SkipRowsContributeNothing(t *testing.T) {
	rows := []*ImportRow{
		{ImportID: "a", Status: StatusSkip, Reservation: ReservationDraft{Nights: 3}},
	}
	persons, reservations, err := Materialize(rows, 0)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if len(persons) != 0 || len(reservations) != 0 {
		t.Errorf("skip rows produced %d persons, %d reservations", len(persons), len(reservations))
	}
}

func TestMaterialize_SequentialNumbering(t *testing.T) {
	text := buildCSV(t,
		frenchHeader,
		dataRow("05/02/2026 10:00:00", "3", "05/02/2026", "non", "Ana", "Silva", "BR555555"),
		dataRow("06/02/2026 11:00:00", "2", "06/02/2026", "non", "Lisa", "Berg", "SE321321"),
	)
	result, err := Parse(text, emptySnapshot())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, reservations, err := Materialize(result.Rows, 7)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if reservations[0].Number != 8 || reservations[1].Number != 9 {
		t.Errorf("Numbers = %d, %d, want 8, 9", reservations[0].Number, reservations[1].Number)
	}
}

func TestMaterialize_ReferentialCompleteness(t *testing.T) {
	result := parseFixture(t)
	s := NewStepper(result.Rows)
	if _, err := s.Resolve(ResolutionKeep); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	_, reservations, err := Materialize(result.Rows, 0)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	for _, res := range reservations {
		row := findRow(result.Rows, res.ImportID)
		if row == nil {
			t.Fatalf("reservation %s has no source row", res.ImportID)
		}
		if len(res.Participants) != len(row.Persons) {
			t.Errorf("row %s: %d participants, %d drafts", res.ImportID, len(res.Participants), len(row.Persons))
		}
	}
}

func TestImport_SecondRunIsIdempotent(t *testing.T) {
	text := buildCSV(t,
		frenchHeader,
		dataRow("05/02/2026 10:00:00", "3", "05/02/2026", "oui", "Jean", "Dupont", "AB123456"),
		dataRow("06/02/2026 11:00:00", "2", "06/02/2026", "non", "Ana", "Silva", "BR555555"),
	)

	first, err := Parse(text, emptySnapshot())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	persons, reservations, err := Materialize(first.Rows, 0)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if len(persons) != 2 || len(reservations) != 2 {
		t.Fatalf("first run created %d/%d, want 2/2", len(persons), len(reservations))
	}

	// Re-run the whole pipeline over the same file against the new state.
	second, err := Parse(text, BuildSnapshot(persons, reservations))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for _, row := range second.Rows {
		if row.Status != StatusSkip {
			t.Errorf("row %s: status %q, want skip", row.ImportID, row.Status)
		}
	}
	p2, r2, err := Materialize(second.Rows, 2)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if len(p2) != 0 || len(r2) != 0 {
		t.Errorf("second run created %d/%d entities, want none", len(p2), len(r2))
	}
}

func findRow(rows []*ImportRow, importID string) *ImportRow {
	for _, row := range rows {
		if row.ImportID == importID {
			return row
		}
	}
	return nil
}
