package importer

import "github.com/southswell/backoffice/internal/booking"

// Snapshot is the point-in-time view of application state the classifier
// works against. It is recomputed from the live collections on every
// import run, never cached, which is what makes re-importing the same
// file idempotent.
type Snapshot struct {
	// Imported holds every import id already represented among existing
	// persons and reservations (the dedup set).
	Imported map[string]struct{}
	// ByPassport indexes existing persons by folded passport number, the
	// natural key.
	ByPassport map[string]booking.Person
}

// BuildSnapshot derives a Snapshot from the caller's current collections.
func BuildSnapshot(persons []booking.Person, reservations []booking.Reservation) Snapshot {
	snap := Snapshot{
		Imported:   make(map[string]struct{}),
		ByPassport: make(map[string]booking.Person),
	}
	for _, p := range persons {
		if p.ImportID != "" {
			snap.Imported[p.ImportID] = struct{}{}
		}
		if key := FoldKey(p.Passport); key != "" {
			snap.ByPassport[key] = p
		}
	}
	for _, r := range reservations {
		if r.ImportID != "" {
			snap.Imported[r.ImportID] = struct{}{}
		}
	}
	return snap
}

// classifyRow builds the ImportRow for one recognized data row: it
// extracts the drafts and decides skip / new / conflict against the
// snapshot.
//
// Conflicts are evaluated only against the referent; companions are
// always fresh persons. A natural-key match with no differing identity
// field is not a conflict: there is nothing for the operator to decide,
// so the row classifies new.
func classifyRow(row []string, cols ColumnMap, snap Snapshot) *ImportRow {
	importID := stampID(cellAt(row, cols.Timestamp))

	persons, res := Extract(row, cols, importID)

	out := &ImportRow{
		ImportID:    importID,
		Reservation: res,
	}

	if _, seen := snap.Imported[importID]; seen {
		// Already imported: keep the reservation draft for inspection
		// but drop the drafts so nothing can be committed twice.
		out.Status = StatusSkip
		return out
	}

	out.Persons = persons
	out.Status = StatusNew

	referent := out.Referent()
	if referent == nil {
		return out
	}
	existing, ok := snap.ByPassport[FoldKey(referent.Passport)]
	if !ok {
		return out
	}

	conflicts := identityConflicts(existing, *referent)
	if len(conflicts) > 0 {
		out.Status = StatusConflict
		out.Conflicts = conflicts
		out.ExistingClientID = existing.ID
	}
	return out
}

// identityConflicts compares the identity fields of a stored person and
// an incoming referent sharing the same natural key. Comparison is
// case-insensitive and treats an empty side as no opinion.
func identityConflicts(stored booking.Person, incoming PersonDraft) []Conflict {
	var conflicts []Conflict
	pairs := []struct {
		field            string
		stored, incoming string
	}{
		{"first_name", stored.FirstName, incoming.FirstName},
		{"last_name", stored.LastName, incoming.LastName},
		{"passport", stored.Passport, incoming.Passport},
	}
	for _, p := range pairs {
		if p.stored == "" || p.incoming == "" {
			continue
		}
		if FoldKey(p.stored) != FoldKey(p.incoming) {
			conflicts = append(conflicts, Conflict{
				Field:    p.field,
				Stored:   p.stored,
				Incoming: p.incoming,
			})
		}
	}
	return conflicts
}
