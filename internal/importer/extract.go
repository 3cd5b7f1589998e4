package importer

// Extract decomposes one data row into its person drafts and reservation
// draft under the active column map.
//
// The traveler block is read slot by slot up to MaxTravelers, stopping at
// the first slot whose first and last name are both empty. The form also
// carries a traveler-count field, but submissions under- and over-report
// it, so the short-circuit is the authority, not the count. The first
// slot is the referent; it alone receives the emergency contact, which is
// mirrored onto the reservation because both records need it downstream.
func Extract(row []string, cols ColumnMap, importID string) ([]PersonDraft, ReservationDraft) {
	var persons []PersonDraft
	for slot := 0; slot < MaxTravelers; slot++ {
		base := cols.TravelerStart + slot*TravelerWidth
		first := cellAt(row, base)
		last := cellAt(row, base+1)
		if first == "" && last == "" {
			break
		}
		p := PersonDraft{
			FirstName: first,
			LastName:  last,
			Passport:  cellAt(row, base+2),
			ImportID:  importID,
		}
		if slot == 0 {
			p.IsReferent = true
			p.EmergencyName = cellAt(row, cols.EmergencyName)
			p.EmergencyPhone = cellAt(row, cols.EmergencyPhone)
		}
		persons = append(persons, p)
	}

	res := ReservationDraft{
		Nights:         FirstInt(cellAt(row, cols.Nights)),
		CheckIn:        DateIn(cellAt(row, cols.ArrivalDate)),
		ArrivalTime:    cellAt(row, cols.ArrivalTime),
		DepartureTime:  cellAt(row, cols.DepartureTime),
		NeedsTransfer:  Affirmative(cellAt(row, cols.Transfer)),
		Luggage:        FirstInt(cellAt(row, cols.Luggage)),
		BoardBags:      FirstInt(cellAt(row, cols.BoardBags)),
		EmergencyName:  cellAt(row, cols.EmergencyName),
		EmergencyPhone: cellAt(row, cols.EmergencyPhone),
		ImportID:       importID,
	}
	// Check-out is always derived, never read: the form asks for nights,
	// not a departure date. Unparseable inputs leave the dates unset.
	if res.CheckIn != "" && res.Nights > 0 {
		res.CheckOut = AddNights(res.CheckIn, res.Nights)
	}

	return persons, res
}
