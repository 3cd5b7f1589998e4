package importer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/southswell/backoffice/internal/booking"
)

// ErrUnresolvedConflicts is returned when commit is attempted while any
// row is still awaiting a decision. The caller must run the stepper to
// completion first; commit never auto-resolves.
var ErrUnresolvedConflicts = errors.New("import: rows still in conflict, resolve before committing")

// Materialize turns every row in new state into final entities: persons
// get freshly minted identifiers, reservations additionally get the next
// sequential numbers above the caller's high-water mark and a client link.
//
// A referent resolved with keep is suppressed: the stored person is
// reused and the reservation links to it. The reservation's participant
// list is a denormalized snapshot of every extracted draft, referent
// included, regardless of suppression.
//
// Materialize is all-or-nothing and append-only: it never mutates or
// deletes existing entities, and skip rows contribute nothing.
func Materialize(rows []*ImportRow, maxReservationNumber int) ([]booking.Person, []booking.Reservation, error) {
	for _, row := range rows {
		if row.Status == StatusConflict {
			return nil, nil, fmt.Errorf("%w: row %s", ErrUnresolvedConflicts, row.ImportID)
		}
	}

	var persons []booking.Person
	var reservations []booking.Reservation
	number := maxReservationNumber

	for _, row := range rows {
		if row.Status != StatusNew {
			continue
		}

		clientID := ""
		participants := make([]booking.Participant, 0, len(row.Persons))

		for _, draft := range row.Persons {
			participants = append(participants, booking.Participant{
				FirstName: draft.FirstName,
				LastName:  draft.LastName,
				Passport:  draft.Passport,
			})

			if draft.IsReferent && row.ExistingClientID != "" && row.Resolution == ResolutionKeep {
				clientID = row.ExistingClientID
				continue
			}

			person := booking.Person{
				ID:             uuid.NewString(),
				FirstName:      draft.FirstName,
				LastName:       draft.LastName,
				Passport:       draft.Passport,
				EmergencyName:  draft.EmergencyName,
				EmergencyPhone: draft.EmergencyPhone,
				ImportID:       draft.ImportID,
			}
			persons = append(persons, person)
			if draft.IsReferent {
				clientID = person.ID
			}
		}

		number++
		reservations = append(reservations, booking.Reservation{
			ID:             uuid.NewString(),
			Number:         number,
			ClientID:       clientID,
			CheckIn:        row.Reservation.CheckIn,
			CheckOut:       row.Reservation.CheckOut,
			Nights:         row.Reservation.Nights,
			ArrivalTime:    row.Reservation.ArrivalTime,
			DepartureTime:  row.Reservation.DepartureTime,
			NeedsTransfer:  row.Reservation.NeedsTransfer,
			Luggage:        row.Reservation.Luggage,
			BoardBags:      row.Reservation.BoardBags,
			EmergencyName:  row.Reservation.EmergencyName,
			EmergencyPhone: row.Reservation.EmergencyPhone,
			Participants:   participants,
			ImportID:       row.ImportID,
		})
	}

	return persons, reservations, nil
}
