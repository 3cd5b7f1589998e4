// Package booking holds the resort's core entities and the in-memory
// application state the import pipeline reads from and appends to.
// Persistence of these collections belongs to the surrounding
// application, not to this service.
package booking

// Person is a guest known to the resort.
type Person struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Passport       string `json:"passport,omitempty"`
	EmergencyName  string `json:"emergencyName,omitempty"`
	EmergencyPhone string `json:"emergencyPhone,omitempty"`
	// ImportID is the id of the form row this person was imported from,
	// empty for persons created by hand.
	ImportID string `json:"importId,omitempty"`
}

// Participant is a denormalized snapshot of a traveler on a reservation.
// It is kept even when no corresponding Person record exists (a referent
// resolved with "keep" reuses the stored person).
type Participant struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Passport  string `json:"passport,omitempty"`
}

// Reservation is one stay. Dates use the canonical YYYY-MM-DD form and
// may be empty when the source row carried nothing parseable.
type Reservation struct {
	ID             string        `json:"id"`
	Number         int           `json:"number"`
	ClientID       string        `json:"clientId"`
	CheckIn        string        `json:"checkIn,omitempty"`
	CheckOut       string        `json:"checkOut,omitempty"`
	Nights         int           `json:"nights"`
	ArrivalTime    string        `json:"arrivalTime,omitempty"`
	DepartureTime  string        `json:"departureTime,omitempty"`
	NeedsTransfer  bool          `json:"needsTransfer"`
	Luggage        int           `json:"luggage"`
	BoardBags      int           `json:"boardBags"`
	EmergencyName  string        `json:"emergencyName,omitempty"`
	EmergencyPhone string        `json:"emergencyPhone,omitempty"`
	Participants   []Participant `json:"participants"`
	ImportID       string        `json:"importId,omitempty"`
}
