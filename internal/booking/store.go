package booking

import "sync"

// Store is the mutex-guarded in-memory registry of persons and
// reservations. The import pipeline never touches it directly: it reads a
// point-in-time snapshot and, after commit, appends a delta. Appends are
// the only mutation; nothing is ever updated or deleted here.
type Store struct {
	mu           sync.RWMutex
	persons      []Person
	reservations []Reservation
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Seed replaces the store contents. Intended for startup loading and
// tests only.
func (s *Store) Seed(persons []Person, reservations []Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons = append([]Person(nil), persons...)
	s.reservations = append([]Reservation(nil), reservations...)
}

// Persons returns a copy of the current person collection.
func (s *Store) Persons() []Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Person(nil), s.persons...)
}

// Reservations returns a copy of the current reservation collection.
func (s *Store) Reservations() []Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Reservation(nil), s.reservations...)
}

// Append adds newly materialized entities to the store.
func (s *Store) Append(persons []Person, reservations []Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons = append(s.persons, persons...)
	s.reservations = append(s.reservations, reservations...)
}

// Commit runs build under the store lock and appends whatever it
// returns. The build function receives the reservation-number high-water
// mark; the lock is held from that read through the append, so no two
// commits can observe the same mark and mint colliding numbers. An error
// from build aborts the commit without appending anything.
func (s *Store) Commit(build func(maxReservationNumber int) ([]Person, []Reservation, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	persons, reservations, err := build(s.maxNumberLocked())
	if err != nil {
		return err
	}
	s.persons = append(s.persons, persons...)
	s.reservations = append(s.reservations, reservations...)
	return nil
}

// MaxReservationNumber returns the numbering high-water mark, 0 when the
// store holds no reservations.
func (s *Store) MaxReservationNumber() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxNumberLocked()
}

func (s *Store) maxNumberLocked() int {
	max := 0
	for _, r := range s.reservations {
		if r.Number > max {
			max = r.Number
		}
	}
	return max
}
