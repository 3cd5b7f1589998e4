package booking

import (
	"errors"
	"sync"
	"testing"
)

func TestStore_AppendAndSnapshots(t *testing.T) {
	s := NewStore()
	s.Append([]Person{{ID: "p1", FirstName: "Ana"}}, []Reservation{{ID: "r1", Number: 5}})

	persons := s.Persons()
	if len(persons) != 1 || persons[0].ID != "p1" {
		t.Fatalf("Persons = %v", persons)
	}

	// Snapshots are copies; mutating them must not touch the store.
	persons[0].FirstName = "changed"
	if s.Persons()[0].FirstName != "Ana" {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestStore_MaxReservationNumber(t *testing.T) {
	s := NewStore()
	if got := s.MaxReservationNumber(); got != 0 {
		t.Errorf("empty store high-water mark = %d, want 0", got)
	}

	s.Append(nil, []Reservation{{ID: "r1", Number: 3}, {ID: "r2", Number: 7}, {ID: "r3", Number: 5}})
	if got := s.MaxReservationNumber(); got != 7 {
		t.Errorf("MaxReservationNumber = %d, want 7", got)
	}
}

func TestStore_CommitMintsUniqueNumbers(t *testing.T) {
	s := NewStore()

	// Every commit reads the mark and appends under one lock, so racing
	// commits must still produce distinct sequential numbers.
	const commits = 8
	var wg sync.WaitGroup
	for i := 0; i < commits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Commit(func(mark int) ([]Person, []Reservation, error) {
				return nil, []Reservation{{Number: mark + 1}}, nil
			})
			if err != nil {
				t.Errorf("Commit() error = %v", err)
			}
		}()
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, r := range s.Reservations() {
		if seen[r.Number] {
			t.Errorf("duplicate reservation number %d", r.Number)
		}
		seen[r.Number] = true
	}
	if got := s.MaxReservationNumber(); got != commits {
		t.Errorf("MaxReservationNumber = %d, want %d", got, commits)
	}
}

func TestStore_CommitAbortsOnBuildError(t *testing.T) {
	s := NewStore()
	wantErr := errors.New("rows not ready")

	err := s.Commit(func(mark int) ([]Person, []Reservation, error) {
		return []Person{{ID: "p1"}}, []Reservation{{Number: mark + 1}}, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Commit() error = %v, want %v", err, wantErr)
	}
	if len(s.Persons()) != 0 || len(s.Reservations()) != 0 {
		t.Error("failed commit must append nothing")
	}
}

func TestStore_SeedReplaces(t *testing.T) {
	s := NewStore()
	s.Append([]Person{{ID: "p1"}}, nil)
	s.Seed([]Person{{ID: "p2"}}, nil)

	persons := s.Persons()
	if len(persons) != 1 || persons[0].ID != "p2" {
		t.Errorf("Seed did not replace contents: %v", persons)
	}
}
