package web

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/southswell/backoffice/internal/importer"
)

// ErrUnknownSession is returned for session ids that do not exist,
// including sessions already committed or discarded.
var ErrUnknownSession = errors.New("web: unknown import session")

// ErrTooManySessions is returned when the registry is full.
var ErrTooManySessions = errors.New("web: too many open import sessions")

// importSession is one operator's import flow between upload and commit.
// The session owns its ImportRow slice; the stepper is the single writer
// of row state between steps, and mu enforces that when requests race.
// closed marks a committed session so a handler still holding the
// pointer cannot step or commit it again.
type importSession struct {
	ID        string
	Result    *importer.ParseResult
	Stepper   *importer.Stepper
	CreatedAt time.Time

	mu     sync.Mutex
	closed bool
}

// sessionRegistry holds open import sessions. An abandoned session is
// harmless (it never reaches commit and creates no entities), so there
// is no expiry, only an explicit discard and a cap on open sessions.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*importSession
	max      int
}

func newSessionRegistry(max int) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*importSession),
		max:      max,
	}
}

func (r *sessionRegistry) create(result *importer.ParseResult) (*importSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sessions) >= r.max {
		return nil, ErrTooManySessions
	}
	sess := &importSession{
		ID:        uuid.NewString(),
		Result:    result,
		Stepper:   importer.NewStepper(result.Rows),
		CreatedAt: time.Now(),
	}
	r.sessions[sess.ID] = sess
	return sess, nil
}

func (r *sessionRegistry) get(id string) (*importSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	return sess, nil
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
