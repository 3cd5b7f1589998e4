package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/southswell/backoffice/internal/booking"
	"github.com/southswell/backoffice/internal/importer"
	"github.com/southswell/backoffice/internal/logging"
)

// importSummary is the operator-facing view of a parsed import run.
type importSummary struct {
	SessionID   string `json:"sessionId"`
	Variant     string `json:"variant"`
	DataRows    int    `json:"dataRows"`
	Skipped     int    `json:"skipped"`
	New         int    `json:"new"`
	Conflicting int    `json:"conflicting"`
}

// handleCreateImport accepts the uploaded form export, parses it against
// the current application state, and opens an import session holding the
// classified rows.
//
// The file arrives as the "file" part of a multipart form, the way the
// operator's file picker submits it.
func (s *Server) handleCreateImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
			return
		}
		writeError(w, r, http.StatusBadRequest, "malformed multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	text, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "could not read upload")
		return
	}

	snap := importer.BuildSnapshot(s.store.Persons(), s.store.Reservations())
	result, err := importer.Parse(string(text), snap)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	sess, err := s.sessions.create(result)
	if err != nil {
		writeError(w, r, http.StatusConflict, err.Error())
		return
	}

	logging.FromContext(r.Context()).Info("import session opened",
		"session_id", sess.ID,
		"file", header.Filename,
		"variant", result.Variant,
		"data_rows", result.DataRows,
	)

	writeJSON(w, http.StatusCreated, summarize(sess))
}

// handleImportSummary returns the current summary of an open session.
func (s *Server) handleImportSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summarize(sess))
}

// handleDiscardImport drops an open session. Nothing was committed, so
// nothing needs undoing.
func (s *Server) handleDiscardImport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.sessions.remove(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// handleCurrentConflict returns the presentation for the conflict
// awaiting a decision, or the idle presentation when none remain.
func (s *Server) handleCurrentConflict(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	pres := sess.Stepper.Current()
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, pres)
}

type resolveRequest struct {
	Decision importer.Resolution `json:"decision"`
}

// handleResolveConflict applies one operator decision and returns the
// next presentation state.
func (s *Server) handleResolveConflict(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		writeError(w, r, http.StatusNotFound, ErrUnknownSession.Error())
		return
	}

	next, err := sess.Stepper.Resolve(req.Decision)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, importer.ErrNoActiveConflict) {
			status = http.StatusConflict
		}
		writeError(w, r, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, next)
}

// commitResponse reports what a commit appended to the application state.
type commitResponse struct {
	Persons      int `json:"persons"`
	Reservations int `json:"reservations"`
}

// handleCommitImport materializes the session's rows, appends the delta
// to the store, and closes the session. Refused while any conflict is
// undecided.
//
// Materialization runs inside store.Commit so the numbering high-water
// mark is read and the delta appended under one lock; concurrent commits
// from other sessions cannot mint the same reservation numbers.
func (s *Server) handleCommitImport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		writeError(w, r, http.StatusNotFound, ErrUnknownSession.Error())
		return
	}

	var persons []booking.Person
	var reservations []booking.Reservation
	err := s.store.Commit(func(mark int) ([]booking.Person, []booking.Reservation, error) {
		var err error
		persons, reservations, err = importer.Materialize(sess.Result.Rows, mark)
		return persons, reservations, err
	})
	if err != nil {
		writeError(w, r, http.StatusConflict, err.Error())
		return
	}

	sess.closed = true
	s.sessions.remove(sess.ID)

	logging.FromContext(r.Context()).Info("import committed",
		"session_id", sess.ID,
		"persons", len(persons),
		"reservations", len(reservations),
	)

	writeJSON(w, http.StatusOK, commitResponse{
		Persons:      len(persons),
		Reservations: len(reservations),
	})
}

// handleListPersons returns the current person collection.
func (s *Server) handleListPersons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Persons())
}

// handleListReservations returns the current reservation collection.
func (s *Server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Reservations())
}

// session resolves the sessionID route parameter, writing the error
// response itself when the session does not exist.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*importSession, bool) {
	sess, err := s.sessions.get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return nil, false
	}
	return sess, true
}

func summarize(sess *importSession) importSummary {
	skipped, fresh, conflicting := sess.Result.Counts()
	return importSummary{
		SessionID:   sess.ID,
		Variant:     sess.Result.Variant,
		DataRows:    sess.Result.DataRows,
		Skipped:     skipped,
		New:         fresh,
		Conflicting: conflicting,
	}
}
