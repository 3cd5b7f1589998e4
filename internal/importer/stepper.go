package importer

import "errors"

// ErrNoActiveConflict is returned when a decision arrives while the
// stepper is idle.
var ErrNoActiveConflict = errors.New("import: no conflict awaiting a decision")

// ErrBadResolution is returned for a decision other than keep or replace.
var ErrBadResolution = errors.New("import: resolution must be keep or replace")

// Stepper drives the operator through the conflicting rows of a parse
// result, one at a time, in row order. It is strictly sequential: each
// conflict must be decided before the next is shown, so no row can reach
// commit undecided. The stepper is the single writer of the rows it was
// given; between steps they are ordinary shared state read by the caller.
type Stepper struct {
	rows []*ImportRow
	pos  int
}

// Presentation is what the operator sees for one step: the active
// conflict, its position in the run, or the idle state once none remain.
type Presentation struct {
	Idle      bool       `json:"idle"`
	Index     int        `json:"index,omitempty"`
	Total     int        `json:"total,omitempty"`
	ImportID  string     `json:"importId,omitempty"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// NewStepper positions a stepper on the first conflicting row.
func NewStepper(rows []*ImportRow) *Stepper {
	s := &Stepper{rows: rows}
	s.advance()
	return s
}

// Current returns the presentation for the active conflict, or the idle
// presentation when every conflict has been resolved.
func (s *Stepper) Current() Presentation {
	if s.pos >= len(s.rows) {
		return Presentation{Idle: true}
	}
	row := s.rows[s.pos]
	done, total := s.progress()
	return Presentation{
		Index:     done + 1,
		Total:     total,
		ImportID:  row.ImportID,
		Conflicts: row.Conflicts,
	}
}

// Resolve applies the operator's decision to the active conflict and
// advances to the next one. Either decision records the resolution and
// reclassifies the row as new; the conflict list stays on the row for
// audit. Returns the presentation for the next step.
func (s *Stepper) Resolve(decision Resolution) (Presentation, error) {
	if decision != ResolutionKeep && decision != ResolutionReplace {
		return Presentation{}, ErrBadResolution
	}
	if s.pos >= len(s.rows) {
		return Presentation{}, ErrNoActiveConflict
	}
	row := s.rows[s.pos]
	row.Resolution = decision
	row.Status = StatusNew
	s.pos++
	s.advance()
	return s.Current(), nil
}

// Remaining counts conflicts not yet decided.
func (s *Stepper) Remaining() int {
	n := 0
	for _, row := range s.rows {
		if row.Status == StatusConflict {
			n++
		}
	}
	return n
}

// advance moves the cursor to the next row still in conflict.
func (s *Stepper) advance() {
	for s.pos < len(s.rows) && s.rows[s.pos].Status != StatusConflict {
		s.pos++
	}
}

// progress reports how many conflicts are already decided and the total
// number of conflicts in the run.
func (s *Stepper) progress() (done, total int) {
	for _, row := range s.rows {
		if row.Status == StatusConflict || row.Resolution != "" {
			total++
			if row.Resolution != "" {
				done++
			}
		}
	}
	return done, total
}
