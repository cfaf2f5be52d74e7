package store

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// StatusRunning is the status of a run that has not finished yet.
const StatusRunning = "running"

// Recorder writes one run's history as it happens. A nil Recorder is a
// valid no-op, and every storage error is logged and swallowed: history
// must never fail the run it describes.
type Recorder struct {
	db  *DB
	run *Run
	seq int
}

// Begin opens a run record and returns its recorder. Returns nil when db
// is nil or the insert fails, which callers use as-is.
func Begin(db *DB, kind Kind, goal string) *Recorder {
	if db == nil {
		return nil
	}

	r := &Recorder{
		db: db,
		run: &Run{
			ID:        uuid.New().String()[:8],
			Kind:      kind,
			Goal:      goal,
			Status:    StatusRunning,
			StartedAt: time.Now(),
		},
	}
	if err := db.CreateRun(r.run); err != nil {
		log.Printf("[store] record run: %v", err)
		return nil
	}
	return r
}

// RunID returns the recorded run's ID, or "" for a no-op recorder.
func (r *Recorder) RunID() string {
	if r == nil {
		return ""
	}
	return r.run.ID
}

// Step records one resolved step in sequence order.
func (r *Recorder) Step(name, status, detail string, duration time.Duration) {
	if r == nil {
		return
	}

	r.seq++
	step := &RunStep{
		RunID:    r.run.ID,
		Seq:      r.seq,
		Name:     name,
		Status:   status,
		Detail:   detail,
		Duration: duration,
	}
	if err := r.db.AddStep(step); err != nil {
		log.Printf("[store] record step %s: %v", name, err)
	}
}

// Finish seals the run record with its terminal state.
func (r *Recorder) Finish(status, value, reason string, tokensIn, tokensOut int) {
	if r == nil {
		return
	}

	now := time.Now()
	r.run.Status = status
	r.run.Value = value
	r.run.Reason = reason
	r.run.TokensIn = tokensIn
	r.run.TokensOut = tokensOut
	r.run.FinishedAt = &now
	if err := r.db.FinishRun(r.run); err != nil {
		log.Printf("[store] finish run %s: %v", r.run.ID, err)
	}
}
