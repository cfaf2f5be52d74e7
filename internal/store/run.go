package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Kind distinguishes the workflow that produced a run.
type Kind string

const (
	KindBrief       Kind = "brief"
	KindOrchestrate Kind = "orchestrate"
	KindRefine      Kind = "refine"
)

// Run is one recorded workflow execution.
type Run struct {
	ID         string     `json:"id"`
	Kind       Kind       `json:"kind"`
	Goal       string     `json:"goal"`
	Status     string     `json:"status"`
	Value      string     `json:"value"`
	Reason     string     `json:"reason"`
	TokensIn   int        `json:"tokens_in"`
	TokensOut  int        `json:"tokens_out"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

// RunStep is one recorded step within a run.
type RunStep struct {
	RunID    string        `json:"run_id"`
	Seq      int           `json:"seq"`
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Detail   string        `json:"detail"`
	Duration time.Duration `json:"duration"`
}

// CreateRun inserts a new run in running state.
func (db *DB) CreateRun(r *Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (id, kind, goal, status, value, reason, tokens_in, tokens_out, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, string(r.Kind), r.Goal, r.Status, r.Value, r.Reason, r.TokensIn, r.TokensOut, formatTime(r.StartedAt))
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// FinishRun records a run's terminal state.
func (db *DB) FinishRun(r *Run) error {
	var finishedAt *string
	if r.FinishedAt != nil {
		s := formatTime(*r.FinishedAt)
		finishedAt = &s
	}

	_, err := db.Exec(`
		UPDATE runs SET status = ?, value = ?, reason = ?, tokens_in = ?, tokens_out = ?, finished_at = ?
		WHERE id = ?
	`, r.Status, r.Value, r.Reason, r.TokensIn, r.TokensOut, finishedAt, r.ID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID. Returns nil when no run matches.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.QueryRow(`
		SELECT id, kind, goal, status, value, reason, tokens_in, tokens_out, started_at, finished_at
		FROM runs WHERE id = ?
	`, id)

	var r Run
	var startedAt string
	var finishedAt sql.NullString
	err := row.Scan(&r.ID, &r.Kind, &r.Goal, &r.Status, &r.Value, &r.Reason, &r.TokensIn, &r.TokensOut, &startedAt, &finishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	r.StartedAt, _ = parseTime(startedAt)
	r.FinishedAt = parseNullableTime(finishedAt)
	return &r, nil
}

// ListRuns lists runs newest first, optionally filtered by kind.
func (db *DB) ListRuns(kind *Kind) ([]Run, error) {
	var rows *sql.Rows
	var err error

	if kind != nil {
		rows, err = db.Query(`
			SELECT id, kind, goal, status, value, reason, tokens_in, tokens_out, started_at, finished_at
			FROM runs WHERE kind = ? ORDER BY started_at DESC
		`, string(*kind))
	} else {
		rows, err = db.Query(`
			SELECT id, kind, goal, status, value, reason, tokens_in, tokens_out, started_at, finished_at
			FROM runs ORDER BY started_at DESC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.Kind, &r.Goal, &r.Status, &r.Value, &r.Reason, &r.TokensIn, &r.TokensOut, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = parseTime(startedAt)
		r.FinishedAt = parseNullableTime(finishedAt)
		runs = append(runs, r)
	}
	return runs, nil
}

// AddStep records one resolved step for a run.
func (db *DB) AddStep(s *RunStep) error {
	_, err := db.Exec(`
		INSERT INTO run_steps (run_id, seq, name, status, detail, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.RunID, s.Seq, s.Name, s.Status, s.Detail, s.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("add step: %w", err)
	}
	return nil
}

// ListSteps lists a run's steps in sequence order.
func (db *DB) ListSteps(runID string) ([]RunStep, error) {
	rows, err := db.Query(`
		SELECT run_id, seq, name, status, detail, duration_ms
		FROM run_steps WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var steps []RunStep
	for rows.Next() {
		var s RunStep
		var durationMS int64
		if err := rows.Scan(&s.RunID, &s.Seq, &s.Name, &s.Status, &s.Detail, &durationMS); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		s.Duration = time.Duration(durationMS) * time.Millisecond
		steps = append(steps, s)
	}
	return steps, nil
}
