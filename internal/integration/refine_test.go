//go:build integration

package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ShayCichocki/cascade/internal/gateway"
	"github.com/ShayCichocki/cascade/internal/refine"
	"github.com/ShayCichocki/cascade/internal/stage"
	"github.com/ShayCichocki/cascade/internal/store"
)

// TestRefineFeedbackReachesNextGeneration scripts a fail-then-pass
// evaluator and verifies the rejected round's feedback and draft reach the
// next generation prompt through the loop.
func TestRefineFeedbackReachesNextGeneration(t *testing.T) {
	var generations int
	gw := &scriptedGateway{reply: func(req gateway.Request) (string, error) {
		prompt := req.Prompt
		switch {
		case strings.Contains(prompt, `"thoughts"`):
			generations++
			return fmt.Sprintf(`{"thoughts": "round %d", "result": "draft %d"}`, generations, generations), nil
		case strings.Contains(prompt, `"eval"`):
			if strings.Contains(prompt, "draft 1") {
				return `{"eval": "FAIL", "feedback": "tighten the opening"}`, nil
			}
			return `{"eval": "PASS", "feedback": ""}`, nil
		default:
			return "", fmt.Errorf("unexpected prompt:\n%s", prompt)
		}
	}}

	loop := refine.New(refine.RequiredConfig{Runner: stage.NewRunner(gw)},
		refine.WithMaxIterations(3),
	)

	result, err := loop.Run(context.Background(), "write a product blurb")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Status != refine.StatusPassed {
		t.Fatalf("Status = %q, want %q", result.Status, refine.StatusPassed)
	}
	if result.Value != "draft 2" {
		t.Errorf("Value = %q, want the second draft", result.Value)
	}
	if len(result.History) != 2 {
		t.Fatalf("len(History) = %d, want 2", len(result.History))
	}

	var followUp string
	for _, p := range gw.recorded() {
		if strings.Contains(p, `"thoughts"`) && strings.Contains(p, "Previous attempts") {
			followUp = p
		}
	}
	if followUp == "" {
		t.Fatal("no follow-up generation prompt captured")
	}
	if !strings.Contains(followUp, "tighten the opening") {
		t.Errorf("follow-up generation missing evaluator feedback:\n%s", followUp)
	}
	if !strings.Contains(followUp, "draft 1") {
		t.Errorf("follow-up generation missing previous attempt:\n%s", followUp)
	}
}

// TestRefineExhaustionRecordedInHistory drives an always-FAIL evaluator to
// exhaustion and verifies every attempt lands in the history store.
func TestRefineExhaustionRecordedInHistory(t *testing.T) {
	var generations int
	gw := &scriptedGateway{reply: func(req gateway.Request) (string, error) {
		if strings.Contains(req.Prompt, `"thoughts"`) {
			generations++
			return fmt.Sprintf(`{"thoughts": "t", "result": "draft %d"}`, generations), nil
		}
		return `{"eval": "FAIL", "feedback": "still not there"}`, nil
	}}

	db := openTestStore(t)
	rec := store.Begin(db, store.KindRefine, "write a haiku about rivers")

	loop := refine.New(refine.RequiredConfig{Runner: stage.NewRunner(gw)},
		refine.WithMaxIterations(2),
		refine.WithObserver(func(it refine.Iteration) {
			status := "passed"
			if !it.Passed {
				status = "rejected"
			}
			rec.Step(fmt.Sprintf("attempt %d", it.Attempt), status, it.Feedback, 0)
		}),
	)

	result, err := loop.Run(context.Background(), "write a haiku about rivers")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Status != refine.StatusExhausted {
		t.Fatalf("Status = %q, want %q", result.Status, refine.StatusExhausted)
	}
	rec.Finish(string(result.Status), result.Value, "", 0, 0)

	run, err := db.GetRun(rec.RunID())
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run == nil {
		t.Fatal("GetRun() = nil, want recorded run")
	}
	if run.Status != string(refine.StatusExhausted) {
		t.Errorf("Status = %q, want %q", run.Status, refine.StatusExhausted)
	}
	if run.Value != "draft 2" {
		t.Errorf("Value = %q, want the last draft", run.Value)
	}

	steps, err := db.ListSteps(rec.RunID())
	if err != nil {
		t.Fatalf("ListSteps() error = %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("len(steps) = %d, want one per attempt", len(steps))
	}
	for i, s := range steps {
		if want := fmt.Sprintf("attempt %d", i+1); s.Name != want {
			t.Errorf("steps[%d].Name = %q, want %q", i, s.Name, want)
		}
		if s.Status != "rejected" {
			t.Errorf("steps[%d].Status = %q, want %q", i, s.Status, "rejected")
		}
		if s.Detail != "still not there" {
			t.Errorf("steps[%d].Detail = %q, want the evaluator feedback", i, s.Detail)
		}
	}
}
