//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/cascade/internal/gateway"
	"github.com/ShayCichocki/cascade/internal/orchestrator"
	"github.com/ShayCichocki/cascade/internal/registry"
	"github.com/ShayCichocki/cascade/internal/stage"
	"github.com/ShayCichocki/cascade/internal/store"
	"github.com/ShayCichocki/cascade/pkg/models"
)

// replyForOrchestration scripts the plan, worker, and synthesis stages,
// keyed by the schema each prompt asks for.
func replyForOrchestration(req gateway.Request) (string, error) {
	prompt := req.Prompt
	switch {
	case strings.Contains(prompt, `"analysis"`):
		return `{"analysis": "two angles serve this goal", "tasks": [{"capability": "formal", "description": "write the precise version"}, {"capability": "concise", "description": "write the short version"}]}`, nil
	case strings.Contains(prompt, `"style"`):
		style := styleOf(prompt)
		return fmt.Sprintf(`{"style": %q, "task": "the goal", "response": "draft from %s"}`, style, style), nil
	default:
		return "the synthesized answer", nil
	}
}

// styleOf pulls the style name out of a rendered worker prompt.
func styleOf(prompt string) string {
	for _, line := range strings.Split(prompt, "\n") {
		if after, ok := strings.CutPrefix(line, "Style: "); ok {
			return after
		}
	}
	return ""
}

// TestOrchestrationWithLoadedCapabilities writes a capabilities file the
// way `cascade init` does, loads it over the defaults, and runs a full
// plan/dispatch/synthesize cycle against the loaded registry.
func TestOrchestrationWithLoadedCapabilities(t *testing.T) {
	caps := registry.Defaults().All()
	for i := range caps {
		caps[i].Model = models.TierSonnet
	}
	data, err := yaml.Marshal(struct {
		Capabilities []models.Capability `yaml:"capabilities"`
	}{Capabilities: caps})
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "capabilities.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	reg := registry.Defaults()
	if err := reg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	loaded, err := reg.Resolve("formal")
	if err != nil {
		t.Fatalf("Resolve(formal) error = %v", err)
	}
	if loaded.Model != models.TierSonnet {
		t.Fatalf("loaded capability model = %q, want %q (file must override the built-in)", loaded.Model, models.TierSonnet)
	}

	gw := &scriptedGateway{reply: replyForOrchestration}
	orch := orchestrator.New(orchestrator.RequiredConfig{
		Runner:   stage.NewRunner(gw),
		Registry: reg,
	}, orchestrator.WithMaxWorkers(2))

	result := orch.Run(context.Background(), "describe the water bottle")
	if result.Status != orchestrator.StatusSucceeded {
		t.Fatalf("Status = %q, want %q (reason: %s)", result.Status, orchestrator.StatusSucceeded, result.Reason)
	}
	if result.Value != "the synthesized answer" {
		t.Errorf("Value = %q, want synthesized output", result.Value)
	}
	if len(result.Items) != 2 || len(result.Results) != 2 {
		t.Fatalf("Items/Results = %d/%d, want 2/2", len(result.Items), len(result.Results))
	}
	for i := range result.Items {
		if result.Results[i].ItemID != result.Items[i].ID {
			t.Errorf("Results[%d].ItemID = %q, want aligned with Items[%d].ID = %q",
				i, result.Results[i].ItemID, i, result.Items[i].ID)
		}
	}
}

// TestOrchestrationRecordedInHistory records a run's per-item steps and
// final verdict the way the CLI does and reads them back.
func TestOrchestrationRecordedInHistory(t *testing.T) {
	gw := &scriptedGateway{reply: replyForOrchestration}

	db := openTestStore(t)
	rec := store.Begin(db, store.KindOrchestrate, "describe the water bottle")

	orch := orchestrator.New(orchestrator.RequiredConfig{
		Runner:   stage.NewRunner(gw),
		Registry: registry.Defaults(),
	})
	result := orch.Run(context.Background(), "describe the water bottle")
	if result.Status != orchestrator.StatusSucceeded {
		t.Fatalf("Status = %q, want %q (reason: %s)", result.Status, orchestrator.StatusSucceeded, result.Reason)
	}

	for i, item := range result.Items {
		r := result.Results[i]
		status, detail := "succeeded", item.Description
		if !r.Succeeded {
			status, detail = "failed", r.Error
		}
		rec.Step(item.Capability, status, detail, r.Duration)
	}
	rec.Finish(string(result.Status), result.Value, result.Reason, 200, 150)

	run, err := db.GetRun(rec.RunID())
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run == nil {
		t.Fatal("GetRun() = nil, want recorded run")
	}
	if run.Kind != store.KindOrchestrate {
		t.Errorf("Kind = %q, want %q", run.Kind, store.KindOrchestrate)
	}
	if run.Status != string(orchestrator.StatusSucceeded) {
		t.Errorf("Status = %q, want %q", run.Status, orchestrator.StatusSucceeded)
	}
	if run.Value != "the synthesized answer" {
		t.Errorf("Value = %q, want the synthesized output", run.Value)
	}

	steps, err := db.ListSteps(rec.RunID())
	if err != nil {
		t.Fatalf("ListSteps() error = %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("len(steps) = %d, want one per work item", len(steps))
	}
	if steps[0].Name != "formal" || steps[1].Name != "concise" {
		t.Errorf("step names = [%s, %s], want plan order [formal, concise]", steps[0].Name, steps[1].Name)
	}
	for i, s := range steps {
		if s.Status != "succeeded" {
			t.Errorf("steps[%d].Status = %q, want %q", i, s.Status, "succeeded")
		}
	}
}
