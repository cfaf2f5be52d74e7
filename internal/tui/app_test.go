package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/cascade/internal/orchestrator"
)

func TestNew(t *testing.T) {
	app := New(0)

	if app == nil {
		t.Fatal("New returned nil")
	}
	if app.phase != PhaseInput {
		t.Errorf("phase = %d, want PhaseInput", app.phase)
	}
	if app.workers == nil {
		t.Error("workers should not be nil")
	}
	if app.refresh != 100*time.Millisecond {
		t.Errorf("refresh = %v, want default 100ms", app.refresh)
	}
}

func TestApp_Update_CtrlC(t *testing.T) {
	app := New(0)

	msg := tea.KeyMsg{Type: tea.KeyCtrlC}
	model, cmd := app.Update(msg)

	updated := model.(*App)
	if !updated.quitting {
		t.Error("quitting should be true after Ctrl+C")
	}
	if cmd == nil {
		t.Error("Expected quit command")
	}
}

func TestApp_Update_WindowSize(t *testing.T) {
	app := New(0)

	msg := tea.WindowSizeMsg{Width: 120, Height: 40}
	model, _ := app.Update(msg)

	updated := model.(*App)
	if updated.width != 120 {
		t.Errorf("width = %d, want 120", updated.width)
	}
	if updated.height != 40 {
		t.Errorf("height = %d, want 40", updated.height)
	}
}

func TestApp_Update_EnterProducesGoalMsg(t *testing.T) {
	app := New(0)
	app.input.SetValue("summarize recent changes")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Enter with text should produce a command")
	}

	msg := cmd()
	submitted, ok := msg.(GoalSubmittedMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want GoalSubmittedMsg", msg)
	}
	if submitted.Goal != "summarize recent changes" {
		t.Errorf("Goal = %q, want %q", submitted.Goal, "summarize recent changes")
	}
}

func TestApp_Update_EnterEmptyInput(t *testing.T) {
	app := New(0)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("Enter with empty input should not produce a command")
	}
}

func TestApp_Update_GoalSubmitted(t *testing.T) {
	app := New(0)

	var received string
	app.SetGoalHandler(func(goal string) {
		received = goal
	})

	model, cmd := app.Update(GoalSubmittedMsg{Goal: "test goal"})

	updated := model.(*App)
	if updated.phase != PhaseRunning {
		t.Errorf("phase = %d, want PhaseRunning", updated.phase)
	}
	if received != "test goal" {
		t.Errorf("handler received %q, want %q", received, "test goal")
	}
	if cmd == nil {
		t.Error("Expected tick command after goal submission")
	}
}

func TestApp_Update_GoalSubmitted_NoHandler(t *testing.T) {
	app := New(0)

	// Should not panic
	_, _ = app.Update(GoalSubmittedMsg{Goal: "test goal"})
}

func TestApp_Update_QuitKeysByPhase(t *testing.T) {
	qKey := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}

	app := New(0)
	model, _ := app.Update(qKey)
	if model.(*App).quitting {
		t.Error("q during input phase should type, not quit")
	}

	app = New(0)
	app.phase = PhaseRunning
	model, _ = app.Update(qKey)
	if !model.(*App).quitting {
		t.Error("q during running phase should quit")
	}
}

func TestApp_Update_EventsUpdateStatusAndRows(t *testing.T) {
	app := New(0)
	app.phase = PhaseRunning

	app.Update(EventMsg{Type: orchestrator.EventPlanningComplete, Message: "2 work items"})
	if app.status != "Dispatching 2 work items" {
		t.Errorf("status = %q, want %q", app.status, "Dispatching 2 work items")
	}

	app.Update(EventMsg{
		Type:       orchestrator.EventWorkerStarted,
		ItemID:     "item-1",
		Capability: "research",
		Message:    "Find recent changes",
		Timestamp:  time.Now(),
	})

	rows := app.workers.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Capability != "research" {
		t.Errorf("Capability = %q, want %q", rows[0].Capability, "research")
	}

	app.Update(EventMsg{Type: orchestrator.EventSynthesisStarted, Message: "2 of 2 workers succeeded"})
	if !strings.Contains(app.status, "Synthesizing") {
		t.Errorf("status = %q, want synthesis status", app.status)
	}
}

func TestApp_Update_RunDone(t *testing.T) {
	app := New(0)
	app.phase = PhaseRunning

	result := orchestrator.Result{
		Status:   orchestrator.StatusSucceeded,
		Value:    "final synthesis",
		Duration: 3 * time.Second,
	}
	model, _ := app.Update(RunDoneMsg{Result: result})

	updated := model.(*App)
	if updated.phase != PhaseDone {
		t.Errorf("phase = %d, want PhaseDone", updated.phase)
	}
	if updated.result.Value != "final synthesis" {
		t.Errorf("result.Value = %q, want %q", updated.result.Value, "final synthesis")
	}
}

func TestApp_View_InputPhase(t *testing.T) {
	app := New(0)

	view := app.View()
	if !strings.Contains(view, "cascade") {
		t.Error("input view should contain the app title")
	}
	if !strings.Contains(view, "Enter to start") {
		t.Error("input view should contain help text")
	}
}

func TestApp_View_DonePhase(t *testing.T) {
	app := New(0)
	app.phase = PhaseDone
	app.goal = "test goal"
	app.result = orchestrator.Result{
		Status:   orchestrator.StatusSucceeded,
		Value:    "the synthesized answer",
		Duration: 2 * time.Second,
	}

	view := app.View()
	if !strings.Contains(view, "Run complete") {
		t.Error("done view should contain success banner")
	}
	if !strings.Contains(view, "the synthesized answer") {
		t.Error("done view should contain the synthesis")
	}
}

func TestApp_View_DonePhaseFailed(t *testing.T) {
	app := New(0)
	app.phase = PhaseDone
	app.result = orchestrator.Result{
		Status: orchestrator.StatusPlanningFailed,
		Reason: "planning failed: model unavailable",
	}

	view := app.View()
	if !strings.Contains(view, "Run failed") {
		t.Error("done view should contain failure banner")
	}
	if !strings.Contains(view, "model unavailable") {
		t.Error("done view should contain the failure reason")
	}
}

func TestApp_View_Quitting(t *testing.T) {
	app := New(0)
	app.quitting = true

	if got := app.View(); got != "Goodbye!\n" {
		t.Errorf("View() = %q, want %q", got, "Goodbye!\n")
	}
}
