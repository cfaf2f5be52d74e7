package main

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/cascade/internal/config"
	"github.com/ShayCichocki/cascade/internal/orchestrator"
	"github.com/ShayCichocki/cascade/internal/store"
	"github.com/ShayCichocki/cascade/internal/tui"
)

// runOrchestrateTUI runs an orchestration behind the interactive terminal
// UI. With a non-empty goal the run starts immediately; otherwise the UI
// collects the goal first.
func runOrchestrateTUI(cfg *config.Config, goal string, workers int) (retErr error) {
	// Suppress log output while the TUI is active (it corrupts the display)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("PANIC in runOrchestrateTUI: %v", r)
		}
	}()

	runner, client, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx, stopWatch, _ := watchSignals(ctx)
	defer stopWatch()

	db := openHistory(cfg)
	defer closeHistory(db)

	program, app := tui.NewProgram(cfg.TUI.RefreshRate)
	if program == nil {
		return fmt.Errorf("failed to create TUI program (nil)")
	}

	// The handler fires on the update loop, so the run itself moves to its
	// own goroutine and reports back through program.Send.
	app.SetGoalHandler(func(goal string) {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					program.Send(tui.RunDoneMsg{Result: orchestrator.Result{
						Status: orchestrator.StatusPlanningFailed,
						Goal:   goal,
						Reason: fmt.Sprintf("PANIC in orchestrator: %v", r),
					}})
				}
			}()

			emitter := orchestrator.NewEventEmitter(64)
			orch := orchestrator.New(orchestrator.RequiredConfig{Runner: runner, Registry: reg},
				orchestrator.WithMaxWorkers(workers),
				orchestrator.WithPlannerTier(config.Tier(cfg.Models.Planner)),
				orchestrator.WithSynthesizerTier(config.Tier(cfg.Models.Synthesizer)),
				orchestrator.WithStageTimeout(cfg.Defaults.StageTimeout),
				orchestrator.WithEmitter(emitter),
			)

			forwardDone := make(chan struct{})
			go func() {
				defer close(forwardDone)
				forwardEventsToTUI(program, emitter.Events())
			}()

			rec := store.Begin(db, store.KindOrchestrate, goal)
			result := orch.Run(ctx, goal)
			emitter.Close()
			<-forwardDone

			recordOrchestration(rec, client, result)
			program.Send(tui.RunDoneMsg{Result: result})
		}()
	})

	// A preset goal skips the input phase. Send must wait for the program
	// loop, so it runs on its own goroutine.
	if goal != "" {
		go program.Send(tui.GoalSubmittedMsg{Goal: goal})
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	printTokenUsage(client)
	return nil
}

// forwardEventsToTUI converts orchestrator events to TUI messages.
func forwardEventsToTUI(program *tea.Program, events <-chan orchestrator.Event) {
	for event := range events {
		program.Send(tui.EventMsg(event))
	}
}
