package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cascade/internal/config"
	"github.com/ShayCichocki/cascade/internal/gateway"
	"github.com/ShayCichocki/cascade/internal/orchestrator"
	"github.com/ShayCichocki/cascade/internal/store"
)

var (
	orchestrateWorkers int
	orchestrateTUI     bool
)

var orchestrateCmd = &cobra.Command{
	Use:   "orchestrate <goal>",
	Short: "Plan a goal into work items and run them concurrently",
	Long: `Orchestrate asks the planner to decompose a goal into capability-tagged
work items, dispatches them to concurrent workers, and synthesizes the
worker outputs into one answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goal := strings.Join(args, " ")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		workers := orchestrateWorkers
		if workers <= 0 {
			workers = cfg.Defaults.MaxWorkers
		}

		if orchestrateTUI {
			return runOrchestrateTUI(cfg, goal, workers)
		}
		return runOrchestrateHeadless(cfg, goal, workers)
	},
}

func init() {
	orchestrateCmd.Flags().IntVar(&orchestrateWorkers, "workers", 0, "max concurrent workers (default from config)")
	orchestrateCmd.Flags().BoolVar(&orchestrateTUI, "tui", false, "run with the interactive terminal UI")
}

func runOrchestrateHeadless(cfg *config.Config, goal string, workers int) error {
	runner, client, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := runContext()
	defer cancel()
	ctx, stopWatch, _ := watchSignals(ctx)
	defer stopWatch()

	db := openHistory(cfg)
	defer closeHistory(db)
	rec := store.Begin(db, store.KindOrchestrate, goal)

	emitter := orchestrator.NewEventEmitter(64)
	orch := orchestrator.New(orchestrator.RequiredConfig{Runner: runner, Registry: reg},
		orchestrator.WithMaxWorkers(workers),
		orchestrator.WithPlannerTier(config.Tier(cfg.Models.Planner)),
		orchestrator.WithSynthesizerTier(config.Tier(cfg.Models.Synthesizer)),
		orchestrator.WithStageTimeout(cfg.Defaults.StageTimeout),
		orchestrator.WithEmitter(emitter),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range emitter.Events() {
			printOrchestratorEvent(ev)
		}
	}()

	fmt.Printf("Orchestrating: %s (up to %d workers)\n\n", goal, workers)
	result := orch.Run(ctx, goal)
	emitter.Close()
	<-done

	recordOrchestration(rec, client, result)
	printOrchestrateResult(result)
	printTokenUsage(client)

	if result.Status != orchestrator.StatusSucceeded {
		return fmt.Errorf("orchestration failed: %s", result.Reason)
	}
	return nil
}

// printOrchestratorEvent prints one lifecycle event as a progress line.
func printOrchestratorEvent(ev orchestrator.Event) {
	switch ev.Type {
	case orchestrator.EventPlanningStarted:
		fmt.Println("  planning...")
	case orchestrator.EventPlanningComplete:
		fmt.Printf("  plan ready: %s\n", ev.Message)
	case orchestrator.EventWorkerStarted:
		fmt.Printf("  [%s] %s started\n", ev.ItemID, ev.Capability)
	case orchestrator.EventWorkerCompleted:
		fmt.Printf("  [%s] %s %s (%s)\n", ev.ItemID, ev.Capability, color.GreenString("done"), formatDuration(ev.Duration))
	case orchestrator.EventWorkerFailed:
		fmt.Printf("  [%s] %s %s: %s\n", ev.ItemID, ev.Capability, color.RedString("failed"), ev.Message)
	case orchestrator.EventSynthesisStarted:
		fmt.Printf("  synthesizing (%s)...\n", ev.Message)
	}
}

// recordOrchestration writes per-item steps and the final verdict to the
// run history. Safe on a nil recorder.
func recordOrchestration(rec *store.Recorder, client *gateway.Client, result orchestrator.Result) {
	for i, item := range result.Items {
		if i >= len(result.Results) {
			break
		}
		r := result.Results[i]
		if r.Succeeded {
			rec.Step(item.Capability, "succeeded", item.Description, r.Duration)
		} else {
			rec.Step(item.Capability, "failed", r.Error, r.Duration)
		}
	}
	in, out := client.Tracker().Total()
	rec.Finish(string(result.Status), result.Value, result.Reason, int(in), int(out))
}

func printOrchestrateResult(result orchestrator.Result) {
	fmt.Println()
	if result.Status == orchestrator.StatusSucceeded {
		printStatus("✓", fmt.Sprintf("Run complete in %s", formatDuration(result.Duration)), color.FgGreen)
		fmt.Printf("\n%s\n", result.Value)
		return
	}
	printStatus("✗", fmt.Sprintf("Run failed: %s", result.Reason), color.FgRed)
	for _, r := range result.Results {
		if !r.Succeeded && r.Error != "" {
			fmt.Printf("  [%s] %s: %s\n", r.ItemID, r.Capability, r.Error)
		}
	}
}
