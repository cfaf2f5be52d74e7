package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cascade/internal/config"
	"github.com/ShayCichocki/cascade/internal/refine"
	"github.com/ShayCichocki/cascade/internal/store"
)

var refineMaxIterations int

var refineCmd = &cobra.Command{
	Use:   "refine <task>",
	Short: "Generate an answer and improve it through evaluator feedback",
	Long: `Refine runs a generate/evaluate loop: a generator drafts an answer, an
evaluator judges it, and rejected drafts are regenerated with the
evaluator's feedback until one passes or the iteration budget runs out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRefine(strings.Join(args, " "))
	},
}

func init() {
	refineCmd.Flags().IntVar(&refineMaxIterations, "max-iterations", 0, "iteration budget (default from config)")
}

func runRefine(task string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	maxIterations := refineMaxIterations
	if maxIterations <= 0 {
		maxIterations = cfg.Defaults.MaxIterations
	}

	runner, client, err := buildRunner(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := runContext()
	defer cancel()
	ctx, stopWatch, sigs := watchSignals(ctx)
	defer stopWatch()

	db := openHistory(cfg)
	defer closeHistory(db)
	rec := store.Begin(db, store.KindRefine, task)

	loop := refine.New(refine.RequiredConfig{Runner: runner},
		refine.WithMaxIterations(maxIterations),
		refine.WithGeneratorTier(config.Tier(cfg.Models.Generator)),
		refine.WithEvaluatorTier(config.Tier(cfg.Models.Evaluator)),
		refine.WithStageTimeout(cfg.Defaults.StageTimeout),
		refine.WithObserver(func(it refine.Iteration) {
			verdict := color.GreenString("pass")
			status := "passed"
			if !it.Passed {
				verdict = color.YellowString("needs work")
				status = "rejected"
			}
			fmt.Printf("  attempt %d: %s\n", it.Attempt, verdict)
			if !it.Passed && it.Feedback != "" {
				fmt.Printf("    feedback: %s\n", truncate(it.Feedback, 100))
			}
			rec.Step(fmt.Sprintf("attempt %d", it.Attempt), status, it.Feedback, 0)
			if sigs != nil {
				sigs.HoldWhilePaused(ctx, time.Second)
			}
		}),
	)

	fmt.Printf("Refining (budget %d): %s\n\n", maxIterations, task)
	result, err := loop.Run(ctx, task)
	in, out := client.Tracker().Total()

	if err != nil {
		rec.Finish("failed", "", err.Error(), int(in), int(out))
		fmt.Println()
		printStatus("✗", fmt.Sprintf("Refinement failed: %v", err), color.FgRed)
		printTokenUsage(client)
		return err
	}

	rec.Finish(string(result.Status), result.Value, "", int(in), int(out))

	fmt.Println()
	if result.Status == refine.StatusPassed {
		printStatus("✓", fmt.Sprintf("Accepted after %d attempt(s) in %s",
			len(result.History), formatDuration(result.Duration)), color.FgGreen)
	} else {
		printStatus("⚠", fmt.Sprintf("Iteration budget exhausted after %d attempts; best effort follows",
			len(result.History)), color.FgYellow)
	}
	fmt.Printf("\n%s\n", result.Value)
	printTokenUsage(client)
	return nil
}
