package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cascade/internal/briefing"
	"github.com/ShayCichocki/cascade/internal/config"
	"github.com/ShayCichocki/cascade/internal/corpus"
	"github.com/ShayCichocki/cascade/internal/gate"
	"github.com/ShayCichocki/cascade/internal/pipeline"
	"github.com/ShayCichocki/cascade/internal/store"
)

var briefList bool

var briefCmd = &cobra.Command{
	Use:   "brief [content-id]",
	Short: "Summarize a content item through the gated briefing workflow",
	Long: `Brief extracts a content item from the built-in corpus, checks the
extraction, summarizes it through the model, and checks the summary.
Run without arguments (or with --list) to see the available content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if briefList || len(args) == 0 {
			listCorpus()
			return nil
		}
		return runBrief(args[0])
	},
}

func init() {
	briefCmd.Flags().BoolVar(&briefList, "list", false, "list available content and exit")
}

func listCorpus() {
	repo := corpus.NewStore()
	stats := repo.Stats()
	fmt.Printf("%d articles, %d documents, ~%s words\n\n",
		stats.Articles, stats.Documents, formatNumber(stats.Words))
	for _, item := range repo.List() {
		fmt.Printf("  %-14s %-9s %-10s %s\n", item.ID, item.Kind, item.Format, item.Title)
	}
	fmt.Println("\nRun 'cascade brief <id>' to generate a briefing.")
}

func runBrief(contentID string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runner, client, err := buildRunner(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := runContext()
	defer cancel()
	ctx, stopWatch, _ := watchSignals(ctx)
	defer stopWatch()

	db := openHistory(cfg)
	defer closeHistory(db)
	rec := store.Begin(db, store.KindBrief, contentID)

	briefer := briefing.New(runner, corpus.NewStore(),
		briefing.WithSummarizerTier(config.Tier(cfg.Models.Summarizer)),
		briefing.WithStageTimeout(cfg.Defaults.StageTimeout),
		briefing.WithObserver(func(ev pipeline.StepEvent) {
			printStepEvent(ev)
			rec.Step(ev.Name, string(ev.Status), ev.Reason, 0)
		}),
	)

	fmt.Printf("Briefing %s...\n\n", contentID)
	start := time.Now()
	b, result := briefer.Brief(ctx, contentID)
	in, out := client.Tracker().Total()

	if b == nil {
		rec.Finish(string(result.Status), "", result.Reason, int(in), int(out))
		fmt.Println()
		printStatus("✗", fmt.Sprintf("Briefing failed at %s: %s", result.StepName, result.Reason), color.FgRed)
		printGateChecks(result.Gate)
		printTokenUsage(client)
		return fmt.Errorf("briefing failed: %s", result.Reason)
	}

	rec.Finish(string(result.Status), b.Summary.Summary, "", int(in), int(out))

	fmt.Println()
	printStatus("✓", fmt.Sprintf("Briefing ready: %s (%s)", b.Title, formatDuration(time.Since(start))), color.FgGreen)
	fmt.Printf("\n%s\n", b.Summary.Summary)
	if len(b.Summary.KeyPoints) > 0 {
		fmt.Println("\nKey points:")
		for _, p := range b.Summary.KeyPoints {
			fmt.Printf("  - %s\n", p)
		}
	}
	printTokenUsage(client)
	return nil
}

// printStepEvent prints one pipeline step as it resolves.
func printStepEvent(ev pipeline.StepEvent) {
	switch ev.Status {
	case pipeline.StatusSucceeded:
		fmt.Printf("  [%d/%d] %-12s %s\n", ev.Step, ev.Steps, ev.Name, color.GreenString("ok"))
	case pipeline.StatusFailedAtStage:
		fmt.Printf("  [%d/%d] %-12s %s: %s\n", ev.Step, ev.Steps, ev.Name, color.RedString("error"), ev.Reason)
	case pipeline.StatusFailedAtGate:
		fmt.Printf("  [%d/%d] %-12s %s: %s\n", ev.Step, ev.Steps, ev.Name, color.RedString("rejected"), ev.Reason)
	}
}

// printGateChecks lists a rejecting gate's per-check verdicts.
func printGateChecks(gr *gate.Result) {
	if gr == nil || len(gr.Checks) == 0 {
		return
	}
	names := make([]string, 0, len(gr.Checks))
	for name := range gr.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if gr.Checks[name] {
			fmt.Printf("    %s %s\n", color.GreenString("✓"), name)
		} else {
			fmt.Printf("    %s %s\n", color.RedString("✗"), name)
		}
	}
}
