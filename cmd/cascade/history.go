package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cascade/internal/config"
	"github.com/ShayCichocki/cascade/internal/store"
)

var (
	historyKind       string
	historyLimit      int
	historyPurgeOlder string
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded runs and their step-by-step outcomes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		path := cfg.History.Path
		if path == "" {
			path = store.DefaultPath()
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println("No run history yet.")
			return nil
		}

		db, err := store.Open(path)
		if err != nil {
			return fmt.Errorf("open run history: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("migrate run history: %w", err)
		}

		if historyPurgeOlder != "" {
			age, err := time.ParseDuration(historyPurgeOlder)
			if err != nil {
				return fmt.Errorf("invalid --purge-older-than %q: %w", historyPurgeOlder, err)
			}
			purged, err := db.PurgeOldRuns(age)
			if err != nil {
				return err
			}
			fmt.Printf("Purged %d run(s) older than %s\n", purged, historyPurgeOlder)
			return nil
		}

		if len(args) == 1 {
			return showRun(db, args[0])
		}
		return listRuns(db)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "filter by workflow kind (brief, orchestrate, refine)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max runs to list")
	historyCmd.Flags().StringVar(&historyPurgeOlder, "purge-older-than", "", "delete runs older than this duration (e.g. 720h)")
}

func listRuns(db *store.DB) error {
	var kind *store.Kind
	if historyKind != "" {
		k := store.Kind(historyKind)
		kind = &k
	}

	runs, err := db.ListRuns(kind)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	if historyLimit > 0 && len(runs) > historyLimit {
		runs = runs[:historyLimit]
	}

	fmt.Printf("%-10s %-12s %-12s %-20s %s\n", "RUN", "KIND", "STATUS", "STARTED", "GOAL")
	for _, r := range runs {
		fmt.Printf("%-10s %-12s %-12s %-20s %s\n",
			truncate(r.ID, 10), r.Kind, r.Status,
			r.StartedAt.Format("2006-01-02 15:04:05"), truncate(r.Goal, 50))
	}
	return nil
}

func showRun(db *store.DB, id string) error {
	run, err := db.GetRun(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with ID %s", id)
	}

	fmt.Printf("Run %s (%s)\n", run.ID, run.Kind)
	fmt.Printf("  Goal:    %s\n", run.Goal)
	fmt.Printf("  Status:  %s\n", run.Status)
	fmt.Printf("  Started: %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if run.FinishedAt != nil {
		fmt.Printf("  Took:    %s\n", formatDuration(run.FinishedAt.Sub(run.StartedAt)))
	}
	if run.TokensIn > 0 || run.TokensOut > 0 {
		fmt.Printf("  Tokens:  %s in / %s out\n", formatNumber(run.TokensIn), formatNumber(run.TokensOut))
	}
	if run.Reason != "" {
		fmt.Printf("  Reason:  %s\n", run.Reason)
	}

	steps, err := db.ListSteps(run.ID)
	if err != nil {
		return err
	}
	if len(steps) > 0 {
		fmt.Println("\nSteps:")
		for _, s := range steps {
			line := fmt.Sprintf("  %d. %-24s %s", s.Seq, s.Name, s.Status)
			if s.Duration > 0 {
				line += fmt.Sprintf(" (%s)", formatDuration(s.Duration))
			}
			fmt.Println(line)
			if s.Detail != "" {
				fmt.Printf("     %s\n", truncate(s.Detail, 100))
			}
		}
	}

	if run.Value != "" {
		fmt.Printf("\n%s\n", run.Value)
	}
	return nil
}
