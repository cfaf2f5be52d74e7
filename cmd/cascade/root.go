package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cascade/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "cascade",
	Short: "Checked LLM workflows from your terminal",
	Long: `Cascade chains model calls into checked workflows: staged pipelines
with quality gates, parallel fan-out with synthesis, and a bounded
generate/evaluate refinement loop.

With no arguments, launches the TUI where you can type a goal and watch
workers execute in parallel.

Core workflows:
- brief: extract and summarize a document through gated stages
- orchestrate: plan a goal, fan out to parallel workers, synthesize
- refine: iterate on a task until an evaluator accepts the result`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return runOrchestrateTUI(cfg, "", cfg.Defaults.MaxWorkers)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(briefCmd)
	rootCmd.AddCommand(orchestrateCmd)
	rootCmd.AddCommand(refineCmd)
	rootCmd.AddCommand(capabilitiesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(versionCmd)
}
