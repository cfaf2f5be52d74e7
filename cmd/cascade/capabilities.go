package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/cascade/internal/config"
)

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List the worker capabilities available for planning",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		reg, err := buildRegistry(cfg)
		if err != nil {
			return err
		}

		fmt.Printf("%d worker capabilities:\n\n", reg.Count())
		for _, c := range reg.All() {
			fmt.Printf("  %-16s %-7s %s\n", c.Name, c.Model, c.Description)
		}
		return nil
	},
}
