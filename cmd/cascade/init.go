package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/cascade/internal/config"
	"github.com/ShayCichocki/cascade/internal/registry"
	"github.com/ShayCichocki/cascade/pkg/models"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a cascade project",
	Long: `Initialize a directory for use with cascade.

This command sets up everything needed to run cascade:
  - Creates the .cascade directory structure
  - Creates a .cascade.yaml project config template
  - Creates .cascade/capabilities.yaml with the default worker capabilities

The directory argument is optional and defaults to the current directory.

Examples:
  cascade init              # Initialize current directory
  cascade init ./myproject  # Initialize specific directory
  cascade init --force      # Reinitialize even if already set up`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Reinitialize even if already set up")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", absPath, err)
	}

	fmt.Printf("Initializing cascade in %s...\n\n", absPath)

	cascadeDir := filepath.Join(absPath, ".cascade")
	if _, err := os.Stat(cascadeDir); err == nil && !initForce {
		fmt.Printf("Directory already initialized. Use --force to reinitialize.\n")
		return nil
	}

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		printStatus("⚠", "ANTHROPIC_API_KEY not set (you can set it later)", color.FgYellow)
	} else {
		printStatus("✓", "ANTHROPIC_API_KEY is set", color.FgGreen)
	}

	sigDir := filepath.Join(cascadeDir, "signals")
	if err := os.MkdirAll(sigDir, 0755); err != nil {
		return fmt.Errorf("creating .cascade directory: %w", err)
	}
	printStatus("✓", "Created .cascade directory structure", color.FgGreen)

	if err := createProjectConfig(absPath); err != nil {
		return fmt.Errorf("creating project config: %w", err)
	}
	printStatus("✓", "Created .cascade.yaml template", color.FgGreen)

	if err := createCapabilitiesFile(cascadeDir); err != nil {
		return fmt.Errorf("creating capabilities file: %w", err)
	}
	printStatus("✓", "Created .cascade/capabilities.yaml with default capabilities", color.FgGreen)

	fmt.Printf("\n%s cascade initialization complete!\n\n", color.GreenString("✓"))
	fmt.Println("Next steps:")
	if apiKey == "" {
		fmt.Println("  1. Set your API key:")
		fmt.Println("     export ANTHROPIC_API_KEY=your-key-here")
		fmt.Println()
	}
	fmt.Println("  2. Run cascade:")
	fmt.Println("     cascade orchestrate \"your goal here\"")
	fmt.Println("     # or: cascade (for interactive mode)")
	fmt.Println()
	fmt.Println("  3. Learn more:")
	fmt.Println("     cascade --help")

	return nil
}

// createProjectConfig creates the .cascade.yaml template
func createProjectConfig(repoPath string) error {
	configPath := filepath.Join(repoPath, ".cascade.yaml")

	// Check if already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil // Already exists, don't overwrite
	}

	template := `# cascade Project Configuration
# This file overrides defaults from ~/.config/cascade/config.yaml

# models:
#   planner: sonnet
#   worker: haiku
#   synthesizer: sonnet
#   generator: sonnet
#   evaluator: sonnet
#   summarizer: sonnet

# defaults:
#   max_workers: 4
#   max_iterations: 3
#   stage_timeout: 2m

# history:
#   enabled: true

# registry:
#   path: .cascade/capabilities.yaml
`

	return os.WriteFile(configPath, []byte(template), 0644)
}

// createCapabilitiesFile writes the default worker capabilities so the
// planner's vocabulary can be edited per project.
func createCapabilitiesFile(cascadeDir string) error {
	capsPath := filepath.Join(cascadeDir, "capabilities.yaml")

	// Check if already exists
	if _, err := os.Stat(capsPath); err == nil {
		return nil // Already exists, don't overwrite
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	tier := config.Tier(cfg.Models.Worker)

	caps := registry.Defaults().All()
	for i := range caps {
		caps[i].Model = tier
	}

	data, err := yaml.Marshal(struct {
		Capabilities []models.Capability `yaml:"capabilities"`
	}{Capabilities: caps})
	if err != nil {
		return fmt.Errorf("marshaling capabilities: %w", err)
	}

	return os.WriteFile(capsPath, data, 0644)
}
