package orchestrator

import (
	"time"

	"github.com/ShayCichocki/cascade/internal/registry"
	"github.com/ShayCichocki/cascade/internal/stage"
	"github.com/ShayCichocki/cascade/pkg/models"
)

// RequiredConfig contains the minimal required configuration for an
// Orchestrator. All fields are required and have no defaults.
type RequiredConfig struct {
	// Runner executes the planning, worker, and synthesis stages.
	Runner *stage.Runner
	// Registry holds the worker capabilities available to the planner.
	Registry *registry.Registry
}

// Option configures an Orchestrator. Use With* functions to create Options.
type Option func(*orchestratorOptions)

// orchestratorOptions holds all optional configuration.
type orchestratorOptions struct {
	maxWorkers      int
	plannerTier     models.ModelTier
	synthesizerTier models.ModelTier
	stageTimeout    time.Duration
	emitter         *EventEmitter
}

// defaultOptions returns the option set used when no overrides are given.
func defaultOptions() *orchestratorOptions {
	return &orchestratorOptions{
		maxWorkers:      4,
		plannerTier:     models.TierSonnet,
		synthesizerTier: models.TierSonnet,
	}
}

// WithMaxWorkers sets the maximum number of concurrently running workers.
func WithMaxWorkers(n int) Option {
	return func(o *orchestratorOptions) {
		if n > 0 {
			o.maxWorkers = n
		}
	}
}

// WithPlannerTier sets the model tier for the planning stage.
func WithPlannerTier(t models.ModelTier) Option {
	return func(o *orchestratorOptions) { o.plannerTier = t }
}

// WithSynthesizerTier sets the model tier for the synthesis stage.
func WithSynthesizerTier(t models.ModelTier) Option {
	return func(o *orchestratorOptions) { o.synthesizerTier = t }
}

// WithStageTimeout bounds each individual stage invocation.
func WithStageTimeout(d time.Duration) Option {
	return func(o *orchestratorOptions) { o.stageTimeout = d }
}

// WithEmitter sets the event emitter subscribers receive progress from.
func WithEmitter(e *EventEmitter) Option {
	return func(o *orchestratorOptions) { o.emitter = e }
}
