package refine

import (
	"time"

	"github.com/ShayCichocki/cascade/internal/stage"
	"github.com/ShayCichocki/cascade/pkg/models"
)

// defaultGeneratorPrompt is the generator's role when the caller supplies
// no custom prompt.
const defaultGeneratorPrompt = `Your goal is to complete the task given to you. If there is feedback from your previous generations, reflect on it to improve your solution.

Provide the end result as well as the thought process behind it.`

// defaultEvaluatorPrompt is the evaluator's role when the caller supplies
// no custom prompt.
const defaultEvaluatorPrompt = `Evaluate the content you are given against the original task for:
1. correctness
2. completeness
3. style and best practices

Based on your judgement, give either a "PASS" or a "FAIL" as the evaluation. For a "FAIL", provide feedback on what to improve in order to reach a "PASS".`

// RequiredConfig contains the minimal required configuration for a Loop.
type RequiredConfig struct {
	// Runner executes the generate and evaluate stages.
	Runner *stage.Runner
}

// Option configures a Loop. Use With* functions to create Options.
type Option func(*loopOptions)

// loopOptions holds all optional configuration.
type loopOptions struct {
	maxIterations   int
	generatorTier   models.ModelTier
	evaluatorTier   models.ModelTier
	stageTimeout    time.Duration
	generatorPrompt string
	evaluatorPrompt string
	onIteration     func(Iteration)
}

// defaultOptions returns the option set used when no overrides are given.
func defaultOptions() *loopOptions {
	return &loopOptions{
		maxIterations:   3,
		generatorTier:   models.TierSonnet,
		evaluatorTier:   models.TierSonnet,
		generatorPrompt: defaultGeneratorPrompt,
		evaluatorPrompt: defaultEvaluatorPrompt,
	}
}

// WithMaxIterations bounds the number of generate/evaluate rounds.
func WithMaxIterations(n int) Option {
	return func(o *loopOptions) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithGeneratorTier sets the model tier for the generation stage.
func WithGeneratorTier(t models.ModelTier) Option {
	return func(o *loopOptions) { o.generatorTier = t }
}

// WithEvaluatorTier sets the model tier for the evaluation stage.
func WithEvaluatorTier(t models.ModelTier) Option {
	return func(o *loopOptions) { o.evaluatorTier = t }
}

// WithStageTimeout bounds each individual stage invocation.
func WithStageTimeout(d time.Duration) Option {
	return func(o *loopOptions) { o.stageTimeout = d }
}

// WithGeneratorPrompt replaces the default generator role prompt.
func WithGeneratorPrompt(prompt string) Option {
	return func(o *loopOptions) {
		if prompt != "" {
			o.generatorPrompt = prompt
		}
	}
}

// WithEvaluatorPrompt replaces the default evaluator role prompt.
func WithEvaluatorPrompt(prompt string) Option {
	return func(o *loopOptions) {
		if prompt != "" {
			o.evaluatorPrompt = prompt
		}
	}
}

// WithObserver registers a callback invoked after every completed round.
func WithObserver(fn func(Iteration)) Option {
	return func(o *loopOptions) { o.onIteration = fn }
}
