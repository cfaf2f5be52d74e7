// Package refine runs a bounded generate/evaluate feedback loop. Each
// round a generator produces a candidate, an evaluator judges it and
// returns improvement feedback, and the next round's prompt carries all
// previous attempts plus the most recent feedback. The loop ends on a pass
// or when the iteration budget runs out; exhaustion is a reported outcome,
// not an error, and the caller decides whether the best effort is usable.
package refine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ShayCichocki/cascade/internal/gateway"
	"github.com/ShayCichocki/cascade/internal/stage"
	"github.com/ShayCichocki/cascade/pkg/models"
)

// Status is the terminal state of a refinement run.
type Status string

const (
	// StatusPassed means the evaluator accepted a candidate.
	StatusPassed Status = "passed"
	// StatusExhausted means the iteration budget ran out; Value holds the
	// last generated candidate.
	StatusExhausted Status = "exhausted"
)

const (
	evalPass = "PASS"
	evalFail = "FAIL"
)

// Iteration records one generate/evaluate round. History is append-only
// and ordered by attempt.
type Iteration struct {
	// Attempt is the 1-based round number.
	Attempt int
	// Value is the generated candidate.
	Value string
	// Thoughts is the generator's reasoning for this candidate.
	Thoughts string
	// Feedback is the evaluator's improvement guidance for this candidate.
	Feedback string
	// Passed reports the evaluator's verdict on this candidate.
	Passed bool
}

// Result is the caller-facing outcome of a refinement run.
type Result struct {
	Status Status
	// Value is the accepted candidate on StatusPassed, or the last
	// generated candidate on StatusExhausted.
	Value string
	// History holds every round in order, for audit.
	History []Iteration
	// Duration is the total wall-clock time of the run.
	Duration time.Duration
}

// generation is the generator's structured output.
type generation struct {
	Thoughts string `json:"thoughts"`
	Result   string `json:"result"`
}

func (g *generation) Validate() error {
	if strings.TrimSpace(g.Result) == "" {
		return errors.New("result is required")
	}
	return nil
}

// evaluation is the evaluator's structured output.
type evaluation struct {
	Eval     string `json:"eval"`
	Feedback string `json:"feedback"`
}

func (e *evaluation) Validate() error {
	switch e.Eval {
	case evalPass, evalFail:
	default:
		return fmt.Errorf("eval must be %s or %s, got %q", evalPass, evalFail, e.Eval)
	}
	if e.Eval == evalFail && strings.TrimSpace(e.Feedback) == "" {
		return errors.New("feedback is required for a FAIL")
	}
	return nil
}

func (e *evaluation) passed() bool {
	return e.Eval == evalPass
}

// Loop drives the generate/evaluate cycle for one task at a time.
type Loop struct {
	runner          *stage.Runner
	maxIterations   int
	generatorTier   models.ModelTier
	evaluatorTier   models.ModelTier
	stageTimeout    time.Duration
	generatorPrompt string
	evaluatorPrompt string
	onIteration     func(Iteration)
}

// New creates a Loop from required configuration plus options.
func New(req RequiredConfig, opts ...Option) *Loop {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Loop{
		runner:          req.Runner,
		maxIterations:   options.maxIterations,
		generatorTier:   options.generatorTier,
		evaluatorTier:   options.evaluatorTier,
		stageTimeout:    options.stageTimeout,
		generatorPrompt: options.generatorPrompt,
		evaluatorPrompt: options.evaluatorPrompt,
		onIteration:     options.onIteration,
	}
}

// Run executes the feedback loop for a task. A stage failure (the gateway
// could not produce a usable generation or evaluation) aborts the run with
// an error carrying the completed history; pass and exhaustion are both
// reported in the Result.
func (l *Loop) Run(ctx context.Context, task string) (Result, error) {
	start := time.Now()
	var history []Iteration

	for attempt := 1; attempt <= l.maxIterations; attempt++ {
		log.Printf("[refine] attempt %d/%d", attempt, l.maxIterations)

		gen, err := l.generate(ctx, task, buildContext(history))
		if err != nil {
			return Result{History: history, Duration: time.Since(start)},
				fmt.Errorf("generate attempt %d: %w", attempt, err)
		}

		verdict, err := l.evaluate(ctx, task, gen.Result)
		if err != nil {
			return Result{History: history, Duration: time.Since(start)},
				fmt.Errorf("evaluate attempt %d: %w", attempt, err)
		}

		iteration := Iteration{
			Attempt:  attempt,
			Value:    gen.Result,
			Thoughts: gen.Thoughts,
			Feedback: verdict.Feedback,
			Passed:   verdict.passed(),
		}
		history = append(history, iteration)
		if l.onIteration != nil {
			l.onIteration(iteration)
		}

		if verdict.passed() {
			log.Printf("[refine] passed on attempt %d", attempt)
			return Result{
				Status:   StatusPassed,
				Value:    gen.Result,
				History:  history,
				Duration: time.Since(start),
			}, nil
		}
		log.Printf("[refine] attempt %d rejected: %s", attempt, verdict.Feedback)
	}

	log.Printf("[refine] iteration budget exhausted after %d attempts", l.maxIterations)
	return Result{
		Status:   StatusExhausted,
		Value:    history[len(history)-1].Value,
		History:  history,
		Duration: time.Since(start),
	}, nil
}

// buildContext renders all previous attempt values plus the most recent
// feedback for the next generation prompt. Feedback from older rounds is
// never re-surfaced; only the latest guidance steers the next attempt.
func buildContext(history []Iteration) string {
	if len(history) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Previous attempts:\n")
	for _, it := range history {
		fmt.Fprintf(&b, "- %s\n", it.Value)
	}
	fmt.Fprintf(&b, "\nFeedback: %s\n\n", history[len(history)-1].Feedback)
	return b.String()
}

func (l *Loop) generate(ctx context.Context, task, context string) (*generation, error) {
	spec := stage.Spec{
		Name:     "generate",
		Model:    l.generatorTier,
		System:   l.generatorPrompt,
		Template: generatePrompt(task, context),
		Timeout:  l.stageTimeout,
		New:      func() gateway.Validatable { return &generation{} },
	}

	out := l.runner.Run(ctx, spec, nil)
	if out.Failed() {
		return nil, out.Err
	}
	return out.Value.(*generation), nil
}

func (l *Loop) evaluate(ctx context.Context, task, content string) (*evaluation, error) {
	spec := stage.Spec{
		Name:     "evaluate",
		Model:    l.evaluatorTier,
		System:   l.evaluatorPrompt,
		Template: evaluatePrompt(task, content),
		Timeout:  l.stageTimeout,
		New:      func() gateway.Validatable { return &evaluation{} },
	}

	out := l.runner.Run(ctx, spec, nil)
	if out.Failed() {
		return nil, out.Err
	}
	return out.Value.(*evaluation), nil
}

func generatePrompt(task, context string) string {
	var b strings.Builder
	if context != "" {
		b.WriteString(context)
	}
	fmt.Fprintf(&b, "Task: %s\n\n", task)
	b.WriteString(`Return ONLY a JSON object with this exact structure (no other text):
{"thoughts": "your thought process", "result": "your final result"}`)
	return b.String()
}

func evaluatePrompt(task, content string) string {
	return fmt.Sprintf(`Original task: %s

Content to evaluate:
%s

Return ONLY a JSON object with this exact structure (no other text):
{"eval": "PASS or FAIL", "feedback": "how to improve, when FAIL"}`, task, content)
}
