// Package pipeline chains stages behind quality gates. A pipeline runs its
// steps in order, halts at the first stage failure or gate rejection, and
// reports a terminal status with a display-ready reason.
package pipeline

import (
	"context"
	"log"

	"github.com/ShayCichocki/cascade/internal/gate"
	"github.com/ShayCichocki/cascade/internal/stage"
)

// Status is the terminal state of a pipeline run.
type Status string

const (
	// StatusSucceeded means every stage ran and every gate passed.
	StatusSucceeded Status = "succeeded"
	// StatusFailedAtStage means a stage returned an error; its gate never ran.
	StatusFailedAtStage Status = "failed_at_stage"
	// StatusFailedAtGate means a stage succeeded but its gate rejected the output.
	StatusFailedAtGate Status = "failed_at_gate"
)

// Step pairs a stage with an optional gate over its output and an optional
// carry function that builds the next stage's vars from this stage's value.
type Step struct {
	Spec stage.Spec
	// Gate validates the stage's output. Nil means the output is accepted
	// as-is.
	Gate gate.Func
	// Carry derives the vars for the next stage from this stage's value.
	// Nil means the current vars flow through unchanged.
	Carry func(value any, vars stage.Vars) stage.Vars
}

// Result is the caller-facing outcome of a pipeline run.
type Result struct {
	Status Status
	// Step is the 1-based index of the step that decided the outcome;
	// zero when the pipeline succeeded.
	Step int
	// StepName names that step.
	StepName string
	// Value is the final stage's output when Status is StatusSucceeded.
	Value any
	// Reason explains a failure in display-ready form.
	Reason string
	// Gate carries the rejecting gate's full result when Status is
	// StatusFailedAtGate.
	Gate *gate.Result
	// Completed lists the steps that ran and passed their gates, in order.
	Completed []string
}

// StepEvent reports one step's resolution as a run progresses.
type StepEvent struct {
	// Step is the 1-based index of the resolved step.
	Step int
	// Steps is the pipeline's total step count.
	Steps int
	// Name is the step's stage name.
	Name string
	// Status is StatusSucceeded when the stage ran and its gate passed,
	// otherwise the failure status that ended the run.
	Status Status
	// Reason carries the failure reason for failed steps.
	Reason string
}

// Option configures a Pipeline. Use With* functions to create Options.
type Option func(*Pipeline)

// WithObserver sets a callback invoked as each step resolves. The callback
// runs on the pipeline's goroutine, so it must not block.
func WithObserver(fn func(StepEvent)) Option {
	return func(p *Pipeline) { p.observer = fn }
}

// Pipeline is a fixed sequence of gated steps.
type Pipeline struct {
	name     string
	runner   *stage.Runner
	steps    []Step
	observer func(StepEvent)
}

// New creates a pipeline with the given steps.
func New(name string, runner *stage.Runner, steps []Step, opts ...Option) *Pipeline {
	p := &Pipeline{name: name, runner: runner, steps: steps}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// observe notifies the observer, if any, of a resolved step.
func (p *Pipeline) observe(ev StepEvent) {
	if p.observer != nil {
		p.observer(ev)
	}
}

// Run executes the pipeline. Identical stage outputs always produce the
// identical terminal state: gates are pure, and no step after a failure
// ever runs.
func (p *Pipeline) Run(ctx context.Context, vars stage.Vars) Result {
	var completed []string
	var value any

	for i, step := range p.steps {
		log.Printf("[pipeline] %s: step %d/%d %s", p.name, i+1, len(p.steps), step.Spec.Name)

		out := p.runner.Run(ctx, step.Spec, vars)
		if out.Failed() {
			log.Printf("[pipeline] %s: step %s failed: %v", p.name, step.Spec.Name, out.Err)
			p.observe(StepEvent{Step: i + 1, Steps: len(p.steps), Name: step.Spec.Name, Status: StatusFailedAtStage, Reason: out.Err.Error()})
			return Result{
				Status:    StatusFailedAtStage,
				Step:      i + 1,
				StepName:  step.Spec.Name,
				Reason:    out.Err.Error(),
				Completed: completed,
			}
		}

		if step.Gate != nil {
			gr := step.Gate(out.Value)
			if !gr.Passed {
				log.Printf("[pipeline] %s: gate rejected %s: %s", p.name, step.Spec.Name, gr.Reason)
				p.observe(StepEvent{Step: i + 1, Steps: len(p.steps), Name: step.Spec.Name, Status: StatusFailedAtGate, Reason: gr.Reason})
				return Result{
					Status:    StatusFailedAtGate,
					Step:      i + 1,
					StepName:  step.Spec.Name,
					Reason:    gr.Reason,
					Gate:      &gr,
					Completed: completed,
				}
			}
		}

		value = out.Value
		completed = append(completed, step.Spec.Name)
		p.observe(StepEvent{Step: i + 1, Steps: len(p.steps), Name: step.Spec.Name, Status: StatusSucceeded})
		if step.Carry != nil {
			vars = step.Carry(out.Value, vars)
		}
	}

	log.Printf("[pipeline] %s: succeeded (%d steps)", p.name, len(p.steps))
	return Result{
		Status:    StatusSucceeded,
		Value:     value,
		Completed: completed,
	}
}
