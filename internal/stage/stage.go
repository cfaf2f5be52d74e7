// Package stage executes single units of work and normalizes their
// outcomes. A stage is either a model call through the gateway (plain text
// or schema-validated) or a deterministic local computation; either way the
// caller receives exactly one of a value or an error, never both.
package stage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ShayCichocki/cascade/internal/gateway"
	"github.com/ShayCichocki/cascade/pkg/models"
)

// Vars carries the named values substituted into a stage's prompt template.
type Vars map[string]string

// Spec describes one stage. Exactly one execution mode applies: Local when
// set, otherwise a structured gateway call when New is set, otherwise a
// plain-text gateway call.
type Spec struct {
	// Name identifies the stage in logs, failures, and pipeline results.
	Name string
	// Model selects the capability tier for gateway stages.
	Model models.ModelTier
	// System is the system prompt for gateway stages.
	System string
	// Template is the prompt template; {name} placeholders are replaced
	// from Vars at run time.
	Template string
	// MaxTokens caps the response length. Zero means the gateway default.
	MaxTokens int64
	// Timeout bounds the stage's wait. Zero means no stage-level bound.
	Timeout time.Duration
	// New allocates the structured-output target for this stage. The
	// gateway decodes and validates the response into it.
	New func() gateway.Validatable
	// Local runs a deterministic computation instead of a gateway call.
	Local func(ctx context.Context, vars Vars) (any, error)
}

// Render substitutes {name} placeholders in the template from vars.
func (s Spec) Render(vars Vars) string {
	prompt := s.Template
	for k, v := range vars {
		prompt = strings.ReplaceAll(prompt, "{"+k+"}", v)
	}
	return prompt
}

// Outcome is the normalized result of running a stage. Exactly one of
// Value and Err is set.
type Outcome struct {
	Value any
	Err   error
}

// Failed reports whether the stage ended in error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Runner executes stages against a gateway.
type Runner struct {
	gw gateway.Gateway
}

// NewRunner creates a stage runner backed by the given gateway.
func NewRunner(gw gateway.Gateway) *Runner {
	return &Runner{gw: gw}
}

// Run executes the stage described by spec. Failures are returned in the
// outcome, never retried here: retry policy belongs to the caller.
func (r *Runner) Run(ctx context.Context, spec Spec, vars Vars) Outcome {
	if spec.Local != nil && spec.New != nil {
		panic("stage: " + spec.Name + " declares both a local computation and a structured schema")
	}

	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	if spec.Local != nil {
		value, err := spec.Local(ctx, vars)
		if err != nil {
			return fail(spec, err)
		}
		return Outcome{Value: value}
	}

	req := gateway.Request{
		System:    spec.System,
		Prompt:    spec.Render(vars),
		Model:     spec.Model,
		MaxTokens: spec.MaxTokens,
	}

	if spec.New != nil {
		out := spec.New()
		if err := r.gw.CompleteObject(ctx, req, out); err != nil {
			return fail(spec, err)
		}
		return Outcome{Value: out}
	}

	text, err := r.gw.Complete(ctx, req)
	if err != nil {
		return fail(spec, err)
	}
	return Outcome{Value: text}
}

// fail wraps a stage error with the stage name. A timed-out wait counts as
// the gateway being unavailable.
func fail(spec Spec, err error) Outcome {
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, gateway.ErrUnavailable) {
		err = fmt.Errorf("%w: %v", gateway.ErrUnavailable, err)
	}
	return Outcome{Err: fmt.Errorf("stage %s: %w", spec.Name, err)}
}
