// Package gate provides pure, deterministic quality checks over stage
// output. Gates never call the model and never perform I/O, so every gate
// decision is reproducible from the value alone.
package gate

import "strings"

// PassedReason is the reason reported when every check passes.
const PassedReason = "All checks passed"

// Check is a single named predicate over a value.
type Check[T any] struct {
	// Name identifies the check in results and failure reasons.
	Name string
	// Test reports whether the value satisfies the check.
	Test func(T) bool
}

// Gate is an ordered set of named checks applied to values of type T.
type Gate[T any] struct {
	// Name identifies the gate in logs and pipeline results.
	Name string
	// Checks are evaluated in order; every check runs even after a failure
	// so the result carries a complete verdict map.
	Checks []Check[T]
}

// Result is the outcome of evaluating a gate.
type Result struct {
	// Passed is true only when every check passed.
	Passed bool
	// Reason is display-ready: PassedReason on success, otherwise the
	// failing check names in declaration order.
	Reason string
	// Checks maps each check name to its individual verdict.
	Checks map[string]bool
}

// Evaluate runs every check against v and returns the combined result.
// A gate with no checks passes vacuously.
func (g Gate[T]) Evaluate(v T) Result {
	checks := make(map[string]bool, len(g.Checks))
	var failed []string

	for _, c := range g.Checks {
		ok := c.Test(v)
		checks[c.Name] = ok
		if !ok {
			failed = append(failed, c.Name)
		}
	}

	if len(failed) > 0 {
		return Result{
			Passed: false,
			Reason: "Failed checks: " + strings.Join(failed, ", "),
			Checks: checks,
		}
	}

	return Result{
		Passed: true,
		Reason: PassedReason,
		Checks: checks,
	}
}

// Func is the type-erased form a pipeline step stores. Bind produces one
// from a typed gate.
type Func func(v any) Result

// Bind adapts a typed gate for use where the value's static type has been
// erased. A value of the wrong dynamic type is a wiring bug in the caller
// and panics.
func Bind[T any](g Gate[T]) Func {
	return func(v any) Result {
		typed, ok := v.(T)
		if !ok {
			panic("gate: " + g.Name + " evaluated against a value of the wrong type")
		}
		return g.Evaluate(typed)
	}
}
