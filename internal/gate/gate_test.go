package gate

import (
	"reflect"
	"strings"
	"testing"
)

func lengthGate() Gate[string] {
	return Gate[string]{
		Name: "content",
		Checks: []Check[string]{
			{Name: "min_length", Test: func(s string) bool { return len(s) > 10 }},
			{Name: "no_tabs", Test: func(s string) bool { return !strings.Contains(s, "\t") }},
			{Name: "has_substance", Test: func(s string) bool { return strings.TrimSpace(s) != "" }},
		},
	}
}

func TestEvaluateAllPass(t *testing.T) {
	result := lengthGate().Evaluate("a perfectly fine value")

	if !result.Passed {
		t.Errorf("Passed = false, want true")
	}
	if result.Reason != PassedReason {
		t.Errorf("Reason = %q, want %q", result.Reason, PassedReason)
	}
	want := map[string]bool{"min_length": true, "no_tabs": true, "has_substance": true}
	if !reflect.DeepEqual(result.Checks, want) {
		t.Errorf("Checks = %v, want %v", result.Checks, want)
	}
}

func TestEvaluateFailures(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		wantReason string
		wantChecks map[string]bool
	}{
		{
			name:       "single failure",
			value:      "short",
			wantReason: "Failed checks: min_length",
			wantChecks: map[string]bool{"min_length": false, "no_tabs": true, "has_substance": true},
		},
		{
			name:       "two failures listed in declaration order",
			value:      "a\tb",
			wantReason: "Failed checks: min_length, no_tabs",
			wantChecks: map[string]bool{"min_length": false, "no_tabs": false, "has_substance": true},
		},
		{
			name:       "all failures",
			value:      "\t ",
			wantReason: "Failed checks: min_length, no_tabs, has_substance",
			wantChecks: map[string]bool{"min_length": false, "no_tabs": false, "has_substance": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lengthGate().Evaluate(tt.value)

			if result.Passed {
				t.Errorf("Passed = true, want false")
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if !reflect.DeepEqual(result.Checks, tt.wantChecks) {
				t.Errorf("Checks = %v, want %v", result.Checks, tt.wantChecks)
			}
		})
	}
}

func TestPassedMatchesCheckConjunction(t *testing.T) {
	values := []string{"a perfectly fine value", "short", "a\tb", "\t ", ""}
	g := lengthGate()

	for _, v := range values {
		result := g.Evaluate(v)
		all := true
		for _, ok := range result.Checks {
			all = all && ok
		}
		if result.Passed != all {
			t.Errorf("Evaluate(%q): Passed = %v but AND(checks) = %v", v, result.Passed, all)
		}
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	g := lengthGate()
	first := g.Evaluate("a\tb")
	second := g.Evaluate("a\tb")

	if first.Passed != second.Passed || first.Reason != second.Reason {
		t.Errorf("repeated Evaluate differed: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(first.Checks, second.Checks) {
		t.Errorf("repeated Evaluate check maps differed: %v vs %v", first.Checks, second.Checks)
	}
}

func TestEmptyGatePassesVacuously(t *testing.T) {
	g := Gate[int]{Name: "empty"}
	result := g.Evaluate(42)

	if !result.Passed {
		t.Errorf("Passed = false, want true for a gate with no checks")
	}
	if result.Reason != PassedReason {
		t.Errorf("Reason = %q, want %q", result.Reason, PassedReason)
	}
	if len(result.Checks) != 0 {
		t.Errorf("Checks = %v, want empty", result.Checks)
	}
}

func TestBind(t *testing.T) {
	fn := Bind(lengthGate())

	result := fn("a perfectly fine value")
	if !result.Passed {
		t.Errorf("bound gate Passed = false, want true")
	}

	result = fn("short")
	if result.Passed {
		t.Errorf("bound gate Passed = true, want false")
	}
}

func TestBindWrongTypePanics(t *testing.T) {
	fn := Bind(lengthGate())

	defer func() {
		if recover() == nil {
			t.Error("Bind() with wrong dynamic type should panic")
		}
	}()
	fn(42)
}
