package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "plain object",
			input: `{"key": "value"}`,
			want:  `{"key": "value"}`,
		},
		{
			name:  "object with prose around it",
			input: "Here is the result:\n{\"key\": \"value\"}\nHope that helps!",
			want:  `{"key": "value"}`,
		},
		{
			name:  "object in markdown fence",
			input: "```json\n{\"key\": \"value\"}\n```",
			want:  `{"key": "value"}`,
		},
		{
			name:  "plain array",
			input: `[1, 2, 3]`,
			want:  `[1, 2, 3]`,
		},
		{
			name:  "array before object picks array start",
			input: `[{"a": 1}, {"b": 2}]`,
			want:  `[{"a": 1}, {"b": 2}]`,
		},
		{
			name:  "nested object",
			input: `{"outer": {"inner": [1, 2]}}`,
			want:  `{"outer": {"inner": [1, 2]}}`,
		},
		{
			name:    "no JSON at all",
			input:   "I could not produce a result.",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "only opening brace",
			input:   "here { nothing closes",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("extractJSON(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractJSON(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "shorter than max", input: "hello", maxLen: 10, want: "hello"},
		{name: "exactly max", input: "hello", maxLen: 5, want: "hello"},
		{name: "longer than max", input: "hello world", maxLen: 5, want: "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

// probe is a minimal Validatable target for structured-output tests.
type probe struct {
	Verdict string `json:"verdict"`
}

func (p *probe) Validate() error {
	if p.Verdict == "" {
		return errors.New("verdict is required")
	}
	return nil
}

func TestCompleteObjectFirstAttemptSucceeds(t *testing.T) {
	calls := 0
	fake := func(ctx context.Context, req Request) (string, error) {
		calls++
		return `{"verdict": "ok"}`, nil
	}

	var out probe
	if err := completeObject(context.Background(), fake, Request{Prompt: "judge this"}, &out); err != nil {
		t.Fatalf("completeObject() unexpected error: %v", err)
	}
	if out.Verdict != "ok" {
		t.Errorf("Verdict = %q, want %q", out.Verdict, "ok")
	}
	if calls != 1 {
		t.Errorf("complete called %d times, want 1", calls)
	}
}

func TestCompleteObjectRetriesMalformedOutput(t *testing.T) {
	responses := []string{
		"sorry, no JSON here",
		`{"verdict": ""}`,
		`{"verdict": "ok"}`,
	}
	calls := 0
	fake := func(ctx context.Context, req Request) (string, error) {
		resp := responses[calls]
		calls++
		return resp, nil
	}

	var out probe
	if err := completeObject(context.Background(), fake, Request{Prompt: "judge this"}, &out); err != nil {
		t.Fatalf("completeObject() unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("complete called %d times, want 3", calls)
	}
	if out.Verdict != "ok" {
		t.Errorf("Verdict = %q, want %q", out.Verdict, "ok")
	}
}

func TestCompleteObjectRetryPromptCarriesParseError(t *testing.T) {
	var prompts []string
	fake := func(ctx context.Context, req Request) (string, error) {
		prompts = append(prompts, req.Prompt)
		if len(prompts) == 1 {
			return "not json", nil
		}
		return `{"verdict": "ok"}`, nil
	}

	var out probe
	if err := completeObject(context.Background(), fake, Request{Prompt: "judge this"}, &out); err != nil {
		t.Fatalf("completeObject() unexpected error: %v", err)
	}
	if len(prompts) != 2 {
		t.Fatalf("complete called %d times, want 2", len(prompts))
	}
	if !strings.Contains(prompts[1], "could not be parsed") {
		t.Errorf("retry prompt missing parse feedback: %q", prompts[1])
	}
	if !strings.Contains(prompts[1], "judge this") {
		t.Errorf("retry prompt dropped the original request: %q", prompts[1])
	}
}

func TestCompleteObjectExhaustsAttempts(t *testing.T) {
	calls := 0
	fake := func(ctx context.Context, req Request) (string, error) {
		calls++
		return "never json", nil
	}

	var out probe
	err := completeObject(context.Background(), fake, Request{Prompt: "judge this"}, &out)
	if err == nil {
		t.Fatal("completeObject() expected error after exhausting attempts")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Errorf("completeObject() error = %v, want ErrSchemaValidation", err)
	}
	if calls != maxSchemaAttempts {
		t.Errorf("complete called %d times, want %d", calls, maxSchemaAttempts)
	}
}

func TestCompleteObjectTransportErrorNotRetried(t *testing.T) {
	calls := 0
	fake := func(ctx context.Context, req Request) (string, error) {
		calls++
		return "", ErrUnavailable
	}

	var out probe
	err := completeObject(context.Background(), fake, Request{Prompt: "judge this"}, &out)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("completeObject() error = %v, want ErrUnavailable", err)
	}
	if calls != 1 {
		t.Errorf("complete called %d times, want 1: transport failures are not schema retries", calls)
	}
}

func TestCompleteObjectAppendsJSONDirective(t *testing.T) {
	var seen string
	fake := func(ctx context.Context, req Request) (string, error) {
		seen = req.Prompt
		return `{"verdict": "ok"}`, nil
	}

	var out probe
	if err := completeObject(context.Background(), fake, Request{Prompt: "judge this"}, &out); err != nil {
		t.Fatalf("completeObject() unexpected error: %v", err)
	}
	if !strings.Contains(seen, "JSON only") {
		t.Errorf("prompt missing JSON directive: %q", seen)
	}
}
