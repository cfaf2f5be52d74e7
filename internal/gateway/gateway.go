package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/cascade/pkg/models"
)

const defaultMaxTokens = 8192

// maxSchemaAttempts bounds how many times a structured request is retried
// when the model returns output that does not decode or validate.
const maxSchemaAttempts = 3

// Request describes a single model invocation.
type Request struct {
	// System is the system prompt establishing the model's role.
	System string
	// Prompt is the user-turn content.
	Prompt string
	// Model selects the capability tier to invoke.
	Model models.ModelTier
	// MaxTokens caps the response length. Zero means the default (8192).
	MaxTokens int64
}

// Validatable is implemented by structured-output targets. Validate reports
// whether a decoded value satisfies its schema's semantic constraints; the
// gateway treats a non-nil error as a malformed response and retries.
type Validatable interface {
	Validate() error
}

// Gateway turns prompts into model output. Complete returns the raw text of
// the response; CompleteObject decodes the response into out and validates
// it, retrying internally on malformed output.
type Gateway interface {
	Complete(ctx context.Context, req Request) (string, error)
	CompleteObject(ctx context.Context, req Request, out Validatable) error
}

// Anthropic is the production Gateway backed by the Anthropic API.
type Anthropic struct {
	client *Client
}

// NewAnthropic creates a Gateway backed by the given client.
func NewAnthropic(client *Client) *Anthropic {
	return &Anthropic{client: client}
}

// Complete executes a prompt and returns the text response.
func (g *Anthropic) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     g.client.ResolveModel(req.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.System},
		}
	}

	resp, err := g.client.sdk().Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	g.client.Tracker().Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var result strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			result.WriteString(variant.Text)
		}
	}

	text := result.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// CompleteObject executes a prompt that must yield JSON conforming to out's
// schema. The response is parsed, decoded, and validated; on failure the
// request is retried with the parse error appended, up to maxSchemaAttempts
// times. Transport failures are returned immediately and never retried here.
func (g *Anthropic) CompleteObject(ctx context.Context, req Request, out Validatable) error {
	return completeObject(ctx, g.Complete, req, out)
}

// completeFunc is the seam between structured-output handling and the
// transport. Tests substitute a fake to exercise the retry path without
// a network.
type completeFunc func(ctx context.Context, req Request) (string, error)

func completeObject(ctx context.Context, complete completeFunc, req Request, out Validatable) error {
	prompt := req.Prompt + "\n\nRespond with JSON only. No prose before or after."

	var lastErr error
	for attempt := 1; attempt <= maxSchemaAttempts; attempt++ {
		attemptReq := req
		attemptReq.Prompt = prompt

		text, err := complete(ctx, attemptReq)
		if err != nil {
			// Transport and empty-response failures are not schema
			// problems; retrying the same prompt will not fix them.
			return err
		}

		if err := decodeInto(text, out); err != nil {
			lastErr = err
			log.Printf("[gateway] malformed structured output (attempt %d/%d): %v", attempt, maxSchemaAttempts, err)
			prompt = req.Prompt + fmt.Sprintf(
				"\n\nYour previous response could not be parsed: %v\nRespond with valid JSON only. No prose before or after.", err)
			continue
		}
		return nil
	}

	return fmt.Errorf("%w: %v", ErrSchemaValidation, lastErr)
}

// decodeInto extracts the JSON payload from raw model text, unmarshals it
// into out, and validates the result.
func decodeInto(text string, out Validatable) error {
	jsonStr, err := extractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w (response: %s)", err, truncate(jsonStr, 200))
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("response failed validation: %w", err)
	}
	return nil
}

// extractJSON finds the JSON object or array in a text response. Models
// sometimes wrap JSON in prose or markdown fences despite instructions.
func extractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	altStart := strings.Index(text, "[")
	if start == -1 || (altStart != -1 && altStart < start) {
		start = altStart
	}
	if start == -1 {
		return "", errors.New("no JSON found in response")
	}

	end := strings.LastIndex(text, "}")
	altEnd := strings.LastIndex(text, "]")
	if end == -1 || altEnd > end {
		end = altEnd
	}
	if end == -1 || end < start {
		return "", errors.New("no JSON found in response")
	}

	return text[start : end+1], nil
}

// truncate shortens a string to maxLen, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
