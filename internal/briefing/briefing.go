// Package briefing runs the content briefing workflow: a local extract
// stage pulls a document from the content repository and cleans it, an
// extraction gate checks the cleaned text, a summarize stage condenses it
// through the model, and a summary gate checks the result.
package briefing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ShayCichocki/cascade/internal/corpus"
	"github.com/ShayCichocki/cascade/internal/gate"
	"github.com/ShayCichocki/cascade/internal/gateway"
	"github.com/ShayCichocki/cascade/internal/pipeline"
	"github.com/ShayCichocki/cascade/internal/stage"
	"github.com/ShayCichocki/cascade/pkg/models"
)

const summarizeSystem = `You write executive briefings. Keep every fact accurate to the source material and introduce nothing that is not in it.`

const summarizeTemplate = `Summarize the following content for a busy reader.

Title: {title}

Content:
{content}

Return ONLY a JSON object with this exact structure (no other text):
{"summary": "3-5 sentence summary", "key_points": ["point 1", "point 2", "point 3"]}`

// Summary is the structured product of the summarize stage.
type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// Validate reports whether the decoded summary is usable.
func (s *Summary) Validate() error {
	if strings.TrimSpace(s.Summary) == "" {
		return errors.New("summary is empty")
	}
	return nil
}

// Repository provides content lookup for the extract stage.
type Repository interface {
	Get(id string) (corpus.Item, bool)
}

// Briefing is the finished product of a successful run.
type Briefing struct {
	ID      string
	Title   string
	Extract Extract
	Summary Summary
}

// Option configures a Briefer. Use With* functions to create Options.
type Option func(*Briefer)

// WithSummarizerTier selects the model tier for the summarize stage.
func WithSummarizerTier(t models.ModelTier) Option {
	return func(b *Briefer) { b.tier = t }
}

// WithStageTimeout bounds the summarize stage's model call.
func WithStageTimeout(d time.Duration) Option {
	return func(b *Briefer) { b.timeout = d }
}

// WithObserver sets a callback invoked as each pipeline step resolves.
func WithObserver(fn func(pipeline.StepEvent)) Option {
	return func(b *Briefer) { b.observer = fn }
}

// Briefer assembles and runs the briefing pipeline against a repository.
type Briefer struct {
	runner   *stage.Runner
	repo     Repository
	tier     models.ModelTier
	timeout  time.Duration
	observer func(pipeline.StepEvent)
}

// New creates a Briefer backed by the given runner and repository.
func New(runner *stage.Runner, repo Repository, opts ...Option) *Briefer {
	b := &Briefer{
		runner: runner,
		repo:   repo,
		tier:   models.TierSonnet,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Brief runs the pipeline for one content item. On success the returned
// Briefing carries the extraction and the summary; on failure it is nil
// and the pipeline result explains what stopped the run.
func (b *Briefer) Brief(ctx context.Context, contentID string) (*Briefing, pipeline.Result) {
	var extracted Extract

	steps := []pipeline.Step{
		{
			Spec: stage.Spec{
				Name: "extract",
				Local: func(ctx context.Context, vars stage.Vars) (any, error) {
					id := vars["content_id"]
					item, ok := b.repo.Get(id)
					if !ok {
						return nil, fmt.Errorf("content not found: %s", id)
					}
					return ExtractItem(item), nil
				},
			},
			Gate: gate.Bind(ExtractionGate()),
			Carry: func(value any, vars stage.Vars) stage.Vars {
				extracted = value.(Extract)
				return stage.Vars{"title": extracted.Title, "content": extracted.Content}
			},
		},
		{
			Spec: stage.Spec{
				Name:      "summarize",
				Model:     b.tier,
				System:    summarizeSystem,
				Template:  summarizeTemplate,
				MaxTokens: 1024,
				Timeout:   b.timeout,
				New:       func() gateway.Validatable { return &Summary{} },
			},
			Gate: gate.Bind(SummaryGate()),
		},
	}

	var opts []pipeline.Option
	if b.observer != nil {
		opts = append(opts, pipeline.WithObserver(b.observer))
	}

	result := pipeline.New("briefing", b.runner, steps, opts...).Run(ctx, stage.Vars{"content_id": contentID})
	if result.Status != pipeline.StatusSucceeded {
		return nil, result
	}

	summary := result.Value.(*Summary)
	return &Briefing{
		ID:      contentID,
		Title:   extracted.Title,
		Extract: extracted,
		Summary: *summary,
	}, result
}
