package orchestrator

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/ShayCichocki/cascade/internal/gateway"
	"github.com/ShayCichocki/cascade/internal/stage"
	"github.com/ShayCichocki/cascade/pkg/models"
)

// workerTemplate is the prompt template every worker runs with. The
// capability supplies the system prompt and model tier; the work item
// supplies the task and guidelines.
const workerTemplate = `Generate content based on:
Task: {task}
Style: {style}
Guidelines: {description}

Return ONLY a JSON object with this exact structure (no other text):
{"style": "the style you wrote in", "task": "the task you addressed", "response": "your generated content"}`

// workerOutput is the structured result a worker returns.
type workerOutput struct {
	Style    string `json:"style"`
	Task     string `json:"task"`
	Response string `json:"response"`
}

// Validate checks that the worker produced actual content.
func (w *workerOutput) Validate() error {
	if strings.TrimSpace(w.Response) == "" {
		return errors.New("worker response is empty")
	}
	return nil
}

// runWorker executes one work item against its capability's worker and
// normalizes the outcome into a WorkResult. It never returns an error:
// failures are carried in the result so siblings keep running.
func (o *Orchestrator) runWorker(ctx context.Context, goal string, item models.WorkItem) models.WorkResult {
	start := time.Now()

	capability, err := o.registry.Resolve(item.Capability)
	if err != nil {
		// Plans are validated against the registry before dispatch, so
		// this only fires if the registry changed mid-run.
		return models.WorkResult{
			ItemID:     item.ID,
			Capability: item.Capability,
			Error:      err.Error(),
			Duration:   time.Since(start),
		}
	}

	spec := stage.Spec{
		Name:     "worker:" + item.Capability,
		Model:    capability.Model,
		System:   capability.System,
		Template: workerTemplate,
		Timeout:  o.stageTimeout,
		New:      func() gateway.Validatable { return &workerOutput{} },
	}

	out := o.runner.Run(ctx, spec, stage.Vars{
		"task":        goal,
		"style":       item.Capability,
		"description": item.Description,
	})
	if out.Failed() {
		log.Printf("[orchestrator] worker %s (%s) failed: %v", item.ID, item.Capability, out.Err)
		return models.WorkResult{
			ItemID:     item.ID,
			Capability: item.Capability,
			Error:      out.Err.Error(),
			Duration:   time.Since(start),
		}
	}

	w := out.Value.(*workerOutput)
	return models.WorkResult{
		ItemID:     item.ID,
		Capability: item.Capability,
		Payload:    w.Response,
		Succeeded:  true,
		Duration:   time.Since(start),
	}
}
