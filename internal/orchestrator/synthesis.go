package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShayCichocki/cascade/internal/stage"
	"github.com/ShayCichocki/cascade/pkg/models"
)

// synthesisSystem establishes the synthesis model's role.
const synthesisSystem = `You combine multiple drafts of the same goal into one unified result. You preserve the strongest material from each draft and resolve overlaps. Where a draft is marked FAILED, you note the gap honestly instead of inventing content for it.`

// synthesisPrompt builds the final-stage prompt. Results must already be in
// the planner's declared item order; failed items appear as explicit gaps.
func synthesisPrompt(goal, analysis string, items []models.WorkItem, results []models.WorkResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Combine the following drafts into a single unified result.\n\n")
	fmt.Fprintf(&b, "Goal: %s\n\n", goal)
	if analysis != "" {
		fmt.Fprintf(&b, "Planner analysis: %s\n\n", analysis)
	}
	b.WriteString("Drafts, in plan order:\n\n")

	for i, r := range results {
		fmt.Fprintf(&b, "### %d. %s (%s)\n", i+1, items[i].Description, r.Capability)
		if r.Succeeded {
			b.WriteString(r.Payload)
		} else {
			fmt.Fprintf(&b, "FAILED: %s", r.Error)
		}
		b.WriteString("\n\n")
	}

	b.WriteString("Produce the unified result now.")
	return b.String()
}

// synthesize invokes the final stage with every collected result embedded
// in its context and returns the unified output.
func (o *Orchestrator) synthesize(ctx context.Context, goal, analysis string, items []models.WorkItem, results []models.WorkResult) (string, error) {
	spec := stage.Spec{
		Name:    "synthesize",
		Model:   o.synthesizerTier,
		System:  synthesisSystem,
		Timeout: o.stageTimeout,
		// The prompt embeds per-item payloads directly rather than going
		// through placeholder substitution.
		Template: synthesisPrompt(goal, analysis, items, results),
	}

	out := o.runner.Run(ctx, spec, nil)
	if out.Failed() {
		return "", out.Err
	}
	return out.Value.(string), nil
}
