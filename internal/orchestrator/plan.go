package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ShayCichocki/cascade/internal/gateway"
	"github.com/ShayCichocki/cascade/internal/stage"
	"github.com/ShayCichocki/cascade/pkg/models"
)

// plannerSystem establishes the planning model's role.
const plannerSystem = `You are a planning assistant. You break a goal into a small set of independent work items, each handled by one worker capability. You select only the capabilities that genuinely serve the goal.`

// plannerTemplate is the prompt template for goal decomposition.
const plannerTemplate = `Analyze this goal and break it down into 2-4 distinct approaches:

Goal: {goal}

For the analysis field, explain your understanding of the goal and why each selected approach serves a different aspect of it.

Select capabilities only from this list. Use each at most once, and only when it is relevant to the goal:

{capabilities}

Return ONLY a JSON object with this exact structure (no other text):
{"analysis": "your understanding of the goal", "tasks": [{"capability": "name from the list", "description": "what this worker should produce"}]}`

// planItem is one planned work item as the model returns it.
type planItem struct {
	Capability  string `json:"capability"`
	Description string `json:"description"`
}

// plan is the planner's structured output.
type plan struct {
	Analysis string     `json:"analysis"`
	Tasks    []planItem `json:"tasks"`
}

// Validate checks that the plan is usable: a non-empty analysis and at
// least one fully described task. Capability names are checked against the
// registry by the orchestrator, not here.
func (p *plan) Validate() error {
	if strings.TrimSpace(p.Analysis) == "" {
		return errors.New("analysis is required")
	}
	if len(p.Tasks) == 0 {
		return errors.New("planner selected no capabilities")
	}
	for i, t := range p.Tasks {
		if strings.TrimSpace(t.Capability) == "" {
			return fmt.Errorf("task %d has no capability", i)
		}
		if strings.TrimSpace(t.Description) == "" {
			return fmt.Errorf("task %d has no description", i)
		}
	}
	return nil
}

// renderCapabilities formats the registered capabilities for the planner
// prompt, in registration order.
func renderCapabilities(caps []models.Capability) string {
	var b strings.Builder
	for _, c := range caps {
		fmt.Fprintf(&b, "**%s**\ndescription: %s\n\n", c.Name, c.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// plan invokes the planning stage and returns the accepted plan.
func (o *Orchestrator) plan(ctx context.Context, goal string) (*plan, error) {
	spec := stage.Spec{
		Name:     "plan",
		Model:    o.plannerTier,
		System:   plannerSystem,
		Template: plannerTemplate,
		Timeout:  o.stageTimeout,
		New:      func() gateway.Validatable { return &plan{} },
	}

	out := o.runner.Run(ctx, spec, stage.Vars{
		"goal":         goal,
		"capabilities": renderCapabilities(o.registry.All()),
	})
	if out.Failed() {
		return nil, out.Err
	}
	return out.Value.(*plan), nil
}
