package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ShayCichocki/cascade/internal/registry"
	"github.com/ShayCichocki/cascade/internal/stage"
	"github.com/ShayCichocki/cascade/pkg/models"
)

// Status is the terminal state of an orchestrator run.
type Status string

const (
	// StatusSucceeded means planning, dispatch, and synthesis all completed.
	StatusSucceeded Status = "succeeded"
	// StatusPlanningFailed means the planning stage returned an error.
	StatusPlanningFailed Status = "planning_failed"
	// StatusUnknownCapability means the plan referenced an unregistered
	// capability; nothing was dispatched.
	StatusUnknownCapability Status = "unknown_capability"
	// StatusAllWorkersFailed means every dispatched worker ended in error,
	// so synthesis was skipped.
	StatusAllWorkersFailed Status = "all_workers_failed"
	// StatusSynthesisFailed means workers produced results but the final
	// synthesis stage returned an error.
	StatusSynthesisFailed Status = "synthesis_failed"
)

// Result is the caller-facing outcome of an orchestrator run. Items and
// Results are index-aligned and follow the planner's declared order.
type Result struct {
	Status Status
	// Goal is the goal the run was started with.
	Goal string
	// Analysis is the planner's explanation of its decomposition.
	Analysis string
	// Value is the synthesized output when Status is StatusSucceeded.
	Value string
	// Reason explains a failure in display-ready form.
	Reason string
	// Items are the planned work items, in planner order.
	Items []models.WorkItem
	// Results are the per-item worker results, index-aligned with Items.
	Results []models.WorkResult
	// Duration is the total wall-clock time of the run.
	Duration time.Duration
}

// Orchestrator coordinates plan, dispatch, and synthesis for one goal at a
// time. It holds no per-run mutable state, so a single Orchestrator may
// serve sequential runs.
type Orchestrator struct {
	runner          *stage.Runner
	registry        *registry.Registry
	emitter         *EventEmitter
	maxWorkers      int
	plannerTier     models.ModelTier
	synthesizerTier models.ModelTier
	stageTimeout    time.Duration
}

// New creates an Orchestrator from required configuration plus options.
func New(req RequiredConfig, opts ...Option) *Orchestrator {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Orchestrator{
		runner:          req.Runner,
		registry:        req.Registry,
		emitter:         options.emitter,
		maxWorkers:      options.maxWorkers,
		plannerTier:     options.plannerTier,
		synthesizerTier: options.synthesizerTier,
		stageTimeout:    options.stageTimeout,
	}
}

// Run executes the full plan/dispatch/synthesize flow for a goal and
// always returns a terminal Result with a display-ready reason on failure.
func (o *Orchestrator) Run(ctx context.Context, goal string) Result {
	start := time.Now()

	o.emit(Event{Type: EventPlanningStarted, Message: goal})
	log.Printf("[orchestrator] planning: %s", goal)

	p, err := o.plan(ctx, goal)
	if err != nil {
		log.Printf("[orchestrator] planning failed: %v", err)
		return o.finish(Result{
			Status: StatusPlanningFailed,
			Goal:   goal,
			Reason: fmt.Sprintf("planning failed: %v", err),
		}, start)
	}

	// Reject the whole plan before dispatch if any capability is unknown,
	// so no worker budget is spent on an uncompletable plan.
	items := make([]models.WorkItem, len(p.Tasks))
	for i, t := range p.Tasks {
		if _, err := o.registry.Resolve(t.Capability); err != nil {
			log.Printf("[orchestrator] plan rejected: %v", err)
			return o.finish(Result{
				Status:   StatusUnknownCapability,
				Goal:     goal,
				Analysis: p.Analysis,
				Reason:   fmt.Sprintf("plan references unknown capability %q", t.Capability),
			}, start)
		}
		items[i] = models.WorkItem{
			ID:          uuid.New().String()[:8],
			Capability:  t.Capability,
			Description: t.Description,
		}
	}

	o.emit(Event{Type: EventPlanningComplete, Message: fmt.Sprintf("%d work items", len(items))})
	log.Printf("[orchestrator] dispatching %d workers (max %d concurrent)", len(items), o.maxWorkers)

	results := o.dispatch(ctx, goal, items)

	failed := 0
	for _, r := range results {
		if !r.Succeeded {
			failed++
		}
	}
	if failed == len(results) {
		log.Printf("[orchestrator] all %d workers failed", len(results))
		return o.finish(Result{
			Status:   StatusAllWorkersFailed,
			Goal:     goal,
			Analysis: p.Analysis,
			Items:    items,
			Results:  results,
			Reason:   fmt.Sprintf("all %d workers failed", len(results)),
		}, start)
	}

	o.emit(Event{Type: EventSynthesisStarted, Message: fmt.Sprintf("%d of %d workers succeeded", len(results)-failed, len(results))})
	log.Printf("[orchestrator] synthesizing %d results (%d failed)", len(results), failed)

	value, err := o.synthesize(ctx, goal, p.Analysis, items, results)
	if err != nil {
		log.Printf("[orchestrator] synthesis failed: %v", err)
		return o.finish(Result{
			Status:   StatusSynthesisFailed,
			Goal:     goal,
			Analysis: p.Analysis,
			Items:    items,
			Results:  results,
			Reason:   fmt.Sprintf("synthesis failed: %v", err),
		}, start)
	}

	return o.finish(Result{
		Status:   StatusSucceeded,
		Goal:     goal,
		Analysis: p.Analysis,
		Value:    value,
		Items:    items,
		Results:  results,
	}, start)
}

// dispatch runs one worker per item, bounded by maxWorkers, and waits for
// all of them. Results are slot-indexed by plan position, so collected
// output always follows the planner's declared order regardless of
// completion order. A failing worker never cancels its siblings.
func (o *Orchestrator) dispatch(ctx context.Context, goal string, items []models.WorkItem) []models.WorkResult {
	results := make([]models.WorkResult, len(items))

	sem := make(chan struct{}, o.maxWorkers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(slot int, item models.WorkItem) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			o.emit(Event{Type: EventWorkerStarted, ItemID: item.ID, Capability: item.Capability, Message: item.Description})

			result := o.runWorker(ctx, goal, item)
			results[slot] = result

			if result.Succeeded {
				o.emit(Event{Type: EventWorkerCompleted, ItemID: item.ID, Capability: item.Capability, Duration: result.Duration})
			} else {
				o.emit(Event{Type: EventWorkerFailed, ItemID: item.ID, Capability: item.Capability, Message: result.Error, Duration: result.Duration})
			}
		}(i, item)
	}

	wg.Wait()
	return results
}

// emit forwards an event to the configured emitter, stamping the time.
func (o *Orchestrator) emit(event Event) {
	if o.emitter == nil {
		return
	}
	event.Timestamp = time.Now()
	o.emitter.Emit(event)
}

// finish stamps the run duration and emits the terminal event.
func (o *Orchestrator) finish(r Result, start time.Time) Result {
	r.Duration = time.Since(start)
	o.emit(Event{Type: EventRunComplete, Message: string(r.Status), Duration: r.Duration})
	return r
}
