package orchestrator

import (
	"time"
)

// EventType represents the type of orchestrator event.
type EventType string

const (
	// EventPlanningStarted indicates the planning stage has started.
	EventPlanningStarted EventType = "planning_started"
	// EventPlanningComplete indicates the plan has been accepted.
	EventPlanningComplete EventType = "planning_complete"
	// EventWorkerStarted indicates a worker has started on a work item.
	EventWorkerStarted EventType = "worker_started"
	// EventWorkerCompleted indicates a worker finished successfully.
	EventWorkerCompleted EventType = "worker_completed"
	// EventWorkerFailed indicates a worker ended in error.
	EventWorkerFailed EventType = "worker_failed"
	// EventSynthesisStarted indicates the synthesis stage has started.
	EventSynthesisStarted EventType = "synthesis_started"
	// EventRunComplete indicates the entire run reached a terminal state.
	EventRunComplete EventType = "run_complete"
)

// Event represents an event emitted during an orchestrator run.
// These events are used to update the TUI and track progress.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// ItemID is the ID of the related work item, if applicable.
	ItemID string
	// Capability is the worker capability handling the item, if applicable.
	Capability string
	// Message provides additional context about the event.
	Message string
	// Error contains error details for failure events.
	Error error
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Duration is the elapsed time for completion events.
	Duration time.Duration
}
