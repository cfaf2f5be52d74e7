package models

import "time"

// WorkStatus represents the current state of a work item.
type WorkStatus string

const (
	// WorkPending indicates the item has not been dispatched yet.
	WorkPending WorkStatus = "pending"
	// WorkRunning indicates a worker is executing the item.
	WorkRunning WorkStatus = "running"
	// WorkDone indicates the worker finished successfully.
	WorkDone WorkStatus = "done"
	// WorkFailed indicates the worker terminated with an error.
	WorkFailed WorkStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s WorkStatus) Valid() bool {
	switch s {
	case WorkPending, WorkRunning, WorkDone, WorkFailed:
		return true
	default:
		return false
	}
}

// WorkItem is one independent unit of work the planner assigns to a
// capability. Items are consumed exactly once and never shared between
// workers.
type WorkItem struct {
	// ID is the unique identifier for this item.
	ID string `json:"id"`
	// Capability names the registered worker that should handle the item.
	Capability string `json:"capability"`
	// Description is the planner's instruction for the worker.
	Description string `json:"description"`
}

// WorkResult is the terminal outcome of one dispatched WorkItem. It is
// read-only once collected.
type WorkResult struct {
	// ItemID is the ID of the originating WorkItem.
	ItemID string `json:"item_id"`
	// Capability names the worker that produced the result.
	Capability string `json:"capability"`
	// Payload is the worker's output when Succeeded is true.
	Payload string `json:"payload,omitempty"`
	// Succeeded reports whether the worker completed without error.
	Succeeded bool `json:"succeeded"`
	// Error holds the failure reason when Succeeded is false.
	Error string `json:"error,omitempty"`
	// Duration is how long the worker ran.
	Duration time.Duration `json:"duration"`
}
