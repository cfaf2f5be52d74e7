package models

// Capability describes one named worker the orchestrator can dispatch to.
// Capabilities are registered before a run and never change during one.
type Capability struct {
	// Name is the identifier the planner uses to select this worker.
	Name string `json:"name" yaml:"name"`
	// Description tells the planner what this worker is good at.
	Description string `json:"description" yaml:"description"`
	// Model is the model tier the worker runs on.
	Model ModelTier `json:"model" yaml:"model"`
	// System is an optional system prompt for the worker.
	System string `json:"system,omitempty" yaml:"system,omitempty"`
}

// Valid returns true if the capability has a name, a description, and a
// known model tier.
func (c Capability) Valid() bool {
	return c.Name != "" && c.Description != "" && c.Model.Valid()
}
