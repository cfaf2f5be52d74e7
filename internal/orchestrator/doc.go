// Package orchestrator decomposes a goal into independent work items and
// coordinates their parallel execution.
//
// The orchestrator package provides functionality for:
//   - Planning: a model call that selects the worker capabilities relevant
//     to the goal and describes a task for each
//   - Dispatch: concurrent, independent workers, one per planned item
//   - Synthesis: a final model call that combines collected worker results
//     into one unified output
//
// Workers never observe each other's state. A failing worker does not
// cancel its siblings; its failure is carried into synthesis as an explicit
// gap. Synthesis input always follows the planner's declared item order, so
// the combined output is deterministic regardless of completion timing.
//
// Example usage:
//
//	orch := orchestrator.New(orchestrator.RequiredConfig{
//		Runner:   stage.NewRunner(gw),
//		Registry: registry.Defaults(),
//	}, orchestrator.WithMaxWorkers(4))
//	result := orch.Run(ctx, "Write a product description for an eco-friendly water bottle")
package orchestrator
