// Package tui provides the terminal user interface for cascade's
// orchestrate command.
//
// The app moves through three phases: a goal input phase (text field), a
// running phase showing one row per work item with live elapsed times, and
// a done phase showing the synthesized result. External code drives the
// running phase by forwarding orchestrator events:
//
//	program, app := tui.NewProgram(100 * time.Millisecond)
//	app.SetGoalHandler(func(goal string) {
//	    // start the run and forward events
//	    go func() {
//	        for ev := range emitter.Events() {
//	            program.Send(tui.EventMsg(ev))
//	        }
//	    }()
//	})
//	program.Run()
//
// When the run finishes, send RunDoneMsg with the final result to switch
// to the done phase.
package tui
