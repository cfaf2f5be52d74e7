package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/cascade/internal/orchestrator"
)

// Phase constants for the app lifecycle.
const (
	PhaseInput = iota
	PhaseRunning
	PhaseDone
)

// EventMsg wraps an orchestrator event for the TUI.
type EventMsg orchestrator.Event

// RunDoneMsg signals that the orchestrator run has completed.
type RunDoneMsg struct {
	Result orchestrator.Result
}

// GoalSubmittedMsg is sent when the user submits a goal.
type GoalSubmittedMsg struct {
	Goal string
}

// tickMsg drives elapsed-time refreshes during the running phase.
type tickMsg time.Time

// App is the main bubbletea model for the cascade TUI.
type App struct {
	// phase is the current lifecycle phase.
	phase int
	// goal is the submitted goal text.
	goal string
	// input is the goal entry field.
	input textinput.Model
	// workers displays one row per work item.
	workers *WorkerTable
	// result holds the final run result once it arrives.
	result orchestrator.Result
	// status is the current phase line shown above the worker table.
	status string
	// refresh is the elapsed-time refresh interval.
	refresh time.Duration
	// onGoal is invoked when the user submits a goal. It runs on the
	// update loop, so it must start the run on its own goroutine.
	onGoal func(goal string)

	width    int
	height   int
	quitting bool

	titleStyle   lipgloss.Style
	statusStyle  lipgloss.Style
	boxStyle     lipgloss.Style
	promptStyle  lipgloss.Style
	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	helpStyle    lipgloss.Style
}

// New creates a new App instance with the given refresh interval.
func New(refresh time.Duration) *App {
	if refresh <= 0 {
		refresh = 100 * time.Millisecond
	}

	ti := textinput.New()
	ti.Placeholder = "Describe a goal and press Enter..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	return &App{
		phase:   PhaseInput,
		input:   ti,
		workers: NewWorkerTable(),
		refresh: refresh,
		width:   80,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),

		statusStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")), // Orange

		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),

		promptStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),

		successStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("34")), // Green

		failureStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red

		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// SetGoalHandler sets the callback for goal submissions.
func (a *App) SetGoalHandler(handler func(goal string)) {
	a.onGoal = handler
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.quitting = true
			return a, tea.Quit

		case "esc":
			a.quitting = true
			return a, tea.Quit

		case "q":
			// In the input phase "q" is just a character.
			if a.phase != PhaseInput {
				a.quitting = true
				return a, tea.Quit
			}

		case "enter":
			if a.phase == PhaseInput {
				text := a.input.Value()
				if text != "" {
					return a, func() tea.Msg {
						return GoalSubmittedMsg{Goal: text}
					}
				}
				return a, nil
			}
			if a.phase == PhaseDone {
				a.quitting = true
				return a, tea.Quit
			}
		}

		if a.phase == PhaseInput {
			var cmd tea.Cmd
			a.input, cmd = a.input.Update(msg)
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 6
		var cmd tea.Cmd
		a.workers, cmd = a.workers.Update(msg)
		return a, cmd

	case GoalSubmittedMsg:
		a.goal = msg.Goal
		a.phase = PhaseRunning
		a.status = "Planning..."
		a.input.Blur()
		if a.onGoal != nil {
			a.onGoal(msg.Goal)
		}
		return a, a.tick()

	case tickMsg:
		if a.phase == PhaseRunning {
			return a, a.tick()
		}

	case EventMsg:
		a.applyEvent(orchestrator.Event(msg))

	case RunDoneMsg:
		a.phase = PhaseDone
		a.result = msg.Result
	}

	return a, nil
}

// tick schedules the next elapsed-time refresh.
func (a *App) tick() tea.Cmd {
	return tea.Tick(a.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// applyEvent updates the status line and worker table from a run event.
func (a *App) applyEvent(ev orchestrator.Event) {
	switch ev.Type {
	case orchestrator.EventPlanningStarted:
		a.status = "Planning..."
	case orchestrator.EventPlanningComplete:
		a.status = fmt.Sprintf("Dispatching %s", ev.Message)
	case orchestrator.EventSynthesisStarted:
		a.status = fmt.Sprintf("Synthesizing (%s)", ev.Message)
	case orchestrator.EventRunComplete:
		a.status = ""
	default:
		a.workers.Apply(ev)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}

	switch a.phase {
	case PhaseRunning:
		return a.viewRunning()
	case PhaseDone:
		return a.viewDone()
	default:
		return a.viewInput()
	}
}

// viewInput renders the goal entry phase.
func (a *App) viewInput() string {
	title := a.titleStyle.Render("cascade")
	prompt := a.promptStyle.Render("> ")
	box := a.boxStyle.Width(a.width - 2).Render(prompt + a.input.View())
	help := a.helpStyle.Render("Enter to start | Esc to quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", box, help)
}

// viewRunning renders the live run phase.
func (a *App) viewRunning() string {
	title := a.titleStyle.Render("cascade") + "  " + a.goal

	var status string
	if a.status != "" {
		status = a.statusStyle.Render(a.status)
	}

	help := a.helpStyle.Render("q to quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", status, "", a.workers.View(), help)
}

// viewDone renders the final result phase.
func (a *App) viewDone() string {
	title := a.titleStyle.Render("cascade") + "  " + a.goal

	done, failed, total := a.workers.Counts()
	counts := a.helpStyle.Render(fmt.Sprintf("%d of %d work items succeeded (%d failed)", done, total, failed))

	var banner, body string
	if a.result.Status == orchestrator.StatusSucceeded {
		banner = a.successStyle.Render(fmt.Sprintf("✓ Run complete in %s", formatDuration(a.result.Duration)))
		body = a.result.Value
	} else {
		banner = a.failureStyle.Render(fmt.Sprintf("✗ Run failed: %s", a.result.Reason))
		body = ""
	}

	help := a.helpStyle.Render("Press q to exit")

	sections := []string{title, "", banner, counts, ""}
	if body != "" {
		sections = append(sections, body, "")
	}
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Run starts the TUI application and blocks until it exits.
func Run(refresh time.Duration) error {
	app := New(refresh)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// NewProgram creates a new Bubbletea program for the cascade TUI.
// The returned program receives run updates via Send().
func NewProgram(refresh time.Duration) (*tea.Program, *App) {
	app := New(refresh)
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}
