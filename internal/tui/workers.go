package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/cascade/internal/orchestrator"
)

// Status icons for work item states.
const (
	iconPending = "[○]"
	iconRunning = "[●]"
	iconDone    = "[✓]"
	iconFailed  = "[✗]"
)

// RowStatus is the display state of a work item row.
type RowStatus string

const (
	RowPending RowStatus = "pending"
	RowRunning RowStatus = "running"
	RowDone    RowStatus = "done"
	RowFailed  RowStatus = "failed"
)

// WorkerRow is one work item's display state.
type WorkerRow struct {
	ID          string
	Capability  string
	Description string
	Status      RowStatus
	StartedAt   time.Time
	Duration    time.Duration
	Detail      string
}

// WorkerTable displays one row per work item with status and elapsed time.
type WorkerTable struct {
	rows   []*WorkerRow
	width  int
	height int

	headerStyle   lipgloss.Style
	rowStyle      lipgloss.Style
	statusRunning lipgloss.Style
	statusDone    lipgloss.Style
	statusFailed  lipgloss.Style
	statusPending lipgloss.Style
}

// NewWorkerTable creates a new WorkerTable instance.
func NewWorkerTable() *WorkerTable {
	return &WorkerTable{
		rows: make([]*WorkerRow, 0),

		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("7")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240")),

		rowStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		statusRunning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")), // Green

		statusDone: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")), // Dark green

		statusFailed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")), // Red

		statusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")), // Gray
	}
}

// Update handles input messages.
func (t *WorkerTable) Update(msg tea.Msg) (*WorkerTable, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
	}
	return t, nil
}

// Apply updates row state from an orchestrator event. Events that do not
// concern a work item are ignored.
func (t *WorkerTable) Apply(ev orchestrator.Event) {
	switch ev.Type {
	case orchestrator.EventWorkerStarted:
		row := t.findOrCreateRow(ev.ItemID)
		row.Capability = ev.Capability
		row.Description = ev.Message
		row.Status = RowRunning
		row.StartedAt = ev.Timestamp
		if row.StartedAt.IsZero() {
			row.StartedAt = time.Now()
		}

	case orchestrator.EventWorkerCompleted:
		row := t.findOrCreateRow(ev.ItemID)
		if ev.Capability != "" {
			row.Capability = ev.Capability
		}
		row.Status = RowDone
		row.Duration = ev.Duration

	case orchestrator.EventWorkerFailed:
		row := t.findOrCreateRow(ev.ItemID)
		if ev.Capability != "" {
			row.Capability = ev.Capability
		}
		row.Status = RowFailed
		row.Duration = ev.Duration
		row.Detail = ev.Message
	}
}

// Rows returns the current rows in arrival order.
func (t *WorkerTable) Rows() []*WorkerRow {
	return t.rows
}

// Counts returns how many rows are done, failed, and total.
func (t *WorkerTable) Counts() (done, failed, total int) {
	for _, row := range t.rows {
		switch row.Status {
		case RowDone:
			done++
		case RowFailed:
			failed++
		}
	}
	return done, failed, len(t.rows)
}

// View renders the worker table.
func (t *WorkerTable) View() string {
	if len(t.rows) == 0 {
		return t.statusPending.Render("Waiting for work items...")
	}

	var b strings.Builder

	// Column widths
	colStatus := 5
	colCapability := 16
	colDescription := 42
	colElapsed := 10

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s",
		colStatus, "STS",
		colCapability, "CAPABILITY",
		colDescription, "WORK ITEM",
		colElapsed, "ELAPSED",
	)
	b.WriteString(t.headerStyle.Render(header))
	b.WriteString("\n")

	for _, row := range t.rows {
		b.WriteString(t.renderRow(row, colStatus, colCapability, colDescription, colElapsed))
		b.WriteString("\n")
	}

	return b.String()
}

// renderRow renders a single work item row.
func (t *WorkerTable) renderRow(row *WorkerRow, colStatus, colCapability, colDescription, colElapsed int) string {
	icon := t.statusIcon(row.Status)
	capability := truncate(row.Capability, colCapability-2)
	description := truncate(row.Description, colDescription-2)
	elapsed := formatDuration(t.elapsed(row))

	return fmt.Sprintf("%-*s %-*s %-*s %-*s",
		colStatus, icon,
		colCapability, capability,
		colDescription, description,
		colElapsed, elapsed,
	)
}

// elapsed returns a row's display duration: the final duration for
// finished rows, the live wall clock for running ones.
func (t *WorkerTable) elapsed(row *WorkerRow) time.Duration {
	switch row.Status {
	case RowDone, RowFailed:
		return row.Duration
	case RowRunning:
		return time.Since(row.StartedAt)
	default:
		return 0
	}
}

// statusIcon returns the styled icon for a row status.
func (t *WorkerTable) statusIcon(status RowStatus) string {
	switch status {
	case RowRunning:
		return t.statusRunning.Render(iconRunning)
	case RowDone:
		return t.statusDone.Render(iconDone)
	case RowFailed:
		return t.statusFailed.Render(iconFailed)
	default:
		return t.statusPending.Render(iconPending)
	}
}

// findOrCreateRow finds a row by item ID or appends a new one.
func (t *WorkerTable) findOrCreateRow(id string) *WorkerRow {
	for _, row := range t.rows {
		if row.ID == id {
			return row
		}
	}
	row := &WorkerRow{
		ID:     id,
		Status: RowPending,
	}
	t.rows = append(t.rows, row)
	return row
}

// truncate shortens a string to fit in a column.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
