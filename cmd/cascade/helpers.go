package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/ShayCichocki/cascade/internal/config"
	"github.com/ShayCichocki/cascade/internal/gateway"
	"github.com/ShayCichocki/cascade/internal/signals"
	"github.com/ShayCichocki/cascade/internal/store"
)

// runContext returns a context canceled by SIGINT/SIGTERM.
func runContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt, shutting down...")
		cancel()
	}()

	return ctx, cancel
}

// watchSignals clears stale signal files and derives a context that is
// canceled when a stop signal arrives. Signal handling is optional: when
// the manager cannot start, the parent context is returned unchanged.
func watchSignals(ctx context.Context) (context.Context, func(), *signals.Manager) {
	cwd, err := os.Getwd()
	if err != nil {
		return ctx, func() {}, nil
	}

	mgr, err := signals.NewManager(cwd)
	if err != nil {
		fmt.Printf("Warning: signal handling unavailable: %v\n", err)
		return ctx, func() {}, nil
	}

	mgr.Clear()
	watched, cancel := mgr.Watch(ctx, time.Second)
	cleanup := func() {
		cancel()
		mgr.Close()
	}
	return watched, cleanup, mgr
}

// openHistory opens the run history store, or returns nil when history is
// disabled or the store cannot be opened. Recording is best-effort, so an
// unavailable store downgrades to a warning rather than failing the run.
func openHistory(cfg *config.Config) *store.DB {
	if !cfg.History.Enabled {
		return nil
	}

	path := cfg.History.Path
	if path == "" {
		path = store.DefaultPath()
	}

	db, err := store.Open(path)
	if err != nil {
		fmt.Printf("Warning: run history unavailable: %v\n", err)
		return nil
	}
	if err := db.Migrate(); err != nil {
		fmt.Printf("Warning: run history unavailable: %v\n", err)
		db.Close()
		return nil
	}
	return db
}

// closeHistory closes the history store if one was opened.
func closeHistory(db *store.DB) {
	if db != nil {
		db.Close()
	}
}

// printTokenUsage prints total gateway token usage for the process.
func printTokenUsage(client *gateway.Client) {
	tracker := client.Tracker()
	in, out := tracker.Total()
	if in == 0 && out == 0 {
		return
	}
	fmt.Printf("\nTokens: %s in / %s out across %d call(s), est. $%.4f\n",
		formatNumber(int(in)), formatNumber(int(out)), tracker.Calls(), tracker.Cost())
}

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
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

// formatDuration formats a duration in human-readable form.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

// formatNumber formats a number with commas.
func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	// Add commas every 3 digits from the right
	var result strings.Builder
	offset := len(s) % 3
	if offset > 0 {
		result.WriteString(s[:offset])
		if len(s) > offset {
			result.WriteString(",")
		}
	}
	for i := offset; i < len(s); i += 3 {
		result.WriteString(s[i : i+3])
		if i+3 < len(s) {
			result.WriteString(",")
		}
	}
	return result.String()
}
