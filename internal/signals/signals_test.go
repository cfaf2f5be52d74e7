package signals

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func TestNewManagerCreatesSignalsDir(t *testing.T) {
	root := t.TempDir()
	m, err := NewManager(root)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer m.Close()

	if _, err := os.Stat(Dir(root)); err != nil {
		t.Errorf("signals directory not created: %v", err)
	}
}

func TestStopSignal(t *testing.T) {
	m := newTestManager(t)

	if m.ShouldStop() {
		t.Fatal("ShouldStop() = true before any signal")
	}

	if err := m.SendStop(); err != nil {
		t.Fatalf("SendStop failed: %v", err)
	}
	if !m.ShouldStop() {
		t.Error("ShouldStop() = false after SendStop")
	}

	// Sticky even after the file disappears.
	os.Remove(filepath.Join(m.dir, stopFile))
	if !m.ShouldStop() {
		t.Error("ShouldStop() = false after file removal, want sticky signal")
	}
}

func TestPauseSignalFollowsFile(t *testing.T) {
	m := newTestManager(t)

	if m.ShouldPause() {
		t.Fatal("ShouldPause() = true before any signal")
	}

	if err := m.SendPause(); err != nil {
		t.Fatalf("SendPause failed: %v", err)
	}
	if !m.ShouldPause() {
		t.Error("ShouldPause() = false while pause file exists")
	}

	os.Remove(filepath.Join(m.dir, pauseFile))
	if m.ShouldPause() {
		t.Error("ShouldPause() = true after pause file removed")
	}
}

func TestClearResetsSignals(t *testing.T) {
	m := newTestManager(t)

	m.SendStop()
	m.SendPause()
	if !m.ShouldStop() || !m.ShouldPause() {
		t.Fatal("signals not set before Clear")
	}

	m.Clear()

	if m.ShouldStop() {
		t.Error("ShouldStop() = true after Clear")
	}
	if m.ShouldPause() {
		t.Error("ShouldPause() = true after Clear")
	}
}

func TestWatchCancelsOnStop(t *testing.T) {
	m := newTestManager(t)

	ctx, cancel := m.Watch(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := m.SendStop(); err != nil {
		t.Fatalf("SendStop failed: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not canceled after stop signal")
	}
}

func TestWatchCancelReleasesWithoutStop(t *testing.T) {
	m := newTestManager(t)

	ctx, cancel := m.Watch(context.Background(), 10*time.Millisecond)
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled by cancel func")
	}
}

func TestHoldWhilePausedReleasesOnFileRemoval(t *testing.T) {
	m := newTestManager(t)
	m.SendPause()

	released := make(chan struct{})
	go func() {
		m.HoldWhilePaused(context.Background(), 10*time.Millisecond)
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("HoldWhilePaused returned while paused")
	case <-time.After(50 * time.Millisecond):
	}

	os.Remove(filepath.Join(m.dir, pauseFile))

	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("HoldWhilePaused did not release after pause file removal")
	}
}

func TestHoldWhilePausedReleasesOnStop(t *testing.T) {
	m := newTestManager(t)
	m.SendPause()

	released := make(chan struct{})
	go func() {
		m.HoldWhilePaused(context.Background(), 10*time.Millisecond)
		close(released)
	}()

	m.SendStop()

	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("HoldWhilePaused did not release after stop signal")
	}
}
