// Package signals delivers file-based control signals through the
// .cascade/signals directory. A stop signal ends the current run between
// stages or iterations; a pause file, while present, holds the refine
// loop between rounds. Signals can be written from another terminal
// (cascade stop, or touching the pause file directly).
package signals

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	stopFile  = "stop"
	pauseFile = "pause"
)

// Manager watches and writes control signals for one run directory.
type Manager struct {
	dir string

	mu   sync.RWMutex
	stop bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Dir returns the signals directory under the given root.
func Dir(root string) string {
	return filepath.Join(root, ".cascade", "signals")
}

// NewManager creates a signal manager rooted at the given directory,
// creating the signals directory if needed. The fsnotify watcher is
// best-effort: when it cannot be set up, ShouldStop and ShouldPause fall
// back to statting the signal files.
func NewManager(root string) (*Manager, error) {
	dir := Dir(root)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	m := &Manager{dir: dir, done: make(chan struct{})}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Continue without watcher - will use stat fallback
		return m, nil
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return m, nil
	}
	m.watcher = watcher

	go m.watch()

	return m, nil
}

// watch monitors the signals directory for stop files.
func (m *Manager) watch() {
	for {
		select {
		case <-m.done:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) == stopFile && event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				m.mu.Lock()
				m.stop = true
				m.mu.Unlock()
			}
		case <-m.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

// ShouldStop returns true once a stop signal has been received. Stop is
// sticky until Clear.
func (m *Manager) ShouldStop() bool {
	// Also check the file directly in case the watcher missed it
	if _, err := os.Stat(filepath.Join(m.dir, stopFile)); err == nil {
		m.mu.Lock()
		m.stop = true
		m.mu.Unlock()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stop
}

// ShouldPause returns true while the pause file exists. Removing the
// file resumes the run.
func (m *Manager) ShouldPause() bool {
	_, err := os.Stat(filepath.Join(m.dir, pauseFile))
	return err == nil
}

// SendStop creates the stop signal file.
func (m *Manager) SendStop() error {
	path := filepath.Join(m.dir, stopFile)
	return os.WriteFile(path, []byte(time.Now().Format(time.RFC3339)), 0644)
}

// SendPause creates the pause signal file.
func (m *Manager) SendPause() error {
	path := filepath.Join(m.dir, pauseFile)
	return os.WriteFile(path, []byte(time.Now().Format(time.RFC3339)), 0644)
}

// Clear removes all signal files and resets signal state. Runs call it
// on start so a stale stop file cannot end them immediately.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stop = false

	os.Remove(filepath.Join(m.dir, stopFile))
	os.Remove(filepath.Join(m.dir, pauseFile))
}

// Watch derives a context that is canceled when a stop signal arrives,
// sampling at the given interval. The returned cancel releases the
// sampling goroutine and must be called.
func (m *Manager) Watch(ctx context.Context, interval time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if m.ShouldStop() {
					cancel()
					return
				}
			}
		}
	}()

	return ctx, cancel
}

// HoldWhilePaused blocks while the pause file exists, checking at the
// given interval. It returns early when ctx is canceled or a stop signal
// arrives.
func (m *Manager) HoldWhilePaused(ctx context.Context, interval time.Duration) {
	for m.ShouldPause() && !m.ShouldStop() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// Close shuts down the signal manager.
func (m *Manager) Close() {
	close(m.done)
	if m.watcher != nil {
		m.watcher.Close()
	}
}
