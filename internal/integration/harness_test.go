//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ShayCichocki/cascade/internal/gateway"
	"github.com/ShayCichocki/cascade/internal/store"
)

// scriptedGateway fakes the model behind the full stack. reply returns the
// raw model text for a request; structured calls decode and validate it
// the way the production gateway does.
type scriptedGateway struct {
	reply func(req gateway.Request) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (g *scriptedGateway) Complete(ctx context.Context, req gateway.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	g.record(req.Prompt)
	return g.reply(req)
}

func (g *scriptedGateway) CompleteObject(ctx context.Context, req gateway.Request, out gateway.Validatable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.record(req.Prompt)

	text, err := g.reply(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return out.Validate()
}

func (g *scriptedGateway) record(prompt string) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
}

func (g *scriptedGateway) recorded() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string{}, g.prompts...)
}

// openTestStore opens a migrated run-history store in a temp directory.
func openTestStore(t *testing.T) *store.DB {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}
