// Package registry manages the worker capabilities available to the
// orchestrator. It provides thread-safe storage and retrieval of
// capability definitions, preserving registration order.
package registry

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/cascade/pkg/models"
)

// ErrUnknownCapability indicates that a plan or caller referenced a worker
// capability that has not been registered.
var ErrUnknownCapability = errors.New("unknown worker capability")

// Registry holds the worker capabilities an orchestrator can dispatch to.
type Registry struct {
	// caps maps capability names to their definitions.
	caps map[string]models.Capability
	// order records registration order for deterministic listing.
	order []string
	// mu protects all fields.
	mu sync.RWMutex
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		caps: make(map[string]models.Capability),
	}
}

// Register adds a capability to the registry. Registering a name that
// already exists replaces its definition but keeps its original position.
func (r *Registry) Register(c models.Capability) error {
	if !c.Valid() {
		return fmt.Errorf("invalid capability %q", c.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.caps[c.Name]; !exists {
		r.order = append(r.order, c.Name)
	}
	r.caps[c.Name] = c
	return nil
}

// Resolve retrieves a capability by name.
func (r *Registry) Resolve(name string) (models.Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.caps[name]
	if !ok {
		return models.Capability{}, fmt.Errorf("%w: %q", ErrUnknownCapability, name)
	}
	return c, nil
}

// Names returns the registered capability names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.order...)
}

// All returns all registered capabilities in registration order.
func (r *Registry) All() []models.Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps := make([]models.Capability, 0, len(r.order))
	for _, name := range r.order {
		caps = append(caps, r.caps[name])
	}
	return caps
}

// Count returns the number of registered capabilities.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.caps)
}

// registryFile represents the capabilities YAML file structure.
type registryFile struct {
	Capabilities []models.Capability `yaml:"capabilities"`
}

// LoadFile loads capability definitions from a YAML file. Loaded
// capabilities are added alongside any already registered.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse capabilities file: %w", err)
	}

	for _, c := range file.Capabilities {
		if err := r.Register(c); err != nil {
			return fmt.Errorf("capabilities file %s: %w", path, err)
		}
	}
	return nil
}

// Defaults returns a registry populated with the built-in worker styles.
func Defaults() *Registry {
	r := New()
	for _, c := range []models.Capability{
		{
			Name:        "formal",
			Description: "Write a precise, technical version that emphasizes specifications",
			Model:       models.TierHaiku,
			System:      "You write in a formal, precise register and emphasize specifications.",
		},
		{
			Name:        "conversational",
			Description: "Write an engaging, friendly version that connects with readers",
			Model:       models.TierHaiku,
			System:      "You write in a casual, friendly register that connects with readers.",
		},
		{
			Name:        "technical",
			Description: "Write an implementation-focused version with concrete details and examples",
			Model:       models.TierHaiku,
			System:      "You write for expert readers and ground every claim in concrete detail.",
		},
		{
			Name:        "concise",
			Description: "Write a compact version that covers only the essential points",
			Model:       models.TierHaiku,
			System:      "You write tersely and cut everything that is not essential.",
		},
	} {
		// Built-in definitions are statically valid.
		_ = r.Register(c)
	}
	return r
}
