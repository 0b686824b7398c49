// Package family handles registering, loading, validating, and resolving model family schemas.
package family

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsforecast/ainode/internal/metrics"
	"github.com/tsforecast/ainode/internal/status"
	"github.com/tsforecast/ainode/pkg/types"
)

// ErrDuplicateFamily is returned when a family id is registered twice.
var ErrDuplicateFamily = errors.New("model family already registered")

// Registry holds model family schemas. It is populated during startup and
// only read afterwards, so lookups need no locking.
type Registry struct {
	families map[string]*types.ModelFamily
	order    []string
}

// NewRegistry creates a new empty family registry.
func NewRegistry() *Registry {
	return &Registry{
		families: make(map[string]*types.ModelFamily),
	}
}

// Register validates a family and adds a copy of it to the registry.
func (r *Registry) Register(f *types.ModelFamily) error {
	if f == nil {
		return fmt.Errorf("%w: nil family", ErrInvalidFamily)
	}
	if err := ValidateFamily(f); err != nil {
		return err
	}
	if _, exists := r.families[f.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFamily, f.ID)
	}

	stored := f.Clone()
	canonicalizeDefaults(stored)
	r.families[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	metrics.FamiliesRegistered.Add(1)
	return nil
}

// MustRegister is Register for startup-time tables; it panics on a defect.
func (r *Registry) MustRegister(f *types.ModelFamily) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// Resolve returns the family registered under id. Unknown ids yield a
// *status.Error of kind UnknownFamily. The returned family is shared and
// must not be modified.
func (r *Registry) Resolve(id string) (*types.ModelFamily, error) {
	f, ok := r.families[id]
	if !ok {
		return nil, status.NewUnknownFamily(id)
	}
	return f, nil
}

// Get returns a private copy of the family registered under id.
func (r *Registry) Get(id string) (*types.ModelFamily, error) {
	f, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}
	return f.Clone(), nil
}

// ListFamilies returns the registered family ids in registration order.
func (r *Registry) ListFamilies() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered families.
func (r *Registry) Len() int { return len(r.order) }

// LoadDir loads all YAML family files from a directory.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading family dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		path := filepath.Join(dir, name)
		if err := r.LoadFile(path); err != nil {
			return fmt.Errorf("loading family %s: %w", path, err)
		}
	}
	return nil
}

// LoadFile loads a single family YAML file.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var f types.ModelFamily
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	if err := r.Register(&f); err != nil {
		return fmt.Errorf("registering family %q: %w", f.ID, err)
	}
	return nil
}
