package attribute

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrTypeNotRegistered indicates that no descriptor table is registered for
// the requested resource type.
//
// Example:
//
//	table, err := registry.ForType("authors")
//	if errors.Is(err, attribute.ErrTypeNotRegistered) {
//	    log.Errorf("missing descriptors: %v", err)
//	}
var ErrTypeNotRegistered = errors.New("resource type not registered")

// Registry maps resource types to their descriptor tables.
type Registry interface {
	// ForType returns the descriptor table for resourceType.
	// Returns ErrTypeNotRegistered if the type is unknown.
	ForType(resourceType string) (*Table, error)

	// IsRegistered reports whether resourceType has a table.
	IsRegistered(resourceType string) bool

	// AllTypes returns the registered resource types, sorted.
	AllTypes() []string
}

// DefaultRegistry is an in-memory Registry.
//
// This implementation is thread-safe and can be used concurrently.
type DefaultRegistry struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewRegistry creates an empty DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		tables: make(map[string]*Table),
	}
}

// Register associates a table with resourceType, replacing any previous table.
func (r *DefaultRegistry) Register(resourceType string, table *Table) *DefaultRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[resourceType] = table
	return r
}

// ForType returns the descriptor table for resourceType.
// Thread-safe for concurrent access.
func (r *DefaultRegistry) ForType(resourceType string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, ok := r.tables[resourceType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotRegistered, resourceType)
	}
	return table, nil
}

// IsRegistered reports whether resourceType has a table.
// Thread-safe for concurrent access.
func (r *DefaultRegistry) IsRegistered(resourceType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tables[resourceType]
	return ok
}

// AllTypes returns the registered resource types, sorted.
// Thread-safe for concurrent access.
func (r *DefaultRegistry) AllTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.tables))
	for t := range r.tables {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
