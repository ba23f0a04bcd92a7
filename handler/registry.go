package handler

import (
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// SchemaInfo summarises a registered schema.
type SchemaInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Fields      int    `json:"fields"`
}

type registered struct {
	validator   *schema.Validator
	description string
}

// Registry holds named validators. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registered
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registered)}
}

// Register adds or replaces the validator served under name.
func (r *Registry) Register(name, description string, v *schema.Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = registered{validator: v, description: description}
}

func (r *Registry) Lookup(name string) (*schema.Validator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e.validator, ok
}

// List returns the registered schemas sorted by name.
func (r *Registry) List() []SchemaInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]SchemaInfo, 0, len(r.entries))
	for _, name := range slices.Sorted(maps.Keys(r.entries)) {
		e := r.entries[name]
		out = append(out, SchemaInfo{
			Name:        name,
			Description: e.description,
			Fields:      e.validator.Schema().Len(),
		})
	}
	return out
}
