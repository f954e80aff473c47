package op

import (
	"fmt"
	"sort"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// Registry is the closed set of operation handlers. Lookups of
// unregistered names fail with a validation error.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler, rejecting duplicate names.
func (r *Registry) Register(h Handler) error {
	name := h.Name()
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("operation %q already registered", name)
	}
	r.handlers[name] = h
	return nil
}

// MustRegister panics on registration failure; wiring the registry is a
// startup-time concern.
func (r *Registry) MustRegister(handlers ...Handler) {
	for _, h := range handlers {
		if err := r.Register(h); err != nil {
			panic(err)
		}
	}
}

// Get resolves an operation name to its handler.
func (r *Registry) Get(name string) (Handler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, scenefolderrors.NewValidationError("operation", fmt.Sprintf("unknown operation %q", name), nil)
	}
	return h, nil
}

// Names lists the registered operation names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
