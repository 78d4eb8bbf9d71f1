package renderer

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// RegistryOption customises a Registry at construction time.
type RegistryOption func(*Registry)

// WithLogger injects the logger used to trace registrations.
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithoutBuiltins skips registering the json, js, xml and update renderers.
func WithoutBuiltins() RegistryOption {
	return func(r *Registry) {
		r.skipBuiltins = true
	}
}

// Registry is the catalog of every renderer known to an application. Entries
// are added or replaced but never removed. Reads and writes are guarded by a
// read-mostly lock, so renderers may be registered after traffic begins.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	order    []string

	logger       *zap.Logger
	skipBuiltins bool
}

// NewRegistry creates a registry preloaded with the built-in renderers unless
// WithoutBuiltins is supplied.
func NewRegistry(options ...RegistryOption) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if !r.skipBuiltins {
		r.registerBuiltins()
	}
	return r
}

// Register adds handler under name. Registering an existing name replaces the
// previous handler in place; the catalog never grows for repeated names.
func (r *Registry) Register(name string, handler Handler) error {
	name = normalizeName(name)
	if name == "" {
		return errors.New("render: renderer name is required")
	}
	if handler == nil {
		return errors.New("render: renderer handler is required")
	}

	r.mu.Lock()
	_, replaced := r.handlers[name]
	if !replaced {
		r.order = append(r.order, name)
	}
	r.handlers[name] = handler
	r.mu.Unlock()

	r.logger.Debug("renderer registered", zap.String("renderer", name), zap.Bool("replaced", replaced))
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, handler Handler) {
	if err := r.Register(name, handler); err != nil {
		panic(err)
	}
}

// Add registers handler on reg and returns reg so calls can be chained during
// bootstrap. It panics on invalid input, like MustRegister.
func Add(reg *Registry, name string, handler Handler) *Registry {
	reg.MustRegister(name, handler)
	return reg
}

// Get retrieves the handler registered under name.
func (r *Registry) Get(name string) (Handler, error) {
	key := normalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[key]
	if !ok {
		return nil, &UnknownRendererError{Name: key}
	}
	return handler, nil
}

// Has reports whether a renderer is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.handlers[normalizeName(name)]
	return ok
}

// Len reports the number of distinct renderer names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns every registered renderer as a Set ordered by first
// registration. Later registrations do not affect the returned Set.
func (r *Registry) Snapshot() *Set {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		entries = append(entries, Entry{Name: name, Handler: r.handlers[name]})
	}
	return emptySet.with(entries)
}

// lookup resolves every name or fails on the first unknown one.
func (r *Registry) lookup(names []string) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(names))
	for _, raw := range names {
		name := normalizeName(raw)
		handler, ok := r.handlers[name]
		if !ok {
			return nil, &UnknownRendererError{Name: name}
		}
		entries = append(entries, Entry{Name: name, Handler: handler})
	}
	return entries, nil
}

func (r *Registry) registerBuiltins() {
	r.MustRegister(JSON, renderJSON)
	r.MustRegister(JS, renderJS)
	r.MustRegister(XML, renderXML)
	r.MustRegister(Update, renderUpdate)
}

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
