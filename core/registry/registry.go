// Package registry holds registered resources by object name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/dispatch"
	"github.com/anoideaopen/mx/core/naming"
	"github.com/google/uuid"
)

var (
	ErrAlreadyRegistered = errors.New("already registered")
	ErrNotRegistered     = errors.New("not registered")
)

// Entry is a registered resource.
type Entry struct {
	Name       naming.ObjectName
	Resource   any
	Descriptor *descriptor.Descriptor
	Dispatcher *dispatch.Dispatcher
	ID         uuid.UUID
	Registered time.Time
}

// Registry is an in-memory name to entry map safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds an entry under e.Name. ID and Registered are filled in.
func (r *Registry) Register(e Entry) (*Entry, error) {
	if e.Name.IsZero() {
		return nil, fmt.Errorf("%w: empty object name", naming.ErrMalformedName)
	}
	key := e.Name.Canonical()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[key]; ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, e.Name)
	}

	e.ID = uuid.New()
	e.Registered = time.Now()
	r.entries[key] = &e

	return &e, nil
}

// Unregister removes the entry registered under name.
func (r *Registry) Unregister(name naming.ObjectName) (*Entry, error) {
	key := name.Canonical()

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	delete(r.entries, key)

	return e, nil
}

// IsRegistered reports whether name is taken.
func (r *Registry) IsRegistered(name naming.ObjectName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[name.Canonical()]
	return ok
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name naming.ObjectName) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name.Canonical()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return e, nil
}

// Names returns registered names sorted by canonical form.
func (r *Registry) Names() []naming.ObjectName {
	r.mu.RLock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make([]naming.ObjectName, 0, len(keys))
	for _, k := range keys {
		names = append(names, r.entries[k].Name)
	}
	r.mu.RUnlock()

	return names
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
