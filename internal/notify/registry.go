package notify

import (
	"fmt"
	"sync"

	"github.com/usmankz/coinsight/internal/core"
)

// Registry manages refresh listeners
type Registry struct {
	mu        sync.RWMutex
	listeners map[string]Listener
}

// NewRegistry creates a new listener registry
func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[string]Listener),
	}
}

// Register adds a listener to the registry
func (r *Registry) Register(l Listener) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := l.Name()
	if _, exists := r.listeners[name]; exists {
		return fmt.Errorf("listener %s already registered", name)
	}

	r.listeners[name] = l
	return nil
}

// GetAll returns all registered listeners
func (r *Registry) GetAll() []Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		result = append(result, l)
	}
	return result
}

// NotifyAll pushes a snapshot to all registered listeners. A listener error
// never interrupts delivery to the others.
func (r *Registry) NotifyAll(snapshot core.Snapshot) map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	errors := make(map[string]error)
	for name, l := range r.listeners {
		if err := l.OnRefresh(snapshot); err != nil {
			errors[name] = err
		}
	}
	return errors
}
