// Package commands holds the named command registry shared by the ':'
// command line, plugins and the CLI.
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

var (
	// ErrCommandExists is returned when registering a name twice.
	ErrCommandExists = errors.New("command already registered")
	// ErrCommandNotFound is returned when executing an unknown name.
	ErrCommandNotFound = errors.New("unknown command")
)

// Handler runs a command with its whitespace-separated arguments.
type Handler func(args []string) error

// Registry maps command names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a command. Empty names and duplicates are rejected.
func (r *Registry) Register(name string, handler Handler) error {
	if name == "" {
		return errors.New("command name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("command '%s' has no handler", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("command '%s': %w", name, ErrCommandExists)
	}
	r.handlers[name] = handler
	logger.DebugTagf("commands", "Registry: Registered command ':%s'", name)
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[name]
	return ok
}

// Execute runs the named command.
func (r *Registry) Execute(name string, args []string) error {
	r.mu.RLock()
	handler, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}
	logger.Debugf("Registry: Executing command ':%s' with args %v", name, args)
	return handler(args)
}

// ExecuteLine splits a command line such as "theme Paper" and executes it.
// An empty line is a no-op.
func (r *Registry) ExecuteLine(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	return r.Execute(parts[0], parts[1:])
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
