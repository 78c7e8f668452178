package commands

import (
	"fmt"
	"sort"

	"github.com/dshills/quill/internal/app"
)

// Command acts on the application in response to a key.
type Command func(a *app.Application) error

// Registry maps command names to commands. Names are namespaced by group,
// e.g. "buffer::save".
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns a registry holding every built-in command.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]Command)}
	registerApplication(r)
	registerBuffer(r)
	registerCursor(r)
	registerSelection(r)
	registerSearch(r)
	registerSearchSelect(r)
	registerLineJump(r)
	registerPath(r)
	registerConfirm(r)
	registerView(r)
	registerWorkspace(r)
	return r
}

// Register adds or replaces a command.
func (r *Registry) Register(name string, c Command) {
	r.commands[name] = c
}

// Get returns the command registered under name.
func (r *Registry) Get(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// Names returns all command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run runs the command registered under name.
func (r *Registry) Run(a *app.Application, name string) error {
	c, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return c(a)
}
