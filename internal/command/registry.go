// Package command maps named commands to schema-validated handlers and turns
// every request into a uniform response envelope.
package command

import (
	"context"
	"fmt"
	"slices"

	"nebula/internal/command/schema"
)

// HandlerFunc executes a command with validated parameters. The returned
// value must be JSON-serializable.
type HandlerFunc func(ctx context.Context, params schema.Values) (any, error)

// Definition pairs a parameter schema with its handler.
type Definition struct {
	Schema      schema.Validator
	Handler     HandlerFunc
	Description string
}

// Registration is a named Definition, the unit NewRegistry consumes.
type Registration struct {
	Name string
	Definition
}

// Command is shorthand for building a Registration.
func Command(name, description string, s schema.Validator, h HandlerFunc) Registration {
	return Registration{
		Name:       name,
		Definition: Definition{Schema: s, Handler: h, Description: description},
	}
}

// Registry is an immutable-after-startup mapping from command name to
// Definition. Register is not safe for concurrent use; lookups are.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry builds a registry from regs, in order.
func NewRegistry(regs ...Registration) *Registry {
	r := &Registry{defs: make(map[string]Definition, len(regs))}
	for _, reg := range regs {
		r.Register(reg.Name, reg.Definition)
	}
	return r
}

// Register stores def under name. Registering a name twice replaces the
// earlier definition and keeps its original position. A nil schema accepts
// no parameters. A nil handler panics.
func (r *Registry) Register(name string, def Definition) {
	if def.Handler == nil {
		panic(fmt.Sprintf("command: nil handler for %q", name))
	}
	if def.Schema == nil {
		def.Schema = schema.New()
	}
	if _, exists := r.defs[name]; !exists {
		r.order = append(r.order, name)
	}
	r.defs[name] = def
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Names lists command names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// First returns the earliest registered name.
func (r *Registry) First() (string, bool) {
	if len(r.order) == 0 {
		return "", false
	}
	return r.order[0], true
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.order)
}
