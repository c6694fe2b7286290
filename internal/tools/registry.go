// Package tools exposes the use cases as named tools taking a JSON argument
// object. The set of tools is fixed when the Registry is built.
package tools

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/florianilch/linkedin-mcp/internal/apperrors"
)

// Tool describes one invocable operation.
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema

	invoke func(ctx context.Context, args json.RawMessage) (any, error)
}

// Registry is a static dispatch table from tool name to handler.
type Registry struct {
	tools []Tool
	index map[string]int
}

// NewRegistry builds the registry over deps.
func NewRegistry(deps Dependencies) *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, t := range definitions(deps) {
		r.index[t.Name] = len(r.tools)
		r.tools = append(r.tools, t)
	}
	return r
}

// Tools returns the registered tools in declaration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Has reports whether name is a registered tool.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Call decodes args for the named tool, validates them and runs it.
// An unregistered name fails with an UnknownOperation error before anything
// else happens.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, apperrors.UnknownOperation(name)
	}
	return r.tools[i].invoke(ctx, args)
}
