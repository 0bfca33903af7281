package registry

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jchultarsky101/pcli2-mcp/internal/translate"
)

// Tool is one registry entry: the MCP-facing definition plus the
// translation spec for building the pcli2 command line.
type Tool struct {
	Def  *mcp.Tool
	Spec translate.Spec
}

// Registry is the immutable, ordered tool catalog.
type Registry struct {
	order []string
	tools map[string]*Tool
}

// Option configures registry construction.
type Option func(*Registry)

// WithGenericTool adds the free-form "pcli2" tool alongside the
// specific catalog. The generic tool accepts {command, subcommand,
// args} and forwards them verbatim.
func WithGenericTool() Option {
	return func(r *Registry) {
		r.add(genericTool())
	}
}

// New builds the registry with the full specific-tool catalog, then
// applies options in order. The set of tools is fixed after New
// returns.
func New(opts ...Option) *Registry {
	r := &Registry{
		tools: make(map[string]*Tool, 24),
	}

	for _, t := range catalog() {
		r.add(t)
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Registry) add(t *Tool) {
	if _, exists := r.tools[t.Def.Name]; exists {
		return
	}

	r.order = append(r.order, t.Def.Name)
	r.tools[t.Def.Name] = t
}

// List returns all tools in registration order.
func (r *Registry) List() []*Tool {
	out := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}

	return out
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (*Tool, bool) {
	t, ok := r.tools[name]

	return t, ok
}

// Definitions returns the MCP tool definitions in registration order,
// as served by tools/list.
func (r *Registry) Definitions() []*mcp.Tool {
	out := make([]*mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Def)
	}

	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}
