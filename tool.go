package quakeagent

import "context"

// Tool is a single callable capability exposed to the model. Tools receive
// the raw action input string and return a string observation. Errors are
// surfaced to the model as error-text observations, so tools should return
// messages the model can act on ("location could not be resolved", not
// internal stack detail).
type Tool interface {
	// Name returns the tool's identifier, unique within a registry. The
	// model refers to tools by this exact name in its Action lines.
	Name() string

	// Description returns the usage description injected into the prompt's
	// tool catalogue.
	Description() string

	// Call executes the tool with the given input.
	Call(ctx context.Context, input string) (string, error)
}

// Registry associates tool names with tools. Build it once, before
// constructing the agent, and pass it in explicitly; the registry is not
// meant to change while runs are in flight.
type Registry struct {
	order  []string
	byName map[string]Tool
}

// NewRegistry creates a Registry holding the given tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{
		byName: make(map[string]Tool, len(tools)),
	}
	for _, tool := range tools {
		r.Register(tool)
	}
	return r
}

// Register adds a tool, replacing any existing tool with the same name.
// Returns the registry for chaining.
func (r *Registry) Register(tool Tool) *Registry {
	name := tool.Name()
	if _, exists := r.byName[name]; !exists {
		r.order = append(r.order, name)
	}
	r.byName[name] = tool
	return r
}

// Lookup returns the tool with the given name by exact match.
func (r *Registry) Lookup(name string) (Tool, bool) {
	tool, ok := r.byName[name]
	return tool, ok
}

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.byName[name])
	}
	return tools
}
