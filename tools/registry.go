package tools

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
)

// ToolExecutor is the function signature for executing a tool with
// JSON-decoded arguments
type ToolExecutor func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Registry manages the registration of tools. It keeps the typed genkit
// definitions (for hosts that hand tools to an LLM runtime) alongside
// generic executors (for hosts that invoke by name with decoded JSON).
type Registry struct {
	tools     []ai.Tool
	executors map[string]ToolExecutor
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools:     make([]ai.Tool, 0),
		executors: make(map[string]ToolExecutor),
	}
}

// Register adds a tool to the registry with its executor.
// Tool names must be unique; registering a duplicate name is an error.
func (r *Registry) Register(tool ai.Tool, executor ToolExecutor) error {
	name := tool.Definition().Name
	if _, exists := r.executors[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}
	r.tools = append(r.tools, tool)
	r.executors[name] = executor
	return nil
}

// GetTools returns all registered tools
func (r *Registry) GetTools() []ai.Tool {
	return r.tools
}

// Get returns a registered tool by name
func (r *Registry) Get(name string) (ai.Tool, bool) {
	for _, t := range r.tools {
		if t.Definition().Name == name {
			return t, true
		}
	}
	return nil, false
}

// Names returns the names of all registered tools in registration order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		names = append(names, t.Definition().Name)
	}
	return names
}

// ExecuteTool runs a registered tool by name
func (r *Registry) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	executor, ok := r.executors[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return executor(ctx, args)
}
