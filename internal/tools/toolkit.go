package tools

import (
	"context"
	"fmt"

	"passion-cli/internal/agent"
	"passion-cli/internal/logger"
)

// Tool is one callable tool: its model-facing schema plus the function
// that runs it. Run returns output text; errors become output text too so
// the model can react to them.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
	Run         func(ctx context.Context, input map[string]any) (string, error)
}

// Toolkit is the tool registry handed to the agent.
type Toolkit struct {
	order []string
	tools map[string]*Tool
	log   *logger.LogEntry
}

var _ agent.ToolRunner = (*Toolkit)(nil)

func NewToolkit() *Toolkit {
	return &Toolkit{
		tools: map[string]*Tool{},
		log:   logger.Named("tools"),
	}
}

// Default builds the standard toolkit: code execution, file access and
// planning. workdir is where shell and python tools run.
func Default(workdir string) *Toolkit {
	k := NewToolkit()
	k.Register(ExecutePythonTool(workdir))
	k.Register(ExecuteShellTool(workdir))
	k.Register(ViewTextFileTool())
	k.Register(WriteTextFileTool())

	plan := NewPlanManager()
	k.Register(CreatePlanTool(plan))
	k.Register(MarkTaskCompletedTool(plan))
	k.Register(GetPlanTool(plan))
	k.Register(AddTaskTool(plan))
	return k
}

// Register adds a tool; re-registering a name replaces the previous tool.
func (k *Toolkit) Register(t *Tool) {
	if t == nil || t.Name == "" {
		return
	}
	if _, exists := k.tools[t.Name]; !exists {
		k.order = append(k.order, t.Name)
	}
	k.tools[t.Name] = t
}

func (k *Toolkit) Specs() []agent.ToolSpec {
	specs := make([]agent.ToolSpec, 0, len(k.order))
	for _, name := range k.order {
		t := k.tools[name]
		specs = append(specs, agent.ToolSpec{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return specs
}

func (k *Toolkit) Count() int {
	return len(k.order)
}

// Execute runs a tool by name. Failures come back as output text rather
// than an error: the result always flows back to the model.
func (k *Toolkit) Execute(ctx context.Context, name string, input map[string]any) string {
	t, ok := k.tools[name]
	if !ok {
		k.log.Warnf("unknown tool requested: %s", name)
		return fmt.Sprintf("Error: unknown tool %q", name)
	}
	out, err := t.Run(ctx, input)
	if err != nil {
		k.log.Warnf("tool %s failed: %v", name, err)
		if out != "" {
			return fmt.Sprintf("Error: %v\n%s", err, out)
		}
		return fmt.Sprintf("Error: %v", err)
	}
	return out
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringArg(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return s
}

// intArg reads an integer argument; decoded JSON numbers arrive as float64.
func intArg(input map[string]any, key string, fallback int) int {
	switch v := input[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

func stringListArg(input map[string]any, key string) []string {
	raw, _ := input[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
