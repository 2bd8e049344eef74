package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type planTask struct {
	description string
	completed   bool
	result      string
}

// PlanManager holds the agent's working plan for one session.
type PlanManager struct {
	mu    sync.Mutex
	tasks []planTask
}

func NewPlanManager() *PlanManager {
	return &PlanManager{}
}

// Create replaces the plan with a fresh pending task list.
func (p *PlanManager) Create(tasks []string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tasks = make([]planTask, 0, len(tasks))
	for _, t := range tasks {
		p.tasks = append(p.tasks, planTask{description: t})
	}
	return p.renderLocked()
}

// Complete marks a task done by its 1-based number.
func (p *PlanManager) Complete(number int, result string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := number - 1
	if idx < 0 || idx >= len(p.tasks) {
		return fmt.Sprintf("Error: Invalid task index %d.", number)
	}
	p.tasks[idx].completed = true
	p.tasks[idx].result = result
	return fmt.Sprintf("Task %d marked as completed.\n%s", number, p.renderLocked())
}

// Add appends a pending task to the plan.
func (p *PlanManager) Add(description string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tasks = append(p.tasks, planTask{description: description})
	return "Task added.\n" + p.renderLocked()
}

// Render returns the current plan, or a placeholder when none exists.
func (p *PlanManager) Render() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.tasks) == 0 {
		return "No plan active."
	}
	return p.renderLocked()
}

func (p *PlanManager) renderLocked() string {
	lines := []string{"Current Plan:"}
	for i, task := range p.tasks {
		icon := "⬜"
		if task.completed {
			icon = "✅"
		}
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1, icon, task.description))
		if task.result != "" {
			lines = append(lines, fmt.Sprintf("   Result: %s", task.result))
		}
	}
	return strings.Join(lines, "\n")
}

func CreatePlanTool(p *PlanManager) *Tool {
	return &Tool{
		Name:        "create_plan",
		Description: "Create a new plan with a list of tasks to accomplish a goal.",
		Parameters: objectSchema(map[string]any{
			"tasks": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "A list of task descriptions.",
			},
		}, "tasks"),
		Run: func(_ context.Context, input map[string]any) (string, error) {
			tasks := stringListArg(input, "tasks")
			if len(tasks) == 0 {
				return "", fmt.Errorf("tasks must be a non-empty list of strings")
			}
			return p.Create(tasks), nil
		},
	}
}

func MarkTaskCompletedTool(p *PlanManager) *Tool {
	return &Tool{
		Name:        "mark_task_completed",
		Description: "Mark a specific task in the plan as completed.",
		Parameters: objectSchema(map[string]any{
			"task_index": map[string]any{
				"type":        "integer",
				"description": "The 1-based index of the task to mark as completed.",
			},
			"result": map[string]any{
				"type":        "string",
				"description": "Optional summary of the result of the task.",
			},
		}, "task_index"),
		Run: func(_ context.Context, input map[string]any) (string, error) {
			number := intArg(input, "task_index", 0)
			return p.Complete(number, stringArg(input, "result")), nil
		},
	}
}

func GetPlanTool(p *PlanManager) *Tool {
	return &Tool{
		Name:        "get_plan",
		Description: "Retrieve the current status of the plan.",
		Parameters:  objectSchema(map[string]any{}),
		Run: func(_ context.Context, _ map[string]any) (string, error) {
			return p.Render(), nil
		},
	}
}

func AddTaskTool(p *PlanManager) *Tool {
	return &Tool{
		Name:        "add_task",
		Description: "Add a new task to the end of the current plan.",
		Parameters: objectSchema(map[string]any{
			"description": map[string]any{
				"type":        "string",
				"description": "Description of the new task.",
			},
		}, "description"),
		Run: func(_ context.Context, input map[string]any) (string, error) {
			desc := stringArg(input, "description")
			if strings.TrimSpace(desc) == "" {
				return "", fmt.Errorf("description is required")
			}
			return p.Add(desc), nil
		},
	}
}
