package prompts

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed text/*
var builtinFS embed.FS

// Name identifies a builtin prompt.
type Name string

const (
	PromptSystem Name = "system"
)

var builtinFiles = map[Name]string{
	PromptSystem: "text/system_prompt.md",
}

var builtinPrompts = func() map[Name]string {
	out := make(map[Name]string, len(builtinFiles))
	for name, path := range builtinFiles {
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("load builtin prompt %q from %s: %v", name, path, err))
		}
		out[name] = strings.TrimSpace(string(data))
	}
	return out
}()

// Builtin returns a builtin prompt by name.
func Builtin(name Name) (string, bool) {
	text, ok := builtinPrompts[name]
	return text, ok
}

// System composes the agent's system prompt: identity line plus the
// plan-first working instructions.
func System(agentName string) string {
	name := strings.TrimSpace(agentName)
	if name == "" {
		name = "Passion"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, a helpful agent that solves tasks with tools.\n\n", name)
	sb.WriteString(builtinPrompts[PromptSystem])
	return sb.String()
}
