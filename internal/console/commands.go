package console

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Command is one slash command offered by the console.
type Command struct {
	Name        string
	Description string
}

var commands = []Command{
	{Name: "/help", Description: "Show available commands"},
	{Name: "/status", Description: "Show agent name, model and session counters"},
	{Name: "/copy", Description: "Copy the last reply to the clipboard"},
	{Name: "/exit", Description: "End the session"},
	{Name: "/quit", Description: "End the session"},
}

// Commands returns the command table in display order.
func Commands() []Command {
	out := make([]Command, len(commands))
	copy(out, commands)
	return out
}

// IsExit reports whether the input asks to leave, with or without the slash.
func IsExit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}

// Lookup resolves an exact slash command.
func Lookup(input string) (Command, bool) {
	token := strings.ToLower(strings.TrimSpace(input))
	for _, cmd := range commands {
		if cmd.Name == token {
			return cmd, true
		}
	}
	return Command{}, false
}

// Suggest fuzzy-matches a mistyped slash token against the command table,
// best matches first.
func Suggest(input string) []Command {
	query := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(input)), "/")
	if query == "" {
		return Commands()
	}
	keys := make([]string, len(commands))
	for i, cmd := range commands {
		keys[i] = strings.TrimPrefix(cmd.Name, "/")
	}
	results := fuzzy.Find(query, keys)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return keys[results[i].Index] < keys[results[j].Index]
		}
		return results[i].Score > results[j].Score
	})
	out := make([]Command, 0, len(results))
	for _, res := range results {
		out = append(out, commands[res.Index])
	}
	return out
}
