package openai

import (
	"testing"

	"passion-cli/internal/agent"
)

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://api.example.com", "https://api.example.com/v1"},
		{"https://api.example.com/v1", "https://api.example.com/v1"},
		{"https://api.example.com/v1/", "https://api.example.com/v1"},
		{"https://api.example.com/v1/chat/completions", "https://api.example.com/v1"},
		{"https://api.example.com/compatible-mode/v1", "https://api.example.com/compatible-mode/v1"},
	}
	for _, tc := range cases {
		if got := normalizeBaseURL(tc.in); got != tc.want {
			t.Fatalf("normalizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToChatMessagesEncodesToolTraffic(t *testing.T) {
	prompt := agent.Prompt{
		System: "be helpful",
		Messages: []agent.Msg{
			{
				Role:    agent.RoleUser,
				Content: []agent.ContentBlock{agent.TextBlock{Text: "list files"}},
			},
			{
				Role: agent.RoleAssistant,
				Content: []agent.ContentBlock{
					agent.TextBlock{Text: "Running ls."},
					agent.ToolUseBlock{ID: "call_1", Name: "execute_shell_command", Input: map[string]any{"command": "ls"}},
				},
			},
			{
				Role: agent.RoleUser,
				Content: []agent.ContentBlock{
					agent.ToolResultBlock{ID: "call_1", Name: "execute_shell_command", Output: agent.TextOutput("file.txt")},
				},
			},
		},
	}

	msgs := toChatMessages(prompt)

	if len(msgs) != 4 {
		t.Fatalf("messages count = %d, want system+user+assistant+tool", len(msgs))
	}
	if msgs[0].OfSystem == nil {
		t.Fatalf("msgs[0] should be the system message, got %#v", msgs[0])
	}
	if msgs[1].OfUser == nil {
		t.Fatalf("msgs[1] should be the user message, got %#v", msgs[1])
	}

	assistant := msgs[2].OfAssistant
	if assistant == nil {
		t.Fatalf("msgs[2] should be assistant, got %#v", msgs[2])
	}
	if len(assistant.ToolCalls) != 1 {
		t.Fatalf("assistant tool calls = %d, want 1", len(assistant.ToolCalls))
	}
	call := assistant.ToolCalls[0].OfFunction
	if call == nil || call.ID != "call_1" || call.Function.Name != "execute_shell_command" {
		t.Fatalf("unexpected tool call: %#v", assistant.ToolCalls[0])
	}
	if call.Function.Arguments != `{"command":"ls"}` {
		t.Fatalf("arguments = %q", call.Function.Arguments)
	}

	tool := msgs[3].OfTool
	if tool == nil || tool.ToolCallID != "call_1" {
		t.Fatalf("msgs[3] should be the tool result for call_1, got %#v", msgs[3])
	}
}

func TestToChatToolsSkipsNamelessSpecs(t *testing.T) {
	tools := toChatTools([]agent.ToolSpec{
		{Name: "  ", Description: "bogus"},
		{Name: "get_plan", Description: "Show the current plan", Parameters: map[string]any{"type": "object"}},
	})

	if len(tools) != 1 {
		t.Fatalf("tools count = %d, want 1", len(tools))
	}
	fn := tools[0].OfFunction
	if fn == nil || fn.Function.Name != "get_plan" {
		t.Fatalf("unexpected tool: %#v", tools[0])
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("New with empty key should fail")
	}
}
