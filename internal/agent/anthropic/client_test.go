package anthropic

import (
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"

	"passion-cli/internal/agent"
)

func TestBuildMessageParamsRegistersToolsAndEncodesToolBlocks(t *testing.T) {
	prompt := agent.Prompt{
		Model:  "claude-test",
		System: "be helpful",
		Tools: []agent.ToolSpec{
			{
				Name:        "execute_shell_command",
				Description: "Run a shell command",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"command": map[string]any{"type": "string"},
					},
					"required": []string{"command"},
				},
			},
		},
		Messages: []agent.Msg{
			{
				Role: agent.RoleAssistant,
				Content: []agent.ContentBlock{
					agent.ToolUseBlock{ID: "toolu_1", Name: "execute_shell_command", Input: map[string]any{"command": "echo hi"}},
				},
			},
			{
				Role: agent.RoleUser,
				Content: []agent.ContentBlock{
					agent.ToolResultBlock{ID: "toolu_1", Name: "execute_shell_command", Output: agent.TextOutput("hi")},
				},
			},
		},
	}

	params := buildMessageParams(prompt, anthropic.Model("claude-test"))

	if len(params.Tools) != 1 {
		t.Fatalf("tools count = %d, want 1", len(params.Tools))
	}
	tool := params.Tools[0]
	if tool.OfTool == nil || tool.OfTool.Name != "execute_shell_command" {
		t.Fatalf("tools[0] = %#v, want execute_shell_command", tool)
	}
	if len(tool.OfTool.InputSchema.Required) != 1 || tool.OfTool.InputSchema.Required[0] != "command" {
		t.Fatalf("input schema required = %#v", tool.OfTool.InputSchema.Required)
	}

	if len(params.System) != 1 || params.System[0].Text != "be helpful" {
		t.Fatalf("system = %#v, want single system block", params.System)
	}
	if len(params.Messages) != 2 {
		t.Fatalf("messages count = %d, want 2", len(params.Messages))
	}
	if got := params.Messages[0].Role; got != anthropic.MessageParamRoleAssistant {
		t.Fatalf("messages[0].role = %s, want assistant", got)
	}
	if len(params.Messages[0].Content) != 1 || params.Messages[0].Content[0].OfToolUse == nil {
		t.Fatalf("messages[0] should contain tool_use block, got %#v", params.Messages[0].Content)
	}
	if params.Messages[0].Content[0].OfToolUse.ID != "toolu_1" {
		t.Fatalf("unexpected tool_use payload: %#v", params.Messages[0].Content[0].OfToolUse)
	}

	if got := params.Messages[1].Role; got != anthropic.MessageParamRoleUser {
		t.Fatalf("messages[1].role = %s, want user", got)
	}
	result := params.Messages[1].Content[0].OfToolResult
	if result == nil || result.ToolUseID != "toolu_1" {
		t.Fatalf("messages[1] should carry tool_result for toolu_1, got %#v", params.Messages[1].Content)
	}
	if len(result.Content) != 1 || result.Content[0].OfText == nil || result.Content[0].OfText.Text != "hi" {
		t.Fatalf("tool_result.content = %#v, want text hi", result.Content)
	}
}

func TestBuildMessageParamsSkipsThinkingAndEmptyBlocks(t *testing.T) {
	prompt := agent.Prompt{
		Messages: []agent.Msg{
			{
				Role: agent.RoleAssistant,
				Content: []agent.ContentBlock{
					agent.ThinkingBlock{Thinking: "pondering"},
					agent.TextBlock{Text: "   "},
				},
			},
			{
				Role:    agent.RoleUser,
				Content: []agent.ContentBlock{agent.TextBlock{Text: "hello"}},
			},
		},
	}

	params := buildMessageParams(prompt, anthropic.Model("claude-test"))

	if len(params.Messages) != 1 {
		t.Fatalf("messages count = %d, want only the user message", len(params.Messages))
	}
	if params.Messages[0].Role != anthropic.MessageParamRoleUser {
		t.Fatalf("messages[0].role = %s, want user", params.Messages[0].Role)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://api.example.com", "https://api.example.com"},
		{"https://api.example.com/", "https://api.example.com"},
		{"https://api.example.com/v1", "https://api.example.com"},
		{"https://api.example.com/v1/", "https://api.example.com"},
	}
	for _, tc := range cases {
		if got := normalizeBaseURL(tc.in); got != tc.want {
			t.Fatalf("normalizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("New with empty token should fail")
	}
}
