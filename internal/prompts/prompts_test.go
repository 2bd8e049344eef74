package prompts

import (
	"strings"
	"testing"
)

func TestBuiltinPromptsLoaded(t *testing.T) {
	text, ok := Builtin(PromptSystem)
	if !ok {
		t.Fatal("missing builtin system prompt")
	}
	if !strings.Contains(text, "create_plan") {
		t.Fatalf("system prompt should reference planning tools, got:\n%s", text)
	}
}

func TestSystemComposesIdentity(t *testing.T) {
	got := System("Passion")
	if !strings.HasPrefix(got, "You are Passion") {
		t.Fatalf("system prompt = %q", got)
	}
	if !strings.Contains(got, "mark_task_completed") {
		t.Fatalf("system prompt missing working instructions:\n%s", got)
	}

	// Empty name falls back to the default identity.
	if !strings.HasPrefix(System("  "), "You are Passion") {
		t.Fatal("empty agent name should fall back to Passion")
	}
}
