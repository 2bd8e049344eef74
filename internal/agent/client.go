package agent

import (
	"context"
	"errors"
	"strings"
)

// ToolSpec declares one tool to the model, following the common function
// tool schema convention.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Prompt is one complete model request: model, system text, conversation
// and tool declarations.
type Prompt struct {
	Model    string
	System   string
	Messages []Msg
	Tools    []ToolSpec
}

type StreamEventType string

const (
	StreamEventTextDelta     StreamEventType = "text_delta"
	StreamEventThinkingDelta StreamEventType = "thinking_delta"
	StreamEventToolUseStart  StreamEventType = "tool_use_start"
	StreamEventInputDelta    StreamEventType = "input_delta"
	StreamEventCompleted     StreamEventType = "completed"
)

// StreamEvent is one incremental piece of a model response. Text carries
// text and thinking deltas; PartialJSON carries tool input argument deltas
// for the tool identified by ToolID.
type StreamEvent struct {
	Type        StreamEventType
	Text        string
	ToolID      string
	ToolName    string
	PartialJSON string
}

// ModelClient streams one model response for a prompt.
type ModelClient interface {
	Stream(ctx context.Context, prompt Prompt, onEvent func(StreamEvent)) error
}

// EchoClient is the fallback when no API key is configured: it replays the
// last user message so the console stays usable offline.
type EchoClient struct {
	Prefix string
}

func (c EchoClient) Stream(_ context.Context, prompt Prompt, onEvent func(StreamEvent)) error {
	if len(prompt.Messages) == 0 {
		return errors.New("no messages to echo")
	}
	last := prompt.Messages[len(prompt.Messages)-1]
	text := c.Prefix + last.TextContent()
	// Chunked emission keeps the streaming render path exercised offline.
	for len(text) > 0 {
		n := 16
		if n > len(text) {
			n = len(text)
		}
		onEvent(StreamEvent{Type: StreamEventTextDelta, Text: text[:n]})
		text = text[n:]
	}
	onEvent(StreamEvent{Type: StreamEventCompleted})
	return nil
}

// NormalizeProvider canonicalizes a configured provider name.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}
