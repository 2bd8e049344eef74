package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ContentBlock is a discriminated union over message content kinds.
type ContentBlock interface {
	contentBlock()
}

// TextBlock carries plain text; its accumulation across snapshots becomes
// the turn's final reply.
type TextBlock struct {
	Text string `json:"text"`
}

func (TextBlock) contentBlock() {}

// ThinkingBlock carries the model's reasoning trace.
type ThinkingBlock struct {
	Thinking string `json:"thinking"`
}

func (ThinkingBlock) contentBlock() {}

// ToolUseBlock is a tool invocation request. ID is stable across snapshots;
// Input values may grow as the model streams them.
type ToolUseBlock struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

func (ToolUseBlock) contentBlock() {}

// ToolResultBlock is the outcome of a tool invocation. ID matches the
// originating ToolUseBlock. Output is either a plain string or a list of
// sub-blocks of which only text blocks contribute when flattened.
type ToolResultBlock struct {
	ID     string
	Name   string
	Output ToolOutput
}

func (ToolResultBlock) contentBlock() {}

// UnknownBlock preserves unrecognized block types instead of failing on them.
type UnknownBlock struct {
	Type string
	Raw  map[string]any
}

func (UnknownBlock) contentBlock() {}

// ToolOutput is the string-or-block-list payload of a tool result.
type ToolOutput interface {
	toolOutput()
}

// TextOutput is a plain string tool result.
type TextOutput string

func (TextOutput) toolOutput() {}

// BlockOutput is a tool result expressed as content blocks.
type BlockOutput []ContentBlock

func (BlockOutput) toolOutput() {}

// FlattenOutput reduces a tool output to plain text. Non-text sub-blocks
// are skipped.
func FlattenOutput(out ToolOutput) string {
	switch v := out.(type) {
	case TextOutput:
		return string(v)
	case BlockOutput:
		var sb strings.Builder
		for _, block := range v {
			if tb, ok := block.(TextBlock); ok {
				sb.WriteString(tb.Text)
			}
		}
		return sb.String()
	default:
		return ""
	}
}

// Msg is one logical conversation message. Snapshots of an in-flight message
// share the same ID and only ever grow: text fields append, blocks are never
// removed or edited in place.
type Msg struct {
	ID      string
	Name    string
	Role    Role
	Content []ContentBlock
}

// NewMsg mints a message with a fresh id and a single text block.
func NewMsg(name string, role Role, text string) Msg {
	return Msg{
		ID:      uuid.NewString(),
		Name:    name,
		Role:    role,
		Content: []ContentBlock{TextBlock{Text: text}},
	}
}

// Blocks returns the message content as a block list. Kept for symmetry with
// the wire form, where content may arrive as a bare string.
func (m Msg) Blocks() []ContentBlock {
	return m.Content
}

// TextContent concatenates all text blocks; this is the turn's reply once
// the message is final.
func (m Msg) TextContent() string {
	var sb strings.Builder
	for _, block := range m.Content {
		if tb, ok := block.(TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	return sb.String()
}

// HasBlockKind reports whether any block matches the given wire type name.
func (m Msg) HasBlockKind(kinds ...string) bool {
	for _, block := range m.Content {
		name := BlockType(block)
		for _, kind := range kinds {
			if name == kind {
				return true
			}
		}
	}
	return false
}

// BlockType returns the wire type discriminator for a block.
func BlockType(block ContentBlock) string {
	switch b := block.(type) {
	case TextBlock:
		return "text"
	case ThinkingBlock:
		return "thinking"
	case ToolUseBlock:
		return "tool_use"
	case ToolResultBlock:
		return "tool_result"
	case UnknownBlock:
		return b.Type
	default:
		return ""
	}
}

type wireMsg struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Role    Role            `json:"role"`
	Content json.RawMessage `json:"content"`
}

type wireBlock struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	Thinking string          `json:"thinking,omitempty"`
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name,omitempty"`
	Input    map[string]any  `json:"input,omitempty"`
	Output   json.RawMessage `json:"output,omitempty"`
}

// UnmarshalJSON accepts both content forms: an ordered block list or a bare
// string, which normalizes to one text block.
func (m *Msg) UnmarshalJSON(data []byte) error {
	var w wireMsg
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m.ID = w.ID
	m.Name = w.Name
	m.Role = w.Role
	m.Content = nil
	if len(w.Content) == 0 {
		return nil
	}

	var text string
	if err := json.Unmarshal(w.Content, &text); err == nil {
		m.Content = []ContentBlock{TextBlock{Text: text}}
		return nil
	}

	var blocks []json.RawMessage
	if err := json.Unmarshal(w.Content, &blocks); err != nil {
		return fmt.Errorf("message content is neither string nor block list: %w", err)
	}
	for _, raw := range blocks {
		block, err := decodeBlock(raw)
		if err != nil {
			return err
		}
		m.Content = append(m.Content, block)
	}
	return nil
}

func decodeBlock(raw json.RawMessage) (ContentBlock, error) {
	var w wireBlock
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode content block: %w", err)
	}
	switch w.Type {
	case "text":
		return TextBlock{Text: w.Text}, nil
	case "thinking":
		return ThinkingBlock{Thinking: w.Thinking}, nil
	case "tool_use":
		return ToolUseBlock{ID: w.ID, Name: w.Name, Input: w.Input}, nil
	case "tool_result":
		out, err := decodeOutput(w.Output)
		if err != nil {
			return nil, err
		}
		return ToolResultBlock{ID: w.ID, Name: w.Name, Output: out}, nil
	default:
		var m map[string]any
		_ = json.Unmarshal(raw, &m)
		return UnknownBlock{Type: w.Type, Raw: m}, nil
	}
}

func decodeOutput(raw json.RawMessage) (ToolOutput, error) {
	if len(raw) == 0 {
		return TextOutput(""), nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return TextOutput(text), nil
	}
	var blocks []json.RawMessage
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, fmt.Errorf("tool output is neither string nor block list: %w", err)
	}
	out := make(BlockOutput, 0, len(blocks))
	for _, b := range blocks {
		block, err := decodeBlock(b)
		if err != nil {
			return nil, err
		}
		out = append(out, block)
	}
	return out, nil
}
