package anthropic

import (
	"context"
	"errors"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"passion-cli/internal/agent"
)

const defaultMaxTokens = 4096

type Options struct {
	Token   string
	BaseURL string
	Model   string
}

// Client streams Anthropic Messages API responses.
type Client struct {
	api   *anthropic.Client
	model string
}

var _ agent.ModelClient = (*Client)(nil)

func New(opts Options) (*Client, error) {
	token := strings.TrimSpace(opts.Token)
	if token == "" {
		return nil, errors.New("missing token")
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(token),
	}
	if base := normalizeBaseURL(opts.BaseURL); base != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	client := anthropic.NewClient(reqOpts...)
	return &Client{
		api:   &client,
		model: strings.TrimSpace(opts.Model),
	}, nil
}

func normalizeBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, "/v1") {
		base = strings.TrimSuffix(base, "/v1")
		base = strings.TrimRight(base, "/")
	}
	return base
}

func (c *Client) resolveModel(m string) anthropic.Model {
	if strings.TrimSpace(m) != "" {
		return anthropic.Model(strings.TrimSpace(m))
	}
	return anthropic.Model(c.model)
}

func (c *Client) Stream(ctx context.Context, prompt agent.Prompt, onEvent func(agent.StreamEvent)) error {
	params := buildMessageParams(prompt, c.resolveModel(prompt.Model))
	stream := c.api.Messages.NewStreaming(ctx, params)

	// Input JSON deltas only carry the block index, so remember which
	// tool id each index belongs to.
	toolAt := map[int64]string{}

	for stream.Next() {
		event := stream.Current()
		switch v := event.AsAny().(type) {
		case anthropic.ContentBlockStartEvent:
			switch b := v.ContentBlock.AsAny().(type) {
			case anthropic.ToolUseBlock:
				toolAt[v.Index] = b.ID
				onEvent(agent.StreamEvent{
					Type:     agent.StreamEventToolUseStart,
					ToolID:   b.ID,
					ToolName: b.Name,
				})
			}
		case anthropic.ContentBlockDeltaEvent:
			switch d := v.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if d.Text != "" {
					onEvent(agent.StreamEvent{Type: agent.StreamEventTextDelta, Text: d.Text})
				}
			case anthropic.ThinkingDelta:
				if d.Thinking != "" {
					onEvent(agent.StreamEvent{Type: agent.StreamEventThinkingDelta, Text: d.Thinking})
				}
			case anthropic.InputJSONDelta:
				if id, ok := toolAt[v.Index]; ok && d.PartialJSON != "" {
					onEvent(agent.StreamEvent{
						Type:        agent.StreamEventInputDelta,
						ToolID:      id,
						PartialJSON: d.PartialJSON,
					})
				}
			}
		case anthropic.MessageStopEvent:
			onEvent(agent.StreamEvent{Type: agent.StreamEventCompleted})
			return nil
		}
	}
	if err := stream.Err(); err != nil {
		return err
	}
	onEvent(agent.StreamEvent{Type: agent.StreamEventCompleted})
	return nil
}

func buildMessageParams(prompt agent.Prompt, model anthropic.Model) anthropic.MessageNewParams {
	var system []anthropic.TextBlockParam
	if text := strings.TrimSpace(prompt.System); text != "" {
		system = append(system, anthropic.TextBlockParam{Text: text})
	}

	var messages []anthropic.MessageParam
	for _, msg := range prompt.Messages {
		content := encodeBlocks(msg.Content)
		if len(content) == 0 {
			continue
		}
		switch msg.Role {
		case agent.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: msg.TextContent()})
		case agent.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(content...))
		default:
			messages = append(messages, anthropic.NewUserMessage(content...))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: defaultMaxTokens,
		Messages:  messages,
	}
	if len(system) > 0 {
		params.System = system
	}
	if len(prompt.Tools) > 0 {
		params.Tools = encodeTools(prompt.Tools)
	}
	return params
}

// encodeBlocks converts message content to request params. Thinking blocks
// are dropped: replaying them requires the provider's signature, which is
// not kept.
func encodeBlocks(blocks []agent.ContentBlock) []anthropic.ContentBlockParamUnion {
	var out []anthropic.ContentBlockParamUnion
	for _, block := range blocks {
		switch b := block.(type) {
		case agent.TextBlock:
			if strings.TrimSpace(b.Text) == "" {
				continue
			}
			out = append(out, anthropic.NewTextBlock(b.Text))
		case agent.ToolUseBlock:
			if b.ID == "" {
				continue
			}
			input := b.Input
			if input == nil {
				input = map[string]any{}
			}
			out = append(out, anthropic.ContentBlockParamUnion{
				OfToolUse: &anthropic.ToolUseBlockParam{
					ID:    b.ID,
					Name:  b.Name,
					Input: input,
				},
			})
		case agent.ToolResultBlock:
			if b.ID == "" {
				continue
			}
			out = append(out, anthropic.ContentBlockParamUnion{
				OfToolResult: &anthropic.ToolResultBlockParam{
					ToolUseID: b.ID,
					Content: []anthropic.ToolResultBlockParamContentUnion{
						{OfText: &anthropic.TextBlockParam{Text: agent.FlattenOutput(b.Output)}},
					},
				},
			})
		}
	}
	return out
}

func encodeTools(specs []agent.ToolSpec) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(specs))
	for _, spec := range specs {
		tool := anthropic.ToolParam{
			Name:        spec.Name,
			InputSchema: toInputSchema(spec.Parameters),
		}
		if spec.Description != "" {
			tool.Description = anthropic.String(spec.Description)
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &tool})
	}
	return out
}

func toInputSchema(params map[string]any) anthropic.ToolInputSchemaParam {
	schema := anthropic.ToolInputSchemaParam{}
	if props, ok := params["properties"]; ok {
		schema.Properties = props
	}
	if req, ok := params["required"].([]string); ok {
		schema.Required = req
	} else if req, ok := params["required"].([]any); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}
	return schema
}
