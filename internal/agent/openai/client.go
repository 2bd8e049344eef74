package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"passion-cli/internal/agent"
)

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client streams OpenAI chat completion responses.
type Client struct {
	api   *openai.Client
	model string
}

var _ agent.ModelClient = (*Client)(nil)

func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("missing API key")
	}
	cfg := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg = append(cfg, option.WithBaseURL(strings.TrimRight(normalizeBaseURL(base), "/")))
	}
	client := openai.NewClient(cfg...)

	return &Client{
		api:   &client,
		model: strings.TrimSpace(opts.Model),
	}, nil
}

func (c *Client) resolveModel(model string) string {
	if strings.TrimSpace(model) != "" {
		return model
	}
	return c.model
}

func (c *Client) Stream(ctx context.Context, prompt agent.Prompt, onEvent func(agent.StreamEvent)) error {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.resolveModel(prompt.Model)),
		Messages: toChatMessages(prompt),
	}
	if len(prompt.Tools) > 0 {
		params.Tools = toChatTools(prompt.Tools)
	}

	stream := c.api.Chat.Completions.NewStreaming(ctx, params)

	// Tool call argument chunks identify the call by index only; the id
	// and name arrive on the first chunk.
	idAt := map[int64]string{}

	for stream.Next() {
		chunk := stream.Current()
		for _, choice := range chunk.Choices {
			if choice.Delta.Content != "" {
				onEvent(agent.StreamEvent{Type: agent.StreamEventTextDelta, Text: choice.Delta.Content})
			}
			for _, call := range choice.Delta.ToolCalls {
				if call.ID != "" {
					idAt[call.Index] = call.ID
				}
				id := idAt[call.Index]
				if id == "" {
					continue
				}
				if call.Function.Name != "" {
					onEvent(agent.StreamEvent{
						Type:     agent.StreamEventToolUseStart,
						ToolID:   id,
						ToolName: call.Function.Name,
					})
				}
				if call.Function.Arguments != "" {
					onEvent(agent.StreamEvent{
						Type:        agent.StreamEventInputDelta,
						ToolID:      id,
						PartialJSON: call.Function.Arguments,
					})
				}
			}
		}
	}
	if err := stream.Err(); err != nil {
		return wrapHTTPError(err)
	}
	onEvent(agent.StreamEvent{Type: agent.StreamEventCompleted})
	return nil
}

func toChatMessages(prompt agent.Prompt) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(prompt.Messages)+1)
	if text := strings.TrimSpace(prompt.System); text != "" {
		out = append(out, openai.SystemMessage(text))
	}
	for _, msg := range prompt.Messages {
		switch msg.Role {
		case agent.RoleSystem:
			out = append(out, openai.SystemMessage(msg.TextContent()))
		case agent.RoleAssistant:
			out = append(out, toAssistantMessage(msg))
		default:
			out = append(out, toUserMessages(msg)...)
		}
	}
	return out
}

func toAssistantMessage(msg agent.Msg) openai.ChatCompletionMessageParamUnion {
	assistant := openai.ChatCompletionAssistantMessageParam{}
	if text := msg.TextContent(); strings.TrimSpace(text) != "" {
		assistant.Content.OfString = openai.String(text)
	}
	for _, block := range msg.Content {
		use, ok := block.(agent.ToolUseBlock)
		if !ok || use.ID == "" {
			continue
		}
		assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
			OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
				ID: use.ID,
				Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
					Name:      use.Name,
					Arguments: encodeArguments(use.Input),
				},
			},
		})
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant}
}

// toUserMessages splits a user message into chat messages: the chat wire
// format carries tool results as dedicated tool-role messages.
func toUserMessages(msg agent.Msg) []openai.ChatCompletionMessageParamUnion {
	var out []openai.ChatCompletionMessageParamUnion
	for _, block := range msg.Content {
		if result, ok := block.(agent.ToolResultBlock); ok && result.ID != "" {
			out = append(out, openai.ToolMessage(agent.FlattenOutput(result.Output), result.ID))
		}
	}
	if text := msg.TextContent(); strings.TrimSpace(text) != "" {
		out = append(out, openai.UserMessage(text))
	}
	return out
}

func encodeArguments(input map[string]any) string {
	if len(input) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(input)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func toChatTools(specs []agent.ToolSpec) []openai.ChatCompletionToolUnionParam {
	tools := make([]openai.ChatCompletionToolUnionParam, 0, len(specs))
	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			continue
		}
		fn := shared.FunctionDefinitionParam{
			Name:       name,
			Parameters: spec.Parameters,
		}
		if desc := strings.TrimSpace(spec.Description); desc != "" {
			fn.Description = openai.String(desc)
		}
		tools = append(tools, openai.ChatCompletionToolUnionParam{
			OfFunction: &openai.ChatCompletionFunctionToolParam{
				Function: fn,
			},
		})
	}
	return tools
}

func wrapHTTPError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		respDump := strings.TrimSpace(string(apiErr.DumpResponse(true)))
		if respDump != "" {
			return fmt.Errorf("http_%d: %s", apiErr.StatusCode, respDump)
		}
		raw := strings.TrimSpace(apiErr.RawJSON())
		if raw != "" {
			return fmt.Errorf("http_%d: %s", apiErr.StatusCode, raw)
		}
		return fmt.Errorf("http_%d: %v", apiErr.StatusCode, err)
	}
	return err
}
