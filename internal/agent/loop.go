package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kaptinlin/jsonrepair"

	"passion-cli/internal/logger"
)

// RenderHook receives every cumulative message snapshot produced while the
// agent works. last reports whether this snapshot is the message's final
// state.
type RenderHook func(msg Msg, last bool)

// ToolRunner executes tools on the agent's behalf. tools.Toolkit is the
// production implementation.
type ToolRunner interface {
	Specs() []ToolSpec
	Execute(ctx context.Context, name string, input map[string]any) string
	Count() int
}

// Status is a point-in-time snapshot of the agent, shown by /status.
type Status struct {
	Name     string
	Model    string
	Messages int
	Tools    int
}

// maxTurns bounds one Reply call. A model that keeps requesting tools past
// this gets cut off rather than looping forever.
const maxTurns = 16

type Options struct {
	Name   string
	Model  string
	System string
	Client ModelClient
	Tools  ToolRunner
	Render RenderHook
	Log    *logger.LogEntry
}

// Agent owns one conversation: it streams model responses, runs requested
// tools and feeds results back until the model produces a plain reply.
type Agent struct {
	name    string
	model   string
	system  string
	client  ModelClient
	tools   ToolRunner
	render  RenderHook
	history []Msg
	log     *logger.LogEntry
}

func New(opts Options) *Agent {
	if opts.Render == nil {
		opts.Render = func(Msg, bool) {}
	}
	if opts.Log == nil {
		opts.Log = logger.Named("agent")
	}
	return &Agent{
		name:   opts.Name,
		model:  opts.Model,
		system: opts.System,
		client: opts.Client,
		tools:  opts.Tools,
		render: opts.Render,
		log:    opts.Log,
	}
}

func (a *Agent) Status() Status {
	s := Status{Name: a.name, Model: a.model, Messages: len(a.history)}
	if a.tools != nil {
		s.Tools = a.tools.Count()
	}
	return s
}

// Reply runs one full user turn: the user message goes into history, then
// the agent alternates model responses and tool executions until the model
// answers without requesting a tool. The final assistant message is
// returned.
func (a *Agent) Reply(ctx context.Context, user Msg) (Msg, error) {
	a.history = append(a.history, user)

	var final Msg
	for turn := 0; turn < maxTurns; turn++ {
		reply, err := a.streamAssistant(ctx, turn+1)
		if err != nil {
			return Msg{}, err
		}
		a.history = append(a.history, reply)

		uses := toolUses(reply)
		if len(uses) == 0 {
			final = reply
			break
		}
		results := a.runTools(ctx, uses)
		a.history = append(a.history, results)
		final = reply
	}
	return final, nil
}

// History returns the conversation so far.
func (a *Agent) History() []Msg {
	return a.history
}

func toolUses(msg Msg) []ToolUseBlock {
	var uses []ToolUseBlock
	for _, b := range msg.Content {
		if u, ok := b.(ToolUseBlock); ok && u.ID != "" {
			uses = append(uses, u)
		}
	}
	return uses
}

// runTools executes every requested tool and packs the outputs into a
// single user-role message, rendered once as final.
func (a *Agent) runTools(ctx context.Context, uses []ToolUseBlock) Msg {
	results := Msg{ID: uuid.NewString(), Name: a.name, Role: RoleUser}
	for _, use := range uses {
		a.log.Infof("executing tool %s (%s)", use.Name, use.ID)
		var output string
		if a.tools == nil {
			output = fmt.Sprintf("Error: tool %s is not available", use.Name)
		} else {
			output = a.tools.Execute(ctx, use.Name, use.Input)
		}
		results.Content = append(results.Content, ToolResultBlock{
			ID:     use.ID,
			Name:   use.Name,
			Output: TextOutput(output),
		})
	}
	a.render(results, true)
	return results
}

// streamAssistant issues one model request and assembles the streamed
// events into a growing assistant message, rendering each snapshot.
func (a *Agent) streamAssistant(ctx context.Context, attempt int) (Msg, error) {
	prompt := Prompt{
		Model:    a.model,
		System:   a.system,
		Messages: a.history,
	}
	if a.tools != nil {
		prompt.Tools = a.tools.Specs()
	}
	logger.Request(a.model, promptLogMessages(prompt), attempt)

	msg := Msg{ID: uuid.NewString(), Name: a.name, Role: RoleAssistant}
	// Raw streamed JSON per tool id; re-parsed on every delta so the
	// snapshot always carries the best current input.
	inputRaw := map[string]string{}
	toolIndex := map[string]int{}

	err := a.client.Stream(ctx, prompt, func(ev StreamEvent) {
		switch ev.Type {
		case StreamEventTextDelta:
			appendText(&msg, ev.Text)
		case StreamEventThinkingDelta:
			appendThinking(&msg, ev.Text)
		case StreamEventToolUseStart:
			toolIndex[ev.ToolID] = len(msg.Content)
			msg.Content = append(msg.Content, ToolUseBlock{ID: ev.ToolID, Name: ev.ToolName, Input: map[string]any{}})
		case StreamEventInputDelta:
			idx, ok := toolIndex[ev.ToolID]
			if !ok {
				return
			}
			inputRaw[ev.ToolID] += ev.PartialJSON
			use := msg.Content[idx].(ToolUseBlock)
			use.Input = decodePartialInput(inputRaw[ev.ToolID])
			msg.Content[idx] = use
		case StreamEventCompleted:
			return
		}
		a.render(msg, false)
	})
	if err != nil {
		logger.RequestError(a.model, err, attempt)
		return Msg{}, fmt.Errorf("model request failed: %w", err)
	}
	logger.StreamComplete(a.model, attempt)
	a.render(msg, true)
	return msg, nil
}

func appendText(msg *Msg, delta string) {
	if delta == "" {
		return
	}
	if n := len(msg.Content); n > 0 {
		if t, ok := msg.Content[n-1].(TextBlock); ok {
			t.Text += delta
			msg.Content[n-1] = t
			return
		}
	}
	msg.Content = append(msg.Content, TextBlock{Text: delta})
}

func appendThinking(msg *Msg, delta string) {
	if delta == "" {
		return
	}
	if n := len(msg.Content); n > 0 {
		if t, ok := msg.Content[n-1].(ThinkingBlock); ok {
			t.Thinking += delta
			msg.Content[n-1] = t
			return
		}
	}
	msg.Content = append(msg.Content, ThinkingBlock{Thinking: delta})
}

// decodePartialInput parses the tool input JSON accumulated so far.
// Mid-stream the text is usually truncated, so it goes through jsonrepair
// before decoding. An unparseable fragment yields an empty map.
func decodePartialInput(raw string) map[string]any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}
	}
	input := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &input); err == nil {
		return input
	}
	fixed, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return map[string]any{}
	}
	input = map[string]any{}
	if err := json.Unmarshal([]byte(fixed), &input); err != nil {
		return map[string]any{}
	}
	return input
}

func promptLogMessages(p Prompt) []logger.LLMMessage {
	out := make([]logger.LLMMessage, 0, len(p.Messages))
	for _, m := range p.Messages {
		out = append(out, logger.LLMMessage{Role: string(m.Role), Content: m.TextContent()})
	}
	return out
}
