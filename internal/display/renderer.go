package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"passion-cli/internal/agent"
	"passion-cli/internal/logger"
)

// streamSpec describes a tool whose body streams into a live region.
type streamSpec struct {
	field    string
	title    string
	maxLines int
}

// Streaming-body tools are matched purely by tool name. Code and shell get a
// taller window than prose-like file content.
var streamingTools = map[string]streamSpec{
	"execute_python_code":   {field: "code", title: "Python Code", maxLines: 8},
	"execute_shell_command": {field: "command", title: "Shell Command", maxLines: 8},
	"write_text_file":       {field: "content", title: "Writing File", maxLines: 3},
}

type Options struct {
	Writer    io.Writer
	AgentName string
	Width     int
	Panels    PanelFactory
}

// Renderer turns cumulative message snapshots into terminal output exactly
// once. It owns the tracker and the live regions for the life of the
// conversation; nothing else mutates them.
type Renderer struct {
	w        io.Writer
	name     string
	width    int
	tracker  *Tracker
	regions  *RegionManager
	finished map[string]bool
	log      *logger.LogEntry
}

func NewRenderer(opts Options) *Renderer {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	name := opts.AgentName
	if name == "" {
		name = "Passion"
	}
	width := opts.Width
	if width <= 0 {
		width = TerminalWidth()
	}
	factory := opts.Panels
	if factory == nil {
		factory = NewTermPanelFactory(w, width, 0)
	}
	return &Renderer{
		w:        w,
		name:     name,
		width:    width,
		tracker:  NewTracker(),
		regions:  NewRegionManager(factory),
		finished: map[string]bool{},
		log:      logger.Named("display"),
	}
}

// Render consumes one message snapshot. Snapshots for the same id are
// cumulative; only the delta is printed. A message finalized with last=true
// never produces output again.
func (r *Renderer) Render(msg agent.Msg, last bool) {
	if r.finished[msg.ID] {
		return
	}

	var text, thinking strings.Builder
	for _, block := range msg.Blocks() {
		switch b := block.(type) {
		case agent.ToolUseBlock:
			r.renderToolUse(msg.ID, b, last)
		case agent.ToolResultBlock:
			r.renderToolResult(msg.ID, b)
		case agent.ThinkingBlock:
			thinking.WriteString(b.Thinking)
		case agent.TextBlock:
			text.WriteString(b.Text)
		}
	}

	r.streamChannel(msg.ID, KindThinking, thinking.String(), styleThinking.Render("🤔 Thinking: "))
	r.streamChannel(msg.ID, KindText, text.String(), "\n"+styleAgentName.Render(r.name+":")+" ")

	if last {
		r.finalize(msg)
	}
}

// streamChannel prints the newly flushed slice of an accumulating channel,
// with a one-time label on the first non-empty flush. No trailing newline:
// the channel streams continuously.
func (r *Renderer) streamChannel(msgID string, kind Kind, total string, label string) {
	if total == "" {
		return
	}
	start, end := r.tracker.NewlyFlushed(msgID, kind, len(total))
	if end <= start {
		return
	}
	if start == 0 {
		fmt.Fprint(r.w, label)
	}
	fmt.Fprint(r.w, total[start:end])
}

func (r *Renderer) renderToolUse(msgID string, b agent.ToolUseBlock, last bool) {
	if b.ID == "" {
		// Malformed block; skip it without giving up on its siblings.
		return
	}
	if r.tracker.MarkOnce(msgID, b.ID+":header") {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, Separator(r.width))
		fmt.Fprintln(r.w, styleToolUse.Render("🛠️  "+r.name+" is using tool: "+b.Name))
		r.log.WithField("tool", b.Name).WithField("block_id", b.ID).Debug("tool use started")
	}

	if spec, ok := streamingTools[b.Name]; ok {
		value, _ := b.Input[spec.field].(string)
		start, end := r.tracker.NewlyFlushedField(msgID, b.ID, spec.field, len(value))
		if end > start {
			if !r.regions.IsOpen(b.ID) {
				r.regions.Open(b.ID, r.regionTitle(spec, b))
			}
			r.regions.Append(b.ID, value[start:end], spec.maxLines)
		}
		return
	}

	// Other tools: dump the input mapping once, but only when the message is
	// complete so the arguments are fully populated.
	if last && len(b.Input) > 0 && r.tracker.MarkOnce(msgID, b.ID+":input") {
		fmt.Fprintln(r.w, styleDim.Render("    Input: "+compactJSON(b.Input)))
	}
}

func (r *Renderer) regionTitle(spec streamSpec, b agent.ToolUseBlock) string {
	if b.Name == "write_text_file" {
		path, _ := b.Input["file_path"].(string)
		if path == "" {
			path = "unknown"
		}
		return spec.title + ": " + path
	}
	return spec.title
}

func (r *Renderer) renderToolResult(msgID string, b agent.ToolResultBlock) {
	if b.ID == "" {
		return
	}
	if !r.tracker.MarkOnce(msgID, b.ID+":result") {
		return
	}
	r.regions.Close(b.ID)
	r.tracker.ReleaseTool(b.ID)

	name := b.Name
	if name == "" {
		name = "Tool"
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, styleToolOK.Render("✅ Tool "+name+" executed successfully."))
	if out := strings.TrimRight(agent.FlattenOutput(b.Output), "\n"); strings.TrimSpace(out) != "" {
		fmt.Fprintln(r.w, styleDim.Render(out))
	}
	fmt.Fprintln(r.w, Separator(r.width))
	r.log.WithField("block_id", b.ID).Debug("tool result rendered")
}

// finalize ends the message's streaming life: trailing newline, region and
// tracker cleanup, and the heavy turn separator for pure text replies.
// Thinking-only finals count as intermediate and get no heavy separator.
func (r *Renderer) finalize(msg agent.Msg) {
	fmt.Fprintln(r.w)
	for _, block := range msg.Blocks() {
		if b, ok := block.(agent.ToolUseBlock); ok && b.ID != "" {
			r.regions.Close(b.ID)
		}
	}
	r.tracker.Finalize(msg.ID)
	r.finished[msg.ID] = true

	if !msg.HasBlockKind("tool_use", "tool_result", "thinking") {
		fmt.Fprintln(r.w, HeavySeparator(r.width))
	}
}

func compactJSON(input map[string]any) string {
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Sprintf("%v", input)
	}
	return string(data)
}
