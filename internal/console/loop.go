package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"passion-cli/internal/agent"
	"passion-cli/internal/history"
	"passion-cli/internal/logger"
)

// Agent is the console's view of the conversation engine.
type Agent interface {
	Reply(ctx context.Context, user agent.Msg) (agent.Msg, error)
	Status() agent.Status
}

type Options struct {
	In        io.Reader
	Out       io.Writer
	Agent     Agent
	AgentName string
	// Clipboard copies text for /copy; defaults to the system clipboard.
	Clipboard func(text string) error
	// History records user inputs across sessions; nil disables recording.
	History *history.Store
	Log     *logger.LogEntry
}

// Loop is the interactive console session.
type Loop struct {
	in        io.Reader
	out       io.Writer
	agent     Agent
	name      string
	clipboard func(string) error
	history   *history.Store
	log       *logger.LogEntry
	lastReply string
}

func New(opts Options) *Loop {
	if opts.AgentName == "" {
		opts.AgentName = "Passion"
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Log == nil {
		opts.Log = logger.Named("console")
	}
	return &Loop{
		in:        opts.In,
		out:       opts.Out,
		agent:     opts.Agent,
		name:      opts.AgentName,
		clipboard: opts.Clipboard,
		history:   opts.History,
		log:       opts.Log,
	}
}

// Run reads user turns until exit or EOF. Streamed rendering happens
// through the agent's render hook; the loop itself only prints prompts,
// command output and errors.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintf(l.out, "\n--- %s AI Agent Console ---\n", l.name)
	fmt.Fprintln(l.out, "Type 'exit' or 'quit' to end the session. Type /help for commands.")

	scanner := bufio.NewScanner(l.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprintf(l.out, "\nUser: ")
		if !scanner.Scan() {
			fmt.Fprintln(l.out, "\nExiting...")
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if IsExit(input) {
			l.farewell()
			break
		}
		if strings.HasPrefix(input, "/") {
			l.handleCommand(input)
			continue
		}

		if l.history != nil {
			if err := l.history.Append(input); err != nil {
				l.log.Warnf("failed to record history: %v", err)
			}
		}
		user := agent.Msg{
			ID:      uuid.NewString(),
			Name:    "User",
			Role:    agent.RoleUser,
			Content: []agent.ContentBlock{agent.TextBlock{Text: input}},
		}
		reply, err := l.agent.Reply(ctx, user)
		if err != nil {
			l.log.Errorf("turn failed: %v", err)
			fmt.Fprintf(l.out, "\nError: %v\n", err)
			continue
		}
		// The reply already streamed to the terminal; keep it only for /copy.
		l.lastReply = reply.TextContent()
	}
	return scanner.Err()
}

func (l *Loop) farewell() {
	fmt.Fprintf(l.out, "%s: See you later! Keep that energy up!\n", l.name)
}

func (l *Loop) handleCommand(input string) {
	cmd, ok := Lookup(input)
	if !ok {
		l.printUnknown(input)
		return
	}
	switch cmd.Name {
	case "/help":
		fmt.Fprintln(l.out, "Available commands:")
		for _, c := range Commands() {
			fmt.Fprintf(l.out, "  %-10s %s\n", c.Name, c.Description)
		}
	case "/status":
		s := l.agent.Status()
		fmt.Fprintf(l.out, "Agent: %s\nModel: %s\nMessages: %d\nTools: %d\n",
			s.Name, s.Model, s.Messages, s.Tools)
	case "/copy":
		if strings.TrimSpace(l.lastReply) == "" {
			fmt.Fprintln(l.out, "Nothing to copy yet.")
			return
		}
		if err := l.clipboard(l.lastReply); err != nil {
			fmt.Fprintf(l.out, "Error: failed to copy: %v\n", err)
			return
		}
		fmt.Fprintln(l.out, "Copied last reply to clipboard.")
	}
}

func (l *Loop) printUnknown(input string) {
	fmt.Fprintf(l.out, "Unknown command %q.", input)
	if suggestions := Suggest(input); len(suggestions) > 0 {
		names := make([]string, 0, len(suggestions))
		for i, s := range suggestions {
			if i == 3 {
				break
			}
			names = append(names, s.Name)
		}
		fmt.Fprintf(l.out, " Did you mean %s?", strings.Join(names, ", "))
	}
	fmt.Fprintln(l.out, " Type /help for the full list.")
}
