package tools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
)

const commandTimeout = 2 * time.Minute

// RunCommand executes a shell command in the given directory under a pty,
// so tools that check for a terminal behave normally.
func RunCommand(ctx context.Context, workdir string, command string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return "", fmt.Errorf("empty command")
	}
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bash", "-lc", command)
	if workdir != "" {
		cmd.Dir = workdir
	}
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return "", fmt.Errorf("failed to start pty: %w", err)
	}
	defer ptmx.Close()

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, ptmx)
		close(done)
	}()

	err = cmd.Wait()
	ptmx.Close()
	<-done
	out := buf.String()
	if err != nil {
		return out, fmt.Errorf("command failed: %w", err)
	}
	return out, nil
}

// ExecuteShellTool runs an arbitrary shell command and returns its
// combined output.
func ExecuteShellTool(workdir string) *Tool {
	return &Tool{
		Name:        "execute_shell_command",
		Description: "Execute a shell command and return its output.",
		Parameters: objectSchema(map[string]any{
			"command": map[string]any{
				"type":        "string",
				"description": "The shell command to execute.",
			},
		}, "command"),
		Run: func(ctx context.Context, input map[string]any) (string, error) {
			return RunCommand(ctx, workdir, stringArg(input, "command"))
		},
	}
}

// ExecutePythonTool writes the code to a temporary file and runs it with
// python3.
func ExecutePythonTool(workdir string) *Tool {
	return &Tool{
		Name:        "execute_python_code",
		Description: "Execute a Python code snippet and return its output.",
		Parameters: objectSchema(map[string]any{
			"code": map[string]any{
				"type":        "string",
				"description": "The Python code to execute.",
			},
		}, "code"),
		Run: func(ctx context.Context, input map[string]any) (string, error) {
			code := input["code"]
			src, _ := code.(string)
			if strings.TrimSpace(src) == "" {
				return "", fmt.Errorf("empty code")
			}
			f, err := os.CreateTemp("", "passion-*.py")
			if err != nil {
				return "", fmt.Errorf("failed to create temp file: %w", err)
			}
			path := f.Name()
			defer os.Remove(path)
			if _, err := f.WriteString(src); err != nil {
				f.Close()
				return "", fmt.Errorf("failed to write temp file: %w", err)
			}
			if err := f.Close(); err != nil {
				return "", err
			}
			return RunCommand(ctx, workdir, fmt.Sprintf("python3 %q", path))
		},
	}
}
