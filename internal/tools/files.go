package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteTextFileTool writes (or appends) text content to a file, creating
// parent directories as needed.
func WriteTextFileTool() *Tool {
	return &Tool{
		Name:        "write_text_file",
		Description: "Write text content to a file, creating parent directories if needed.",
		Parameters: objectSchema(map[string]any{
			"file_path": map[string]any{
				"type":        "string",
				"description": "The path of the file to write.",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "The text content to write.",
			},
			"mode": map[string]any{
				"type":        "string",
				"description": "File mode: 'w' to overwrite (default) or 'a' to append.",
			},
		}, "file_path", "content"),
		Run: func(_ context.Context, input map[string]any) (string, error) {
			path := stringArg(input, "file_path")
			if strings.TrimSpace(path) == "" {
				return "", fmt.Errorf("file_path is required")
			}
			content := stringArg(input, "content")

			if dir := filepath.Dir(path); dir != "" && dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return "", fmt.Errorf("error writing to %s: %w", path, err)
				}
			}

			flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			if stringArg(input, "mode") == "a" {
				flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
			}
			f, err := os.OpenFile(path, flags, 0o644)
			if err != nil {
				return "", fmt.Errorf("error writing to %s: %w", path, err)
			}
			defer f.Close()
			if _, err := f.WriteString(content); err != nil {
				return "", fmt.Errorf("error writing to %s: %w", path, err)
			}
			return fmt.Sprintf("Successfully wrote content to %s", path), nil
		},
	}
}

// ViewTextFileTool reads a file, optionally restricted to a 1-based
// inclusive line range, and returns it with line numbers.
func ViewTextFileTool() *Tool {
	return &Tool{
		Name:        "view_text_file",
		Description: "Read a text file, optionally restricted to a line range, with line numbers.",
		Parameters: objectSchema(map[string]any{
			"file_path": map[string]any{
				"type":        "string",
				"description": "The path of the file to read.",
			},
			"line_start": map[string]any{
				"type":        "integer",
				"description": "1-based first line to read (inclusive). Defaults to 1.",
			},
			"line_end": map[string]any{
				"type":        "integer",
				"description": "1-based last line to read (inclusive). Defaults to -1 (end of file).",
			},
		}, "file_path"),
		Run: func(_ context.Context, input map[string]any) (string, error) {
			path := stringArg(input, "file_path")
			data, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					return "", fmt.Errorf("the file %s does not exist", path)
				}
				return "", fmt.Errorf("error reading %s: %w", path, err)
			}

			lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
			total := len(lines)

			start := intArg(input, "line_start", 1)
			end := intArg(input, "line_end", -1)

			startIdx := start - 1
			if startIdx < 0 {
				startIdx = 0
			}
			endIdx := total
			if end != -1 && end < total {
				endIdx = end
			}
			if startIdx >= total {
				return "", fmt.Errorf("line start %d is beyond file end (total %d lines)", start, total)
			}
			if end != -1 && startIdx >= endIdx {
				return "", fmt.Errorf("line start %d is after line end %d", start, end)
			}

			var sb strings.Builder
			fmt.Fprintf(&sb, "The content of %s:\n```\n", path)
			for i, line := range lines[startIdx:endIdx] {
				fmt.Fprintf(&sb, "%d: %s\n", startIdx+i+1, line)
			}
			sb.WriteString("```")
			return sb.String(), nil
		},
	}
}
