package display

import (
	"fmt"
	"strings"
)

// ApplyLimit returns a tail window of content that fits in maxLines display
// rows. When content overflows, the first row becomes an omission marker and
// the remaining maxLines-1 rows are the last lines of content verbatim.
// Content within the limit passes through unchanged, as does empty content.
func ApplyLimit(content string, maxLines int) string {
	if content == "" {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) <= maxLines {
		return content
	}

	visible := maxLines - 1
	if visible < 0 {
		visible = 0
	}
	hidden := len(lines) - visible
	out := make([]string, 0, maxLines)
	out = append(out, fmt.Sprintf("[...%d lines omitted...]", hidden))
	out = append(out, lines[len(lines)-visible:]...)
	return strings.Join(out, "\n")
}
