package display

import (
	"fmt"
	"strings"
	"testing"
)

func TestApplyLimit_WithinLimitUnchanged(t *testing.T) {
	content := "one\ntwo\nthree"
	if got := ApplyLimit(content, 3); got != content {
		t.Fatalf("ApplyLimit = %q, want unchanged %q", got, content)
	}
	if got := ApplyLimit(content, 10); got != content {
		t.Fatalf("ApplyLimit = %q, want unchanged %q", got, content)
	}
}

func TestApplyLimit_EmptyContent(t *testing.T) {
	if got := ApplyLimit("", 5); got != "" {
		t.Fatalf("ApplyLimit(\"\") = %q, want empty", got)
	}
}

func TestApplyLimit_TailWindowWithMarker(t *testing.T) {
	const total = 10
	const max = 4

	lines := make([]string, total)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%d", i+1)
	}
	content := strings.Join(lines, "\n")

	got := ApplyLimit(content, max)
	gotLines := strings.Split(got, "\n")

	if len(gotLines) != max {
		t.Fatalf("output has %d lines, want %d", len(gotLines), max)
	}
	wantHidden := total - (max - 1)
	wantMarker := fmt.Sprintf("[...%d lines omitted...]", wantHidden)
	if gotLines[0] != wantMarker {
		t.Fatalf("marker = %q, want %q", gotLines[0], wantMarker)
	}
	for i := 1; i < max; i++ {
		want := lines[total-(max-1)+i-1]
		if gotLines[i] != want {
			t.Fatalf("line %d = %q, want %q", i, gotLines[i], want)
		}
	}
}

func TestApplyLimit_SingleRowShowsOnlyMarker(t *testing.T) {
	got := ApplyLimit("a\nb\nc", 1)
	if got != "[...3 lines omitted...]" {
		t.Fatalf("ApplyLimit = %q", got)
	}
}
