package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreAppendAndLoadTexts(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir())

	if got, err := s.LoadTexts(); err != nil || len(got) != 0 {
		t.Fatalf("LoadTexts on missing file: got=%v err=%v", got, err)
	}

	if err := s.Append("   "); err != nil {
		t.Fatalf("Append whitespace: %v", err)
	}
	if err := s.Append("one"); err != nil {
		t.Fatalf("Append one: %v", err)
	}
	if err := s.Append("two"); err != nil {
		t.Fatalf("Append two: %v", err)
	}

	got, err := s.LoadTexts()
	if err != nil {
		t.Fatalf("LoadTexts: %v", err)
	}
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("LoadTexts = %v, want [one two]", got)
	}
}

func TestStoreLoadSkipsGarbageLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(dir)
	content := strings.Join([]string{
		`{"text":"one","ts":"2025-01-01T00:00:00Z"}`,
		`{not json}`,
		`{"text":"","ts":"2025-01-01T00:00:00Z"}`,
		`{"text":"two","ts":"2025-01-01T00:00:00Z"}`,
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "history.jsonl"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := s.LoadTexts()
	if err != nil {
		t.Fatalf("LoadTexts: %v", err)
	}
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("LoadTexts = %v, want [one two]", got)
	}
}

func TestStoreNilAndEmptyPath(t *testing.T) {
	t.Parallel()

	var nilStore *Store
	if err := nilStore.Append("x"); err == nil {
		t.Fatal("nil store Append should fail")
	}
	empty := &Store{}
	if err := empty.Append("x"); err == nil {
		t.Fatal("empty-path store Append should fail")
	}
}
