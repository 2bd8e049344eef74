package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PASSION_PROVIDER", "")
	t.Setenv("PASSION_MODEL", "")
	t.Setenv("PASSION_API_KEY", "")
	t.Setenv("PASSION_BASE_URL", "")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provider != "anthropic" {
		t.Fatalf("Default().Provider = %q, want %q", cfg.Provider, "anthropic")
	}
	if cfg.Name != "Passion" {
		t.Fatalf("Default().Name = %q, want %q", cfg.Name, "Passion")
	}
}

func TestLoad_MissingFile_UsesDefaults(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != path {
		t.Fatalf("cfg.Source = %q, want %q", cfg.Source, path)
	}
	if cfg.Provider != "anthropic" {
		t.Fatalf("cfg.Provider = %q, want %q", cfg.Provider, "anthropic")
	}
}

func TestLoad_FromTOML(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`
provider = "openai"
model = "gpt-4.1"
api_key = "test-key"
base_url = "https://example.test"
name = "Spark"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Fatalf("cfg.Provider = %q, want %q", cfg.Provider, "openai")
	}
	if cfg.Model != "gpt-4.1" {
		t.Fatalf("cfg.Model = %q, want %q", cfg.Model, "gpt-4.1")
	}
	if cfg.Name != "Spark" {
		t.Fatalf("cfg.Name = %q, want %q", cfg.Name, "Spark")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PASSION_MODEL", "env-model")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`model = "file-model"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "env-model" {
		t.Fatalf("cfg.Model = %q, want %q", cfg.Model, "env-model")
	}
}

func TestHasAPIKey_RejectsPlaceholder(t *testing.T) {
	cfg := Config{APIKey: "YOUR_API_KEY_HERE"}
	if cfg.HasAPIKey() {
		t.Fatal("placeholder key should not count as configured")
	}
	cfg.APIKey = "sk-real"
	if !cfg.HasAPIKey() {
		t.Fatal("expected real key to count as configured")
	}
}
