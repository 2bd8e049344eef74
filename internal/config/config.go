package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the only persisted config file schema.
type Config struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Name     string `toml:"name"`
	Source   string `toml:"-"`
}

func Default() Config {
	return Config{
		Provider: "anthropic",
		Model:    "claude-sonnet-4-20250514",
		Name:     "Passion",
	}
}

// SearchPaths lists candidate config locations in priority order: the
// project-local passion directory first, then the home directory.
func SearchPaths() []string {
	paths := []string{filepath.Join(".passion", "config.toml")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".passion", "config.toml"))
	}
	return paths
}

// Load reads the config from path, or from the first existing search path
// when path is empty. A missing file is not an error: defaults plus
// environment overrides apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		for _, candidate := range SearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return applyEnv(cfg), nil
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if env := strings.TrimSpace(os.Getenv("PASSION_PROVIDER")); env != "" {
		cfg.Provider = env
	}
	if env := strings.TrimSpace(os.Getenv("PASSION_MODEL")); env != "" {
		cfg.Model = env
	}
	if env := strings.TrimSpace(os.Getenv("PASSION_API_KEY")); env != "" {
		cfg.APIKey = env
	}
	if env := strings.TrimSpace(os.Getenv("PASSION_BASE_URL")); env != "" {
		cfg.BaseURL = env
	}
	return cfg
}

// HasAPIKey reports whether a usable key is configured. The placeholder
// value from a freshly scaffolded config counts as unset.
func (c Config) HasAPIKey() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && key != "YOUR_API_KEY_HERE"
}

// PassionDir resolves the directory for logs and state: a project-local
// .passion if present, then ~/.passion, defaulting to the project-local one.
func PassionDir() string {
	local := ".passion"
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local
	}
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".passion")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return local
}
