// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/cardstack-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete cardstack configuration.
type Config struct {
	Version string `toml:"version"`

	Ollama    OllamaConfig    `toml:"ollama"`
	UI        UIConfig        `toml:"ui"`
	Animation AnimationConfig `toml:"animation"`
	Minimap   MinimapConfig   `toml:"minimap"`
	Storage   StorageConfig   `toml:"storage"`
	Prompts   PromptsConfig   `toml:"prompts"`
}

// OllamaConfig configures the local model server.
type OllamaConfig struct {
	// URL of the Ollama server
	URL string `toml:"url"`
	// ChatModel used for conversation turns
	ChatModel string `toml:"chat_model"`
	// TitleModel used for card titles (empty = ChatModel)
	TitleModel string `toml:"title_model"`
	// TitleIntervalSecs is the minimum spacing between title generations
	TitleIntervalSecs int `toml:"title_interval_secs"`
}

// UIConfig holds general interface settings.
type UIConfig struct {
	// Theme name: "dark", "light"
	Theme string `toml:"theme"`
	// MarkdownWidth caps rendered message width in columns (0 = card width)
	MarkdownWidth int `toml:"markdown_width"`
	// ShowMinimap toggles the tree overview pane
	ShowMinimap bool `toml:"show_minimap"`
}

// AnimationConfig tunes stack transitions.
type AnimationConfig struct {
	// Enabled turns transitions off entirely when false; navigation then
	// snaps directly to the final arrangement
	Enabled bool `toml:"enabled"`
	// ReduceMotion shortens transitions without disabling them
	ReduceMotion bool `toml:"reduce_motion"`
}

// MinimapConfig tunes the tree overview.
type MinimapConfig struct {
	// Orientation of tree layers: "vertical" or "horizontal"
	Orientation string `toml:"orientation"`
	// IdleResumeSecs is how long after a manual scroll auto-centering
	// takes back over
	IdleResumeSecs int `toml:"idle_resume_secs"`
}

// StorageConfig locates the project database.
type StorageConfig struct {
	// DatabasePath overrides the default ~/.cardstack/projects.db
	DatabasePath string `toml:"database_path"`
}

// PromptsConfig carries model steering text.
type PromptsConfig struct {
	// System prompt prefixed to every conversation
	System string `toml:"system"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Ollama: OllamaConfig{
			URL:               "http://127.0.0.1:11434",
			ChatModel:         "qwen2.5:7b",
			TitleIntervalSecs: 10,
		},
		UI: UIConfig{
			Theme:         "dark",
			MarkdownWidth: 100,
			ShowMinimap:   true,
		},
		Animation: AnimationConfig{
			Enabled: true,
		},
		Minimap: MinimapConfig{
			Orientation:    "vertical",
			IdleResumeSecs: 3,
		},
		Prompts: PromptsConfig{
			System: "You are a helpful assistant. Answer concisely.",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the cardstack configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".cardstack"), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the configuration directory if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file, falling back to defaults when it does
// not exist. Environment overrides apply either way.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, cfg.Validate()
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file with env
// overrides, default filling, and validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cfg.fillDefaults()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills missing values with defaults. Booleans cannot be
// distinguished from "unset" in TOML, so they keep their decoded value.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Ollama.URL == "" {
		c.Ollama.URL = defaults.Ollama.URL
	}
	if c.Ollama.ChatModel == "" {
		c.Ollama.ChatModel = defaults.Ollama.ChatModel
	}
	if c.Ollama.TitleIntervalSecs == 0 {
		c.Ollama.TitleIntervalSecs = defaults.Ollama.TitleIntervalSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.MarkdownWidth == 0 {
		c.UI.MarkdownWidth = defaults.UI.MarkdownWidth
	}
	if c.Minimap.Orientation == "" {
		c.Minimap.Orientation = defaults.Minimap.Orientation
	}
	if c.Minimap.IdleResumeSecs == 0 {
		c.Minimap.IdleResumeSecs = defaults.Minimap.IdleResumeSecs
	}
	if c.Prompts.System == "" {
		c.Prompts.System = defaults.Prompts.System
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies CARDSTACK_* environment variables on top of the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("CARDSTACK_OLLAMA_URL"); u != "" {
		c.Ollama.URL = u
	}
	if model := os.Getenv("CARDSTACK_MODEL"); model != "" {
		c.Ollama.ChatModel = model
	}
	if model := os.Getenv("CARDSTACK_TITLE_MODEL"); model != "" {
		c.Ollama.TitleModel = model
	}
	if theme := os.Getenv("CARDSTACK_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if db := os.Getenv("CARDSTACK_DB"); db != "" {
		c.Storage.DatabasePath = db
	}
	if v := os.Getenv("CARDSTACK_NO_ANIMATION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Animation.Enabled = !b
		}
	}
	if v := os.Getenv("CARDSTACK_REDUCE_MOTION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Animation.ReduceMotion = b
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values the app cannot run with.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Ollama.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("ollama.url %q is not a valid URL", c.Ollama.URL)
	}
	if c.Ollama.TitleIntervalSecs < 1 {
		return fmt.Errorf("ollama.title_interval_secs must be at least 1, got %d", c.Ollama.TitleIntervalSecs)
	}

	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.theme %q is not one of: dark, light", c.UI.Theme)
	}
	if c.UI.MarkdownWidth < 0 {
		return fmt.Errorf("ui.markdown_width cannot be negative, got %d", c.UI.MarkdownWidth)
	}

	switch strings.ToLower(c.Minimap.Orientation) {
	case "vertical", "horizontal":
	default:
		return fmt.Errorf("minimap.orientation %q is not one of: vertical, horizontal", c.Minimap.Orientation)
	}
	if c.Minimap.IdleResumeSecs < 1 {
		return fmt.Errorf("minimap.idle_resume_secs must be at least 1, got %d", c.Minimap.IdleResumeSecs)
	}

	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default location.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration as TOML to the given path.
func SaveToPath(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# cardstack configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	// RELIABILITY: atomic write so a crash mid-save never truncates the
	// config file
	return util.AtomicWriteFile(path, buf.Bytes(), 0644)
}
