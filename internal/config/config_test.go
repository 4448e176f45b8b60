// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadFromPathFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
[ollama]
chat_model = "llama3.2:3b"
`)
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "llama3.2:3b", cfg.Ollama.ChatModel)
	// Everything unset falls back to defaults.
	assert.Equal(t, "http://127.0.0.1:11434", cfg.Ollama.URL)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "vertical", cfg.Minimap.Orientation)
	assert.Equal(t, 3, cfg.Minimap.IdleResumeSecs)
}

func TestLoadFromPathRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad url":         "[ollama]\nurl = \"not a url\"\n",
		"bad theme":       "[ui]\ntheme = \"solarized\"\n",
		"bad orientation": "[minimap]\norientation = \"diagonal\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromPath(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CARDSTACK_MODEL", "mistral:7b")
	t.Setenv("CARDSTACK_OLLAMA_URL", "http://10.0.0.5:11434")
	t.Setenv("CARDSTACK_NO_ANIMATION", "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "mistral:7b", cfg.Ollama.ChatModel)
	assert.Equal(t, "http://10.0.0.5:11434", cfg.Ollama.URL)
	assert.False(t, cfg.Animation.Enabled)
}

func TestEnvOverridesApplyOnTopOfFile(t *testing.T) {
	t.Setenv("CARDSTACK_THEME", "light")

	path := writeConfig(t, "[ui]\ntheme = \"dark\"\n")
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Ollama.ChatModel = "custom:latest"
	cfg.Minimap.Orientation = "horizontal"
	require.NoError(t, SaveToPath(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "custom:latest", loaded.Ollama.ChatModel)
	assert.Equal(t, "horizontal", loaded.Minimap.Orientation)
}

func TestWatcherReloadsOnChange(t *testing.T) {
	path := writeConfig(t, "[ui]\ntheme = \"dark\"\n")

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"light\"\n"), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "light", cfg.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload config")
	}
}

func TestWatcherReportsInvalidConfig(t *testing.T) {
	path := writeConfig(t, "[ui]\ntheme = \"dark\"\n")

	errs := make(chan error, 1)
	w, err := NewWatcher(path, func(*Config) {
		t.Error("reload callback fired for invalid config")
	}, func(err error) {
		select {
		case errs <- err:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"nope\"\n"), 0644))

	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not surface the error")
	}
}
