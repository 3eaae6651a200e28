package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, styles, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, filepath.Join(home, ".config", "tickit", "state.db"), cfg.Database)
	assert.Zero(t, cfg.RequestTimeout)
	assert.Equal(t, DefaultStyles(), styles)

	assert.FileExists(t, filepath.Join(home, ".config", "tickit", "config.json"))
	assert.FileExists(t, filepath.Join(home, ".config", "tickit", "styles.json"))
}

func TestLoadReadsFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "custom.json")
	data, _ := json.Marshal(map[string]any{
		"base_url":        "https://tickit.example.com",
		"request_timeout": "15s",
		"styles_file":     filepath.Join(home, "styles.json"),
	})
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://tickit.example.com", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)

	t.Setenv("TICKIT_BASE_URL", "http://10.0.0.5:8080")
	cfg, _, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8080", cfg.BaseURL)
}

func TestLoadStylesKeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dark":{"accent_color":"#ff00ff"}}`), 0644))

	styles, err := loadStyles(path)
	require.NoError(t, err)
	assert.Equal(t, "#ff00ff", styles.Dark.AccentColor)
	assert.Equal(t, DefaultStyles().Dark.BorderColor, styles.Dark.BorderColor)
	assert.Equal(t, DefaultStyles().Light, styles.Light)
}

func TestPalette(t *testing.T) {
	s := DefaultStyles()
	assert.Equal(t, s.Dark, s.Palette(true))
	assert.Equal(t, s.Light, s.Palette(false))
}
