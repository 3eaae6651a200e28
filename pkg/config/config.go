package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tickit/pkg/api"
	"tickit/pkg/keymaps"
)

// Config holds the application configuration
type Config struct {
	BaseURL        string            `mapstructure:"base_url" json:"base_url"`
	Database       string            `mapstructure:"database" json:"database"`
	KeyMap         map[string]string `mapstructure:"keymap" json:"keymap"`
	StylesFile     string            `mapstructure:"styles_file" json:"styles_file"`
	RequestTimeout time.Duration     `mapstructure:"request_timeout" json:"request_timeout"`
}

// Palette holds the colours of one theme
type Palette struct {
	// UI element colors
	BorderColor string `json:"border_color"`
	AccentColor string `json:"accent_color"`

	// Text colors
	NormalTextColor   string `json:"normal_text_color"`
	MutedTextColor    string `json:"muted_text_color"`
	SelectedTextColor string `json:"selected_text_color"`
	SelectedBgColor   string `json:"selected_bg_color"`
	ErrorColor        string `json:"error_color"`
	SuccessColor      string `json:"success_color"`

	// Status and priority badges
	OngoingColor    string `json:"ongoing_color"`
	CompletedColor  string `json:"completed_color"`
	IncompleteColor string `json:"incomplete_color"`
	HighColor       string `json:"high_color"`
	MediumColor     string `json:"medium_color"`
	LowColor        string `json:"low_color"`
}

// Styles holds the light and dark palettes
type Styles struct {
	Light Palette `json:"light"`
	Dark  Palette `json:"dark"`
}

// Palette returns the colours for the current theme
func (s Styles) Palette(dark bool) Palette {
	if dark {
		return s.Dark
	}
	return s.Light
}

// DefaultStyles are written to the styles file on first run
func DefaultStyles() Styles {
	return Styles{
		Light: Palette{
			BorderColor:       "#195283",
			AccentColor:       "#195283",
			NormalTextColor:   "#333333",
			MutedTextColor:    "#6c757d",
			SelectedTextColor: "#ffffff",
			SelectedBgColor:   "#195283",
			ErrorColor:        "#dc3545",
			SuccessColor:      "#28a745",
			OngoingColor:      "#fd7e14",
			CompletedColor:    "#28a745",
			IncompleteColor:   "#dc3545",
			HighColor:         "#dc3545",
			MediumColor:       "#ffc107",
			LowColor:          "#17a2b8",
		},
		Dark: Palette{
			BorderColor:       "#333333",
			AccentColor:       "#4DB6AC",
			NormalTextColor:   "#e0e0e0",
			MutedTextColor:    "#a0a0a0",
			SelectedTextColor: "#121212",
			SelectedBgColor:   "#4DB6AC",
			ErrorColor:        "#ef5350",
			SuccessColor:      "#66bb6a",
			OngoingColor:      "#ffb74d",
			CompletedColor:    "#66bb6a",
			IncompleteColor:   "#ef5350",
			HighColor:         "#ef5350",
			MediumColor:       "#ffd54f",
			LowColor:          "#4fc3f7",
		},
	}
}

// Dir is where configuration lives by default
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tickit"), nil
}

// Load loads the application configuration from the specified path.
// A .env file in the working directory and TICKIT_* variables override the file.
func Load(configPath string) (Config, Styles, error) {
	configDir, err := Dir()
	if err != nil {
		return Config{}, Styles{}, err
	}

	// A missing .env is normal
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, Styles{}, fmt.Errorf("error loading .env: %w", err)
	}

	if configPath == "" {
		configPath = filepath.Join(configDir, "config.json")
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetDefault("base_url", api.DefaultBaseURL)
	v.SetDefault("database", filepath.Join(configDir, "state.db"))
	v.SetDefault("keymap", keymaps.GetDefaultKeyMappings())
	v.SetDefault("styles_file", filepath.Join(configDir, "styles.json"))
	v.SetDefault("request_timeout", "0s")

	v.SetEnvPrefix("TICKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, Styles{}, fmt.Errorf("error reading config: %w", err)
		}
		// First run: write the defaults so the user has something to edit
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return Config{}, Styles{}, err
		}
		if err := v.WriteConfigAs(configPath); err != nil {
			return Config{}, Styles{}, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return config, Styles{}, fmt.Errorf("error parsing config: %w", err)
	}

	styles, err := loadStyles(config.StylesFile)
	if err != nil {
		return config, styles, fmt.Errorf("error loading styles: %w", err)
	}

	return config, styles, nil
}

// loadStyles loads the palettes from the specified path
func loadStyles(stylesPath string) (Styles, error) {
	defaultStyles := DefaultStyles()

	stylesData, err := os.ReadFile(stylesPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return defaultStyles, err
		}

		// Write the defaults on first run
		if err := os.MkdirAll(filepath.Dir(stylesPath), 0755); err != nil {
			return defaultStyles, err
		}
		stylesData, err = json.MarshalIndent(defaultStyles, "", "  ")
		if err != nil {
			return defaultStyles, err
		}
		if err := os.WriteFile(stylesPath, stylesData, 0644); err != nil {
			return defaultStyles, err
		}
		return defaultStyles, nil
	}

	// Unset colours keep their defaults
	loadedStyles := defaultStyles
	if err := json.Unmarshal(stylesData, &loadedStyles); err != nil {
		return defaultStyles, err
	}

	return loadedStyles, nil
}
