// Package config loads the tldr style configuration.
//
// Config lives in config.toml inside the config directory. A missing
// file is not an error: defaults apply. The config and cache
// directories can be overridden with TLDR_CONFIG_DIR and
// TLDR_CACHE_DIR, which is how tests isolate themselves.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the name of the config file inside the config directory.
const ConfigFileName = "config.toml"

// LineStyle describes how one kind of page line is displayed.
type LineStyle struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Bold       bool   `toml:"bold"`
	Underline  bool   `toml:"underline"`
	Italic     bool   `toml:"italic"`
}

// StyleConfig maps each page line kind to a display style.
// ExampleVariable is the sub-style applied to {{placeholder}} spans
// inside example commands.
type StyleConfig struct {
	Title           LineStyle `toml:"title"`
	Description     LineStyle `toml:"description"`
	ExampleText     LineStyle `toml:"example_text"`
	ExampleCode     LineStyle `toml:"example_code"`
	ExampleVariable LineStyle `toml:"example_variable"`
}

// DisplayConfig holds global rendering toggles.
type DisplayConfig struct {
	Compact bool `toml:"compact"`
}

// Config holds the tldr configuration.
type Config struct {
	Style   StyleConfig   `toml:"style"`
	Display DisplayConfig `toml:"display"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Style: StyleConfig{
			Title:           LineStyle{Bold: true},
			Description:     LineStyle{},
			ExampleText:     LineStyle{Foreground: "green"},
			ExampleCode:     LineStyle{Foreground: "cyan"},
			ExampleVariable: LineStyle{Foreground: "cyan", Underline: true},
		},
	}
}

// Load reads config from the config directory.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Decode over the defaults so absent keys keep their default value.
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

const defaultConfig = `# tldr configuration

# Styles control how each kind of page line is rendered.
# Available attributes per style:
#   foreground = "red"      # named ANSI color or "#rrggbb" hex value
#   background = "black"
#   bold = true
#   underline = true
#   italic = true
#
# Recognized named colors: black, red, green, yellow, blue,
# magenta, cyan, white, and their bright- variants.

[style.title]
bold = true

[style.description]

[style.example_text]
foreground = "green"

[style.example_code]
foreground = "cyan"

# Applied to {{placeholder}} spans inside example commands.
[style.example_variable]
foreground = "cyan"
underline = true

[display]
# Skip blank separator lines between sections.
compact = false
`

// Seed writes the default config file to the config path.
// Fails if the file already exists unless force is set.
// Returns the path to the created file.
func Seed(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}

	return path, nil
}
