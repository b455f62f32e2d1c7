// Package config loads pagemark defaults from an optional YAML file.
// Command-line flags that are set explicitly take precedence over it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/pagemark/core/markdown"
)

const (
	// DefaultInput is the input file used when none is given.
	DefaultInput = "demo.html"

	// DefaultOutput is the output file used when none is given.
	DefaultOutput = "demo.md"
)

// Config holds the conversion settings.
type Config struct {
	Input         string `yaml:"input"`
	Output        string `yaml:"output"`
	Format        string `yaml:"format"`
	Engine        string `yaml:"engine"`
	InlineCodeMax int    `yaml:"inline_code_max"`
	LogLevel      string `yaml:"log_level"`

	// OutputSet is true when Output was chosen by the user rather than
	// left at its default, even if the chosen value equals the default.
	OutputSet bool `yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Input:         DefaultInput,
		Output:        DefaultOutput,
		Format:        "markdown",
		Engine:        "tree",
		InlineCodeMax: markdown.DefaultInlineCodeMaxLen,
		LogLevel:      "info",
	}
}

// Load reads path over the defaults. Keys missing from the file keep
// their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	_, cfg.OutputSet = keys["output"]

	if cfg.InlineCodeMax < 0 {
		return cfg, fmt.Errorf("parsing config %s: inline_code_max must not be negative", path)
	}
	return cfg, nil
}

// Level maps LogLevel onto a slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(c.LogLevel)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
