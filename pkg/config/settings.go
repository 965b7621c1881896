package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v2"
)

const (
	// EnvPrefix prefixes every environment variable jsonfold reads
	EnvPrefix = "JSONFOLD_"
	// FileName is the config file looked up in the home directory
	FileName  = ".jsonfold.yaml"

	MeasureRunes = "runes"
	MeasureCells = "cells"
)

// Settings are the folding defaults the CLI starts from. MaxWidth 0 means
// "terminal width when writing to a terminal, otherwise 80".
type Settings struct {
	MaxWidth int    `yaml:"max_width"`
	Measure  string `yaml:"measure"`
	Strict   bool   `yaml:"strict"`
	Input    string `yaml:"input"`
	Encoding string `yaml:"encoding"`
}

// Defaults returns the built-in settings
func Defaults() Settings {
	return Settings{
		Measure:  MeasureRunes,
		Strict:   true,
		Input:    "json",
		Encoding: "cl100k_base",
	}
}

// Validate checks values that cannot be corrected silently
func (s Settings) Validate() error {
	if s.MaxWidth < 0 {
		return fmt.Errorf("max_width must not be negative, got %d", s.MaxWidth)
	}
	switch s.Measure {
	case MeasureRunes, MeasureCells:
	default:
		return fmt.Errorf("measure must be %q or %q, got %q", MeasureRunes, MeasureCells, s.Measure)
	}
	switch s.Input {
	case "json", "yaml", "lines":
	default:
		return fmt.Errorf("input must be json, yaml or lines, got %q", s.Input)
	}
	return nil
}

// Loader resolves Settings from defaults, the config file, .env and the environment,
// in increasing order of precedence
type Loader struct {
	Env     Manager
	DotEnv  string
	HomeDir func() (string, error)
}

// NewLoader creates a loader reading the real environment, ./.env and ~/.jsonfold.yaml
func NewLoader() *Loader {
	return &Loader{
		Env:     NewConfigManager(EnvPrefix),
		DotEnv:  ".env",
		HomeDir: homedir.Dir,
	}
}

// Load resolves settings with NewLoader
func Load() (Settings, error) {
	return NewLoader().Load()
}

// Load resolves and validates the settings
func (l *Loader) Load() (Settings, error) {
	settings := Defaults()

	if l.DotEnv != "" {
		if err := godotenv.Load(l.DotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return settings, fmt.Errorf("failed to load %s: %w", l.DotEnv, err)
		}
	}

	path, err := l.configPath()
	if err != nil {
		return settings, err
	}
	if path != "" {
		if err := readFile(path, &settings); err != nil {
			return settings, err
		}
	}

	if err := l.applyEnv(&settings); err != nil {
		return settings, err
	}
	return settings, settings.Validate()
}

// configPath honours JSONFOLD_CONFIG, then falls back to the home directory.
// An empty path means there is no file to read.
func (l *Loader) configPath() (string, error) {
	if path, err := l.Env.GetString("CONFIG"); err == nil {
		return homedir.Expand(path)
	}
	if l.HomeDir == nil {
		return "", nil
	}
	home, err := l.HomeDir()
	if err != nil {
		return "", nil
	}
	path := filepath.Join(home, FileName)
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

func readFile(path string, settings *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, settings); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

func (l *Loader) applyEnv(settings *Settings) error {
	width, err := l.Env.GetInt("MAX_WIDTH")
	switch {
	case err == nil:
		settings.MaxWidth = width
	case !errors.Is(err, ErrNotFound):
		return err
	}

	strict, err := l.Env.GetBool("STRICT")
	switch {
	case err == nil:
		settings.Strict = strict
	case !errors.Is(err, ErrNotFound):
		return err
	}

	settings.Measure = l.Env.GetStringWithDefault("MEASURE", settings.Measure)
	settings.Input = l.Env.GetStringWithDefault("INPUT", settings.Input)
	settings.Encoding = l.Env.GetStringWithDefault("ENCODING", settings.Encoding)
	return nil
}
