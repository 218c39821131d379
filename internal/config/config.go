// Package config loads the YAML configuration of the dawg command.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
type Config struct {
	Lexicon LexiconConfig `yaml:"lexicon"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	Output  OutputConfig  `yaml:"output"`
}

// LexiconConfig controls how word lists are read.
type LexiconConfig struct {
	Normalize     bool   `yaml:"normalize"`
	TrimSpace     bool   `yaml:"trim_space"`
	SkipBlank     bool   `yaml:"skip_blank"`
	CommentPrefix string `yaml:"comment_prefix"`
}

// StoreConfig locates the named automaton store.
type StoreConfig struct {
	Path       string `yaml:"path"`
	InMemory   bool   `yaml:"in_memory"`
	SyncWrites bool   `yaml:"sync_writes"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig selects the file format automata are saved in.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// Output formats.
const (
	FormatBinary = "dawg"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Lexicon: LexiconConfig{
			Normalize: true,
			TrimSpace: true,
			SkipBlank: true,
		},
		Store: StoreConfig{
			Path:       ".dawg-store",
			SyncWrites: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Format: FormatBinary,
		},
	}
}

// Load reads the file at path on top of the defaults. A missing file is
// an error only if required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the values that have a fixed set of choices.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	switch c.Output.Format {
	case FormatBinary, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output.Format)
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		return errors.New("config: store.path is required unless store.in_memory is set")
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("config: unknown log level %q", s)
	}
	return level, nil
}

// NewLogger builds the logger described by c, writing to w.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch c.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("config: unknown log format %q", c.Format)
}
