package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	dawg "github.com/milden6/mindict"
	"github.com/milden6/mindict/internal/config"
)

const storeRefPrefix = "store:"

// formatFor picks the file format: the explicit one if given, else from
// the file extension, else the configured default.
func (a *app) formatFor(path, explicit string) string {
	if explicit != "" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return config.FormatJSON
	case ".yaml", ".yml":
		return config.FormatYAML
	case ".dawg":
		return config.FormatBinary
	}
	return a.cfg.Output.Format
}

// loadAutomaton opens an automaton from a file, or from the store when
// ref is "store:<name>".
func (a *app) loadAutomaton(ref string) (*dawg.Automaton, error) {
	if name, ok := strings.CutPrefix(ref, storeRefPrefix); ok {
		s, err := a.openStore()
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.Get(name)
	}

	var (
		d   *dawg.Automaton
		err error
	)
	switch a.formatFor(ref, "") {
	case config.FormatJSON:
		d, err = decodeFile(ref, dawg.DecodeJSON)
	case config.FormatYAML:
		d, err = decodeFile(ref, dawg.DecodeYAML)
	default:
		d, err = dawg.Load(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ref, err)
	}

	a.logger.Debug("automaton loaded",
		slog.String("source", ref),
		slog.Int("states", d.NumStates()),
		slog.Int("words", d.NumWords()),
	)
	return d, nil
}

func decodeFile(path string, decode func(io.Reader) (*dawg.Automaton, error)) (*dawg.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

// saveAutomaton writes d to path in the given format.
func (a *app) saveAutomaton(d *dawg.Automaton, path, format string) error {
	format = a.formatFor(path, format)
	if format == config.FormatBinary {
		n, err := d.Save(path)
		if err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		a.logger.Debug("automaton saved", slog.String("path", path), slog.Int64("bytes", n))
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	switch format {
	case config.FormatJSON:
		err = d.EncodeJSON(f)
	case config.FormatYAML:
		err = d.EncodeYAML(f)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	a.logger.Debug("automaton saved", slog.String("path", path), slog.String("format", format))
	return nil
}
