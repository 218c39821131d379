// Command dawg builds minimal dictionary automata from word lists and
// queries them.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/milden6/mindict/internal/config"
	"github.com/milden6/mindict/lexicon"
	"github.com/milden6/mindict/store"
)

// app carries what every command needs once flags and config are parsed.
type app struct {
	configPath string
	logLevel   string
	storePath  string

	cfg    config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "dawg",
		Short:         "Build and query minimal dictionary automata",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "dawg.yaml", "path to the YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	flags.StringVar(&a.storePath, "store", "", "override the automaton store directory")

	root.AddCommand(
		newBuildCmd(a),
		newAcceptsCmd(a),
		newLanguageCmd(a),
		newTransitionsCmd(a),
		newDrawCmd(a),
		newInfoCmd(a),
		newIndexCmd(a),
		newPrefixesCmd(a),
		newStoreCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	required := cmd.Flags().Changed("config")
	cfg, err := config.Load(a.configPath, required)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.storePath != "" {
		cfg.Store.Path = a.storePath
		cfg.Store.InMemory = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) lexiconOptions() lexicon.Options {
	return lexicon.Options{
		Normalize:     a.cfg.Lexicon.Normalize,
		TrimSpace:     a.cfg.Lexicon.TrimSpace,
		SkipBlank:     a.cfg.Lexicon.SkipBlank,
		CommentPrefix: a.cfg.Lexicon.CommentPrefix,
		Logger:        a.logger,
	}
}

func (a *app) openStore() (*store.Store, error) {
	s, err := store.Open(store.Config{
		Path:       a.cfg.Store.Path,
		InMemory:   a.cfg.Store.InMemory,
		SyncWrites: a.cfg.Store.SyncWrites,
		Logger:     a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}
