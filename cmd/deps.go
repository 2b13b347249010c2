package cmd

import (
	"fmt"

	"github.com/abhisek/lexis/internal/logger"
	"github.com/abhisek/lexis/internal/store"
	"github.com/abhisek/lexis/internal/study"
	"github.com/spf13/cobra"
)

// deps are the long-lived objects every command works with.
type deps struct {
	log   *logger.Logger
	store *store.Store
	ctrl  *study.Controller
}

// openDeps builds the logger, opens the store and loads the collection.
func openDeps(cmd *cobra.Command) (*deps, error) {
	log, err := newLogger(cmd)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "path", dbPath, "command", cmd.Name())

	ctrl, err := study.New(cmd.Context(), st.KV(), study.WithLogger(log))
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return &deps{log: log, store: st, ctrl: ctrl}, nil
}

func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		d.log.Warn("close store", "error", err)
	}
	d.log.Sync()
}

func newLogger(cmd *cobra.Command) (*logger.Logger, error) {
	cfg := logger.ConfigFromEnv()
	if p, _ := cmd.Flags().GetString("log"); p != "" {
		cfg.Path = p
	}
	return logger.New(cfg)
}
