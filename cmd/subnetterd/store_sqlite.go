//go:build sqlite && !postgres

package main

import (
	"subnetter/internal/config"
	"subnetter/internal/history"
	"subnetter/internal/observability"
)

// selectHistoryStore returns a SQLite-backed store when built with the
// 'sqlite' tag. Configure the DSN via config or SUBNETTER_HISTORY_DSN
// (e.g., file:subnetter.db?cache=shared).
func selectHistoryStore(logger observability.Logger, cfg config.History) history.Store {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = "file:subnetter.db?cache=shared"
	}
	st, err := history.NewSQLiteStore(dsn)
	if err != nil {
		logger.Warn("sqlite init failed, falling back to memory store", "error", err)
		return history.NewMemoryStore()
	}
	logger.Info("using sqlite history store", "dsn", dsn)
	return st
}
