//go:build postgres

package main

import (
	"context"
	"time"

	"subnetter/internal/config"
	"subnetter/internal/history"
	"subnetter/internal/observability"
)

// selectHistoryStore returns a PostgreSQL-backed store when built with
// the 'postgres' tag. The DSN comes from config or SUBNETTER_HISTORY_DSN.
func selectHistoryStore(logger observability.Logger, cfg config.History) history.Store {
	if cfg.DSN == "" {
		logger.Warn("postgres build without history DSN; using in-memory store")
		return history.NewMemoryStore()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	st, err := history.NewPostgresStore(ctx, cfg.DSN)
	if err != nil {
		logger.Warn("postgres init failed, falling back to memory store", "error", err)
		return history.NewMemoryStore()
	}
	logger.Info("using postgres history store")
	return st
}
