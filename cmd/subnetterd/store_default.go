//go:build !sqlite && !postgres

package main

import (
	"subnetter/internal/config"
	"subnetter/internal/history"
	"subnetter/internal/observability"
)

// selectHistoryStore returns the in-memory store when built without a
// storage tag. If config asks for a database driver, log a rebuild hint.
func selectHistoryStore(logger observability.Logger, cfg config.History) history.Store {
	if cfg.Driver != "" && cfg.Driver != "memory" {
		logger.Warn("history driver requires a build tag; using in-memory store",
			"driver", cfg.Driver,
			"hint", "rebuild with -tags "+cfg.Driver,
		)
	}
	return history.NewMemoryStore()
}
