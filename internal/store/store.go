// Package store resuelve el adapter de persistencia según configuración.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/kasadel/mallcore/internal/config"
	"github.com/kasadel/mallcore/internal/store/core"
	"github.com/kasadel/mallcore/internal/store/memory"
	"github.com/kasadel/mallcore/internal/store/pg"
)

// Open construye el Repository para el driver configurado
// ("memory" o "postgres").
func Open(ctx context.Context, cfg *config.Config) (core.Repository, error) {
	switch cfg.Storage.Driver {
	case "", "memory":
		return memory.New(), nil
	case "postgres":
		var lifetime time.Duration
		if cfg.Storage.Postgres.ConnMaxLifetime != "" {
			lifetime, _ = time.ParseDuration(cfg.Storage.Postgres.ConnMaxLifetime)
		}
		return pg.New(ctx, pg.Config{
			DSN:             cfg.Storage.Postgres.DSN,
			MaxConns:        int32(cfg.Storage.Postgres.MaxConns),
			ConnMaxLifetime: lifetime,
		})
	default:
		return nil, fmt.Errorf("store: driver desconocido %q", cfg.Storage.Driver)
	}
}
