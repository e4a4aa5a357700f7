package storage

import (
	"context"
	"fmt"

	"github.com/yourname/savecircle/internal"
	"github.com/yourname/savecircle/internal/config"
)

// Open returns the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.Config, logger internal.Logger) (KV, error) {
	switch cfg.Backend {
	case "file":
		return NewFileStorage(cfg.DataFile, cfg.SaveDelay, logger)
	case "postgres":
		return NewPostgresStorage(ctx, cfg.PostgresDSN, logger)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
