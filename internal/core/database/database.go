package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cutconnect/internal/core/config"
	"cutconnect/internal/store"
)

// Open builds the document store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.Database, l *zap.Logger) (store.Store, error) {
	switch cfg.Driver {
	case "mongo", "":
		return store.NewMongo(ctx, store.MongoOpts{
			URI:              cfg.URL,
			Database:         cfg.Name,
			MaxPoolSize:      cfg.MaxPoolSize,
			MinPoolSize:      cfg.MinPoolSize,
			MaxConnIdle:      time.Duration(cfg.MaxConnIdleMin) * time.Minute,
			ConnectTimeout:   time.Duration(cfg.ConnectTimeoutSec) * time.Second,
			SelectionTimeout: time.Duration(cfg.SelectionTimeoutMs) * time.Millisecond,
		}, l)
	case "memory":
		l.Warn("using in-memory store, data is lost on restart")
		return store.NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnsupportedDriver, cfg.Driver)
	}
}

// Connect is Open for process startup. A mongo store that cannot be built
// (no URL, unparsable URL) does not stop the process: it returns a
// store.Unavailable and ready=false so the caller can serve diagnostics.
// An unknown driver is still an error.
func Connect(ctx context.Context, cfg config.Database, l *zap.Logger) (s store.Store, ready bool, err error) {
	s, err = Open(ctx, cfg, l)
	switch {
	case err == nil:
		return s, true, nil
	case errors.Is(err, store.ErrUnsupportedDriver):
		return nil, false, err
	}
	l.Error("database not initialized, API routes will answer 500", zap.Error(err))
	return store.NewUnavailable(err), false, nil
}
