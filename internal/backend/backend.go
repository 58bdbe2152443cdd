// Package backend opens the key-value storage backend selected by config.
package backend

import (
	"context"
	"fmt"
	"io"

	"todo/internal/backend/filekv"
	"todo/internal/backend/mysqlkv"
	"todo/internal/config"
	"todo/internal/kv"
)

// Backend is an open key-value store plus its release hook.
type Backend interface {
	kv.Store
	io.Closer
}

// Open returns the backend named by cfg.Backend().
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch name := cfg.Backend(); name {
	case config.BackendFile:
		cfg.Logger.Debug("opening file store", "path", cfg.StorePath())
		s, err := filekv.Open(cfg.StorePath())
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendMySQL:
		dsn := cfg.DSN()
		if dsn == "" {
			return nil, fmt.Errorf("mysql backend requires storage.dsn or %s", config.DSNEnv)
		}
		cfg.Logger.Debug("opening mysql store")
		s, err := mysqlkv.Open(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendMemory:
		cfg.Logger.Debug("using in-memory store")
		return memBackend{kv.NewMem()}, nil
	default:
		return nil, fmt.Errorf("invalid storage backend: %s", name)
	}
}

type memBackend struct{ *kv.Mem }

func (memBackend) Close() error { return nil }
