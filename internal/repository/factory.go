package repository

import (
	"fmt"

	"github.com/unclebandit/fitkitchen-backend/internal/config"
	"github.com/unclebandit/fitkitchen-backend/internal/db"
)

// Open returns the store selected by cfg and a function releasing its resources.
func Open(cfg config.StorageConfig) (CustomerStore, func() error, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		conn, err := db.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewCustomerPostgresRepository(conn), conn.Close, nil
	case config.BackendFile, "":
		return NewCustomerFileRepository(cfg.DataPath), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
