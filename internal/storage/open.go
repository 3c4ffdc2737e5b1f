// Package storage selects the DocumentStore backend named by configuration.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"travelnest/internal/domain"
	"travelnest/internal/shared"
	fsstore "travelnest/internal/storage/firestore"
	"travelnest/internal/storage/memory"
	mysqlstore "travelnest/internal/storage/mysql"
)

// Open returns the configured store and a func releasing its connections.
func Open(ctx context.Context, cfg shared.Config) (domain.DocumentStore, func() error, error) {
	switch cfg.StoreDriver {
	case "", "memory":
		log.Warn().Msg("using in-memory document store; data is lost on restart")
		return memory.New(), func() error { return nil }, nil

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db.Ping: %w", err)
		}
		log.Info().Msg("database connection ok")
		return mysqlstore.New(db), db.Close, nil

	case "firestore":
		if cfg.FirestoreProject == "" {
			return nil, nil, errors.New("FIRESTORE_PROJECT is required for the firestore driver")
		}
		s, err := fsstore.New(ctx, cfg.FirestoreProject)
		if err != nil {
			return nil, nil, fmt.Errorf("firestore client: %w", err)
		}
		log.Info().Str("project", cfg.FirestoreProject).Msg("firestore client ok")
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
