package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

type postgresCartSnapshotStore struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewPostgresCartSnapshotStore persists whole-cart snapshots as JSON
// keyed by store name, one row per store. EnsureSchema must have run
// before the first Save.
func NewPostgresCartSnapshotStore(db *sql.DB, logger *logrus.Logger) domain.CartSnapshotStore {
	return &postgresCartSnapshotStore{
		db:  db,
		log: logger,
	}
}

// EnsureSchema creates the snapshot table if it does not exist yet.
func EnsureSchema(db *sql.DB) error {
	query := `
        CREATE TABLE IF NOT EXISTS cart_snapshots (
            store_name TEXT PRIMARY KEY,
            snapshot   JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("could not create cart_snapshots table: %w", err)
	}
	return nil
}

func (r *postgresCartSnapshotStore) Load(ctx context.Context, storeName string) (domain.CartSnapshot, bool, error) {
	query := `SELECT snapshot FROM cart_snapshots WHERE store_name = $1`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, storeName).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		r.log.Infof("No cart snapshot stored under '%s'", storeName)
		return domain.CartSnapshot{}, false, nil
	}
	if err != nil {
		r.log.Errorf("Failed to load cart snapshot '%s': %v", storeName, err)
		return domain.CartSnapshot{}, false, fmt.Errorf("could not load cart snapshot: %w", err)
	}

	var snapshot domain.CartSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		r.log.Errorf("Failed to decode cart snapshot '%s': %v", storeName, err)
		return domain.CartSnapshot{}, false, fmt.Errorf("could not decode cart snapshot: %w", err)
	}

	r.log.Infof("Loaded cart snapshot '%s' with %d lines", storeName, len(snapshot.Lines))
	return snapshot, true, nil
}

func (r *postgresCartSnapshotStore) Save(ctx context.Context, storeName string, snapshot domain.CartSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		r.log.Errorf("Failed to encode cart snapshot '%s': %v", storeName, err)
		return fmt.Errorf("could not encode cart snapshot: %w", err)
	}

	query := `
        INSERT INTO cart_snapshots (store_name, snapshot, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (store_name)
        DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()
    `
	if _, err := r.db.ExecContext(ctx, query, storeName, raw); err != nil {
		r.log.Errorf("Failed to save cart snapshot '%s': %v", storeName, err)
		return fmt.Errorf("could not save cart snapshot: %w", err)
	}

	r.log.Debugf("Saved cart snapshot '%s' with %d lines", storeName, len(snapshot.Lines))
	return nil
}
