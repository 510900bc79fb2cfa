package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"devskillshub/internal/database"
	"devskillshub/internal/infrastructure/kv"

	"github.com/jackc/pgx/v5"
)

// KVRepository stores each key as one row of kv_store. The value column is TEXT
// so a malformed blob survives a round trip and is reported by the reader.
type KVRepository struct {
	db database.DB
}

func NewKVRepository(db database.DB) *KVRepository {
	return &KVRepository{db: db}
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if r == nil || r.db == nil {
		return nil, false, kv.ErrUnavailable
	}
	var value string
	row := r.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	if r == nil || r.db == nil {
		return kv.ErrUnavailable
	}
	affected, err := r.db.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, string(value),
	)
	if err != nil {
		return err
	}
	if affected != 1 {
		return fmt.Errorf("kv_store upsert affected %d rows", affected)
	}
	return nil
}

func (r *KVRepository) Ping(ctx context.Context) error {
	if r == nil || r.db == nil {
		return kv.ErrUnavailable
	}
	return r.db.Ping(ctx)
}

var _ kv.Medium = (*KVRepository)(nil)
