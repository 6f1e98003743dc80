package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
	"github.com/Sinduaditya/fisikaap-sub000/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
// fetched_at is stored as unix milliseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error {
	query := `INSERT INTO cached_responses (key, payload, fetched_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`
	if _, err := r.db.ExecContext(ctx, query, key, payload, fetchedAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to cache %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Entry, error) {
	var (
		e  = &Entry{Key: key}
		ms int64
	)
	err := r.db.QueryRowContext(ctx, `SELECT payload, fetched_at FROM cached_responses WHERE key = ?`, key).
		Scan(&e.Payload, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache %s: %w", key, err)
	}
	e.FetchedAt = time.UnixMilli(ms).UTC()
	return e, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cached_responses WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to evict %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Purge(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cached_responses`); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}
