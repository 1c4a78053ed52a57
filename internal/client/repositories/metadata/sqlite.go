package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hrconsole/internal/dbx"
)

const (
	selectValueQuery = `SELECT value FROM metadata WHERE key = ?`
	upsertValueQuery = `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	deleteValueQuery = `DELETE FROM metadata WHERE key = ?`
)

// SQLiteRepository keeps metadata in one table of the profile's database
// file. Other consoles on the same file learn about writes through
// FileNotifier.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	switch err := r.db.QueryRowContext(ctx, selectValueQuery, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, opError("get", key, err)
	}
	return value, nil
}

// Set inserts or replaces the value of key.
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, upsertValueQuery, key, value); err != nil {
		return opError("set", key, err)
	}
	return nil
}

// Delete removes key. A missing key is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteValueQuery, key); err != nil {
		return opError("delete", key, err)
	}
	return nil
}

func opError(op, key string, err error) error {
	return fmt.Errorf("failed to %s metadata[%s]: %w", op, key, err)
}
