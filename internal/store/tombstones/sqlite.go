// Package tombstones persists pending-delete markers. A tombstone exists
// from the moment an entry is deleted locally until the remote deletion has
// been confirmed; while it exists, its id must never be readopted by a pull.
package tombstones

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/dbx"
	"github.com/dmitrijs2005/daylog/internal/models"
)

// Repository describes tombstone management. All operations are idempotent:
// marking twice has no additional effect, clearing an absent id is a no-op.
type Repository interface {
	Mark(ctx context.Context, t models.Tombstone) error
	Clear(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Tombstone, error)
}

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Mark records a pending deletion. Re-marking an id keeps the first row.
func (r *SQLiteRepository) Mark(ctx context.Context, t models.Tombstone) error {
	query := `INSERT INTO tombstones (id, date_key) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.DateKey); err != nil {
		return fmt.Errorf("failed to mark tombstone: %w", err)
	}
	return nil
}

// Clear removes a tombstone after its remote deletion was confirmed.
func (r *SQLiteRepository) Clear(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tombstones WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear tombstone: %w", err)
	}
	return nil
}

// List returns all pending deletions.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Tombstone, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, date_key FROM tombstones`)
	if err != nil {
		return nil, fmt.Errorf("failed to select tombstones: %w", err)
	}
	defer rows.Close()

	var result []models.Tombstone
	for rows.Next() {
		var t models.Tombstone
		if err := rows.Scan(&t.ID, &t.DateKey); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
