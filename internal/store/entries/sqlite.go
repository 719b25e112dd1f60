package entries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/dbx"
	"github.com/dmitrijs2005/daylog/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const entryColumns = `id, date_key, created_at, display_time, content, category, attachments, sync_state`

// CreateOrUpdate upserts an entry by id. On conflict every mutable column is
// replaced, so the row always mirrors the given entry exactly.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, e *models.Entry) error {
	attachments, err := json.Marshal(e.Attachments)
	if err != nil {
		return fmt.Errorf("failed to encode attachments: %w", err)
	}

	query := `INSERT INTO entries (id, date_key, created_at, display_time, content, category, attachments, sync_state)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET date_key = excluded.date_key,
				created_at = excluded.created_at,
				display_time = excluded.display_time,
				content = excluded.content,
				category = excluded.category,
				attachments = excluded.attachments,
				sync_state = excluded.sync_state
	`
	_, err = r.db.ExecContext(ctx, query,
		e.ID, e.DateKey, e.CreatedAt, e.DisplayTime, e.Text, e.Category, attachments, e.SyncState)
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// GetAll lists all entries, newest first.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY created_at DESC`
	return r.selectEntries(ctx, query)
}

// GetByDate lists entries for one date, ascending by creation time.
func (r *SQLiteRepository) GetByDate(ctx context.Context, dateKey string) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE date_key = ? ORDER BY created_at ASC`
	return r.selectEntries(ctx, query, dateKey)
}

// GetPendingByDate lists entries for the date that still need pushing.
func (r *SQLiteRepository) GetPendingByDate(ctx context.Context, dateKey string) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE date_key = ? AND sync_state <> ? ORDER BY created_at ASC`
	return r.selectEntries(ctx, query, dateKey, models.SyncStateSynced)
}

// GetByID returns a single entry by id.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return e, nil
}

// DeleteByID removes the row for good; tombstones live in their own table.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) selectEntries(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanEntry(scan func(dest ...any) error) (*models.Entry, error) {
	var e models.Entry
	var attachments []byte
	if err := scan(&e.ID, &e.DateKey, &e.CreatedAt, &e.DisplayTime, &e.Text, &e.Category, &attachments, &e.SyncState); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attachments, &e.Attachments); err != nil {
		return nil, fmt.Errorf("failed to decode attachments: %w", err)
	}
	return &e, nil
}
