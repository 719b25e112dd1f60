// Package reports caches AI-generated summaries keyed by date range.
package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/dbx"
	"github.com/dmitrijs2005/daylog/internal/models"
)

// Repository stores at most one report per (StartDate, EndDate) pair;
// saving again for the same range replaces the older report.
type Repository interface {
	Save(ctx context.Context, r models.Report) error
	Latest(ctx context.Context, startDate, endDate string) (*models.Report, error)
}

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts a report for its date range.
func (r *SQLiteRepository) Save(ctx context.Context, report models.Report) error {
	query := `INSERT INTO reports (start_date, end_date, created_at, data)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(start_date, end_date) DO UPDATE SET created_at = excluded.created_at,
				data = excluded.data
	`
	_, err := r.db.ExecContext(ctx, query, report.StartDate, report.EndDate, report.CreatedAt, []byte(report.Data))
	if err != nil {
		return fmt.Errorf("failed to upsert report: %w", err)
	}
	return nil
}

// Latest returns the cached report for the range, or common.ErrNotFound.
func (r *SQLiteRepository) Latest(ctx context.Context, startDate, endDate string) (*models.Report, error) {
	query := `SELECT start_date, end_date, created_at, data FROM reports WHERE start_date = ? AND end_date = ?`
	row := r.db.QueryRowContext(ctx, query, startDate, endDate)

	var report models.Report
	var data []byte
	err := row.Scan(&report.StartDate, &report.EndDate, &report.CreatedAt, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	report.Data = data
	return &report, nil
}
