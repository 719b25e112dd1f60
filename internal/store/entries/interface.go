package entries

import (
	"context"

	"github.com/dmitrijs2005/daylog/internal/models"
)

// Repository describes CRUD and query operations for Entry rows.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// CreateOrUpdate inserts a new entry or replaces an existing one by ID.
	CreateOrUpdate(ctx context.Context, entry *models.Entry) error

	// GetAll returns every entry in storage order (newest first).
	GetAll(ctx context.Context) ([]models.Entry, error)

	// GetByDate returns all entries for one date key, ascending by CreatedAt.
	GetByDate(ctx context.Context, dateKey string) ([]models.Entry, error)

	// GetByID returns a single entry, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Entry, error)

	// GetPendingByDate returns entries for the date whose sync state is not
	// yet synced (pending or error), ascending by CreatedAt.
	GetPendingByDate(ctx context.Context, dateKey string) ([]models.Entry, error)

	// DeleteByID removes the row. Returns common.ErrNotFound when absent.
	DeleteByID(ctx context.Context, id string) error
}
