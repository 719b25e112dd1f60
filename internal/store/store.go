// Package store is the local persistence layer: a SQLite-backed, offline-first
// home for entries, tombstones and cached reports. The sync engine reads and
// writes exclusively through this facade and never touches remote state here.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/dbx"
	"github.com/dmitrijs2005/daylog/internal/merge"
	"github.com/dmitrijs2005/daylog/internal/models"
	"github.com/dmitrijs2005/daylog/internal/store/entries"
	"github.com/dmitrijs2005/daylog/internal/store/reports"
	"github.com/dmitrijs2005/daylog/internal/store/tombstones"
)

// Store owns the canonical local collections. All failures surfaced from
// here are local I/O errors and are treated as fatal by callers, not retried.
type Store struct {
	db         *sql.DB
	entries    entries.Repository
	tombstones tombstones.Repository
	reports    reports.Repository
}

// New wires a Store over an already opened and migrated database handle.
func New(db *sql.DB) *Store {
	return &Store{
		db:         db,
		entries:    entries.NewSQLiteRepository(db),
		tombstones: tombstones.NewSQLiteRepository(db),
		reports:    reports.NewSQLiteRepository(db),
	}
}

// GetAll returns every entry, newest first.
func (s *Store) GetAll(ctx context.Context) ([]models.Entry, error) {
	return s.entries.GetAll(ctx)
}

// GetByDate returns entries for one date key, ascending by creation time.
func (s *Store) GetByDate(ctx context.Context, dateKey string) ([]models.Entry, error) {
	return s.entries.GetByDate(ctx, dateKey)
}

// Upsert inserts the entry if its id is unseen, else replaces it in place.
func (s *Store) Upsert(ctx context.Context, e *models.Entry) error {
	return s.entries.CreateOrUpdate(ctx, e)
}

// Delete removes the entry and records a tombstone in the same transaction.
// The tombstone is written even when the entry row is already gone: it is the
// only record telling the sync engine to propagate the delete remotely.
func (s *Store) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		er := entries.NewSQLiteRepository(tx)
		tr := tombstones.NewSQLiteRepository(tx)

		t := models.Tombstone{ID: id}
		e, err := er.GetByID(ctx, id)
		switch {
		case err == nil:
			t.DateKey = e.DateKey
			if err := er.DeleteByID(ctx, id); err != nil {
				return err
			}
		case errors.Is(err, common.ErrNotFound):
			// fall through, still tombstone
		default:
			return err
		}

		return tr.Mark(ctx, t)
	})
}

// MarkDeleted records a pending deletion without touching the entry row.
func (s *Store) MarkDeleted(ctx context.Context, id string) error {
	t := models.Tombstone{ID: id}
	if e, err := s.entries.GetByID(ctx, id); err == nil {
		t.DateKey = e.DateKey
	}
	return s.tombstones.Mark(ctx, t)
}

// ClearDeleted drops a tombstone. Clearing an absent id is a no-op.
func (s *Store) ClearDeleted(ctx context.Context, id string) error {
	return s.tombstones.Clear(ctx, id)
}

// ListDeleted returns the set of ids with pending deletions.
func (s *Store) ListDeleted(ctx context.Context) (map[string]struct{}, error) {
	list, err := s.tombstones.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(list))
	for _, t := range list {
		ids[t.ID] = struct{}{}
	}
	return ids, nil
}

// Tombstones returns pending deletions with their recorded date keys, for
// the sync engine's drain phase.
func (s *Store) Tombstones(ctx context.Context) ([]models.Tombstone, error) {
	return s.tombstones.List(ctx)
}

// PendingByDate returns entries of the date that still need pushing
// (sync state pending or error).
func (s *Store) PendingByDate(ctx context.Context, dateKey string) ([]models.Entry, error) {
	return s.entries.GetPendingByDate(ctx, dateKey)
}

// MergeRemote folds remote entries into local state, applying the merge
// policy per entry. Ids with pending deletions are never readopted, and
// unsynced local work is never overwritten. Adopted entries are stored as
// synced regardless of what the remote document claims.
func (s *Store) MergeRemote(ctx context.Context, remote []models.Entry) (int, error) {
	deleted, err := s.ListDeleted(ctx)
	if err != nil {
		return 0, err
	}

	adopted := 0
	for _, re := range remote {
		_, tombstoned := deleted[re.ID]

		local, err := s.entries.GetByID(ctx, re.ID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return adopted, err
		}

		if merge.Decide(local, re, tombstoned) != merge.Adopt {
			continue
		}

		re.SyncState = models.SyncStateSynced
		if re.Category == "" {
			re.Category = models.DefaultCategory
		}
		if err := s.entries.CreateOrUpdate(ctx, &re); err != nil {
			return adopted, fmt.Errorf("failed to adopt remote entry %s: %w", re.ID, err)
		}
		adopted++
	}
	return adopted, nil
}

// SaveReport caches a report, replacing any older one for the same range.
func (s *Store) SaveReport(ctx context.Context, r models.Report) error {
	return s.reports.Save(ctx, r)
}

// LatestReport returns the cached report for the range, or common.ErrNotFound.
func (s *Store) LatestReport(ctx context.Context, startDate, endDate string) (*models.Report, error) {
	return s.reports.Latest(ctx, startDate, endDate)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
