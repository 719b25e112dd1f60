// Package syncer drives one full synchronization pass between the local
// store and the remote namespace: propagate pending deletions, pull remote
// entries for the date scope, merge them without clobbering unsynced local
// work, then push locally pending entries and record each outcome.
package syncer

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/logging"
	"github.com/dmitrijs2005/daylog/internal/models"
	"github.com/dmitrijs2005/daylog/internal/store"
)

// Remote is the adapter surface the engine drives. Satisfied by
// drive.Adapter.
type Remote interface {
	UploadEntry(ctx context.Context, owner string, e *models.Entry) (*models.Entry, error)
	FetchEntries(ctx context.Context, owner, dateKey string) ([]models.Entry, error)
	TrashEntry(ctx context.Context, owner, dateKey, id string) (bool, error)
}

// Summary aggregates the per-item outcomes of one sync pass. The pass is
// complete once every phase has run exactly once; individual item failures
// are counted here, not escalated.
type Summary struct {
	// Deleted counts tombstones confirmed remotely and cleared.
	Deleted int
	// Pulled counts remote entries adopted into the local store.
	Pulled int
	// Pushed counts local entries uploaded and marked synced.
	Pushed int
	// Failed counts entries whose upload failed; they stay local in state
	// error and are retried on a later pass.
	Failed int
	// LastError carries the most recent failure message for display.
	LastError string
}

// Engine is the sync orchestrator. At most one pass runs at a time; a second
// concurrent invocation is rejected with common.ErrSyncInProgress rather
// than queued.
type Engine struct {
	store  *store.Store
	remote Remote
	log    logging.Logger

	mu sync.Mutex
}

// New returns an Engine over the given local store and remote adapter.
func New(st *store.Store, remote Remote, log logging.Logger) *Engine {
	return &Engine{store: st, remote: remote, log: log.With("component", "syncer")}
}

// RunSync performs one complete pass for the owner and date scope. Remote
// failures are absorbed into the summary; only local store failures (fatal
// by contract) and a concurrently running pass produce an error.
func (e *Engine) RunSync(ctx context.Context, owner, dateKey string) (*Summary, error) {
	if !e.mu.TryLock() {
		return nil, common.ErrSyncInProgress
	}
	defer e.mu.Unlock()

	log := e.log.With("owner", owner, "date", dateKey)
	log.Info(ctx, "sync pass started")

	s := &Summary{}

	if err := e.drainTombstones(ctx, owner, log, s); err != nil {
		return nil, err
	}
	if err := e.pull(ctx, owner, dateKey, log, s); err != nil {
		return nil, err
	}
	if err := e.push(ctx, owner, dateKey, log, s); err != nil {
		return nil, err
	}

	log.Info(ctx, "sync pass finished",
		"deleted", s.Deleted, "pulled", s.Pulled, "pushed", s.Pushed, "failed", s.Failed)
	return s, nil
}

// drainTombstones attempts each pending deletion remotely exactly once.
// Success or a definitive "already absent" clears the tombstone; any other
// failure leaves it for a future pass.
func (e *Engine) drainTombstones(ctx context.Context, owner string, log logging.Logger, s *Summary) error {
	pending, err := e.store.Tombstones(ctx)
	if err != nil {
		return fmt.Errorf("list tombstones: %w", err)
	}

	for _, t := range pending {
		found, err := e.remote.TrashEntry(ctx, owner, t.DateKey, t.ID)
		if err != nil {
			log.Warn(ctx, "remote delete failed, keeping tombstone", "id", t.ID, "error", err.Error())
			s.LastError = err.Error()
			continue
		}
		if !found {
			log.Debug(ctx, "remote document already absent", "id", t.ID)
		}
		if err := e.store.ClearDeleted(ctx, t.ID); err != nil {
			return fmt.Errorf("clear tombstone %s: %w", t.ID, err)
		}
		s.Deleted++
	}
	return nil
}

// pull is best-effort: a failed fetch must not block pushing local changes.
func (e *Engine) pull(ctx context.Context, owner, dateKey string, log logging.Logger, s *Summary) error {
	remote, err := e.remote.FetchEntries(ctx, owner, dateKey)
	if err != nil {
		log.Warn(ctx, "pull failed, continuing with push", "error", err.Error())
		s.LastError = err.Error()
		return nil
	}

	adopted, err := e.store.MergeRemote(ctx, remote)
	if err != nil {
		return fmt.Errorf("merge remote entries: %w", err)
	}
	s.Pulled = adopted
	return nil
}

// push uploads every not-yet-synced entry of the date sequentially. On
// success the canonical entry returned by the remote replaces the local one;
// on failure the entry is kept with its original content and state error.
func (e *Engine) push(ctx context.Context, owner, dateKey string, log logging.Logger, s *Summary) error {
	pending, err := e.store.PendingByDate(ctx, dateKey)
	if err != nil {
		return fmt.Errorf("list pending entries: %w", err)
	}

	for i := range pending {
		entry := pending[i]

		synced, err := e.remote.UploadEntry(ctx, owner, &entry)
		if err != nil {
			log.Warn(ctx, "push failed", "id", entry.ID, "error", err.Error())
			s.Failed++
			s.LastError = err.Error()

			failed := entry.Clone()
			failed.SyncState = models.SyncStateError
			if err := e.store.Upsert(ctx, failed); err != nil {
				return fmt.Errorf("record push failure for %s: %w", entry.ID, err)
			}
			continue
		}

		if err := e.store.Upsert(ctx, synced); err != nil {
			return fmt.Errorf("record push success for %s: %w", entry.ID, err)
		}
		s.Pushed++
	}
	return nil
}
