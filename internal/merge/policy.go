// Package merge implements the pure decision function that determines, for
// each entry pulled from the remote store, whether it may overwrite the
// corresponding local entry.
package merge

import "github.com/dmitrijs2005/daylog/internal/models"

// Decision is the outcome of comparing one remote entry against local state.
type Decision int

const (
	// Skip leaves the local state untouched.
	Skip Decision = iota
	// Adopt replaces the local entry with the remote version.
	Adopt
)

func (d Decision) String() string {
	if d == Adopt {
		return "adopt"
	}
	return "skip"
}

// Decide resolves one remote entry against the matching local entry (nil if
// absent) and the local tombstone set.
//
// A pending local deletion always wins over a remote resurrection. Unsynced
// local work (pending or error) is never overwritten by a pull; it has to go
// through the push phase first. An entry that is already synced mirrors the
// remote copy exactly, so the remote version is authoritative for it.
func Decide(local *models.Entry, remote models.Entry, tombstoned bool) Decision {
	if tombstoned {
		return Skip
	}
	if local == nil {
		return Adopt
	}
	if local.SyncState == models.SyncStateSynced {
		return Adopt
	}
	return Skip
}
