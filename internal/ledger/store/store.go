package store

import (
	"context"

	"assent/internal/ledger/models"
	"assent/internal/sentinel"
)

// Error Contract:
//   - Insert returns ErrWordingGone when the referenced wording version no
//     longer exists at write time
//   - LastActionFor returns ErrNoEntries when the actor has no ledger entries
//   - other failures come back wrapped with context
var (
	ErrWordingGone = sentinel.ErrNotFound
	ErrNoEntries   = sentinel.ErrEmpty
)

// Store is the persistence interface for the append-only consent ledger.
// There is deliberately no update or delete: entries are immutable once
// written.
type Store interface {
	// Insert persists a new entry and assigns its id. The referenced
	// wording version becomes permanently attached by this write; the
	// implementation must serialize against concurrent wording
	// update/delete on the same version.
	Insert(ctx context.Context, entry *models.Entry) error

	// LastActionFor returns the actor's most recent entry. Ties on
	// action date resolve to the highest entry id (insertion order).
	LastActionFor(ctx context.Context, userName string) (*models.Entry, error)

	// HasEntryForWording reports whether any entry references the version.
	HasEntryForWording(ctx context.Context, version int64) (bool, error)
}
