package store

import (
	"context"
	"fmt"
	"time"

	"assent/internal/sentinel"
	"assent/internal/wording/models"
)

// Error Contract:
// All store methods follow this error pattern:
//   - ErrNotFound when the requested version does not exist
//   - ErrLabelTaken when another version already carries the label; the
//     storage layer's unique constraint is the authoritative guard, the
//     service-level pre-check is advisory only
//   - ErrAttached when a consent action already references the version
//   - ErrEmptyCatalog when GetCurrent finds no rows
//   - wrapped errors with context for infrastructure failures
var (
	ErrNotFound     = sentinel.ErrNotFound
	ErrEmptyCatalog = sentinel.ErrEmpty
	ErrLabelTaken   = fmt.Errorf("version label already exists: %w", sentinel.ErrConflict)
	ErrAttached     = fmt.Errorf("wording referenced by a consent action: %w", sentinel.ErrConflict)
)

// Store is the persistence interface for the consent wording catalog.
type Store interface {
	// Insert assigns a new version id and persists the wording.
	Insert(ctx context.Context, label, text string, creationDate time.Time) (*models.Wording, error)

	// Update replaces label and text of an unattached version. The
	// attachment check and the write are atomic with respect to
	// concurrent consent recording on the same version.
	Update(ctx context.Context, version int64, label, text string) (*models.Wording, error)

	// GetByVersion fetches a single wording.
	GetByVersion(ctx context.Context, version int64) (*models.Wording, error)

	// Delete removes an unattached version, atomically with respect to
	// concurrent consent recording.
	Delete(ctx context.Context, version int64) error

	// GetCurrent returns the wording with the maximum creation date.
	// Identical creation dates resolve to the highest version id.
	GetCurrent(ctx context.Context) (*models.Wording, error)

	// LabelExists reports whether any version other than excludeVersion
	// carries the label. Advisory; Insert/Update remain the arbiter.
	LabelExists(ctx context.Context, label string, excludeVersion int64) (bool, error)
}
