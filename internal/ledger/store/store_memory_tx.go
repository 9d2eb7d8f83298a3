package store

import (
	"context"
	"errors"

	"assent/internal/ledger/models"
)

// MemoryTx is a staged view over Memory used by the in-memory consent
// transaction runner. Inserts buffer until Commit; dropping the view without
// committing discards them, mirroring a database rollback.
type MemoryTx struct {
	base   *Memory
	staged []models.Entry
}

// Begin opens a staged view over the store.
func (s *Memory) Begin() *MemoryTx {
	return &MemoryTx{base: s}
}

func (t *MemoryTx) Insert(_ context.Context, entry *models.Entry) error {
	t.base.mu.Lock()
	t.base.nextID++
	entry.ID = t.base.nextID
	t.base.mu.Unlock()
	t.staged = append(t.staged, *entry)
	return nil
}

func (t *MemoryTx) LastActionFor(ctx context.Context, userName string) (*models.Entry, error) {
	last, err := t.base.LastActionFor(ctx, userName)
	if err != nil && !errors.Is(err, ErrNoEntries) {
		return nil, err
	}
	for i := range t.staged {
		e := &t.staged[i]
		if e.ActorUserName != userName {
			continue
		}
		if last == nil || e.ActionDate.After(last.ActionDate) ||
			(e.ActionDate.Equal(last.ActionDate) && e.ID > last.ID) {
			copyEntry := *e
			last = &copyEntry
		}
	}
	if last == nil {
		return nil, ErrNoEntries
	}
	return last, nil
}

func (t *MemoryTx) HasEntryForWording(ctx context.Context, version int64) (bool, error) {
	if has, err := t.base.HasEntryForWording(ctx, version); err != nil || has {
		return has, err
	}
	for i := range t.staged {
		if t.staged[i].WordingVersion == version {
			return true, nil
		}
	}
	return false, nil
}

// Commit publishes the staged entries to the underlying store.
func (t *MemoryTx) Commit() {
	t.base.mu.Lock()
	defer t.base.mu.Unlock()
	t.base.entries = append(t.base.entries, t.staged...)
	t.staged = nil
}

var _ Store = (*MemoryTx)(nil)
