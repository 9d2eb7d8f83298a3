package store

import (
	"context"

	"assent/internal/profile/models"
)

// MemoryTx is a staged view over Memory used by the in-memory consent
// transaction runner. Profile deletions buffer until Commit; dropping the
// view without committing discards them.
type MemoryTx struct {
	base    *Memory
	deleted map[int64]struct{}
}

// Begin opens a staged view over the store.
func (s *Memory) Begin() *MemoryTx {
	return &MemoryTx{base: s, deleted: make(map[int64]struct{})}
}

func (t *MemoryTx) InsertUser(ctx context.Context, user *models.User) error {
	return t.base.InsertUser(ctx, user)
}

func (t *MemoryTx) FindUserByName(ctx context.Context, userName string) (*models.User, error) {
	return t.base.FindUserByName(ctx, userName)
}

func (t *MemoryTx) InsertProfile(ctx context.Context, profile *models.Profile) error {
	return t.base.InsertProfile(ctx, profile)
}

func (t *MemoryTx) FindProfileByID(ctx context.Context, id int64) (*models.Profile, error) {
	if _, gone := t.deleted[id]; gone {
		return nil, ErrNotFound
	}
	return t.base.FindProfileByID(ctx, id)
}

func (t *MemoryTx) FindProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	p, err := t.base.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, gone := t.deleted[p.ID]; gone {
		return nil, ErrNotFound
	}
	return p, nil
}

func (t *MemoryTx) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	if _, gone := t.deleted[profile.ID]; gone {
		return ErrNotFound
	}
	return t.base.UpdateProfile(ctx, profile)
}

func (t *MemoryTx) DeleteProfile(ctx context.Context, id int64) error {
	if _, err := t.FindProfileByID(ctx, id); err != nil {
		return err
	}
	t.deleted[id] = struct{}{}
	return nil
}

// Commit applies the staged deletions to the underlying store.
func (t *MemoryTx) Commit() {
	for id := range t.deleted {
		_ = t.base.DeleteProfile(context.Background(), id) //nolint:errcheck // staged id was verified present
	}
	t.deleted = nil
}

var _ Store = (*MemoryTx)(nil)
