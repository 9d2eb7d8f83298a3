package store

import (
	"context"
	"fmt"

	"assent/internal/profile/models"
	"assent/internal/sentinel"
)

// Error Contract:
//   - ErrNotFound when the requested user or profile does not exist
//   - ErrUserNameTaken when a user name is already registered; the unique
//     constraint on the users table is the authoritative guard
//   - wrapped errors with context for infrastructure failures
var (
	ErrNotFound      = sentinel.ErrNotFound
	ErrUserNameTaken = fmt.Errorf("user name already exists: %w", sentinel.ErrConflict)
)

// Store is the persistence interface for users and consumer profiles.
//
// Profile deletion removes the personal-data row only; there is no user
// deletion method, since ledger entries keep referencing the user name.
type Store interface {
	InsertUser(ctx context.Context, user *models.User) error
	FindUserByName(ctx context.Context, userName string) (*models.User, error)

	InsertProfile(ctx context.Context, profile *models.Profile) error
	FindProfileByID(ctx context.Context, id int64) (*models.Profile, error)
	FindProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	DeleteProfile(ctx context.Context, id int64) error
}
