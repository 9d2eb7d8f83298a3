package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"assent/internal/identity"
	"assent/internal/platform/metrics"
	"assent/internal/profile/models"
	"assent/internal/profile/store"
	dErrors "assent/pkg/domain-errors"
	stringutil "assent/pkg/string"
	"assent/pkg/validation"
)

// Service manages consumer registration and profile access. Profile reads
// and writes are owner-scoped: a consumer can only touch the profile bound
// to their own user id, while admins may read any profile.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// NewService constructs the profile service.
func NewService(st store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// Signup registers a new consumer: a user row for identity plus a profile
// row for personal data. The user name must be unique across all users.
func (s *Service) Signup(ctx context.Context, req models.SignupRequest) (*models.Profile, error) {
	stringutil.TrimStrings(&req.UserName, &req.FullName, &req.Email, &req.Phone, &req.Address)
	if err := validation.Validate(&req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not hash password")
	}

	user := &models.User{
		UserName:     req.UserName,
		Role:         identity.RoleConsumer,
		PasswordHash: string(hash),
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserNameTaken) {
			return nil, dErrors.New(dErrors.CodeConflict,
				fmt.Sprintf("user name %q already exists", req.UserName))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not create user")
	}

	profile := &models.Profile{
		UserID:   user.ID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	if err := s.store.InsertProfile(ctx, profile); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not create profile")
	}

	s.logger.InfoContext(ctx, "consumer registered", "user_id", user.ID, "user_name", user.UserName)
	return profile, nil
}

// Authenticate verifies a user name and password pair and returns the actor
// identity on success. Failure is reported uniformly so callers cannot probe
// which of the two was wrong.
func (s *Service) Authenticate(ctx context.Context, userName, password string) (identity.Actor, error) {
	user, err := s.store.FindUserByName(ctx, userName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return identity.Actor{}, invalidCredentialsError()
		}
		return identity.Actor{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not look up user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return identity.Actor{}, invalidCredentialsError()
	}
	return identity.Actor{UserID: user.ID, UserName: user.UserName, Role: user.Role}, nil
}

// Get returns a profile if the actor owns it or holds the admin role.
func (s *Service) Get(ctx context.Context, actor identity.Actor, profileID int64) (*models.Profile, error) {
	profile, err := s.findProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Update replaces the personal fields of the actor's own profile.
func (s *Service) Update(ctx context.Context, actor identity.Actor, profile *models.Profile) (*models.Profile, error) {
	current, err := s.findProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, current); err != nil {
		return nil, err
	}

	current.FullName = profile.FullName
	current.Email = profile.Email
	current.Phone = profile.Phone
	current.Address = profile.Address
	if err := s.store.UpdateProfile(ctx, current); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError(profile.ID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not update profile")
	}

	s.logger.InfoContext(ctx, "profile updated", "profile_id", current.ID, "user_id", current.UserID)
	return current, nil
}

// Delete removes the actor's own profile. The owning user row stays in
// place so recorded consent actions keep a resolvable user name.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, profileID int64) error {
	profile, err := s.findProfile(ctx, profileID)
	if err != nil {
		return err
	}
	if err := authorize(actor, profile); err != nil {
		return err
	}

	if err := s.store.DeleteProfile(ctx, profileID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError(profileID)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not delete profile")
	}

	s.logger.InfoContext(ctx, "profile deleted", "profile_id", profileID, "user_id", profile.UserID)
	return nil
}

func (s *Service) findProfile(ctx context.Context, id int64) (*models.Profile, error) {
	profile, err := s.store.FindProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError(id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not get profile")
	}
	return profile, nil
}

func authorize(actor identity.Actor, profile *models.Profile) error {
	if actor.Role == identity.RoleAdmin || profile.UserID == actor.UserID {
		return nil
	}
	return dErrors.New(dErrors.CodeForbidden, "profile belongs to another user")
}

func notFoundError(id int64) error {
	return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("profile %d does not exist", id))
}

func invalidCredentialsError() error {
	return dErrors.New(dErrors.CodeUnauthorized, "invalid user name or password")
}

// Eraser deletes personal data when a consumer withdraws consent. It is
// constructed per transaction over a tx-bound store so the erasure commits
// or rolls back together with the withdrawal ledger entry.
type Eraser struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewEraser constructs an Eraser over the given store.
func NewEraser(st store.Store, logger *slog.Logger, m *metrics.Metrics) *Eraser {
	return &Eraser{store: st, logger: logger, metrics: m}
}

// EraseOnWithdrawal removes the profile owned by userID. A registered
// consumer without a profile means an earlier erasure or signup left the
// data inconsistent; that is surfaced as an error so the surrounding
// withdrawal transaction rolls back.
func (e *Eraser) EraseOnWithdrawal(ctx context.Context, userID int64) error {
	profile, err := e.store.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			e.logger.ErrorContext(ctx, "no profile found for withdrawing consumer", "user_id", userID)
			return dErrors.New(dErrors.CodeNotFound,
				fmt.Sprintf("no profile found for user %d", userID))
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not look up profile for erasure")
	}

	if err := e.store.DeleteProfile(ctx, profile.ID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not erase profile")
	}

	e.logger.InfoContext(ctx, "profile erased on withdrawal", "profile_id", profile.ID, "user_id", userID)
	e.metrics.IncProfilesErased()
	return nil
}
