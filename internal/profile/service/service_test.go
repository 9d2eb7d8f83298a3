package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"assent/internal/identity"
	"assent/internal/profile/models"
	"assent/internal/profile/store"
	dErrors "assent/pkg/domain-errors"
)

func newTestService() (*Service, *store.Memory) {
	st := store.NewMemory()
	return NewService(st, slog.New(slog.NewTextHandler(io.Discard, nil))), st
}

func signupRequest(userName string) models.SignupRequest {
	return models.SignupRequest{
		UserName: userName,
		Password: "s3cret",
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+31 6 1234 5678",
		Address:  "1 Canal Street, Amsterdam",
	}
}

func TestSignup(t *testing.T) {
	svc, st := newTestService()

	profile, err := svc.Signup(context.Background(), signupRequest("jane"))
	require.NoError(t, err)
	assert.NotZero(t, profile.ID)
	assert.Equal(t, "Jane Doe", profile.FullName)

	user, err := st.FindUserByName(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleConsumer, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
	assert.Equal(t, user.ID, profile.UserID)
}

func TestSignupRejectsMissingFields(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), models.SignupRequest{UserName: "  ", Password: "pw"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = svc.Signup(context.Background(), models.SignupRequest{UserName: "jane", Password: ""})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestSignupRejectsDuplicateUserName(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), signupRequest("jane"))
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), signupRequest("jane"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Signup(context.Background(), signupRequest("jane"))
	require.NoError(t, err)

	actor, err := svc.Authenticate(context.Background(), "jane", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "jane", actor.UserName)
	assert.Equal(t, identity.RoleConsumer, actor.Role)
	assert.NotZero(t, actor.UserID)

	_, err = svc.Authenticate(context.Background(), "jane", "wrong")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = svc.Authenticate(context.Background(), "nobody", "s3cret")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, _ := newTestService()
	profile, err := svc.Signup(context.Background(), signupRequest("jane"))
	require.NoError(t, err)

	owner := identity.Actor{UserID: profile.UserID, UserName: "jane", Role: identity.RoleConsumer}
	got, err := svc.Get(context.Background(), owner, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)

	stranger := identity.Actor{UserID: profile.UserID + 100, UserName: "john", Role: identity.RoleConsumer}
	_, err = svc.Get(context.Background(), stranger, profile.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))

	admin := identity.Actor{UserID: profile.UserID + 100, UserName: "root", Role: identity.RoleAdmin}
	_, err = svc.Get(context.Background(), admin, profile.ID)
	assert.NoError(t, err)
}

func TestUpdateReplacesPersonalFields(t *testing.T) {
	svc, _ := newTestService()
	profile, err := svc.Signup(context.Background(), signupRequest("jane"))
	require.NoError(t, err)

	owner := identity.Actor{UserID: profile.UserID, UserName: "jane", Role: identity.RoleConsumer}
	updated, err := svc.Update(context.Background(), owner, &models.Profile{
		ID:       profile.ID,
		FullName: "Jane A. Doe",
		Email:    "jane.doe@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane A. Doe", updated.FullName)
	assert.Equal(t, "jane.doe@example.com", updated.Email)
	assert.Empty(t, updated.Phone)
}

func TestDeleteKeepsUserRow(t *testing.T) {
	svc, st := newTestService()
	profile, err := svc.Signup(context.Background(), signupRequest("jane"))
	require.NoError(t, err)

	owner := identity.Actor{UserID: profile.UserID, UserName: "jane", Role: identity.RoleConsumer}
	require.NoError(t, svc.Delete(context.Background(), owner, profile.ID))

	_, err = st.FindProfileByID(context.Background(), profile.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Identity survives erasure so ledger entries keep a resolvable name.
	_, err = st.FindUserByName(context.Background(), "jane")
	assert.NoError(t, err)
}

func TestGetMissingProfile(t *testing.T) {
	svc, _ := newTestService()
	actor := identity.Actor{UserID: 1, UserName: "jane", Role: identity.RoleConsumer}
	_, err := svc.Get(context.Background(), actor, 99)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestEraseOnWithdrawal(t *testing.T) {
	st := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(st, logger)

	profile, err := svc.Signup(context.Background(), signupRequest("jane"))
	require.NoError(t, err)

	eraser := NewEraser(st, logger, nil)
	require.NoError(t, eraser.EraseOnWithdrawal(context.Background(), profile.UserID))

	_, err = st.FindProfileByUserID(context.Background(), profile.UserID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// A second erasure means the data is already inconsistent.
	err = eraser.EraseOnWithdrawal(context.Background(), profile.UserID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
