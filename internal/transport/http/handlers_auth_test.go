package httptransport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"assent/internal/identity"
	profilemodels "assent/internal/profile/models"
	"assent/internal/token"
	"assent/internal/transport/http/mocks"
	dErrors "assent/pkg/domain-errors"
)

func TestHandleSignup(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockProfiles := mocks.NewMockProfileService(ctrl)
	mockProfiles.EXPECT().
		Signup(gomock.Any(), profilemodels.SignupRequest{
			UserName: "jane",
			Password: "s3cret",
			FullName: "Jane Doe",
		}).
		Return(&profilemodels.Profile{ID: 1, UserID: 7, FullName: "Jane Doe"}, nil)

	h := testHandler(nil, nil, mockProfiles)

	body, err := json.Marshal(signupRequest{UserName: "jane", Password: "s3cret", FullName: "Jane Doe"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.handleSignup(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp profileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Jane Doe", resp.FullName)
}

func TestHandleLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	actor := identity.Actor{UserID: 7, UserName: "jane", Role: identity.RoleConsumer}
	mockProfiles := mocks.NewMockProfileService(ctrl)
	mockProfiles.EXPECT().
		Authenticate(gomock.Any(), "jane", "s3cret").
		Return(actor, nil)

	h := testHandler(nil, nil, mockProfiles)
	h.tokens = token.NewIssuer([]byte("test-key"), "assent", time.Hour)

	body, err := json.Marshal(loginRequest{UserName: "jane", Password: "s3cret"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.handleLogin(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestHandleLoginBadCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockProfiles := mocks.NewMockProfileService(ctrl)
	mockProfiles.EXPECT().
		Authenticate(gomock.Any(), "jane", "wrong").
		Return(identity.Actor{}, dErrors.New(dErrors.CodeUnauthorized, "invalid user name or password"))

	h := testHandler(nil, nil, mockProfiles)

	body, _ := json.Marshal(loginRequest{UserName: "jane", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.handleLogin(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
