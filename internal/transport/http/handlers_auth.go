package httptransport

import (
	"encoding/json"
	"net/http"
	"time"

	"assent/internal/identity"
	profilemodels "assent/internal/profile/models"
	"assent/internal/transport/http/shared"
	"assent/internal/transport/httpjson"
	dErrors "assent/pkg/domain-errors"
	"assent/pkg/validation"
)

// TokenIssuer signs access tokens for authenticated actors.
type TokenIssuer interface {
	Issue(actor identity.Actor) (string, error)
	TTL() time.Duration
}

type signupRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type loginRequest struct {
	UserName string `json:"user_name" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	profile, err := h.profiles.Signup(r.Context(), profilemodels.SignupRequest{
		UserName: req.UserName,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, toProfileResponse(profile))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	actor, err := h.profiles.Authenticate(r.Context(), req.UserName, req.Password)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	accessToken, err := h.tokens.Issue(actor)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, loginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokens.TTL().Seconds()),
	})
}
