package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"assent/internal/identity"
	"assent/internal/platform/middleware"
	profilemodels "assent/internal/profile/models"
	"assent/internal/transport/http/shared"
	"assent/internal/transport/httpjson"
	dErrors "assent/pkg/domain-errors"
	"assent/pkg/validation"
)

// ProfileService manages consumer registration and profile access.
//
//go:generate mockgen -source=handlers_profile.go -destination=mocks/profile-mocks.go -package=mocks ProfileService
type ProfileService interface {
	Signup(ctx context.Context, req profilemodels.SignupRequest) (*profilemodels.Profile, error)
	Authenticate(ctx context.Context, userName, password string) (identity.Actor, error)
	Get(ctx context.Context, actor identity.Actor, profileID int64) (*profilemodels.Profile, error)
	Update(ctx context.Context, actor identity.Actor, profile *profilemodels.Profile) (*profilemodels.Profile, error)
	Delete(ctx context.Context, actor identity.Actor, profileID int64) error
}

type profileRequest struct {
	FullName string `json:"full_name" validate:"max=255"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Phone    string `json:"phone" validate:"max=50"`
	Address  string `json:"address" validate:"max=500"`
}

type profileResponse struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func toProfileResponse(p *profilemodels.Profile) profileResponse {
	return profileResponse{
		ID:       p.ID,
		UserID:   p.UserID,
		FullName: p.FullName,
		Email:    p.Email,
		Phone:    p.Phone,
		Address:  p.Address,
	}
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	profile, err := h.profiles.Get(r.Context(), middleware.GetActor(r.Context()), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, toProfileResponse(profile))
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	profile, err := h.profiles.Update(r.Context(), middleware.GetActor(r.Context()), &profilemodels.Profile{
		ID:       id,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, toProfileResponse(profile))
}

func (h *Handler) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.profiles.Delete(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func profileIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeValidation, "profile id must be an integer")
	}
	return id, nil
}
