package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"assent/internal/transport/http/shared"
	"assent/internal/transport/httpjson"
	wordingmodels "assent/internal/wording/models"
	dErrors "assent/pkg/domain-errors"
	"assent/pkg/validation"
)

// WordingService manages the versioned consent wording catalog.
//
//go:generate mockgen -source=handlers_wording.go -destination=mocks/wording-mocks.go -package=mocks WordingService
type WordingService interface {
	Add(ctx context.Context, label, text string) (*wordingmodels.Wording, error)
	Update(ctx context.Context, version int64, label, text string) (*wordingmodels.Wording, error)
	GetByVersion(ctx context.Context, version int64) (*wordingmodels.Wording, error)
	Delete(ctx context.Context, version int64) error
	GetCurrent(ctx context.Context) (*wordingmodels.Wording, error)
}

type wordingRequest struct {
	VersionLabel string `json:"version_label" validate:"required,notblank,max=100"`
	Wording      string `json:"wording" validate:"required,notblank"`
}

type wordingResponse struct {
	Version      int64     `json:"version"`
	VersionLabel string    `json:"version_label"`
	Wording      string    `json:"wording"`
	CreationDate time.Time `json:"creation_date"`
}

func toWordingResponse(w *wordingmodels.Wording) wordingResponse {
	return wordingResponse{
		Version:      w.Version,
		VersionLabel: w.VersionLabel,
		Wording:      w.Wording,
		CreationDate: w.CreationDate,
	}
}

func (h *Handler) handleAddWording(w http.ResponseWriter, r *http.Request) {
	var req wordingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	wording, err := h.wordings.Add(r.Context(), req.VersionLabel, req.Wording)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, toWordingResponse(wording))
}

func (h *Handler) handleUpdateWording(w http.ResponseWriter, r *http.Request) {
	version, err := versionParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req wordingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	wording, err := h.wordings.Update(r.Context(), version, req.VersionLabel, req.Wording)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, toWordingResponse(wording))
}

func (h *Handler) handleGetWording(w http.ResponseWriter, r *http.Request) {
	version, err := versionParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	wording, err := h.wordings.GetByVersion(r.Context(), version)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, toWordingResponse(wording))
}

func (h *Handler) handleDeleteWording(w http.ResponseWriter, r *http.Request) {
	version, err := versionParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.wordings.Delete(r.Context(), version); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCurrentWording(w http.ResponseWriter, r *http.Request) {
	wording, err := h.wordings.GetCurrent(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, toWordingResponse(wording))
}

func versionParam(r *http.Request) (int64, error) {
	version, err := strconv.ParseInt(chi.URLParam(r, "version"), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeValidation, "version must be an integer")
	}
	return version, nil
}
