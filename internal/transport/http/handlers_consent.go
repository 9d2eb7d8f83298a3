package httptransport

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"assent/internal/identity"
	ledgermodels "assent/internal/ledger/models"
	"assent/internal/platform/middleware"
	"assent/internal/transport/http/shared"
	"assent/internal/transport/httpjson"
	dErrors "assent/pkg/domain-errors"
	"assent/pkg/validation"
)

// ConsentService orchestrates the consent flow.
//
//go:generate mockgen -source=handlers_consent.go -destination=mocks/consent-mocks.go -package=mocks ConsentService
type ConsentService interface {
	IsConsentRequired(ctx context.Context, sourceIP string) (bool, error)
	GiveConsent(ctx context.Context, actor identity.Actor, wordingVersion int64) (*ledgermodels.Entry, error)
	WithdrawConsent(ctx context.Context, actor identity.Actor, wordingVersion int64) (*ledgermodels.Entry, error)
	GetLastConsentFor(ctx context.Context, userName string) (*ledgermodels.Entry, error)
}

type consentRequest struct {
	WordingVersion int64 `json:"wording_version" validate:"required,min=1"`
}

type consentResponse struct {
	ID             int64     `json:"id"`
	UserName       string    `json:"user_name"`
	WordingVersion int64     `json:"wording_version"`
	ActionDate     time.Time `json:"action_date"`
	ConsentGiven   bool      `json:"consent_given"`
}

func toConsentResponse(e *ledgermodels.Entry) consentResponse {
	return consentResponse{
		ID:             e.ID,
		UserName:       e.ActorUserName,
		WordingVersion: e.WordingVersion,
		ActionDate:     e.ActionDate,
		ConsentGiven:   e.ConsentGiven,
	}
}

func (h *Handler) handleConsentRequired(w http.ResponseWriter, r *http.Request) {
	required, err := h.consents.IsConsentRequired(r.Context(), sourceIP(r))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"consent_required": required})
}

func (h *Handler) handleGiveConsent(w http.ResponseWriter, r *http.Request) {
	var req consentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	entry, err := h.consents.GiveConsent(r.Context(), middleware.GetActor(r.Context()), req.WordingVersion)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, toConsentResponse(entry))
}

func (h *Handler) handleWithdrawConsent(w http.ResponseWriter, r *http.Request) {
	var req consentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	entry, err := h.consents.WithdrawConsent(r.Context(), middleware.GetActor(r.Context()), req.WordingVersion)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, toConsentResponse(entry))
}

func (h *Handler) handleLastConsent(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "userName")

	entry, err := h.consents.GetLastConsentFor(r.Context(), userName)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if entry == nil {
		httpjson.Write(w, http.StatusOK, map[string]any{"user_name": userName, "last_action": nil})
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"user_name": userName, "last_action": toConsentResponse(entry)})
}

// sourceIP picks the client address for the applicability check: an explicit
// source_ip query parameter wins, then the first X-Forwarded-For hop, then
// the connection peer.
func sourceIP(r *http.Request) string {
	if ip := r.URL.Query().Get("source_ip"); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
