package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// newTestRouter mounts the handler without the authentication middleware so
// URL parameters resolve through chi while tests inject actors directly.
func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/consents/wordings", h.handleAddWording)
	r.Put("/consents/wordings/{version}", h.handleUpdateWording)
	r.Get("/consents/wordings/current", h.handleCurrentWording)
	r.Get("/consents/wordings/{version}", h.handleGetWording)
	r.Delete("/consents/wordings/{version}", h.handleDeleteWording)
	r.Get("/consents/required", h.handleConsentRequired)
	r.Post("/consents", h.handleGiveConsent)
	r.Post("/consents/withdrawal", h.handleWithdrawConsent)
	r.Get("/consents/last/{userName}", h.handleLastConsent)
	r.Get("/consumers/{id}", h.handleGetProfile)
	r.Put("/consumers/{id}", h.handleUpdateProfile)
	r.Delete("/consumers/{id}", h.handleDeleteProfile)
	return r
}

func TestRouterRejectsUnauthenticatedRequests(t *testing.T) {
	h := testHandler(nil, nil, nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(h, RouterConfig{JWTSigningKey: []byte("test-key")}, logger)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/consents"},
		{http.MethodPost, "/consents/withdrawal"},
		{http.MethodPost, "/consents/wordings"},
		{http.MethodGet, "/consents/last/jane"},
		{http.MethodDelete, "/consumers/1"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}
