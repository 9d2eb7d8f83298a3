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

	"assent/internal/transport/http/mocks"
	wordingmodels "assent/internal/wording/models"
	dErrors "assent/pkg/domain-errors"
)

func wordingFixture() *wordingmodels.Wording {
	return &wordingmodels.Wording{
		Version:      1,
		VersionLabel: "v1.0",
		Wording:      "We process your data to fulfil orders.",
		CreationDate: time.Now(),
	}
}

func TestHandleAddWording(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWordings := mocks.NewMockWordingService(ctrl)
	mockWordings.EXPECT().
		Add(gomock.Any(), "v1.0", "We process your data to fulfil orders.").
		Return(wordingFixture(), nil)

	h := testHandler(nil, mockWordings, nil)

	body, err := json.Marshal(wordingRequest{VersionLabel: "v1.0", Wording: "We process your data to fulfil orders."})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/consents/wordings", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.handleAddWording(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp wordingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Version)
	assert.Equal(t, "v1.0", resp.VersionLabel)
}

func TestHandleAddWordingDuplicateLabel(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWordings := mocks.NewMockWordingService(ctrl)
	mockWordings.EXPECT().
		Add(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeConflict, `version label "v1.0" already exists`))

	h := testHandler(nil, mockWordings, nil)

	body, _ := json.Marshal(wordingRequest{VersionLabel: "v1.0", Wording: "text"})
	req := httptest.NewRequest(http.MethodPost, "/consents/wordings", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.handleAddWording(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "conflict")
}

func TestHandleUpdateWordingAttached(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWordings := mocks.NewMockWordingService(ctrl)
	mockWordings.EXPECT().
		Update(gomock.Any(), int64(1), "v1.1", "Updated.").
		Return(nil, dErrors.New(dErrors.CodeConflict, "wording is attached to a consent action and cannot be changed or deleted"))

	h := testHandler(nil, mockWordings, nil)

	body, _ := json.Marshal(wordingRequest{VersionLabel: "v1.1", Wording: "Updated."})
	req := httptest.NewRequest(http.MethodPut, "/consents/wordings/1", bytes.NewReader(body))
	w := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleGetWordingMalformedVersion(t *testing.T) {
	h := testHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/consents/wordings/abc", nil)
	w := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCurrentWordingEmptyCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWordings := mocks.NewMockWordingService(ctrl)
	mockWordings.EXPECT().
		GetCurrent(gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeEmptyCatalog, "no consent wording registered yet"))

	h := testHandler(nil, mockWordings, nil)

	req := httptest.NewRequest(http.MethodGet, "/consents/wordings/current", nil)
	w := httptest.NewRecorder()
	h.handleCurrentWording(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "empty_catalog")
}

func TestHandleDeleteWording(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWordings := mocks.NewMockWordingService(ctrl)
	mockWordings.EXPECT().
		Delete(gomock.Any(), int64(4)).
		Return(nil)

	h := testHandler(nil, mockWordings, nil)

	req := httptest.NewRequest(http.MethodDelete, "/consents/wordings/4", nil)
	w := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
