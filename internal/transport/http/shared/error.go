// Package shared centralizes domain error translation for the HTTP layer.
package shared

import (
	"errors"
	"net/http"

	"assent/internal/transport/httpjson"
	dErrors "assent/pkg/domain-errors"
)

// WriteError translates transport-agnostic domain errors into HTTP status
// codes and JSON error envelopes.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		response := map[string]string{
			"error": string(domainErr.Code),
		}
		if domainErr.Message != "" {
			response["error_description"] = domainErr.Message
		}
		httpjson.Write(w, CodeToHTTPStatus(domainErr.Code), response)
		return
	}

	// Fallback for unexpected errors. The original message stays out of the
	// response body.
	httpjson.Write(w, http.StatusInternalServerError, map[string]string{
		"error": string(dErrors.CodeInternal),
	})
}

// CodeToHTTPStatus translates domain error codes to HTTP status codes.
func CodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeNotFound, dErrors.CodeEmptyCatalog:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeExternalService:
		return http.StatusBadGateway
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
