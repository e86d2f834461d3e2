package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"eventplanner/internal/domain"
)

// Error codes for API error responses.
const (
	ErrCodeBadRequest         = "bad_request"
	ErrCodeValidation         = "validation_failed"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeForbidden          = "forbidden"
	ErrCodeNotFound           = "not_found"
	ErrCodeConflict           = "conflict"
	ErrCodeUpstream           = "upstream_error"
	ErrCodeUnavailable        = "integration_unavailable"
	ErrCodeInternalError      = "internal_error"
	validationFailedMessage   = "validation failed"
	internalErrorMessage      = "internal server error"
	integrationMissingMessage = "integration is not configured"
)

// APIResponse is the success envelope.
// swagger:model APIResponse
type APIResponse struct {
	Data any `json:"data"`
}

// APIError is the error envelope. Fields is set only for validation failures.
// swagger:model APIError
type APIError struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSONSuccess writes statusCode and an APIResponse wrapping data.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError writes statusCode and an APIError with the given code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, APIError{Error: message, Code: code})
}

// WriteValidationError writes 400 with the field-level messages.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, APIError{Error: validationFailedMessage, Code: ErrCodeValidation, Fields: fields})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteServiceError maps a service error to its status code. Unexpected errors are logged
// and reported as 500 without their message.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, verr.Fields)
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, domain.ErrUserNotFound.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, domain.ErrNotFound.Error())
	case errors.Is(err, domain.ErrLastOwner):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, domain.ErrLastOwner.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyMember), errors.Is(err, domain.ErrDuplicateUsername):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrIntegrationUnavailable):
		logger.WarnContext(r.Context(), "integration unavailable", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, integrationMissingMessage)
	case errors.Is(err, domain.ErrUpstreamGeneration):
		logger.WarnContext(r.Context(), "content generation failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusBadGateway, ErrCodeUpstream, domain.ErrUpstreamGeneration.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, internalErrorMessage)
	}
}
