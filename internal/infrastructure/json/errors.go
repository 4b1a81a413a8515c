package json

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hilthontt/powersite/internal/domain"
)

const (
	CodeValidation       = "validation_error"
	CodeConflict         = "conflict"
	CodeNotFound         = "not_found"
	CodePermissionDenied = "permission_denied"
	CodeUnauthorized     = "unauthorized"
	CodeBadRequest       = "bad_request"
	CodeRateLimited      = "rate_limited"
	CodeInternal         = "internal_error"
)

type ErrorResponse struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, code, msg string) {
	resp := ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Message: msg,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func WriteValidationError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		WriteError(w, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}

	resp := ErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Code:    CodeValidation,
		Message: "Invalid input.",
		Fields:  verr.Fields,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(resp)
}

func WriteBadRequestError(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusBadRequest, CodeBadRequest, msg)
}

func WriteUnauthorizedError(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	WriteError(w, http.StatusUnauthorized, CodeUnauthorized, msg)
}

func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
}

func WriteRateLimitError(w http.ResponseWriter, retryAfter int) {
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}
	WriteError(w, http.StatusTooManyRequests, CodeRateLimited, "Too many requests. Please try again later.")
}

// WriteDomainError renders one of the domain error types. It reports false
// when err is not one of them so the caller can log and send a 500.
func WriteDomainError(w http.ResponseWriter, err error) bool {
	var (
		notFound   *domain.NotFoundError
		conflict   *domain.ConflictError
		permission *domain.PermissionError
	)

	switch {
	case errors.Is(err, domain.ErrValidation):
		WriteValidationError(w, err)
	case errors.As(err, &conflict):
		WriteError(w, http.StatusConflict, CodeConflict, conflict.Error()+".")
	case errors.As(err, &notFound):
		msg := notFound.Detail
		if msg == "" {
			msg = "Not found."
		}
		WriteError(w, http.StatusNotFound, CodeNotFound, msg)
	case errors.As(err, &permission):
		WriteError(w, http.StatusForbidden, CodePermissionDenied, "You do not have permission to perform this action.")
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, CodeNotFound, "Not found.")
	default:
		return false
	}
	return true
}
