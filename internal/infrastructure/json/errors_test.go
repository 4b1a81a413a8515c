package json

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hilthontt/powersite/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteDomainError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", domain.FieldError("title", "This field is required."), http.StatusBadRequest, CodeValidation, "Invalid input."},
		{"conflict", &domain.ConflictError{Resource: "tender", Field: "reference_number"}, http.StatusConflict, CodeConflict, "tender with this reference number already exists."},
		{"not found", &domain.NotFoundError{Resource: "tenders"}, http.StatusNotFound, CodeNotFound, "Not found."},
		{"invalid page", &domain.NotFoundError{Detail: "Invalid page."}, http.StatusNotFound, CodeNotFound, "Invalid page."},
		{"permission", &domain.PermissionError{Operation: "create", Resource: "tenders"}, http.StatusForbidden, CodePermissionDenied, "You do not have permission to perform this action."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.True(t, WriteDomainError(rec, tc.err))

			assert.Equal(t, tc.status, rec.Code)
			resp := decode(t, rec)
			assert.Equal(t, tc.code, resp.Code)
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestWriteDomainErrorFieldsAndFallthrough(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteDomainError(rec, domain.FieldError("career", "Invalid pk \"9\" - object does not exist."))
	assert.Equal(t, map[string][]string{"career": {`Invalid pk "9" - object does not exist.`}}, decode(t, rec).Fields)

	rec = httptest.NewRecorder()
	assert.False(t, WriteDomainError(rec, errors.New("disk on fire")))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestWriteRateLimitError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteRateLimitError(rec, 12)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "12", rec.Header().Get("Retry-After"))
	assert.Equal(t, CodeRateLimited, decode(t, rec).Code)
}
