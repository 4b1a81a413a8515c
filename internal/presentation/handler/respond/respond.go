// Package respond turns handler errors into HTTP responses.
package respond

import (
	"errors"
	"net/http"

	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/infrastructure/json"
	"github.com/hilthontt/powersite/internal/infrastructure/logging"
)

type ErrorReporter interface {
	CaptureRequestError(r *http.Request, err error)
}

type Responder struct {
	logger   logging.Logger
	reporter ErrorReporter
}

func New(logger logging.Logger, reporter ErrorReporter) *Responder {
	return &Responder{logger: logger, reporter: reporter}
}

// Error renders domain errors with their status and anything else as a 500
// that is logged and reported.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	if json.WriteDomainError(w, err) {
		return
	}

	rs.logger.Error(logging.Internal, logging.ExternalService, "unexpected error", map[logging.ExtraKey]any{
		logging.ErrorMessage: err.Error(),
		logging.Method:       r.Method,
		logging.Path:         r.URL.Path,
	})
	if rs.reporter != nil {
		rs.reporter.CaptureRequestError(r, err)
	}
	json.WriteInternalError(w)
}

// Outcome labels err for metrics.
func Outcome(err error) string {
	var notFound *domain.NotFoundError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return json.CodeValidation
	case errors.Is(err, domain.ErrConflict):
		return json.CodeConflict
	case errors.As(err, &notFound), errors.Is(err, domain.ErrNotFound):
		return json.CodeNotFound
	case errors.Is(err, domain.ErrPermissionDenied):
		return json.CodePermissionDenied
	}
	return json.CodeInternal
}
