package resource

import (
	"time"

	"github.com/hilthontt/powersite/internal/infrastructure/logging"
	"github.com/hilthontt/powersite/internal/infrastructure/validate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const DefaultPageSize = 10

type options struct {
	pageSize  int
	now       func() time.Time
	tracer    trace.Tracer
	logger    logging.Logger
	validator *validate.Validator
}

type Option func(*options)

func defaultOptions() options {
	return options{
		pageSize: DefaultPageSize,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
		tracer:    otel.Tracer("github.com/hilthontt/powersite/internal/resource"),
		logger:    logging.NewZap(zap.NewNop()),
		validator: validate.Default(),
	}
}

func WithPageSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.pageSize = size
		}
	}
}

// WithClock replaces the source of created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithValidator(v *validate.Validator) Option {
	return func(o *options) {
		o.validator = v
	}
}
