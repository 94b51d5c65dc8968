package services

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/srgjo27/captainbook/internal/core/domain"
)

var tracer = otel.Tracer("github.com/srgjo27/captainbook/internal/core/services")

func endSpan(span trace.Span, err error) {
	if err != nil && domain.KindOf(err) == domain.KindDependency {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// asDependency keeps domain errors intact and wraps anything else as a
// dependency failure with a caller-safe message.
func asDependency(msg string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.NewDependencyError(msg, err)
}
