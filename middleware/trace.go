package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nero-extensions/kitsu/internal"
	"github.com/nero-extensions/kitsu/internal/model"
)

// Trace returns a middleware that wraps each exchange in a span. A nil
// tracer falls back to the globally registered provider.
func Trace(tracer trace.Tracer) internal.Middleware {
	return func(next internal.Handler) internal.Handler {
		return func(ctx context.Context, req *internal.PreparedRequest) (*model.Response, error) {
			t := tracer
			if t == nil {
				t = otel.Tracer("github.com/nero-extensions/kitsu")
			}
			ctx, span := t.Start(ctx, "client.exchange", trace.WithSpanKind(trace.SpanKindClient))
			span.SetAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.full", req.URL),
			)
			defer span.End()

			resp, err := next(ctx, req)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
			return resp, nil
		}
	}
}
