// Package middleware provides optional client middlewares: structured
// exchange logging, outbound throttling and OpenTelemetry tracing.
// Middlewares observe every exchange, including the redirect hop.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nero-extensions/kitsu/internal"
	"github.com/nero-extensions/kitsu/internal/model"
)

// Logger returns a middleware that logs one line per completed or
// failed exchange, tagged with a fresh exchange id.
func Logger(log *slog.Logger) internal.Middleware {
	return func(next internal.Handler) internal.Handler {
		return func(ctx context.Context, req *internal.PreparedRequest) (*model.Response, error) {
			logger := log
			if logger == nil {
				logger = slog.Default()
			}
			id := uuid.NewString()
			start := time.Now()

			resp, err := next(ctx, req)
			if err != nil {
				logger.Error("exchange failed",
					"id", id, "method", req.Method, "url", req.URL,
					"duration", time.Since(start).String(), "error", err)
				return nil, err
			}
			logger.Info("exchange complete",
				"id", id, "method", req.Method, "url", req.URL,
				"status", resp.StatusCode, "duration", time.Since(start).String())
			return resp, nil
		}
	}
}
