package middleware

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/nero-extensions/kitsu/internal"
	"github.com/nero-extensions/kitsu/internal/model"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
)

// Throttle returns a middleware that restricts outbound exchanges with
// a token bucket limiter.
func Throttle(rps, burst int) (internal.Middleware, error) {
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, ErrMustNotBeZero)
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next internal.Handler) internal.Handler {
		return func(ctx context.Context, req *internal.PreparedRequest) (*model.Response, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
			}
			return next(ctx, req)
		}
	}, nil
}
