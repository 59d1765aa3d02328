package middleware

import (
	"context"

	"github.com/finds-lab/backend/pkg/errorx"
	"github.com/finds-lab/backend/pkg/ratelimit"
	"github.com/finds-lab/backend/pkg/router"
	"github.com/finds-lab/backend/pkg/xcontext"
)

// RateLimit throttles requests per authenticated credential. It must run
// after an API key verifier.
func RateLimit(limiter ratelimit.Limiter) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		credential := xcontext.RequestAPIKey(ctx)
		if credential == "" {
			return ctx, nil
		}

		allowed, err := limiter.Allow(ctx, credential)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check the rate limit: %v", err)
			return nil, errorx.Unknown
		}

		if !allowed {
			return nil, errorx.New(errorx.TooManyRequests, "Too many requests. Try again later.")
		}

		return ctx, nil
	}
}
