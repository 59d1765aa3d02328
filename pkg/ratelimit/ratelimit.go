package ratelimit

import (
	"context"
	"time"
)

const (
	DefaultLimit  = 100
	DefaultWindow = time.Hour
)

// Limiter enforces a per-credential sliding window anchored to the first
// request of each window.
type Limiter interface {
	// Allow records one request for the credential and reports whether it
	// fits in the current window.
	Allow(ctx context.Context, credential string) (bool, error)
}
