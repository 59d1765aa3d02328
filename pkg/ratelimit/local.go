package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync"
)

type record struct {
	mutex   sync.Mutex
	count   int
	resetAt time.Time
}

// LocalLimiter keeps windows in process memory. Limits reset on restart and
// fragment across instances; deployments with more than one server should use
// the redis limiter instead.
type LocalLimiter struct {
	limit   int
	window  time.Duration
	records *xsync.MapOf[string, *record]

	now func() time.Time
}

func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &LocalLimiter{
		limit:   limit,
		window:  window,
		records: xsync.NewMapOf[*record](),
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(ctx context.Context, credential string) (bool, error) {
	rec, _ := l.records.LoadOrStore(credential, &record{})

	rec.mutex.Lock()
	defer rec.mutex.Unlock()

	now := l.now()
	if rec.count == 0 || now.After(rec.resetAt) {
		rec.count = 1
		rec.resetAt = now.Add(l.window)
		return true, nil
	}

	if rec.count >= l.limit {
		return false, nil
	}

	rec.count++
	return true, nil
}
