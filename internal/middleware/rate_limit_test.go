package middleware

import (
	"testing"
	"time"

	"github.com/finds-lab/backend/pkg/ratelimit"
	"github.com/finds-lab/backend/pkg/testutil"
	"github.com/finds-lab/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func Test_RateLimit(t *testing.T) {
	ctx := xcontext.WithRequestAPIKey(testutil.MockContext(), "bot-key")
	limit := RateLimit(ratelimit.NewLocalLimiter(2, time.Hour))

	for i := 0; i < 2; i++ {
		_, err := limit(ctx)
		require.NoError(t, err)
	}

	_, err := limit(ctx)
	require.EqualError(t, err, "Too many requests. Try again later.")
}

func Test_RateLimit_SkipsAnonymous(t *testing.T) {
	ctx := testutil.MockContext()
	limit := RateLimit(ratelimit.NewLocalLimiter(1, time.Hour))

	// No credential on the context, nothing to throttle against.
	for i := 0; i < 3; i++ {
		_, err := limit(ctx)
		require.NoError(t, err)
	}
}
