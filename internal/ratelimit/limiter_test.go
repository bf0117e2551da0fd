package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilLimiterAllowsEverything(t *testing.T) {
	var limiter *Limiter

	ctx := context.Background()

	exceeded, err := limiter.CheckIPRateLimitWithPurpose(ctx, "203.0.113.9", "login")
	require.NoError(t, err)
	require.False(t, exceeded)

	err = limiter.RecordIPRequestWithPurpose(ctx, "203.0.113.9", "login")
	require.NoError(t, err)
}
