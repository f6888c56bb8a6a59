package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowBurstPerKey(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 2)

	assert.True(t, l.Allow("gemini-2.5-flash"))
	assert.True(t, l.Allow("gemini-2.5-flash"))
	assert.False(t, l.Allow("gemini-2.5-flash"))

	assert.True(t, l.Allow("gemini-2.5-flash-lite"))
}

func TestWaitHonoursContext(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 1)
	require.NoError(t, l.Wait(context.Background(), "graph"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "graph"))
}
