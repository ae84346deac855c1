package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageRateLimiterBurst(t *testing.T) {
	rl := NewMessageRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("cust-1"), "burst message %d", i)
	}
	assert.False(t, rl.Allow("cust-1"), "burst exhausted")

	// other customers are unaffected
	assert.True(t, rl.Allow("cust-2"))
	assert.Equal(t, 2, rl.ActiveCustomers())
}
