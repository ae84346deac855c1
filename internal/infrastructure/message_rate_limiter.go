package infrastructure

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MessageRateLimiter throttles inbound messages per customer id so one
// chatty customer cannot starve a business's webhook.
type MessageRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMessageRateLimiter creates a limiter allowing r messages per second
// with the given burst, per customer.
func NewMessageRateLimiter(r float64, burst int) *MessageRateLimiter {
	rl := &MessageRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(r),
		burst:    burst,
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether the customer may send another message now.
func (rl *MessageRateLimiter) Allow(customerID string) bool {
	rl.mu.Lock()
	entry, ok := rl.limiters[customerID]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[customerID] = entry
	}
	entry.lastSeen = time.Now()
	rl.mu.Unlock()

	return entry.limiter.Allow()
}

// ActiveCustomers reports how many limiters are live (ops visibility).
func (rl *MessageRateLimiter) ActiveCustomers() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// cleanup drops limiters idle for 10+ minutes.
func (rl *MessageRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for id, entry := range rl.limiters {
			if now.Sub(entry.lastSeen) > 10*time.Minute {
				delete(rl.limiters, id)
			}
		}
		rl.mu.Unlock()
	}
}
