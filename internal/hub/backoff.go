package hub

import (
	"math"
	"time"
)

// ReconnectPolicy controls automatic reconnects after a dropped connection.
type ReconnectPolicy struct {
	// InitialDelay is the wait before the second attempt. The first attempt
	// is immediate.
	InitialDelay time.Duration
	// Multiplier grows the delay between consecutive attempts.
	Multiplier float64
	// MaxDelay caps a single delay.
	MaxDelay time.Duration
	// MaxAttempts is the number of attempts; zero disables reconnecting.
	MaxAttempts int
	// Jitter scales each delay by a random factor in [0.5, 1.5).
	Jitter bool
}

// DefaultReconnectPolicy retries four times, waiting 0s, 2s, 4s and 8s.
func DefaultReconnectPolicy() ReconnectPolicy {
	return ReconnectPolicy{
		InitialDelay: 2 * time.Second,
		Multiplier:   2,
		MaxDelay:     30 * time.Second,
		MaxAttempts:  4,
		Jitter:       true,
	}
}

// NextDelay returns the wait before reconnect attempt n (1-based). random
// returns a value in [0, 1) and may be nil, in which case the jitter factor
// is 1.
func NextDelay(p ReconnectPolicy, attempt int, random func() float64) time.Duration {
	if attempt <= 1 || p.InitialDelay <= 0 {
		return 0
	}
	if p.Multiplier < 1.0 {
		p.Multiplier = 1.0
	}
	delay := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt-2))
	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	if p.Jitter && random != nil {
		delay *= 0.5 + random()
	}
	return time.Duration(delay)
}
