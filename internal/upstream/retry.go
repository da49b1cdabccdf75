package upstream

import (
	"math"
	"time"
)

type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  2,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     2 * time.Second,
		Multiplier:  2.0,
	}
}

// CalculateBackoff returns initialWait * multiplier^(attempt-1), capped at MaxWait.
func (r RetryConfig) CalculateBackoff(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	backoff := float64(r.InitialWait) * math.Pow(r.Multiplier, float64(attempt-1))
	if backoff > float64(r.MaxWait) {
		backoff = float64(r.MaxWait)
	}

	return time.Duration(backoff)
}
