package transport

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter blocks until a call is allowed or ctx is done.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

type tokenBucket struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows perSecond calls per second with the given burst.
// A non-positive perSecond returns nil, meaning no limit.
func NewRateLimiter(perSecond float64, burst int) RateLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &tokenBucket{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	return b.limiter.Wait(ctx)
}
