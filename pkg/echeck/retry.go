package echeck

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/greenlyst/greenmoney/pkg/transport"
)

// DefaultMaxDelay caps a single backoff when RetryPolicy.MaxDelay is zero.
const DefaultMaxDelay = 30 * time.Second

// RetryPolicy bounds the retry decorator. MaxRetries is the total number
// of attempts; MaxDelay caps each wait, jitter included.
type RetryPolicy struct {
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	MaxRetries int
}

type RetryCaller struct {
	inner      Caller
	baseDelay  time.Duration
	maxDelay   time.Duration
	maxRetries int
}

// NewRetryCaller repeats read-only operations that failed on the network
// or with a 5xx. Every other operation is sent exactly once.
func NewRetryCaller(inner Caller, policy RetryPolicy) *RetryCaller {
	if policy.MaxRetries < 1 {
		policy.MaxRetries = 1
	}
	if policy.MaxDelay <= 0 {
		policy.MaxDelay = DefaultMaxDelay
	}
	return &RetryCaller{
		inner:      inner,
		baseDelay:  policy.BaseDelay,
		maxDelay:   policy.MaxDelay,
		maxRetries: policy.MaxRetries,
	}
}

func (r *RetryCaller) Call(ctx context.Context, op transport.Operation, fields *transport.Fields, schema transport.Schema) (transport.Result, error) {
	if !op.ReadOnly {
		return r.inner.Call(ctx, op, fields, schema)
	}

	var lastErr error
	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, err
		}

		result, err := r.inner.Call(ctx, op, fields, schema)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			if !sleep(ctx, r.backoff(attempt)) {
				return nil, lastErr
			}
		}
	}

	if r.maxRetries == 1 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryable(err error) bool {
	tErr, ok := transport.AsError(err)
	if !ok {
		return false
	}
	switch tErr.Kind {
	case transport.KindNetwork:
		return tErr.Retryable()
	case transport.KindHTTPStatus:
		return tErr.StatusCode >= 500
	}
	return false
}

// backoff doubles the base delay per attempt and adds up to one base
// delay of jitter, never exceeding maxDelay.
func (r *RetryCaller) backoff(attempt int) time.Duration {
	if r.baseDelay <= 0 {
		return 0
	}
	d := r.baseDelay
	for i := 0; i < attempt && d < r.maxDelay; i++ {
		d *= 2
	}
	d += time.Duration(rand.Int64N(int64(r.baseDelay)))
	if d > r.maxDelay || d <= 0 {
		return r.maxDelay
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
