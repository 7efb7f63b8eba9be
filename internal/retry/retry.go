package retry

import (
	"context"
	"time"
)

// Policy retries an operation with a fixed delay between attempts.
// MaxAttempts <= 0 means retry until the operation succeeds.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration

	// Sleep waits for d or until ctx is done. Nil means a real timer.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnRetry is called after a failed attempt, before sleeping.
	OnRetry func(attempt int, err error)
}

// Forever returns the policy used when the user explicitly opens an asset:
// no attempt limit, fixed delay.
func Forever(delay time.Duration) Policy {
	return Policy{Delay: delay}
}

// Do runs op until it returns nil, the attempt limit is hit, or ctx is
// cancelled. It returns the last error from op, or ctx.Err().
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
			return err
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
		if serr := sleep(ctx, p.Delay); serr != nil {
			return serr
		}
	}
}

// Sleep blocks for d, returning early with ctx.Err() if ctx is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
