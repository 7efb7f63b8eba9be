package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("flaky")

func failTimes(n int, calls *int) func(context.Context) error {
	return func(context.Context) error {
		*calls++
		if *calls <= n {
			return errFlaky
		}
		return nil
	}
}

func TestPolicy_Do(t *testing.T) {
	t.Run("unbounded retries until success", func(t *testing.T) {
		var (
			calls  int
			slept  []time.Duration
			seenAt []int
		)
		p := Forever(3 * time.Second)
		p.Sleep = func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		}
		p.OnRetry = func(attempt int, err error) {
			assert.ErrorIs(t, err, errFlaky)
			seenAt = append(seenAt, attempt)
		}

		err := p.Do(context.Background(), failTimes(25, &calls))
		require.NoError(t, err)
		assert.Equal(t, 26, calls)
		assert.Len(t, slept, 25)
		for _, d := range slept {
			assert.Equal(t, 3*time.Second, d)
		}
		assert.Equal(t, 1, seenAt[0])
		assert.Equal(t, 25, seenAt[len(seenAt)-1])
	})

	t.Run("first attempt succeeds without sleeping", func(t *testing.T) {
		var calls int
		p := Policy{Delay: time.Hour, Sleep: func(context.Context, time.Duration) error {
			t.Fatal("unexpected sleep")
			return nil
		}}
		require.NoError(t, p.Do(context.Background(), failTimes(0, &calls)))
		assert.Equal(t, 1, calls)
	})

	t.Run("attempt limit returns last error", func(t *testing.T) {
		var calls int
		p := Policy{MaxAttempts: 3, Sleep: func(context.Context, time.Duration) error { return nil }}
		err := p.Do(context.Background(), failTimes(10, &calls))
		assert.ErrorIs(t, err, errFlaky)
		assert.Equal(t, 3, calls)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		var calls int
		ctx, cancel := context.WithCancel(context.Background())
		p := Policy{Delay: time.Hour, Sleep: func(ctx context.Context, d time.Duration) error {
			if calls < 2 {
				return nil
			}
			cancel()
			return Sleep(ctx, d)
		}}
		err := p.Do(ctx, failTimes(100, &calls))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 2, calls)
	})
}

func TestSleep(t *testing.T) {
	require.NoError(t, Sleep(context.Background(), time.Millisecond))
	require.NoError(t, Sleep(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, Sleep(ctx, 0), context.Canceled)
}
