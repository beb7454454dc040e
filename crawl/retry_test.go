package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/docdex/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("succeeds first attempt", func(t *testing.T) {
		t.Parallel()
		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "<html></html>", nil
		}
		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://docs.acme.dev", fetch, nil, zeroDelays(3))
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers after transient failures", func(t *testing.T) {
		t.Parallel()
		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "ok", nil
		}
		html, err := crawl.FetchWithRetryDelays(context.Background(), "u", fetch, nil, zeroDelays(3))
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts retries", func(t *testing.T) {
		t.Parallel()
		calls := 0
		wantErr := errors.New("504")
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", wantErr
		}
		_, err := crawl.FetchWithRetryDelays(context.Background(), "u", fetch, nil, zeroDelays(3))
		assert.Equal(t, wantErr, err)
		assert.Equal(t, 4, calls) // 1 initial + 3 retries
	})

	t.Run("backoff waits increase monotonically", func(t *testing.T) {
		t.Parallel()
		delays := crawl.DefaultRetryDelays()
		require.Len(t, delays, 2)
		for i := 1; i < len(delays); i++ {
			assert.Greater(t, delays[i], delays[i-1])
		}
		assert.Equal(t, 1*time.Second, delays[0])
		assert.Equal(t, 2*time.Second, delays[1])
	})

	t.Run("canceled context stops retries", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", errors.New("failure")
		}
		_, err := crawl.FetchWithRetryDelays(ctx, "u", fetch, nil, []time.Duration{time.Hour})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func zeroDelays(n int) []time.Duration {
	return make([]time.Duration, n)
}
