package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTickerRunsUntilCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	runs := 0
	err := NewTickerScheduler(10*time.Millisecond).Run(ctx, func(context.Context, time.Time) {
		runs++
		if runs == 3 {
			cancel()
		}
	})
	require.NoError(t, err)
	require.Equal(t, 3, runs)
}

func TestTickerWithoutInterval(t *testing.T) {
	t.Parallel()

	called := false
	err := NewTickerScheduler(0).Run(context.Background(), func(context.Context, time.Time) { called = true })
	require.NoError(t, err)
	require.False(t, called)
}
