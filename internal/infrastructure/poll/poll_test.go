package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

func TestUntilReturnsOnceConditionHolds(t *testing.T) {
	calls := 0
	err := Until(context.Background(), time.Millisecond, time.Second, func(context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestUntilChecksImmediately(t *testing.T) {
	calls := 0
	err := Until(context.Background(), time.Hour, time.Hour, func(context.Context) (bool, error) {
		calls++
		return true, nil
	})

	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestUntilTimesOut(t *testing.T) {
	start := time.Now()
	err := Until(context.Background(), 5*time.Millisecond, 30*time.Millisecond, func(context.Context) (bool, error) {
		return false, nil
	})

	require.ErrorIs(t, err, remedyerrors.ErrTimeout)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestUntilStopsOnConditionError(t *testing.T) {
	boom := errors.New("service vanished")
	calls := 0
	err := Until(context.Background(), time.Millisecond, time.Second, func(context.Context) (bool, error) {
		calls++
		return false, boom
	})

	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

func TestUntilHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Until(ctx, time.Millisecond, 0, func(context.Context) (bool, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return false, nil
	})

	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, remedyerrors.ErrTimeout)
}
