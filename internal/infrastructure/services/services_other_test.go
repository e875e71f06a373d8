//go:build !windows

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

func TestNewAppliesDefaultPollInterval(t *testing.T) {
	require.Equal(t, DefaultPollInterval, New(nil, 0).pollInterval)
	require.Equal(t, time.Second, New(nil, time.Second).pollInterval)
}

func TestUnsupportedPlatform(t *testing.T) {
	c := New(nil, 0)
	ctx := context.Background()

	_, err := c.ListServices(ctx)
	require.ErrorIs(t, err, remedyerrors.ErrUnsupported)

	err = c.Start(ctx, "W3SVC")
	require.ErrorIs(t, err, remedyerrors.ErrUnsupported)

	reached, err := c.WaitForState(ctx, "W3SVC", model.StateRunning, time.Second)
	require.False(t, reached)
	require.ErrorIs(t, err, remedyerrors.ErrUnsupported)
}
