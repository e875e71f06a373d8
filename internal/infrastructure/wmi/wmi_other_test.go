//go:build !windows

package wmi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

func TestSetStartModeUnsupported(t *testing.T) {
	err := New(nil).SetStartMode(context.Background(), "W3SVC", model.StartAutomatic)
	require.ErrorIs(t, err, remedyerrors.ErrUnsupported)
}
