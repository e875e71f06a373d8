//go:build !windows

package process

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

func TestElevatedUnsupported(t *testing.T) {
	_, err := New(nil, Options{}).Run(context.Background(), "tool.exe", nil, ports.RunOptions{Elevated: true})
	require.ErrorIs(t, err, remedyerrors.ErrUnsupported)
}
