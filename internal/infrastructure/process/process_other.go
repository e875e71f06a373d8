//go:build !windows

package process

import (
	"context"
	"os/exec"
	"time"

	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

func (r *Runner) runElevated(_ context.Context, command string, _ []string, _ time.Duration) (int, error) {
	return -1, remedyerrors.NewProviderError("elevate", command, remedyerrors.ErrUnsupported, nil)
}

func prepare(*exec.Cmd, string, []string) {}
