//go:build !windows

package wmi

import (
	"context"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// SetStartMode is a stub for non-Windows platforms.
func (c *Changer) SetStartMode(_ context.Context, name string, _ model.StartMode) error {
	return remedyerrors.NewProviderError("change start mode", name, remedyerrors.ErrUnsupported, nil)
}
