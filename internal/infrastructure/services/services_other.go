//go:build !windows

package services

import (
	"context"
	"time"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// ListServices reports ErrUnsupported on platforms without a service manager.
func (c *Controller) ListServices(context.Context) ([]model.ServiceDescriptor, error) {
	return nil, remedyerrors.NewProviderError("list services", "", remedyerrors.ErrUnsupported, nil)
}

// Start reports ErrUnsupported on platforms without a service manager.
func (c *Controller) Start(_ context.Context, name string) error {
	return remedyerrors.NewProviderError("start service", name, remedyerrors.ErrUnsupported, nil)
}

// WaitForState reports ErrUnsupported on platforms without a service manager.
func (c *Controller) WaitForState(_ context.Context, name string, _ model.RunState, _ time.Duration) (bool, error) {
	return false, remedyerrors.NewProviderError("query service", name, remedyerrors.ErrUnsupported, nil)
}
