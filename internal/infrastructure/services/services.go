// Package services implements ports.ServiceController over the Windows
// Service Control Manager. Handles are opened with query and start rights
// only, so listing and starting work without full administrative access.
package services

import (
	"time"

	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
)

// DefaultPollInterval is how often WaitForState re-queries a service.
const DefaultPollInterval = 250 * time.Millisecond

// Controller is the host service provider.
type Controller struct {
	logger       ports.Logger
	pollInterval time.Duration
}

// New returns a Controller. pollInterval <= 0 selects DefaultPollInterval.
func New(logger ports.Logger, pollInterval time.Duration) *Controller {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Controller{
		logger:       logger.With("component", "services"),
		pollInterval: pollInterval,
	}
}

var _ ports.ServiceController = (*Controller)(nil)
