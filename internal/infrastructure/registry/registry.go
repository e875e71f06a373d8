// Package registry implements ports.RegistryReader against the Windows
// registry. Keys are always opened in the 64-bit view so paths that name
// WOW6432Node explicitly resolve to the 32-bit branch and nothing else.
package registry

import (
	"context"

	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
)

// Reader is the host registry provider.
type Reader struct {
	logger ports.Logger
}

// New returns a Reader. A nil logger discards debug output.
func New(logger ports.Logger) *Reader {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Reader{logger: logger.With("component", "registry")}
}

func (r *Reader) debug(msg string, fields ...interface{}) {
	r.logger.Debug(context.Background(), msg, fields...)
}

var _ ports.RegistryReader = (*Reader)(nil)
