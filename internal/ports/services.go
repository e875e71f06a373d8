package ports

import (
	"context"
	"time"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
)

// ServiceController is the lightweight, handle-based service channel. It can
// inspect and start services but cannot alter start modes. Implementations
// must:
//   - Return fully populated descriptors only; a service that cannot be read
//     completely is left out of the listing.
//   - Map "service does not exist" to errors.ErrNotFound and access failures
//     to errors.ErrPermissionDenied.
//   - Respect ctx cancellation while waiting.
type ServiceController interface {
	ListServices(ctx context.Context) ([]model.ServiceDescriptor, error)
	Start(ctx context.Context, name string) error

	// WaitForState blocks until the service reports state or timeout elapses.
	// reached is false on timeout; err is reserved for query failures.
	WaitForState(ctx context.Context, name string, state model.RunState, timeout time.Duration) (reached bool, err error)
}

// StartModeChanger is the heavier, elevated management channel used to change
// a service's persisted start mode. Calls are fire-and-forget: a nil error
// means the request was accepted, not that the change is visible yet.
type StartModeChanger interface {
	SetStartMode(ctx context.Context, name string, mode model.StartMode) error
}
