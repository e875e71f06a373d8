//go:build windows

package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"

	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/poll"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

const (
	managerAccess = windows.SC_MANAGER_CONNECT | windows.SC_MANAGER_ENUMERATE_SERVICE
	queryAccess   = windows.SERVICE_QUERY_CONFIG | windows.SERVICE_QUERY_STATUS
	startAccess   = queryAccess | windows.SERVICE_START
)

// ListServices implements ports.ServiceController.
func (c *Controller) ListServices(ctx context.Context) ([]model.ServiceDescriptor, error) {
	m, err := connect()
	if err != nil {
		return nil, err
	}
	defer m.Disconnect()

	names, err := m.ListServices()
	if err != nil {
		return nil, wrap("list services", "", err)
	}

	out := make([]model.ServiceDescriptor, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		desc, ok := describe(m, name)
		if !ok {
			c.logger.Debug(ctx, "service omitted from listing", "service", name)
			continue
		}
		out = append(out, desc)
	}
	c.logger.Debug(ctx, "services listed", "count", len(out))
	return out, nil
}

// Start implements ports.ServiceController.
func (c *Controller) Start(ctx context.Context, name string) error {
	m, err := connect()
	if err != nil {
		return err
	}
	defer m.Disconnect()

	s, err := open(m, name, startAccess)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Start(); err != nil {
		if errors.Is(err, windows.ERROR_SERVICE_ALREADY_RUNNING) {
			return nil
		}
		return wrap("start service", name, err)
	}
	c.logger.Info(ctx, "service start requested", "service", name)
	return nil
}

// WaitForState implements ports.ServiceController.
func (c *Controller) WaitForState(ctx context.Context, name string, state model.RunState, timeout time.Duration) (bool, error) {
	m, err := connect()
	if err != nil {
		return false, err
	}
	defer m.Disconnect()

	s, err := open(m, name, queryAccess)
	if err != nil {
		return false, err
	}
	defer s.Close()

	err = poll.Until(ctx, c.pollInterval, timeout, func(context.Context) (bool, error) {
		status, err := s.Query()
		if err != nil {
			return false, wrap("query service", name, err)
		}
		return runState(status.State) == state, nil
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, remedyerrors.ErrTimeout):
		c.logger.Warn(ctx, "service did not reach state", "service", name, "state", string(state), "timeout", timeout.String())
		return false, nil
	default:
		return false, err
	}
}

func connect() (*mgr.Mgr, error) {
	h, err := windows.OpenSCManager(nil, nil, managerAccess)
	if err != nil {
		return nil, wrap("connect service manager", "", err)
	}
	return &mgr.Mgr{Handle: h}, nil
}

func open(m *mgr.Mgr, name string, access uint32) (*mgr.Service, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, wrap("open service", name, err)
	}
	h, err := windows.OpenService(m.Handle, namePtr, access)
	if err != nil {
		return nil, wrap("open service", name, err)
	}
	return &mgr.Service{Name: name, Handle: h}, nil
}

// describe returns a fully populated descriptor or ok=false.
func describe(m *mgr.Mgr, name string) (model.ServiceDescriptor, bool) {
	s, err := open(m, name, queryAccess)
	if err != nil {
		return model.ServiceDescriptor{}, false
	}
	defer s.Close()

	cfg, err := s.Config()
	if err != nil {
		return model.ServiceDescriptor{}, false
	}
	mode, ok := startMode(cfg.StartType)
	if !ok {
		return model.ServiceDescriptor{}, false
	}
	status, err := s.Query()
	if err != nil {
		return model.ServiceDescriptor{}, false
	}
	return model.ServiceDescriptor{
		Name:      name,
		StartMode: mode,
		RunState:  runState(status.State),
	}, true
}

func startMode(startType uint32) (model.StartMode, bool) {
	switch startType {
	case mgr.StartAutomatic:
		return model.StartAutomatic, true
	case mgr.StartManual:
		return model.StartManual, true
	case mgr.StartDisabled:
		return model.StartDisabled, true
	default:
		return "", false
	}
}

func runState(state svc.State) model.RunState {
	switch state {
	case svc.Running:
		return model.StateRunning
	case svc.Stopped:
		return model.StateStopped
	default:
		return model.StateOther
	}
}

func wrap(op, target string, err error) error {
	var kind error
	switch {
	case errors.Is(err, windows.ERROR_SERVICE_DOES_NOT_EXIST):
		kind = remedyerrors.ErrNotFound
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		kind = remedyerrors.ErrPermissionDenied
	}
	return remedyerrors.NewProviderError(op, target, kind, err)
}
