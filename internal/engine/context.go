package engine

import (
	"context"

	"github.com/alexisbeaulieu97/failover-remedy/internal/config"
	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
)

// ExecutionContext carries everything a step needs: configuration, the OS
// providers it may call, and where to log and report.
type ExecutionContext struct {
	Context    context.Context
	Config     *config.Config
	Logger     ports.Logger
	Registry   ports.RegistryReader
	Services   ports.ServiceController
	StartModes ports.StartModeChanger
	Processes  ports.ProcessRunner
	FS         ports.Filesystem
	Sinks      []ports.ResultSink
}

// Ctx returns the run context, never nil.
func (e *ExecutionContext) Ctx() context.Context {
	if e == nil || e.Context == nil {
		return context.Background()
	}
	return e.Context
}

// Log returns the run logger, never nil.
func (e *ExecutionContext) Log() ports.Logger {
	if e == nil || e.Logger == nil {
		return logging.NewNoOpLogger()
	}
	return e.Logger
}
