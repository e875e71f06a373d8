package reregister

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/failover-remedy/internal/config"
	"github.com/alexisbeaulieu97/failover-remedy/internal/engine"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports/portstest"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

func setup(t *testing.T, procs *portstest.Processes) *engine.ExecutionContext {
	t.Helper()
	cfg := config.Defaults()
	return &engine.ExecutionContext{
		Context:   context.Background(),
		Config:    cfg,
		Processes: procs,
		FS:        portstest.NewFilesystem().AddFile(cfg.Reregister.Executable),
	}
}

func TestReregisterSuccess(t *testing.T) {
	procs := &portstest.Processes{}
	execCtx := setup(t, procs)

	res := New().Run(execCtx)

	assert.Equal(t, model.OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Re-registration completed successfully.", res.Message)
	assert.True(t, res.HasAction(model.ActionRun))

	require.Len(t, procs.Calls, 1)
	call := procs.Calls[0]
	assert.Equal(t, execCtx.Config.Reregister.Executable, call.Command)
	assert.Equal(t, []string{"/register", "/quiet"}, call.Args)
	assert.True(t, call.Options.Elevated)
	assert.Equal(t, time.Second, call.Options.PollInterval)
}

func TestReregisterPassesHostnameOnlyWhenSupplied(t *testing.T) {
	procs := &portstest.Processes{}
	execCtx := setup(t, procs)
	execCtx.Config.Reregister.ManagementServer = "mgmt01.example.local"

	New().Run(execCtx)

	require.Len(t, procs.Calls, 1)
	assert.Equal(t, []string{"/register", "/quiet", "/managementserveraddress=mgmt01.example.local"}, procs.Calls[0].Args)
}

func TestReregisterMissingExecutable(t *testing.T) {
	procs := &portstest.Processes{}
	execCtx := setup(t, procs)
	execCtx.FS = portstest.NewFilesystem()

	res := New().Run(execCtx)

	assert.Equal(t, model.OutcomeNotFound, res.Outcome)
	assert.Equal(t, `ServerConfigurator.exe not found at `+execCtx.Config.Reregister.Executable+`.`, res.Message)
	assert.Empty(t, procs.Calls)
}

func TestReregisterNonZeroExit(t *testing.T) {
	procs := &portstest.Processes{ExitCode: 3}

	res := New().Run(setup(t, procs))

	assert.Equal(t, model.OutcomeUnknownFailure, res.Outcome)
	assert.Equal(t, "Re-registration failed with exit code: 3", res.Message)
	var execErr *remedyerrors.ExecutionError
	assert.ErrorAs(t, res.Error, &execErr)
}

func TestReregisterTimeout(t *testing.T) {
	procs := &portstest.Processes{
		Handler: func(ctx context.Context, _ portstest.ProcessCall) (int, error) {
			<-ctx.Done()
			return -1, ctx.Err()
		},
	}
	execCtx := setup(t, procs)
	execCtx.Config.Reregister.Timeout = 20 * time.Millisecond

	res := New().Run(execCtx)

	assert.Equal(t, model.OutcomeTimeout, res.Outcome)
	assert.Equal(t, "Timeout: ServerConfigurator.exe did not exit within 20ms.", res.Message)
	assert.ErrorIs(t, res.Error, remedyerrors.ErrTimeout)
}

func TestReregisterCancelled(t *testing.T) {
	procs := &portstest.Processes{
		Handler: func(ctx context.Context, _ portstest.ProcessCall) (int, error) {
			return -1, ctx.Err()
		},
	}
	execCtx := setup(t, procs)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	execCtx.Context = ctx

	res := New().Run(execCtx)

	assert.Equal(t, model.OutcomeUnknownFailure, res.Outcome)
	assert.Equal(t, "Re-registration cancelled.", res.Message)
}

func TestReregisterLaunchFailure(t *testing.T) {
	procs := &portstest.Processes{
		Err: remedyerrors.NewProviderError("launch", "ServerConfigurator.exe", remedyerrors.ErrPermissionDenied, errors.New("elevation refused")),
	}

	res := New().Run(setup(t, procs))

	assert.Equal(t, model.OutcomePermissionDenied, res.Outcome)
	assert.Contains(t, res.Message, "Error during re-registration")
}
