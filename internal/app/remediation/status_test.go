package remediation

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports/portstest"
)

func permissionError(path string) error {
	return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrPermission}
}

func TestStatusOnBrokenHost(t *testing.T) {
	f := brokenHost()

	status, err := NewService(f.providers()).Status(context.Background(), f.cfg)
	require.NoError(t, err)

	require.Len(t, status.Services, 4)
	assert.Equal(t, ServiceStatus{Role: "web", Name: "W3SVC", Found: true, StartMode: model.StartManual, RunState: model.StateStopped}, status.Services[0])
	assert.Equal(t, "MSSQL$VIDEO", status.Services[1].Name)
	assert.Equal(t, "product", status.Services[2].Role)
	assert.True(t, status.Services[3].Satisfied)
	assert.False(t, status.AllSatisfied())

	assert.Empty(t, f.services.StartCalls)
	assert.Empty(t, f.modes.Calls)
}

func TestStatusReportsMissingPieces(t *testing.T) {
	f := healthyHost()
	f.reg = portstest.NewRegistry()
	f.services = portstest.NewServices()

	status, err := NewService(f.providers()).Status(context.Background(), f.cfg)
	require.NoError(t, err)

	require.Len(t, status.Services, 3)
	assert.Equal(t, "service not found", status.Services[0].Note)
	assert.Equal(t, "Registry key not found.", status.Services[1].Note)
	assert.Equal(t, "No matching services found.", status.Services[2].Note)
}

func TestStatusListFailure(t *testing.T) {
	f := healthyHost()
	f.services.ListErr = errors.New("rpc unavailable")

	_, err := NewService(f.providers()).Status(context.Background(), f.cfg)
	require.ErrorContains(t, err, "rpc unavailable")
}

func TestLocateSQL(t *testing.T) {
	f := healthyHost()

	loc := NewService(f.providers()).LocateSQL(f.cfg)
	require.True(t, loc.Found)
	assert.Equal(t, model.ConnectionTarget{Host: "SQL01", Instance: "VIDEO"}, loc.Target)
}
