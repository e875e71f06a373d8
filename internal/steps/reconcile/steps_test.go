package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/failover-remedy/internal/config"
	"github.com/alexisbeaulieu97/failover-remedy/internal/engine"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports/portstest"
)

func stepContext(reg *portstest.Registry, services *portstest.Services) *engine.ExecutionContext {
	return &engine.ExecutionContext{
		Context:    context.Background(),
		Config:     config.Defaults(),
		Registry:   reg,
		Services:   services,
		StartModes: portstest.NewStartModes(services),
	}
}

func TestWebServiceStep(t *testing.T) {
	services := portstest.NewServices(svc("W3SVC", model.StartManual, model.StateStopped))
	step := NewWebServiceStep()

	res := step.Run(stepContext(portstest.NewRegistry(), services))

	assert.Equal(t, WebStepName, step.Name())
	assert.Equal(t, model.OutcomeSuccess, res.Outcome)
	current, _ := services.Get("W3SVC")
	assert.True(t, current.Satisfied())
}

func TestSQLServiceStepNamedInstance(t *testing.T) {
	reg := portstest.NewRegistry().SetValue(config.DefaultConnectionKey, config.DefaultConnectionValue,
		`Data Source=SQL01\VIDEO;Initial Catalog=Surveillance;Integrated Security=SSPI`)
	services := portstest.NewServices(
		svc("MSSQLSERVER", model.StartManual, model.StateStopped),
		svc("MSSQL$VIDEO", model.StartAutomatic, model.StateStopped),
	)

	res := NewSQLServiceStep().Run(stepContext(reg, services))

	assert.Equal(t, model.OutcomeSuccess, res.Outcome)
	assert.Equal(t, []string{"MSSQL$VIDEO"}, services.StartCalls)
}

func TestSQLServiceStepDefaultInstance(t *testing.T) {
	reg := portstest.NewRegistry().SetValue(config.DefaultConnectionKey, config.DefaultConnectionValue,
		`Data Source=localhost;Initial Catalog=Surveillance`)
	services := portstest.NewServices(svc("MSSQLSERVER", model.StartAutomatic, model.StateRunning))

	res := NewSQLServiceStep().Run(stepContext(reg, services))

	assert.Equal(t, model.OutcomeSuccess, res.Outcome)
	assert.Equal(t, "MSSQLSERVER is already running.", res.Message)
}

func TestSQLServiceStepNotLocated(t *testing.T) {
	services := portstest.NewServices(svc("MSSQLSERVER", model.StartManual, model.StateStopped))

	res := NewSQLServiceStep().Run(stepContext(portstest.NewRegistry(), services))

	require.Equal(t, model.OutcomeNotFound, res.Outcome)
	assert.Equal(t, "SQL Server instance not located: Registry key not found.", res.Message)
	assert.ErrorIs(t, res.Error, errNoTarget)
	assert.Zero(t, services.ListCalls)
}

func TestProductServicesStep(t *testing.T) {
	services := portstest.NewServices(
		svc("MilestoneEventServerService", model.StartDisabled, model.StateStopped),
		svc("W3SVC", model.StartManual, model.StateStopped),
	)

	res := NewProductServicesStep().Run(stepContext(portstest.NewRegistry(), services))

	assert.Equal(t, model.OutcomeSuccess, res.Outcome)
	require.Len(t, res.Details, 1)
	assert.Equal(t, []string{"MilestoneEventServerService"}, services.StartCalls)
}
