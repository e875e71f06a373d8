package reconcile

import (
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/failover-remedy/internal/engine"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/steps/sqllocator"
)

// Step names as they appear in reports and the journal.
const (
	WebStepName     = "reconcile-web-service"
	SQLStepName     = "reconcile-sql-service"
	ProductStepName = "reconcile-product-services"
)

var errNoTarget = errors.New("database service not located")

// NewWebServiceStep reconciles the configured web-publishing service.
func NewWebServiceStep() engine.Step {
	return engine.NewStep(WebStepName, func(execCtx *engine.ExecutionContext) model.StepResult {
		return FromContext(execCtx).Reconcile(execCtx.Ctx(), WebStepName, execCtx.Config.Services.WebService)
	})
}

// NewSQLServiceStep locates the database instance and reconciles its
// service. An unlocatable instance is reported as not found with the
// locator's reason.
func NewSQLServiceStep() engine.Step {
	return engine.NewStep(SQLStepName, func(execCtx *engine.ExecutionContext) model.StepResult {
		cfg := execCtx.Config.SQL
		loc := sqllocator.Locate(execCtx.Registry, cfg.ConnectionStringKey, cfg.ConnectionStringValue)
		if !loc.Found {
			execCtx.Log().Warn(execCtx.Ctx(), "database instance not located", "reason", loc.Reason)
			res := model.NewResult(SQLStepName, model.OutcomeNotFound,
				fmt.Sprintf("SQL Server instance not located: %s", loc.Reason))
			res.Error = fmt.Errorf("%w: %s", errNoTarget, loc.Reason)
			return res
		}
		name := sqllocator.ServiceName(loc.Target)
		execCtx.Log().Info(execCtx.Ctx(), "database instance located", "target", loc.Target.String(), "service", name)
		return FromContext(execCtx).Reconcile(execCtx.Ctx(), SQLStepName, name)
	})
}

// NewProductServicesStep reconciles every service carrying the product prefix.
func NewProductServicesStep() engine.Step {
	return engine.NewStep(ProductStepName, func(execCtx *engine.ExecutionContext) model.StepResult {
		return FromContext(execCtx).ReconcilePrefix(execCtx.Ctx(), ProductStepName, execCtx.Config.Services.ProductPrefix)
	})
}
