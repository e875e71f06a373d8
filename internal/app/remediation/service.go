// Package remediation assembles the repair pipeline and the read-only
// inspections around it.
package remediation

import (
	"context"
	"fmt"
	"io"

	"github.com/alexisbeaulieu97/failover-remedy/internal/config"
	"github.com/alexisbeaulieu97/failover-remedy/internal/engine"
	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/filesystem"
	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/process"
	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/registry"
	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/services"
	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/wmi"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	"github.com/alexisbeaulieu97/failover-remedy/internal/steps/cleanup"
	"github.com/alexisbeaulieu97/failover-remedy/internal/steps/reconcile"
	"github.com/alexisbeaulieu97/failover-remedy/internal/steps/reregister"
	"github.com/alexisbeaulieu97/failover-remedy/internal/steps/sqllocator"
	"github.com/alexisbeaulieu97/failover-remedy/internal/steps/uninstall"
	"github.com/alexisbeaulieu97/failover-remedy/internal/validation"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// Providers are the OS bindings the pipeline runs against.
type Providers struct {
	Registry   ports.RegistryReader
	Services   ports.ServiceController
	StartModes ports.StartModeChanger
	Processes  ports.ProcessRunner
	FS         ports.Filesystem
}

// SystemProviders binds the providers to the host OS. Child process output
// is copied to output when non-nil.
func SystemProviders(cfg *config.Config, logger ports.Logger, output io.Writer) Providers {
	return Providers{
		Registry:   registry.New(logger),
		Services:   services.New(logger, cfg.Services.PollInterval),
		StartModes: wmi.New(logger),
		Processes:  process.New(logger, process.Options{Output: output}),
		FS:         filesystem.New(),
	}
}

// Plan returns the remediation steps in execution order. Re-registration is
// always last.
func Plan() []engine.Step {
	return []engine.Step{
		uninstall.New(),
		cleanup.NewFolderStep(),
		cleanup.NewFileStep(),
		cleanup.NewRegistryKeyStep(),
		reconcile.NewWebServiceStep(),
		reconcile.NewSQLServiceStep(),
		reconcile.NewProductServicesStep(),
		reregister.New(),
	}
}

// Service coordinates remediation runs and inspections.
type Service struct {
	providers Providers
}

// NewService constructs a remediation service over providers.
func NewService(providers Providers) *Service {
	return &Service{providers: providers}
}

// RunRequest configures a remediation run.
type RunRequest struct {
	Config *config.Config
	Logger ports.Logger
	Sinks  []ports.ResultSink
	// Verify re-inspects the system after the pipeline.
	Verify       bool
	OnValidation func(validation.ValidationResult)
}

// RunOutcome captures a finished run.
type RunOutcome struct {
	Report            *model.Report
	ValidationResults []validation.ValidationResult
	ValidationErr     error
}

// Success reports whether every step ended satisfied and, when verification
// ran, every check passed.
func (o *RunOutcome) Success() bool {
	if o == nil || o.Report == nil {
		return false
	}
	return o.Report.AllSatisfied() && o.ValidationErr == nil
}

// Run executes the full pipeline. The error return is reserved for requests
// that cannot run at all; step failures live in the report.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunOutcome, error) {
	if req.Config == nil {
		return nil, remedyerrors.NewValidationError("config", "configuration is required", nil)
	}
	log := req.Logger
	if log == nil {
		log = logging.NewNoOpLogger()
	}

	execCtx := &engine.ExecutionContext{
		Context:    ctx,
		Config:     req.Config,
		Logger:     log,
		Registry:   s.providers.Registry,
		Services:   s.providers.Services,
		StartModes: s.providers.StartModes,
		Processes:  s.providers.Processes,
		FS:         s.providers.FS,
		Sinks:      req.Sinks,
	}

	report, err := engine.Execute(execCtx, Plan())
	if err != nil {
		return nil, fmt.Errorf("execute remediation: %w", err)
	}

	outcome := &RunOutcome{Report: report}
	if !req.Verify {
		return outcome, nil
	}

	results, verr := validation.RunValidations(ctx, validation.Deps{
		FS:       s.providers.FS,
		Registry: s.providers.Registry,
		Services: s.providers.Services,
	}, validation.Plan(req.Config, s.providers.Registry))
	outcome.ValidationResults = results
	outcome.ValidationErr = verr
	if req.OnValidation != nil {
		for _, result := range results {
			req.OnValidation(result)
		}
	}
	if verr != nil {
		log.Warn(ctx, "post-run verification failed", "error", verr)
	}
	return outcome, nil
}

// LocateSQL reports where the management database lives.
func (s *Service) LocateSQL(cfg *config.Config) sqllocator.Location {
	return sqllocator.Locate(s.providers.Registry, cfg.SQL.ConnectionStringKey, cfg.SQL.ConnectionStringValue)
}
