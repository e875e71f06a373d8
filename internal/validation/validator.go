package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/failover-remedy/internal/config"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	"github.com/alexisbeaulieu97/failover-remedy/internal/steps/sqllocator"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// Deps are the read-only providers the checks consult.
type Deps struct {
	FS       ports.Filesystem
	Registry ports.RegistryReader
	Services ports.ServiceController
}

// Plan returns the re-inspection rules matching a remediation run under cfg.
// The database service is included only when its instance can be located.
func Plan(cfg *config.Config, reg ports.RegistryReader) []Validation {
	validations := []Validation{
		{Type: TypePathAbsent, Target: cfg.Cleanup.InstallFolder},
		{Type: TypePathAbsent, Target: cfg.Cleanup.WizardFile},
		{Type: TypeRegistryKeyAbsent, Target: cfg.Cleanup.UninstallKey},
		{Type: TypeServiceSatisfied, Target: cfg.Services.WebService},
	}
	if loc := sqllocator.Locate(reg, cfg.SQL.ConnectionStringKey, cfg.SQL.ConnectionStringValue); loc.Found {
		validations = append(validations, Validation{Type: TypeServiceSatisfied, Target: sqllocator.ServiceName(loc.Target)})
	}
	return append(validations, Validation{Type: TypePrefixSatisfied, Target: cfg.Services.ProductPrefix})
}

// RunValidations executes the provided validations and returns their results.
// Services are listed once, on first need.
func RunValidations(ctx context.Context, deps Deps, validations []Validation) ([]ValidationResult, error) {
	results := make([]ValidationResult, 0, len(validations))
	var failedMessages []string

	var (
		services []model.ServiceDescriptor
		listErr  error
		listed   bool
	)
	list := func() ([]model.ServiceDescriptor, error) {
		if !listed {
			services, listErr = deps.Services.ListServices(ctx)
			listed = true
		}
		return services, listErr
	}

	for _, val := range validations {
		result := ValidationResult{Validation: val}

		var err error
		switch val.Type {
		case TypePathAbsent:
			err = CheckPathAbsent(deps.FS, val.Target)
		case TypeRegistryKeyAbsent:
			err = CheckRegistryKeyAbsent(deps.Registry, val.Target)
		case TypeServiceSatisfied:
			var svcs []model.ServiceDescriptor
			if svcs, err = list(); err == nil {
				err = CheckServiceSatisfied(svcs, val.Target)
			}
		case TypePrefixSatisfied:
			var svcs []model.ServiceDescriptor
			if svcs, err = list(); err == nil {
				err = CheckPrefixSatisfied(svcs, val.Target)
			}
		default:
			err = remedyerrors.NewValidationError("validation.type", fmt.Sprintf("unknown validation type %q", val.Type), nil)
		}

		if err != nil {
			result.Passed = false
			result.Message = err.Error()
			result.Error = err
			failedMessages = append(failedMessages, err.Error())
		} else {
			result.Passed = true
			result.Message = "passed"
		}

		results = append(results, result)
	}

	if len(failedMessages) > 0 {
		combined := strings.Join(failedMessages, "; ")
		return results, fmt.Errorf("validations failed: %s", combined)
	}

	return results, nil
}
