// Package reregister re-registers the management server with its cluster
// through the vendor configuration tool.
package reregister

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/failover-remedy/internal/engine"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// StepName identifies the step in reports and the journal.
const StepName = "reregister"

// New returns the re-registration step.
func New() engine.Step {
	return engine.NewStep(StepName, run)
}

func run(execCtx *engine.ExecutionContext) model.StepResult {
	cfg := execCtx.Config.Reregister
	log := execCtx.Log().With("step", StepName)
	tool := filepath.Base(strings.ReplaceAll(cfg.Executable, `\`, "/"))

	exists, err := execCtx.FS.Exists(cfg.Executable)
	if err != nil {
		return model.FailureResult(StepName, err, fmt.Sprintf("Error: Could not check for %s: %v", tool, err))
	}
	if !exists {
		return model.NewResult(StepName, model.OutcomeNotFound, fmt.Sprintf("%s not found at %s.", tool, cfg.Executable))
	}

	ctx, cancel := context.WithTimeout(execCtx.Ctx(), cfg.Timeout)
	defer cancel()

	args := execCtx.Config.ReregisterArgs()
	log.Info(ctx, "running configurator", "executable", cfg.Executable, "args", strings.Join(args, " "), "elevated", cfg.Elevated)

	code, err := execCtx.Processes.Run(ctx, cfg.Executable, args, ports.RunOptions{
		Elevated:     cfg.Elevated,
		PollInterval: cfg.PollInterval,
	})
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		res := model.NewResult(StepName, model.OutcomeTimeout,
			fmt.Sprintf("Timeout: %s did not exit within %s.", tool, cfg.Timeout))
		res.Error = fmt.Errorf("%w: %v", remedyerrors.ErrTimeout, err)
		return res.WithActions(model.ActionRun)
	case errors.Is(err, context.Canceled):
		return model.FailureResult(StepName, err, "Re-registration cancelled.").WithActions(model.ActionRun)
	case err != nil:
		return model.FailureResult(StepName, err, fmt.Sprintf("Error during re-registration: %v", err)).WithActions(model.ActionRun)
	case code != 0:
		return model.StepResult{
			Step:    StepName,
			Outcome: model.OutcomeUnknownFailure,
			Message: fmt.Sprintf("Re-registration failed with exit code: %d", code),
			Error:   remedyerrors.NewExecutionError(StepName, fmt.Errorf("exit code %d", code)),
			Actions: []string{model.ActionRun},
		}
	}

	return model.NewResult(StepName, model.OutcomeSuccess, "Re-registration completed successfully.").
		WithActions(model.ActionRun)
}
