// Package uninstall removes the failover add-on through its registered
// uninstall command.
package uninstall

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/failover-remedy/internal/engine"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// StepName identifies the step in reports and the journal.
const StepName = "uninstall-failover"

// Entry is an installed-application registration.
type Entry struct {
	Branch          string
	Key             string
	DisplayName     string
	UninstallString string
}

// Find searches each branch, in order, for a subkey whose DisplayName equals
// displayName exactly. Missing branches are skipped; subkeys that cannot be
// read are ignored. An error is returned only when nothing was found and at
// least one branch could not be enumerated.
func Find(reg ports.RegistryReader, branches []string, displayName string) (Entry, bool, error) {
	var firstErr error
	for _, branch := range branches {
		subkeys, err := reg.ListSubkeys(ports.HiveLocalMachine, branch)
		if err != nil {
			if !errors.Is(err, remedyerrors.ErrNotFound) && firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, sub := range subkeys {
			key := branch + `\` + sub
			name, ok, err := reg.ReadValue(ports.HiveLocalMachine, key, "DisplayName")
			if err != nil || !ok || name != displayName {
				continue
			}
			uninstall, _, _ := reg.ReadValue(ports.HiveLocalMachine, key, "UninstallString")
			return Entry{
				Branch:          branch,
				Key:             key,
				DisplayName:     name,
				UninstallString: uninstall,
			}, true, nil
		}
	}
	return Entry{}, false, firstErr
}

// Command turns a registered install command into its uninstall form by
// replacing every occurrence of installFlag with uninstallFlag. quiet adds
// /qn unless the command already asks for a UI level.
func Command(uninstallString, installFlag, uninstallFlag string, quiet bool) string {
	cmd := strings.ReplaceAll(strings.TrimSpace(uninstallString), installFlag, uninstallFlag)
	if quiet && !strings.Contains(strings.ToLower(cmd), "/q") {
		cmd += " /qn"
	}
	return cmd
}

// New returns the uninstall step.
func New() engine.Step {
	return engine.NewStep(StepName, run)
}

func run(execCtx *engine.ExecutionContext) model.StepResult {
	cfg := execCtx.Config.Product
	ctx := execCtx.Ctx()
	log := execCtx.Log().With("step", StepName)

	entry, found, err := Find(execCtx.Registry, cfg.UninstallBranches, cfg.DisplayName)
	if err != nil {
		return model.StepResult{
			Step:    StepName,
			Outcome: model.OutcomeUnknownFailure,
			Message: fmt.Sprintf("Error during uninstallation: %v", err),
			Error:   err,
		}
	}
	if !found || strings.TrimSpace(entry.UninstallString) == "" {
		return model.NewResult(StepName, model.OutcomeNotFound,
			fmt.Sprintf("%s not found in registry.", cfg.DisplayName))
	}

	command := Command(entry.UninstallString, cfg.InstallFlag, cfg.UninstallFlag, cfg.Quiet)
	log.Info(ctx, "running uninstall command", "key", entry.Key, "command", command)

	code, err := execCtx.Processes.Run(ctx, cfg.Shell, []string{"/C", command}, ports.RunOptions{})
	if err != nil {
		return model.StepResult{
			Step:    StepName,
			Outcome: model.OutcomeUnknownFailure,
			Message: fmt.Sprintf("Error during uninstallation: %v", err),
			Error:   err,
			Actions: []string{model.ActionUninstall},
		}
	}
	if code != 0 {
		return model.StepResult{
			Step:    StepName,
			Outcome: model.OutcomeUnknownFailure,
			Message: fmt.Sprintf("Uninstallation failed with exit code: %d", code),
			Error:   remedyerrors.NewExecutionError(StepName, fmt.Errorf("exit code %d", code)),
			Actions: []string{model.ActionUninstall},
		}
	}

	return model.NewResult(StepName, model.OutcomeSuccess, "Uninstallation completed successfully.").
		WithActions(model.ActionUninstall)
}
