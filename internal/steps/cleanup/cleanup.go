// Package cleanup removes the leftovers the add-on's uninstaller does not:
// its install folder, the failover wizard file and its uninstall registry
// entry.
package cleanup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/failover-remedy/internal/config"
	"github.com/alexisbeaulieu97/failover-remedy/internal/engine"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	"github.com/alexisbeaulieu97/failover-remedy/internal/steps/uninstall"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// Step names.
const (
	FolderStepName = "delete-install-folder"
	FileStepName   = "delete-wizard-file"
	KeyStepName    = "delete-uninstall-key"
)

// AdminHint is appended to every permission failure.
const AdminHint = "Try running as administrator."

// Kind selects how a path is removed.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// DeletePath removes path if it exists and reports what happened under step.
// It does not re-check the path afterwards.
func DeletePath(fsys ports.Filesystem, step, path string, kind Kind) model.StepResult {
	label := displayName(path, kind)

	exists, err := fsys.Exists(path)
	if err != nil {
		return failure(step, kind, err)
	}
	if !exists {
		return model.NewResult(step, model.OutcomeNotFound, fmt.Sprintf("%s not found.", label))
	}

	if kind == KindFolder {
		err = fsys.DeleteDirectoryRecursive(path)
	} else {
		err = fsys.DeleteFile(path)
	}
	if err != nil {
		return failure(step, kind, err).WithActions(model.ActionDelete)
	}

	return model.NewResult(step, model.OutcomeSuccess, fmt.Sprintf("%s deleted successfully.", label)).
		WithActions(model.ActionDelete)
}

func failure(step string, kind Kind, err error) model.StepResult {
	res := model.FailureResult(step, err, "")
	switch res.Outcome {
	case model.OutcomePermissionDenied:
		res.Message = fmt.Sprintf("Error: Insufficient permissions to delete the %s. %s", kind, AdminHint)
	case model.OutcomeIOFailure:
		res.Message = fmt.Sprintf("Error: Failed to delete %s due to IO issue: %v", kind, err)
	case model.OutcomeNotFound:
		res.Message = fmt.Sprintf("%s disappeared before it could be deleted.", strings.ToUpper(kind.String()[:1])+kind.String()[1:])
	default:
		res.Outcome = model.OutcomeUnknownFailure
		res.Message = fmt.Sprintf("Error: An unexpected error occurred: %v", err)
	}
	return res
}

// displayName names folders by their last path element ("XProtect
// Management Server Failover folder") and files by their file name.
func displayName(path string, kind Kind) string {
	trimmed := strings.TrimRight(path, `\/`)
	base := trimmed[strings.LastIndexAny(trimmed, `\/`)+1:]
	if base == "" {
		base = path
	}
	if kind == KindFolder {
		return base + " folder"
	}
	return base
}

// DeleteRegistryKey removes key and its subtree. A key that is already gone
// counts as success; the message says so.
func DeleteRegistryKey(reg ports.RegistryReader, step, key string) model.StepResult {
	return DeleteRegistryKeys(reg, step, []string{key})
}

// DeleteRegistryKeys removes each key and its subtree, stopping at the first
// failure. Keys that are already gone are skipped; when none existed the
// result is a success saying the entry was already absent.
func DeleteRegistryKeys(reg ports.RegistryReader, step string, keys []string) model.StepResult {
	deleted := 0
	for _, key := range keys {
		err := reg.DeleteKey(ports.HiveLocalMachine, key)
		switch {
		case err == nil:
			deleted++
			continue
		case errors.Is(err, remedyerrors.ErrNotFound):
			continue
		}

		res := model.FailureResult(step, err, "").WithActions(model.ActionDelete)
		if res.Outcome == model.OutcomePermissionDenied {
			res.Message = "Error: Insufficient permissions to delete the registry key. " + AdminHint
			return res
		}
		res.Message = fmt.Sprintf("Error: Failed to delete the registry key: %v", err)
		return res
	}

	if deleted == 0 {
		return model.NewResult(step, model.OutcomeSuccess, "Uninstall registry key already absent.")
	}
	return model.NewResult(step, model.OutcomeSuccess, "Uninstall registry key deleted successfully.").
		WithActions(model.ActionDelete)
}

// uninstallKeys lists the configured key plus any entry still registered
// under the product's display name. MSI entries are usually keyed by product
// code, so the display-name search catches what a fixed name misses.
func uninstallKeys(reg ports.RegistryReader, cfg *config.Config) []string {
	keys := []string{cfg.Cleanup.UninstallKey}
	entry, ok, _ := uninstall.Find(reg, cfg.Product.UninstallBranches, cfg.Product.DisplayName)
	if ok && !strings.EqualFold(entry.Key, cfg.Cleanup.UninstallKey) {
		keys = append(keys, entry.Key)
	}
	return keys
}

// NewFolderStep removes the add-on's install folder.
func NewFolderStep() engine.Step {
	return engine.NewStep(FolderStepName, func(execCtx *engine.ExecutionContext) model.StepResult {
		return DeletePath(execCtx.FS, FolderStepName, execCtx.Config.Cleanup.InstallFolder, KindFolder)
	})
}

// NewFileStep removes the failover wizard file.
func NewFileStep() engine.Step {
	return engine.NewStep(FileStepName, func(execCtx *engine.ExecutionContext) model.StepResult {
		return DeletePath(execCtx.FS, FileStepName, execCtx.Config.Cleanup.WizardFile, KindFile)
	})
}

// NewRegistryKeyStep removes the add-on's uninstall registry entry.
func NewRegistryKeyStep() engine.Step {
	return engine.NewStep(KeyStepName, func(execCtx *engine.ExecutionContext) model.StepResult {
		return DeleteRegistryKeys(execCtx.Registry, KeyStepName, uninstallKeys(execCtx.Registry, execCtx.Config))
	})
}
