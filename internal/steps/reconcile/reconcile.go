// Package reconcile drives OS services toward Automatic+Running.
package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/failover-remedy/internal/engine"
	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
)

// DefaultWaitTimeout bounds the wait for a service to reach Running.
const DefaultWaitTimeout = 10 * time.Second

// Options tunes a Reconciler.
type Options struct {
	WaitTimeout time.Duration
	// ConfirmStartMode re-lists services after a start-mode change and
	// records whether the change is visible.
	ConfirmStartMode bool
}

// Reconciler inspects services through the handle channel and changes start
// modes through the elevated channel.
type Reconciler struct {
	services ports.ServiceController
	modes    ports.StartModeChanger
	logger   ports.Logger
	opts     Options
}

// NewReconciler builds a Reconciler. A nil logger discards output.
func NewReconciler(services ports.ServiceController, modes ports.StartModeChanger, logger ports.Logger, opts Options) *Reconciler {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = DefaultWaitTimeout
	}
	return &Reconciler{
		services: services,
		modes:    modes,
		logger:   logger.With("component", "reconcile"),
		opts:     opts,
	}
}

// FromContext builds a Reconciler from the run's providers and settings.
func FromContext(execCtx *engine.ExecutionContext) *Reconciler {
	var opts Options
	if execCtx.Config != nil {
		opts.WaitTimeout = execCtx.Config.Services.WaitTimeout
		opts.ConfirmStartMode = execCtx.Config.Services.ConfirmStartMode
	}
	return NewReconciler(execCtx.Services, execCtx.StartModes, execCtx.Log(), opts)
}

// Reconcile looks up serviceName and reconciles it.
func (r *Reconciler) Reconcile(ctx context.Context, stepName, serviceName string) model.StepResult {
	services, err := r.services.ListServices(ctx)
	if err != nil {
		return model.FailureResult(stepName, err, fmt.Sprintf("Error: Failed to list services: %v", err))
	}
	desc, ok := model.FindService(services, serviceName)
	if !ok {
		return model.NewResult(stepName, model.OutcomeNotFound, fmt.Sprintf("%s service not found.", serviceName))
	}
	return r.ReconcileDescriptor(ctx, stepName, desc)
}

// ReconcileDescriptor drives one already-listed service to the goal state.
// A failed start-mode change does not prevent the start attempt; the first
// failure observed decides the outcome.
func (r *Reconciler) ReconcileDescriptor(ctx context.Context, stepName string, desc model.ServiceDescriptor) model.StepResult {
	log := r.logger.With("service", desc.Name)
	var (
		actions []string
		notes   []string
		failure *model.StepResult
	)
	fail := func(res model.StepResult) {
		if failure == nil {
			failure = &res
		}
	}

	if desc.StartMode != model.StartAutomatic {
		actions = append(actions, model.ActionSetStartMode)
		log.Info(ctx, "changing start mode", "from", string(desc.StartMode))
		if err := r.modes.SetStartMode(ctx, desc.Name, model.StartAutomatic); err != nil {
			log.Warn(ctx, "start mode change failed", "error", err)
			fail(model.FailureResult(stepName, err,
				withHint(err, fmt.Sprintf("Error: Failed to set %s to Automatic: %v", desc.Name, err))))
		} else {
			notes = append(notes, r.startModeNote(ctx, desc))
		}
	}

	switch desc.RunState {
	case model.StateRunning:
		notes = append(notes, fmt.Sprintf("%s is already running.", desc.Name))
	case model.StateStopped:
		actions = append(actions, model.ActionStart)
		log.Info(ctx, "starting service")
		if err := r.services.Start(ctx, desc.Name); err != nil {
			log.Warn(ctx, "start failed", "error", err)
			fail(model.FailureResult(stepName, err,
				withHint(err, fmt.Sprintf("Error: Failed to start %s: %v", desc.Name, err))))
			break
		}
		actions = append(actions, model.ActionWait)
		if res, ok := r.waitRunning(ctx, stepName, desc.Name); !ok {
			fail(res)
		} else {
			notes = append(notes, fmt.Sprintf("%s started successfully.", desc.Name))
		}
	default:
		actions = append(actions, model.ActionWait)
		log.Info(ctx, "waiting for transitional service")
		if res, ok := r.waitRunning(ctx, stepName, desc.Name); !ok {
			fail(res)
		} else {
			notes = append(notes, fmt.Sprintf("%s reached running state.", desc.Name))
		}
	}

	if failure != nil {
		return failure.WithActions(actions...)
	}
	return model.NewResult(stepName, model.OutcomeSuccess, strings.Join(notes, " ")).WithActions(actions...)
}

func (r *Reconciler) waitRunning(ctx context.Context, stepName, name string) (model.StepResult, bool) {
	reached, err := r.services.WaitForState(ctx, name, model.StateRunning, r.opts.WaitTimeout)
	if err != nil {
		return model.FailureResult(stepName, err, fmt.Sprintf("Error: Failed waiting for %s: %v", name, err)), false
	}
	if !reached {
		return model.NewResult(stepName, model.OutcomeTimeout,
			fmt.Sprintf("Timeout: %s did not reach running state within %s.", name, r.opts.WaitTimeout)), false
	}
	return model.StepResult{}, true
}

func (r *Reconciler) startModeNote(ctx context.Context, desc model.ServiceDescriptor) string {
	if !r.opts.ConfirmStartMode {
		return fmt.Sprintf("%s start mode change to Automatic requested.", desc.Name)
	}
	services, err := r.services.ListServices(ctx)
	if err == nil {
		if current, ok := model.FindService(services, desc.Name); ok && current.StartMode == model.StartAutomatic {
			return fmt.Sprintf("%s start mode set to Automatic (confirmed).", desc.Name)
		}
	}
	return fmt.Sprintf("%s start mode change to Automatic requested (unconfirmed).", desc.Name)
}

// ReconcilePrefix reconciles every service whose name starts with prefix and
// folds the per-service results into one aggregate whose outcome is the
// first non-success child outcome.
func (r *Reconciler) ReconcilePrefix(ctx context.Context, stepName, prefix string) model.StepResult {
	services, err := r.services.ListServices(ctx)
	if err != nil {
		return model.FailureResult(stepName, err, fmt.Sprintf("Error: Failed to list services: %v", err))
	}
	matched := model.FilterByPrefix(services, prefix)
	if len(matched) == 0 {
		return model.NewResult(stepName, model.OutcomeNoMatch, "No matching services found.")
	}

	details := make([]model.StepResult, 0, len(matched))
	names := make([]string, 0, len(matched))
	outcome := model.OutcomeSuccess
	var (
		actions  []string
		firstErr error
	)
	for _, desc := range matched {
		child := r.ReconcileDescriptor(ctx, desc.Name, desc)
		details = append(details, child)
		names = append(names, desc.Name)
		for _, a := range child.Actions {
			if !contains(actions, a) {
				actions = append(actions, a)
			}
		}
		if outcome == model.OutcomeSuccess && child.Outcome != model.OutcomeSuccess {
			outcome = child.Outcome
			firstErr = child.Error
		}
	}

	failed := 0
	for _, d := range details {
		if !d.Outcome.IsSuccess() {
			failed++
		}
	}
	message := fmt.Sprintf("%d of %d services reconciled: %s", len(details)-failed, len(details), strings.Join(names, ", "))
	res := model.NewResult(stepName, outcome, message).WithActions(actions...).WithDetails(details)
	res.Error = firstErr
	return res
}

func withHint(err error, message string) string {
	if model.Classify(err) == model.OutcomePermissionDenied {
		return message + " Try running as administrator."
	}
	return message
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
