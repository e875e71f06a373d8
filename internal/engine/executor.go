package engine

import (
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// Execute runs steps in order on the calling goroutine and returns one
// result per step. A failing, panicking or cancelled step never prevents
// the next one from running; the report always has len(steps) entries.
// The error return is reserved for an unusable execution context.
func Execute(execCtx *ExecutionContext, steps []Step) (*model.Report, error) {
	if execCtx == nil {
		return nil, remedyerrors.NewExecutionError("", fmt.Errorf("execution context is nil"))
	}
	if execCtx.Config == nil {
		return nil, remedyerrors.NewExecutionError("", fmt.Errorf("execution context config is nil"))
	}

	ctx := execCtx.Ctx()
	log := execCtx.Log().With("component", "engine")
	report := model.NewReport(time.Now())

	log.Info(ctx, "remediation started", "steps", len(steps))

	for i, step := range steps {
		result := runStep(execCtx, step)

		fields := []interface{}{
			"step", result.Step,
			"index", i + 1,
			"outcome", string(result.Outcome),
			"duration_ms", result.Duration.Milliseconds(),
		}
		if result.Error != nil {
			fields = append(fields, "error", result.Error)
		}
		if result.Outcome.IsFailure() {
			log.Warn(ctx, result.Message, fields...)
		} else {
			log.Info(ctx, result.Message, fields...)
		}

		report.Append(result)
		for _, sink := range execCtx.Sinks {
			if sink != nil {
				sink.Emit(result)
			}
		}
	}

	report.FinishedAt = time.Now()
	counts := report.Counts()
	log.Info(ctx, "remediation finished",
		"steps", report.Len(),
		"failures", report.Len()-satisfiedCount(counts),
		"duration_ms", report.Duration().Milliseconds(),
	)

	return report, nil
}

func runStep(execCtx *ExecutionContext, step Step) (result model.StepResult) {
	name := "unnamed"
	if step != nil {
		name = step.Name()
	}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := remedyerrors.NewExecutionError(name, fmt.Errorf("panic: %v", r))
			result = model.StepResult{
				Step:    name,
				Outcome: model.OutcomeUnknownFailure,
				Message: fmt.Sprintf("Error: step crashed: %v", r),
				Error:   err,
			}
		}
		if result.Step == "" {
			result.Step = name
		}
		if !result.Outcome.IsValid() {
			result.Outcome = model.OutcomeUnknownFailure
		}
		result.Duration = time.Since(start)
		if result.Timestamp.IsZero() {
			result.Timestamp = time.Now()
		}
	}()

	if step == nil {
		return model.FailureResult(name, remedyerrors.NewExecutionError(name, fmt.Errorf("step is nil")), "Error: step is not defined.")
	}

	if err := execCtx.Ctx().Err(); err != nil {
		return model.FailureResult(name, remedyerrors.NewExecutionError(name, err), fmt.Sprintf("Error: run cancelled before this step: %v", err))
	}

	return step.Run(execCtx)
}

func satisfiedCount(counts map[model.Outcome]int) int {
	n := 0
	for outcome, c := range counts {
		if outcome.IsSatisfied() {
			n += c
		}
	}
	return n
}
