package model

import (
	"time"
)

// Actions recorded on a StepResult when a step mutates system state.
const (
	ActionUninstall    = "uninstall"
	ActionDelete       = "delete"
	ActionSetStartMode = "set-start-mode"
	ActionStart        = "start"
	ActionWait         = "wait"
	ActionRun          = "run"
)

// StepResult captures the outcome of executing a single step.
type StepResult struct {
	Step      string
	Outcome   Outcome
	Message   string
	Error     error
	Actions   []string
	Details   []StepResult
	Duration  time.Duration
	Timestamp time.Time
}

// NewResult builds a result without an underlying error.
func NewResult(step string, outcome Outcome, message string) StepResult {
	return StepResult{Step: step, Outcome: outcome, Message: message}
}

// FailureResult builds a result classified from err.
func FailureResult(step string, err error, message string) StepResult {
	return StepResult{Step: step, Outcome: Classify(err), Message: message, Error: err}
}

// WithActions returns a copy of the result carrying the supplied actions.
func (r StepResult) WithActions(actions ...string) StepResult {
	r.Actions = append(append([]string(nil), r.Actions...), actions...)
	return r
}

// WithDetails returns a copy of the result carrying nested per-target results.
func (r StepResult) WithDetails(details []StepResult) StepResult {
	r.Details = append([]StepResult(nil), details...)
	return r
}

// Mutated reports whether the step issued any state-changing action.
func (r StepResult) Mutated() bool {
	return len(r.Actions) > 0
}

// HasAction reports whether the named action was issued.
func (r StepResult) HasAction(action string) bool {
	for _, a := range r.Actions {
		if a == action {
			return true
		}
	}
	return false
}
