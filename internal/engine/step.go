package engine

import "github.com/alexisbeaulieu97/failover-remedy/internal/model"

// Step is one unit of the remediation pipeline. Run must always return a
// result; expected conditions such as "already absent" are outcomes, not
// panics or errors.
type Step interface {
	Name() string
	Run(execCtx *ExecutionContext) model.StepResult
}

type stepFunc struct {
	name string
	fn   func(*ExecutionContext) model.StepResult
}

// NewStep adapts a function to Step.
func NewStep(name string, fn func(*ExecutionContext) model.StepResult) Step {
	return &stepFunc{name: name, fn: fn}
}

func (s *stepFunc) Name() string { return s.name }

func (s *stepFunc) Run(execCtx *ExecutionContext) model.StepResult {
	return s.fn(execCtx)
}
