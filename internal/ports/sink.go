package ports

import "github.com/alexisbeaulieu97/failover-remedy/internal/model"

// ResultSink receives each step result as soon as the engine finalises it.
// Sinks are called on the engine goroutine and must not block for long.
type ResultSink interface {
	Emit(result model.StepResult)
}

// SinkFunc adapts a function to ResultSink.
type SinkFunc func(model.StepResult)

// Emit implements ResultSink.
func (f SinkFunc) Emit(result model.StepResult) {
	if f != nil {
		f(result)
	}
}
