package components

import (
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
)

// StepEntry represents a single step for rendering.
type StepEntry struct {
	Name   string
	Result model.StepResult
}

// StepList renders a list of steps with their current outcome.
type StepList struct {
	entries []StepEntry
}

// NewStepList constructs a step list component.
func NewStepList(order []string, steps map[string]model.StepResult) StepList {
	entries := make([]StepEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, StepEntry{Name: name, Result: steps[name]})
	}
	return StepList{entries: entries}
}

// Entries returns the ordered step entries.
func (s StepList) Entries() []StepEntry {
	clone := make([]StepEntry, len(s.entries))
	copy(clone, s.entries)
	return clone
}
