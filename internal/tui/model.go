package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/tui/components"
)

// StepCompleteMsg reports that a step has finished execution.
type StepCompleteMsg struct {
	Result model.StepResult
}

// ValidationMsg carries the outcome of a validation.
type ValidationMsg struct {
	Passed  bool
	Message string
}

// DoneMsg tells the program the run is over and it may exit.
type DoneMsg struct{}

type tickMsg struct{}

// Model contains the Bubbletea state for a remediation run.
type Model struct {
	title       string
	steps       map[string]model.StepResult
	done        map[string]bool
	order       []string
	validations []components.ValidationStatus
	total       int
	completed   int
	failures    int
	finished    bool
	cancelled   bool
}

// NewModel constructs a model tracking the named steps in execution order.
func NewModel(title string, stepNames []string) Model {
	m := Model{
		title:       title,
		steps:       make(map[string]model.StepResult),
		done:        make(map[string]bool),
		order:       make([]string, 0, len(stepNames)),
		validations: make([]components.ValidationStatus, 0),
	}
	for _, name := range stepNames {
		m.ensureStep(name)
	}
	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// TotalSteps returns the total number of steps tracked by the model.
func (m Model) TotalSteps() int {
	return m.total
}

// CompletedSteps returns the number of completed steps.
func (m Model) CompletedSteps() int {
	return m.completed
}

// Failures returns the number of completed steps that left work undone.
func (m Model) Failures() int {
	return m.failures
}

// IsFinished reports whether execution has completed.
func (m Model) IsFinished() bool {
	return m.finished
}

// Cancelled reports whether the operator interrupted the run.
func (m Model) Cancelled() bool {
	return m.cancelled
}

func (m *Model) ensureStep(name string) {
	if name == "" {
		return
	}
	if _, exists := m.steps[name]; !exists {
		m.steps[name] = model.StepResult{Step: name}
		m.order = append(m.order, name)
		m.total++
	}
}

// current is the step presumed to be running: the first one without a result.
func (m Model) current() string {
	if m.finished {
		return ""
	}
	for _, name := range m.order {
		if !m.done[name] {
			return name
		}
	}
	return ""
}

func (m *Model) markFinishedIfComplete() {
	if m.total > 0 && m.completed >= m.total {
		m.finished = true
	}
}
