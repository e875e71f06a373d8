package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	title := "Remediation"
	if strings.TrimSpace(m.title) != "" {
		title = m.title
	}
	sections = append(sections, titleStyle.Render(title))

	progress := components.NewProgress(m.total).View(m.completed)
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	entries := components.NewStepList(m.order, m.steps).Entries()
	if len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Steps"))
		sections = append(sections, m.renderStepEntries(entries))
	}

	summary := components.NewSummary(components.SummaryData{
		Total:       m.total,
		Completed:   m.completed,
		Failures:    m.failures,
		Finished:    m.finished,
		Cancelled:   m.cancelled,
		Validations: m.validations,
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) renderStepEntries(entries []components.StepEntry) string {
	running := m.current()
	var lines []string
	for _, entry := range entries {
		if !m.done[entry.Name] {
			icon := pendingStyle.Render("…")
			if entry.Name == running {
				icon = runningStyle.Render("⏳")
			}
			lines = append(lines, fmt.Sprintf(" %s %s", icon, entry.Name))
			continue
		}
		res := entry.Result
		line := fmt.Sprintf(" %s %s", OutcomeIcon(res.Outcome), entry.Name)
		if strings.TrimSpace(res.Message) != "" {
			line = fmt.Sprintf("%s: %s", line, res.Message)
		}
		if res.Duration > 0 {
			line = fmt.Sprintf("%s (%s)", line, res.Duration.Truncate(10*time.Millisecond))
		}
		lines = append(lines, line)
		for _, detail := range res.Details {
			lines = append(lines, detailStyle.Render(fmt.Sprintf("%s %s: %s", OutcomeIcon(detail.Outcome), detail.Step, detail.Message)))
		}
	}
	return strings.Join(lines, "\n")
}

// OutcomeIcon returns the glyph representing a step outcome.
func OutcomeIcon(outcome model.Outcome) string {
	switch outcome {
	case model.OutcomeSuccess:
		return successStyle.Render("✓")
	case model.OutcomeNotFound, model.OutcomeNoMatch:
		return absentStyle.Render("⊘")
	case model.OutcomeTimeout:
		return timeoutStyle.Render("⌛")
	case model.OutcomePermissionDenied, model.OutcomeIOFailure, model.OutcomeUnknownFailure:
		return failureStyle.Render("✗")
	default:
		return pendingStyle.Render("…")
	}
}
