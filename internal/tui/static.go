package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/tui/components"
)

// StaticIcon is the uncoloured glyph for an outcome, used when output is not
// a terminal.
func StaticIcon(outcome model.Outcome) string {
	switch outcome {
	case model.OutcomeSuccess:
		return "[ok]"
	case model.OutcomeNotFound, model.OutcomeNoMatch:
		return "[--]"
	case model.OutcomeTimeout:
		return "[to]"
	default:
		return "[!!]"
	}
}

// StepLine formats one result for line-oriented output.
func StepLine(res model.StepResult) string {
	message := res.Message
	if strings.TrimSpace(message) == "" {
		message = res.Outcome.String()
	}
	return fmt.Sprintf("%s %s: %s", StaticIcon(res.Outcome), res.Step, message)
}

// WriteStep prints res and its nested per-service results.
func WriteStep(w io.Writer, res model.StepResult) {
	fmt.Fprintln(w, StepLine(res))
	for _, detail := range res.Details {
		fmt.Fprintf(w, "    %s\n", StepLine(detail))
	}
}

// WriteReport prints every result in report followed by the summary.
func WriteReport(w io.Writer, report *model.Report, validations []components.ValidationStatus, cancelled bool) {
	for _, res := range report.Results() {
		WriteStep(w, res)
	}
	WriteSummary(w, report, validations, cancelled)
}

// WriteSummary prints the closing summary and validation lines for report.
func WriteSummary(w io.Writer, report *model.Report, validations []components.ValidationStatus, cancelled bool) {
	failures := 0
	for _, res := range report.Results() {
		if !res.Outcome.IsSatisfied() {
			failures++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, components.NewSummary(components.SummaryData{
		Total:       report.Len(),
		Completed:   report.Len(),
		Failures:    failures,
		Finished:    true,
		Cancelled:   cancelled,
		Validations: validations,
	}).View())
}
