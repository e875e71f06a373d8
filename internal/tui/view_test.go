package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/tui/components"
)

func TestViewRendersStepsAndDetails(t *testing.T) {
	m := NewModel("Failover remediation", []string{"delete-wizard-file", "reconcile-product-services", "reregister"})
	m = complete(t, m, model.NewResult("delete-wizard-file", model.OutcomeSuccess, "failoverwizard.json deleted successfully."))
	m = complete(t, m, model.NewResult("reconcile-product-services", model.OutcomeTimeout, "1 of 2 services reconciled").
		WithDetails([]model.StepResult{
			model.NewResult("MilestoneEventServerService", model.OutcomeSuccess, "already running"),
			model.NewResult("MilestoneLogServer", model.OutcomeTimeout, "did not start"),
		}))

	view := m.View()
	require.Contains(t, view, "Failover remediation")
	require.Contains(t, view, "2/3")
	require.Contains(t, view, "delete-wizard-file: failoverwizard.json deleted successfully.")
	require.Contains(t, view, "MilestoneLogServer: did not start")
	require.Contains(t, view, "⏳ reregister")
	require.Contains(t, view, "Steps: 2/3 completed")
}

func TestViewDefaultsTitleAndShowsDuration(t *testing.T) {
	m := NewModel("", []string{"reregister"})
	res := model.NewResult("reregister", model.OutcomeSuccess, "done")
	res.Duration = 1234 * time.Millisecond
	m = complete(t, m, res)

	view := m.View()
	require.Contains(t, view, "Remediation")
	require.Contains(t, view, "(1.23s)")
	require.Contains(t, view, "Remediation finished successfully")
}

func TestOutcomeIcon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outcome  model.Outcome
		expected string
	}{
		{model.OutcomeSuccess, "✓"},
		{model.OutcomeNotFound, "⊘"},
		{model.OutcomeNoMatch, "⊘"},
		{model.OutcomeTimeout, "⌛"},
		{model.OutcomePermissionDenied, "✗"},
		{model.OutcomeIOFailure, "✗"},
		{model.OutcomeUnknownFailure, "✗"},
		{"", "…"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.outcome), func(t *testing.T) {
			t.Parallel()
			require.Contains(t, OutcomeIcon(tt.outcome), tt.expected)
		})
	}
}

func TestWriteReport(t *testing.T) {
	start := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	report := model.NewReport(start)
	report.Append(model.NewResult("uninstall-failover", model.OutcomeNotFound, "XProtect Management Server Failover not found in registry."))
	report.Append(model.NewResult("reconcile-product-services", model.OutcomeSuccess, "").
		WithDetails([]model.StepResult{model.NewResult("MilestoneLogServer", model.OutcomeSuccess, "MilestoneLogServer started successfully.")}))
	report.Append(model.NewResult("reregister", model.OutcomeUnknownFailure, "Re-registration failed with exit code: 5"))

	var buf bytes.Buffer
	WriteReport(&buf, report, []components.ValidationStatus{{Passed: true, Message: "passed"}}, false)

	lines := strings.Split(buf.String(), "\n")
	require.Equal(t, "[--] uninstall-failover: XProtect Management Server Failover not found in registry.", lines[0])
	require.Equal(t, "[ok] reconcile-product-services: success", lines[1])
	require.Equal(t, "    [ok] MilestoneLogServer: MilestoneLogServer started successfully.", lines[2])
	require.Equal(t, "[!!] reregister: Re-registration failed with exit code: 5", lines[3])
	require.Contains(t, buf.String(), "Remediation finished with 1 failed step")
	require.Contains(t, buf.String(), "✓ passed")
}
