package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
)

var journalLine = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(Z|[+-]\d{2}:\d{2}) \| [^|]+ \| .+$`)

func fixedClock() time.Time {
	return time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)
}

func TestJournalWritesDocumentedFormat(t *testing.T) {
	var buf bytes.Buffer
	j := newJournal(&buf, nil, fixedClock)

	j.Emit(model.NewResult("delete-wizard-file", model.OutcomeSuccess, "failoverwizard.json deleted successfully."))

	line := strings.TrimRight(buf.String(), "\n")
	require.Equal(t, "2026-10-17T08:30:00Z | delete-wizard-file | failoverwizard.json deleted successfully.", line)
	require.Regexp(t, journalLine, line)
}

func TestJournalWritesNestedResults(t *testing.T) {
	var buf bytes.Buffer
	j := newJournal(&buf, nil, fixedClock)

	parent := model.NewResult("reconcile-product-services", model.OutcomeSuccess, "2 services reconciled").
		WithDetails([]model.StepResult{
			model.NewResult("MilestoneEventServerService", model.OutcomeSuccess, "already running"),
			model.NewResult("MilestoneLogServer", model.OutcomeSuccess, "started"),
		})
	j.Emit(parent)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "| reconcile-product-services/MilestoneEventServerService | already running")
	require.Contains(t, lines[2], "| reconcile-product-services/MilestoneLogServer | started")
	for _, line := range lines {
		require.Regexp(t, journalLine, line)
	}
}

func TestJournalFlattensMultilineMessagesAndFallsBackToOutcome(t *testing.T) {
	var buf bytes.Buffer
	j := newJournal(&buf, nil, fixedClock)

	j.Emit(model.NewResult("uninstall-failover", model.OutcomeUnknownFailure, "first\nsecond"))
	j.Emit(model.NewResult("reregister", model.OutcomeTimeout, ""))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasSuffix(lines[0], "| uninstall-failover | first; second"))
	require.True(t, strings.HasSuffix(lines[1], "| reregister | timeout"))
}

func TestOpenJournalAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "remedy.log")

	first, err := OpenJournal(path)
	require.NoError(t, err)
	first.Record("run", "first run")
	require.NoError(t, first.Close())

	second, err := OpenJournal(path)
	require.NoError(t, err)
	second.Record("run", "second run")
	require.NoError(t, second.Close())
	require.NoError(t, second.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "| run | first run")
	require.Contains(t, lines[1], "| run | second run")
}
