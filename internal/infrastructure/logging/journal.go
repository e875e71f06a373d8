package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
)

// Journal is the persistent, append-only record of step outcomes. Each record
// is a single line: "<RFC3339 timestamp> | <step> | <message>". Nested
// per-service results are written after their parent as "<step>/<service>".
type Journal struct {
	mu     sync.Mutex
	closer io.Closer
	out    zerolog.Logger
	now    func() time.Time
}

// OpenJournal opens path in append mode, creating it and its parent directory
// when missing. The file stays open until Close.
func OpenJournal(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return newJournal(f, f, time.Now), nil
}

// NewJournal writes records to w. The caller owns w.
func NewJournal(w io.Writer) *Journal {
	return newJournal(w, nil, time.Now)
}

func newJournal(w io.Writer, closer io.Closer, now func() time.Time) *Journal {
	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.TimestampFieldName, zerolog.MessageFieldName},
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprintf("%v |", i)
		},
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf("%v", i)
		},
	}
	return &Journal{
		closer: closer,
		out:    zerolog.New(console),
		now:    now,
	}
}

// Record writes one line for the given label and message.
func (j *Journal) Record(label, message string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.out.Log().
		Time(zerolog.TimestampFieldName, j.now()).
		Msg(label + " | " + singleLine(message))
}

// Emit implements ports.ResultSink.
func (j *Journal) Emit(result model.StepResult) {
	message := result.Message
	if strings.TrimSpace(message) == "" {
		message = string(result.Outcome)
	}
	j.Record(result.Step, message)
	for _, detail := range result.Details {
		j.Emit(model.StepResult{
			Step:    result.Step + "/" + detail.Step,
			Outcome: detail.Outcome,
			Message: detail.Message,
			Details: detail.Details,
		})
	}
}

// Close releases the underlying file, if the journal opened one.
func (j *Journal) Close() error {
	if j == nil || j.closer == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	err := j.closer.Close()
	j.closer = nil
	return err
}

func singleLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", "; ")
	return strings.ReplaceAll(s, "\n", "; ")
}

var _ ports.ResultSink = (*Journal)(nil)
