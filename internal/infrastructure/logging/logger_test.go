package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerIncludesCorrelationIDAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:    &buf,
		Level:     "debug",
		Component: "reconcile",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := WithCorrelationID(context.Background(), "abc123")
	logger.Info(ctx, "service started", "service", "W3SVC")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log output, got empty string")
	}

	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to parse log line %q: %v", line, err)
	}

	if payload["component"] != "reconcile" {
		t.Fatalf("expected component field, got %v", payload["component"])
	}
	if payload["run_id"] != "abc123" {
		t.Fatalf("expected run_id to be abc123, got %v", payload["run_id"])
	}
	if payload["service"] != "W3SVC" {
		t.Fatalf("expected service to be recorded, got %v", payload["service"])
	}
	if payload["message"] != "service started" {
		t.Fatalf("expected message to be recorded, got %v", payload["message"])
	}
	if payload["level"] != "info" {
		t.Fatalf("expected info level, got %v", payload["level"])
	}
}

func TestLoggerWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := logger.With("component", "engine")
	child.Warn(context.Background(), "step failed", "step", "delete-wizard-file", "error", errors.New("access denied"))

	line := strings.TrimSpace(buf.String())
	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}

	if payload["component"] != "engine" {
		t.Fatalf("expected component=engine, got %v", payload["component"])
	}
	if payload["step"] != "delete-wizard-file" {
		t.Fatalf("expected step field, got %v", payload["step"])
	}
	if payload["error"] != "access denied" {
		t.Fatalf("expected error text, got %v", payload["error"])
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: "warn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Debug(context.Background(), "hidden")
	logger.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %s", buf.String())
	}

	logger.Error(context.Background(), "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected error entry, got %s", buf.String())
	}
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "chatty"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLoggerHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, HumanReadable: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info(context.Background(), "remediation finished", "steps", 8)
	out := buf.String()
	if !strings.Contains(out, "remediation finished") || !strings.Contains(out, "steps=") {
		t.Fatalf("expected console formatted output, got %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected non-JSON output, got %q", out)
	}
}

func TestNoOpLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noOp := NewNoOpLogger()
	noOp.Info(context.Background(), "hello world")

	if buf.Len() != 0 {
		t.Fatalf("expected no output from noop logger, got %s", buf.String())
	}

	if noOp.With("key", "value") != noOp {
		t.Fatalf("expected With to return same no-op logger instance")
	}

	logger.Info(context.Background(), "emitted")
	if buf.Len() == 0 {
		t.Fatal("expected base logger to write output")
	}
}
