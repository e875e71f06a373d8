package model

import (
	"encoding/json"
	"time"
)

// Report is the ordered, append-only record of one remediation run.
// Insertion order equals execution order.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	results    []StepResult
}

// NewReport creates an empty report stamped with the start time.
func NewReport(start time.Time) *Report {
	return &Report{StartedAt: start}
}

// Append records the next step result.
func (r *Report) Append(result StepResult) {
	r.results = append(r.results, result)
}

// Results returns a copy of the recorded results in execution order.
func (r *Report) Results() []StepResult {
	if r == nil {
		return nil
	}
	out := make([]StepResult, len(r.results))
	copy(out, r.results)
	return out
}

// Len returns the number of recorded results.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.results)
}

// Counts tallies top-level results by outcome.
func (r *Report) Counts() map[Outcome]int {
	counts := make(map[Outcome]int, len(validOutcomes))
	if r == nil {
		return counts
	}
	for _, res := range r.results {
		counts[res.Outcome]++
	}
	return counts
}

// AllSatisfied reports whether every step either succeeded or found nothing
// left to do.
func (r *Report) AllSatisfied() bool {
	if r == nil {
		return true
	}
	for _, res := range r.results {
		if !res.Outcome.IsSatisfied() {
			return false
		}
	}
	return true
}

// Duration is the wall time between start and finish.
func (r *Report) Duration() time.Duration {
	if r == nil || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

type jsonResult struct {
	Step      string       `json:"step"`
	Outcome   string       `json:"outcome"`
	Message   string       `json:"message"`
	Error     string       `json:"error,omitempty"`
	Actions   []string     `json:"actions,omitempty"`
	Details   []jsonResult `json:"details,omitempty"`
	Duration  float64      `json:"duration_seconds"`
	Timestamp string       `json:"timestamp,omitempty"`
}

type jsonReport struct {
	StartedAt  string         `json:"started_at"`
	FinishedAt string         `json:"finished_at,omitempty"`
	Duration   float64        `json:"duration_seconds"`
	Satisfied  bool           `json:"all_satisfied"`
	Counts     map[string]int `json:"counts"`
	Results    []jsonResult   `json:"results"`
}

// MarshalJSON renders the report for machine consumption.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := jsonReport{
		StartedAt: r.StartedAt.Format(time.RFC3339),
		Duration:  r.Duration().Seconds(),
		Satisfied: r.AllSatisfied(),
		Counts:    make(map[string]int),
		Results:   toJSONResults(r.results),
	}
	if !r.FinishedAt.IsZero() {
		out.FinishedAt = r.FinishedAt.Format(time.RFC3339)
	}
	for outcome, n := range r.Counts() {
		out.Counts[string(outcome)] = n
	}
	return json.Marshal(out)
}

func toJSONResults(results []StepResult) []jsonResult {
	out := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Step:     res.Step,
			Outcome:  string(res.Outcome),
			Message:  res.Message,
			Actions:  res.Actions,
			Duration: res.Duration.Seconds(),
		}
		if res.Error != nil {
			jr.Error = res.Error.Error()
		}
		if !res.Timestamp.IsZero() {
			jr.Timestamp = res.Timestamp.Format(time.RFC3339)
		}
		if len(res.Details) > 0 {
			jr.Details = toJSONResults(res.Details)
		}
		out = append(out, jr)
	}
	return out
}
