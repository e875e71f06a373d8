package model

import (
	"fmt"
	"strings"
)

// StartMode is the persisted policy controlling whether a service launches at boot.
type StartMode string

const (
	StartAutomatic StartMode = "Automatic"
	StartManual    StartMode = "Manual"
	StartDisabled  StartMode = "Disabled"
)

// ParseStartMode accepts the WMI and service-controller spellings.
func ParseStartMode(s string) (StartMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "automatic", "auto":
		return StartAutomatic, nil
	case "manual", "demand":
		return StartManual, nil
	case "disabled":
		return StartDisabled, nil
	default:
		return "", fmt.Errorf("unknown start mode %q", s)
	}
}

// RunState is a service's current liveness.
type RunState string

const (
	StateStopped RunState = "Stopped"
	StateRunning RunState = "Running"
	// StateOther covers transitional and paused states.
	StateOther RunState = "Other"
)

// ServiceDescriptor is a point-in-time snapshot of one OS service. It may be
// stale as soon as it is read.
type ServiceDescriptor struct {
	Name      string
	StartMode StartMode
	RunState  RunState
}

// Satisfied reports whether the service is already Automatic and Running.
func (d ServiceDescriptor) Satisfied() bool {
	return d.StartMode == StartAutomatic && d.RunState == StateRunning
}

func (d ServiceDescriptor) String() string {
	return fmt.Sprintf("%s (%s, %s)", d.Name, d.StartMode, d.RunState)
}

// FindService returns the descriptor whose name matches case-insensitively.
func FindService(services []ServiceDescriptor, name string) (ServiceDescriptor, bool) {
	for _, svc := range services {
		if strings.EqualFold(svc.Name, name) {
			return svc, true
		}
	}
	return ServiceDescriptor{}, false
}

// FilterByPrefix returns every descriptor whose name starts with prefix,
// compared case-insensitively, in listing order.
func FilterByPrefix(services []ServiceDescriptor, prefix string) []ServiceDescriptor {
	lowered := strings.ToLower(prefix)
	var matched []ServiceDescriptor
	for _, svc := range services {
		if strings.HasPrefix(strings.ToLower(svc.Name), lowered) {
			matched = append(matched, svc)
		}
	}
	return matched
}
