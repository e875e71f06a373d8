package main

import (
	"errors"

	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// Process exit codes.
const (
	exitOK       = 0
	exitFailures = 1
	exitConfig   = 2
)

// errStepsFailed is returned when a command completed but found work left
// undone. Its output has already said why, so main stays quiet about it.
var errStepsFailed = errors.New("remediation finished with failures")

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var parseErr *remedyerrors.ParseError
	var validationErr *remedyerrors.ValidationError
	if errors.As(err, &parseErr) || errors.As(err, &validationErr) {
		return exitConfig
	}
	return exitFailures
}
