package model

import (
	"context"
	"errors"
	"io/fs"
	"os"

	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// Outcome classifies the result of a single remediation step.
type Outcome string

const (
	// OutcomeSuccess means the step's goal state was reached.
	OutcomeSuccess Outcome = "success"
	// OutcomeNotFound means the target entity was absent. Often the goal is
	// already satisfied.
	OutcomeNotFound Outcome = "not_found"
	// OutcomePermissionDenied means the caller lacked the rights to act.
	OutcomePermissionDenied Outcome = "permission_denied"
	// OutcomeIOFailure covers transient or environmental I/O errors.
	OutcomeIOFailure Outcome = "io_failure"
	// OutcomeTimeout means a waited-for state was not reached in time.
	OutcomeTimeout Outcome = "timeout"
	// OutcomeUnknownFailure is the catch-all; the message carries the cause.
	OutcomeUnknownFailure Outcome = "unknown_failure"
	// OutcomeNoMatch is reported when a service name prefix selects nothing.
	OutcomeNoMatch Outcome = "no_match"
)

var validOutcomes = []Outcome{
	OutcomeSuccess,
	OutcomeNotFound,
	OutcomePermissionDenied,
	OutcomeIOFailure,
	OutcomeTimeout,
	OutcomeUnknownFailure,
	OutcomeNoMatch,
}

// IsValid reports whether the outcome is one of the known values.
func (o Outcome) IsValid() bool {
	for _, candidate := range validOutcomes {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsSuccess reports whether the step reached its goal.
func (o Outcome) IsSuccess() bool {
	return o == OutcomeSuccess
}

// IsFailure reports whether the outcome should be surfaced as a failure.
// NotFound counts as a failure here: the step did not do its job, even if
// the system may already be in the desired state.
func (o Outcome) IsFailure() bool {
	return o != OutcomeSuccess && o != OutcomeNoMatch
}

// IsSatisfied reports whether the system is believed to be in the desired
// state after the step, either because it acted or because nothing was left
// to do.
func (o Outcome) IsSatisfied() bool {
	switch o {
	case OutcomeSuccess, OutcomeNotFound, OutcomeNoMatch:
		return true
	default:
		return false
	}
}

func (o Outcome) String() string {
	return string(o)
}

// Classify maps an error returned by a provider onto the outcome taxonomy.
// A nil error is a success.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, remedyerrors.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return OutcomeNotFound
	case errors.Is(err, remedyerrors.ErrPermissionDenied), errors.Is(err, fs.ErrPermission):
		return OutcomePermissionDenied
	case errors.Is(err, remedyerrors.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	}

	var pathErr *fs.PathError
	var linkErr *os.LinkError
	var syscallErr *os.SyscallError
	if errors.As(err, &pathErr) || errors.As(err, &linkErr) || errors.As(err, &syscallErr) {
		return OutcomeIOFailure
	}

	return OutcomeUnknownFailure
}
