package ports

import (
	"context"
	"time"
)

// RunOptions tunes how a ProcessRunner launches a command.
type RunOptions struct {
	// Elevated requests administrative execution (UAC prompt on Windows).
	Elevated bool
	// PollInterval is how often an elevated child is checked for exit. Zero
	// selects the runner's default.
	PollInterval time.Duration
}

// ProcessRunner launches an external command and waits for it to exit.
// A non-zero exit code is not an error; err is reserved for failures to
// launch or to observe the process. ctx cancellation or deadline aborts the
// wait and returns ctx.Err().
type ProcessRunner interface {
	Run(ctx context.Context, command string, args []string, opts RunOptions) (exitCode int, err error)
}
