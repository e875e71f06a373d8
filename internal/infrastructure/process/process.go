// Package process implements ports.ProcessRunner. Plain commands run as
// children of this process; elevated commands are launched through
// PowerShell's RunAs verb and observed by polling their exit code.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/poll"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// DefaultPollInterval is how often an elevated child is checked for exit.
const DefaultPollInterval = time.Second

// Options configures a Runner.
type Options struct {
	// Output receives the combined child output. Nil discards it.
	Output io.Writer
}

// Runner is the host process provider.
type Runner struct {
	logger ports.Logger
	output io.Writer
}

// New returns a Runner.
func New(logger ports.Logger, opts Options) *Runner {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Runner{
		logger: logger.With("component", "process"),
		output: opts.Output,
	}
}

// Run implements ports.ProcessRunner.
func (r *Runner) Run(ctx context.Context, command string, args []string, opts ports.RunOptions) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	start := time.Now()
	var (
		code int
		err  error
	)
	if opts.Elevated {
		code, err = r.runElevated(ctx, command, args, interval)
	} else {
		code, err = r.runDirect(ctx, command, args)
	}
	if err != nil {
		r.logger.Warn(ctx, "process failed", "command", command, "elevated", opts.Elevated, "error", err)
		return -1, err
	}

	r.logger.Info(ctx, "process exited",
		"command", command,
		"elevated", opts.Elevated,
		"exit_code", code,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return code, nil
}

func (r *Runner) runDirect(ctx context.Context, command string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	prepare(cmd, command, args)

	res, err := runStreaming(cmd, r.output, r.output)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if out := PrimaryOutput(res); out != "" {
			r.logger.Debug(ctx, "process output", "command", command, "output", out)
		}
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, launchError(command, err)
	}
	return 0, nil
}

// waitForExit polls probe until it reports an exit or ctx ends. The only
// bound is ctx; callers apply their own deadline.
func waitForExit(ctx context.Context, interval time.Duration, probe func() (exited bool, code int, err error)) (int, error) {
	code := -1
	err := poll.Until(ctx, interval, 0, func(context.Context) (bool, error) {
		exited, c, err := probe()
		if err != nil {
			return false, err
		}
		if exited {
			code = c
		}
		return exited, nil
	})
	if err != nil {
		return -1, err
	}
	return code, nil
}

// elevationScript builds the PowerShell command that launches command with
// the RunAs verb and prints the child's process ID.
func elevationScript(command string, args []string) string {
	var b strings.Builder
	b.WriteString("$p = Start-Process -FilePath ")
	b.WriteString(psQuote(command))
	if len(args) > 0 {
		quoted := make([]string, len(args))
		for i, a := range args {
			if strings.ContainsAny(a, " \t") {
				a = `"` + a + `"`
			}
			quoted[i] = psQuote(a)
		}
		b.WriteString(" -ArgumentList ")
		b.WriteString(strings.Join(quoted, ","))
	}
	b.WriteString(" -Verb RunAs -PassThru -ErrorAction Stop; $p.Id")
	return b.String()
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func launchError(command string, err error) error {
	var kind error
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		kind = remedyerrors.ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = remedyerrors.ErrPermissionDenied
	}
	return remedyerrors.NewProviderError("run", command, kind, err)
}

func parsePID(out string) (int, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	var pid int
	if _, err := fmt.Sscanf(last, "%d", &pid); err != nil || pid <= 0 {
		return 0, fmt.Errorf("unexpected process id %q", last)
	}
	return pid, nil
}

var _ ports.ProcessRunner = (*Runner)(nil)
