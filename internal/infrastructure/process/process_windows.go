//go:build windows

package process

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/windows"

	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// stillActive is the exit code Windows reports for a running process.
const stillActive = 259

func (r *Runner) runElevated(ctx context.Context, command string, args []string, interval time.Duration) (int, error) {
	script := elevationScript(command, args)
	launcher := exec.CommandContext(ctx, "powershell.exe", "-NoProfile", "-NonInteractive", "-Command", script)
	launcher.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}

	res, err := runStreaming(launcher, nil, nil)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}
	if err != nil {
		out := PrimaryOutput(res)
		var kind error
		switch {
		case strings.Contains(out, "canceled by the user"):
			kind = remedyerrors.ErrPermissionDenied
		case strings.Contains(out, "cannot find the file"):
			kind = remedyerrors.ErrNotFound
		}
		return -1, remedyerrors.NewProviderError("elevate", command, kind, fmt.Errorf("%w: %s", err, out))
	}

	pid, err := parsePID(res.Stdout)
	if err != nil {
		return -1, remedyerrors.NewProviderError("elevate", command, nil, err)
	}
	r.logger.Debug(ctx, "elevated process launched", "command", command, "pid", pid)

	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		if errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
			return -1, remedyerrors.NewProviderError("observe", command, nil, fmt.Errorf("process %d exited before it could be observed", pid))
		}
		return -1, remedyerrors.NewProviderError("observe", command, nil, err)
	}
	defer windows.CloseHandle(h)

	code, err := waitForExit(ctx, interval, func() (bool, int, error) {
		var exitCode uint32
		if err := windows.GetExitCodeProcess(h, &exitCode); err != nil {
			return false, 0, err
		}
		if exitCode == stillActive {
			return false, 0, nil
		}
		return true, int(exitCode), nil
	})
	if err != nil && ctx.Err() != nil {
		r.logger.Warn(ctx, "stopped waiting for elevated process; it keeps running", "command", command, "pid", pid)
	}
	return code, err
}

// prepare passes a cmd.exe /C payload through verbatim, since cmd.exe does
// not understand the escaping exec applies to arguments.
func prepare(cmd *exec.Cmd, command string, args []string) {
	if !strings.EqualFold(filepath.Base(command), "cmd.exe") && !strings.EqualFold(command, "cmd") {
		return
	}
	if len(args) < 2 || !strings.EqualFold(args[0], "/C") {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: command + " /C " + strings.Join(args[1:], " "),
	}
}
