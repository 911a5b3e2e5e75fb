package command

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/brewtap/pkg/domain/interfaces"
	"github.com/m-mizutani/brewtap/pkg/domain/model"
	"github.com/m-mizutani/brewtap/pkg/domain/types"
)

// waitDelay bounds how long Run waits for output pipes after the process is killed
const waitDelay = time.Second

type runner struct{}

// NewRunner creates a CommandRunner backed by os/exec
func NewRunner() interfaces.CommandRunner {
	return &runner{}
}

// Run executes cmd without a shell and with no stdin attached.
//
// On a non-zero exit the returned result is still populated (exit code and
// stderr) alongside an error tagged types.ErrTagProcess. A command exceeding
// its timeout returns a nil result and an error tagged types.ErrTagTimeout.
func (r *runner) Run(ctx context.Context, cmd model.Command) (*model.CommandResult, error) {
	logger := ctxlog.From(ctx)
	timeout := cmd.EffectiveTimeout()
	cmdline := cmd.String()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //#nosec G204 -- argv is built by callers, no shell involved
	c.Dir = cmd.Dir
	c.Stdin = nil
	c.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	logger.Debug("Running command", "command", cmdline, "dir", cmd.Dir, "timeout", timeout)

	start := time.Now()
	runErr := c.Run()
	result := &model.CommandResult{
		Stdout:   stdout.String(),
		Stderr:   cmd.Redact(stderr.String()),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if runErr == nil {
		logger.Debug("Command finished", "command", cmdline, "duration", result.Duration)
		return result, nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, goerr.New("command timed out",
			goerr.T(types.ErrTagTimeout),
			goerr.V("command", cmdline),
			goerr.V("timeout", timeout.String()),
		)
	}

	if ctx.Err() != nil {
		return nil, goerr.Wrap(ctx.Err(), "command canceled",
			goerr.T(types.ErrTagProcess),
			goerr.V("command", cmdline),
		)
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, goerr.New("command exited with non-zero status",
			goerr.T(types.ErrTagProcess),
			goerr.V("command", cmdline),
			goerr.V("exit_code", result.ExitCode),
			goerr.V("stderr", strings.TrimSpace(result.Stderr)),
		)
	}

	// exec errors (e.g. binary not found) may embed the command path, never secrets
	return nil, goerr.New("failed to start command",
		goerr.T(types.ErrTagProcess),
		goerr.V("command", cmdline),
		goerr.V("exit_code", -1),
		goerr.V("cause", cmd.Redact(runErr.Error())),
	)
}
