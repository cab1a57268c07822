// Package script runs script files and captures what they print.
package script

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultInterpreter runs .py scripts.
var DefaultInterpreter = []string{"python"}

// waitDelay bounds how long Run waits for output pipes after the script has
// been killed, in case it left children holding them open.
const waitDelay = time.Second

// Runner executes scripts as child processes.
type Runner struct {
	// Interpreter is the command prefix the script path is appended to.
	// When empty the script itself is executed.
	Interpreter []string
	// Timeout kills scripts running longer than this. Zero means no limit.
	Timeout time.Duration

	log logrus.FieldLogger
}

// NewRunner returns a Runner using interpreter and timeout.
func NewRunner(interpreter []string, timeout time.Duration, log logrus.FieldLogger) *Runner {
	return &Runner{
		Interpreter: append([]string(nil), interpreter...),
		Timeout:     timeout,
		log:         log,
	}
}

// Run executes path and returns everything it wrote to standard output.
//
// The script gets no arguments, no stdin and an environment holding only
// PATH. Its exit status is not checked: a script that fails, is killed by the
// timeout or is interrupted because ctx is done still yields the output it
// produced. An error is returned only when the script could not be started.
func (r *Runner) Run(ctx context.Context, path string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := r.command(ctx, path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = []string{"PATH=" + os.Getenv("PATH")}
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	fields := logrus.Fields{
		"script":   path,
		"duration": time.Since(start),
	}
	if stderr.Len() > 0 {
		fields["stderr"] = stderr.String()
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		r.logger().WithFields(fields).Debug("script finished")
	case ctx.Err() != nil:
		r.logger().WithFields(fields).WithError(ctx.Err()).Warn("script interrupted")
	case errors.As(err, &exitErr):
		fields["exit_code"] = exitErr.ExitCode()
		r.logger().WithFields(fields).Warn("script exited with failure")
	default:
		return nil, errors.Wrapf(err, "start %s", path)
	}
	return stdout.Bytes(), nil
}

func (r *Runner) command(ctx context.Context, path string) *exec.Cmd {
	if len(r.Interpreter) == 0 {
		return exec.CommandContext(ctx, path)
	}
	args := append(append([]string(nil), r.Interpreter[1:]...), path)
	return exec.CommandContext(ctx, r.Interpreter[0], args...)
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.log == nil {
		return logrus.StandardLogger()
	}
	return r.log
}
