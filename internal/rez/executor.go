// SPDX-License-Identifier: MPL-2.0

package rez

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// ErrSpawnFailed is the sentinel error wrapped by SpawnError.
var ErrSpawnFailed = errors.New("spawn failed")

// SpawnError is returned when the resolver process could not be started at
// all (binary missing, permission denied). It is distinct from a resolver
// that ran and exited non-zero. It wraps ErrSpawnFailed.
type SpawnError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrSpawnFailed so callers can use errors.Is for programmatic detection.
func (e *SpawnError) Unwrap() error { return ErrSpawnFailed }

// Executor runs assembled resolver commands attached or detached.
type Executor struct {
	// Stdin, Stdout and Stderr are the streams handed to attached children.
	// They default to the process standard streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	logger *log.Logger
}

// NewExecutor creates an executor wired to the process standard streams.
func NewExecutor(logger *log.Logger) *Executor {
	return &Executor{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logger,
	}
}

// Run assembles and executes the command. Attached runs block and report the
// child's exit code verbatim; detached runs return exit code 0 once the child
// has been launched. Infrastructure failures carry an error in the Result.
func (e *Executor) Run(ctx context.Context, c *Command) *Result {
	argv, err := c.Argv()
	if err != nil {
		return NewErrorResult(1, err)
	}

	if e.logger != nil {
		e.logger.Debug("executing resolver", "command", c.String(), "detached", c.Detached())
	}

	if c.Detached() {
		return e.runDetached(argv)
	}
	return e.runAttached(ctx, argv)
}

func (e *Executor) runAttached(ctx context.Context, argv []string) *Result {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return NewExitCodeResult(ExitCode(exitErr.ExitCode()))
		}
		return NewErrorResult(1, &SpawnError{Path: argv[0], Err: err})
	}
	return NewSuccessResult()
}

// runDetached starts the child in its own session/console with null standard
// streams and releases it. The parent never waits, so success here means
// "launch acknowledged", not "ran successfully".
func (e *Executor) runDetached(argv []string) *Result {
	cmd := exec.Command(argv[0], argv[1:]...)
	detachSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return NewErrorResult(1, &SpawnError{Path: argv[0], Err: err})
	}

	if e.logger != nil {
		e.logger.Debug("detached process launched", "pid", cmd.Process.Pid)
	}
	if err := cmd.Process.Release(); err != nil && e.logger != nil {
		e.logger.Debug("failed to release detached process", "err", err)
	}
	return NewSuccessResult()
}
