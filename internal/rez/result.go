// SPDX-License-Identifier: MPL-2.0

package rez

// Result holds the outcome of one resolver execution.
type Result struct {
	// ExitCode is the child's exit status, or 1 for infrastructure failures.
	ExitCode ExitCode
	// Error is set for infrastructure failures (assembly, spawn), never for
	// a child process that ran and exited non-zero.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}
