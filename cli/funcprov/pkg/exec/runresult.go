// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package exec

import (
	"fmt"
	"os/exec"
	"strings"
)

// RunResult is the result of running a command.
type RunResult struct {
	// The exit code of the command.
	ExitCode int
	// The stdout output captured from running the command.
	Stdout string
	// The stderr output captured from running the command.
	Stderr string
}

func NewRunResult(code int, stdout, stderr string) RunResult {
	return RunResult{
		ExitCode: code,
		Stdout:   stdout,
		Stderr:   stderr,
	}
}

// String returns a compact description of the result, used in error messages.
func (rr RunResult) String() string {
	return fmt.Sprintf("exit code: %d, stdout: %s, stderr: %s",
		rr.ExitCode, strings.TrimSpace(rr.Stdout), strings.TrimSpace(rr.Stderr))
}

// ExitError is the error returned when a command unsuccessfully exits.
type ExitError struct {
	// The path or name of the command being invoked.
	Cmd string
	// The exit code of the command.
	ExitCode int

	stdOut string
	stdErr string

	// The underlying exec.ExitError, nil for errors built in tests.
	err *exec.ExitError
}

func NewExitError(exitErr *exec.ExitError, cmd string, stdOut string, stdErr string) error {
	return &ExitError{
		ExitCode: exitErr.ExitCode(),
		Cmd:      cmd,
		err:      exitErr,
		stdOut:   stdOut,
		stdErr:   stdErr,
	}
}

// NewTestExitError creates an ExitError suitable for unit tests
// where constructing an os/exec.ExitError is impractical.
func NewTestExitError(cmd string, exitCode int, stderr string) *ExitError {
	return &ExitError{
		Cmd:      cmd,
		ExitCode: exitCode,
		stdErr:   stderr,
	}
}

// Error reports the exit code together with the trimmed stderr of the command.
func (e *ExitError) Error() string {
	prefix := fmt.Sprintf("%s: exit code: %d", e.Cmd, e.ExitCode)
	if e.err != nil && !e.err.Exited() {
		prefix = fmt.Sprintf("%s: %s", e.Cmd, e.err.Error())
	}

	stderr := strings.TrimSpace(RedactSensitiveData(e.stdErr))
	if stderr == "" {
		return prefix
	}

	return fmt.Sprintf("%s, stderr: %s", prefix, stderr)
}

// StderrOutput returns the stderr output captured from the command.
func (e *ExitError) StderrOutput() string {
	return e.stdErr
}

// StdoutOutput returns the stdout output captured from the command.
func (e *ExitError) StdoutOutput() string {
	return e.stdOut
}
