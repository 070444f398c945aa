// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner exposes the contract for executing console commands for the specified runArgs
type CommandRunner interface {
	Run(ctx context.Context, args RunArgs) (RunResult, error)
}

type RunnerOptions struct {
	// Whether debug logging is enabled. False by default.
	DebugLogging bool
}

// NewCommandRunner creates a new default instance of the CommandRunner.
// Passing nil will use the default values for RunnerOptions.
func NewCommandRunner(opt *RunnerOptions) CommandRunner {
	if opt == nil {
		opt = &RunnerOptions{}
	}

	return &commandRunner{
		debugLogging: opt.DebugLogging,
	}
}

// commandRunner is the default private implementation of the CommandRunner interface
// This implementation executes actual commands on the underlying console
type commandRunner struct {
	debugLogging bool
}

// Run runs the command specified in 'args'.
//
// Returns a RunResult that is the result of the command.
//   - If the underlying command exits unsuccessfully, *ExitError is returned. Other possible errors would likely be I/O
//     errors, a missing executable or context cancellation.
func (r *commandRunner) Run(ctx context.Context, args RunArgs) (RunResult, error) {
	cmd := exec.CommandContext(ctx, args.Cmd, args.Args...)
	cmd.Env = appendEnv(args.Env)
	cmd.Stdin = new(bytes.Buffer)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logTitle := strings.Builder{}
	logBody := strings.Builder{}
	defer func() {
		logTitle.WriteString(logBody.String())
		log.Print(logTitle.String())
	}()

	fmt.Fprintf(&logTitle, "Run exec: '%s %s' ",
		args.Cmd,
		RedactSensitiveData(strings.Join(RedactSensitiveArgs(args.Args, args.SensitiveData), " ")))

	debugLogEnabled := r.debugLogging
	if args.DebugLogging != nil {
		debugLogEnabled = *args.DebugLogging
	}

	err := cmd.Run()

	result := RunResult{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if debugLogEnabled {
		writeLogSection(&logBody, "stdout", result.Stdout, args.SensitiveData)
		writeLogSection(&logBody, "stderr", result.Stderr, args.SensitiveData)
	}
	fmt.Fprintf(&logTitle, ", exit code: %d\n", result.ExitCode)

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, NewExitError(exitErr, args.Cmd, result.Stdout, result.Stderr)
	}

	return result, err
}

func writeLogSection(b *strings.Builder, title string, content string, sensitive []string) {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return
	}

	redacted := RedactSensitiveArgs([]string{RedactSensitiveData(content)}, sensitive)[0]
	fmt.Fprintf(b, "-------------------------------------%s-------------------------------------------\n%s\n",
		title, redacted)
}

func appendEnv(env []string) []string {
	if len(env) > 0 {
		return append(os.Environ(), env...)
	}

	return nil
}
