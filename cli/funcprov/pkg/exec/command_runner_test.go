// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package exec

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	runner := NewCommandRunner(nil)

	res, err := runner.Run(context.Background(), NewRunArgs("sh", "-c", "echo hello"))
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)
	require.Equal(t, "hello", strings.TrimSpace(res.Stdout))
}

func TestRunCommandExitError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	runner := NewCommandRunner(&RunnerOptions{DebugLogging: true})

	res, err := runner.Run(context.Background(), NewRunArgs("sh", "-c", "echo boom >&2; exit 3"))
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 3, exitErr.ExitCode)
	require.Equal(t, 3, res.ExitCode)
	require.Equal(t, "boom", strings.TrimSpace(exitErr.StderrOutput()))
	require.Contains(t, err.Error(), "exit code: 3")
}

func TestRunCommandNotFound(t *testing.T) {
	runner := NewCommandRunner(nil)

	_, err := runner.Run(context.Background(), NewRunArgs("funcprov-command-that-does-not-exist"))
	require.Error(t, err)
	require.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestKillCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	s := time.Now()
	_, err := NewCommandRunner(nil).Run(ctx, NewRunArgs("sleep", "10"))
	require.Error(t, err)
	require.Less(t, time.Since(s), 5*time.Second)
}

func TestRunArgsBuilders(t *testing.T) {
	args := NewRunArgs("az", "version").
		AppendParams("--output", "json").
		WithEnv([]string{"A=B"}).
		WithSensitiveData("x").
		WithDebugLogging(false)

	require.Equal(t, []string{"version", "--output", "json"}, args.Args)
	require.Equal(t, []string{"A=B"}, args.Env)
	require.Equal(t, []string{"x"}, args.SensitiveData)
	require.NotNil(t, args.DebugLogging)
	require.False(t, *args.DebugLogging)
}

func TestExitErrorMessage(t *testing.T) {
	err := NewTestExitError("az", 1, "ERROR: (ResourceNotFound) not found\n")
	require.Equal(t, "az: exit code: 1, stderr: ERROR: (ResourceNotFound) not found", err.Error())

	err = NewTestExitError("az", 2, "")
	require.Equal(t, "az: exit code: 2", err.Error())
}
