// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package exec

// RunArgs exposes the command, arguments and other options when running console commands
type RunArgs struct {
	Cmd  string
	Args []string
	Env  []string

	// SensitiveData lists literal values that are replaced with <redacted> when the
	// command line is logged.
	SensitiveData []string

	// DebugLogging overrides the runner level setting for logging command output.
	DebugLogging *bool
}

// NewRunArgs creates a new instance with the specified cmd and args
func NewRunArgs(cmd string, args ...string) RunArgs {
	return RunArgs{
		Cmd:  cmd,
		Args: args,
	}
}

// AppendParams appends additional command params
func (b RunArgs) AppendParams(params ...string) RunArgs {
	b.Args = append(b.Args, params...)
	return b
}

// WithEnv updates the environment variables used for the command
func (b RunArgs) WithEnv(env []string) RunArgs {
	b.Env = env
	return b
}

// WithSensitiveData marks values that must never appear in logs.
func (b RunArgs) WithSensitiveData(data ...string) RunArgs {
	b.SensitiveData = append(b.SensitiveData, data...)
	return b
}

// WithDebugLogging overrides whether the command output is written to the default logger.
func (b RunArgs) WithDebugLogging(debug bool) RunArgs {
	b.DebugLogging = &debug
	return b
}
