// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

type GlobalCommandOptions struct {
	// EnableDebugLogging indicates you should turn on verbose/debug logging in your command and any
	// launched tools. It's enabled with `--debug`, for any command.
	EnableDebugLogging bool

	// TraceLogFile is the path of a file that receives one trace span per provisioning phase.
	TraceLogFile string

	// NoColor disables colored console output.
	NoColor bool
}
