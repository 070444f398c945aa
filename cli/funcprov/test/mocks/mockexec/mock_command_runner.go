// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package mockexec

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/azure/funcprov/cli/funcprov/pkg/exec"
)

type CommandWhenPredicate func(args exec.RunArgs, command string) bool

type RespondFn func(args exec.RunArgs) (exec.RunResult, error)

// MockCommandRunner is a CommandRunner that answers from registered expressions
// and records every invocation.
type MockCommandRunner struct {
	mu          sync.Mutex
	expressions []*CommandExpression
	calls       []exec.RunArgs
}

func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{}
}

var _ exec.CommandRunner = (*MockCommandRunner)(nil)

func (m *MockCommandRunner) Run(ctx context.Context, args exec.RunArgs) (exec.RunResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, args)
	m.mu.Unlock()

	command := commandLine(args)

	// the most recently registered expression wins, so tests can override defaults
	var match *CommandExpression
	for i := len(m.expressions) - 1; i >= 0; i-- {
		if m.expressions[i].predicateFn(args, command) {
			match = m.expressions[i]
			break
		}
	}

	if match == nil {
		panic(fmt.Sprintf("No mock found for command: '%s'", command))
	}

	if match.responseFn != nil {
		return match.responseFn(args)
	}

	return match.Response, match.Error
}

// When registers a new expression that is evaluated for every command.
func (m *MockCommandRunner) When(predicate CommandWhenPredicate) *CommandExpression {
	expr := &CommandExpression{
		runner:      m,
		predicateFn: predicate,
	}

	m.expressions = append(m.expressions, expr)
	return expr
}

// Calls returns all recorded invocations in order.
func (m *MockCommandRunner) Calls() []exec.RunArgs {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.calls)
}

// CallsMatching returns the recorded command lines that start with prefix.
func (m *MockCommandRunner) CallsMatching(prefix string) []string {
	var matched []string
	for _, call := range m.Calls() {
		command := commandLine(call)
		if strings.HasPrefix(command, prefix) {
			matched = append(matched, command)
		}
	}

	return matched
}

type CommandExpression struct {
	Response    exec.RunResult
	Error       error
	responseFn  RespondFn
	runner      *MockCommandRunner
	predicateFn CommandWhenPredicate
}

func (e *CommandExpression) Respond(response exec.RunResult) *MockCommandRunner {
	e.Response = response
	return e.runner
}

func (e *CommandExpression) RespondFn(responseFn RespondFn) *MockCommandRunner {
	e.responseFn = responseFn
	return e.runner
}

func (e *CommandExpression) SetError(err error) *MockCommandRunner {
	e.Error = err
	return e.runner
}

// Fail makes the command exit with exitCode, writing stderr.
func (e *CommandExpression) Fail(exitCode int, stderr string) *MockCommandRunner {
	e.Response = exec.NewRunResult(exitCode, "", stderr)
	e.Error = exec.NewTestExitError("az", exitCode, stderr)
	return e.runner
}

func commandLine(args exec.RunArgs) string {
	return strings.TrimSpace(args.Cmd + " " + strings.Join(args.Args, " "))
}
