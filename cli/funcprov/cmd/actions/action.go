// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package actions contains the application logic that handles funcprov CLI commands.
package actions

import (
	"context"
	"fmt"
	"io"

	"github.com/azure/funcprov/cli/funcprov/pkg/output"
)

// ActionFunc is an Action implementation for regular functions.
type ActionFunc func(context.Context) (*ActionResult, error)

// Run implements the Action interface
func (a ActionFunc) Run(ctx context.Context) (*ActionResult, error) {
	return a(ctx)
}

// Define a message as the completion of an Action.
type ResultMessage struct {
	Header   string
	FollowUp string
}

// Define the Action outputs.
type ActionResult struct {
	Message *ResultMessage
}

// Action is the representation of the application logic of a CLI command.
type Action interface {
	// Run executes the CLI command.
	Run(ctx context.Context) (*ActionResult, error)
}

// ShowActionResults writes the completion message of a successful action. Errors are reported by main.
func ShowActionResults(w io.Writer, actionResult *ActionResult, err error) {
	if err != nil || actionResult == nil || actionResult.Message == nil {
		return
	}

	fmt.Fprintf(w, "\n%s\n", output.WithSuccessFormat("SUCCESS: %s", actionResult.Message.Header))
	if actionResult.Message.FollowUp != "" {
		fmt.Fprintln(w, actionResult.Message.FollowUp)
	}
}
