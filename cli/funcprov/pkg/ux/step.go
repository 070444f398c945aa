// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package ux

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/azure/funcprov/cli/funcprov/pkg/output"
	"github.com/theckman/yacspin"
)

// ProgressStepFn is the work performed while a step is displayed.
type ProgressStepFn func(ctx context.Context, progress *Progress) error

// Step is a unit of work rendered to the console.
type Step interface {
	Execute(ctx context.Context) error
}

// StepFactory creates steps for a given prefix and message.
type StepFactory func(prefix string, message string, executeFn ProgressStepFn) Step

// NewStepFactory returns spinner steps when writing to a terminal, plain line steps otherwise.
func NewStepFactory(w io.Writer, interactive bool) StepFactory {
	if interactive {
		return func(prefix string, message string, executeFn ProgressStepFn) Step {
			return NewProgressStep(w, prefix, message, executeFn)
		}
	}

	return func(prefix string, message string, executeFn ProgressStepFn) Step {
		return NewPlainStep(w, prefix, message, executeFn)
	}
}

type progressStep struct {
	progress  *Progress
	spinner   *yacspin.Spinner
	executeFn ProgressStepFn
}

func (s *progressStep) Execute(ctx context.Context) error {
	if s.spinner == nil {
		return s.executeFn(ctx, s.progress)
	}

	_ = s.spinner.Start()

	err := s.executeFn(ctx, s.progress)
	if err != nil {
		_ = s.spinner.StopFail()
		return err
	}

	_ = s.spinner.Stop()
	return nil
}

func NewProgressStep(w io.Writer, prefix string, message string, executeFn ProgressStepFn) Step {
	config := yacspin.Config{
		Writer:            w,
		Frequency:         200 * time.Millisecond,
		CharSet:           yacspin.CharSets[33],
		Suffix:            " " + prefix,
		Message:           message,
		SuffixAutoColon:   true,
		StopCharacter:     "(✓) Done",
		StopColors:        []string{"fgGreen"},
		StopFailCharacter: "(x) Error",
		StopFailColors:    []string{"fgRed"},
	}

	// a nil spinner degrades to running the step without animation
	spinner, _ := yacspin.New(config)

	return &progressStep{
		progress:  &Progress{spinner: spinner, writer: w},
		spinner:   spinner,
		executeFn: executeFn,
	}
}

type plainStep struct {
	writer    io.Writer
	prefix    string
	message   string
	executeFn ProgressStepFn
}

// NewPlainStep writes one line when the step starts and one when it ends.
func NewPlainStep(w io.Writer, prefix string, message string, executeFn ProgressStepFn) Step {
	return &plainStep{
		writer:    w,
		prefix:    prefix,
		message:   message,
		executeFn: executeFn,
	}
}

func (s *plainStep) Execute(ctx context.Context) error {
	fmt.Fprintf(s.writer, "%s: %s\n", s.prefix, s.message)

	err := s.executeFn(ctx, &Progress{writer: s.writer})
	if err != nil {
		fmt.Fprintf(s.writer, "%s: %s\n", s.prefix, output.WithErrorFormat("(x) Error"))
		return err
	}

	fmt.Fprintf(s.writer, "%s: %s\n", s.prefix, output.WithSuccessFormat("(✓) Done"))
	return nil
}
