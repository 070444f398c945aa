// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package ux

import (
	"fmt"
	"io"

	"github.com/theckman/yacspin"
)

// Progress lets a running step update what is displayed for it.
type Progress struct {
	spinner *yacspin.Spinner
	writer  io.Writer
}

// Message replaces the spinner message, or prints an indented line without a spinner.
func (p *Progress) Message(message string) {
	if p.spinner != nil {
		p.spinner.Message(message)
		return
	}

	if p.writer != nil {
		fmt.Fprintf(p.writer, "  %s\n", message)
	}
}
