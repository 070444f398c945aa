// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/azure/funcprov/cli/funcprov/cmd/actions"
	"github.com/azure/funcprov/cli/funcprov/internal"
	"github.com/azure/funcprov/cli/funcprov/pkg/ioc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type versionFlags struct {
	global *internal.GlobalCommandOptions
}

func (v *versionFlags) Bind(local *pflag.FlagSet, global *internal.GlobalCommandOptions) {
	v.global = global
}

func versionCmdDesign(global *internal.GlobalCommandOptions) (*cobra.Command, *versionFlags) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of funcprov.",
		Args:  noArgs,
	}

	flags := &versionFlags{}
	flags.Bind(cmd.Flags(), global)

	return cmd, flags
}

func newVersionCmd(global *internal.GlobalCommandOptions, container *ioc.NestedContainer) *cobra.Command {
	cmd, _ := versionCmdDesign(global)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return container.Invoke(func(writer io.Writer) error {
			return runAction(cmd, container, newVersionAction(writer))
		})
	}

	return cmd
}

type versionAction struct {
	writer io.Writer
}

func newVersionAction(writer io.Writer) *versionAction {
	return &versionAction{writer: writer}
}

func (v *versionAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	fmt.Fprintf(v.writer, "funcprov version %s\n", internal.Version)
	return nil, nil
}
