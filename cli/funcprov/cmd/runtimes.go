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
	"github.com/azure/funcprov/cli/funcprov/pkg/provisioning"
	"github.com/azure/funcprov/cli/funcprov/pkg/tools/azcli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type runtimesFlags struct {
	os     string
	global *internal.GlobalCommandOptions
}

func (r *runtimesFlags) Bind(local *pflag.FlagSet, global *internal.GlobalCommandOptions) {
	local.StringVarP(&r.os, "os", "o", string(provisioning.OsTypeLinux), "Operating system: Linux or Windows.")
	r.global = global
}

func runtimesCmdDesign(global *internal.GlobalCommandOptions) (*cobra.Command, *runtimesFlags) {
	cmd := &cobra.Command{
		Use:   "runtimes",
		Short: "List the runtimes and versions Azure Functions supports for an operating system.",
		Args:  noArgs,
	}

	flags := &runtimesFlags{}
	flags.Bind(cmd.Flags(), global)

	return cmd, flags
}

func newRuntimesCmd(global *internal.GlobalCommandOptions, container *ioc.NestedContainer) *cobra.Command {
	cmd, flags := runtimesCmdDesign(global)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return container.Invoke(func(azCli azcli.AzCli, writer io.Writer) error {
			return runAction(cmd, container, newRuntimesAction(*flags, azCli, writer))
		})
	}

	return cmd
}

type runtimesAction struct {
	flags  runtimesFlags
	azCli  azcli.AzCli
	writer io.Writer
}

func newRuntimesAction(flags runtimesFlags, azCli azcli.AzCli, writer io.Writer) *runtimesAction {
	return &runtimesAction{
		flags:  flags,
		azCli:  azCli,
		writer: writer,
	}
}

func (r *runtimesAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	osType, err := provisioning.ParseOsType(r.flags.os)
	if err != nil {
		return nil, &internal.UsageError{Err: err}
	}

	if err := r.azCli.CheckInstalled(ctx); err != nil {
		return nil, err
	}

	runtimes, err := r.azCli.ListFunctionRuntimes(ctx, osType.String())
	if err != nil {
		return nil, err
	}

	for _, entry := range provisioning.FormatRuntimes(runtimes) {
		fmt.Fprintln(r.writer, entry)
	}

	return nil, nil
}
