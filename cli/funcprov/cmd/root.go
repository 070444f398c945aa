// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/funcprov/cli/funcprov/cmd/actions"
	"github.com/azure/funcprov/cli/funcprov/internal"
	"github.com/azure/funcprov/cli/funcprov/pkg/ioc"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRootCmd creates the funcprov command. The root command itself provisions a function app.
// When container is nil, the default dependencies are registered.
func NewRootCmd(out io.Writer, container *ioc.NestedContainer) *cobra.Command {
	rootOptions := &internal.GlobalCommandOptions{}

	if container == nil {
		container = ioc.NewNestedContainer(nil)
		registerCommonDependencies(container)
	}

	ioc.RegisterInstance(container, rootOptions)
	registerConsole(container, out)

	cmd, flags := provisionCmdDesign(rootOptions)
	cmd.SetOut(out)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &internal.UsageError{Err: err}
	})

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if rootOptions.NoColor {
			color.NoColor = true
		}

		return nil
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, container, newProvisionAction(*flags, container))
	}

	bindGlobalFlags(cmd.PersistentFlags(), rootOptions)

	cmd.AddCommand(newRuntimesCmd(rootOptions, container))
	cmd.AddCommand(newVersionCmd(rootOptions, container))

	return cmd
}

func bindGlobalFlags(flags *pflag.FlagSet, rootOptions *internal.GlobalCommandOptions) {
	flags.BoolVar(&rootOptions.EnableDebugLogging, "debug", false, "Enables debugging and diagnostics logging.")
	flags.StringVar(
		&rootOptions.TraceLogFile,
		"trace-log-file",
		"",
		"Writes one trace span per provisioning phase to the given file.")
	flags.BoolVar(&rootOptions.NoColor, "no-color", false, "Disables colored output.")
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &internal.UsageError{Err: err}
	}

	return nil
}

// runAction executes action and prints its result to the registered writer.
func runAction(cmd *cobra.Command, container *ioc.NestedContainer, action actions.Action) error {
	result, err := action.Run(cmd.Context())

	var writer io.Writer
	if resolveErr := container.Resolve(&writer); resolveErr != nil {
		writer = cmd.OutOrStdout()
	}

	actions.ShowActionResults(writer, result, err)
	return err
}

var rootLong = heredoc.Doc(`
	Provisions an Azure Function App and its supporting resources by driving the Azure CLI.

	A storage account, a hosting plan, Application Insights and a service principal are
	reused when supplied and created otherwise. The service principal is granted access to
	the function app, the storage account and Application Insights, and its credentials are
	written to '<function-app>.env'.

	Requires the Azure CLI (az) 2.60.0 or later, logged in with 'az login'.
`)

var rootExample = heredoc.Doc(`
	# Linux Python app on the consumption plan
	funcprov -s <subscription-id> -g my-rg -l westus -f myfuncapp -r python -v 3.11 -o Linux -t consumption

	# Premium plan with an existing storage account, integrated with a subnet
	funcprov -s <subscription-id> -g my-rg -l westus -f myfuncapp -r node -v 20 -o Linux \
	  -t premium -k EP1 -b 10 -a existingstorage -n <subnet-resource-id>

	# Settings from a file, overridden by flags
	funcprov --config funcprov.yaml -f otherfuncapp
`)
