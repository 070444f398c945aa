// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"io"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/azure/funcprov/cli/funcprov/internal"
	"github.com/azure/funcprov/cli/funcprov/pkg/azapi"
	"github.com/azure/funcprov/cli/funcprov/pkg/exec"
	"github.com/azure/funcprov/cli/funcprov/pkg/ioc"
	"github.com/azure/funcprov/cli/funcprov/pkg/provisioning"
	"github.com/azure/funcprov/cli/funcprov/pkg/tools/azcli"
	"github.com/azure/funcprov/cli/funcprov/pkg/ux"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const armApplicationId = "funcprov"

// Registers common funcprov dependencies
func registerCommonDependencies(container *ioc.NestedContainer) {
	container.RegisterSingleton(func(rootOptions *internal.GlobalCommandOptions) exec.CommandRunner {
		return exec.NewCommandRunner(&exec.RunnerOptions{
			DebugLogging: rootOptions.EnableDebugLogging,
		})
	})

	// Tools
	container.RegisterSingleton(func(
		rootOptions *internal.GlobalCommandOptions,
		commandRunner exec.CommandRunner,
	) azcli.AzCli {
		return azcli.NewAzCli(azcli.NewAzCliArgs{
			EnableDebug:   rootOptions.EnableDebugLogging,
			CommandRunner: commandRunner,
		})
	})

	// Existence checks reuse the identity az is logged in with.
	container.RegisterSingleton(func() (azcore.TokenCredential, error) {
		return azidentity.NewAzureCLICredential(nil)
	})

	container.RegisterSingleton(func() *arm.ClientOptions {
		return &arm.ClientOptions{
			ClientOptions: policy.ClientOptions{
				Telemetry: policy.TelemetryOptions{
					ApplicationID: armApplicationId,
				},
			},
		}
	})

	container.RegisterSingleton(azapi.NewResourceService)
	container.RegisterSingleton(func(resourceService *azapi.ResourceService) provisioning.ResourceChecker {
		return resourceService
	})

	container.RegisterSingleton(provisioning.NewProvisioner)
}

// registerConsole registers the writer commands print to and the progress step factory.
// Steps animate a spinner only when out is an interactive stdout.
func registerConsole(container *ioc.NestedContainer, out io.Writer) {
	container.RegisterSingleton(func(rootOptions *internal.GlobalCommandOptions) io.Writer {
		if rootOptions.NoColor || os.Getenv("NO_COLOR") != "" {
			return colorable.NewNonColorable(out)
		}

		if out == io.Writer(os.Stdout) {
			return colorable.NewColorableStdout()
		}

		return out
	})

	container.RegisterSingleton(func(rootOptions *internal.GlobalCommandOptions, writer io.Writer) ux.StepFactory {
		interactive := out == io.Writer(os.Stdout) &&
			isatty.IsTerminal(os.Stdout.Fd()) &&
			!rootOptions.EnableDebugLogging

		return ux.NewStepFactory(writer, interactive)
	})
}
