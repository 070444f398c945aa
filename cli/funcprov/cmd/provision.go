// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/azure/funcprov/cli/funcprov/cmd/actions"
	"github.com/azure/funcprov/cli/funcprov/internal"
	"github.com/azure/funcprov/cli/funcprov/pkg/config"
	"github.com/azure/funcprov/cli/funcprov/pkg/ioc"
	"github.com/azure/funcprov/cli/funcprov/pkg/output"
	"github.com/azure/funcprov/cli/funcprov/pkg/provisioning"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type provisionFlags struct {
	config.ProvisionConfig
	configFile string
	global     *internal.GlobalCommandOptions
}

func (f *provisionFlags) Bind(local *pflag.FlagSet, global *internal.GlobalCommandOptions) {
	local.StringVarP(&f.SubscriptionId, "subscription", "s", "", "Subscription id.")
	local.StringVarP(&f.ResourceGroup, "resource-group", "g", "", "Existing resource group.")
	local.StringVarP(&f.Location, "location", "l", "", "Location of the new resources, e.g. westus.")
	local.StringVarP(&f.FunctionAppName, "function-app", "f", "", "Name of the function app.")
	local.StringVarP(&f.Runtime, "runtime", "r", "", "Language runtime, e.g. python.")
	local.StringVarP(&f.RuntimeVersion, "runtime-version", "v", "", "Language runtime version, e.g. 3.11.")
	local.StringVarP(&f.Os, "os", "o", "", "Operating system: Linux or Windows.")
	local.StringVarP(
		&f.FunctionType,
		"function-type",
		"t",
		"",
		fmt.Sprintf("Hosting type: %s.", strings.Join(functionTypeNames(), ", ")))
	local.StringVarP(&f.Sku, "sku", "k", "", "Plan SKU. Required for premium and appserviceplan.")
	local.StringVarP(&f.MaxBurst, "max-burst", "b", "", "Maximum elastic worker count of a premium plan (0-100).")
	local.StringVarP(&f.Plan, "plan", "p", "", "Existing or new hosting plan name. Defaults to '<function-app>-plan'.")
	local.StringVarP(&f.SubnetId, "subnet-id", "n", "", "Resource id of the subnet to integrate with.")
	local.StringVarP(&f.ServicePrincipalId, "service-principal", "i", "", "Id of an existing service principal.")
	local.StringVarP(&f.StorageAccount, "storage-account", "a", "", "Existing or new storage account name.")
	local.StringVarP(&f.AppInsights, "app-insights", "m", "", "Existing or new Application Insights name.")

	local.StringVar(&f.StorageSku, "storage-sku", "", fmt.Sprintf("Storage account SKU. (default %s)",
		config.DefaultStorageSku))
	local.StringVar(&f.FunctionsVersion, "functions-version", "", fmt.Sprintf("Functions runtime version. (default %s)",
		config.DefaultFunctionsVersion))
	local.StringVar(&f.DnsAltServer, "dns-alt-server", "", fmt.Sprintf("Alternate DNS server of the app. (default %s)",
		config.DefaultDnsAltServer))
	local.StringVar(&f.OutputDir, "output-dir", "", "Directory of the credential file. (default current directory)")
	local.StringVar(&f.configFile, "config", "", "YAML file with provisioning settings. Flags take precedence.")

	f.global = global
}

func provisionCmdDesign(global *internal.GlobalCommandOptions) (*cobra.Command, *provisionFlags) {
	cmd := &cobra.Command{
		Use:     "funcprov",
		Short:   "Provision an Azure Function App and its supporting resources.",
		Long:    rootLong,
		Example: rootExample,
		Args:    noArgs,
	}

	flags := &provisionFlags{}
	flags.Bind(cmd.Flags(), global)

	return cmd, flags
}

type provisionAction struct {
	flags     provisionFlags
	container *ioc.NestedContainer
	lookupEnv func(string) (string, bool)
}

func newProvisionAction(flags provisionFlags, container *ioc.NestedContainer) *provisionAction {
	return &provisionAction{
		flags:     flags,
		container: container,
		lookupEnv: os.LookupEnv,
	}
}

func (p *provisionAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	cfg, err := p.settings()
	if err != nil {
		return nil, err
	}

	req, err := provisioning.NewRequest(cfg)
	if err != nil {
		return nil, err
	}

	var deps *provisioning.ResolvedDependencies
	err = p.container.Invoke(func(provisioner *provisioning.Provisioner, writer io.Writer) error {
		if plan := strings.TrimSpace(cfg.Plan); plan != "" && req.Plan == "" {
			fmt.Fprintln(writer, output.WithWarningFormat(
				"WARNING: ignoring plan %s, function type %s has no hosting plan", plan, req.FunctionType))
		}

		var err error
		deps, err = provisioner.Provision(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &actions.ActionResult{
		Message: &actions.ResultMessage{
			Header: fmt.Sprintf(
				"Function app %s provisioned.",
				output.WithHighLightFormat("%s", req.FunctionAppName)),
			FollowUp: provisionSummary(req, deps),
		},
	}, nil
}

// settings merges the config file, the environment and the flags, in increasing precedence.
func (p *provisionAction) settings() (config.ProvisionConfig, error) {
	cfg := &config.ProvisionConfig{}
	if p.flags.configFile != "" {
		loaded, err := config.Load(p.flags.configFile)
		if err != nil {
			return config.ProvisionConfig{}, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv(p.lookupEnv)
	cfg.Merge(p.flags.ProvisionConfig)

	return *cfg, nil
}

func provisionSummary(req provisioning.Request, deps *provisioning.ResolvedDependencies) string {
	lines := []string{
		fmt.Sprintf("Function app: %s (%s, %s)", req.FunctionAppName, req.FunctionType, req.OsType),
		resourceLine("Storage account", deps.StorageAccount),
	}

	if !deps.Plan.IsZero() {
		lines = append(lines, resourceLine("Hosting plan", deps.Plan))
	}
	if !deps.AppInsights.IsZero() {
		lines = append(lines, resourceLine("Application Insights", deps.AppInsights))
	}
	if !deps.VirtualNetwork.IsZero() {
		lines = append(lines, resourceLine("Virtual network", deps.VirtualNetwork))
	}
	if sp := deps.ServicePrincipal; sp != nil {
		lines = append(lines, fmt.Sprintf("Service principal: %s (%s)", sp.ClientId, sp.Origin))
	}
	for _, assignment := range deps.RoleAssignments {
		lines = append(lines, fmt.Sprintf("Role %s on %s", assignment.Role, assignment.Scope))
	}

	summary := output.WithBullets(lines)
	if deps.CredentialFilePath != "" {
		summary += fmt.Sprintf("Credentials written to %s", output.WithHighLightFormat("%s", deps.CredentialFilePath))
	}

	return strings.TrimSuffix(summary, "\n")
}

func resourceLine(kind string, resource provisioning.ResolvedResource) string {
	return fmt.Sprintf("%s: %s (%s)", kind, resource.Name, resource.Origin)
}

func functionTypeNames() []string {
	names := make([]string, 0, len(provisioning.FunctionTypes))
	for _, functionType := range provisioning.FunctionTypes {
		names = append(names, string(functionType))
	}

	return names
}
