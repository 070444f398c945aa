// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azcli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// AzCliFunctionRuntime is one entry of `az functionapp list-runtimes`.
type AzCliFunctionRuntime struct {
	Runtime                    string
	Version                    string
	SupportedFunctionsVersions []string
}

type StorageAccountCreateArgs struct {
	Name          string
	ResourceGroup string
	Location      string
	Sku           string
}

type PlanCreateArgs struct {
	Name          string
	ResourceGroup string
	Location      string
	Sku           string
	IsLinux       bool
	// MaxBurst is only honored by elastic premium plans.
	MaxBurst *int
}

// FunctionAppCreateArgs describes `az functionapp create`. Exactly one of Plan,
// ConsumptionPlanLocation and FlexConsumptionLocation is set.
type FunctionAppCreateArgs struct {
	Name                    string
	ResourceGroup           string
	StorageAccount          string
	Runtime                 string
	RuntimeVersion          string
	FunctionsVersion        string
	OsType                  string
	Plan                    string
	ConsumptionPlanLocation string
	FlexConsumptionLocation string
	AppInsights             string
	AppInsightsKey          string
}

type ResourceUpdateArgs struct {
	Name          string
	ResourceGroup string
	ResourceType  string
	Property      string
	Value         string
}

// ListFunctionRuntimes lists the (runtime, version) pairs supported for the given OS.
func (cli *azCli) ListFunctionRuntimes(ctx context.Context, osType string) ([]AzCliFunctionRuntime, error) {
	res, err := cli.runAzCommand(
		ctx,
		"functionapp", "list-runtimes",
		"--os", strings.ToLower(osType),
		"--output", "json",
	)
	if err != nil {
		return nil, fmt.Errorf("failed listing function runtimes: %w", err)
	}

	if !gjson.Valid(res.Stdout) {
		return nil, fmt.Errorf("failed parsing function runtimes: invalid JSON '%s'", res.Stdout)
	}

	runtimes := []AzCliFunctionRuntime{}
	gjson.Parse(res.Stdout).ForEach(func(_, value gjson.Result) bool {
		runtime := AzCliFunctionRuntime{
			Runtime: value.Get("runtime").String(),
			Version: value.Get("version").String(),
		}
		for _, v := range value.Get("supported_functions_versions").Array() {
			runtime.SupportedFunctionsVersions = append(runtime.SupportedFunctionsVersions, v.String())
		}

		if runtime.Runtime != "" {
			runtimes = append(runtimes, runtime)
		}
		return true
	})

	return runtimes, nil
}

func (cli *azCli) CreateStorageAccount(
	ctx context.Context,
	subscriptionId string,
	args StorageAccountCreateArgs,
) error {
	_, err := cli.runAzCommand(
		ctx,
		"storage", "account", "create",
		"--name", args.Name,
		"--location", args.Location,
		"--resource-group", args.ResourceGroup,
		"--sku", args.Sku,
		"--subscription", subscriptionId,
		"--output", "json",
	)
	if err != nil {
		return fmt.Errorf("failed creating storage account '%s': %w", args.Name, err)
	}

	return nil
}

// CreateFunctionsPlan creates an elastic premium plan with `az functionapp plan create`.
func (cli *azCli) CreateFunctionsPlan(ctx context.Context, subscriptionId string, args PlanCreateArgs) error {
	cmd := []string{
		"functionapp", "plan", "create",
		"--name", args.Name,
		"--resource-group", args.ResourceGroup,
		"--location", args.Location,
		"--sku", args.Sku,
	}
	if args.IsLinux {
		cmd = append(cmd, "--is-linux")
	}
	if args.MaxBurst != nil {
		cmd = append(cmd, "--max-burst", strconv.Itoa(*args.MaxBurst))
	}
	cmd = append(cmd, "--subscription", subscriptionId, "--output", "json")

	if _, err := cli.runAzCommand(ctx, cmd...); err != nil {
		return fmt.Errorf("failed creating functions plan '%s': %w", args.Name, err)
	}

	return nil
}

// CreateAppServicePlan creates a dedicated plan with `az appservice plan create`.
func (cli *azCli) CreateAppServicePlan(ctx context.Context, subscriptionId string, args PlanCreateArgs) error {
	cmd := []string{
		"appservice", "plan", "create",
		"--name", args.Name,
		"--resource-group", args.ResourceGroup,
		"--location", args.Location,
		"--sku", args.Sku,
	}
	if args.IsLinux {
		cmd = append(cmd, "--is-linux")
	}
	cmd = append(cmd, "--subscription", subscriptionId, "--output", "json")

	if _, err := cli.runAzCommand(ctx, cmd...); err != nil {
		return fmt.Errorf("failed creating app service plan '%s': %w", args.Name, err)
	}

	return nil
}

func (cli *azCli) CreateFunctionApp(ctx context.Context, subscriptionId string, args FunctionAppCreateArgs) error {
	cmd := []string{
		"functionapp", "create",
		"--name", args.Name,
		"--resource-group", args.ResourceGroup,
		"--storage-account", args.StorageAccount,
		"--runtime", args.Runtime,
		"--runtime-version", args.RuntimeVersion,
	}
	if args.FunctionsVersion != "" {
		cmd = append(cmd, "--functions-version", args.FunctionsVersion)
	}
	if args.OsType != "" {
		cmd = append(cmd, "--os-type", args.OsType)
	}

	switch {
	case args.Plan != "":
		cmd = append(cmd, "--plan", args.Plan)
	case args.ConsumptionPlanLocation != "":
		cmd = append(cmd, "--consumption-plan-location", args.ConsumptionPlanLocation)
	case args.FlexConsumptionLocation != "":
		cmd = append(cmd, "--flexconsumption-location", args.FlexConsumptionLocation)
	default:
		return fmt.Errorf("function app '%s' has no plan or consumption location", args.Name)
	}

	if args.AppInsights != "" {
		cmd = append(cmd, "--app-insights", args.AppInsights)
	}
	if args.AppInsightsKey != "" {
		cmd = append(cmd, "--app-insights-key", args.AppInsightsKey)
	}
	cmd = append(cmd, "--subscription", subscriptionId, "--output", "json")

	runArgs := cli.newRunArgs(cmd...).WithSensitiveData(args.AppInsightsKey)
	if _, err := cli.runAzCommandWithArgs(ctx, runArgs); err != nil {
		return fmt.Errorf("failed creating function app '%s': %w", args.Name, err)
	}

	return nil
}

// UpdateResourceProperty sets a single property through `az resource update --set`.
func (cli *azCli) UpdateResourceProperty(ctx context.Context, subscriptionId string, args ResourceUpdateArgs) error {
	_, err := cli.runAzCommand(
		ctx,
		"resource", "update",
		"--name", args.Name,
		"--resource-group", args.ResourceGroup,
		"--resource-type", args.ResourceType,
		"--set", fmt.Sprintf("%s=%s", args.Property, args.Value),
		"--subscription", subscriptionId,
		"--output", "json",
	)
	if err != nil {
		return fmt.Errorf("failed updating '%s' on '%s': %w", args.Property, args.Name, err)
	}

	return nil
}

func (cli *azCli) AddVnetIntegration(
	ctx context.Context,
	subscriptionId string,
	resourceGroup string,
	appName string,
	vnet string,
	subnet string,
) error {
	_, err := cli.runAzCommand(
		ctx,
		"functionapp", "vnet-integration", "add",
		"--name", appName,
		"--resource-group", resourceGroup,
		"--vnet", vnet,
		"--subnet", subnet,
		"--subscription", subscriptionId,
		"--output", "json",
	)
	if err != nil {
		return fmt.Errorf("failed adding vnet integration to '%s': %w", appName, err)
	}

	return nil
}
