// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import (
	"context"
	"fmt"

	"github.com/azure/funcprov/cli/funcprov/pkg/tools/azcli"
)

const (
	siteResourceType    = "Microsoft.Web/sites"
	dnsAltServerSetting = "properties.dnsConfiguration.dnsAltServer"
)

// FunctionAppProvisioner creates the function app and applies its post-create configuration.
type FunctionAppProvisioner struct {
	azCli azcli.AzCli
}

func NewFunctionAppProvisioner(azCli azcli.AzCli) *FunctionAppProvisioner {
	return &FunctionAppProvisioner{azCli: azCli}
}

// Create creates the function app bound to the resolved storage account and hosting.
func (p *FunctionAppProvisioner) Create(ctx context.Context, req Request, deps *ResolvedDependencies) error {
	args, err := functionAppCreateArgs(req, deps)
	if err != nil {
		return err
	}

	return p.azCli.CreateFunctionApp(ctx, req.SubscriptionId, args)
}

// Configure sets the DNS alternate server on the new app.
func (p *FunctionAppProvisioner) Configure(ctx context.Context, req Request) error {
	return p.azCli.UpdateResourceProperty(ctx, req.SubscriptionId, azcli.ResourceUpdateArgs{
		Name:          req.FunctionAppName,
		ResourceGroup: req.ResourceGroup,
		ResourceType:  siteResourceType,
		Property:      dnsAltServerSetting,
		Value:         req.DnsAltServer,
	})
}

// IntegrateVirtualNetwork connects the app to the resolved subnet, if any.
func (p *FunctionAppProvisioner) IntegrateVirtualNetwork(
	ctx context.Context,
	req Request,
	deps *ResolvedDependencies,
) error {
	if deps.SubnetId == "" {
		return nil
	}

	return p.azCli.AddVnetIntegration(
		ctx, req.SubscriptionId, req.ResourceGroup, req.FunctionAppName, deps.VnetId, deps.SubnetId)
}

func functionAppCreateArgs(req Request, deps *ResolvedDependencies) (azcli.FunctionAppCreateArgs, error) {
	args := azcli.FunctionAppCreateArgs{
		Name:             req.FunctionAppName,
		ResourceGroup:    req.ResourceGroup,
		StorageAccount:   deps.StorageAccount.Name,
		Runtime:          deps.Runtime,
		RuntimeVersion:   req.RuntimeVersion,
		FunctionsVersion: req.FunctionsVersion,
		OsType:           req.OsType.String(),
	}
	if args.Runtime == "" {
		args.Runtime = req.Runtime
	}

	switch req.FunctionType {
	case FunctionTypeConsumption:
		args.ConsumptionPlanLocation = req.Location
	case FunctionTypeFlexConsumption:
		// flex consumption is Linux only and pins its own functions version
		args.FlexConsumptionLocation = req.Location
		args.OsType = ""
		args.FunctionsVersion = ""
	case FunctionTypePremium, FunctionTypeAppServicePlan:
		if deps.Plan.IsZero() {
			return azcli.FunctionAppCreateArgs{}, fmt.Errorf("hosting plan for '%s' was not resolved", req.FunctionAppName)
		}
		args.Plan = deps.Plan.Name
	default:
		panic(fmt.Sprintf("unhandled function type '%s'", req.FunctionType))
	}

	if deps.AppInsightsKey != "" {
		args.AppInsights = deps.AppInsights.Name
		args.AppInsightsKey = deps.AppInsightsKey
	}

	return args, nil
}
