// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import (
	"context"
	"errors"
	"fmt"

	"github.com/azure/funcprov/cli/funcprov/pkg/azapi"
	"github.com/azure/funcprov/cli/funcprov/pkg/azure"
	"github.com/azure/funcprov/cli/funcprov/pkg/tools/azcli"
)

// ResourceChecker answers existence questions against Azure Resource Manager.
type ResourceChecker interface {
	ResourceExists(ctx context.Context, subscriptionId string, resourceId string, apiVersion string) (bool, error)
	ResourceGroupExists(ctx context.Context, subscriptionId string, resourceGroupName string) (bool, error)
}

// DependencyResolver resolves the storage account, plan, Application Insights and virtual network of a request.
type DependencyResolver struct {
	azCli     azcli.AzCli
	resources ResourceChecker
}

func NewDependencyResolver(azCli azcli.AzCli, resources ResourceChecker) *DependencyResolver {
	return &DependencyResolver{
		azCli:     azCli,
		resources: resources,
	}
}

// ResolveStorageAccount reuses a supplied account, which must exist, or creates `<app>storage`.
func (d *DependencyResolver) ResolveStorageAccount(ctx context.Context, req Request, deps *ResolvedDependencies) error {
	name := req.StorageAccount
	if name == "" {
		name = req.DefaultStorageAccountName()
	}

	resolver := &storageAccountResolver{d: d, req: req, name: name}
	origin, err := ResolveOrCreate(ctx, resolver, req.StorageAccount != "", FailIfMissing)
	if err != nil {
		return err
	}

	deps.StorageAccount = ResolvedResource{Name: name, Origin: origin}
	return nil
}

// ResolvePlan reuses or creates the hosting plan. A supplied plan that does not exist is created.
func (d *DependencyResolver) ResolvePlan(ctx context.Context, req Request, deps *ResolvedDependencies) error {
	if !req.FunctionType.RequiresPlan() {
		return nil
	}

	name := req.Plan
	if name == "" {
		name = req.DefaultPlanName()
	}

	resolver := &planResolver{d: d, req: req, name: name}
	origin, err := ResolveOrCreate(ctx, resolver, req.Plan != "", CreateIfMissing)
	if err != nil {
		return err
	}

	deps.Plan = ResolvedResource{Name: name, Origin: origin}
	return nil
}

// ResolveAppInsights reuses or creates a supplied component and captures its instrumentation key.
// Without one, the function app creation provisions a component named after the app.
func (d *DependencyResolver) ResolveAppInsights(ctx context.Context, req Request, deps *ResolvedDependencies) error {
	if req.AppInsights == "" {
		deps.AppInsights = ResolvedResource{Name: req.FunctionAppName, Origin: OriginImplicit}
		return nil
	}

	resolver := &appInsightsResolver{d: d, req: req}
	origin, err := ResolveOrCreate(ctx, resolver, true, CreateIfMissing)
	if err != nil {
		return err
	}

	deps.AppInsights = ResolvedResource{Name: req.AppInsights, Origin: origin}
	deps.AppInsightsKey = resolver.instrumentationKey
	return nil
}

// ResolveVirtualNetwork parses the subnet id and verifies its virtual network exists.
func (d *DependencyResolver) ResolveVirtualNetwork(ctx context.Context, req Request, deps *ResolvedDependencies) error {
	if req.SubnetId == "" {
		return nil
	}

	subnet, err := azure.ParseSubnetId(req.SubnetId)
	if err != nil {
		return err
	}

	subscriptionId := subnet.SubscriptionId
	if subscriptionId == "" {
		subscriptionId = req.SubscriptionId
	}

	resolver := &virtualNetworkResolver{d: d, subscriptionId: subscriptionId, subnet: subnet}
	origin, err := ResolveOrCreate(ctx, resolver, true, FailIfMissing)
	if err != nil {
		return err
	}

	deps.VirtualNetwork = ResolvedResource{Name: subnet.VnetName, Origin: origin}
	deps.VnetResourceGroup = subnet.ResourceGroup
	deps.VnetId = subnet.VnetId()
	deps.SubnetId = subnet.SubnetId
	return nil
}

type storageAccountResolver struct {
	d    *DependencyResolver
	req  Request
	name string
}

func (r *storageAccountResolver) Kind() string { return "storage account" }
func (r *storageAccountResolver) Name() string { return r.name }

func (r *storageAccountResolver) Lookup(ctx context.Context) (bool, error) {
	return r.d.resources.ResourceExists(
		ctx,
		r.req.SubscriptionId,
		azure.StorageAccountRID(r.req.SubscriptionId, r.req.ResourceGroup, r.name),
		azapi.StorageAccountApiVersion,
	)
}

func (r *storageAccountResolver) Create(ctx context.Context) error {
	return r.d.azCli.CreateStorageAccount(ctx, r.req.SubscriptionId, azcli.StorageAccountCreateArgs{
		Name:          r.name,
		ResourceGroup: r.req.ResourceGroup,
		Location:      r.req.Location,
		Sku:           r.req.StorageSku,
	})
}

type planResolver struct {
	d    *DependencyResolver
	req  Request
	name string
}

func (r *planResolver) Kind() string { return "hosting plan" }
func (r *planResolver) Name() string { return r.name }

func (r *planResolver) Lookup(ctx context.Context) (bool, error) {
	return r.d.resources.ResourceExists(
		ctx,
		r.req.SubscriptionId,
		azure.AppServicePlanRID(r.req.SubscriptionId, r.req.ResourceGroup, r.name),
		azapi.ServerFarmApiVersion,
	)
}

func (r *planResolver) Create(ctx context.Context) error {
	args := azcli.PlanCreateArgs{
		Name:          r.name,
		ResourceGroup: r.req.ResourceGroup,
		Location:      r.req.Location,
		Sku:           r.req.Sku,
		IsLinux:       r.req.OsType.IsLinux(),
	}

	switch r.req.FunctionType {
	case FunctionTypePremium:
		args.MaxBurst = r.req.MaxBurst
		return r.d.azCli.CreateFunctionsPlan(ctx, r.req.SubscriptionId, args)
	case FunctionTypeAppServicePlan:
		return r.d.azCli.CreateAppServicePlan(ctx, r.req.SubscriptionId, args)
	case FunctionTypeConsumption, FunctionTypeFlexConsumption:
		return fmt.Errorf("function type '%s' has no hosting plan", r.req.FunctionType)
	default:
		panic(fmt.Sprintf("unhandled function type '%s'", r.req.FunctionType))
	}
}

type appInsightsResolver struct {
	d                  *DependencyResolver
	req                Request
	instrumentationKey string
}

func (r *appInsightsResolver) Kind() string { return "application insights" }
func (r *appInsightsResolver) Name() string { return r.req.AppInsights }

func (r *appInsightsResolver) Lookup(ctx context.Context) (bool, error) {
	ai, err := r.d.azCli.ShowAppInsights(ctx, r.req.SubscriptionId, r.req.ResourceGroup, r.req.AppInsights)
	if errors.Is(err, azcli.ErrAzCliResourceNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	r.instrumentationKey = ai.InstrumentationKey
	return true, nil
}

func (r *appInsightsResolver) Create(ctx context.Context) error {
	ai, err := r.d.azCli.CreateAppInsights(
		ctx, r.req.SubscriptionId, r.req.ResourceGroup, r.req.AppInsights, r.req.Location)
	if err != nil {
		return err
	}

	r.instrumentationKey = ai.InstrumentationKey
	return nil
}

type virtualNetworkResolver struct {
	d              *DependencyResolver
	subscriptionId string
	subnet         azure.SubnetReference
}

func (r *virtualNetworkResolver) Kind() string { return "virtual network" }
func (r *virtualNetworkResolver) Name() string { return r.subnet.VnetName }

func (r *virtualNetworkResolver) Lookup(ctx context.Context) (bool, error) {
	return r.d.resources.ResourceExists(ctx, r.subscriptionId, r.subnet.VnetId(), azapi.VirtualNetworkApiVersion)
}

func (r *virtualNetworkResolver) Create(ctx context.Context) error {
	return fmt.Errorf("virtual network '%s' must already exist", r.subnet.VnetName)
}
