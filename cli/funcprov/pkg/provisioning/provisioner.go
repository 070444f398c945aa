// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/azure/funcprov/cli/funcprov/internal/tracing"
	"github.com/azure/funcprov/cli/funcprov/pkg/output"
	"github.com/azure/funcprov/cli/funcprov/pkg/tools/azcli"
	"github.com/azure/funcprov/cli/funcprov/pkg/ux"
)

// Phase is one step of a provisioning run.
type Phase struct {
	Name      string
	Message   string
	Provision func(ctx context.Context, progress *ux.Progress) error
}

// Provisioner runs the provisioning phases in order and stops at the first failure.
type Provisioner struct {
	azCli        azcli.AzCli
	resources    ResourceChecker
	runtimes     *RuntimeValidator
	dependencies *DependencyResolver
	functionApp  *FunctionAppProvisioner
	identity     *IdentityProvisioner
	stepFactory  ux.StepFactory
}

func NewProvisioner(azCli azcli.AzCli, resources ResourceChecker, stepFactory ux.StepFactory) *Provisioner {
	return &Provisioner{
		azCli:        azCli,
		resources:    resources,
		runtimes:     NewRuntimeValidator(azCli),
		dependencies: NewDependencyResolver(azCli, resources),
		functionApp:  NewFunctionAppProvisioner(azCli),
		identity:     NewIdentityProvisioner(azCli),
		stepFactory:  stepFactory,
	}
}

// Provision validates the request and runs every phase. The returned dependencies are
// populated up to the failing phase when an error is returned.
func (p *Provisioner) Provision(ctx context.Context, req Request) (deps *ResolvedDependencies, err error) {
	ctx, span := tracing.Start(ctx, "provision",
		tracing.SubscriptionIdKey.String(req.SubscriptionId),
		tracing.ResourceGroupKey.String(req.ResourceGroup),
		tracing.FunctionAppKey.String(req.FunctionAppName),
		tracing.FunctionTypeKey.String(req.FunctionType.String()),
	)
	defer func() { tracing.End(span, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	deps = &ResolvedDependencies{}
	return deps, p.RunPhases(ctx, p.Phases(req, deps))
}

// RunPhases executes phases sequentially, each inside its own progress step and span.
func (p *Provisioner) RunPhases(ctx context.Context, phases []Phase) error {
	start := time.Now()

	for i, phase := range phases {
		phaseStart := time.Now()
		prefix := fmt.Sprintf("(%d/%d)", i+1, len(phases))

		phaseCtx, span := tracing.Start(ctx, "provision."+phase.Name, tracing.PhaseKey.String(phase.Name))
		err := p.stepFactory(prefix, phase.Message, phase.Provision).Execute(phaseCtx)
		tracing.End(span, err)

		if err != nil {
			log.Printf("[%s] failed: %v", phase.Name, err)
			return fmt.Errorf("%s: %w", phase.Name, err)
		}

		log.Printf("[%s] completed in %v", phase.Name, time.Since(phaseStart).Round(time.Millisecond))
	}

	log.Printf("provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// Phases returns the ordered phases for req. Phases that do not apply to the request are left out.
func (p *Provisioner) Phases(req Request, deps *ResolvedDependencies) []Phase {
	phases := []Phase{
		{
			Name:    "preflight",
			Message: "Checking Azure CLI",
			Provision: func(ctx context.Context, progress *ux.Progress) error {
				if err := p.azCli.CheckInstalled(ctx); err != nil {
					return err
				}

				account, err := p.azCli.GetAccount(ctx, req.SubscriptionId)
				if err != nil {
					return err
				}

				deps.AccountTenantId = account.TenantId
				progress.Message(fmt.Sprintf("Using subscription %s", account.Name))
				return nil
			},
		},
		{
			Name:    "runtime",
			Message: fmt.Sprintf("Validating runtime %s %s", req.Runtime, req.RuntimeVersion),
			Provision: func(ctx context.Context, _ *ux.Progress) error {
				runtime, err := p.runtimes.Validate(ctx, req.OsType, req.Runtime, req.RuntimeVersion)
				if err != nil {
					return err
				}

				deps.Runtime = runtime
				return nil
			},
		},
		{
			Name:    "resource-group",
			Message: fmt.Sprintf("Checking resource group %s", req.ResourceGroup),
			Provision: func(ctx context.Context, _ *ux.Progress) error {
				exists, err := p.resources.ResourceGroupExists(ctx, req.SubscriptionId, req.ResourceGroup)
				if err != nil {
					return err
				}
				if !exists {
					return fmt.Errorf("%w: resource group '%s'", ErrResourceNotFound, req.ResourceGroup)
				}

				return nil
			},
		},
		{
			Name:    "storage",
			Message: "Resolving storage account",
			Provision: func(ctx context.Context, _ *ux.Progress) error {
				return p.dependencies.ResolveStorageAccount(ctx, req, deps)
			},
		},
		{
			Name:    "app-insights",
			Message: "Resolving Application Insights",
			Provision: func(ctx context.Context, _ *ux.Progress) error {
				return p.dependencies.ResolveAppInsights(ctx, req, deps)
			},
		},
	}

	if req.SubnetId != "" {
		phases = append(phases, Phase{
			Name:    "virtual-network",
			Message: "Resolving virtual network",
			Provision: func(ctx context.Context, _ *ux.Progress) error {
				return p.dependencies.ResolveVirtualNetwork(ctx, req, deps)
			},
		})
	}

	if req.FunctionType.RequiresPlan() {
		phases = append(phases, Phase{
			Name:    "plan",
			Message: fmt.Sprintf("Resolving %s hosting plan", req.FunctionType),
			Provision: func(ctx context.Context, progress *ux.Progress) error {
				if err := p.dependencies.ResolvePlan(ctx, req, deps); err != nil {
					return err
				}

				// max burst is only applied when the plan is created
				if req.MaxBurst != nil && deps.Plan.Origin == OriginReused {
					log.Printf("ignoring max burst %d, hosting plan '%s' already exists", *req.MaxBurst, deps.Plan.Name)
					progress.Message(output.WithWarningFormat(
						"WARNING: max burst %d was not applied to the existing plan %s", *req.MaxBurst, deps.Plan.Name))
				}

				return nil
			},
		})
	}

	phases = append(phases,
		Phase{
			Name:    "function-app",
			Message: fmt.Sprintf("Creating function app %s", req.FunctionAppName),
			Provision: func(ctx context.Context, _ *ux.Progress) error {
				return p.functionApp.Create(ctx, req, deps)
			},
		},
		Phase{
			Name:    "configure",
			Message: "Configuring DNS alternate server",
			Provision: func(ctx context.Context, _ *ux.Progress) error {
				return p.functionApp.Configure(ctx, req)
			},
		},
	)

	if req.SubnetId != "" {
		phases = append(phases, Phase{
			Name:    "vnet-integration",
			Message: "Adding virtual network integration",
			Provision: func(ctx context.Context, _ *ux.Progress) error {
				return p.functionApp.IntegrateVirtualNetwork(ctx, req, deps)
			},
		})
	}

	phases = append(phases,
		Phase{
			Name:    "identity",
			Message: "Resolving service principal",
			Provision: func(ctx context.Context, _ *ux.Progress) error {
				return p.identity.EnsureServicePrincipal(ctx, req, deps)
			},
		},
		Phase{
			Name:    "role-assignments",
			Message: "Assigning roles",
			Provision: func(ctx context.Context, _ *ux.Progress) error {
				return p.identity.GrantAccess(ctx, req, deps)
			},
		},
		Phase{
			Name:    "credentials",
			Message: "Writing credential file",
			Provision: func(_ context.Context, _ *ux.Progress) error {
				return WriteCredentialFile(req, deps)
			},
		},
	)

	return phases
}
