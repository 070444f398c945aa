// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import (
	"context"

	"github.com/azure/funcprov/cli/funcprov/pkg/azure"
	"github.com/azure/funcprov/cli/funcprov/pkg/tools/azcli"
)

// Roles granted to the service principal.
const (
	RoleOwner                     = "Owner"
	RoleStorageAccountContributor = "Storage Account Contributor"
)

// IdentityProvisioner creates or reuses the service principal and grants it access.
type IdentityProvisioner struct {
	azCli azcli.AzCli
}

func NewIdentityProvisioner(azCli azcli.AzCli) *IdentityProvisioner {
	return &IdentityProvisioner{azCli: azCli}
}

// EnsureServicePrincipal looks up the supplied service principal or creates `<app>-sp`.
func (p *IdentityProvisioner) EnsureServicePrincipal(
	ctx context.Context,
	req Request,
	deps *ResolvedDependencies,
) error {
	if req.ServicePrincipalId != "" {
		sp, err := p.azCli.GetServicePrincipal(ctx, req.ServicePrincipalId)
		if err != nil {
			return err
		}

		// the service principal signs in to the subscription's tenant
		tenantId := deps.AccountTenantId
		if tenantId == "" {
			tenantId = sp.OwnerTenantId
		}

		deps.ServicePrincipal = &ServicePrincipalCredential{
			ClientId: sp.AppId,
			TenantId: tenantId,
			Origin:   OriginReused,
		}
		return nil
	}

	creds, err := p.azCli.CreateServicePrincipal(ctx, req.DefaultServicePrincipalName())
	if err != nil {
		return err
	}

	deps.ServicePrincipal = &ServicePrincipalCredential{
		ClientId:     creds.AppId,
		ClientSecret: creds.Password,
		TenantId:     creds.Tenant,
		Origin:       OriginCreated,
	}
	return nil
}

// RoleAssignments returns the three grants for the service principal, in the order they are applied.
func RoleAssignments(req Request, deps *ResolvedDependencies) []RoleAssignment {
	principalId := deps.ServicePrincipal.ClientId

	return []RoleAssignment{
		{
			PrincipalId: principalId,
			Role:        RoleOwner,
			Scope:       azure.WebsiteRID(req.SubscriptionId, req.ResourceGroup, req.FunctionAppName),
		},
		{
			PrincipalId: principalId,
			Role:        RoleStorageAccountContributor,
			Scope:       azure.StorageAccountRID(req.SubscriptionId, req.ResourceGroup, deps.StorageAccount.Name),
		},
		{
			PrincipalId: principalId,
			Role:        RoleOwner,
			Scope:       azure.AppInsightsRID(req.SubscriptionId, req.ResourceGroup, deps.AppInsights.Name),
		},
	}
}

// GrantAccess applies the role assignments one by one. A failure leaves earlier grants in place.
func (p *IdentityProvisioner) GrantAccess(ctx context.Context, req Request, deps *ResolvedDependencies) error {
	for _, assignment := range RoleAssignments(req, deps) {
		err := p.azCli.CreateRoleAssignment(ctx, azcli.RoleAssignmentArgs{
			Assignee: assignment.PrincipalId,
			Role:     assignment.Role,
			Scope:    assignment.Scope,
		})
		if err != nil {
			return err
		}

		deps.RoleAssignments = append(deps.RoleAssignments, assignment)
	}

	return nil
}
