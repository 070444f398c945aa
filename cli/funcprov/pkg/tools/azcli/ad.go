// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azcli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// AzCliServicePrincipalCredentials is the output of `az ad sp create-for-rbac`.
type AzCliServicePrincipalCredentials struct {
	AppId       string `json:"appId"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	Tenant      string `json:"tenant"`
}

type AzCliServicePrincipal struct {
	Id          string
	AppId       string
	DisplayName string
	// OwnerTenantId is the tenant of the app registration, which differs from the
	// sign-in tenant for multi-tenant apps.
	OwnerTenantId string
}

type RoleAssignmentArgs struct {
	Assignee string
	Role     string
	Scope    string
}

// CreateServicePrincipal creates a service principal without any role assignment.
// The password is only ever returned by this call.
func (cli *azCli) CreateServicePrincipal(ctx context.Context, name string) (*AzCliServicePrincipalCredentials, error) {
	// the output carries the password, keep it out of the debug log
	runArgs := cli.newRunArgs(
		"ad", "sp", "create-for-rbac",
		"--name", name,
		"--output", "json",
	).WithDebugLogging(false)

	res, err := cli.runAzCommandWithArgs(ctx, runArgs)
	if err != nil {
		return nil, fmt.Errorf("failed running az ad sp create-for-rbac: %w", err)
	}

	var result AzCliServicePrincipalCredentials
	if err := json.Unmarshal([]byte(res.Stdout), &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal service principal output: %w", err)
	}

	if result.AppId == "" {
		return nil, fmt.Errorf("az ad sp create-for-rbac returned no appId")
	}

	return &result, nil
}

// GetServicePrincipal resolves a service principal by object id, app id or name.
func (cli *azCli) GetServicePrincipal(ctx context.Context, id string) (*AzCliServicePrincipal, error) {
	res, err := cli.runAzCommand(
		ctx,
		"ad", "sp", "show",
		"--id", id,
		"--output", "json",
	)
	if err != nil {
		return nil, fmt.Errorf("failed getting service principal '%s': %w", id, err)
	}

	if !gjson.Valid(res.Stdout) {
		return nil, fmt.Errorf("failed parsing service principal: invalid JSON '%s'", res.Stdout)
	}

	result := gjson.Parse(res.Stdout)
	return &AzCliServicePrincipal{
		Id:            result.Get("id").String(),
		AppId:         result.Get("appId").String(),
		DisplayName:   result.Get("displayName").String(),
		OwnerTenantId: result.Get("appOwnerOrganizationId").String(),
	}, nil
}

func (cli *azCli) CreateRoleAssignment(ctx context.Context, assignment RoleAssignmentArgs) error {
	_, err := cli.runAzCommand(
		ctx,
		"role", "assignment", "create",
		"--assignee", assignment.Assignee,
		"--role", assignment.Role,
		"--scope", assignment.Scope,
		"--output", "json",
	)
	if err != nil {
		return fmt.Errorf("failed assigning role '%s' on '%s': %w", assignment.Role, assignment.Scope, err)
	}

	return nil
}
