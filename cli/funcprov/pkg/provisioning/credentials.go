// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import (
	"github.com/azure/funcprov/cli/funcprov/pkg/environment"
)

// CredentialFileValues returns the variables persisted to `<app>.env`.
func CredentialFileValues(req Request, deps *ResolvedDependencies) map[string]string {
	values := map[string]string{
		environment.SubscriptionIdEnvVarName:     req.SubscriptionId,
		environment.FunctionAppNameEnvVarName:    req.FunctionAppName,
		environment.StorageAccountNameEnvVarName: deps.StorageAccount.Name,
	}

	if sp := deps.ServicePrincipal; sp != nil {
		values[environment.ClientIdEnvVarName] = sp.ClientId
		values[environment.TenantIdEnvVarName] = sp.TenantId
		if sp.ClientSecret != "" {
			values[environment.ClientSecretEnvVarName] = sp.ClientSecret
		}
	}

	if deps.AppInsightsKey != "" {
		values[environment.AppInsightsNameEnvVarName] = deps.AppInsights.Name
		values[environment.AppInsightsKeyEnvVarName] = deps.AppInsightsKey
	}

	return values
}

// WriteCredentialFile persists the credential file into the request output directory.
func WriteCredentialFile(req Request, deps *ResolvedDependencies) error {
	path := environment.DotEnvPath(req.OutputDir, req.FunctionAppName)
	if err := environment.WriteDotEnv(path, CredentialFileValues(req, deps)); err != nil {
		return err
	}

	deps.CredentialFilePath = path
	return nil
}
