// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import (
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/azure/funcprov/cli/funcprov/pkg/azapi"
	"github.com/azure/funcprov/cli/funcprov/pkg/config"
	"github.com/azure/funcprov/cli/funcprov/pkg/exec"
	"github.com/azure/funcprov/cli/funcprov/pkg/tools/azcli"
	"github.com/azure/funcprov/cli/funcprov/pkg/ux"
	"github.com/azure/funcprov/cli/funcprov/test/mocks"
	"github.com/azure/funcprov/cli/funcprov/test/mocks/mockarmresources"
	"github.com/azure/funcprov/cli/funcprov/test/mocks/mockexec"
	"github.com/stretchr/testify/require"
)

const (
	testSubscription = "00000000-0000-0000-0000-000000000001"
	testGroup        = "func-rg"
	testApp          = "AbcFun12"
)

const runtimeCatalog = `[
  {"runtime": "python", "version": "3.9", "supported_functions_versions": ["4"]},
  {"runtime": "python", "version": "3.11", "supported_functions_versions": ["4"]},
  {"runtime": "node", "version": "20", "supported_functions_versions": ["4"]},
  {"runtime": "dotnet-isolated", "version": "8.0", "supported_functions_versions": ["4"]}
]`

type testEnv struct {
	mockContext *mocks.MockContext
	runner      *mockexec.MockCommandRunner
	azCli       azcli.AzCli
	resources   *azapi.ResourceService
	provisioner *Provisioner
}

func newTestEnv(t *testing.T) *testEnv {
	mockContext := mocks.NewMockContext(context.Background())
	runner := mockContext.CommandRunner

	respond := func(prefix string, stdout string) {
		runner.When(func(args exec.RunArgs, command string) bool {
			return strings.HasPrefix(command, prefix)
		}).Respond(exec.NewRunResult(0, stdout, ""))
	}

	respond("az version", `{"azure-cli": "2.61.0"}`)
	respond("az account show", `{"id": "`+testSubscription+`", "name": "Dev", "tenantId": "account-tenant"}`)
	respond("az functionapp list-runtimes", runtimeCatalog)
	respond("az storage account create", `{}`)
	respond("az functionapp plan create", `{}`)
	respond("az appservice plan create", `{}`)
	respond("az functionapp create", `{}`)
	respond("az resource update", `{}`)
	respond("az functionapp vnet-integration add", `{}`)
	respond("az role assignment create", `{}`)
	respond("az ad sp create-for-rbac",
		`{"appId": "new-client", "displayName": "sp", "password": "new-secret", "tenant": "new-tenant"}`)
	respond("az ad sp show",
		`{"id": "sp-object", "appId": "existing-client", "appOwnerOrganizationId": "existing-tenant"}`)
	respond("az monitor app-insights component show", `{"name": "shared-ai", "instrumentationKey": "ai-key"}`)
	respond("az monitor app-insights component create", `{"name": "shared-ai", "instrumentationKey": "new-ai-key"}`)

	mockarmresources.AddResourceGroupExistsMock(mockContext.HttpClient, testSubscription, testGroup, true)

	cli := azcli.NewAzCli(azcli.NewAzCliArgs{CommandRunner: runner})
	resources := azapi.NewResourceService(mockContext.Credentials, mockContext.ArmClientOptions)

	return &testEnv{
		mockContext: mockContext,
		runner:      runner,
		azCli:       cli,
		resources:   resources,
		provisioner: NewProvisioner(cli, resources, ux.NewStepFactory(io.Discard, false)),
	}
}

func (e *testEnv) ctx() context.Context {
	return *e.mockContext.Context
}

func (e *testEnv) failWhen(prefix string, stderr string) {
	e.runner.When(func(args exec.RunArgs, command string) bool {
		return strings.HasPrefix(command, prefix)
	}).Fail(1, stderr)
}

// commandIndex returns the position of the first recorded call starting with prefix, or -1.
func (e *testEnv) commandIndex(prefix string) int {
	return slices.IndexFunc(e.runner.Calls(), func(args exec.RunArgs) bool {
		return strings.HasPrefix(strings.Join(append([]string{args.Cmd}, args.Args...), " "), prefix)
	})
}

func baseConfig(t *testing.T) config.ProvisionConfig {
	return config.ProvisionConfig{
		SubscriptionId:  testSubscription,
		ResourceGroup:   testGroup,
		Location:        "westus",
		FunctionAppName: testApp,
		Runtime:         "Python",
		RuntimeVersion:  "3.9",
		Os:              "Linux",
		FunctionType:    "consumption",
		OutputDir:       t.TempDir(),
	}
}

func newTestRequest(t *testing.T, mutate func(cfg *config.ProvisionConfig)) Request {
	cfg := baseConfig(t)
	if mutate != nil {
		mutate(&cfg)
	}

	req, err := NewRequest(cfg)
	require.NoError(t, err)
	return req
}
