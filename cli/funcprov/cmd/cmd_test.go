// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/azure/funcprov/cli/funcprov/internal"
	"github.com/azure/funcprov/cli/funcprov/pkg/environment"
	"github.com/azure/funcprov/cli/funcprov/pkg/exec"
	"github.com/azure/funcprov/cli/funcprov/pkg/ioc"
	"github.com/azure/funcprov/cli/funcprov/pkg/provisioning"
	"github.com/azure/funcprov/cli/funcprov/test/mocks"
	"github.com/azure/funcprov/cli/funcprov/test/mocks/mockarmresources"
	"github.com/azure/funcprov/cli/funcprov/test/mocks/mockexec"
	"github.com/stretchr/testify/require"
)

const testSubscription = "00000000-0000-0000-0000-000000000001"

const runtimeCatalog = `[
  {"runtime": "python", "version": "3.11", "supported_functions_versions": ["4"]},
  {"runtime": "python", "version": "3.9", "supported_functions_versions": ["4"]},
  {"runtime": "node", "version": "20", "supported_functions_versions": ["4"]}
]`

func newTestContainer(mockContext *mocks.MockContext) *ioc.NestedContainer {
	container := ioc.NewNestedContainer(nil)
	registerCommonDependencies(container)

	ioc.RegisterInstance[exec.CommandRunner](container, mockContext.CommandRunner)
	ioc.RegisterInstance[azcore.TokenCredential](container, mockContext.Credentials)
	ioc.RegisterInstance(container, mockContext.ArmClientOptions)

	return container
}

func respond(runner *mockexec.MockCommandRunner, prefix string, stdout string) {
	runner.When(func(args exec.RunArgs, command string) bool {
		return strings.HasPrefix(command, prefix)
	}).Respond(exec.NewRunResult(0, stdout, ""))
}

func clearAzureEnv(t *testing.T) {
	for _, name := range []string{"AZURE_SUBSCRIPTION_ID", "AZURE_RESOURCE_GROUP", "AZURE_LOCATION"} {
		t.Setenv(name, "")
	}
}

func executeRoot(t *testing.T, container *ioc.NestedContainer, args ...string) (string, error) {
	out := &bytes.Buffer{}
	rootCmd := NewRootCmd(out, container)
	rootCmd.SetArgs(args)
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProvisionMissingFlags(t *testing.T) {
	clearAzureEnv(t)
	mockContext := mocks.NewMockContext(context.Background())

	_, err := executeRoot(t, newTestContainer(mockContext), "-s", testSubscription, "-f", "AbcFun12")
	require.Error(t, err)

	var usageErr *internal.UsageError
	require.True(t, errors.As(err, &usageErr))
	require.ErrorIs(t, err, provisioning.ErrMissingParameter)
	require.Contains(t, err.Error(), "--resource-group (-g)")
	require.Contains(t, err.Error(), "--function-type (-t)")
	require.NotContains(t, err.Error(), "--subscription")

	require.Empty(t, mockContext.CommandRunner.Calls())
	require.Empty(t, mockContext.HttpClient.Requests())
}

func TestProvisionUnknownFlag(t *testing.T) {
	mockContext := mocks.NewMockContext(context.Background())

	_, err := executeRoot(t, newTestContainer(mockContext), "--bogus")
	var usageErr *internal.UsageError
	require.True(t, errors.As(err, &usageErr))
	require.Empty(t, mockContext.CommandRunner.Calls())
}

func TestPositionalArgumentsAreUsageErrors(t *testing.T) {
	for _, args := range [][]string{{"myfuncapp"}, {"version", "extra"}, {"runtimes", "linux"}} {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			mockContext := mocks.NewMockContext(context.Background())

			_, err := executeRoot(t, newTestContainer(mockContext), args...)
			var usageErr *internal.UsageError
			require.True(t, errors.As(err, &usageErr))
			require.Empty(t, mockContext.CommandRunner.Calls())
		})
	}
}

func TestProvisionFlagsBind(t *testing.T) {
	cmd, flags := provisionCmdDesign(&internal.GlobalCommandOptions{})

	err := cmd.ParseFlags([]string{
		"-s", testSubscription,
		"-g", "func-rg",
		"-l", "westus",
		"-f", "AbcFun12",
		"-r", "python",
		"-v", "3.11",
		"-o", "linux",
		"-t", "premium",
		"-k", "EP1",
		"-b", "10",
		"-p", "shared-plan",
		"-n", "/subscriptions/x/resourceGroups/RG/providers/Microsoft.Network/virtualNetworks/V/subnets/S",
		"-i", "sp-id",
		"-a", "sharedstorage",
		"-m", "shared-ai",
		"--storage-sku", "Standard_GRS",
		"--functions-version", "4",
		"--dns-alt-server", "10.0.0.4",
		"--output-dir", "out",
		"--config", "funcprov.yaml",
	})
	require.NoError(t, err)

	cfg := flags.ProvisionConfig
	require.Equal(t, testSubscription, cfg.SubscriptionId)
	require.Equal(t, "func-rg", cfg.ResourceGroup)
	require.Equal(t, "westus", cfg.Location)
	require.Equal(t, "AbcFun12", cfg.FunctionAppName)
	require.Equal(t, "python", cfg.Runtime)
	require.Equal(t, "3.11", cfg.RuntimeVersion)
	require.Equal(t, "linux", cfg.Os)
	require.Equal(t, "premium", cfg.FunctionType)
	require.Equal(t, "EP1", cfg.Sku)
	require.Equal(t, "10", cfg.MaxBurst)
	require.Equal(t, "shared-plan", cfg.Plan)
	require.True(t, strings.HasSuffix(cfg.SubnetId, "/subnets/S"))
	require.Equal(t, "sp-id", cfg.ServicePrincipalId)
	require.Equal(t, "sharedstorage", cfg.StorageAccount)
	require.Equal(t, "shared-ai", cfg.AppInsights)
	require.Equal(t, "Standard_GRS", cfg.StorageSku)
	require.Equal(t, "4", cfg.FunctionsVersion)
	require.Equal(t, "10.0.0.4", cfg.DnsAltServer)
	require.Equal(t, "out", cfg.OutputDir)
	require.Equal(t, "funcprov.yaml", flags.configFile)
}

func TestProvisionSettingsPrecedence(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "funcprov.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
subscriptionId: file-subscription
resourceGroup: file-rg
location: eastus
functionAppName: FileApp
runtime: node
`), 0600))

	cmd, flags := provisionCmdDesign(&internal.GlobalCommandOptions{})
	require.NoError(t, cmd.ParseFlags([]string{"--config", configPath, "-f", "FlagApp"}))

	action := newProvisionAction(*flags, ioc.NewNestedContainer(nil))
	action.lookupEnv = func(name string) (string, bool) {
		if name == "AZURE_RESOURCE_GROUP" {
			return "env-rg", true
		}
		return "", false
	}

	cfg, err := action.settings()
	require.NoError(t, err)
	require.Equal(t, "file-subscription", cfg.SubscriptionId)
	require.Equal(t, "env-rg", cfg.ResourceGroup)
	require.Equal(t, "eastus", cfg.Location)
	require.Equal(t, "FlagApp", cfg.FunctionAppName)
	require.Equal(t, "node", cfg.Runtime)
}

func TestProvisionConfigFileNotFound(t *testing.T) {
	cmd, flags := provisionCmdDesign(&internal.GlobalCommandOptions{})
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))

	_, err := newProvisionAction(*flags, ioc.NewNestedContainer(nil)).settings()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestProvisionConsumption(t *testing.T) {
	clearAzureEnv(t)
	outputDir := t.TempDir()

	mockContext := mocks.NewMockContext(context.Background())
	runner := mockContext.CommandRunner
	respond(runner, "az version", `{"azure-cli": "2.61.0"}`)
	respond(runner, "az account show", `{"id": "`+testSubscription+`", "tenantId": "account-tenant"}`)
	respond(runner, "az functionapp list-runtimes", runtimeCatalog)
	respond(runner, "az storage account create", `{}`)
	respond(runner, "az functionapp create", `{}`)
	respond(runner, "az resource update", `{}`)
	respond(runner, "az ad sp create-for-rbac",
		`{"appId": "new-client", "displayName": "AbcFun12-sp", "password": "new-secret", "tenant": "new-tenant"}`)
	respond(runner, "az role assignment create", `{}`)
	mockarmresources.AddResourceGroupExistsMock(mockContext.HttpClient, testSubscription, "func-rg", true)

	out, err := executeRoot(t, newTestContainer(mockContext),
		"-s", testSubscription,
		"-g", "func-rg",
		"-l", "westus",
		"-f", "AbcFun12",
		"-r", "Python",
		"-v", "3.9",
		"-o", "Linux",
		"-t", "consumption",
		"--output-dir", outputDir,
	)
	require.NoError(t, err)

	require.Contains(t, out, "provisioned.")
	require.Contains(t, out, "Storage account: abcfun12storage (created)")
	require.Contains(t, out, "Role Owner on")
	require.Contains(t, out, "Credentials written to")

	require.Len(t, runner.CallsMatching("az functionapp create"), 1)
	require.Len(t, runner.CallsMatching("az role assignment create"), 3)

	values, err := environment.ReadDotEnv(filepath.Join(outputDir, "AbcFun12.env"))
	require.NoError(t, err)
	require.Equal(t, "new-client", values[environment.ClientIdEnvVarName])
	require.Equal(t, "new-secret", values[environment.ClientSecretEnvVarName])
	require.Equal(t, "abcfun12storage", values[environment.StorageAccountNameEnvVarName])
}

func TestProvisionWarnsIgnoredPlan(t *testing.T) {
	clearAzureEnv(t)

	mockContext := mocks.NewMockContext(context.Background())
	runner := mockContext.CommandRunner
	respond(runner, "az version", `{"azure-cli": "2.61.0"}`)
	respond(runner, "az account show", `{"id": "`+testSubscription+`", "tenantId": "account-tenant"}`)
	respond(runner, "az functionapp list-runtimes", runtimeCatalog)
	respond(runner, "az storage account create", `{}`)
	respond(runner, "az functionapp create", `{}`)
	respond(runner, "az resource update", `{}`)
	respond(runner, "az ad sp create-for-rbac",
		`{"appId": "new-client", "displayName": "AbcFun12-sp", "password": "new-secret", "tenant": "new-tenant"}`)
	respond(runner, "az role assignment create", `{}`)
	mockarmresources.AddResourceGroupExistsMock(mockContext.HttpClient, testSubscription, "func-rg", true)

	out, err := executeRoot(t, newTestContainer(mockContext),
		"-s", testSubscription, "-g", "func-rg", "-l", "westus", "-f", "AbcFun12",
		"-r", "python", "-v", "3.9", "-o", "Linux", "-t", "consumption",
		"-p", "shared-plan",
		"--output-dir", t.TempDir(),
	)
	require.NoError(t, err)
	require.Contains(t, out, "WARNING: ignoring plan shared-plan, function type consumption has no hosting plan")
	require.Empty(t, runner.CallsMatching("az functionapp plan create"))
	require.NotContains(t, runner.CallsMatching("az functionapp create")[0], "--plan")
}

func TestRuntimes(t *testing.T) {
	mockContext := mocks.NewMockContext(context.Background())
	respond(mockContext.CommandRunner, "az version", `{"azure-cli": "2.61.0"}`)
	respond(mockContext.CommandRunner, "az functionapp list-runtimes", runtimeCatalog)

	out, err := executeRoot(t, newTestContainer(mockContext), "runtimes", "-o", "windows")
	require.NoError(t, err)
	require.Equal(t, "node 20\npython 3.11\npython 3.9\n", out)
	require.Equal(t,
		[]string{"az functionapp list-runtimes --os windows --output json"},
		mockContext.CommandRunner.CallsMatching("az functionapp list-runtimes"))
}

func TestRuntimesInvalidOs(t *testing.T) {
	mockContext := mocks.NewMockContext(context.Background())

	_, err := executeRoot(t, newTestContainer(mockContext), "runtimes", "-o", "solaris")
	require.ErrorIs(t, err, provisioning.ErrInvalidOsType)
	require.Empty(t, mockContext.CommandRunner.Calls())
}

func TestVersion(t *testing.T) {
	mockContext := mocks.NewMockContext(context.Background())

	out, err := executeRoot(t, newTestContainer(mockContext), "version")
	require.NoError(t, err)
	require.Equal(t, "funcprov version "+internal.Version+"\n", out)
}
