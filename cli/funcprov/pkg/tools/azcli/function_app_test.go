// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azcli

import (
	"context"
	"strings"
	"testing"

	"github.com/azure/funcprov/cli/funcprov/pkg/exec"
	"github.com/azure/funcprov/cli/funcprov/test/mocks/mockexec"
	"github.com/stretchr/testify/require"
)

func respondOk(runner *mockexec.MockCommandRunner) {
	runner.When(func(args exec.RunArgs, command string) bool {
		return true
	}).Respond(exec.NewRunResult(0, "{}", ""))
}

func TestListFunctionRuntimes(t *testing.T) {
	runner := mockexec.NewMockCommandRunner()
	runner.When(func(args exec.RunArgs, command string) bool {
		return strings.HasPrefix(command, "az functionapp list-runtimes --os linux")
	}).Respond(exec.NewRunResult(0, `[
  {"runtime": "python", "version": "3.9", "supported_functions_versions": ["4"], "linux_fx_version": "Python|3.9"},
  {"runtime": "python", "version": "3.11", "supported_functions_versions": ["4"]},
  {"runtime": "node", "version": "20", "supported_functions_versions": ["4"]}
]`, ""))

	runtimes, err := newTestAzCli(runner).ListFunctionRuntimes(context.Background(), "Linux")
	require.NoError(t, err)
	require.Len(t, runtimes, 3)
	require.Equal(t, AzCliFunctionRuntime{
		Runtime:                    "python",
		Version:                    "3.9",
		SupportedFunctionsVersions: []string{"4"},
	}, runtimes[0])

	t.Run("InvalidJson", func(t *testing.T) {
		runner := mockexec.NewMockCommandRunner()
		runner.When(func(args exec.RunArgs, command string) bool {
			return true
		}).Respond(exec.NewRunResult(0, "not json", ""))

		_, err := newTestAzCli(runner).ListFunctionRuntimes(context.Background(), "windows")
		require.Error(t, err)
	})
}

func TestCreateFunctionApp(t *testing.T) {
	tests := []struct {
		name     string
		args     FunctionAppCreateArgs
		expected string
	}{
		{
			name: "Consumption",
			args: FunctionAppCreateArgs{
				Name: "app", ResourceGroup: "rg", StorageAccount: "appstorage",
				Runtime: "python", RuntimeVersion: "3.9", FunctionsVersion: "4", OsType: "Linux",
				ConsumptionPlanLocation: "westus",
			},
			expected: "az functionapp create --name app --resource-group rg --storage-account appstorage " +
				"--runtime python --runtime-version 3.9 --functions-version 4 --os-type Linux " +
				"--consumption-plan-location westus --subscription sub --output json",
		},
		{
			name: "FlexConsumption",
			args: FunctionAppCreateArgs{
				Name: "app", ResourceGroup: "rg", StorageAccount: "appstorage",
				Runtime: "node", RuntimeVersion: "20",
				FlexConsumptionLocation: "eastus",
			},
			expected: "az functionapp create --name app --resource-group rg --storage-account appstorage " +
				"--runtime node --runtime-version 20 --flexconsumption-location eastus --subscription sub --output json",
		},
		{
			name: "PlanWithInsights",
			args: FunctionAppCreateArgs{
				Name: "app", ResourceGroup: "rg", StorageAccount: "appstorage",
				Runtime: "dotnet-isolated", RuntimeVersion: "8", FunctionsVersion: "4", OsType: "Windows",
				Plan: "app-plan", AppInsights: "ai", AppInsightsKey: "key-1",
			},
			expected: "az functionapp create --name app --resource-group rg --storage-account appstorage " +
				"--runtime dotnet-isolated --runtime-version 8 --functions-version 4 --os-type Windows " +
				"--plan app-plan --app-insights ai --app-insights-key key-1 --subscription sub --output json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := mockexec.NewMockCommandRunner()
			respondOk(runner)

			err := newTestAzCli(runner).CreateFunctionApp(context.Background(), "sub", tt.args)
			require.NoError(t, err)
			require.Equal(t, []string{tt.expected}, runner.CallsMatching("az functionapp create"))
		})
	}

	t.Run("InsightsKeyIsSensitive", func(t *testing.T) {
		runner := mockexec.NewMockCommandRunner()
		respondOk(runner)

		err := newTestAzCli(runner).CreateFunctionApp(context.Background(), "sub", FunctionAppCreateArgs{
			Name: "app", Plan: "p", AppInsights: "ai", AppInsightsKey: "key-1",
		})
		require.NoError(t, err)
		require.Contains(t, runner.Calls()[0].SensitiveData, "key-1")
	})

	t.Run("NoHosting", func(t *testing.T) {
		runner := mockexec.NewMockCommandRunner()

		err := newTestAzCli(runner).CreateFunctionApp(context.Background(), "sub", FunctionAppCreateArgs{Name: "app"})
		require.Error(t, err)
		require.Empty(t, runner.Calls())
	})
}

func TestCreatePlans(t *testing.T) {
	maxBurst := 20

	t.Run("FunctionsPlan", func(t *testing.T) {
		runner := mockexec.NewMockCommandRunner()
		respondOk(runner)

		err := newTestAzCli(runner).CreateFunctionsPlan(context.Background(), "sub", PlanCreateArgs{
			Name: "app-plan", ResourceGroup: "rg", Location: "westus", Sku: "EP1", IsLinux: true, MaxBurst: &maxBurst,
		})
		require.NoError(t, err)
		require.Equal(t, []string{
			"az functionapp plan create --name app-plan --resource-group rg --location westus --sku EP1 " +
				"--is-linux --max-burst 20 --subscription sub --output json",
		}, runner.CallsMatching("az functionapp plan create"))
	})

	t.Run("AppServicePlan", func(t *testing.T) {
		runner := mockexec.NewMockCommandRunner()
		respondOk(runner)

		err := newTestAzCli(runner).CreateAppServicePlan(context.Background(), "sub", PlanCreateArgs{
			Name: "app-plan", ResourceGroup: "rg", Location: "westus", Sku: "P1V3",
		})
		require.NoError(t, err)
		require.Equal(t, []string{
			"az appservice plan create --name app-plan --resource-group rg --location westus --sku P1V3 " +
				"--subscription sub --output json",
		}, runner.CallsMatching("az appservice plan create"))
	})
}

func TestUpdateResourceProperty(t *testing.T) {
	runner := mockexec.NewMockCommandRunner()
	respondOk(runner)

	err := newTestAzCli(runner).UpdateResourceProperty(context.Background(), "sub", ResourceUpdateArgs{
		Name:          "app",
		ResourceGroup: "rg",
		ResourceType:  "Microsoft.Web/sites",
		Property:      "properties.dnsConfiguration.dnsAltServer",
		Value:         "168.63.129.16",
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"az resource update --name app --resource-group rg --resource-type Microsoft.Web/sites " +
			"--set properties.dnsConfiguration.dnsAltServer=168.63.129.16 --subscription sub --output json",
	}, runner.CallsMatching("az resource update"))
}
