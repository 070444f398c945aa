// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
subscriptionId: file-sub
resourceGroup: file-rg
location: westus
functionAppName: myfunc
runtime: python
runtimeVersion: "3.11"
os: Linux
functionType: premium
sku: EP1
maxBurst: "20"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funcprov.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "file-sub", cfg.SubscriptionId)
	require.Equal(t, "3.11", cfg.RuntimeVersion)
	require.Equal(t, "premium", cfg.FunctionType)
	require.Equal(t, "20", cfg.MaxBurst)

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		cfg, err := Parse(nil)
		require.NoError(t, err)
		require.Equal(t, ProvisionConfig{}, *cfg)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, err := Parse([]byte("functionAppName: a\nfunctionApp: b\n"))
		require.Error(t, err)
	})
}

func TestPrecedence(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	env := map[string]string{
		EnvSubscriptionId: "env-sub",
		EnvLocation:       "",
	}
	cfg.ApplyEnv(func(name string) (string, bool) {
		v, has := env[name]
		return v, has
	})

	require.Equal(t, "env-sub", cfg.SubscriptionId)
	require.Equal(t, "file-rg", cfg.ResourceGroup)
	require.Equal(t, "westus", cfg.Location)

	cfg.Merge(ProvisionConfig{ResourceGroup: "flag-rg", Sku: "EP2"})
	require.Equal(t, "env-sub", cfg.SubscriptionId)
	require.Equal(t, "flag-rg", cfg.ResourceGroup)
	require.Equal(t, "EP2", cfg.Sku)
	require.Equal(t, "myfunc", cfg.FunctionAppName)
}

func TestApplyDefaults(t *testing.T) {
	cfg := ProvisionConfig{StorageSku: "Standard_GRS"}
	cfg.ApplyDefaults()

	require.Equal(t, "Standard_GRS", cfg.StorageSku)
	require.Equal(t, DefaultFunctionsVersion, cfg.FunctionsVersion)
	require.Equal(t, DefaultDnsAltServer, cfg.DnsAltServer)
	require.Equal(t, DefaultOutputDir, cfg.OutputDir)
}
