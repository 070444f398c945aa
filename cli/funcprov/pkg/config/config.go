// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package config loads provisioning settings from a YAML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStorageSku       = "Standard_LRS"
	DefaultFunctionsVersion = "4"
	// Azure-provided DNS, used by apps integrated with a virtual network.
	DefaultDnsAltServer = "168.63.129.16"
	DefaultOutputDir    = "."
)

// Environment variables used when a setting is not given in the file.
const (
	EnvSubscriptionId = "AZURE_SUBSCRIPTION_ID"
	EnvResourceGroup  = "AZURE_RESOURCE_GROUP"
	EnvLocation       = "AZURE_LOCATION"
)

// ProvisionConfig is the raw, unvalidated set of provisioning settings.
type ProvisionConfig struct {
	SubscriptionId     string `yaml:"subscriptionId,omitempty"`
	ResourceGroup      string `yaml:"resourceGroup,omitempty"`
	Location           string `yaml:"location,omitempty"`
	FunctionAppName    string `yaml:"functionAppName,omitempty"`
	Runtime            string `yaml:"runtime,omitempty"`
	RuntimeVersion     string `yaml:"runtimeVersion,omitempty"`
	Os                 string `yaml:"os,omitempty"`
	FunctionType       string `yaml:"functionType,omitempty"`
	Sku                string `yaml:"sku,omitempty"`
	MaxBurst           string `yaml:"maxBurst,omitempty"`
	Plan               string `yaml:"plan,omitempty"`
	SubnetId           string `yaml:"subnetId,omitempty"`
	ServicePrincipalId string `yaml:"servicePrincipalId,omitempty"`
	StorageAccount     string `yaml:"storageAccount,omitempty"`
	AppInsights        string `yaml:"appInsights,omitempty"`

	StorageSku       string `yaml:"storageSku,omitempty"`
	FunctionsVersion string `yaml:"functionsVersion,omitempty"`
	DnsAltServer     string `yaml:"dnsAltServer,omitempty"`
	OutputDir        string `yaml:"outputDir,omitempty"`
}

// Load reads a YAML settings file. Unknown keys are rejected.
func Load(path string) (*ProvisionConfig, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file '%s': %w", path, err)
	}

	return Parse(contents)
}

func Parse(contents []byte) (*ProvisionConfig, error) {
	var cfg ProvisionConfig

	decoder := yaml.NewDecoder(bytes.NewReader(contents))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides settings with the values of the well known AZURE_* variables that are set.
func (c *ProvisionConfig) ApplyEnv(lookupEnv func(string) (string, bool)) {
	envs := []struct {
		name  string
		value *string
	}{
		{EnvSubscriptionId, &c.SubscriptionId},
		{EnvResourceGroup, &c.ResourceGroup},
		{EnvLocation, &c.Location},
	}

	for _, env := range envs {
		if v, has := lookupEnv(env.name); has && v != "" {
			*env.value = v
		}
	}
}

// Merge overrides settings with every non-empty value in other.
func (c *ProvisionConfig) Merge(other ProvisionConfig) {
	override(&c.SubscriptionId, other.SubscriptionId)
	override(&c.ResourceGroup, other.ResourceGroup)
	override(&c.Location, other.Location)
	override(&c.FunctionAppName, other.FunctionAppName)
	override(&c.Runtime, other.Runtime)
	override(&c.RuntimeVersion, other.RuntimeVersion)
	override(&c.Os, other.Os)
	override(&c.FunctionType, other.FunctionType)
	override(&c.Sku, other.Sku)
	override(&c.MaxBurst, other.MaxBurst)
	override(&c.Plan, other.Plan)
	override(&c.SubnetId, other.SubnetId)
	override(&c.ServicePrincipalId, other.ServicePrincipalId)
	override(&c.StorageAccount, other.StorageAccount)
	override(&c.AppInsights, other.AppInsights)
	override(&c.StorageSku, other.StorageSku)
	override(&c.FunctionsVersion, other.FunctionsVersion)
	override(&c.DnsAltServer, other.DnsAltServer)
	override(&c.OutputDir, other.OutputDir)
}

// ApplyDefaults fills the optional settings that have a default value.
func (c *ProvisionConfig) ApplyDefaults() {
	defaults := []struct {
		value    *string
		fallback string
	}{
		{&c.StorageSku, DefaultStorageSku},
		{&c.FunctionsVersion, DefaultFunctionsVersion},
		{&c.DnsAltServer, DefaultDnsAltServer},
		{&c.OutputDir, DefaultOutputDir},
	}

	for _, d := range defaults {
		if *d.value == "" {
			*d.value = d.fallback
		}
	}
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
