// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azcli

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

type AzCliAppInsights struct {
	Id                 string
	Name               string
	InstrumentationKey string
	ConnectionString   string
}

func (cli *azCli) ShowAppInsights(
	ctx context.Context,
	subscriptionId string,
	resourceGroup string,
	name string,
) (*AzCliAppInsights, error) {
	res, err := cli.runAzCommand(
		ctx,
		"monitor", "app-insights", "component", "show",
		"--app", name,
		"--resource-group", resourceGroup,
		"--subscription", subscriptionId,
		"--output", "json",
	)
	if err != nil {
		return nil, fmt.Errorf("failed getting application insights '%s': %w", name, err)
	}

	return parseAppInsights(res.Stdout)
}

func (cli *azCli) CreateAppInsights(
	ctx context.Context,
	subscriptionId string,
	resourceGroup string,
	name string,
	location string,
) (*AzCliAppInsights, error) {
	res, err := cli.runAzCommand(
		ctx,
		"monitor", "app-insights", "component", "create",
		"--app", name,
		"--location", location,
		"--resource-group", resourceGroup,
		"--application-type", "web",
		"--subscription", subscriptionId,
		"--output", "json",
	)
	if err != nil {
		return nil, fmt.Errorf("failed creating application insights '%s': %w", name, err)
	}

	return parseAppInsights(res.Stdout)
}

func parseAppInsights(output string) (*AzCliAppInsights, error) {
	if !gjson.Valid(output) {
		return nil, fmt.Errorf("failed parsing application insights: invalid JSON '%s'", output)
	}

	result := gjson.Parse(output)
	return &AzCliAppInsights{
		Id:                 result.Get("id").String(),
		Name:               result.Get("name").String(),
		InstrumentationKey: result.Get("instrumentationKey").String(),
		ConnectionString:   result.Get("connectionString").String(),
	}, nil
}
