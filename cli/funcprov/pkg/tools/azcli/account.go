// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azcli

import (
	"context"
	"encoding/json"
	"fmt"
)

type AzCliSubscriptionInfo struct {
	Name      string `json:"name"`
	Id        string `json:"id"`
	TenantId  string `json:"tenantId"`
	IsDefault bool   `json:"isDefault"`
}

// GetAccount runs `az account show` for the subscription, which also proves the CLI is logged in.
func (cli *azCli) GetAccount(ctx context.Context, subscriptionId string) (*AzCliSubscriptionInfo, error) {
	res, err := cli.runAzCommand(
		ctx,
		"account", "show",
		"--subscription", subscriptionId,
		"--output", "json",
	)
	if err != nil {
		return nil, fmt.Errorf("failed getting account for subscription '%s': %w", subscriptionId, err)
	}

	var subscription AzCliSubscriptionInfo
	if err := json.Unmarshal([]byte(res.Stdout), &subscription); err != nil {
		return nil, fmt.Errorf("failed unmarshalling result JSON: %w", err)
	}

	return &subscription, nil
}
