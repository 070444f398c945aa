// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azapi

import (
	"context"
	"fmt"
	"log"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// API versions used for existence checks of the resources funcprov reuses.
const (
	StorageAccountApiVersion = "2023-01-01"
	ServerFarmApiVersion     = "2022-09-01"
	VirtualNetworkApiVersion = "2023-09-01"
)

// ResourceService answers read-only questions about ARM resources.
type ResourceService struct {
	credential       azcore.TokenCredential
	armClientOptions *arm.ClientOptions
}

func NewResourceService(
	credential azcore.TokenCredential,
	armClientOptions *arm.ClientOptions,
) *ResourceService {
	return &ResourceService{
		credential:       credential,
		armClientOptions: armClientOptions,
	}
}

// ResourceExists reports whether the resource with the given id exists. A missing resource is not an error.
func (rs *ResourceService) ResourceExists(
	ctx context.Context,
	subscriptionId string,
	resourceId string,
	apiVersion string,
) (bool, error) {
	client, err := rs.createResourcesClient(subscriptionId)
	if err != nil {
		return false, err
	}

	res, err := client.CheckExistenceByID(ctx, resourceId, apiVersion, nil)
	if err != nil {
		return false, fmt.Errorf("checking existence of '%s': %w", resourceId, err)
	}

	log.Printf("resource '%s' exists: %t", resourceId, res.Success)
	return res.Success, nil
}

func (rs *ResourceService) ResourceGroupExists(
	ctx context.Context,
	subscriptionId string,
	resourceGroupName string,
) (bool, error) {
	client, err := rs.createResourceGroupClient(subscriptionId)
	if err != nil {
		return false, err
	}

	res, err := client.CheckExistence(ctx, resourceGroupName, nil)
	if err != nil {
		return false, fmt.Errorf("checking existence of resource group '%s': %w", resourceGroupName, err)
	}

	return res.Success, nil
}

func (rs *ResourceService) createResourcesClient(subscriptionId string) (*armresources.Client, error) {
	client, err := armresources.NewClient(subscriptionId, rs.credential, rs.armClientOptions)
	if err != nil {
		return nil, fmt.Errorf("creating Resource client: %w", err)
	}

	return client, nil
}

func (rs *ResourceService) createResourceGroupClient(
	subscriptionId string,
) (*armresources.ResourceGroupsClient, error) {
	client, err := armresources.NewResourceGroupsClient(subscriptionId, rs.credential, rs.armClientOptions)
	if err != nil {
		return nil, fmt.Errorf("creating ResourceGroup client: %w", err)
	}

	return client, nil
}
