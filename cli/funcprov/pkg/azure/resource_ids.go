// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
)

var ErrInvalidSubnetId = errors.New("invalid subnet resource id")

// Creates Azure subscription resource ID
func SubscriptionRID(subscriptionId string) string {
	return fmt.Sprintf("/subscriptions/%s", subscriptionId)
}

// Creates resource ID for an Azure resource group
func ResourceGroupRID(subscriptionId, resourceGroupName string) string {
	return fmt.Sprintf("%s/resourceGroups/%s", SubscriptionRID(subscriptionId), resourceGroupName)
}

func resourceRID(subscriptionId, resourceGroupName, resourceType, name string) string {
	return fmt.Sprintf(
		"%s/providers/%s/%s",
		ResourceGroupRID(subscriptionId, resourceGroupName),
		resourceType,
		name,
	)
}

// WebsiteRID is the id of a function app (Microsoft.Web/sites).
func WebsiteRID(subscriptionId, resourceGroupName, websiteName string) string {
	return resourceRID(subscriptionId, resourceGroupName, "Microsoft.Web/sites", websiteName)
}

// AppServicePlanRID is the id of a hosting plan (Microsoft.Web/serverfarms).
func AppServicePlanRID(subscriptionId, resourceGroupName, planName string) string {
	return resourceRID(subscriptionId, resourceGroupName, "Microsoft.Web/serverfarms", planName)
}

func StorageAccountRID(subscriptionId, resourceGroupName, accountName string) string {
	return resourceRID(subscriptionId, resourceGroupName, "Microsoft.Storage/storageAccounts", accountName)
}

// AppInsightsRID is the id of an Application Insights component.
func AppInsightsRID(subscriptionId, resourceGroupName, componentName string) string {
	return resourceRID(subscriptionId, resourceGroupName, "Microsoft.Insights/components", componentName)
}

func VirtualNetworkRID(subscriptionId, resourceGroupName, vnetName string) string {
	return resourceRID(subscriptionId, resourceGroupName, "Microsoft.Network/virtualNetworks", vnetName)
}

// SubnetReference is the parsed form of a subnet resource id.
type SubnetReference struct {
	SubnetId       string
	SubscriptionId string
	ResourceGroup  string
	VnetName       string
	SubnetName     string
}

// VnetId is the id of the virtual network owning the subnet.
func (s SubnetReference) VnetId() string {
	return VirtualNetworkRID(s.SubscriptionId, s.ResourceGroup, s.VnetName)
}

// ParseSubnetId extracts the virtual network and resource group from a fully qualified
// subnet id such as
// /subscriptions/{sub}/resourceGroups/{rg}/providers/Microsoft.Network/virtualNetworks/{vnet}/subnets/{subnet}.
func ParseSubnetId(subnetId string) (SubnetReference, error) {
	subnetId = strings.TrimSpace(subnetId)
	rid, err := arm.ParseResourceID(subnetId)
	if err != nil {
		return SubnetReference{}, fmt.Errorf("%w '%s': %w", ErrInvalidSubnetId, subnetId, err)
	}

	if !strings.EqualFold(rid.ResourceType.Namespace, "Microsoft.Network") ||
		!strings.EqualFold(rid.ResourceType.Type, "virtualNetworks/subnets") ||
		rid.Parent == nil ||
		rid.Parent.Name == "" ||
		rid.ResourceGroupName == "" {
		return SubnetReference{}, fmt.Errorf(
			"%w '%s': expected the form "+
				"/subscriptions/<id>/resourceGroups/<group>/providers/Microsoft.Network/virtualNetworks/<vnet>/subnets/<subnet>",
			ErrInvalidSubnetId,
			subnetId,
		)
	}

	return SubnetReference{
		SubnetId:       subnetId,
		SubscriptionId: rid.SubscriptionID,
		ResourceGroup:  rid.ResourceGroupName,
		VnetName:       rid.Parent.Name,
		SubnetName:     rid.Name,
	}, nil
}
