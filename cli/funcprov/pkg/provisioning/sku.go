// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import "slices"

var premiumSkus = []string{"EP1", "EP2", "EP3"}

var appServicePlanSkus = []string{
	"B1", "B2", "B3",
	"S1", "S2", "S3",
	"P1V2", "P2V2", "P3V2",
	"P0V3", "P1V3", "P2V3", "P3V3",
	"P1MV3", "P2MV3", "P3MV3", "P4MV3", "P5MV3",
}

// ValidSkus returns the plan SKUs accepted for a function type. Types without a plan have none.
func ValidSkus(functionType FunctionType) []string {
	switch functionType {
	case FunctionTypePremium:
		return slices.Clone(premiumSkus)
	case FunctionTypeAppServicePlan:
		return slices.Clone(appServicePlanSkus)
	default:
		return nil
	}
}

func IsValidSku(functionType FunctionType, sku string) bool {
	return slices.Contains(ValidSkus(functionType), sku)
}
