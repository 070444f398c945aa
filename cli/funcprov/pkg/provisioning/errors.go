// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import (
	"errors"

	"github.com/azure/funcprov/cli/funcprov/pkg/azure"
)

var (
	ErrMissingParameter    = errors.New("missing required parameter")
	ErrInvalidFunctionType = errors.New("invalid function type")
	ErrInvalidOsType       = errors.New("invalid os type")
	ErrSkuRequired         = errors.New("sku is required")
	ErrInvalidSku          = errors.New("invalid sku")
	ErrInvalidMaxBurst     = errors.New("invalid max burst")
	ErrUnsupportedRuntime  = errors.New("unsupported runtime")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrInvalidSubnetId     = azure.ErrInvalidSubnetId
)
