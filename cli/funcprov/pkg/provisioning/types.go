// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import (
	"fmt"
	"strings"
)

// FunctionType selects how the function app is hosted.
type FunctionType string

const (
	FunctionTypeConsumption     FunctionType = "consumption"
	FunctionTypePremium         FunctionType = "premium"
	FunctionTypeAppServicePlan  FunctionType = "appserviceplan"
	FunctionTypeFlexConsumption FunctionType = "flex-consumption"
)

// FunctionTypes lists every supported function type.
var FunctionTypes = []FunctionType{
	FunctionTypeConsumption,
	FunctionTypePremium,
	FunctionTypeAppServicePlan,
	FunctionTypeFlexConsumption,
}

func ParseFunctionType(value string) (FunctionType, error) {
	for _, t := range FunctionTypes {
		if string(t) == value {
			return t, nil
		}
	}

	return "", fmt.Errorf("%w: '%s'", ErrInvalidFunctionType, value)
}

// RequiresPlan reports whether the function type is backed by a separate hosting plan resource.
func (t FunctionType) RequiresPlan() bool {
	switch t {
	case FunctionTypePremium, FunctionTypeAppServicePlan:
		return true
	case FunctionTypeConsumption, FunctionTypeFlexConsumption:
		return false
	default:
		panic(fmt.Sprintf("unhandled function type '%s'", string(t)))
	}
}

func (t FunctionType) String() string {
	return string(t)
}

// OsType is the operating system of the function app.
type OsType string

const (
	OsTypeLinux   OsType = "Linux"
	OsTypeWindows OsType = "Windows"
)

var OsTypes = []OsType{OsTypeLinux, OsTypeWindows}

// ParseOsType accepts the OS name in any casing.
func ParseOsType(value string) (OsType, error) {
	for _, os := range OsTypes {
		if strings.EqualFold(string(os), value) {
			return os, nil
		}
	}

	return "", fmt.Errorf("%w: '%s'", ErrInvalidOsType, value)
}

func (o OsType) IsLinux() bool {
	return o == OsTypeLinux
}

func (o OsType) String() string {
	return string(o)
}

// Origin records how a dependency was obtained.
type Origin string

const (
	// OriginReused marks a supplied resource that was verified to exist.
	OriginReused Origin = "reused"
	// OriginCreated marks a resource provisioned by this run.
	OriginCreated Origin = "created"
	// OriginImplicit marks a resource created as a side effect of another call.
	OriginImplicit Origin = "implicit"
)

// ResolvedResource is a concrete resource name and how it was obtained.
type ResolvedResource struct {
	Name   string
	Origin Origin
}

func (r ResolvedResource) IsZero() bool {
	return r.Name == ""
}

// ResolvedDependencies holds the concrete names used by the run. It is filled in by the phases.
type ResolvedDependencies struct {
	StorageAccount     ResolvedResource
	Plan               ResolvedResource
	AppInsights        ResolvedResource
	AppInsightsKey     string
	VirtualNetwork     ResolvedResource
	VnetResourceGroup  string
	VnetId             string
	SubnetId           string
	Runtime            string
	AccountTenantId    string
	ServicePrincipal   *ServicePrincipalCredential
	RoleAssignments    []RoleAssignment
	CredentialFilePath string
}

// ServicePrincipalCredential is the identity granted access to the provisioned resources.
// ClientSecret is only known when the service principal was created by this run.
type ServicePrincipalCredential struct {
	ClientId     string
	ClientSecret string
	TenantId     string
	Origin       Origin
}

type RoleAssignment struct {
	PrincipalId string
	Role        string
	Scope       string
}
