// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/azure/funcprov/cli/funcprov/internal"
	"github.com/azure/funcprov/cli/funcprov/pkg/config"
	"github.com/azure/funcprov/cli/funcprov/pkg/output"
	"go.uber.org/multierr"
)

const (
	minMaxBurst = 0
	maxMaxBurst = 100
)

// Request is the validated, immutable description of what to provision.
type Request struct {
	SubscriptionId     string
	ResourceGroup      string
	Location           string
	FunctionAppName    string
	Runtime            string
	RuntimeVersion     string
	OsType             OsType
	FunctionType       FunctionType
	Sku                string
	MaxBurst           *int
	Plan               string
	SubnetId           string
	ServicePrincipalId string
	StorageAccount     string
	AppInsights        string

	StorageSku       string
	FunctionsVersion string
	DnsAltServer     string
	OutputDir        string
}

type requiredParameter struct {
	flag      string
	shorthand string
	value     string
}

// NewRequest builds a Request from raw settings and validates it.
// Missing mandatory settings are reported together as an *internal.UsageError.
func NewRequest(cfg config.ProvisionConfig) (Request, error) {
	cfg.ApplyDefaults()

	required := []requiredParameter{
		{"subscription", "s", cfg.SubscriptionId},
		{"resource-group", "g", cfg.ResourceGroup},
		{"location", "l", cfg.Location},
		{"function-app", "f", cfg.FunctionAppName},
		{"runtime", "r", cfg.Runtime},
		{"runtime-version", "v", cfg.RuntimeVersion},
		{"os", "o", cfg.Os},
		{"function-type", "t", cfg.FunctionType},
	}

	var missing error
	for _, p := range required {
		if strings.TrimSpace(p.value) == "" {
			missing = multierr.Append(missing, fmt.Errorf("%w: --%s (-%s)", ErrMissingParameter, p.flag, p.shorthand))
		}
	}
	if missing != nil {
		return Request{}, &internal.UsageError{Err: missing}
	}

	osType := OsType(strings.TrimSpace(cfg.Os))
	if parsed, err := ParseOsType(string(osType)); err == nil {
		osType = parsed
	}

	r := Request{
		SubscriptionId:     strings.TrimSpace(cfg.SubscriptionId),
		ResourceGroup:      strings.TrimSpace(cfg.ResourceGroup),
		Location:           strings.TrimSpace(cfg.Location),
		FunctionAppName:    strings.TrimSpace(cfg.FunctionAppName),
		Runtime:            strings.TrimSpace(cfg.Runtime),
		RuntimeVersion:     strings.TrimSpace(cfg.RuntimeVersion),
		OsType:             osType,
		FunctionType:       FunctionType(strings.TrimSpace(cfg.FunctionType)),
		Sku:                strings.TrimSpace(cfg.Sku),
		Plan:               strings.TrimSpace(cfg.Plan),
		SubnetId:           strings.TrimSpace(cfg.SubnetId),
		ServicePrincipalId: strings.TrimSpace(cfg.ServicePrincipalId),
		StorageAccount:     strings.TrimSpace(cfg.StorageAccount),
		AppInsights:        strings.TrimSpace(cfg.AppInsights),
		StorageSku:         cfg.StorageSku,
		FunctionsVersion:   cfg.FunctionsVersion,
		DnsAltServer:       cfg.DnsAltServer,
		OutputDir:          cfg.OutputDir,
	}

	if raw := strings.TrimSpace(cfg.MaxBurst); raw != "" {
		maxBurst, err := strconv.Atoi(raw)
		if err != nil {
			return Request{}, &internal.ErrorWithSuggestion{
				Err:        fmt.Errorf("%w: '%s' is not a number", ErrInvalidMaxBurst, raw),
				Suggestion: fmt.Sprintf("Use a whole number between %d and %d.", minMaxBurst, maxMaxBurst),
			}
		}
		r.MaxBurst = &maxBurst
	}

	if err := r.Validate(); err != nil {
		return Request{}, err
	}

	if r.Plan != "" && !r.FunctionType.RequiresPlan() {
		log.Printf("ignoring plan '%s', function type '%s' has no hosting plan", r.Plan, r.FunctionType)
		r.Plan = ""
	}

	return r, nil
}

// Validate checks the enumerated values of the request. It never calls Azure.
func (r Request) Validate() error {
	if _, err := ParseFunctionType(string(r.FunctionType)); err != nil {
		return &internal.ErrorWithSuggestion{
			Err:        err,
			Suggestion: "Valid function types are:\n" + output.WithBullets(functionTypeNames()),
		}
	}

	if _, err := ParseOsType(string(r.OsType)); err != nil {
		return &internal.ErrorWithSuggestion{
			Err:        err,
			Suggestion: "Valid operating systems are:\n" + output.WithBullets([]string{string(OsTypeLinux), string(OsTypeWindows)}),
		}
	}

	if r.FunctionType == FunctionTypeFlexConsumption && !r.OsType.IsLinux() {
		return &internal.ErrorWithSuggestion{
			Err: fmt.Errorf("%w: function type '%s' does not support '%s'",
				ErrInvalidOsType, FunctionTypeFlexConsumption, r.OsType),
			Suggestion: fmt.Sprintf("Flex consumption apps run on %s only. Use %s or another function type.",
				OsTypeLinux, output.WithBackticks("--os "+string(OsTypeLinux))),
		}
	}

	if r.FunctionType.RequiresPlan() {
		validSkus := ValidSkus(r.FunctionType)
		if r.Sku == "" {
			return &internal.ErrorWithSuggestion{
				Err:        fmt.Errorf("%w for function type '%s'", ErrSkuRequired, r.FunctionType),
				Suggestion: fmt.Sprintf("Valid SKUs for %s are:\n%s", r.FunctionType, output.WithBullets(validSkus)),
			}
		}

		if !IsValidSku(r.FunctionType, r.Sku) {
			return &internal.ErrorWithSuggestion{
				Err:        fmt.Errorf("%w '%s' for function type '%s'", ErrInvalidSku, r.Sku, r.FunctionType),
				Suggestion: fmt.Sprintf("Valid SKUs for %s are:\n%s", r.FunctionType, output.WithBullets(validSkus)),
			}
		}
	} else if r.Sku != "" {
		return &internal.ErrorWithSuggestion{
			Err: fmt.Errorf("%w: function type '%s' does not take a sku", ErrInvalidSku, r.FunctionType),
			Suggestion: fmt.Sprintf("Remove the sku or use function type %s or %s.",
				FunctionTypePremium, FunctionTypeAppServicePlan),
		}
	}

	if r.MaxBurst != nil {
		if r.FunctionType != FunctionTypePremium {
			return fmt.Errorf("%w: max burst only applies to function type '%s'", ErrInvalidMaxBurst, FunctionTypePremium)
		}

		if *r.MaxBurst < minMaxBurst || *r.MaxBurst > maxMaxBurst {
			return &internal.ErrorWithSuggestion{
				Err:        fmt.Errorf("%w: %d", ErrInvalidMaxBurst, *r.MaxBurst),
				Suggestion: fmt.Sprintf("Use a whole number between %d and %d.", minMaxBurst, maxMaxBurst),
			}
		}
	}

	return nil
}

// DefaultStorageAccountName is the storage account created when none is supplied.
func (r Request) DefaultStorageAccountName() string {
	return strings.ToLower(r.FunctionAppName + "storage")
}

// DefaultPlanName is the hosting plan created when none is supplied.
func (r Request) DefaultPlanName() string {
	return r.FunctionAppName + "-plan"
}

// DefaultServicePrincipalName is the name of the service principal created when none is supplied.
func (r Request) DefaultServicePrincipalName() string {
	return r.FunctionAppName + "-sp"
}

func functionTypeNames() []string {
	names := make([]string, 0, len(FunctionTypes))
	for _, t := range FunctionTypes {
		names = append(names, string(t))
	}

	return names
}
