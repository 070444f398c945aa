// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/azure/funcprov/cli/funcprov/internal"
	"github.com/azure/funcprov/cli/funcprov/pkg/output"
	"github.com/azure/funcprov/cli/funcprov/pkg/tools/azcli"
)

// RuntimeCatalog lists the runtimes Azure Functions supports for an OS.
type RuntimeCatalog interface {
	ListFunctionRuntimes(ctx context.Context, osType string) ([]azcli.AzCliFunctionRuntime, error)
}

type RuntimeValidator struct {
	catalog RuntimeCatalog
}

func NewRuntimeValidator(catalog RuntimeCatalog) *RuntimeValidator {
	return &RuntimeValidator{catalog: catalog}
}

// Validate checks that (runtime, version) is in the live catalog for osType and returns the
// lower-cased runtime name.
func (v *RuntimeValidator) Validate(ctx context.Context, osType OsType, runtime string, version string) (string, error) {
	runtimes, err := v.catalog.ListFunctionRuntimes(ctx, osType.String())
	if err != nil {
		return "", err
	}

	runtime = strings.ToLower(runtime)
	for _, r := range runtimes {
		if strings.EqualFold(r.Runtime, runtime) && r.Version == version {
			return runtime, nil
		}
	}

	return "", &internal.ErrorWithSuggestion{
		Err: fmt.Errorf("%w: %s %s is not supported on %s", ErrUnsupportedRuntime, runtime, version, osType),
		Suggestion: fmt.Sprintf("Supported runtimes on %s are:\n%s",
			osType, output.WithBullets(FormatRuntimes(runtimes))),
	}
}

// FormatRuntimes renders the catalog as sorted "runtime version" entries.
func FormatRuntimes(runtimes []azcli.AzCliFunctionRuntime) []string {
	entries := make([]string, 0, len(runtimes))
	for _, r := range runtimes {
		entries = append(entries, fmt.Sprintf("%s %s", strings.ToLower(r.Runtime), r.Version))
	}

	slices.Sort(entries)
	return slices.Compact(entries)
}
