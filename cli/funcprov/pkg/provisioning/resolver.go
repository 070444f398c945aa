// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package provisioning

import (
	"context"
	"fmt"
	"log"
)

// Resolver looks up and creates one kind of dependency.
type Resolver interface {
	// Kind is the human readable resource kind, e.g. "storage account".
	Kind() string
	Name() string
	Lookup(ctx context.Context) (bool, error)
	Create(ctx context.Context) error
}

// MissingPolicy decides what happens when a supplied resource does not exist.
type MissingPolicy int

const (
	FailIfMissing MissingPolicy = iota
	CreateIfMissing
)

// ResolveOrCreate resolves a dependency:
//   - supplied and present: reused, nothing is created
//   - supplied and absent: created, or ErrResourceNotFound with FailIfMissing
//   - not supplied: created without a lookup
func ResolveOrCreate(ctx context.Context, resolver Resolver, supplied bool, policy MissingPolicy) (Origin, error) {
	if !supplied {
		log.Printf("creating %s '%s'", resolver.Kind(), resolver.Name())
		if err := resolver.Create(ctx); err != nil {
			return "", err
		}

		return OriginCreated, nil
	}

	exists, err := resolver.Lookup(ctx)
	if err != nil {
		return "", err
	}

	if exists {
		log.Printf("reusing %s '%s'", resolver.Kind(), resolver.Name())
		return OriginReused, nil
	}

	switch policy {
	case FailIfMissing:
		return "", fmt.Errorf("%w: %s '%s'", ErrResourceNotFound, resolver.Kind(), resolver.Name())
	case CreateIfMissing:
		log.Printf("%s '%s' not found, creating it", resolver.Kind(), resolver.Name())
		if err := resolver.Create(ctx); err != nil {
			return "", err
		}

		return OriginCreated, nil
	default:
		panic(fmt.Sprintf("unhandled missing policy %d", policy))
	}
}
