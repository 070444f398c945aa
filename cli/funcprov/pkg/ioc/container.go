// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package ioc wraps the golobby/container package with lazy singleton registration,
// instance registration and resolution errors that can be told apart from errors
// returned by the resolvers themselves.
package ioc

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/golobby/container/v3"
)

var (
	// The golobby project does not support typed errors,
	// but all the error messages are prefixed with `container:`
	containerErrorRegex = regexp.MustCompile("container:")

	ErrResolveInstance = errors.New("failed resolving instance from container")
)

// NestedContainer is an IoC container that can fall back to a parent container.
type NestedContainer struct {
	inner  container.Container
	parent *NestedContainer
}

// NewNestedContainer creates a new container inheriting the registrations of parent.
func NewNestedContainer(parent *NestedContainer) *NestedContainer {
	current := container.New()
	if parent != nil {
		for key, value := range parent.inner {
			current[key] = value
		}
	}

	return &NestedContainer{
		inner:  current,
		parent: parent,
	}
}

// RegisterSingleton registers a lazily invoked resolver with a singleton lifetime.
// Panics if the resolver is not valid.
func (c *NestedContainer) RegisterSingleton(resolveFn any) {
	container.MustSingletonLazy(c.inner, resolveFn)
}

// Resolve fills instance from the container, walking up to the parent containers.
func (c *NestedContainer) Resolve(instance any) error {
	current := c
	for {
		err := current.inner.Resolve(instance)
		if err == nil {
			return nil
		}

		if current.parent == nil {
			return inspectResolveError(err)
		}
		current = current.parent
	}
}

// Invoke calls resolver, resolving its arguments from the container. An error returned by
// resolver is returned as is.
func (c *NestedContainer) Invoke(resolver any) error {
	return inspectResolveError(c.inner.Call(resolver))
}

// RegisterInstance registers an already constructed instance of F.
// Panics if the registration fails.
func RegisterInstance[F any](c *NestedContainer, instance F) {
	container.MustSingletonLazy(c.inner, func() F {
		return instance
	})
}

// inspectResolveError tells developer registration errors apart from errors returned
// while instantiating a dependency.
func inspectResolveError(err error) error {
	if err == nil {
		return nil
	}

	if containerErrorRegex.MatchString(err.Error()) {
		return fmt.Errorf("%w: %w", ErrResolveInstance, err)
	}

	return err
}
