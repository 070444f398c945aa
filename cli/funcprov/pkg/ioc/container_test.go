// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package ioc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type greeter struct {
	name string
}

var errNoName = errors.New("no name configured")

func Test_Resolve(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		container := NewNestedContainer(nil)
		container.RegisterSingleton(func() string {
			return "Test"
		})

		var instance string
		err := container.Resolve(&instance)

		require.NoError(t, err)
		require.Equal(t, "Test", instance)
	})

	t.Run("FailWithContainerError", func(t *testing.T) {
		container := NewNestedContainer(nil)

		var instance *greeter
		err := container.Resolve(&instance)

		require.Error(t, err)
		require.True(t, errors.Is(err, ErrResolveInstance))
	})

	t.Run("FailWithOtherError", func(t *testing.T) {
		container := NewNestedContainer(nil)
		container.RegisterSingleton(func() (*greeter, error) {
			return nil, errNoName
		})

		var instance *greeter
		err := container.Resolve(&instance)

		require.Error(t, err)
		require.Contains(t, err.Error(), errNoName.Error())
	})

	t.Run("FromParent", func(t *testing.T) {
		parent := NewNestedContainer(nil)
		RegisterInstance(parent, &greeter{name: "parent"})

		child := NewNestedContainer(parent)

		var instance *greeter
		require.NoError(t, child.Resolve(&instance))
		require.Equal(t, "parent", instance.name)
	})
}

func Test_Invoke(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		container := NewNestedContainer(nil)
		RegisterInstance(container, &greeter{name: "funcprov"})

		var got string
		err := container.Invoke(func(g *greeter) error {
			got = g.name
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, "funcprov", got)
	})

	t.Run("ReturnsResolverError", func(t *testing.T) {
		container := NewNestedContainer(nil)
		RegisterInstance(container, &greeter{})

		err := container.Invoke(func(g *greeter) error {
			return errNoName
		})

		require.ErrorIs(t, err, errNoName)
		require.False(t, errors.Is(err, ErrResolveInstance))
	})

	t.Run("MissingDependency", func(t *testing.T) {
		container := NewNestedContainer(nil)

		err := container.Invoke(func(g *greeter) error {
			return nil
		})

		require.True(t, errors.Is(err, ErrResolveInstance))
	})
}
