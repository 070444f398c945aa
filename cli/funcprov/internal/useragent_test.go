// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserAgentStringScenarios(t *testing.T) {
	product := "funcprov/" + GetVersionNumber()

	t.Run("Default", func(t *testing.T) {
		t.Setenv(userSpecifiedAgentEnvironmentVariableName, "")
		t.Setenv(githubActionsEnvironmentVariableName, "")
		require.Equal(t, product, MakeUserAgentString())
	})

	t.Run("UserSpecified", func(t *testing.T) {
		t.Setenv(userSpecifiedAgentEnvironmentVariableName, "pipeline/1.0")
		t.Setenv(githubActionsEnvironmentVariableName, "")
		require.Equal(t, product+" pipeline/1.0", MakeUserAgentString())
	})

	t.Run("GitHubActions", func(t *testing.T) {
		t.Setenv(userSpecifiedAgentEnvironmentVariableName, "")
		t.Setenv(githubActionsEnvironmentVariableName, "true")
		require.Equal(t, product+" GhActions", MakeUserAgentString())
	})
}
