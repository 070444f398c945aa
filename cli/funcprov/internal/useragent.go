// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

import (
	"fmt"
	"os"
	"strings"
)

const userSpecifiedAgentEnvironmentVariableName = "FUNCPROV_USER_AGENT"
const githubActionsEnvironmentVariableName = "GITHUB_ACTIONS"

const productIdentifierKey = "funcprov"
const githubActionsProductIdentifierKey = "GhActions"

// MakeUserAgentString creates the user agent sent to Azure, in increasing order:
// - funcprov/<version>
// - the identifier set in FUNCPROV_USER_AGENT, if any
// - GhActions, when running inside GitHub Actions
func MakeUserAgentString() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s/%s", productIdentifierKey, GetVersionNumber()))

	if userSpecified := strings.TrimSpace(os.Getenv(userSpecifiedAgentEnvironmentVariableName)); userSpecified != "" {
		sb.WriteString(" " + userSpecified)
	}

	if os.Getenv(githubActionsEnvironmentVariableName) == "true" {
		sb.WriteString(" " + githubActionsProductIdentifierKey)
	}

	return sb.String()
}
