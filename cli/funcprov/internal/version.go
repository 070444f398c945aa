// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

import "strings"

// Version is the version string of funcprov, overwritten at build time with
// -ldflags "-X github.com/azure/funcprov/cli/funcprov/internal.Version=<version> (<commit>)".
var Version = "0.0.0-dev.0 (commit 0000000000000000000000000000000000000000)"

// GetVersionNumber returns the semver portion of Version.
func GetVersionNumber() string {
	number, _, _ := strings.Cut(Version, " ")
	return number
}
