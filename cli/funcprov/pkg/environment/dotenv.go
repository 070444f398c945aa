// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package environment

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/azure/funcprov/cli/funcprov/pkg/osutil"
	"github.com/joho/godotenv"
)

// Keys written to the credential file.
const (
	SubscriptionIdEnvVarName     = "AZURE_SUBSCRIPTION_ID"
	FunctionAppNameEnvVarName    = "AZURE_FUNCTIONAPP_NAME"
	StorageAccountNameEnvVarName = "AZURE_STORAGE_ACCOUNT_NAME"
	ClientIdEnvVarName           = "AZURE_CLIENT_ID"
	ClientSecretEnvVarName       = "AZURE_CLIENT_SECRET"
	TenantIdEnvVarName           = "AZURE_TENANT_ID"
	AppInsightsNameEnvVarName    = "AZURE_APP_INSIGHTS_NAME"
	AppInsightsKeyEnvVarName     = "AZURE_APP_INSIGHTS_KEY"
)

// DotEnvPath is the credential file location for a function app: <dir>/<app>.env
func DotEnvPath(dir string, appName string) string {
	return filepath.Join(dir, appName+".env")
}

// WriteDotEnv writes values as a shell-sourceable file readable only by the current user.
func WriteDotEnv(path string, values map[string]string) error {
	marshalled, err := godotenv.Marshal(values)
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	marshalled = quoteNumericValues(values, marshalled)

	if err := os.MkdirAll(filepath.Dir(path), osutil.PermissionDirectory); err != nil {
		return fmt.Errorf("failed to create a directory: %w", err)
	}

	envFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, osutil.PermissionFileOwnerOnly)
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	defer envFile.Close()

	// an existing file keeps its mode on open
	if err := envFile.Chmod(osutil.PermissionFileOwnerOnly); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	if _, err := envFile.WriteString(marshalled + "\n"); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	if err := envFile.Sync(); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	return nil
}

// ReadDotEnv reads a file written by WriteDotEnv.
func ReadDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return values, nil
}

var unquotedNumberLine = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=(-?[0-9]+)$`)

// godotenv.Marshal leaves integers unquoted, which drops leading zeros and signs
// of values that only look numeric. Quote them with the original text.
func quoteNumericValues(values map[string]string, marshalled string) string {
	lines := strings.Split(marshalled, "\n")
	for i, line := range lines {
		m := unquotedNumberLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		if original, has := values[m[1]]; has {
			lines[i] = fmt.Sprintf("%s=%s", m[1], strconv.Quote(original))
		}
	}

	return strings.Join(lines, "\n")
}
