// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package tools

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/blang/semver/v4"
)

// ExternalTool is a command line tool funcprov shells out to.
type ExternalTool interface {
	CheckInstalled(ctx context.Context) error
	InstallUrl() string
	Name() string
}

type ErrSemver struct {
	ToolName    string
	VersionInfo VersionInfo
}

type VersionInfo struct {
	MinimumVersion semver.Version
	UpdateCommand  string
}

func (err *ErrSemver) Error() string {
	return fmt.Sprintf("need at least version %s or later of %s installed. %s",
		err.VersionInfo.MinimumVersion.String(), err.ToolName, err.VersionInfo.UpdateCommand)
}

var (
	majorMinorPatchRegex = regexp.MustCompile(`\d+\.\d+\.\d+`)
	majorMinorRegex      = regexp.MustCompile(`(\d+)\.(\d+)`)
	majorRegex           = regexp.MustCompile(`\d+`)
)

// ExtractVersion extracts a major.minor.patch version number from a typical CLI version output.
//
// minor and patch version numbers are both optional, treated as 0 if not found.
func ExtractVersion(cliOutput string) (semver.Version, error) {
	ver, err := semver.Parse(majorMinorPatchRegex.FindString(cliOutput))
	if err == nil {
		return ver, nil
	}

	if majorMinor := majorMinorRegex.FindStringSubmatch(cliOutput); len(majorMinor) >= 3 {
		return semver.Version{
			Major: parseUint(majorMinor[1]),
			Minor: parseUint(majorMinor[2]),
		}, nil
	}

	if major := majorRegex.FindString(cliOutput); major != "" {
		return semver.Version{Major: parseUint(major)}, nil
	}

	return semver.Version{}, fmt.Errorf("no valid version number found in %s", cliOutput)
}

// CheckMinimumVersion returns an *ErrSemver when actual is older than info.MinimumVersion.
func CheckMinimumVersion(toolName string, actual semver.Version, info VersionInfo) error {
	if actual.LT(info.MinimumVersion) {
		return &ErrSemver{ToolName: toolName, VersionInfo: info}
	}

	return nil
}

func parseUint(s string) uint64 {
	res, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		panic(err)
	}
	return res
}
