// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azcli

import (
	"context"
	"errors"
	"fmt"
	"log"
	osexec "os/exec"
	"regexp"

	"github.com/azure/funcprov/cli/funcprov/internal"
	"github.com/azure/funcprov/cli/funcprov/pkg/exec"
	"github.com/azure/funcprov/cli/funcprov/pkg/tools"
	"github.com/blang/semver/v4"
	"github.com/tidwall/gjson"
)

var (
	ErrAzCliNotInstalled        = errors.New("az cli is not installed")
	ErrAzCliNotLoggedIn         = errors.New("cli is not logged in. Try running \"az login\" to fix")
	ErrAzCliRefreshTokenExpired = errors.New("refresh token has expired. Try running \"az login\" to fix")
	ErrAzCliResourceNotFound    = errors.New("resource not found")
)

// AzCli wraps the subset of the Azure CLI used to provision a function app.
type AzCli interface {
	tools.ExternalTool

	// SetUserAgent sets the user agent that's sent with each call to the Azure
	// CLI via the `AZURE_HTTP_USER_AGENT` environment variable.
	SetUserAgent(userAgent string)

	// UserAgent gets the currently configured user agent
	UserAgent() string

	GetAccount(ctx context.Context, subscriptionId string) (*AzCliSubscriptionInfo, error)
	ListFunctionRuntimes(ctx context.Context, osType string) ([]AzCliFunctionRuntime, error)

	CreateStorageAccount(ctx context.Context, subscriptionId string, args StorageAccountCreateArgs) error
	CreateFunctionsPlan(ctx context.Context, subscriptionId string, args PlanCreateArgs) error
	CreateAppServicePlan(ctx context.Context, subscriptionId string, args PlanCreateArgs) error
	CreateFunctionApp(ctx context.Context, subscriptionId string, args FunctionAppCreateArgs) error
	UpdateResourceProperty(ctx context.Context, subscriptionId string, args ResourceUpdateArgs) error
	AddVnetIntegration(
		ctx context.Context,
		subscriptionId string,
		resourceGroup string,
		appName string,
		vnet string,
		subnet string,
	) error

	ShowAppInsights(ctx context.Context, subscriptionId string, resourceGroup string, name string) (*AzCliAppInsights, error)
	CreateAppInsights(
		ctx context.Context,
		subscriptionId string,
		resourceGroup string,
		name string,
		location string,
	) (*AzCliAppInsights, error)

	CreateServicePrincipal(ctx context.Context, name string) (*AzCliServicePrincipalCredentials, error)
	GetServicePrincipal(ctx context.Context, id string) (*AzCliServicePrincipal, error)
	CreateRoleAssignment(ctx context.Context, assignment RoleAssignmentArgs) error
}

type NewAzCliArgs struct {
	EnableDebug   bool
	CommandRunner exec.CommandRunner
}

func NewAzCli(args NewAzCliArgs) AzCli {
	return &azCli{
		userAgent:     internal.MakeUserAgentString(),
		enableDebug:   args.EnableDebug,
		commandRunner: args.CommandRunner,
	}
}

type azCli struct {
	userAgent     string
	enableDebug   bool
	commandRunner exec.CommandRunner
}

func (cli *azCli) Name() string {
	return "Azure CLI"
}

func (cli *azCli) InstallUrl() string {
	return "https://learn.microsoft.com/cli/azure/install-azure-cli"
}

func (cli *azCli) versionInfo() tools.VersionInfo {
	return tools.VersionInfo{
		// first release supporting --flexconsumption-location
		MinimumVersion: semver.Version{
			Major: 2,
			Minor: 60,
			Patch: 0},
		UpdateCommand: "Run \"az upgrade\" to upgrade",
	}
}

// CheckInstalled verifies az is on the PATH and recent enough.
func (cli *azCli) CheckInstalled(ctx context.Context) error {
	res, err := cli.commandRunner.Run(ctx, exec.NewRunArgs("az", "version", "--output", "json"))
	if errors.Is(err, osexec.ErrNotFound) {
		return fmt.Errorf("%w. Install it from %s", ErrAzCliNotInstalled, cli.InstallUrl())
	} else if err != nil {
		return fmt.Errorf("checking %s version: %w", cli.Name(), err)
	}

	rawVersion := gjson.Get(res.Stdout, "azure-cli").String()
	if rawVersion == "" {
		rawVersion = res.Stdout
	}
	log.Printf("az version: %s", rawVersion)

	azSemver, err := tools.ExtractVersion(rawVersion)
	if err != nil {
		return fmt.Errorf("converting to semver version fails: %w", err)
	}

	return tools.CheckMinimumVersion(cli.Name(), azSemver, cli.versionInfo())
}

// SetUserAgent sets the user agent that's sent with each call to the Azure
// CLI via the `AZURE_HTTP_USER_AGENT` environment variable.
func (cli *azCli) SetUserAgent(userAgent string) {
	cli.userAgent = userAgent
}

func (cli *azCli) UserAgent() string {
	return cli.userAgent
}

func (cli *azCli) newRunArgs(args ...string) exec.RunArgs {
	runArgs := exec.NewRunArgs("az", args...).
		WithEnv([]string{fmt.Sprintf("AZURE_HTTP_USER_AGENT=%s", cli.UserAgent())})

	if cli.enableDebug {
		runArgs = runArgs.AppendParams("--debug")
	}

	return runArgs
}

func (cli *azCli) runAzCommand(ctx context.Context, args ...string) (exec.RunResult, error) {
	return cli.runAzCommandWithArgs(ctx, cli.newRunArgs(args...))
}

// runAzCommandWithArgs runs the command and classifies well known az failures.
func (cli *azCli) runAzCommandWithArgs(ctx context.Context, args exec.RunArgs) (exec.RunResult, error) {
	res, err := cli.commandRunner.Run(ctx, args)
	if err == nil {
		return res, nil
	}

	switch {
	case isNotLoggedInMessage(res.Stderr):
		return res, ErrAzCliNotLoggedIn
	case isRefreshTokenExpiredMessage(res.Stderr):
		return res, ErrAzCliRefreshTokenExpired
	case isResourceNotFoundMessage(res.Stderr):
		return res, fmt.Errorf("%w: %w", ErrAzCliResourceNotFound, err)
	}

	return res, err
}

var isNotLoggedInMessageRegex = regexp.MustCompile(
	`Please run ('|")az login('|") to (setup account|access your accounts)\.`,
)
var isRefreshTokenExpiredMessageRegex = regexp.MustCompile(`AADSTS(70043|700082)`)
var isResourceNotFoundMessageRegex = regexp.MustCompile(
	`(ResourceNotFound|ResourceGroupNotFound|was not found|could not be found|does not exist)`,
)

func isNotLoggedInMessage(s string) bool {
	return isNotLoggedInMessageRegex.MatchString(s)
}

func isRefreshTokenExpiredMessage(s string) bool {
	return isRefreshTokenExpiredMessageRegex.MatchString(s)
}

func isResourceNotFoundMessage(s string) bool {
	return isResourceNotFoundMessageRegex.MatchString(s)
}
