// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package mocks

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/azure/funcprov/cli/funcprov/test/mocks/mockexec"
	"github.com/azure/funcprov/cli/funcprov/test/mocks/mockhttp"
)

type MockContext struct {
	Context          *context.Context
	CommandRunner    *mockexec.MockCommandRunner
	HttpClient       *mockhttp.MockHttpClient
	Credentials      *MockCredentials
	ArmClientOptions *arm.ClientOptions
}

func NewMockContext(ctx context.Context) *MockContext {
	commandRunner := mockexec.NewMockCommandRunner()
	httpClient := mockhttp.NewMockHttpClient()

	return &MockContext{
		Context:          &ctx,
		CommandRunner:    commandRunner,
		HttpClient:       httpClient,
		Credentials:      &MockCredentials{},
		ArmClientOptions: NewArmClientOptions(httpClient),
	}
}

// NewArmClientOptions routes SDK traffic through transport and disables retries.
func NewArmClientOptions(transport policy.Transporter) *arm.ClientOptions {
	return &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Transport: transport,
			Retry: policy.RetryOptions{
				MaxRetries: -1,
			},
		},
	}
}
