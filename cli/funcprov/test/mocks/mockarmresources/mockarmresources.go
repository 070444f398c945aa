// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package mockarmresources

import (
	"net/http"
	"strings"

	"github.com/azure/funcprov/cli/funcprov/test/mocks/mockhttp"
)

// AddResourceExistsMock answers HEAD requests for resourceId with 204 when exists, 404 otherwise.
func AddResourceExistsMock(c *mockhttp.MockHttpClient, resourceId string, exists bool) {
	c.When(func(request *http.Request) bool {
		return request.Method == http.MethodHead &&
			strings.EqualFold(strings.TrimSuffix(request.URL.Path, "/"), resourceId)
	}).RespondFn(func(request *http.Request) (*http.Response, error) {
		status := http.StatusNotFound
		if exists {
			status = http.StatusNoContent
		}

		return mockhttp.StatusResponse(request, status, ""), nil
	})
}

// AddResourceGroupExistsMock answers the resource group existence check.
func AddResourceGroupExistsMock(c *mockhttp.MockHttpClient, subscriptionId string, resourceGroup string, exists bool) {
	AddResourceExistsMock(c, "/subscriptions/"+subscriptionId+"/resourcegroups/"+resourceGroup, exists)
}
