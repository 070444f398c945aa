// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package mockhttp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// MockHttpClient is a policy.Transporter that answers Azure SDK requests from registered expressions.
type MockHttpClient struct {
	mu          sync.Mutex
	expressions []*HttpExpression
	requests    []*http.Request
}

var _ policy.Transporter = (*MockHttpClient)(nil)

type HttpExpression struct {
	http        *MockHttpClient
	predicateFn RequestPredicate
	response    *http.Response
	responseFn  RespondFn
	error       error
}

type RequestPredicate func(request *http.Request) bool
type RespondFn func(request *http.Request) (*http.Response, error)

func NewMockHttpClient() *MockHttpClient {
	return &MockHttpClient{}
}

func (c *MockHttpClient) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()

	var match *HttpExpression
	for i := len(c.expressions) - 1; i >= 0; i-- {
		if c.expressions[i].predicateFn(req) {
			match = c.expressions[i]
			break
		}
	}

	if match == nil {
		panic(fmt.Sprintf("No mock found for request: '%s %s'", req.Method, req.URL))
	}

	if match.responseFn != nil {
		return match.responseFn(req)
	}

	if match.error != nil {
		return nil, match.error
	}

	return withRequest(match.response, req), nil
}

func (c *MockHttpClient) When(predicate RequestPredicate) *HttpExpression {
	expr := &HttpExpression{
		http:        c,
		predicateFn: predicate,
	}

	c.expressions = append(c.expressions, expr)
	return expr
}

// Requests returns every request sent through the client.
func (c *MockHttpClient) Requests() []*http.Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]*http.Request{}, c.requests...)
}

func (c *MockHttpClient) Reset() {
	c.expressions = nil
	c.requests = nil
}

func (e *HttpExpression) Respond(response *http.Response) *MockHttpClient {
	e.response = response
	return e.http
}

func (e *HttpExpression) RespondFn(responseFn RespondFn) *MockHttpClient {
	e.responseFn = responseFn
	return e.http
}

func (e *HttpExpression) SetError(err error) *MockHttpClient {
	e.error = err
	return e.http
}

// StatusResponse builds a response with the given status and an optional body.
func StatusResponse(request *http.Request, statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Request:    request,
	}
}

func withRequest(response *http.Response, request *http.Request) *http.Response {
	if response == nil {
		return StatusResponse(request, http.StatusOK, "")
	}

	copied := *response
	copied.Request = request
	if copied.Body == nil {
		copied.Body = io.NopCloser(bytes.NewBuffer(nil))
	}
	if copied.Header == nil {
		copied.Header = http.Header{}
	}

	return &copied
}
