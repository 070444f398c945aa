// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

// ErrorWithSuggestion is a custom error type that includes a suggestion for the user
type ErrorWithSuggestion struct {
	Suggestion string
	Err        error
}

// Error returns the error message
func (es *ErrorWithSuggestion) Error() string {
	return es.Err.Error()
}

// Unwrap returns the wrapped error
func (es *ErrorWithSuggestion) Unwrap() error {
	return es.Err
}

// UsageError marks an error caused by a malformed invocation. The command help is
// printed after the error message.
type UsageError struct {
	Err error
}

func (ue *UsageError) Error() string {
	return ue.Err.Error()
}

func (ue *UsageError) Unwrap() error {
	return ue.Err
}
