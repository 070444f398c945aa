// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package exec

import (
	"regexp"
	"strings"
)

type redactData struct {
	matchString   *regexp.Regexp
	replaceString string
}

const cRedacted = "<redacted>"

var regexpRedactRules = []redactData{
	{
		regexp.MustCompile(`"accessToken":(\s*)"[^"]*"`),
		`"accessToken":$1"` + cRedacted + `"`,
	},
	{
		// az ad sp create-for-rbac output
		regexp.MustCompile(`"password":(\s*)"[^"]*"`),
		`"password":$1"` + cRedacted + `"`,
	},
	{
		regexp.MustCompile(`"instrumentationKey":(\s*)"[^"]*"`),
		`"instrumentationKey":$1"` + cRedacted + `"`,
	},
	{
		regexp.MustCompile(`InstrumentationKey=[^;"\s]+`),
		"InstrumentationKey=" + cRedacted,
	},
	{
		regexp.MustCompile(`--password \S+`),
		"--password " + cRedacted,
	},
	{
		regexp.MustCompile(`--app-insights-key \S+`),
		"--app-insights-key " + cRedacted,
	},
}

// RedactSensitiveArgs replaces every occurrence of the given literal values in args.
func RedactSensitiveArgs(args []string, sensitiveDataMatch []string) []string {
	if len(sensitiveDataMatch) == 0 {
		return args
	}
	redactedArgs := make([]string, len(args))
	for i, arg := range args {
		redacted := arg
		for _, sensitiveData := range sensitiveDataMatch {
			if sensitiveData == "" {
				continue
			}
			redacted = strings.ReplaceAll(redacted, sensitiveData, cRedacted)
		}
		redactedArgs[i] = redacted
	}
	return redactedArgs
}

// RedactSensitiveData masks secrets that az prints or receives on the command line.
func RedactSensitiveData(msg string) string {
	for _, rule := range regexpRedactRules {
		msg = rule.matchString.ReplaceAllString(msg, rule.replaceString)
	}
	return msg
}
