/*
Copyright 2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:err113 // dynamic errors acceptable in test code
package api

import (
	"fmt"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"

	"github.com/nscaledev/petfriends-api-tests/pkg/petfriends"
)

func toResult(actual any, matcher string) (*petfriends.Result, error) {
	result, ok := actual.(*petfriends.Result)
	if !ok || result == nil {
		return nil, fmt.Errorf("%s matcher expects a non-nil *petfriends.Result.  Got:\n%s", matcher, format.Object(actual, 1))
	}

	return result, nil
}

// describe renders a result so failures show what the service sent back.
func describe(actual any) string {
	result, ok := actual.(*petfriends.Result)
	if !ok || result == nil {
		return format.Object(actual, 1)
	}

	return fmt.Sprintf("status %d with body %q", result.StatusCode, result.Text())
}

type haveStatusMatcher struct {
	expected int
}

// HaveStatus succeeds when a result has the expected status code.
func HaveStatus(expected int) types.GomegaMatcher {
	return &haveStatusMatcher{
		expected: expected,
	}
}

func (m *haveStatusMatcher) Match(actual any) (bool, error) {
	result, err := toResult(actual, "HaveStatus")
	if err != nil {
		return false, err
	}

	return result.StatusCode == m.expected, nil
}

func (m *haveStatusMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("Expected\n\t%s\nto have status %d", describe(actual), m.expected)
}

func (m *haveStatusMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected\n\t%s\nnot to have status %d", describe(actual), m.expected)
}

type mentionMatcher struct {
	expected string
}

// Mention succeeds when a JSON object body has the expected key, or a text
// body contains the expected string.
func Mention(expected string) types.GomegaMatcher {
	return &mentionMatcher{
		expected: expected,
	}
}

func (m *mentionMatcher) Match(actual any) (bool, error) {
	result, err := toResult(actual, "Mention")
	if err != nil {
		return false, err
	}

	return result.Contains(m.expected), nil
}

func (m *mentionMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("Expected\n\t%s\nto mention %q", describe(actual), m.expected)
}

func (m *mentionMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected\n\t%s\nnot to mention %q", describe(actual), m.expected)
}
