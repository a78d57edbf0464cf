/*
Copyright 2024-2025 the Unikorn Authors.
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

package api

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/onsi/ginkgo/v2"

	"github.com/nscaledev/petfriends-api-tests/pkg/calllog"
	"github.com/nscaledev/petfriends-api-tests/pkg/petfriends"
)

// APIClient is the PetFriends client wired for the test suites: every call
// is appended to the call log file and, optionally, echoed to GinkgoWriter.
type APIClient struct {
	*petfriends.Client

	callLog *calllog.FileSink
}

// NewAPIClient creates a client for the service at baseURL, which may differ
// from the configured one when the suite runs against the fake service.
func NewAPIClient(config *TestConfig, baseURL string) (*APIClient, error) {
	if baseURL == "" {
		baseURL = config.BaseURL
	}

	callLog := calllog.NewFileSink(config.CallLogPath)

	var sink calllog.Sink = callLog

	if config.LogRequests {
		sink = calllog.Multi(callLog, calllog.NewLogrSink(ginkgo.GinkgoLogr.WithName("calls")))
	}

	logger := logr.Discard()
	if config.DebugLogging {
		logger = ginkgo.GinkgoLogr.WithName("petfriends")
	}

	client, err := petfriends.New(petfriends.Options{
		BaseURL: baseURL,
		Timeout: config.RequestTimeout,
		Sink:    sink,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return &APIClient{
		Client:  client,
		callLog: callLog,
	}, nil
}

// CallLogPath is where every call made by this client is recorded.
func (c *APIClient) CallLogPath() string {
	return c.callLog.Path()
}
