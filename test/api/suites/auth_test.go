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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/petfriends-api-tests/pkg/petfriends/fake"
	"github.com/nscaledev/petfriends-api-tests/test/api"
)

var _ = Describe("Authorisation", Label("api", "auth"), func() {
	Context("When requesting an API key", func() {
		Describe("Given valid credentials", func() {
			It("should return a key", func() {
				result, err := client.GetAPIKey(ctx, config.Email, config.Password)
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(api.HaveStatus(http.StatusOK))
				Expect(result).To(api.Mention("key"))

				key, err := result.APIKey()
				Expect(err).NotTo(HaveOccurred())
				Expect(key).NotTo(BeEmpty())

				logged, err := os.ReadFile(client.CallLogPath())
				Expect(err).NotTo(HaveOccurred())
				Expect(string(logged)).To(ContainSubstring("Calling function GetAPIKey("))
			})
		})

		Describe("Given missing or incomplete credentials", func() {
			DescribeTable("should reject the request",
				func(credentials func() (string, string)) {
					email, password := credentials()

					result, err := client.GetAPIKey(ctx, email, password)
					Expect(err).NotTo(HaveOccurred())
					Expect(result).To(api.HaveStatus(http.StatusForbidden))
					Expect(result).To(api.Mention(fake.MessageUserNotFound))
				},
				Entry("with empty email and password", func() (string, string) {
					return "", ""
				}),
				Entry("with a correct email and empty password", func() (string, string) {
					return config.Email, ""
				}),
				Entry("with an empty email and correct password", func() (string, string) {
					return "", config.Password
				}),
			)
		})
	})
})
