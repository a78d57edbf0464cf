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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/petfriends-api-tests/pkg/petfriends"
	"github.com/nscaledev/petfriends-api-tests/pkg/petfriends/fake"
	"github.com/nscaledev/petfriends-api-tests/test/api"
)

var _ = Describe("Pet List", Label("api", "pet_list"), func() {
	Context("When listing pets", func() {
		Describe("Given a valid key", func() {
			var key petfriends.AuthKey

			BeforeEach(func() {
				key = api.GetKey(client, ctx, config)
			})

			It("should return a non empty list of all pets", func() {
				api.EnsureMyPet(client, ctx, key)

				result, err := client.GetPetList(ctx, key, petfriends.FilterAll)
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(api.HaveStatus(http.StatusOK))

				pets, err := result.Pets()
				Expect(err).NotTo(HaveOccurred())
				Expect(pets.Pets).NotTo(BeEmpty())
			})

			It("should include my newly created pet when filtering my pets", func() {
				pet := api.CreatePetWithCleanup(client, ctx, key, api.NewPetPayload().Build())

				api.VerifyPetPresence(api.ListPets(client, ctx, key, petfriends.FilterMyPets), pet.ID)
			})

			It("should reject an unknown filter value", func() {
				result, err := client.GetPetList(ctx, key, petfriends.Filter("filter"))
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(api.HaveStatus(http.StatusInternalServerError))
				Expect(result).To(api.Mention(fake.MessageInvalidFilter))
			})
		})

		Describe("Given an incorrect key", func() {
			It("should ask for a valid auth key", func() {
				result, err := client.GetPetList(ctx, petfriends.InvalidAuthKey, petfriends.FilterAll)
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(api.HaveStatus(http.StatusForbidden))
				Expect(result).To(api.Mention("Please provide 'auth_key'"))
			})
		})
	})
})
