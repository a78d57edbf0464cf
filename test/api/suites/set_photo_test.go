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
	"github.com/nscaledev/petfriends-api-tests/test/api"
)

var _ = Describe("Set Photo", Label("api", "set_photo"), func() {
	var (
		key petfriends.AuthKey
		pet *petfriends.Pet
	)

	BeforeEach(func() {
		key = api.GetKey(client, ctx, config)
		pet = api.CreatePetWithCleanup(client, ctx, key, api.NewPetPayload().Build())
	})

	Context("When setting the photo of an existing pet", func() {
		Describe("Given valid data", func() {
			It("should store the photo", func() {
				Expect(pet.PetPhoto).To(BeEmpty())

				result, err := client.SetPetPhoto(ctx, key, pet.ID, api.PhotoPath(api.DefaultPhoto))
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(api.HaveStatus(http.StatusOK))
				Expect(result).To(api.Mention("pet_photo"))

				updated, err := result.Pet()
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.ID).To(Equal(pet.ID))
				Expect(updated.PetPhoto).NotTo(BeEmpty())
			})
		})

		Describe("Given an incorrect key", func() {
			It("should ask for a valid auth key", func() {
				result, err := client.SetPetPhoto(ctx, petfriends.InvalidAuthKey, pet.ID, api.PhotoPath(api.DefaultPhoto))
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(api.HaveStatus(http.StatusForbidden))
				Expect(result).To(api.Mention("Please provide 'auth_key'"))
			})
		})

		Describe("Given invalid data", func() {
			It("should reject an empty pet ID", func() {
				Skip("Incorrect status code comes with respond")

				result, err := client.SetPetPhoto(ctx, key, "", api.PhotoPath(api.DefaultPhoto))
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(api.HaveStatus(http.StatusBadRequest))
			})

			It("should reject an unsupported image format", func() {
				Skip("There is a bag - system does not check image format")

				result, err := client.SetPetPhoto(ctx, key, pet.ID, api.PhotoPath(api.GIFPhoto))
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(api.HaveStatus(http.StatusBadRequest))
			})
		})
	})
})
