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
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/petfriends-api-tests/pkg/petfriends"
	"github.com/nscaledev/petfriends-api-tests/test/api"
)

var _ = Describe("New Pet", Label("api", "new_pet"), func() {
	var key petfriends.AuthKey

	BeforeEach(func() {
		key = api.GetKey(client, ctx, config)
	})

	// addPet adds a pet with a photo, deleting it again if it was created.
	addPet := func(key petfriends.AuthKey, payload api.PetPayload) *petfriends.Result {
		result, err := client.AddNewPet(ctx, key, payload.Name, payload.AnimalType, payload.Age, payload.Photo)
		Expect(err).NotTo(HaveOccurred())

		if pet, err := result.Pet(); err == nil && pet.ID != "" {
			api.DeleteOnCleanup(client, ctx, key, pet.ID)
		}

		return result
	}

	// addPetWithoutPhoto is addPet for the simple endpoint.
	addPetWithoutPhoto := func(key petfriends.AuthKey, payload api.PetPayload) *petfriends.Result {
		result, err := client.AddNewPetWithoutPhoto(ctx, key, payload.Name, payload.AnimalType, payload.Age)
		Expect(err).NotTo(HaveOccurred())

		if pet, err := result.Pet(); err == nil && pet.ID != "" {
			api.DeleteOnCleanup(client, ctx, key, pet.ID)
		}

		return result
	}

	Context("When adding a pet with a photo", func() {
		Describe("Given valid data", func() {
			It("should create the pet", func() {
				payload := api.NewPetPayload().
					WithName("Давай").
					WithAnimalType("Работай").
					WithAge("3").
					Build()

				result := addPet(key, payload)
				Expect(result).To(api.HaveStatus(http.StatusOK))

				pet, err := result.Pet()
				Expect(err).NotTo(HaveOccurred())
				Expect(pet.Name).To(Equal(payload.Name))
				Expect(pet.PetPhoto).NotTo(BeEmpty())

				api.VerifyPetPresence(api.ListPets(client, ctx, key, petfriends.FilterMyPets), pet.ID)
			})
		})

		Describe("Given an incorrect key", func() {
			It("should ask for a valid auth key", func() {
				result := addPet(petfriends.InvalidAuthKey, api.NewPetPayload().Build())
				Expect(result).To(api.HaveStatus(http.StatusForbidden))
				Expect(result).To(api.Mention("Please provide 'auth_key'"))
			})
		})

		Describe("Given invalid data", func() {
			It("should reject empty info fields", func() {
				Skip("There is a bag")

				result := addPet(key, api.NewPetPayload().WithName("").WithAnimalType("").WithAge("").Build())
				Expect(result).To(api.HaveStatus(http.StatusBadRequest))
			})

			It("should reject a too long name, special symbols and a fractional negative age", func() {
				Skip("There is a bag")

				payload := api.NewPetPayload().
					WithName(strings.Repeat("Давай", 1000)).
					WithAnimalType("??<>=!@#$%^&*()").
					WithAge("-3.7").
					Build()

				Expect(addPet(key, payload)).To(api.HaveStatus(http.StatusBadRequest))
			})

			It("should reject letters in the age field", func() {
				Skip("There is a bag")

				Expect(addPet(key, api.NewPetPayload().WithAge("age").Build())).To(api.HaveStatus(http.StatusBadRequest))
			})

			It("should reject an unsupported image format", func() {
				Skip("There is a bag - system does not check image format")

				Expect(addPet(key, api.NewPetPayload().WithPhoto(api.GIFPhoto).Build())).To(api.HaveStatus(http.StatusBadRequest))
			})
		})
	})

	Context("When adding a pet without a photo", func() {
		Describe("Given valid data", func() {
			It("should create the pet", func() {
				payload := api.NewPetPayload().
					WithName("Имя").
					WithAnimalType("Тип").
					WithAge("4").
					Build()

				result := addPetWithoutPhoto(key, payload)
				Expect(result).To(api.HaveStatus(http.StatusOK))

				pet, err := result.Pet()
				Expect(err).NotTo(HaveOccurred())
				Expect(pet.Name).To(Equal(payload.Name))
				Expect(pet.AnimalType).To(Equal(payload.AnimalType))
				Expect(string(pet.Age)).To(Equal(payload.Age))
			})
		})

		Describe("Given an incorrect key", func() {
			It("should ask for a valid auth key", func() {
				result := addPetWithoutPhoto(petfriends.InvalidAuthKey, api.NewPetPayload().Build())
				Expect(result).To(api.HaveStatus(http.StatusForbidden))
				Expect(result).To(api.Mention("Please provide 'auth_key'"))
			})
		})

		Describe("Given invalid data", func() {
			It("should reject an empty name, a too long animal type and a malformed age", func() {
				Skip("There is a bag")

				payload := api.NewPetPayload().
					WithName("").
					WithAnimalType(strings.Repeat("type?<>!@#$", 1000)).
					WithAge("-4age").
					Build()

				Expect(addPetWithoutPhoto(key, payload)).To(api.HaveStatus(http.StatusBadRequest))
			})
		})
	})
})
