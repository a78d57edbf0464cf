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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"
	"path/filepath"
	"runtime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/petfriends-api-tests/pkg/petfriends"
	"github.com/nscaledev/petfriends-api-tests/pkg/petfriends/fake"
)

const (
	// DefaultPhoto is a small valid JPEG.
	DefaultPhoto = "cat1.jpg"
	// GIFPhoto is in a format the service claims not to accept.
	GIFPhoto = "GIF.gif"
)

// PhotoPath resolves a file under the images directory next to this package.
func PhotoPath(name string) string {
	_, file, _, _ := runtime.Caller(0)

	return filepath.Join(filepath.Dir(file), "images", name)
}

// StartService returns the base URL the suites should target.  Without a
// configured live service a fake one is started for the configured account
// and stopped when the suite ends.
func StartService(config *TestConfig) string {
	if config.Live() {
		return config.BaseURL
	}

	server := fake.NewServer(fake.Account{
		Email:    config.Email,
		Password: config.Password,
	})

	GinkgoWriter.Printf("No PETFRIENDS_BASE_URL set, using fake service at %s\n", server.URL())

	DeferCleanup(server.Close)

	return server.URL()
}

// GetKey obtains a valid auth key for the configured account.
func GetKey(client *APIClient, ctx context.Context, config *TestConfig) petfriends.AuthKey {
	result, err := client.GetAPIKey(ctx, config.Email, config.Password)
	Expect(err).NotTo(HaveOccurred())
	Expect(result).To(HaveStatus(http.StatusOK))

	key, err := result.APIKey()
	Expect(err).NotTo(HaveOccurred())
	Expect(key).NotTo(BeEmpty())

	return key
}

// ListPets lists pets and expects the call to succeed.
func ListPets(client *APIClient, ctx context.Context, key petfriends.AuthKey, filter petfriends.Filter) *petfriends.PetList {
	result, err := client.GetPetList(ctx, key, filter)
	Expect(err).NotTo(HaveOccurred())
	Expect(result).To(HaveStatus(http.StatusOK))

	pets, err := result.Pets()
	Expect(err).NotTo(HaveOccurred())

	return pets
}

// CreatePetWithCleanup creates a pet without a photo and schedules its deletion.
func CreatePetWithCleanup(client *APIClient, ctx context.Context, key petfriends.AuthKey, payload PetPayload) *petfriends.Pet {
	result, err := client.AddNewPetWithoutPhoto(ctx, key, payload.Name, payload.AnimalType, payload.Age)
	Expect(err).NotTo(HaveOccurred())
	Expect(result).To(HaveStatus(http.StatusOK))

	pet, err := result.Pet()
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created pet with ID: %s\n", pet.ID)

	DeleteOnCleanup(client, ctx, key, pet.ID)

	return pet
}

// DeleteOnCleanup schedules deletion of a pet when the test ends.  Deleting
// a pet the test already removed is harmless.
func DeleteOnCleanup(client *APIClient, ctx context.Context, key petfriends.AuthKey, petID string) {
	// Schedule cleanup - this runs whether the test passes or fails so we don't need to clean up manually
	DeferCleanup(func() {
		GinkgoWriter.Printf("Cleaning up pet: %s\n", petID)

		if _, err := client.DeletePet(ctx, key, petID); err != nil {
			GinkgoWriter.Printf("Warning: Failed to delete pet %s: %v\n", petID, err)
		}
	})
}

// EnsureMyPet returns the newest of the account's pets, creating one first
// if the account has none.
func EnsureMyPet(client *APIClient, ctx context.Context, key petfriends.AuthKey) petfriends.Pet {
	pets := ListPets(client, ctx, key, petfriends.FilterMyPets)
	if len(pets.Pets) > 0 {
		return pets.Pets[0]
	}

	CreatePetWithCleanup(client, ctx, key, NewPetPayload().Build())

	pets = ListPets(client, ctx, key, petfriends.FilterMyPets)
	Expect(pets.Pets).NotTo(BeEmpty(), "Expected a pet to exist after creating one")

	return pets.Pets[0]
}

// VerifyPetPresence verifies that a pet is present in the list.
func VerifyPetPresence(pets *petfriends.PetList, petID string) {
	Expect(extractPetIDs(pets)).To(ContainElement(petID), "Expected pet ID %s to be present in the list", petID)
}

// VerifyPetAbsence verifies that a pet is not present in the list.
func VerifyPetAbsence(pets *petfriends.PetList, petID string) {
	Expect(extractPetIDs(pets)).NotTo(ContainElement(petID), "Expected pet ID %s to be absent from the list", petID)
}

// extractPetIDs extracts pet IDs from a pet list.
func extractPetIDs(pets *petfriends.PetList) []string {
	petIDs := make([]string, len(pets.Pets))

	for i := range pets.Pets {
		petIDs[i] = pets.Pets[i].ID
	}

	return petIDs
}
