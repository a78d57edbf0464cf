package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	rand.Read(bytes)
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

func GeneratePetName() string {
	return generateRandomName("pet")
}

// PetPayload is the form data for creating or updating a pet.
type PetPayload struct {
	Name       string
	AnimalType string
	Age        string
	Photo      string
}

// PetPayloadBuilder builds pet payloads for testing.
type PetPayloadBuilder struct {
	payload PetPayload
}

// NewPetPayload creates a new pet payload builder with a unique name.
func NewPetPayload() *PetPayloadBuilder {
	return &PetPayloadBuilder{
		payload: PetPayload{
			Name:       GeneratePetName(),
			AnimalType: "cat",
			Age:        "3",
			Photo:      PhotoPath(DefaultPhoto),
		},
	}
}

func (b *PetPayloadBuilder) WithName(name string) *PetPayloadBuilder {
	b.payload.Name = name
	return b
}

func (b *PetPayloadBuilder) WithAnimalType(animalType string) *PetPayloadBuilder {
	b.payload.AnimalType = animalType
	return b
}

func (b *PetPayloadBuilder) WithAge(age string) *PetPayloadBuilder {
	b.payload.Age = age
	return b
}

// WithPhoto sets the photo, by file name under the images directory.
func (b *PetPayloadBuilder) WithPhoto(name string) *PetPayloadBuilder {
	b.payload.Photo = PhotoPath(name)
	return b
}

// Build returns the completed pet payload.
func (b *PetPayloadBuilder) Build() PetPayload {
	return b.payload
}
