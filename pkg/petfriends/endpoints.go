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

package petfriends

import (
	"net/url"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Authentication endpoints.
func (e *Endpoints) APIKey() string {
	return "/api/key"
}

// Pet endpoints.
func (e *Endpoints) ListPets() string {
	return "/api/pets"
}

func (e *Endpoints) CreatePet() string {
	return "/api/pets"
}

func (e *Endpoints) CreatePetSimple() string {
	return "/api/create_pet_simple"
}

func (e *Endpoints) SetPetPhoto(petID string) string {
	return "/api/pets/set_photo/" + url.PathEscape(petID)
}

func (e *Endpoints) UpdatePet(petID string) string {
	return "/api/pets/" + url.PathEscape(petID)
}

func (e *Endpoints) DeletePet(petID string) string {
	return "/api/pets/" + url.PathEscape(petID)
}
