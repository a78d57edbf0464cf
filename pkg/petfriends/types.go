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
	"bytes"
	"encoding/json"
)

// AuthKey is the opaque token returned by GetAPIKey.
type AuthKey string

// InvalidAuthKey is a well formed but unknown key, used to exercise the
// authorization failure paths.
const InvalidAuthKey AuthKey = "invalid_key"

// Filter selects which pets GetPetList returns.  The service only
// recognises the values below, anything else is passed through unchanged.
type Filter string

const (
	FilterAll    Filter = ""
	FilterMyPets Filter = "my_pets"
)

// APIKey is the body returned by a successful GetAPIKey.
type APIKey struct {
	Key AuthKey `json:"key"`
}

// Age is a pet's age.  The service is not consistent about whether it is
// encoded as a JSON number or string, so both are accepted.
type Age string

func (a *Age) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*a = Age(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*a = Age(n.String())

	return nil
}

// Pet is a pet record as returned by the service.
type Pet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AnimalType string `json:"animal_type"`
	Age        Age    `json:"age"`
	PetPhoto   string `json:"pet_photo,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UserID     string `json:"user_id,omitempty"`
}

// PetList is the body returned by a successful GetPetList.
type PetList struct {
	Pets []Pet `json:"pets"`
}

// Contains reports whether a pet with the given ID is in the list.
func (l *PetList) Contains(petID string) bool {
	for i := range l.Pets {
		if l.Pets[i].ID == petID {
			return true
		}
	}

	return false
}
