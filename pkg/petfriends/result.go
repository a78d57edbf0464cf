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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nscaledev/petfriends-api-tests/pkg/calllog"
)

// Result is the outcome of a single API call.  Status codes are never
// interpreted, an error status is still a successful call.
type Result struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Body is the decoded JSON body, or the raw body as a string when it
	// is not JSON.  Error pages from the service are typically HTML.
	Body any
	// Raw is the unmodified response body.
	Raw []byte
	// Record is the snapshot of the request as it was sent.
	Record *calllog.Record
}

// ParseBody decodes a JSON body, falling back to plain text.  A body that is
// a bare JSON string decodes to that string and is then treated as text.
func ParseBody(raw []byte) any {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return string(raw)
	}

	return body
}

func newResult(statusCode int, raw []byte) *Result {
	return &Result{
		StatusCode: statusCode,
		Body:       ParseBody(raw),
		Raw:        raw,
	}
}

// JSON returns the body as a JSON object, if it is one.
func (r *Result) JSON() (map[string]any, bool) {
	object, ok := r.Body.(map[string]any)

	return object, ok
}

// Text returns the body as text.
func (r *Result) Text() string {
	if text, ok := r.Body.(string); ok {
		return text
	}

	return string(r.Raw)
}

// Contains reports whether s is a key of a JSON object body, an element of
// a JSON array body, or a substring of a text body.
func (r *Result) Contains(s string) bool {
	switch body := r.Body.(type) {
	case map[string]any:
		_, ok := body[s]

		return ok
	case []any:
		for _, element := range body {
			if element == s {
				return true
			}
		}

		return false
	case string:
		return strings.Contains(body, s)
	}

	return false
}

// Decode unmarshals the raw body into v.
func (r *Result) Decode(v any) error {
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return fmt.Errorf("decoding %d response: %w", r.StatusCode, err)
	}

	return nil
}

// APIKey decodes the body of a GetAPIKey call.
func (r *Result) APIKey() (AuthKey, error) {
	var key APIKey
	if err := r.Decode(&key); err != nil {
		return "", err
	}

	return key.Key, nil
}

// Pets decodes the body of a GetPetList call.
func (r *Result) Pets() (*PetList, error) {
	var list PetList
	if err := r.Decode(&list); err != nil {
		return nil, err
	}

	return &list, nil
}

// Pet decodes the body of a call returning a single pet.
func (r *Result) Pet() (*Pet, error) {
	var pet Pet
	if err := r.Decode(&pet); err != nil {
		return nil, err
	}

	return &pet, nil
}
