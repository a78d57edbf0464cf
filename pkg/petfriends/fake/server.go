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

// Package fake provides an in-process stand in for the PetFriends service.
// It reproduces the observable responses of the live service, including its
// known defects: pet fields are not validated, image formats are not checked
// and deleting an unknown pet succeeds.
package fake

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	MessageUserNotFound    = "This user wasn't found in database"
	MessageMissingAuthKey  = "Please provide 'auth_key' Header"
	MessageInvalidFilter   = "Filter value is incorrect"
	MessagePetNotFound     = "Pet with this id wasn't found!"
	MessageMissingPetPhoto = "Please provide 'pet_photo'"

	maxUploadSize = 10 << 20
)

// Account is a registered user.
type Account struct {
	Email    string
	Password string
}

type pet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AnimalType string `json:"animal_type"`
	Age        string `json:"age"`
	PetPhoto   string `json:"pet_photo"`
	CreatedAt  string `json:"created_at"`
	UserID     string `json:"user_id"`
}

type user struct {
	id       string
	password string
	key      string
}

// Server is a fake PetFriends service.
type Server struct {
	lock sync.Mutex
	// users are keyed by email.
	users map[string]*user
	// keys map auth keys to user IDs.
	keys map[string]string
	// pets are kept in creation order.
	pets []*pet

	router chi.Router
	server *httptest.Server
}

// NewServer starts a fake service with the given accounts registered.
func NewServer(accounts ...Account) *Server {
	s := &Server{
		users: map[string]*user{},
		keys:  map[string]string{},
	}

	for _, account := range accounts {
		s.Register(account)
	}

	s.router = s.routes()
	s.server = httptest.NewServer(s.router)

	return s
}

// URL is the base URL of the running server.
func (s *Server) URL() string {
	return s.server.URL
}

// Handler exposes the router, for use without a listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close shuts the server down.
func (s *Server) Close() {
	s.server.Close()
}

// Register adds an account, returning its auth key.
func (s *Server) Register(account Account) string {
	s.lock.Lock()
	defer s.lock.Unlock()

	u := &user{
		id:       uuid.NewString(),
		password: account.Password,
		key:      strings.ReplaceAll(uuid.NewString(), "-", ""),
	}

	s.users[account.Email] = u
	s.keys[u.key] = u.id

	return u.key
}

// PetCount returns the number of stored pets.
func (s *Server) PetCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.pets)
}

func (s *Server) routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/api/key", s.getAPIKey)

	router.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/api/pets", s.listPets)
		r.Post("/api/pets", s.createPet)
		r.Post("/api/create_pet_simple", s.createPetSimple)
		r.Post("/api/pets/set_photo/{pet_id}", s.setPhoto)
		r.Put("/api/pets/{pet_id}", s.updatePet)
		r.Delete("/api/pets/{pet_id}", s.deletePet)
	})

	return router
}

// htmlError mirrors the HTML error pages the service returns.
func htmlError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = io.WriteString(w, "<!doctype html>\n<title>"+http.StatusText(status)+"</title>\n<h1>"+http.StatusText(status)+"</h1>\n<p>"+message+"</p>\n")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(v)
}

type userIDKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		userID, ok := s.keys[r.Header.Get("auth_key")]
		s.lock.Unlock()

		if !ok {
			htmlError(w, http.StatusForbidden, MessageMissingAuthKey)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

func (s *Server) getAPIKey(w http.ResponseWriter, r *http.Request) {
	email := r.Header.Get("email")
	password := r.Header.Get("password")

	s.lock.Lock()
	u, ok := s.users[email]
	s.lock.Unlock()

	if !ok || email == "" || u.password != password {
		htmlError(w, http.StatusForbidden, MessageUserNotFound)
		return
	}

	writeJSON(w, map[string]string{"key": u.key})
}

func (s *Server) listPets(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var mine bool

	switch r.URL.Query().Get("filter") {
	case "":
	case "my_pets":
		mine = true
	default:
		htmlError(w, http.StatusInternalServerError, MessageInvalidFilter)
		return
	}

	s.lock.Lock()

	pets := make([]pet, 0, len(s.pets))

	// Newest first.
	for i := len(s.pets) - 1; i >= 0; i-- {
		if mine && s.pets[i].UserID != userID {
			continue
		}

		pets = append(pets, *s.pets[i])
	}

	s.lock.Unlock()

	writeJSON(w, map[string]any{"pets": pets})
}

func (s *Server) addPet(userID, name, animalType, age, photo string) *pet {
	p := &pet{
		ID:         uuid.NewString(),
		Name:       name,
		AnimalType: animalType,
		Age:        age,
		PetPhoto:   photo,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		UserID:     userID,
	}

	s.lock.Lock()
	s.pets = append(s.pets, p)
	s.lock.Unlock()

	return p
}

// readPhoto returns the uploaded photo as a data URI, or "" if none was sent.
func readPhoto(r *http.Request) (string, error) {
	file, _, err := r.FormFile("pet_photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}

		return "", err
	}

	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *Server) createPet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		htmlError(w, http.StatusBadRequest, err.Error())
		return
	}

	photo, err := readPhoto(r)
	if err != nil {
		htmlError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := s.addPet(userIDFromContext(r.Context()), r.FormValue("name"), r.FormValue("animal_type"), r.FormValue("age"), photo)

	writeJSON(w, p)
}

func (s *Server) createPetSimple(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		htmlError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := s.addPet(userIDFromContext(r.Context()), r.PostFormValue("name"), r.PostFormValue("animal_type"), r.PostFormValue("age"), "")

	writeJSON(w, p)
}

// lookup finds a pet owned by userID.
func (s *Server) lookup(userID, petID string) (*pet, bool) {
	for _, p := range s.pets {
		if p.ID == petID && p.UserID == userID {
			return p, true
		}
	}

	return nil, false
}

func (s *Server) setPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		htmlError(w, http.StatusBadRequest, err.Error())
		return
	}

	photo, err := readPhoto(r)
	if err != nil {
		htmlError(w, http.StatusBadRequest, err.Error())
		return
	}

	if photo == "" {
		htmlError(w, http.StatusBadRequest, MessageMissingPetPhoto)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	p, ok := s.lookup(userIDFromContext(r.Context()), chi.URLParam(r, "pet_id"))
	if !ok {
		// The live service reports a server error rather than a 4xx here.
		htmlError(w, http.StatusInternalServerError, MessagePetNotFound)
		return
	}

	p.PetPhoto = photo

	writeJSON(w, p)
}

func (s *Server) updatePet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		htmlError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	p, ok := s.lookup(userIDFromContext(r.Context()), chi.URLParam(r, "pet_id"))
	if !ok {
		htmlError(w, http.StatusBadRequest, MessagePetNotFound)
		return
	}

	for field, target := range map[string]*string{
		"name":        &p.Name,
		"animal_type": &p.AnimalType,
		"age":         &p.Age,
	} {
		if value := r.PostFormValue(field); value != "" {
			*target = value
		}
	}

	writeJSON(w, p)
}

func (s *Server) deletePet(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	petID := chi.URLParam(r, "pet_id")

	s.lock.Lock()

	for i, p := range s.pets {
		if p.ID == petID && p.UserID == userID {
			s.pets = append(s.pets[:i], s.pets[i+1:]...)
			break
		}
	}

	s.lock.Unlock()

	// Always succeeds with an empty body, even for unknown IDs and repeated
	// deletes.  The live service does the same although it should not.
	w.WriteHeader(http.StatusOK)
}
