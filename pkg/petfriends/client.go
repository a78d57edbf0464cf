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

// Package petfriends is a thin client for the PetFriends pet management API.
// Every operation returns the status code and body exactly as the service
// sent them, and every completed call is handed to a calllog.Sink.
package petfriends

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-resty/resty/v2"

	"github.com/nscaledev/petfriends-api-tests/pkg/calllog"
)

const (
	// DefaultTimeout bounds a single request when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	headerAuthKey  = "auth_key"
	headerEmail    = "email"
	headerPassword = "password"

	paramPetID = "pet_id"
	paramPhoto = "pet_photo"
)

var ErrInvalidBaseURL = errors.New("invalid base url")

// Options configures a Client.
type Options struct {
	// BaseURL is the service root, e.g. https://petfriends.skillfactory.ru.
	BaseURL string
	// Timeout bounds each request, DefaultTimeout if zero.
	Timeout time.Duration
	// Sink receives a record of every completed call, calllog.Discard if nil.
	Sink calllog.Sink
	// Logger receives diagnostics, discarded if unset.
	Logger logr.Logger
	// Transport overrides the HTTP transport.
	Transport http.RoundTripper
}

type Client struct {
	client    *resty.Client
	endpoints *Endpoints
	sink      calllog.Sink
	logger    logr.Logger
}

// New returns a new client.
func New(options Options) (*Client, error) {
	baseURL := strings.TrimSuffix(strings.TrimSpace(options.BaseURL), "/")

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidBaseURL, options.BaseURL, err)
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	sink := options.Sink
	if sink == nil {
		sink = calllog.Discard
	}

	logger := options.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetLogger(restyLogger{logger: logger})

	if options.Transport != nil {
		client.SetTransport(options.Transport)
	}

	return &Client{
		client:    client,
		endpoints: NewEndpoints(),
		sink:      sink,
		logger:    logger,
	}, nil
}

// restyLogger routes resty's own warnings into logr.
type restyLogger struct {
	logger logr.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(nil, fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.V(1).Info(fmt.Sprintf(format, v...))
}

// apiCall is the complete description of one request.  It is built fresh for
// every operation so nothing can leak from one call into the next.
type apiCall struct {
	operation   string
	method      string
	path        string
	args        []calllog.Arg
	headers     map[string]string
	pathParams  map[string]string
	queryParams map[string]string
	form        map[string]string
	files       map[string]string
}

// authorized returns a call carrying the auth key header.
func authorized(operation, method, path string, key AuthKey) *apiCall {
	return &apiCall{
		operation: operation,
		method:    method,
		path:      path,
		headers: map[string]string{
			headerAuthKey: string(key),
		},
	}
}

func (c *apiCall) arg(name string, value any) *apiCall {
	c.args = append(c.args, calllog.Arg{Name: name, Value: value})

	return c
}

// record snapshots the call and its outcome.  File fields appear in the
// request body as their path.
func (c *apiCall) record(result *Result, start time.Time, duration time.Duration) *calllog.Record {
	body := make(map[string]string, len(c.form)+len(c.files))

	maps.Copy(body, c.form)
	maps.Copy(body, c.files)

	return &calllog.Record{
		Operation:   c.operation,
		Args:        c.args,
		Headers:     maps.Clone(c.headers),
		PathParams:  maps.Clone(c.pathParams),
		QueryParams: maps.Clone(c.queryParams),
		Body:        body,
		Status:      result.StatusCode,
		Response:    result.Body,
		Time:        start,
		Duration:    duration,
	}
}

func (c *Client) do(ctx context.Context, call *apiCall) (*Result, error) {
	traceParent := createTraceParent()

	request := c.client.R().
		SetContext(ctx).
		SetHeader("Traceparent", traceParent).
		SetHeader("Tracestate", "test-automation=petfriends")

	// The service expects lower case header names.
	for name, value := range call.headers {
		request.SetHeaderVerbatim(name, value)
	}

	if len(call.queryParams) > 0 {
		request.SetQueryParams(call.queryParams)
	}

	if len(call.form) > 0 {
		request.SetFormData(call.form)
	}

	for param, path := range call.files {
		request.SetFile(param, path)
	}

	start := time.Now()
	response, err := request.Execute(call.method, call.path)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error(err, "http request failed", "method", call.method, "path", call.path, "duration", duration.String(), "traceID", extractTraceID(traceParent))

		return nil, fmt.Errorf("http request failed: %w", err)
	}

	result := newResult(response.StatusCode(), response.Body())
	result.Record = call.record(result, start, duration)

	c.logger.V(1).Info("http request", "method", call.method, "path", call.path, "status", result.StatusCode, "duration", duration.String(), "traceID", extractTraceID(traceParent))

	if err := c.sink.Write(result.Record); err != nil {
		return result, fmt.Errorf("recording call: %w", err)
	}

	return result, nil
}

// GetAPIKey exchanges credentials for an auth key.  Credentials are not
// validated locally, empty values are sent as empty headers.
func (c *Client) GetAPIKey(ctx context.Context, email, password string) (*Result, error) {
	call := &apiCall{
		operation: "GetAPIKey",
		method:    http.MethodGet,
		path:      c.endpoints.APIKey(),
		headers: map[string]string{
			headerEmail:    email,
			headerPassword: password,
		},
	}

	call.arg("email", email).arg("password", password)

	result, err := c.do(ctx, call)
	if err != nil {
		return result, fmt.Errorf("getting api key: %w", err)
	}

	return result, nil
}

// GetPetList lists pets visible to the key's owner, filtered by filter.
func (c *Client) GetPetList(ctx context.Context, key AuthKey, filter Filter) (*Result, error) {
	call := authorized("GetPetList", http.MethodGet, c.endpoints.ListPets(), key).
		arg("authKey", key).
		arg("filter", filter)

	call.queryParams = map[string]string{
		"filter": string(filter),
	}

	result, err := c.do(ctx, call)
	if err != nil {
		return result, fmt.Errorf("listing pets: %w", err)
	}

	return result, nil
}

func petForm(name, animalType, age string) map[string]string {
	return map[string]string{
		"name":        name,
		"animal_type": animalType,
		"age":         age,
	}
}

// AddNewPet creates a pet with a photo, uploaded as multipart form data.
func (c *Client) AddNewPet(ctx context.Context, key AuthKey, name, animalType, age, photoPath string) (*Result, error) {
	call := authorized("AddNewPet", http.MethodPost, c.endpoints.CreatePet(), key).
		arg("authKey", key).
		arg("name", name).
		arg("animalType", animalType).
		arg("age", age).
		arg("photoPath", photoPath)

	call.form = petForm(name, animalType, age)
	call.files = map[string]string{
		paramPhoto: photoPath,
	}

	result, err := c.do(ctx, call)
	if err != nil {
		return result, fmt.Errorf("adding pet: %w", err)
	}

	return result, nil
}

// AddNewPetWithoutPhoto creates a pet from form fields only.
func (c *Client) AddNewPetWithoutPhoto(ctx context.Context, key AuthKey, name, animalType, age string) (*Result, error) {
	call := authorized("AddNewPetWithoutPhoto", http.MethodPost, c.endpoints.CreatePetSimple(), key).
		arg("authKey", key).
		arg("name", name).
		arg("animalType", animalType).
		arg("age", age)

	call.form = petForm(name, animalType, age)

	result, err := c.do(ctx, call)
	if err != nil {
		return result, fmt.Errorf("adding pet without photo: %w", err)
	}

	return result, nil
}

// SetPetPhoto attaches a photo to an existing pet.
func (c *Client) SetPetPhoto(ctx context.Context, key AuthKey, petID, photoPath string) (*Result, error) {
	call := authorized("SetPetPhoto", http.MethodPost, c.endpoints.SetPetPhoto(petID), key).
		arg("authKey", key).
		arg("petID", petID).
		arg("photoPath", photoPath)

	call.pathParams = map[string]string{
		paramPetID: petID,
	}
	call.files = map[string]string{
		paramPhoto: photoPath,
	}

	result, err := c.do(ctx, call)
	if err != nil {
		return result, fmt.Errorf("setting pet photo: %w", err)
	}

	return result, nil
}

// UpdatePetInfo replaces a pet's name, type and age.
func (c *Client) UpdatePetInfo(ctx context.Context, key AuthKey, petID, name, animalType, age string) (*Result, error) {
	call := authorized("UpdatePetInfo", http.MethodPut, c.endpoints.UpdatePet(petID), key).
		arg("authKey", key).
		arg("petID", petID).
		arg("name", name).
		arg("animalType", animalType).
		arg("age", age)

	call.pathParams = map[string]string{
		paramPetID: petID,
	}
	call.form = petForm(name, animalType, age)

	result, err := c.do(ctx, call)
	if err != nil {
		return result, fmt.Errorf("updating pet: %w", err)
	}

	return result, nil
}

// DeletePet removes a pet.
func (c *Client) DeletePet(ctx context.Context, key AuthKey, petID string) (*Result, error) {
	call := authorized("DeletePet", http.MethodDelete, c.endpoints.DeletePet(petID), key).
		arg("authKey", key).
		arg("petID", petID)

	call.pathParams = map[string]string{
		paramPetID: petID,
	}

	result, err := c.do(ctx, call)
	if err != nil {
		return result, fmt.Errorf("deleting pet: %w", err)
	}

	return result, nil
}
