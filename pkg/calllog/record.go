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

// Package calllog records API calls and their responses as human readable
// text blocks.  A record is built explicitly from a call snapshot and its
// result, then handed to a Sink.
package calllog

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
)

const responseSeparator = "--------------------------RESPONSE---------------"

// Arg is a single named argument of a recorded call.
type Arg struct {
	Name  string
	Value any
}

// Record is everything known about one completed call.
type Record struct {
	// Operation is the name of the client operation.
	Operation string
	// Args are the operation arguments in call order.
	Args []Arg
	// Headers, PathParams, QueryParams and Body are the request parameters
	// exactly as they were sent.
	Headers     map[string]string
	PathParams  map[string]string
	QueryParams map[string]string
	Body        map[string]string
	// Status is the HTTP status code.
	Status int
	// Response is the decoded JSON body, or the raw body as a string.
	Response any
	// Time is when the call was started.
	Time time.Time
	// Duration is the round trip time.
	Duration time.Duration
}

// Signature renders the operation and its arguments on a single line,
// e.g. GetPetList(authKey=abc, filter=my_pets).
func (r *Record) Signature() string {
	args := make([]string, 0, len(r.Args))

	for _, arg := range r.Args {
		args = append(args, arg.Name+"="+flatten(arg.Value))
	}

	return r.Operation + "(" + strings.Join(args, ", ") + ")"
}

// flatten strips the quoting and brackets fmt adds to composite values, only
// readability matters here.
func flatten(v any) string {
	return strings.NewReplacer(`"`, "", "[", "", "]", "").Replace(fmt.Sprintf("%v", v))
}

func renderMap(m map[string]string) string {
	if len(m) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+m[k])
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// RenderResponse renders a response body for display.  Text is returned
// untouched, anything else is encoded as compact JSON.
func RenderResponse(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(data)
}

// String returns the log block for the record.
func (r *Record) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "\nCalling function %s", r.Signature())
	fmt.Fprintf(&b, "\nHeaders = %s", renderMap(r.Headers))
	fmt.Fprintf(&b, "\nPath params = %s", renderMap(r.PathParams))
	fmt.Fprintf(&b, "\nQuery params = %s", renderMap(r.QueryParams))
	fmt.Fprintf(&b, "\nRequest body = %s", renderMap(r.Body))
	b.WriteString("\n" + responseSeparator)
	fmt.Fprintf(&b, "\nStatus = %d", r.Status)
	fmt.Fprintf(&b, "\nResponse body = %s\n", RenderResponse(r.Response))

	return b.String()
}

// WriteTo writes the log block to w.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())

	return int64(n), err
}
