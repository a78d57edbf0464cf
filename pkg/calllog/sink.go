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

//go:generate mockgen -source=sink.go -destination=mock/sink.go -package=mock

package calllog

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// Sink accepts completed call records.
type Sink interface {
	Write(record *Record) error
}

// FileSink appends records to a text file.  The file is opened and closed
// for every record, so it may be rotated or removed between calls.
type FileSink struct {
	path string
	lock sync.Mutex
}

// NewFileSink returns a sink that appends to path, creating it if required.
func NewFileSink(path string) *FileSink {
	return &FileSink{
		path: path,
	}
}

// Path returns the file the sink appends to.
func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) Write(record *Record) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening call log: %w", err)
	}

	if _, err := record.WriteTo(file); err != nil {
		_ = file.Close()

		return fmt.Errorf("writing call log: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing call log: %w", err)
	}

	return nil
}

// LogrSink emits each record as a structured log line.
type LogrSink struct {
	logger logr.Logger
}

// NewLogrSink returns a sink that logs records to logger.
func NewLogrSink(logger logr.Logger) *LogrSink {
	return &LogrSink{
		logger: logger,
	}
}

func (s *LogrSink) Write(record *Record) error {
	s.logger.Info("api call",
		"call", record.Signature(),
		"headers", record.Headers,
		"pathParams", record.PathParams,
		"queryParams", record.QueryParams,
		"body", record.Body,
		"status", record.Status,
		"started", record.Time.UTC().Format(time.RFC3339Nano),
		"duration", record.Duration.String(),
		"response", RenderResponse(record.Response),
	)

	return nil
}

type multiSink []Sink

// Multi fans records out to every sink.  All sinks are written even if one
// fails, the returned error joins every failure.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Write(record *Record) error {
	var errs []error

	for _, sink := range m {
		if err := sink.Write(record); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type discard struct{}

func (discard) Write(*Record) error {
	return nil
}

// Discard drops all records.
//
//nolint:gochecknoglobals
var Discard Sink = discard{}
