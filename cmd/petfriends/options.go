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

package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nscaledev/petfriends-api-tests/pkg/petfriends"
)

const (
	OperationKey       = "key"
	OperationList      = "list"
	OperationAdd       = "add"
	OperationAddSimple = "add-simple"
	OperationSetPhoto  = "set-photo"
	OperationUpdate    = "update"
	OperationDelete    = "delete"
)

//nolint:gochecknoglobals
var operations = []string{
	OperationKey,
	OperationList,
	OperationAdd,
	OperationAddSimple,
	OperationSetPhoto,
	OperationUpdate,
	OperationDelete,
}

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrMissingFlag      = errors.New("missing required flag")
)

// Options are the command line options.
type Options struct {
	BaseURL    string
	Email      string
	Password   string
	AuthKey    string
	Operation  string
	Filter     string
	PetID      string
	Name       string
	AnimalType string
	Age        string
	Photo      string
	CallLog    string
	Timeout    time.Duration
	LogLevel   string
}

// AddFlags registers the options with a flag set.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.BaseURL, "base-url", "https://petfriends.skillfactory.ru", "PetFriends service root.")
	f.StringVar(&o.Email, "email", "", "Account email, used to get an auth key when --auth-key is not set.")
	f.StringVar(&o.Password, "password", "", "Account password.")
	f.StringVar(&o.AuthKey, "auth-key", "", "Auth key to use instead of logging in.")
	f.StringVar(&o.Operation, "operation", OperationList, "Operation to perform, one of "+strings.Join(operations, ", ")+".")
	f.StringVar(&o.Filter, "filter", "", "Pet list filter, empty or my_pets.")
	f.StringVar(&o.PetID, "pet-id", "", "Pet to operate on.")
	f.StringVar(&o.Name, "name", "", "Pet name.")
	f.StringVar(&o.AnimalType, "animal-type", "", "Pet animal type.")
	f.StringVar(&o.Age, "age", "", "Pet age.")
	f.StringVar(&o.Photo, "photo", "", "Path to a pet photo.")
	f.StringVar(&o.CallLog, "call-log", "log.txt", "File every call is appended to, empty to disable.")
	f.DurationVar(&o.Timeout, "timeout", petfriends.DefaultTimeout, "Request timeout.")
	f.StringVar(&o.LogLevel, "log-level", "info", "Log level, one of debug, info, warn or error.")
}

// Validate checks the options make sense for the chosen operation.
func (o *Options) Validate() error {
	if !slices.Contains(operations, o.Operation) {
		return fmt.Errorf("%w %q", ErrUnknownOperation, o.Operation)
	}

	required := map[string]string{}

	switch o.Operation {
	case OperationAdd:
		required["photo"] = o.Photo
	case OperationSetPhoto:
		required["pet-id"] = o.PetID
		required["photo"] = o.Photo
	case OperationUpdate, OperationDelete:
		required["pet-id"] = o.PetID
	}

	// Credentials are sent as given by the key operation, empty or not, and
	// are only required to log in before any other operation.
	if o.Operation != OperationKey && o.AuthKey == "" {
		required["email"] = o.Email
		required["password"] = o.Password
	}

	var missing []string

	for flag, value := range required {
		if value == "" {
			missing = append(missing, "--"+flag)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)

		return fmt.Errorf("%w: %s", ErrMissingFlag, strings.Join(missing, ", "))
	}

	return nil
}

// SetupLogging returns a zap backed logger at the requested level.
func (o *Options) SetupLogging() (logr.Logger, error) {
	level, err := zapcore.ParseLevel(o.LogLevel)
	if err != nil {
		return logr.Logger{}, fmt.Errorf("parsing log level: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := config.Build()
	if err != nil {
		return logr.Logger{}, fmt.Errorf("building logger: %w", err)
	}

	return zapr.NewLogger(zl), nil
}
