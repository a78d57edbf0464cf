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
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/nscaledev/petfriends-api-tests/pkg/calllog"
	"github.com/nscaledev/petfriends-api-tests/pkg/petfriends"
)

// ErrLogin is returned when an auth key cannot be obtained.
var ErrLogin = errors.New("login failed")

func newClient(options *Options, logger logr.Logger) (*petfriends.Client, error) {
	sinks := []calllog.Sink{
		calllog.NewLogrSink(logger.V(1).WithName("calls")),
	}

	if options.CallLog != "" {
		sinks = append(sinks, calllog.NewFileSink(options.CallLog))
	}

	return petfriends.New(petfriends.Options{
		BaseURL: options.BaseURL,
		Timeout: options.Timeout,
		Sink:    calllog.Multi(sinks...),
		Logger:  logger.WithName("petfriends"),
	})
}

// authKey returns the configured key, or logs in for one.
func authKey(ctx context.Context, client *petfriends.Client, options *Options) (petfriends.AuthKey, error) {
	if options.AuthKey != "" {
		return petfriends.AuthKey(options.AuthKey), nil
	}

	result, err := client.GetAPIKey(ctx, options.Email, options.Password)
	if err != nil {
		return "", err
	}

	if result.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrLogin, result.StatusCode, result.Text())
	}

	return result.APIKey()
}

func run(ctx context.Context, options *Options, logger logr.Logger, out io.Writer) error {
	client, err := newClient(options, logger)
	if err != nil {
		return err
	}

	var result *petfriends.Result

	if options.Operation == OperationKey {
		result, err = client.GetAPIKey(ctx, options.Email, options.Password)
	} else {
		key, keyErr := authKey(ctx, client, options)
		if keyErr != nil {
			return keyErr
		}

		switch options.Operation {
		case OperationList:
			result, err = client.GetPetList(ctx, key, petfriends.Filter(options.Filter))
		case OperationAdd:
			result, err = client.AddNewPet(ctx, key, options.Name, options.AnimalType, options.Age, options.Photo)
		case OperationAddSimple:
			result, err = client.AddNewPetWithoutPhoto(ctx, key, options.Name, options.AnimalType, options.Age)
		case OperationSetPhoto:
			result, err = client.SetPetPhoto(ctx, key, options.PetID, options.Photo)
		case OperationUpdate:
			result, err = client.UpdatePetInfo(ctx, key, options.PetID, options.Name, options.AnimalType, options.Age)
		case OperationDelete:
			result, err = client.DeletePet(ctx, key, options.PetID)
		default:
			return fmt.Errorf("%w %q", ErrUnknownOperation, options.Operation)
		}
	}

	// A failed call log write still carries the response.
	if result != nil {
		fmt.Fprintf(out, "%d\n%s\n", result.StatusCode, result.Text())
	}

	return err
}

func main() {
	var options Options

	options.AddFlags(pflag.CommandLine)

	pflag.Parse()

	logger, err := options.SetupLogging()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := options.Validate(); err != nil {
		logger.Error(err, "invalid options")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &options, logger, os.Stdout); err != nil {
		logger.Error(err, "call failed", "operation", options.Operation)
		stop()
		os.Exit(1) //nolint:gocritic
	}
}
