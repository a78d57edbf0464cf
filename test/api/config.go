/*
Copyright 2024-2025 the Unikorn Authors.
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

//nolint:err113 // dynamic errors acceptable in test code
package api

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// Credentials registered with the fake service when no live service
	// is configured.
	defaultEmail    = "tester@petfriends.test"
	defaultPassword = "correct-horse-battery-staple"
)

type TestConfig struct {
	BaseURL        string
	Email          string
	Password       string
	RequestTimeout time.Duration
	CallLogPath    string
	DebugLogging   bool
	LogRequests    bool
}

// Live reports whether the suite targets a real service rather than the
// in-process fake.
func (c *TestConfig) Live() bool {
	return c.BaseURL != ""
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:        os.Getenv("PETFRIENDS_BASE_URL"),
		Email:          os.Getenv("PETFRIENDS_EMAIL"),
		Password:       os.Getenv("PETFRIENDS_PASSWORD"),
		RequestTimeout: getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		CallLogPath:    getStringWithDefault("CALL_LOG_PATH", "log.txt"),
		DebugLogging:   getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:    getBoolWithDefault("LOG_REQUESTS", false),
	}

	if !config.Live() {
		if config.Email == "" {
			config.Email = defaultEmail
		}

		if config.Password == "" {
			config.Password = defaultPassword
		}
	}

	// Validate required fields
	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

// getStringWithDefault gets a string from environment variable or returns default.
func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites directory
		".env",
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
// Credentials are only required against a live service.
func validateRequiredFields(config *TestConfig) error {
	var missing []string

	required := map[string]string{
		"PETFRIENDS_EMAIL":    config.Email,
		"PETFRIENDS_PASSWORD": config.Password,
		"CALL_LOG_PATH":       config.CallLogPath,
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)

		return fmt.Errorf("missing required configuration: %s. Please set these environment variables or add them to a .env file", strings.Join(missing, ", "))
	}

	return nil
}
