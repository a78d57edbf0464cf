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

// Package api provides integration test utilities for the PetFriends API.
//
// # Targets
//
// When PETFRIENDS_BASE_URL is set the suites run against that service with
// the PETFRIENDS_EMAIL and PETFRIENDS_PASSWORD account.  Otherwise an
// in-process fake is started so the suites can run offline.  The fake
// answers the way the live service does, quirks included.
//
// # Call Log
//
// Every call made through APIClient is appended to CALL_LOG_PATH as a
// human readable block, whatever the outcome.  Set LOG_REQUESTS to also
// echo each call through GinkgoLogr, and DEBUG_LOGGING to see transport
// level diagnostics.
//
// # Known Defects
//
// The live service does not validate pet fields or image formats and
// returns unexpected status codes for unknown pet IDs.  Scenarios that
// assert the correct behaviour are kept, skipped with the defect as the
// reason.
package api
