// Copyright 2025 The WaterWise Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
)

// DataAccessError represents a failure to read from the local record store.
// The analysis sub-components catch it and degrade to empty results; the
// report facade surfaces it to the caller.
type DataAccessError struct {
	Collection string
	Err        error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access error for %s: %v", e.Collection, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// NetworkError represents a failure talking to a public data API
type NetworkError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error at %s: %s: %v", e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("network error at %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError represents invalid user input on the logging surface
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error for %s (%s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// StorageError represents a file-level persistence failure
type StorageError struct {
	Operation string
	Path      string
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s at %s: %v", e.Operation, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}
