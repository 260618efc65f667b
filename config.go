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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Location used for regional weather and precipitation lookups
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`

	// Analysis settings
	TrendMonths            int     `yaml:"trend_months"`
	RecommendedDailyLiters float64 `yaml:"recommended_daily_liters"`

	// Billing
	Currency string `yaml:"currency"`

	// Storage
	StoragePath string `yaml:"storage_path"`

	// Debugging
	Debug bool `yaml:"debug"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Set defaults
	config := &Config{
		Latitude:               51.5074, // London
		Longitude:              -0.1278,
		TrendMonths:            6,
		RecommendedDailyLiters: 100.0,
		Currency:               "EUR",
		StoragePath:            getDefaultStoragePath(),
		Debug:                  false,
	}

	// Pick up a local .env file before reading environment overrides
	_ = godotenv.Load()

	// If no path provided, return defaults with env var overrides
	if path == "" {
		config.applyEnvironmentVariables()
		return config, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentVariables()

	return config, nil
}

// getDefaultStoragePath returns the default storage path
func getDefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".waterwise"
	}
	return filepath.Join(home, ".config", "waterwise")
}

// applyEnvironmentVariables overrides config with environment variables
func (c *Config) applyEnvironmentVariables() {
	if val := os.Getenv("WATERWISE_LATITUDE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.Latitude = f
		}
	}
	if val := os.Getenv("WATERWISE_LONGITUDE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.Longitude = f
		}
	}
	if val := os.Getenv("WATERWISE_TREND_MONTHS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.TrendMonths = n
		}
	}
	if val := os.Getenv("WATERWISE_DAILY_TARGET"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.RecommendedDailyLiters = f
		}
	}
	if val := os.Getenv("WATERWISE_CURRENCY"); val != "" {
		c.Currency = val
	}
	if val := os.Getenv("WATERWISE_STORAGE_PATH"); val != "" {
		c.StoragePath = val
	}
	if val := os.Getenv("WATERWISE_DEBUG"); val == "true" || val == "1" {
		c.Debug = true
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	if c.Latitude < -90 || c.Latitude > 90 {
		errors = append(errors, "latitude must be between -90 and 90")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		errors = append(errors, "longitude must be between -180 and 180")
	}

	if c.TrendMonths < 1 || c.TrendMonths > 24 {
		errors = append(errors, "trend_months must be between 1 and 24")
	}

	if c.RecommendedDailyLiters <= 0 {
		errors = append(errors, "recommended_daily_liters must be positive")
	}

	if len(c.Currency) != 3 {
		errors = append(errors, "currency must be a three-letter code")
	}

	// Set default storage path if empty
	if c.StoragePath == "" {
		c.StoragePath = getDefaultStoragePath()
	}

	if len(errors) > 0 {
		return &ConfigError{
			Field:   "config",
			Message: "validation failed:\n  - " + strings.Join(errors, "\n  - "),
		}
	}

	return nil
}
