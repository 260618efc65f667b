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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WATERWISE_LATITUDE", "WATERWISE_LONGITUDE", "WATERWISE_TREND_MONTHS",
		"WATERWISE_DAILY_TARGET", "WATERWISE_CURRENCY", "WATERWISE_STORAGE_PATH",
		"WATERWISE_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnvOverrides(t)

	config, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if config.Latitude != 51.5074 || config.Longitude != -0.1278 {
		t.Errorf("unexpected default location: %f, %f", config.Latitude, config.Longitude)
	}
	if config.TrendMonths != 6 {
		t.Errorf("expected default trend window of 6 months, got %d", config.TrendMonths)
	}
	if config.RecommendedDailyLiters != 100.0 {
		t.Errorf("expected default daily target of 100 L, got %f", config.RecommendedDailyLiters)
	}
	if config.Currency != "EUR" {
		t.Errorf("expected default currency EUR, got %s", config.Currency)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `latitude: 40.4168
longitude: -3.7038
trend_months: 12
recommended_daily_liters: 120
currency: USD
debug: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	clearEnvOverrides(t)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.Latitude != 40.4168 {
		t.Errorf("expected latitude 40.4168, got %f", config.Latitude)
	}
	if config.TrendMonths != 12 {
		t.Errorf("expected trend_months 12, got %d", config.TrendMonths)
	}
	if config.RecommendedDailyLiters != 120 {
		t.Errorf("expected daily target 120, got %f", config.RecommendedDailyLiters)
	}
	if config.Currency != "USD" {
		t.Errorf("expected currency USD, got %s", config.Currency)
	}
	if !config.Debug {
		t.Error("expected debug enabled")
	}
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("WATERWISE_LATITUDE", "48.8566")
	t.Setenv("WATERWISE_DAILY_TARGET", "90")
	t.Setenv("WATERWISE_CURRENCY", "GBP")
	t.Setenv("WATERWISE_DEBUG", "true")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if config.Latitude != 48.8566 {
		t.Errorf("expected env latitude 48.8566, got %f", config.Latitude)
	}
	if config.RecommendedDailyLiters != 90 {
		t.Errorf("expected env daily target 90, got %f", config.RecommendedDailyLiters)
	}
	if config.Currency != "GBP" {
		t.Errorf("expected env currency GBP, got %s", config.Currency)
	}
	if !config.Debug {
		t.Error("expected env debug enabled")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"latitude out of range", func(c *Config) { c.Latitude = 91 }, "latitude"},
		{"longitude out of range", func(c *Config) { c.Longitude = -200 }, "longitude"},
		{"trend window too small", func(c *Config) { c.TrendMonths = 0 }, "trend_months"},
		{"trend window too large", func(c *Config) { c.TrendMonths = 25 }, "trend_months"},
		{"zero daily target", func(c *Config) { c.RecommendedDailyLiters = 0 }, "recommended_daily_liters"},
		{"bad currency code", func(c *Config) { c.Currency = "EURO" }, "currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.mutate(config)
			err := config.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %s: %v", tt.want, err)
			}
		})
	}
}

func TestConfigValidateFillsStoragePath(t *testing.T) {
	config := testConfig()
	config.StoragePath = ""
	if err := config.Validate(); err != nil {
		t.Fatal(err)
	}
	if config.StoragePath == "" {
		t.Error("expected a default storage path to be set")
	}
}
