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
	"time"
)

const (
	currentConditionsCacheKey = "weather_current"
	currentConditionsCacheTTL = 30 * time.Minute

	precipitationCacheKey  = "regional_precipitation_30d"
	precipitationCacheTTL  = 6 * time.Hour
	precipitationWindowDay = 30
)

// Collector mediates between the record store, the weather APIs, and the
// analytics engine. It implements UsageSource, BillSource, and
// WeatherSource, so the analyzer sees one consistent set of collaborators.
type Collector struct {
	storage *Storage
	weather *WeatherClient
	config  *Config
	logger  *Logger
}

// NewCollector creates a new data collector
func NewCollector(storage *Storage, weather *WeatherClient, config *Config, logger *Logger) *Collector {
	return &Collector{
		storage: storage,
		weather: weather,
		config:  config,
		logger:  logger.WithComponent("collector"),
	}
}

// FetchAllUsageEvents reads the usage collection, mapping store failures
// to the data-access failure class
func (c *Collector) FetchAllUsageEvents() ([]UsageEvent, error) {
	events, err := c.storage.FetchAllUsageEvents()
	if err != nil {
		return nil, &DataAccessError{Collection: "usage_events", Err: err}
	}
	c.logger.LogDataCollection("usage_events", len(events))
	return events, nil
}

// FetchAllBills reads the bill collection
func (c *Collector) FetchAllBills() ([]Bill, error) {
	bills, err := c.storage.FetchAllBills()
	if err != nil {
		return nil, &DataAccessError{Collection: "bills", Err: err}
	}
	c.logger.LogDataCollection("bills", len(bills))
	return bills, nil
}

// FetchCurrentConditions returns the live weather reading, served from
// the cache collection when fresh
func (c *Collector) FetchCurrentConditions(lat, lon float64) (*WeatherConditions, error) {
	var cached WeatherConditions
	hit, err := c.storage.LoadCache(currentConditionsCacheKey, &cached)
	if err != nil {
		c.logger.Warn("Failed to load weather from cache", "error", err)
	}
	if hit {
		return &cached, nil
	}

	conditions, err := c.weather.FetchCurrentConditions(lat, lon)
	if err != nil {
		return nil, err
	}

	if err := c.storage.SaveCache(currentConditionsCacheKey, conditions, currentConditionsCacheTTL); err != nil {
		c.logger.Warn("Failed to cache weather conditions", "error", err)
	}

	return conditions, nil
}

// FetchRegionalPrecipitation returns the trailing 30 days of regional
// rainfall, served from the cache collection when fresh
func (c *Collector) FetchRegionalPrecipitation() ([]DailyPrecipitation, error) {
	var cached []DailyPrecipitation
	hit, err := c.storage.LoadCache(precipitationCacheKey, &cached)
	if err != nil {
		c.logger.Warn("Failed to load precipitation from cache", "error", err)
	}
	if hit {
		return cached, nil
	}

	history, err := c.weather.FetchRecentPrecipitation(c.config.Latitude, c.config.Longitude, precipitationWindowDay)
	if err != nil {
		return nil, err
	}

	if err := c.storage.SaveCache(precipitationCacheKey, history, precipitationCacheTTL); err != nil {
		c.logger.Warn("Failed to cache precipitation history", "error", err)
	}

	return history, nil
}

// CollectAll gathers everything the reporters need in one snapshot.
// Store reads are fatal; weather reads are not.
func (c *Collector) CollectAll() (*CollectedData, error) {
	c.logger.Info("Starting data collection")

	data := &CollectedData{
		FetchedAt: time.Now(),
	}

	events, err := c.FetchAllUsageEvents()
	if err != nil {
		return nil, err
	}
	data.UsageEvents = events

	bills, err := c.FetchAllBills()
	if err != nil {
		return nil, err
	}
	data.Bills = bills

	current, err := c.FetchCurrentConditions(c.config.Latitude, c.config.Longitude)
	if err != nil {
		c.logger.Warn("Continuing without current conditions", "error", err)
	} else {
		data.Current = current
	}

	history, err := c.FetchRegionalPrecipitation()
	if err != nil {
		c.logger.Warn("Continuing without precipitation history", "error", err)
	} else {
		data.RegionalPrecipitation = history
	}

	return data, nil
}
