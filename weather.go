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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WeatherClient fetches regional weather data from Open-Meteo
type WeatherClient struct {
	httpClient  *http.Client
	logger      *Logger
	forecastURL string
	archiveURL  string
}

// NewWeatherClient creates a new weather client
func NewWeatherClient(logger *Logger) *WeatherClient {
	return &WeatherClient{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
		forecastURL: OpenMeteoForecastEndpoint,
		archiveURL:  OpenMeteoArchiveEndpoint,
	}
}

// FetchCurrentConditions fetches the live weather reading for a location.
// Failures surface as NetworkError; the recommendation composer is the one
// expected to catch and substitute.
func (w *WeatherClient) FetchCurrentConditions(lat, lon float64) (*WeatherConditions, error) {
	url := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&current=temperature_2m,relative_humidity_2m,precipitation,wind_speed_10m,weather_code",
		w.forecastURL, lat, lon)

	var current OpenMeteoCurrentResponse
	if err := w.fetchJSON(url, &current); err != nil {
		return nil, err
	}

	conditions := &WeatherConditions{
		TemperatureC:    current.Current.TemperatureC,
		HumidityPct:     current.Current.RelativeHumidity,
		PrecipitationMm: current.Current.Precipitation,
		WindSpeedKmh:    current.Current.WindSpeed,
		ConditionCode:   current.Current.WeatherCode,
		Description:     getWeatherDescription(current.Current.WeatherCode),
	}

	w.logger.Info("Fetched current conditions",
		"temperature_c", conditions.TemperatureC,
		"precipitation_mm", conditions.PrecipitationMm,
		"condition", conditions.Description,
	)

	return conditions, nil
}

// FetchRecentPrecipitation fetches daily precipitation sums for the
// trailing number of days, used for the regional report section
func (w *WeatherClient) FetchRecentPrecipitation(lat, lon float64, days int) ([]DailyPrecipitation, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	url := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&start_date=%s&end_date=%s&daily=precipitation_sum&timezone=auto",
		w.archiveURL,
		lat,
		lon,
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"),
	)

	var archive OpenMeteoArchiveResponse
	if err := w.fetchJSON(url, &archive); err != nil {
		return nil, err
	}

	history := make([]DailyPrecipitation, 0, len(archive.Daily.Time))
	for i, dateStr := range archive.Daily.Time {
		if i >= len(archive.Daily.Precipitation) {
			break
		}
		history = append(history, DailyPrecipitation{
			Date:            dateStr,
			PrecipitationMm: archive.Daily.Precipitation[i],
		})
	}

	w.logger.Info("Fetched precipitation history", "days", len(history))
	return history, nil
}

// fetchJSON performs a GET request and decodes the JSON body into target
func (w *WeatherClient) fetchJSON(url string, target interface{}) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create weather request: %w", err)
	}

	req.Header.Set("User-Agent", GetUserAgent())

	w.logger.LogAPIRequest("GET", url)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return &NetworkError{
			Endpoint: url,
			Message:  "weather service unreachable",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		w.logger.LogAPIError(url, resp.StatusCode, fmt.Errorf("%s", string(bodyBytes)))
		return &NetworkError{
			StatusCode: resp.StatusCode,
			Endpoint:   url,
			Message:    string(bodyBytes),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &NetworkError{
			Endpoint: url,
			Message:  "failed to decode weather response",
			Err:      err,
		}
	}

	return nil
}

// getWeatherDescription converts WMO weather code to human-readable description
func getWeatherDescription(code int) string {
	switch code {
	case 0:
		return "Clear sky"
	case 1, 2, 3:
		return "Partly cloudy"
	case 45, 48:
		return "Foggy"
	case 51, 53, 55:
		return "Drizzle"
	case 61, 63, 65:
		return "Rain"
	case 71, 73, 75:
		return "Snow"
	case 77:
		return "Snow grains"
	case 80, 81, 82:
		return "Rain showers"
	case 85, 86:
		return "Snow showers"
	case 95:
		return "Thunderstorm"
	case 96, 99:
		return "Thunderstorm with hail"
	default:
		return "Unknown"
	}
}
