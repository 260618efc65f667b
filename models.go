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

// UsageEvent represents one recorded water-consumption entry
type UsageEvent struct {
	ID        string  `json:"id"`
	Liters    float64 `json:"liters"`          // must be > 0
	Date      string  `json:"date"`            // YYYY-MM-DD
	TimeOfDay string  `json:"timeOfDay,omitempty"`
	Category  string  `json:"category,omitempty"`
	Location  string  `json:"location,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// Bill represents one recorded water utility bill
type Bill struct {
	ID                string  `json:"id"`
	Amount            float64 `json:"amount"` // must be > 0
	Date              string  `json:"date"`   // YYYY-MM-DD
	ConsumptionLiters float64 `json:"consumptionLiters"` // must be > 0
	Currency          string  `json:"currency"`
}

// UsagePattern is the per-weekday mean consumption, derived per request
type UsagePattern struct {
	Weekday      string  `json:"weekday"`
	AverageUsage float64 `json:"averageUsage"` // liters
	Events       int     `json:"events"`
}

// MonthlyTrend is the month-bucketed aggregate of usage and cost
type MonthlyTrend struct {
	Month        string  `json:"month"` // YYYY-MM
	TotalUsage   float64 `json:"totalUsage"`   // liters
	TotalCost    float64 `json:"totalCost"`    // currency units
	AverageDaily float64 `json:"averageDaily"` // liters per day with usage
}

// SavingsOpportunity flags a category whose estimated usage exceeds a
// fixed recommended threshold
type SavingsOpportunity struct {
	Category         string  `json:"category"`
	CurrentUsage     float64 `json:"currentUsage"`     // liters per day
	RecommendedUsage float64 `json:"recommendedUsage"` // liters per day
	PotentialSavings float64 `json:"potentialSavings"` // liters per month
	Priority         string  `json:"priority"`
	Description      string  `json:"description"`
}

// Recommendation is one prioritized conservation advisory
type Recommendation struct {
	Type             string   `json:"type"` // usage, savings, regional, bill
	Priority         string   `json:"priority"`
	Title            string   `json:"title"`
	Message          string   `json:"message"`
	Action           string   `json:"action"`
	PotentialSavings *float64 `json:"potentialSavings,omitempty"`
}

// ReportSummary holds the headline figures for a usage report
type ReportSummary struct {
	TotalDays    int     `json:"totalDays"`
	TotalUsage   float64 `json:"totalUsage"`   // liters
	AverageDaily float64 `json:"averageDaily"` // liters
	TotalCost    float64 `json:"totalCost"`    // currency units
}

// UsageReport is the consolidated output of the report facade
type UsageReport struct {
	Summary       ReportSummary        `json:"summary"`
	Patterns      []UsagePattern       `json:"patterns"`
	Trends        []MonthlyTrend       `json:"trends"`
	Opportunities []SavingsOpportunity `json:"opportunities"`
}

// WeatherConditions represents a current weather reading for the
// configured location
type WeatherConditions struct {
	TemperatureC    float64 `json:"temperatureC"`
	HumidityPct     float64 `json:"humidityPct"`
	PrecipitationMm float64 `json:"precipitationMm"`
	WindSpeedKmh    float64 `json:"windSpeedKmh"`
	ConditionCode   int     `json:"conditionCode"` // WMO weather code
	Description     string  `json:"description"`
}

// DailyPrecipitation is one day of regional rainfall history
type DailyPrecipitation struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	PrecipitationMm float64 `json:"precipitationMm"`
}

// CollectedData holds everything gathered for one analysis run
type CollectedData struct {
	UsageEvents           []UsageEvent         `json:"usageEvents"`
	Bills                 []Bill               `json:"bills"`
	Current               *WeatherConditions   `json:"current,omitempty"`
	RegionalPrecipitation []DailyPrecipitation `json:"regionalPrecipitation,omitempty"`
	FetchedAt             time.Time            `json:"fetchedAt"`
}

// AnalysisResult bundles the report, advisories, and regional context for
// the reporters
type AnalysisResult struct {
	GeneratedAt           time.Time            `json:"generatedAt"`
	Report                *UsageReport         `json:"report"`
	Recommendations       []Recommendation     `json:"recommendations"`
	Current               *WeatherConditions   `json:"current,omitempty"`
	RegionalPrecipitation []DailyPrecipitation `json:"regionalPrecipitation,omitempty"`
	Currency              string               `json:"currency"`
	// Charts (base64 encoded PNG images)
	WeekdayChart string `json:"weekdayChart,omitempty"`
	TrendChart   string `json:"trendChart,omitempty"`
}

// OpenMeteoCurrentResponse represents the Open-Meteo forecast API current
// conditions payload
type OpenMeteoCurrentResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Current   struct {
		Time             string  `json:"time"`
		TemperatureC     float64 `json:"temperature_2m"`
		RelativeHumidity float64 `json:"relative_humidity_2m"`
		Precipitation    float64 `json:"precipitation"`
		WindSpeed        float64 `json:"wind_speed_10m"`
		WeatherCode      int     `json:"weather_code"`
	} `json:"current"`
}

// OpenMeteoArchiveResponse represents the Open-Meteo archive API daily
// precipitation payload
type OpenMeteoArchiveResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Daily     struct {
		Time          []string  `json:"time"`
		Precipitation []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}
