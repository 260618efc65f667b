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

const (
	// OpenMeteoForecastEndpoint serves current weather conditions
	OpenMeteoForecastEndpoint = "https://api.open-meteo.com/v1/forecast"

	// OpenMeteoArchiveEndpoint serves historical daily aggregates
	OpenMeteoArchiveEndpoint = "https://archive-api.open-meteo.com/v1/archive"
)

// Recommendation priorities, ordered high before medium before low
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation type tags
const (
	RecommendationTypeUsage    = "usage"
	RecommendationTypeSavings  = "savings"
	RecommendationTypeRegional = "regional"
	RecommendationTypeBill     = "bill"
)

// Opportunity categories
const (
	CategoryShower  = "Shower & Bath"
	CategoryToilet  = "Toilet"
	CategoryKitchen = "Kitchen"
	CategoryGeneral = "General"
)

// Fixed opportunity heuristics. Category estimates are proportional splits
// of the overall daily average, not measured per-category usage.
const (
	ShowerShare  = 0.35
	ToiletShare  = 0.27
	KitchenShare = 0.20

	ShowerThresholdLiters  = 50.0
	ToiletThresholdLiters  = 30.0
	KitchenThresholdLiters = 20.0
	GeneralThresholdLiters = 150.0

	ShowerTargetLiters  = 40.0
	ToiletTargetLiters  = 24.0
	KitchenTargetLiters = 15.0
	GeneralTargetLiters = 100.0

	// DaysPerMonth approximates a month when projecting daily figures
	DaysPerMonth = 30.0
)

// Fixed per-category opportunity descriptions
const (
	ShowerOpportunityDescription  = "Shower and bath usage is above the efficient range. Shorter showers and a low-flow shower head make the biggest difference here."
	ToiletOpportunityDescription  = "Toilet flushing is above the efficient range. A dual-flush mechanism or cistern displacement bag reduces every flush."
	KitchenOpportunityDescription = "Kitchen usage is above the efficient range. Running the dishwasher full and not rinsing under a running tap saves daily liters."
	GeneralOpportunityDescription = "Overall daily usage is above the recommended household level. Review the highest-usage days in your log to find the driver."
)

// Composer thresholds
const (
	// RecentWindowDays and UsageWindowDays bound the trend comparison
	RecentWindowDays = 7
	UsageWindowDays  = 30

	// TrendTolerance is the relative band around the 30-day average
	// inside which the trend counts as stable
	TrendTolerance = 0.10

	// DroughtPrecipitationMm is the current-precipitation level below
	// which the regional conservation advisory fires
	DroughtPrecipitationMm = 1.0

	// CostPerLiterAlert is the average cost per liter above which the
	// billing advisory fires, in currency units
	CostPerLiterAlert = 0.01
)

// Fixed recommendation copy
const (
	UsageHighTitle  = "High Water Usage Detected"
	UsageHighAction = "Review the savings opportunities below and pick one habit to change this week"

	UsageLowTitle   = "Great Water Habits"
	UsageLowMessage = "Your daily average is within the recommended target. Nice work."
	UsageLowAction  = "Keep logging your usage so trends stay accurate"

	TrendAlertTitle   = "Usage Trending Upward"
	TrendAlertMessage = "Your average over the last 7 days is more than 10% above your 30-day average."
	TrendAlertAction  = "Check your recent entries for unusually heavy days"

	RegionalTitle  = "Low Rainfall In Your Region"
	RegionalAction = "Postpone garden watering and other outdoor use until rainfall recovers"

	WeatherUnavailableTitle   = "Regional Data Unavailable"
	WeatherUnavailableMessage = "Live regional conditions could not be retrieved. Conservation guidance will resume once the service is reachable."
	WeatherUnavailableAction  = "Check your network connection and refresh later"

	CostAlertTitle  = "Water Costs Above Typical"
	CostAlertAction = "Compare your tariff with local alternatives and check for leaks that inflate the bill"

	OnboardingTitle   = "Start Logging Your Usage"
	OnboardingMessage = "There is not enough data to analyze yet. Log your daily water usage and bills to receive personalized recommendations."
	OnboardingAction  = "Record your first usage entry with -log-usage"
)
