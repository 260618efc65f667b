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
	"time"
)

// GenerateRecommendations assembles prioritized conservation advisories
// from the usage trend, the live regional reading, and the billing cost
// signal. It never fails: every upstream error is caught here, and the
// result always carries at least one entry.
func (a *Analyzer) GenerateRecommendations() []Recommendation {
	events, err := a.usage.FetchAllUsageEvents()
	if err != nil {
		a.logger.Warn("Falling back to onboarding recommendation", "error", err)
		return []Recommendation{onboardingRecommendation()}
	}

	a.logger.LogAnalysisStage("recommendations")

	var recs []Recommendation
	now := time.Now()

	// Usage level and short-term trend
	avg30, days30 := windowDailyAverage(events, now, UsageWindowDays)
	if days30 > 0 {
		recs = append(recs, a.usageRecommendation(avg30))

		avg7, days7 := windowDailyAverage(events, now, RecentWindowDays)
		if days7 > 0 && classifyTrend(avg7, avg30) == "increasing" {
			recs = append(recs, Recommendation{
				Type:     RecommendationTypeSavings,
				Priority: PriorityMedium,
				Title:    TrendAlertTitle,
				Message:  TrendAlertMessage,
				Action:   TrendAlertAction,
			})
		}
	}

	// Regional signal. A failed fetch skips the low-rainfall rule, since
	// a missing reading must not pass for zero precipitation, and emits a
	// fixed data-unavailable advisory instead.
	conditions, err := a.weather.FetchCurrentConditions(a.config.Latitude, a.config.Longitude)
	if err != nil {
		a.logger.Warn("Weather unavailable for recommendations", "error", err)
		recs = append(recs, Recommendation{
			Type:     RecommendationTypeRegional,
			Priority: PriorityLow,
			Title:    WeatherUnavailableTitle,
			Message:  WeatherUnavailableMessage,
			Action:   WeatherUnavailableAction,
		})
	} else if conditions.PrecipitationMm < DroughtPrecipitationMm {
		recs = append(recs, Recommendation{
			Type:     RecommendationTypeRegional,
			Priority: PriorityHigh,
			Title:    RegionalTitle,
			Message:  fmt.Sprintf("Current precipitation in your region is %.1f mm. Local supplies may be under stress, so extra conservation helps right now.", conditions.PrecipitationMm),
			Action:   RegionalAction,
		})
	}

	// Billing cost signal
	bills, err := a.bills.FetchAllBills()
	if err != nil {
		a.logger.Warn("Bills unavailable for recommendations", "error", err)
	} else if cpl, ok := costPerLiter(bills); ok && cpl > CostPerLiterAlert {
		savings := cpl * 1000
		recs = append(recs, Recommendation{
			Type:             RecommendationTypeBill,
			Priority:         PriorityMedium,
			Title:            CostAlertTitle,
			Message:          fmt.Sprintf("You are paying %.3f per liter on average, above the typical %.2f per 1000 L.", cpl, CostPerLiterAlert*1000),
			Action:           CostAlertAction,
			PotentialSavings: &savings,
		})
	}

	if len(recs) == 0 {
		recs = append(recs, onboardingRecommendation())
	}

	return recs
}

// usageRecommendation compares the 30-day average against the
// recommended daily target
func (a *Analyzer) usageRecommendation(avg30 float64) Recommendation {
	target := a.config.RecommendedDailyLiters

	if avg30 > target {
		overPct := (avg30 - target) / target * 100
		savings := (avg30 - target) * DaysPerMonth
		return Recommendation{
			Type:             RecommendationTypeUsage,
			Priority:         PriorityHigh,
			Title:            UsageHighTitle,
			Message:          fmt.Sprintf("Your daily average of %.1f L is %.1f%% above the recommended %.0f L target.", avg30, overPct, target),
			Action:           UsageHighAction,
			PotentialSavings: &savings,
		}
	}

	return Recommendation{
		Type:     RecommendationTypeUsage,
		Priority: PriorityLow,
		Title:    UsageLowTitle,
		Message:  UsageLowMessage,
		Action:   UsageLowAction,
	}
}

// onboardingRecommendation is the guaranteed fallback entry
func onboardingRecommendation() Recommendation {
	return Recommendation{
		Type:     RecommendationTypeUsage,
		Priority: PriorityLow,
		Title:    OnboardingTitle,
		Message:  OnboardingMessage,
		Action:   OnboardingAction,
	}
}
