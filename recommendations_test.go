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
	"errors"
	"strings"
	"testing"
	"time"
)

// recentEvents builds one event per day over the last n days, each
// with the given liters per day.
func recentEvents(n int, litersPerDay float64) []UsageEvent {
	now := time.Now()
	events := make([]UsageEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, UsageEvent{
			Liters: litersPerDay,
			Date:   now.AddDate(0, 0, -i).Format("2006-01-02"),
		})
	}
	return events
}

func findByType(recs []Recommendation, recType string) (Recommendation, bool) {
	for _, r := range recs {
		if r.Type == recType {
			return r, true
		}
	}
	return Recommendation{}, false
}

func TestGenerateRecommendationsCostSignalOnly(t *testing.T) {
	// No usage history and good rainfall leave the cost rule as the
	// only trigger.
	bills := &fakeBillSource{bills: []Bill{
		{ID: "b-1", Amount: 20, Date: "2024-06-01", ConsumptionLiters: 1000, Currency: "EUR"},
	}}
	a := newTestAnalyzer(&fakeUsageSource{}, bills, &fakeWeatherSource{
		conditions: &WeatherConditions{PrecipitationMm: 5.0},
	})

	recs := a.GenerateRecommendations()
	if len(recs) != 1 {
		t.Fatalf("expected exactly 1 recommendation, got %d: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.Type != RecommendationTypeBill {
		t.Errorf("expected bill recommendation, got %s", rec.Type)
	}
	if rec.Priority != PriorityMedium {
		t.Errorf("expected medium priority, got %s", rec.Priority)
	}
	if rec.PotentialSavings == nil || !approxEqual(*rec.PotentialSavings, 20) {
		t.Errorf("expected potential savings 20, got %v", rec.PotentialSavings)
	}
}

func TestGenerateRecommendationsNeverEmpty(t *testing.T) {
	usage := &fakeUsageSource{err: errors.New("store offline")}
	bills := &fakeBillSource{err: errors.New("store offline")}
	weather := &fakeWeatherSource{err: errors.New("network down")}
	a := newTestAnalyzer(usage, bills, weather)

	recs := a.GenerateRecommendations()
	if len(recs) == 0 {
		t.Fatal("recommendations must never be empty")
	}
	if recs[0].Title != OnboardingTitle {
		t.Errorf("expected onboarding fallback, got %q", recs[0].Title)
	}
}

func TestGenerateRecommendationsUsageAboveTarget(t *testing.T) {
	a := newTestAnalyzer(&fakeUsageSource{events: recentEvents(10, 150)}, nil, nil)

	recs := a.GenerateRecommendations()
	rec, ok := findByType(recs, RecommendationTypeUsage)
	if !ok {
		t.Fatal("expected a usage recommendation")
	}
	if rec.Priority != PriorityHigh {
		t.Errorf("expected high priority, got %s", rec.Priority)
	}
	if !strings.Contains(rec.Message, "150.0 L") {
		t.Errorf("message should name the daily average, got %q", rec.Message)
	}
	if !strings.Contains(rec.Message, "50.0%") {
		t.Errorf("message should name the overshoot percentage, got %q", rec.Message)
	}
	if rec.PotentialSavings == nil || !approxEqual(*rec.PotentialSavings, 1500) {
		t.Errorf("expected potential savings 1500, got %v", rec.PotentialSavings)
	}
}

func TestGenerateRecommendationsUsageBelowTarget(t *testing.T) {
	a := newTestAnalyzer(&fakeUsageSource{events: recentEvents(10, 60)}, nil, nil)

	recs := a.GenerateRecommendations()
	rec, ok := findByType(recs, RecommendationTypeUsage)
	if !ok {
		t.Fatal("expected a usage recommendation")
	}
	if rec.Priority != PriorityLow {
		t.Errorf("expected low priority, got %s", rec.Priority)
	}
	if rec.PotentialSavings != nil {
		t.Errorf("congratulatory entry should carry no savings figure, got %v", *rec.PotentialSavings)
	}
}

func TestGenerateRecommendationsTrendAlert(t *testing.T) {
	// Flat 80 L/day for the older weeks, 160 L/day in the last week:
	// the 7-day average clears the 30-day average by more than 10%.
	now := time.Now()
	var events []UsageEvent
	for i := 0; i < 30; i++ {
		liters := 80.0
		if i < 7 {
			liters = 160.0
		}
		events = append(events, UsageEvent{
			Liters: liters,
			Date:   now.AddDate(0, 0, -i).Format("2006-01-02"),
		})
	}
	a := newTestAnalyzer(&fakeUsageSource{events: events}, nil, nil)

	recs := a.GenerateRecommendations()
	rec, ok := findByType(recs, RecommendationTypeSavings)
	if !ok {
		t.Fatal("expected a trend alert")
	}
	if rec.Priority != PriorityMedium {
		t.Errorf("expected medium priority, got %s", rec.Priority)
	}
	if rec.Title != TrendAlertTitle {
		t.Errorf("expected %q, got %q", TrendAlertTitle, rec.Title)
	}
}

func TestGenerateRecommendationsNoTrendAlertWhenStable(t *testing.T) {
	a := newTestAnalyzer(&fakeUsageSource{events: recentEvents(30, 90)}, nil, nil)

	recs := a.GenerateRecommendations()
	if _, ok := findByType(recs, RecommendationTypeSavings); ok {
		t.Error("stable usage must not raise a trend alert")
	}
}

func TestGenerateRecommendationsDroughtAdvisory(t *testing.T) {
	weather := &fakeWeatherSource{conditions: &WeatherConditions{PrecipitationMm: 0.2}}
	a := newTestAnalyzer(&fakeUsageSource{}, nil, weather)

	recs := a.GenerateRecommendations()
	rec, ok := findByType(recs, RecommendationTypeRegional)
	if !ok {
		t.Fatal("expected a regional advisory at 0.2 mm precipitation")
	}
	if rec.Priority != PriorityHigh {
		t.Errorf("expected high priority, got %s", rec.Priority)
	}
	if !strings.Contains(rec.Message, "0.2 mm") {
		t.Errorf("message should carry the live reading, got %q", rec.Message)
	}
}

func TestGenerateRecommendationsWeatherFailure(t *testing.T) {
	weather := &fakeWeatherSource{err: errors.New("timeout")}
	a := newTestAnalyzer(&fakeUsageSource{events: recentEvents(5, 60)}, nil, weather)

	recs := a.GenerateRecommendations()
	rec, ok := findByType(recs, RecommendationTypeRegional)
	if !ok {
		t.Fatal("expected a data-unavailable advisory on weather failure")
	}
	if rec.Title != WeatherUnavailableTitle {
		t.Errorf("expected %q, got %q", WeatherUnavailableTitle, rec.Title)
	}
	if rec.Priority != PriorityLow {
		t.Errorf("a missing reading must not raise a high-priority advisory, got %s", rec.Priority)
	}
}

func TestGenerateRecommendationsSkipsCostWithoutConsumption(t *testing.T) {
	bills := &fakeBillSource{bills: []Bill{
		{ID: "b-1", Amount: 20, Date: "2024-06-01", ConsumptionLiters: 0, Currency: "EUR"},
	}}
	a := newTestAnalyzer(&fakeUsageSource{}, bills, nil)

	recs := a.GenerateRecommendations()
	if _, ok := findByType(recs, RecommendationTypeBill); ok {
		t.Error("bills without recorded consumption must not drive the cost rule")
	}
}
