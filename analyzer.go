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
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// UsageSource supplies all recorded usage events
type UsageSource interface {
	FetchAllUsageEvents() ([]UsageEvent, error)
}

// BillSource supplies all recorded bills
type BillSource interface {
	FetchAllBills() ([]Bill, error)
}

// WeatherSource supplies the live regional weather reading
type WeatherSource interface {
	FetchCurrentConditions(lat, lon float64) (*WeatherConditions, error)
}

// Analyzer computes usage patterns, trends, savings opportunities, and
// conservation recommendations from the injected collaborators. Every
// result is recomputed from a fresh snapshot on each call.
type Analyzer struct {
	config  *Config
	logger  *Logger
	usage   UsageSource
	bills   BillSource
	weather WeatherSource
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(config *Config, logger *Logger, usage UsageSource, bills BillSource, weather WeatherSource) *Analyzer {
	return &Analyzer{
		config:  config,
		logger:  logger.WithComponent("analyzer"),
		usage:   usage,
		bills:   bills,
		weather: weather,
	}
}

// AnalyzeUsagePatterns returns per-weekday mean consumption, Sunday
// through Saturday, omitting weekdays with no events. A read failure
// degrades to an empty result.
func (a *Analyzer) AnalyzeUsagePatterns() []UsagePattern {
	events, err := a.usage.FetchAllUsageEvents()
	if err != nil {
		a.logger.Warn("Degrading to empty patterns", "error", err)
		return []UsagePattern{}
	}

	a.logger.LogAnalysisStage("usage_patterns")
	return buildUsagePatterns(events)
}

// CalculateMonthlyTrends returns usage and cost aggregates for the most
// recent months with activity, oldest first. months <= 0 selects the
// configured window.
func (a *Analyzer) CalculateMonthlyTrends(months int) []MonthlyTrend {
	if months <= 0 {
		months = a.config.TrendMonths
	}

	events, err := a.usage.FetchAllUsageEvents()
	if err != nil {
		a.logger.Warn("Degrading to empty trends", "error", err)
		return []MonthlyTrend{}
	}
	bills, err := a.bills.FetchAllBills()
	if err != nil {
		a.logger.Warn("Degrading to empty trends", "error", err)
		return []MonthlyTrend{}
	}

	a.logger.LogAnalysisStage("monthly_trends")
	return buildMonthlyTrends(events, bills, months)
}

// IdentifySavingsOpportunities evaluates the fixed category heuristics
// against the overall daily average
func (a *Analyzer) IdentifySavingsOpportunities() []SavingsOpportunity {
	events, err := a.usage.FetchAllUsageEvents()
	if err != nil {
		a.logger.Warn("Degrading to empty opportunities", "error", err)
		return []SavingsOpportunity{}
	}

	a.logger.LogAnalysisStage("savings_opportunities")
	return buildSavingsOpportunities(events)
}

// GenerateUsageReport runs the full analysis over one snapshot of the
// store. A failed store read is fatal here; the sub-computations then run
// concurrently over the snapshot and are joined before returning.
func (a *Analyzer) GenerateUsageReport() (*UsageReport, error) {
	var events []UsageEvent
	var bills []Bill

	var fetch errgroup.Group
	fetch.Go(func() error {
		var err error
		events, err = a.usage.FetchAllUsageEvents()
		return err
	})
	fetch.Go(func() error {
		var err error
		bills, err = a.bills.FetchAllBills()
		return err
	})
	if err := fetch.Wait(); err != nil {
		if _, ok := err.(*DataAccessError); ok {
			return nil, err
		}
		return nil, &DataAccessError{Collection: "records", Err: err}
	}

	report := &UsageReport{}

	var compute errgroup.Group
	compute.Go(func() error {
		report.Summary = buildReportSummary(events, bills)
		return nil
	})
	compute.Go(func() error {
		report.Patterns = buildUsagePatterns(events)
		return nil
	})
	compute.Go(func() error {
		report.Trends = buildMonthlyTrends(events, bills, a.config.TrendMonths)
		return nil
	})
	compute.Go(func() error {
		report.Opportunities = buildSavingsOpportunities(events)
		return nil
	})
	if err := compute.Wait(); err != nil {
		return nil, err
	}

	a.logger.Info("Report generated",
		"total_days", report.Summary.TotalDays,
		"patterns", len(report.Patterns),
		"trends", len(report.Trends),
		"opportunities", len(report.Opportunities),
	)

	return report, nil
}

// buildUsagePatterns groups event liters by weekday and averages them
func buildUsagePatterns(events []UsageEvent) []UsagePattern {
	byWeekday := make(map[time.Weekday][]float64)
	for _, e := range events {
		day, ok := parseEventDate(e.Date)
		if !ok {
			continue
		}
		byWeekday[day.Weekday()] = append(byWeekday[day.Weekday()], e.Liters)
	}

	patterns := make([]UsagePattern, 0, len(byWeekday))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		values, exists := byWeekday[wd]
		if !exists {
			continue
		}
		mean, err := stats.Mean(stats.Float64Data(values))
		if err != nil {
			continue
		}
		patterns = append(patterns, UsagePattern{
			Weekday:      wd.String(),
			AverageUsage: mean,
			Events:       len(values),
		})
	}

	return patterns
}

// buildMonthlyTrends merges per-month usage sums and bill costs, keeping
// the most recent months of activity in chronological order
func buildMonthlyTrends(events []UsageEvent, bills []Bill, months int) []MonthlyTrend {
	usage := make(map[string]float64)
	usageDays := make(map[string]map[string]bool)
	for _, e := range events {
		key, ok := monthKey(e.Date)
		if !ok {
			continue
		}
		usage[key] += e.Liters
		if usageDays[key] == nil {
			usageDays[key] = make(map[string]bool)
		}
		usageDays[key][e.Date] = true
	}

	costs := monthlyBillCosts(bills)

	keys := make(map[string]bool)
	for k := range usage {
		keys[k] = true
	}
	for k := range costs {
		keys[k] = true
	}

	// YYYY-MM keys sort lexicographically into chronological order
	ordered := make([]string, 0, len(keys))
	for k := range keys {
		ordered = append(ordered, k)
	}
	sort.Strings(ordered)
	if len(ordered) > months {
		ordered = ordered[len(ordered)-months:]
	}

	trends := make([]MonthlyTrend, 0, len(ordered))
	for _, key := range ordered {
		days := len(usageDays[key])
		if days == 0 {
			days = 1
		}
		trends = append(trends, MonthlyTrend{
			Month:        key,
			TotalUsage:   usage[key],
			TotalCost:    costs[key],
			AverageDaily: usage[key] / float64(days),
		})
	}

	return trends
}

// buildSavingsOpportunities applies the fixed proportional heuristics to
// the overall daily average. The optional per-event category label is
// deliberately not consulted; estimates are fixed splits of the average.
func buildSavingsOpportunities(events []UsageEvent) []SavingsOpportunity {
	dailyAverage, ok := overallDailyAverage(events)
	if !ok {
		return []SavingsOpportunity{}
	}

	heuristics := []struct {
		category    string
		estimate    float64
		threshold   float64
		target      float64
		priority    string
		description string
	}{
		{CategoryShower, dailyAverage * ShowerShare, ShowerThresholdLiters, ShowerTargetLiters, PriorityHigh, ShowerOpportunityDescription},
		{CategoryToilet, dailyAverage * ToiletShare, ToiletThresholdLiters, ToiletTargetLiters, PriorityMedium, ToiletOpportunityDescription},
		{CategoryKitchen, dailyAverage * KitchenShare, KitchenThresholdLiters, KitchenTargetLiters, PriorityMedium, KitchenOpportunityDescription},
		{CategoryGeneral, dailyAverage, GeneralThresholdLiters, GeneralTargetLiters, PriorityHigh, GeneralOpportunityDescription},
	}

	var opportunities []SavingsOpportunity
	for _, h := range heuristics {
		if h.estimate <= h.threshold {
			continue
		}
		opportunities = append(opportunities, SavingsOpportunity{
			Category:         h.category,
			CurrentUsage:     h.estimate,
			RecommendedUsage: h.target,
			PotentialSavings: (h.estimate - h.target) * DaysPerMonth,
			Priority:         h.priority,
			Description:      h.description,
		})
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return priorityRank(opportunities[i].Priority) < priorityRank(opportunities[j].Priority)
	})

	return opportunities
}

// buildReportSummary computes the headline figures with an explicit
// divide-by-zero guard
func buildReportSummary(events []UsageEvent, bills []Bill) ReportSummary {
	totalUsage := 0.0
	days := make(map[string]bool)
	for _, e := range events {
		if _, ok := parseEventDate(e.Date); !ok {
			continue
		}
		totalUsage += e.Liters
		days[e.Date] = true
	}

	summary := ReportSummary{
		TotalDays:  len(days),
		TotalUsage: totalUsage,
		TotalCost:  totalBillCost(bills),
	}
	if summary.TotalDays > 0 {
		summary.AverageDaily = totalUsage / float64(summary.TotalDays)
	}

	return summary
}

// overallDailyAverage is total logged liters over distinct days with
// usage. ok is false when there are no parseable events.
func overallDailyAverage(events []UsageEvent) (float64, bool) {
	total := 0.0
	days := make(map[string]bool)
	for _, e := range events {
		if _, ok := parseEventDate(e.Date); !ok {
			continue
		}
		total += e.Liters
		days[e.Date] = true
	}
	if len(days) == 0 {
		return 0, false
	}
	return total / float64(len(days)), true
}

// windowDailyAverage is the daily average over events whose date falls
// within the trailing window of the given length
func windowDailyAverage(events []UsageEvent, now time.Time, windowDays int) (float64, int) {
	cutoff := now.AddDate(0, 0, -windowDays)

	dailyTotals := make(map[string]float64)
	for _, e := range events {
		day, ok := parseEventDate(e.Date)
		if !ok {
			continue
		}
		if day.Before(cutoff) || day.After(now) {
			continue
		}
		dailyTotals[e.Date] += e.Liters
	}
	if len(dailyTotals) == 0 {
		return 0, 0
	}

	values := make([]float64, 0, len(dailyTotals))
	for _, v := range dailyTotals {
		values = append(values, v)
	}
	mean, err := stats.Mean(stats.Float64Data(values))
	if err != nil {
		return 0, 0
	}
	return mean, len(dailyTotals)
}

// classifyTrend compares the recent average against the older one within
// a relative tolerance band
func classifyTrend(recent, older float64) string {
	switch {
	case recent > older*(1+TrendTolerance):
		return "increasing"
	case recent < older*(1-TrendTolerance):
		return "decreasing"
	default:
		return "stable"
	}
}

// parseEventDate interprets a record date as a calendar day
func parseEventDate(date string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// monthKey derives the YYYY-MM bucket from a record date
func monthKey(date string) (string, bool) {
	if _, ok := parseEventDate(date); !ok {
		return "", false
	}
	return date[:7], true
}

// priorityRank orders high before medium before low
func priorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}
