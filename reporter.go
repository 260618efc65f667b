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
	"io"
	"os"

	"github.com/dustin/go-humanize"
)

// Reporter generates markdown reports from analysis results
type Reporter struct {
	logger *Logger
}

// NewReporter creates a new report generator
func NewReporter(logger *Logger) *Reporter {
	return &Reporter{
		logger: logger,
	}
}

// GenerateReport creates a markdown report from analysis results
func (r *Reporter) GenerateReport(result *AnalysisResult, outputPath string) error {
	r.logger.Info("Generating report")

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	r.writeHeader(writer, result)
	r.writeSummary(writer, result)
	r.writePatterns(writer, result)
	r.writeTrends(writer, result)
	r.writeOpportunities(writer, result)
	r.writeRecommendations(writer, result)
	r.writeRegionalConditions(writer, result)
	r.writeFooter(writer)

	if outputPath != "" {
		r.logger.Info("Report saved", "path", outputPath)
	}

	return nil
}

// writeHeader writes the report header
func (r *Reporter) writeHeader(w io.Writer, result *AnalysisResult) {
	fmt.Fprintf(w, "# WaterWise Usage Report\n\n")
	fmt.Fprintf(w, "**Generated:** %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "**waterwise version:** %s\n\n", GetVersion())
	fmt.Fprintf(w, "---\n\n")
}

// writeSummary writes the summary section
func (r *Reporter) writeSummary(w io.Writer, result *AnalysisResult) {
	s := result.Report.Summary

	fmt.Fprintf(w, "## 💧 Summary\n\n")

	if s.TotalDays == 0 {
		fmt.Fprintf(w, "No usage has been logged yet. Record entries with `-log-usage` to build your report.\n\n")
		return
	}

	fmt.Fprintf(w, "| Item | Value |\n")
	fmt.Fprintf(w, "|------|-------|\n")
	fmt.Fprintf(w, "| Days logged | %d |\n", s.TotalDays)
	fmt.Fprintf(w, "| Total usage | %s L |\n", humanize.CommafWithDigits(s.TotalUsage, 1))
	fmt.Fprintf(w, "| Daily average | %s L |\n", humanize.CommafWithDigits(s.AverageDaily, 1))
	fmt.Fprintf(w, "| Total billed | %s %s |\n", humanize.CommafWithDigits(s.TotalCost, 2), result.Currency)
	fmt.Fprintf(w, "\n")
}

// writePatterns writes the weekday pattern section
func (r *Reporter) writePatterns(w io.Writer, result *AnalysisResult) {
	if len(result.Report.Patterns) == 0 {
		return
	}

	fmt.Fprintf(w, "## 📅 Weekday Patterns\n\n")
	fmt.Fprintf(w, "| Weekday | Average | Entries |\n")
	fmt.Fprintf(w, "|---------|---------|--------|\n")
	for _, p := range result.Report.Patterns {
		fmt.Fprintf(w, "| %s | %s L | %d |\n", p.Weekday, humanize.CommafWithDigits(p.AverageUsage, 1), p.Events)
	}
	fmt.Fprintf(w, "\n")
}

// writeTrends writes the monthly trend section
func (r *Reporter) writeTrends(w io.Writer, result *AnalysisResult) {
	if len(result.Report.Trends) == 0 {
		return
	}

	fmt.Fprintf(w, "## 📈 Monthly Trends\n\n")
	fmt.Fprintf(w, "| Month | Usage | Daily Average | Cost |\n")
	fmt.Fprintf(w, "|-------|-------|---------------|------|\n")
	for _, t := range result.Report.Trends {
		fmt.Fprintf(w, "| %s | %s L | %s L | %s %s |\n",
			t.Month,
			humanize.CommafWithDigits(t.TotalUsage, 1),
			humanize.CommafWithDigits(t.AverageDaily, 1),
			humanize.CommafWithDigits(t.TotalCost, 2),
			result.Currency,
		)
	}
	fmt.Fprintf(w, "\n")
}

// writeOpportunities writes the savings opportunity section
func (r *Reporter) writeOpportunities(w io.Writer, result *AnalysisResult) {
	if len(result.Report.Opportunities) == 0 {
		return
	}

	fmt.Fprintf(w, "## 💡 Savings Opportunities\n\n")
	for _, o := range result.Report.Opportunities {
		fmt.Fprintf(w, "### %s %s\n\n", priorityIndicator(o.Priority), o.Category)
		fmt.Fprintf(w, "%s\n\n", o.Description)
		fmt.Fprintf(w, "- Estimated usage: %s L/day\n", humanize.CommafWithDigits(o.CurrentUsage, 1))
		fmt.Fprintf(w, "- Recommended: %s L/day\n", humanize.CommafWithDigits(o.RecommendedUsage, 1))
		fmt.Fprintf(w, "- Potential monthly savings: %s L\n\n", humanize.CommafWithDigits(o.PotentialSavings, 0))
	}
}

// writeRecommendations writes the advisory section
func (r *Reporter) writeRecommendations(w io.Writer, result *AnalysisResult) {
	if len(result.Recommendations) == 0 {
		return
	}

	fmt.Fprintf(w, "## ✅ Recommendations\n\n")
	for _, rec := range result.Recommendations {
		fmt.Fprintf(w, "### %s %s\n\n", priorityIndicator(rec.Priority), rec.Title)
		fmt.Fprintf(w, "%s\n\n", rec.Message)
		fmt.Fprintf(w, "**Action:** %s\n\n", rec.Action)
		if rec.PotentialSavings != nil {
			fmt.Fprintf(w, "**Potential savings:** %s\n\n", humanize.CommafWithDigits(*rec.PotentialSavings, 1))
		}
	}
}

// writeRegionalConditions writes the regional weather section
func (r *Reporter) writeRegionalConditions(w io.Writer, result *AnalysisResult) {
	if result.Current == nil && len(result.RegionalPrecipitation) == 0 {
		return
	}

	fmt.Fprintf(w, "## 🌧️ Regional Conditions\n\n")

	if result.Current != nil {
		fmt.Fprintf(w, "**Now:** %s, %.1f°C, humidity %.0f%%, precipitation %.1f mm, wind %.1f km/h\n\n",
			result.Current.Description,
			result.Current.TemperatureC,
			result.Current.HumidityPct,
			result.Current.PrecipitationMm,
			result.Current.WindSpeedKmh,
		)
	}

	if len(result.RegionalPrecipitation) > 0 {
		total := 0.0
		for _, d := range result.RegionalPrecipitation {
			total += d.PrecipitationMm
		}
		fmt.Fprintf(w, "**Rainfall, last %d days:** %s mm\n\n",
			len(result.RegionalPrecipitation),
			humanize.CommafWithDigits(total, 1),
		)
	}
}

// writeFooter writes the report footer
func (r *Reporter) writeFooter(w io.Writer) {
	fmt.Fprintf(w, "---\n\n")
	fmt.Fprintf(w, "*Generated by [waterwise](https://github.com/M1778M/WaterWise)*\n")
}

// priorityIndicator maps a priority to a status marker
func priorityIndicator(priority string) string {
	switch priority {
	case PriorityHigh:
		return "🔴"
	case PriorityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}
