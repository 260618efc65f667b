// Copyright 2025 The WaterWise Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	outputPath := flag.String("output", "", "Output file for report (default: stdout)")
	htmlOutput := flag.Bool("html", false, "Generate HTML report instead of Markdown")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")

	// Logging actions
	logUsage := flag.Float64("log-usage", 0, "Record a usage event of this many liters")
	date := flag.String("date", time.Now().Format("2006-01-02"), "Date for the recorded entry (YYYY-MM-DD)")
	timeOfDay := flag.String("time-of-day", "", "Optional time of day for the usage entry")
	category := flag.String("category", "", "Optional category label for the usage entry")
	location := flag.String("location", "", "Optional location label for the usage entry")
	note := flag.String("note", "", "Optional note for the usage entry")

	logBill := flag.Float64("log-bill", 0, "Record a bill of this amount")
	billLiters := flag.Float64("bill-liters", 0, "Billing period consumption in liters")
	billID := flag.String("bill-id", "", "Optional identifier for the recorded bill")
	currency := flag.String("currency", "", "Currency code for the recorded bill (default: configured)")

	listWhat := flag.String("list", "", "List stored records: usage or bills")
	deleteUsage := flag.String("delete-usage", "", "Delete the usage event with this ID")
	deleteBill := flag.String("delete-bill", "", "Delete the bill with this ID")
	clearCache := flag.Bool("clear-cache", false, "Clear cached API responses and exit")

	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("waterwise %s\n", GetVersion())
		os.Exit(0)
	}

	// Initialize logger
	logger := NewLogger(*debug)
	logger.Info("Starting waterwise", "version", GetVersion())

	// Check for updates (non-blocking)
	go CheckForUpdates(logger)

	// Load configuration
	logger.Info("Loading configuration", "config_file", *configPath)
	config, err := LoadConfig(configPathOrEmpty(*configPath))
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *debug {
		config.Debug = true
		logger = NewLogger(true)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	logger.Info("Initializing storage", "path", config.StoragePath)
	storage, err := NewStorage(config.StoragePath, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	// Record-keeping actions run and exit before any analysis
	if *clearCache {
		if err := storage.ClearCache(); err != nil {
			logger.Error("Failed to clear cache", "error", err)
			os.Exit(1)
		}
		return
	}

	if *logUsage != 0 {
		event, err := storage.AddUsageEvent(UsageEvent{
			Liters:    *logUsage,
			Date:      *date,
			TimeOfDay: *timeOfDay,
			Category:  *category,
			Location:  *location,
			Note:      *note,
		})
		if err != nil {
			logger.Error("Failed to record usage event", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Recorded usage event %s: %.1f L on %s\n", event.ID, event.Liters, event.Date)
		return
	}

	if *logBill != 0 {
		bill, err := storage.AddBill(Bill{
			ID:                *billID,
			Amount:            *logBill,
			Date:              *date,
			ConsumptionLiters: *billLiters,
			Currency:          normalizeCurrency(*currency, config.Currency),
		})
		if err != nil {
			logger.Error("Failed to record bill", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Recorded bill %s: %.2f %s for %.0f L on %s\n", bill.ID, bill.Amount, bill.Currency, bill.ConsumptionLiters, bill.Date)
		return
	}

	if *deleteUsage != "" {
		if err := storage.DeleteUsageEvent(*deleteUsage); err != nil {
			logger.Error("Failed to delete usage event", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted usage event %s\n", *deleteUsage)
		return
	}

	if *deleteBill != "" {
		if err := storage.DeleteBill(*deleteBill); err != nil {
			logger.Error("Failed to delete bill", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted bill %s\n", *deleteBill)
		return
	}

	if *listWhat != "" {
		if err := listRecords(storage, *listWhat); err != nil {
			logger.Error("Failed to list records", "error", err)
			os.Exit(1)
		}
		return
	}

	// Full analysis run
	logger.Info("Initializing collector")
	weather := NewWeatherClient(logger)
	collector := NewCollector(storage, weather, config, logger)

	logger.Info("Initializing analyzer")
	analyzer := NewAnalyzer(config, logger, collector, collector, collector)

	logger.Info("Generating usage report")
	report, err := analyzer.GenerateUsageReport()
	if err != nil {
		logger.Error("Failed to generate usage report", "error", err)
		os.Exit(1)
	}

	result := &AnalysisResult{
		GeneratedAt:     time.Now(),
		Report:          report,
		Recommendations: analyzer.GenerateRecommendations(),
		Currency:        config.Currency,
	}

	// Regional context comes from one collector snapshot and is
	// best-effort; the report stands without it
	if data, err := collector.CollectAll(); err == nil {
		result.Current = data.Current
		result.RegionalPrecipitation = data.RegionalPrecipitation
	}

	// Generate report (HTML or Markdown)
	if *htmlOutput {
		chartGen := NewChartGenerator()
		if chart, err := chartGen.GenerateWeekdayPatternChart(report.Patterns); err == nil {
			result.WeekdayChart = chart
		}
		if chart, err := chartGen.GenerateMonthlyTrendChart(report.Trends); err == nil {
			result.TrendChart = chart
		}

		logger.Info("Generating HTML report")
		htmlReporter := NewHTMLReporter(logger)
		if err := htmlReporter.GenerateHTMLReport(result, *outputPath); err != nil {
			logger.Error("Failed to generate HTML report", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("Generating Markdown report")
		reporter := NewReporter(logger)
		if err := reporter.GenerateReport(result, *outputPath); err != nil {
			logger.Error("Failed to generate report", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("Analysis completed successfully")
}

// configPathOrEmpty treats a missing default config file as "use defaults"
func configPathOrEmpty(path string) string {
	if path == "config.yaml" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return ""
		}
	}
	return path
}

// listRecords prints the stored records for one collection
func listRecords(storage *Storage, what string) error {
	switch what {
	case "usage":
		events, err := storage.FetchAllUsageEvents()
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No usage events recorded")
			return nil
		}
		for _, e := range events {
			line := fmt.Sprintf("%s  %s  %8.1f L", e.ID, e.Date, e.Liters)
			if e.Category != "" {
				line += "  " + e.Category
			}
			if e.Location != "" {
				line += "  @" + e.Location
			}
			fmt.Println(line)
		}
	case "bills":
		bills, err := storage.FetchAllBills()
		if err != nil {
			return err
		}
		if len(bills) == 0 {
			fmt.Println("No bills recorded")
			return nil
		}
		for _, b := range bills {
			fmt.Printf("%s  %s  %8.2f %s  %10.0f L\n", b.ID, b.Date, b.Amount, b.Currency, b.ConsumptionLiters)
		}
	default:
		return &ValidationError{
			Field:   "list",
			Value:   what,
			Message: "must be usage or bills",
		}
	}
	return nil
}
