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
	"html"
	"io"
	"os"

	"github.com/dustin/go-humanize"
)

// HTMLReporter generates HTML reports from analysis results
type HTMLReporter struct {
	logger *Logger
}

// NewHTMLReporter creates a new HTML report generator
func NewHTMLReporter(logger *Logger) *HTMLReporter {
	return &HTMLReporter{
		logger: logger,
	}
}

// GenerateHTMLReport generates an HTML report
func (r *HTMLReporter) GenerateHTMLReport(result *AnalysisResult, outputPath string) error {
	r.logger.Info("Generating HTML report")

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create HTML report file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	r.writeHTMLHeader(writer, result)
	r.writeHTMLSummary(writer, result)
	r.writeHTMLCharts(writer, result)
	r.writeHTMLPatterns(writer, result)
	r.writeHTMLTrends(writer, result)
	r.writeHTMLOpportunities(writer, result)
	r.writeHTMLRecommendations(writer, result)
	r.writeHTMLRegionalConditions(writer, result)
	r.writeHTMLFooter(writer)

	if outputPath != "" {
		r.logger.Info("HTML report saved", "path", outputPath)
	}

	return nil
}

func (r *HTMLReporter) writeHTMLHeader(w io.Writer, result *AnalysisResult) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>WaterWise Usage Report</title>
    <style>
        :root {
            --primary-color: #00A6FB;
            --secondary-color: #00C896;
            --warning-color: #FFB800;
            --danger-color: #FF3D71;
            --bg-color: #0A0F1E;
            --card-bg: #1A2332;
            --text-color: #E8EAF6;
            --text-muted: #9FA8DA;
            --border-color: #2A3550;
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            background: var(--bg-color);
            color: var(--text-color);
            line-height: 1.6;
            padding: 20px;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
        }

        header {
            background: linear-gradient(135deg, var(--primary-color), var(--secondary-color));
            padding: 40px;
            border-radius: 16px;
            margin-bottom: 30px;
            box-shadow: 0 8px 32px rgba(0, 166, 251, 0.2);
        }

        header h1 {
            font-size: 2em;
        }

        header p {
            opacity: 0.85;
        }

        .card {
            background: var(--card-bg);
            border: 1px solid var(--border-color);
            border-radius: 12px;
            padding: 24px;
            margin-bottom: 24px;
        }

        .card h2 {
            margin-bottom: 16px;
        }

        table {
            width: 100%%;
            border-collapse: collapse;
        }

        th, td {
            text-align: left;
            padding: 8px 12px;
            border-bottom: 1px solid var(--border-color);
        }

        th {
            color: var(--text-muted);
        }

        .priority-high { color: var(--danger-color); font-weight: 600; }
        .priority-medium { color: var(--warning-color); font-weight: 600; }
        .priority-low { color: var(--secondary-color); font-weight: 600; }

        .chart img {
            width: 100%%;
            border-radius: 8px;
        }

        .muted { color: var(--text-muted); }

        footer {
            text-align: center;
            color: var(--text-muted);
            padding: 20px;
        }
    </style>
</head>
<body>
<div class="container">
<header>
    <h1>💧 WaterWise Usage Report</h1>
    <p>Generated %s · waterwise %s</p>
</header>
`, result.GeneratedAt.Format("2006-01-02 15:04:05"), html.EscapeString(GetVersion()))
}

func (r *HTMLReporter) writeHTMLSummary(w io.Writer, result *AnalysisResult) {
	s := result.Report.Summary

	fmt.Fprintf(w, "<div class=\"card\">\n<h2>Summary</h2>\n")
	if s.TotalDays == 0 {
		fmt.Fprintf(w, "<p class=\"muted\">No usage has been logged yet.</p>\n</div>\n")
		return
	}

	fmt.Fprintf(w, "<table>\n<tr><th>Days logged</th><td>%d</td></tr>\n", s.TotalDays)
	fmt.Fprintf(w, "<tr><th>Total usage</th><td>%s L</td></tr>\n", humanize.CommafWithDigits(s.TotalUsage, 1))
	fmt.Fprintf(w, "<tr><th>Daily average</th><td>%s L</td></tr>\n", humanize.CommafWithDigits(s.AverageDaily, 1))
	fmt.Fprintf(w, "<tr><th>Total billed</th><td>%s %s</td></tr>\n</table>\n</div>\n",
		humanize.CommafWithDigits(s.TotalCost, 2), html.EscapeString(result.Currency))
}

func (r *HTMLReporter) writeHTMLCharts(w io.Writer, result *AnalysisResult) {
	if result.WeekdayChart == "" && result.TrendChart == "" {
		return
	}

	fmt.Fprintf(w, "<div class=\"card chart\">\n<h2>Charts</h2>\n")
	if result.WeekdayChart != "" {
		fmt.Fprintf(w, "<img src=\"data:image/png;base64,%s\" alt=\"Average usage by weekday\">\n", result.WeekdayChart)
	}
	if result.TrendChart != "" {
		fmt.Fprintf(w, "<img src=\"data:image/png;base64,%s\" alt=\"Monthly usage and cost\">\n", result.TrendChart)
	}
	fmt.Fprintf(w, "</div>\n")
}

func (r *HTMLReporter) writeHTMLPatterns(w io.Writer, result *AnalysisResult) {
	if len(result.Report.Patterns) == 0 {
		return
	}

	fmt.Fprintf(w, "<div class=\"card\">\n<h2>Weekday Patterns</h2>\n<table>\n")
	fmt.Fprintf(w, "<tr><th>Weekday</th><th>Average</th><th>Entries</th></tr>\n")
	for _, p := range result.Report.Patterns {
		fmt.Fprintf(w, "<tr><td>%s</td><td>%s L</td><td>%d</td></tr>\n",
			html.EscapeString(p.Weekday), humanize.CommafWithDigits(p.AverageUsage, 1), p.Events)
	}
	fmt.Fprintf(w, "</table>\n</div>\n")
}

func (r *HTMLReporter) writeHTMLTrends(w io.Writer, result *AnalysisResult) {
	if len(result.Report.Trends) == 0 {
		return
	}

	fmt.Fprintf(w, "<div class=\"card\">\n<h2>Monthly Trends</h2>\n<table>\n")
	fmt.Fprintf(w, "<tr><th>Month</th><th>Usage</th><th>Daily Average</th><th>Cost</th></tr>\n")
	for _, t := range result.Report.Trends {
		fmt.Fprintf(w, "<tr><td>%s</td><td>%s L</td><td>%s L</td><td>%s %s</td></tr>\n",
			t.Month,
			humanize.CommafWithDigits(t.TotalUsage, 1),
			humanize.CommafWithDigits(t.AverageDaily, 1),
			humanize.CommafWithDigits(t.TotalCost, 2),
			html.EscapeString(result.Currency),
		)
	}
	fmt.Fprintf(w, "</table>\n</div>\n")
}

func (r *HTMLReporter) writeHTMLOpportunities(w io.Writer, result *AnalysisResult) {
	if len(result.Report.Opportunities) == 0 {
		return
	}

	fmt.Fprintf(w, "<div class=\"card\">\n<h2>Savings Opportunities</h2>\n<table>\n")
	fmt.Fprintf(w, "<tr><th>Category</th><th>Priority</th><th>Estimated</th><th>Recommended</th><th>Monthly savings</th></tr>\n")
	for _, o := range result.Report.Opportunities {
		fmt.Fprintf(w, "<tr><td>%s</td><td class=\"priority-%s\">%s</td><td>%s L/day</td><td>%s L/day</td><td>%s L</td></tr>\n",
			html.EscapeString(o.Category),
			o.Priority,
			o.Priority,
			humanize.CommafWithDigits(o.CurrentUsage, 1),
			humanize.CommafWithDigits(o.RecommendedUsage, 1),
			humanize.CommafWithDigits(o.PotentialSavings, 0),
		)
	}
	fmt.Fprintf(w, "</table>\n</div>\n")
}

func (r *HTMLReporter) writeHTMLRecommendations(w io.Writer, result *AnalysisResult) {
	if len(result.Recommendations) == 0 {
		return
	}

	fmt.Fprintf(w, "<div class=\"card\">\n<h2>Recommendations</h2>\n")
	for _, rec := range result.Recommendations {
		fmt.Fprintf(w, "<h3 class=\"priority-%s\">%s</h3>\n", rec.Priority, html.EscapeString(rec.Title))
		fmt.Fprintf(w, "<p>%s</p>\n", html.EscapeString(rec.Message))
		fmt.Fprintf(w, "<p class=\"muted\">Action: %s</p>\n", html.EscapeString(rec.Action))
	}
	fmt.Fprintf(w, "</div>\n")
}

func (r *HTMLReporter) writeHTMLRegionalConditions(w io.Writer, result *AnalysisResult) {
	if result.Current == nil && len(result.RegionalPrecipitation) == 0 {
		return
	}

	fmt.Fprintf(w, "<div class=\"card\">\n<h2>Regional Conditions</h2>\n")
	if result.Current != nil {
		fmt.Fprintf(w, "<p>%s, %.1f°C, humidity %.0f%%, precipitation %.1f mm, wind %.1f km/h</p>\n",
			html.EscapeString(result.Current.Description),
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
		fmt.Fprintf(w, "<p class=\"muted\">Rainfall over the last %d days: %s mm</p>\n",
			len(result.RegionalPrecipitation), humanize.CommafWithDigits(total, 1))
	}
	fmt.Fprintf(w, "</div>\n")
}

func (r *HTMLReporter) writeHTMLFooter(w io.Writer) {
	fmt.Fprintf(w, "<footer>Generated by waterwise</footer>\n</div>\n</body>\n</html>\n")
}
