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
	"encoding/base64"
	"fmt"

	charts "github.com/vicanso/go-charts/v2"
)

// ChartGenerator handles chart generation
type ChartGenerator struct {
	theme string
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{
		theme: "dark", // Match our HTML report dark theme
	}
}

// GenerateWeekdayPatternChart creates a bar chart of mean liters per weekday
func (cg *ChartGenerator) GenerateWeekdayPatternChart(patterns []UsagePattern) (string, error) {
	if len(patterns) == 0 {
		return "", fmt.Errorf("no usage patterns available")
	}

	var labels []string
	var values []float64
	for _, p := range patterns {
		labels = append(labels, p.Weekday[:3])
		values = append(values, p.AverageUsage)
	}

	p, err := charts.BarRender(
		[][]float64{values},
		charts.TitleTextOptionFunc("Average Usage by Weekday"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Average (L)"}, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render weekday chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// GenerateMonthlyTrendChart creates a line chart of monthly usage and cost
func (cg *ChartGenerator) GenerateMonthlyTrendChart(trends []MonthlyTrend) (string, error) {
	if len(trends) == 0 {
		return "", fmt.Errorf("no monthly trends available")
	}

	var labels []string
	var usageValues []float64
	var costValues []float64
	for _, t := range trends {
		labels = append(labels, t.Month)
		usageValues = append(usageValues, t.TotalUsage)
		costValues = append(costValues, t.TotalCost)
	}

	p, err := charts.LineRender(
		[][]float64{usageValues, costValues},
		charts.TitleTextOptionFunc("Monthly Usage and Cost"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendLabelsOptionFunc([]string{"Usage (L)", "Cost"}, charts.PositionRight),
		charts.ThemeOptionFunc(cg.theme),
		charts.WidthOptionFunc(1200),
		charts.HeightOptionFunc(400),
		charts.PaddingOptionFunc(charts.Box{
			Top:    20,
			Right:  20,
			Bottom: 20,
			Left:   20,
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render trend chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return "", fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}
