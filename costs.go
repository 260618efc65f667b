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

// totalBillCost sums bill amounts in currency units
func totalBillCost(bills []Bill) float64 {
	total := 0.0
	for _, b := range bills {
		total += b.Amount
	}
	return total
}

// costPerLiter computes the average cost per liter across all bills.
// Returns false when there is no billed consumption to divide by.
func costPerLiter(bills []Bill) (float64, bool) {
	totalCost := 0.0
	totalLiters := 0.0
	for _, b := range bills {
		totalCost += b.Amount
		totalLiters += b.ConsumptionLiters
	}
	if totalLiters <= 0 {
		return 0, false
	}
	return totalCost / totalLiters, true
}

// monthlyBillCosts groups bill amounts by YYYY-MM key
func monthlyBillCosts(bills []Bill) map[string]float64 {
	costs := make(map[string]float64)
	for _, b := range bills {
		key, ok := monthKey(b.Date)
		if !ok {
			continue
		}
		costs[key] += b.Amount
	}
	return costs
}

// normalizeCurrency applies the configured default when a bill carries no
// currency code
func normalizeCurrency(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}
