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
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := NewStorage(t.TempDir(), NewLogger(false))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestStorageUsageEventLifecycle(t *testing.T) {
	storage := newTestStorage(t)

	saved, err := storage.AddUsageEvent(UsageEvent{
		Liters:    45,
		Date:      "2024-06-01",
		TimeOfDay: "morning",
		Category:  "Shower & Bath",
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID != "u-1" {
		t.Errorf("expected generated ID u-1, got %s", saved.ID)
	}

	second, err := storage.AddUsageEvent(UsageEvent{Liters: 12, Date: "2024-06-02"})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != "u-2" {
		t.Errorf("expected sequential ID u-2, got %s", second.ID)
	}

	saved.Liters = 50
	if err := storage.UpdateUsageEvent(saved); err != nil {
		t.Fatal(err)
	}

	events, err := storage.FetchAllUsageEvents()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Liters != 50 {
		t.Errorf("update not persisted, got %f liters", events[0].Liters)
	}

	if err := storage.DeleteUsageEvent("u-1"); err != nil {
		t.Fatal(err)
	}
	events, err = storage.FetchAllUsageEvents()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].ID != "u-2" {
		t.Errorf("expected only u-2 after delete, got %+v", events)
	}
}

func TestStorageBillLifecycle(t *testing.T) {
	storage := newTestStorage(t)

	saved, err := storage.AddBill(Bill{
		Amount:            42.50,
		Date:              "2024-05-15",
		ConsumptionLiters: 3000,
		Currency:          "EUR",
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID != "b-1" {
		t.Errorf("expected generated ID b-1, got %s", saved.ID)
	}

	custom, err := storage.AddBill(Bill{
		ID:                "invoice-2024-06",
		Amount:            39.90,
		Date:              "2024-06-15",
		ConsumptionLiters: 2800,
		Currency:          "EUR",
	})
	if err != nil {
		t.Fatal(err)
	}
	if custom.ID != "invoice-2024-06" {
		t.Errorf("user-supplied ID must be kept, got %s", custom.ID)
	}

	if err := storage.DeleteBill("b-1"); err != nil {
		t.Fatal(err)
	}
	bills, err := storage.FetchAllBills()
	if err != nil {
		t.Fatal(err)
	}
	if len(bills) != 1 || bills[0].ID != "invoice-2024-06" {
		t.Errorf("expected only the custom bill after delete, got %+v", bills)
	}
}

func TestStorageValidation(t *testing.T) {
	storage := newTestStorage(t)

	tests := []struct {
		name  string
		event UsageEvent
	}{
		{"zero liters", UsageEvent{Liters: 0, Date: "2024-06-01"}},
		{"negative liters", UsageEvent{Liters: -5, Date: "2024-06-01"}},
		{"missing date", UsageEvent{Liters: 10}},
		{"malformed date", UsageEvent{Liters: 10, Date: "01/06/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.AddUsageEvent(tt.event)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}

	_, err := storage.AddBill(Bill{Amount: -1, Date: "2024-06-01", ConsumptionLiters: 100})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError for negative bill amount, got %v", err)
	}
}

func TestStorageDeleteMissingRecord(t *testing.T) {
	storage := newTestStorage(t)

	if err := storage.DeleteUsageEvent("u-99"); err == nil {
		t.Error("expected error deleting a missing usage event")
	}
	if err := storage.DeleteBill("b-99"); err == nil {
		t.Error("expected error deleting a missing bill")
	}
}

func TestStoragePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(false)

	storage, err := NewStorage(dir, logger)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := storage.AddUsageEvent(UsageEvent{Liters: 33, Date: "2024-06-01"}); err != nil {
		t.Fatal(err)
	}
	storage.Close()

	reopened, err := NewStorage(dir, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	events, err := reopened.FetchAllUsageEvents()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Liters != 33 {
		t.Errorf("expected the persisted event after reopen, got %+v", events)
	}

	// ID sequence continues instead of restarting
	next, err := reopened.AddUsageEvent(UsageEvent{Liters: 5, Date: "2024-06-02"})
	if err != nil {
		t.Fatal(err)
	}
	if next.ID != "u-2" {
		t.Errorf("expected u-2 after reopen, got %s", next.ID)
	}
}

func TestCacheRoundTripAndExpiry(t *testing.T) {
	cache, err := NewCache(t.TempDir(), NewLogger(false))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	reading := WeatherConditions{TemperatureC: 18.5, PrecipitationMm: 2.0}
	if err := cache.Set("weather_current", reading, time.Hour); err != nil {
		t.Fatal(err)
	}

	var got WeatherConditions
	found, err := cache.Get("weather_current", &got)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected a fresh entry to be found")
	}
	if got.TemperatureC != 18.5 || got.PrecipitationMm != 2.0 {
		t.Errorf("cache round trip altered the value: %+v", got)
	}

	if err := cache.Set("stale", reading, -time.Minute); err != nil {
		t.Fatal(err)
	}
	found, err = cache.Get("stale", &got)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("expired entry must not be returned")
	}

	if err := cache.Clear(); err != nil {
		t.Fatal(err)
	}
	found, _ = cache.Get("weather_current", &got)
	if found {
		t.Error("cleared cache must be empty")
	}
}
