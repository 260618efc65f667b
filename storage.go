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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// recordFile is the on-disk shape of the usage-event and bill collections.
// IDs are store-assigned from the per-collection sequences.
type recordFile struct {
	UsageEvents  []UsageEvent `json:"usage_events"`
	Bills        []Bill       `json:"bills"`
	NextUsageSeq int          `json:"next_usage_seq"`
	NextBillSeq  int          `json:"next_bill_seq"`
}

// Storage is the local record store: usage events, bills, and cache
// entries, all persisted as JSON files under one directory.
type Storage struct {
	basePath string
	filePath string
	cache    *Cache
	mutex    sync.Mutex
	logger   *Logger
}

// NewStorage creates a new storage handler with caching
func NewStorage(basePath string, logger *Logger) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, &StorageError{
			Operation: "create_directory",
			Path:      basePath,
			Err:       err,
		}
	}

	cache, err := NewCache(basePath, logger)
	if err != nil {
		return nil, &StorageError{
			Operation: "initialize_cache",
			Path:      basePath,
			Err:       err,
		}
	}

	logger.Debug("Storage initialized", "path", basePath)

	return &Storage{
		basePath: basePath,
		filePath: filepath.Join(basePath, "records.json"),
		cache:    cache,
		logger:   logger,
	}, nil
}

// AddUsageEvent validates and stores a new usage event, assigning its ID
func (s *Storage) AddUsageEvent(event UsageEvent) (UsageEvent, error) {
	if err := validateUsageEvent(event); err != nil {
		return UsageEvent{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	records, err := s.loadRecords()
	if err != nil {
		return UsageEvent{}, err
	}

	records.NextUsageSeq++
	event.ID = fmt.Sprintf("u-%d", records.NextUsageSeq)
	records.UsageEvents = append(records.UsageEvents, event)

	if err := s.saveRecords(records); err != nil {
		return UsageEvent{}, err
	}

	s.logger.LogStorageOperation("add_usage_event", s.filePath)
	return event, nil
}

// UpdateUsageEvent replaces the stored record with the same ID
func (s *Storage) UpdateUsageEvent(event UsageEvent) error {
	if err := validateUsageEvent(event); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	records, err := s.loadRecords()
	if err != nil {
		return err
	}

	for i := range records.UsageEvents {
		if records.UsageEvents[i].ID == event.ID {
			records.UsageEvents[i] = event
			s.logger.LogStorageOperation("update_usage_event", s.filePath)
			return s.saveRecords(records)
		}
	}

	return &StorageError{
		Operation: "update_usage_event",
		Path:      s.filePath,
		Err:       fmt.Errorf("usage event %q not found", event.ID),
	}
}

// DeleteUsageEvent removes a usage event by ID
func (s *Storage) DeleteUsageEvent(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	records, err := s.loadRecords()
	if err != nil {
		return err
	}

	for i := range records.UsageEvents {
		if records.UsageEvents[i].ID == id {
			records.UsageEvents = append(records.UsageEvents[:i], records.UsageEvents[i+1:]...)
			s.logger.LogStorageOperation("delete_usage_event", s.filePath)
			return s.saveRecords(records)
		}
	}

	return &StorageError{
		Operation: "delete_usage_event",
		Path:      s.filePath,
		Err:       fmt.Errorf("usage event %q not found", id),
	}
}

// FetchAllUsageEvents returns a fresh snapshot of the usage collection
func (s *Storage) FetchAllUsageEvents() ([]UsageEvent, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	records, err := s.loadRecords()
	if err != nil {
		return nil, err
	}

	out := make([]UsageEvent, len(records.UsageEvents))
	copy(out, records.UsageEvents)
	return out, nil
}

// AddBill validates and stores a new bill. A user-supplied ID is kept;
// otherwise the store assigns one.
func (s *Storage) AddBill(bill Bill) (Bill, error) {
	if err := validateBill(bill); err != nil {
		return Bill{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	records, err := s.loadRecords()
	if err != nil {
		return Bill{}, err
	}

	records.NextBillSeq++
	if bill.ID == "" {
		bill.ID = fmt.Sprintf("b-%d", records.NextBillSeq)
	}
	records.Bills = append(records.Bills, bill)

	if err := s.saveRecords(records); err != nil {
		return Bill{}, err
	}

	s.logger.LogStorageOperation("add_bill", s.filePath)
	return bill, nil
}

// DeleteBill removes a bill by ID
func (s *Storage) DeleteBill(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	records, err := s.loadRecords()
	if err != nil {
		return err
	}

	for i := range records.Bills {
		if records.Bills[i].ID == id {
			records.Bills = append(records.Bills[:i], records.Bills[i+1:]...)
			s.logger.LogStorageOperation("delete_bill", s.filePath)
			return s.saveRecords(records)
		}
	}

	return &StorageError{
		Operation: "delete_bill",
		Path:      s.filePath,
		Err:       fmt.Errorf("bill %q not found", id),
	}
}

// FetchAllBills returns a fresh snapshot of the bill collection
func (s *Storage) FetchAllBills() ([]Bill, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	records, err := s.loadRecords()
	if err != nil {
		return nil, err
	}

	out := make([]Bill, len(records.Bills))
	copy(out, records.Bills)
	return out, nil
}

// loadRecords reads the record collections from disk. A missing file is
// the normal empty state, not an error.
func (s *Storage) loadRecords() (*recordFile, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &recordFile{}, nil
		}
		return nil, &StorageError{
			Operation: "read_records",
			Path:      s.filePath,
			Err:       err,
		}
	}

	var records recordFile
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &StorageError{
			Operation: "decode_records",
			Path:      s.filePath,
			Err:       err,
		}
	}

	return &records, nil
}

// saveRecords writes the record collections to disk
func (s *Storage) saveRecords(records *recordFile) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &StorageError{
			Operation: "encode_records",
			Path:      s.filePath,
			Err:       err,
		}
	}

	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return &StorageError{
			Operation: "write_records",
			Path:      s.filePath,
			Err:       err,
		}
	}

	return nil
}

// SaveCache saves data to cache with a TTL (time-to-live)
func (s *Storage) SaveCache(key string, data interface{}, ttl time.Duration) error {
	return s.cache.Set(key, data, ttl)
}

// LoadCache loads data from cache if it exists and hasn't expired
func (s *Storage) LoadCache(key string, target interface{}) (bool, error) {
	return s.cache.Get(key, target)
}

// ClearCache clears all cache entries
func (s *Storage) ClearCache() error {
	return s.cache.Clear()
}

// Close closes all storage resources
func (s *Storage) Close() error {
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}

// validateUsageEvent enforces the usage-event invariants
func validateUsageEvent(event UsageEvent) error {
	if event.Liters <= 0 {
		return &ValidationError{
			Field:   "liters",
			Value:   fmt.Sprintf("%.2f", event.Liters),
			Message: "amount must be positive",
		}
	}
	if _, err := time.Parse("2006-01-02", event.Date); err != nil {
		return &ValidationError{
			Field:   "date",
			Value:   event.Date,
			Message: "date must be YYYY-MM-DD",
		}
	}
	return nil
}

// validateBill enforces the bill invariants
func validateBill(bill Bill) error {
	if bill.Amount <= 0 {
		return &ValidationError{
			Field:   "amount",
			Value:   fmt.Sprintf("%.2f", bill.Amount),
			Message: "amount must be positive",
		}
	}
	if bill.ConsumptionLiters <= 0 {
		return &ValidationError{
			Field:   "consumption_liters",
			Value:   fmt.Sprintf("%.2f", bill.ConsumptionLiters),
			Message: "billing period consumption must be positive",
		}
	}
	if _, err := time.Parse("2006-01-02", bill.Date); err != nil {
		return &ValidationError{
			Field:   "date",
			Value:   bill.Date,
			Message: "date must be YYYY-MM-DD",
		}
	}
	return nil
}
