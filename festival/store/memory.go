// Package store provides festival.Provider implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/supernova/panchang-engine/festival"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	festivals map[string]festival.Festival // by ID
}

func NewMemory() *Memory {
	return &Memory{festivals: make(map[string]festival.Festival)}
}

// NewMemoryWithDefaults returns a memory store pre-seeded with the
// built-in fixed-date festivals.
func NewMemoryWithDefaults() *Memory {
	m := NewMemory()
	for _, f := range festival.Defaults() {
		m.festivals[f.ID] = f
	}
	return m
}

// Save inserts or replaces a festival by ID.
func (m *Memory) Save(_ context.Context, f festival.Festival) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.festivals[f.ID] = f
	return nil
}

// Delete removes a festival. Deleting an unknown ID is a no-op.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.festivals, id)
	return nil
}

// List returns all festivals for a region, ordered by month then day.
func (m *Memory) List(_ context.Context, region string) ([]festival.Festival, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []festival.Festival
	for _, f := range m.festivals {
		if f.Region == region || f.Region == festival.RegionAll || region == "" {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// FestivalsForMonth implements festival.Provider.
func (m *Memory) FestivalsForMonth(_ context.Context, year int, month time.Month, region string) (map[int][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byDay := make(map[int][]string)
	for _, f := range m.matchLocked(region) {
		if f.Month == month && f.Occurs(year) {
			byDay[f.Day] = append(byDay[f.Day], f.Name)
		}
	}
	for _, names := range byDay {
		sort.Strings(names)
	}
	return byDay, nil
}

// FestivalsForYear implements festival.Provider.
func (m *Memory) FestivalsForYear(_ context.Context, year int, region string) (map[time.Month][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byMonth := make(map[time.Month][]string)
	for _, f := range m.matchLocked(region) {
		if f.Occurs(year) {
			byMonth[f.Month] = append(byMonth[f.Month], f.Name)
		}
	}
	for _, names := range byMonth {
		sort.Strings(names)
	}
	return byMonth, nil
}

func (m *Memory) matchLocked(region string) []festival.Festival {
	var out []festival.Festival
	for _, f := range m.festivals {
		if f.Region == region || f.Region == festival.RegionAll {
			out = append(out, f)
		}
	}
	return out
}
