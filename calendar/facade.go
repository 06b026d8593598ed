/*
facade.go - Month/year panchang operations and the single-slot caches

PURPOSE:
  The public surface of the engine: month panchang views, year festival
  views, and uncached single-day lookups. Month and year views for the
  CURRENT period are cached in one slot each, expiring at the period's
  natural end; everything else recomputes on every call.

WHY SINGLE-SLOT AND NOT AN LRU:
  The access pattern is "the current month, over and over" - a user
  flipping through a calendar screen. One slot per granularity bounds
  memory at O(1) no matter how many distinct periods get browsed, and
  a key check covers the region switch. Generalizing to an LRU buys
  nothing until multi-period caching becomes a real requirement.

CACHING DISCIPLINE:
  - Hit: slot occupied AND now < slot expiry AND requested key == slot key
  - Only the current period (by the injected clock) is ever stored
  - A failed or cancelled computation never touches the slot
  - Slot value, key, and expiry are swapped as a unit under one mutex

CONCURRENCY:
  Per-day assembly inside a month fans out through an errgroup: the days
  are independent, the first failure cancels the rest, and the final view
  is ordered by date regardless of completion order. Sequential execution
  would produce identical results; the fan-out is purely latency.

SEE ALSO:
  - assembler.go: single-day construction
  - panchang/errors.go: the failure taxonomy surfaced here
*/
package calendar

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/supernova/panchang-engine/ephemeris"
	"github.com/supernova/panchang-engine/festival"
	"github.com/supernova/panchang-engine/panchang"
)

// dayFanOut bounds concurrent provider calls during month assembly.
const dayFanOut = 8

// =============================================================================
// VIEWS
// =============================================================================

// MonthView is one month's panchang for a region at a site.
type MonthView struct {
	Year      int         `json:"year"`
	Month     time.Month  `json:"month"`
	Region    string      `json:"region"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Timezone  string      `json:"timezone"`
	Days      []DayRecord `json:"days"`
}

// YearView is a year's festival names grouped by month.
type YearView struct {
	Year             int                     `json:"year"`
	Region           string                  `json:"region"`
	FestivalsByMonth map[time.Month][]string `json:"festivals_by_month"`
}

// =============================================================================
// SERVICE
// =============================================================================

// Deps carries the service's collaborators. Latitude, longitude, and
// timezone are deployment-level: one Service serves one site.
type Deps struct {
	Longitudes ephemeris.LongitudeProvider
	RiseSet    ephemeris.RiseSetProvider
	Festivals  festival.Provider

	Latitude  float64
	Longitude float64
	Location  *time.Location

	// Now overrides the clock used for cache currency decisions.
	// Nil means time.Now. Tests inject a fixed clock here.
	Now func() time.Time
}

type monthKey struct {
	Year   int
	Month  time.Month
	Region string
}

type yearKey struct {
	Year   int
	Region string
}

type monthSlot struct {
	key     monthKey
	view    *MonthView
	expires time.Time // start of the next month; hit requires now < expires
}

type yearSlot struct {
	key     yearKey
	view    *YearView
	expires time.Time
}

// Service exposes the panchang operations. Safe for concurrent use.
type Service struct {
	assembler *Assembler
	festivals festival.Provider

	lat, lon float64
	loc      *time.Location
	now      func() time.Time

	mu    sync.Mutex
	month *monthSlot
	year  *yearSlot
}

// NewService wires a calendar service from its dependencies.
func NewService(d Deps) *Service {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		assembler: NewAssembler(d.Longitudes, d.RiseSet),
		festivals: d.Festivals,
		lat:       d.Latitude,
		lon:       d.Longitude,
		loc:       loc,
		now:       now,
	}
}

// =============================================================================
// MONTH OPERATION
// =============================================================================

// MonthPanchang returns the panchang view for one month. The current
// month (per the service clock) is cached until it ends; other months
// recompute every call. Either every day of the month is built or the
// call fails - no partial views escape, and failures never populate
// the cache.
func (s *Service) MonthPanchang(ctx context.Context, year int, month time.Month, region string) (*MonthView, error) {
	key := monthKey{Year: year, Month: month, Region: region}

	s.mu.Lock()
	if view, ok := s.cachedMonthLocked(key); ok {
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()

	view, err := s.buildMonth(ctx, year, month, region)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.storeMonthLocked(key, view)
	s.mu.Unlock()
	return view, nil
}

func (s *Service) cachedMonthLocked(key monthKey) (*MonthView, bool) {
	slot := s.month
	if slot == nil || slot.key != key || !s.now().Before(slot.expires) {
		return nil, false
	}
	// Fail closed on a slot that disagrees with its own key: drop it and
	// let the caller recompute. This is a should-never-happen guard.
	if slot.view.Year != key.Year || slot.view.Month != key.Month || slot.view.Region != key.Region {
		s.month = nil
		return nil, false
	}
	return slot.view, true
}

func (s *Service) storeMonthLocked(key monthKey, view *MonthView) {
	now := s.now().In(s.loc)
	if now.Year() != key.Year || now.Month() != key.Month {
		return // Only the current month is worth a slot.
	}
	s.month = &monthSlot{
		key:     key,
		view:    view,
		expires: time.Date(key.Year, key.Month+1, 1, 0, 0, 0, 0, s.loc),
	}
}

func (s *Service) buildMonth(ctx context.Context, year int, month time.Month, region string) (*MonthView, error) {
	byDay, err := s.festivals.FestivalsForMonth(ctx, year, month, region)
	if err != nil {
		return nil, &panchang.ProviderError{
			Provider: "festival",
			Date:     time.Date(year, month, 1, 0, 0, 0, 0, s.loc),
			Err:      err,
		}
	}

	n := daysInMonth(year, month)
	days := make([]DayRecord, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dayFanOut)
	for i := 0; i < n; i++ {
		day := i + 1
		idx := i
		g.Go(func() error {
			rec, err := s.assembler.BuildDay(gctx, year, month, day, s.lat, s.lon, s.loc, byDay[day])
			if err != nil {
				return err
			}
			days[idx] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &MonthView{
		Year:      year,
		Month:     month,
		Region:    region,
		Latitude:  s.lat,
		Longitude: s.lon,
		Timezone:  s.loc.String(),
		Days:      days,
	}, nil
}

// =============================================================================
// YEAR OPERATION
// =============================================================================

// YearFestivals returns the festival names for a year grouped by month,
// with the same single-slot discipline as MonthPanchang.
func (s *Service) YearFestivals(ctx context.Context, year int, region string) (*YearView, error) {
	key := yearKey{Year: year, Region: region}

	s.mu.Lock()
	if slot := s.year; slot != nil && slot.key == key && s.now().Before(slot.expires) {
		view := slot.view
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()

	byMonth, err := s.festivals.FestivalsForYear(ctx, year, region)
	if err != nil {
		return nil, &panchang.ProviderError{
			Provider: "festival",
			Date:     time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc),
			Err:      err,
		}
	}
	view := &YearView{Year: year, Region: region, FestivalsByMonth: byMonth}

	s.mu.Lock()
	if s.now().In(s.loc).Year() == year {
		s.year = &yearSlot{
			key:     key,
			view:    view,
			expires: time.Date(year+1, time.January, 1, 0, 0, 0, 0, s.loc),
		}
	}
	s.mu.Unlock()
	return view, nil
}

// =============================================================================
// DAY OPERATION
// =============================================================================

// DayPanchang builds a single day's record. Never cached: the day screen
// already sits behind the month cache in the common path, and a lone day
// is two provider calls.
func (s *Service) DayPanchang(ctx context.Context, year int, month time.Month, day int, region string) (DayRecord, error) {
	byDay, err := s.festivals.FestivalsForMonth(ctx, year, month, region)
	if err != nil {
		return DayRecord{}, &panchang.ProviderError{
			Provider: "festival",
			Date:     time.Date(year, month, day, 0, 0, 0, 0, s.loc),
			Err:      err,
		}
	}
	return s.assembler.BuildDay(ctx, year, month, day, s.lat, s.lon, s.loc, byDay[day])
}
