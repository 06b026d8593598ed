/*
Package festival defines festival lookup for the panchang calendar.

PURPOSE:
  Festivals are an input to the calendar, not a derivation: which names
  attach to which civil day comes from curated data (regional traditions
  differ, and many festivals follow lunar rules settled by publication,
  not computation). This package owns the domain type, the provider
  interface the calendar facade consumes, and a small seed set of
  fixed-date festivals.

REGIONS:
  Region is a free-form key ("all", "north", "south", ...). Stores match a
  requested region against the festival's region OR the catch-all "all".

SEE ALSO:
  - festival/store: in-memory implementation
  - store/sqlite: persistent implementation
*/
package festival

import (
	"context"
	"time"
)

// RegionAll marks festivals observed everywhere.
const RegionAll = "all"

// Festival is one named observance on a civil date.
type Festival struct {
	ID     string
	Region string     // RegionAll or a specific tradition key
	Month  time.Month
	Day    int
	Name   string
	Year   *int // nil = recurs every year; set = that year only
}

// Occurs reports whether the festival falls in the given year.
func (f Festival) Occurs(year int) bool {
	return f.Year == nil || *f.Year == year
}

// Provider supplies festival names to the calendar facade.
type Provider interface {
	// FestivalsForMonth returns day-of-month -> names for one month,
	// already filtered to the region (region-specific plus RegionAll).
	FestivalsForMonth(ctx context.Context, year int, month time.Month, region string) (map[int][]string, error)

	// FestivalsForYear returns month -> names for a whole year.
	FestivalsForYear(ctx context.Context, year int, region string) (map[time.Month][]string, error)
}

// Defaults returns the built-in seed set: solar-calendar festivals whose
// civil date is fixed. Lunar festivals move year to year and belong in a
// curated store, not in code.
func Defaults() []Festival {
	return []Festival{
		{ID: "makar-sankranti", Region: RegionAll, Month: time.January, Day: 14, Name: "Makar Sankranti"},
		{ID: "pongal", Region: "south", Month: time.January, Day: 15, Name: "Pongal"},
		{ID: "baisakhi", Region: "north", Month: time.April, Day: 13, Name: "Baisakhi"},
		{ID: "tamil-new-year", Region: "south", Month: time.April, Day: 14, Name: "Puthandu"},
		{ID: "vishu", Region: "south", Month: time.April, Day: 14, Name: "Vishu"},
	}
}
