/*
dto.go - Request/response data structures for the panchang API

PURPOSE:
  Defines the JSON shapes exchanged with clients, decoupled from the
  internal calendar and festival types. Conversion helpers live next to
  the structs they build.

CONVENTIONS:
  - Dates as "YYYY-MM-DD", event times as zero-padded "HH:MM" local
  - Absent rise/set events serialize as "" rather than null
  - Month is the 1-12 calendar number on the wire, time.Month internally

SEE ALSO:
  - handlers.go: Where these are read and written
  - calendar/assembler.go: The DayRecord these views wrap
*/
package api

import (
	"time"

	"github.com/supernova/panchang-engine/calendar"
	"github.com/supernova/panchang-engine/festival"
)

// =============================================================================
// RESPONSE DTOs
// =============================================================================

// MonthViewDTO is the month screen payload.
type MonthViewDTO struct {
	Year      int                  `json:"year"`
	Month     int                  `json:"month"`
	Region    string               `json:"region"`
	Latitude  float64              `json:"latitude"`
	Longitude float64              `json:"longitude"`
	Timezone  string               `json:"timezone"`
	Days      []calendar.DayRecord `json:"days"`
}

// YearViewDTO is the festival overview payload. Months are keyed by
// their 1-12 number so clients need no month-name parsing.
type YearViewDTO struct {
	Year      int              `json:"year"`
	Region    string           `json:"region"`
	Festivals map[int][]string `json:"festivals"`
}

// FestivalDTO is one catalog entry.
type FestivalDTO struct {
	ID     string `json:"id"`
	Region string `json:"region"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Name   string `json:"name"`
	Year   *int   `json:"year,omitempty"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// REQUEST DTOs
// =============================================================================

// CreateFestivalRequest adds or replaces a catalog entry.
type CreateFestivalRequest struct {
	ID     string `json:"id"`
	Region string `json:"region"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Name   string `json:"name"`
	Year   *int   `json:"year,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toMonthViewDTO(v *calendar.MonthView) MonthViewDTO {
	return MonthViewDTO{
		Year:      v.Year,
		Month:     int(v.Month),
		Region:    v.Region,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
		Timezone:  v.Timezone,
		Days:      v.Days,
	}
}

func toYearViewDTO(v *calendar.YearView) YearViewDTO {
	byNumber := make(map[int][]string, len(v.FestivalsByMonth))
	for m, names := range v.FestivalsByMonth {
		byNumber[int(m)] = names
	}
	return YearViewDTO{Year: v.Year, Region: v.Region, Festivals: byNumber}
}

func toFestivalDTO(f festival.Festival) FestivalDTO {
	return FestivalDTO{
		ID:     f.ID,
		Region: f.Region,
		Month:  int(f.Month),
		Day:    f.Day,
		Name:   f.Name,
		Year:   f.Year,
	}
}

func (r CreateFestivalRequest) toFestival() festival.Festival {
	return festival.Festival{
		ID:     r.ID,
		Region: r.Region,
		Month:  time.Month(r.Month),
		Day:    r.Day,
		Name:   r.Name,
		Year:   r.Year,
	}
}
