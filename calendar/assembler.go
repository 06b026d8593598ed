/*
Package calendar assembles panchang day records and serves month/year
views with single-slot caching.

PURPOSE:
  This package is the seam between the pure derivation core (package
  panchang) and the external collaborators (ephemeris and festival
  providers). It anchors each civil day at local sunrise, pulls the
  Sun/Moon longitudes for that instant, names the day's elements, and
  merges in the festival catalog.

KEY CONCEPTS IN THIS FILE (assembler.go):
  - DayRecord: one civil day's fully derived panchang, immutable once
    built, owned by the caller
  - Assembler: stateless day builder over the two ephemeris providers

ANCHORING:
  A panchang day is reckoned from sunrise, not midnight: the tithi "of"
  a day is whichever tithi is running when the sun rises. When sunrise
  is unavailable (polar latitudes, degraded provider) the record is
  still built, anchored at local midnight.

SEE ALSO:
  - facade.go: month/year assembly, caching, the public operations
*/
package calendar

import (
	"context"
	"time"

	"github.com/supernova/panchang-engine/ephemeris"
	"github.com/supernova/panchang-engine/panchang"
)

// =============================================================================
// DAY RECORD
// =============================================================================

// DayRecord is one civil day's derived panchang. All time-of-day fields
// are zero-padded "HH:MM" in local time; absent events are empty strings,
// never nulls, so the presentation layer needs no nil checks.
type DayRecord struct {
	Date string `json:"date"` // YYYY-MM-DD

	Tithi     string `json:"tithi"`
	Paksha    string `json:"paksha"`
	Nakshatra string `json:"nakshatra"`
	Pada      int    `json:"pada"`
	Yoga      string `json:"yoga"`
	Karana    string `json:"karana"`

	Sunrise  string `json:"sunrise"`
	Sunset   string `json:"sunset"`
	Moonrise string `json:"moonrise"`
	Moonset  string `json:"moonset"`

	RahuKalam   string `json:"rahu_kalam"`
	YamaGanda   string `json:"yama_ganda"`
	GulikaKalam string `json:"gulika_kalam"`

	Festivals []string `json:"festivals"`
}

// =============================================================================
// ASSEMBLER
// =============================================================================

// Assembler builds day records from the two ephemeris providers. It is
// stateless and safe for concurrent use; caching happens one level up.
type Assembler struct {
	longitudes ephemeris.LongitudeProvider
	riseSet    ephemeris.RiseSetProvider
}

// NewAssembler creates a day assembler.
func NewAssembler(longitudes ephemeris.LongitudeProvider, riseSet ephemeris.RiseSetProvider) *Assembler {
	return &Assembler{longitudes: longitudes, riseSet: riseSet}
}

// BuildDay produces the panchang record for one civil date. festivals is
// the pre-filtered name list for this exact day (may be nil).
//
// A provider failure is a hard failure for the day; a present-but-empty
// rise/set result merely degrades the anchor to local midnight.
func (a *Assembler) BuildDay(ctx context.Context, year int, month time.Month, day int, lat, lon float64, loc *time.Location, festivals []string) (DayRecord, error) {
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)

	rs, err := a.riseSet.RiseSet(ctx, year, month, day, lat, lon, loc)
	if err != nil {
		return DayRecord{}, wrapProvider("riseset", date, err)
	}

	// Anchor at sunrise; fall back to midnight when the sun never rises.
	anchor := date
	if rs.Sunrise != nil {
		anchor = *rs.Sunrise
	}

	pos, err := a.longitudes.Longitudes(ctx, anchor.UTC(), lat, lon)
	if err != nil {
		return DayRecord{}, wrapProvider("longitude", date, err)
	}
	if err := panchang.CheckLongitudes(pos.SunDeg, pos.MoonDeg); err != nil {
		return DayRecord{}, wrapProvider("longitude", date, err)
	}

	tithi, paksha := panchang.ComputeTithi(pos.SunDeg, pos.MoonDeg)

	rec := DayRecord{
		Date:        date.Format("2006-01-02"),
		Tithi:       tithi,
		Paksha:      string(paksha),
		Nakshatra:   pos.MoonNakshatra,
		Pada:        pos.MoonPada,
		Yoga:        panchang.ComputeYoga(pos.SunDeg, pos.MoonDeg),
		Karana:      panchang.ComputeKarana(pos.SunDeg, pos.MoonDeg),
		Sunrise:     formatEvent(rs.Sunrise),
		Sunset:      formatEvent(rs.Sunset),
		Moonrise:    formatEvent(rs.Moonrise),
		Moonset:     formatEvent(rs.Moonset),
		RahuKalam:   rs.RahuKalam,
		YamaGanda:   rs.YamaGanda,
		GulikaKalam: rs.GulikaKalam,
		Festivals:   append([]string(nil), festivals...),
	}
	if rec.Festivals == nil {
		rec.Festivals = []string{}
	}
	return rec, nil
}

// formatEvent renders an optional event time as zero-padded HH:MM local,
// or "" when absent.
func formatEvent(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}

func wrapProvider(provider string, date time.Time, err error) error {
	// Avoid double-wrapping errors that already carry provider context.
	if panchang.IsUpstream(err) {
		return err
	}
	return &panchang.ProviderError{Provider: provider, Date: date, Err: err}
}

// daysInMonth returns the number of civil days in the month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
