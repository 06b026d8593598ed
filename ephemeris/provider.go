/*
Package ephemeris supplies celestial positions and rise/set times to the
panchang engine.

PURPOSE:
  The derivation core (package panchang) is pure; everything it needs from
  the sky arrives through the two provider interfaces defined here. Two
  implementations ship with the engine:

    Local  - deterministic low-precision astronomy, no I/O (local.go,
             riseset.go). Good to roughly a degree for the Moon, which is
             well inside a tithi's 12-degree span for calendar purposes.
    Remote - HTTP client for a hosted ephemeris API (remote.go). Use this
             when arc-minute precision or moonrise/moonset times matter.

PROVIDER CONTRACT:
  - Longitudes are apparent ecliptic longitudes in degrees, [0, 360).
  - Nakshatra and pada are SIDEREAL quantities: the provider applies its
    ayanamsha correction and reports the resulting names/numbers. The core
    never re-derives them.
  - Optional rise/set fields are nil when the event does not occur
    (polar day/night) or the provider cannot compute it.

SEE ALSO:
  - calendar/assembler.go: the only consumer of both interfaces
*/
package ephemeris

import (
	"context"
	"time"
)

// =============================================================================
// PROVIDER INTERFACES
// =============================================================================

// Longitudes is the position snapshot used to derive panchang elements.
type Longitudes struct {
	SunDeg  float64 // Apparent ecliptic longitude of the Sun, degrees
	MoonDeg float64 // Apparent ecliptic longitude of the Moon, degrees

	// Sidereal moon position, ayanamsha already applied by the provider.
	MoonNakshatra string
	MoonPada      int // 1-4
}

// LongitudeProvider returns Sun/Moon positions for an instant.
type LongitudeProvider interface {
	// Longitudes computes positions at the given instant (interpreted in
	// UTC) as seen from the given geographic coordinates.
	Longitudes(ctx context.Context, at time.Time, lat, lon float64) (Longitudes, error)
}

// RiseSet holds one civil day's rise/set events and inauspicious windows.
// Nil times mean the event does not occur or is not available; window
// strings are "HH:MM - HH:MM" in local time, empty when unavailable.
type RiseSet struct {
	Sunrise  *time.Time
	Sunset   *time.Time
	Moonrise *time.Time
	Moonset  *time.Time

	RahuKalam   string
	YamaGanda   string
	GulikaKalam string
}

// RiseSetProvider computes rise/set events for one calendar date.
type RiseSetProvider interface {
	// RiseSet computes events for the civil date (year, month, day) at the
	// given coordinates. Returned times are in loc.
	RiseSet(ctx context.Context, year int, month time.Month, day int, lat, lon float64, loc *time.Location) (RiseSet, error)
}
