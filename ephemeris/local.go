/*
local.go - Deterministic low-precision ephemeris

PURPOSE:
  Computes Sun and Moon ecliptic longitudes without any external service.
  The formulas are the classic truncated series over days since J2000:
  mean longitude plus the dominant periodic term. Accuracy is on the order
  of 0.01 deg for the Sun and better than a degree for the Moon - ample for
  naming 12-degree tithis and 13d20' yogas/nakshatras away from their
  boundaries.

SIDEREAL CORRECTION:
  Nakshatra and pada require sidereal longitude. The Lahiri ayanamsha is
  approximated linearly from its J2000 value at the precession rate; the
  error over +/-50 years from J2000 is a few arc-seconds, irrelevant at
  this precision tier.

SEE ALSO:
  - riseset.go: sunrise/sunset and the inauspicious-window tables
  - remote.go: hosted API alternative with arc-minute precision
*/
package ephemeris

import (
	"context"
	"math"
	"time"

	"github.com/supernova/panchang-engine/panchang"
)

// =============================================================================
// LOCAL PROVIDER
// =============================================================================

// Local computes positions in-process. The zero value is ready to use; it
// implements both LongitudeProvider and RiseSetProvider.
type Local struct{}

// NewLocal returns a local ephemeris provider.
func NewLocal() *Local { return &Local{} }

// j2000 is the J2000.0 epoch: 2000-01-01 12:00:00 UTC.
var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// daysSinceJ2000 returns UTC days since the J2000.0 epoch.
func daysSinceJ2000(t time.Time) float64 {
	return t.UTC().Sub(j2000).Hours() / 24.0
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// sunLongitude returns the Sun's apparent ecliptic longitude in degrees.
// Mean longitude corrected by the equation of center.
func sunLongitude(d float64) float64 {
	meanLon := 280.460 + 0.9856474*d
	meanAnom := radians(357.528 + 0.9856003*d)
	lon := meanLon + 1.915*math.Sin(meanAnom) + 0.020*math.Sin(2*meanAnom)
	return panchang.NormalizeDegrees(lon)
}

// moonLongitude returns the Moon's ecliptic longitude in degrees.
// Mean longitude plus the three largest periodic terms (equation of the
// center, evection, variation).
func moonLongitude(d float64) float64 {
	meanLon := 218.316 + 13.176396*d            // Mean longitude
	meanAnom := radians(134.963 + 13.064993*d)  // Mean anomaly
	meanElong := radians(297.850 + 12.190749*d) // Mean elongation from Sun

	lon := meanLon +
		6.289*math.Sin(meanAnom) + // Equation of the center
		1.274*math.Sin(2*meanElong-meanAnom) + // Evection
		0.658*math.Sin(2*meanElong) // Variation
	return panchang.NormalizeDegrees(lon)
}

// lahiriAyanamsha approximates the Lahiri sidereal offset in degrees:
// 23.85675 deg at J2000, growing at the general precession rate of
// 50.2888 arcsec per Julian year.
func lahiriAyanamsha(d float64) float64 {
	return 23.85675 + (50.2888/3600.0)*(d/365.25)
}

// Longitudes implements LongitudeProvider. It never fails: the formulas
// are total, so the error is always nil and exists only to satisfy the
// provider contract shared with the remote client.
func (l *Local) Longitudes(_ context.Context, at time.Time, _, _ float64) (Longitudes, error) {
	d := daysSinceJ2000(at)

	sun := sunLongitude(d)
	moon := moonLongitude(d)

	sidereal := panchang.NormalizeDegrees(moon - lahiriAyanamsha(d))
	nakIdx := int(math.Floor(sidereal / (360.0 / 27.0)))
	if nakIdx > 26 {
		nakIdx = 26
	}
	// Pada: each nakshatra splits into 4 quarters of 3d20'.
	pada := int(math.Floor(math.Mod(sidereal, 360.0/27.0)/(360.0/108.0))) + 1
	if pada > 4 {
		pada = 4
	}

	return Longitudes{
		SunDeg:        sun,
		MoonDeg:       moon,
		MoonNakshatra: panchang.NakshatraNames[nakIdx],
		MoonPada:      pada,
	}, nil
}
