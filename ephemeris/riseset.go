/*
riseset.go - Sunrise/sunset and the inauspicious daylight windows

PURPOSE:
  Implements RiseSetProvider for the Local ephemeris using the standard
  sunrise equation (Almanac for Computers flavor) at the official zenith
  of 90.833 degrees. Inside polar day/night the events do not occur and
  the corresponding fields stay nil - callers render those as empty.

INAUSPICIOUS WINDOWS:
  Rahu Kalam, Yama Ganda, and Gulika Kalam each occupy one eighth of the
  daylight span; which eighth depends only on the weekday. The tables
  below are the classical assignments (1-based segment from sunrise).

MOONRISE/MOONSET:
  Not computed locally - lunar rise times need iterative parallax-aware
  solutions well beyond this precision tier. The fields stay nil; the
  Remote provider fills them when configured.
*/
package ephemeris

import (
	"context"
	"fmt"
	"math"
	"time"
)

// officialZenith is the solar zenith angle for rise/set, accounting for
// refraction and the solar disc radius.
const officialZenith = 90.833

// =============================================================================
// SUNRISE EQUATION
// =============================================================================

// solarEvent computes the UTC hour [0,24) of sunrise (rising=true) or
// sunset for the given civil date. Returns ok=false when the Sun never
// crosses the horizon that day.
func solarEvent(year int, month time.Month, day int, lat, lon float64, rising bool) (float64, bool) {
	n := float64(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).YearDay())
	lngHour := lon / 15

	var t float64
	if rising {
		t = n + (6-lngHour)/24
	} else {
		t = n + (18-lngHour)/24
	}

	// Sun's mean anomaly and true longitude.
	m := 0.9856*t - 3.289
	l := m + 1.916*math.Sin(radians(m)) + 0.020*math.Sin(radians(2*m)) + 282.634
	l = math.Mod(l+360, 360)

	// Right ascension, pulled into the same quadrant as L.
	ra := math.Atan(0.91764*math.Tan(radians(l))) * 180 / math.Pi
	ra = math.Mod(ra+360, 360)
	lQuadrant := math.Floor(l/90) * 90
	raQuadrant := math.Floor(ra/90) * 90
	ra = (ra + (lQuadrant - raQuadrant)) / 15

	// Declination.
	sinDec := 0.39782 * math.Sin(radians(l))
	cosDec := math.Cos(math.Asin(sinDec))

	// Local hour angle.
	cosH := (math.Cos(radians(officialZenith)) - sinDec*math.Sin(radians(lat))) /
		(cosDec * math.Cos(radians(lat)))
	if cosH > 1 || cosH < -1 {
		return 0, false // Polar night or polar day
	}

	var h float64
	if rising {
		h = 360 - math.Acos(cosH)*180/math.Pi
	} else {
		h = math.Acos(cosH) * 180 / math.Pi
	}
	h /= 15

	// Local mean time of the event, then back to UTC.
	lmt := h + ra - 0.06571*t - 6.622
	ut := math.Mod(lmt-lngHour+48, 24)
	return ut, true
}

// eventTime converts a UTC event hour into a concrete instant in loc.
func eventTime(year int, month time.Month, day int, utHour float64, loc *time.Location) *time.Time {
	base := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	sec := int64(math.Round(utHour * 3600))
	at := base.Add(time.Duration(sec) * time.Second).In(loc)
	return &at
}

// =============================================================================
// INAUSPICIOUS WINDOW TABLES
// =============================================================================

// Daylight eighth occupied by each window, 1-based from sunrise,
// indexed by time.Weekday (Sunday = 0).
var (
	rahuSegment   = [7]int{8, 2, 7, 5, 6, 4, 3}
	yamaSegment   = [7]int{5, 4, 3, 2, 1, 7, 6}
	gulikaSegment = [7]int{7, 6, 5, 4, 3, 2, 1}
)

// daylightWindow formats the nth eighth of the sunrise-sunset span.
func daylightWindow(sunrise, sunset time.Time, segment int) string {
	eighth := sunset.Sub(sunrise) / 8
	start := sunrise.Add(time.Duration(segment-1) * eighth)
	end := start.Add(eighth)
	return fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04"))
}

// =============================================================================
// PROVIDER IMPLEMENTATION
// =============================================================================

// RiseSet implements RiseSetProvider. Moonrise/moonset are always nil for
// the local provider.
func (l *Local) RiseSet(_ context.Context, year int, month time.Month, day int, lat, lon float64, loc *time.Location) (RiseSet, error) {
	var rs RiseSet

	if ut, ok := solarEvent(year, month, day, lat, lon, true); ok {
		rs.Sunrise = eventTime(year, month, day, ut, loc)
	}
	if ut, ok := solarEvent(year, month, day, lat, lon, false); ok {
		rs.Sunset = eventTime(year, month, day, ut, loc)
	}

	if rs.Sunrise != nil && rs.Sunset != nil && rs.Sunset.After(*rs.Sunrise) {
		weekday := time.Date(year, month, day, 12, 0, 0, 0, loc).Weekday()
		rs.RahuKalam = daylightWindow(*rs.Sunrise, *rs.Sunset, rahuSegment[weekday])
		rs.YamaGanda = daylightWindow(*rs.Sunrise, *rs.Sunset, yamaSegment[weekday])
		rs.GulikaKalam = daylightWindow(*rs.Sunrise, *rs.Sunset, gulikaSegment[weekday])
	}

	return rs, nil
}
