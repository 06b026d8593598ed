/*
Package panchang computes the named elements of the Hindu lunar calendar
from ecliptic longitudes.

PURPOSE:
  This package contains the pure derivation core: given the Sun's and the
  Moon's apparent ecliptic longitude at an instant, it names the tithi
  (lunar day), paksha (fortnight), yoga, and karana for that instant.

KEY CONCEPTS IN THIS FILE (elements.go):
  - Tithi:  one of 30 lunar-day divisions, 12 degrees of Moon-Sun
            separation each
  - Paksha: the fortnight - Shukla (waxing, tithi 1-15) or Krishna
            (waning, tithi 16-30)
  - Yoga:   one of 27 divisions of the summed Sun+Moon longitude
  - Karana: one of 60 half-tithi divisions, 7 repeating names plus
            4 fixed ones

DESIGN PRINCIPLES:
  1. Purity: no state, no I/O, no clock. Same inputs, same outputs.
  2. Totality: every finite float64 pair maps to a valid name. Inputs
     are normalized mod 360, so callers may pass raw provider output.
  3. Delegation: sidereal quantities (nakshatra, pada) depend on the
     ayanamsha offset and are NOT derived here - ephemeris providers
     supply them alongside the longitudes.

USAGE:
  name, paksha := panchang.ComputeTithi(260.5, 15.3)
  // name == "Shukla Dashami", paksha == panchang.PakshaShukla

SEE ALSO:
  - errors.go: error taxonomy shared by providers and the calendar facade
  - calendar/assembler.go: assembles these elements into day records
*/
package panchang

import "math"

// =============================================================================
// NAME TABLES
// =============================================================================

// TithiNames lists the 30 tithis in order: the waxing fortnight ending in
// Purnima (full moon, index 14), then the waning fortnight ending in
// Amavasya (new moon, index 29).
var TithiNames = [30]string{
	"Shukla Pratipada", "Shukla Dwitiya", "Shukla Tritiya", "Shukla Chaturthi",
	"Shukla Panchami", "Shukla Shashthi", "Shukla Saptami", "Shukla Ashtami",
	"Shukla Navami", "Shukla Dashami", "Shukla Ekadashi", "Shukla Dwadashi",
	"Shukla Trayodashi", "Shukla Chaturdashi", "Purnima",
	"Krishna Pratipada", "Krishna Dwitiya", "Krishna Tritiya", "Krishna Chaturthi",
	"Krishna Panchami", "Krishna Shashthi", "Krishna Saptami", "Krishna Ashtami",
	"Krishna Navami", "Krishna Dashami", "Krishna Ekadashi", "Krishna Dwadashi",
	"Krishna Trayodashi", "Krishna Chaturdashi", "Amavasya",
}

// YogaNames lists the 27 yogas, Vishkambha through Vaidhriti.
var YogaNames = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva", "Vyaghata",
	"Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyana", "Parigha", "Shiva",
	"Siddha", "Sadhya", "Shubha", "Shukla", "Brahma", "Indra", "Vaidhriti",
}

// KaranaNames is the karana lookup table: the movable 7-name cycle repeated
// 8 times (slots 0-55) followed by the 4 fixed karanas (slots 56-59).
//
// The table deliberately carries a 61st trailing "Bava" inherited from the
// data this engine must stay compatible with. Index computation clamps to
// [0, 59], so the extra entry is never returned. Do not "fix" the table
// without also changing the clamp.
var KaranaNames = [61]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
	"Shakuni", "Chatushpada", "Naga", "Kimstughna",
	"Bava",
}

// NakshatraNames lists the 27 lunar mansions. The calculator itself never
// derives a nakshatra (that requires the sidereal ayanamsha correction,
// which ephemeris providers own), but providers and tests share this table.
var NakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

// =============================================================================
// PAKSHA
// =============================================================================

// Paksha identifies the lunar fortnight.
type Paksha string

const (
	PakshaShukla  Paksha = "Shukla"  // Waxing: tithi indexes 0-14
	PakshaKrishna Paksha = "Krishna" // Waning: tithi indexes 15-29
)

// =============================================================================
// ANGLE HELPERS
// =============================================================================

// NormalizeDegrees maps any finite angle onto [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// elongation returns the Moon-Sun separation in [0, 360).
func elongation(sunDeg, moonDeg float64) float64 {
	return NormalizeDegrees(moonDeg - sunDeg)
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

// CheckLongitudes rejects non-finite longitude inputs. The compute functions
// assume finite inputs; callers sitting on a provider boundary should gate
// raw payload values through this first.
func CheckLongitudes(degs ...float64) error {
	for _, d := range degs {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return &InvalidLongitudeError{Value: d}
		}
	}
	return nil
}

// =============================================================================
// ELEMENT CALCULATORS
// =============================================================================

// TithiIndex returns the 0-based tithi index in [0, 29] for the given
// longitudes. Each tithi spans 12 degrees of elongation; an elongation that
// is an exact multiple of 12 lands on the start of the next tithi (floor
// semantics), so 180.0 exactly is already the Krishna fortnight.
func TithiIndex(sunDeg, moonDeg float64) int {
	return clampIndex(int(math.Floor(elongation(sunDeg, moonDeg)/12)), 29)
}

// ComputeTithi names the tithi and paksha for the given ecliptic longitudes.
// Inputs may be any finite values; they are normalized mod 360.
func ComputeTithi(sunDeg, moonDeg float64) (string, Paksha) {
	idx := TithiIndex(sunDeg, moonDeg)
	paksha := PakshaShukla
	if idx >= 15 {
		paksha = PakshaKrishna
	}
	return TithiNames[idx], paksha
}

// ComputeYoga names the yoga: the summed Sun+Moon longitude divided into
// 27 equal arcs of 13 degrees 20 minutes.
func ComputeYoga(sunDeg, moonDeg float64) string {
	sum := NormalizeDegrees(sunDeg + moonDeg)
	idx := clampIndex(int(math.Floor(sum/(360.0/27.0))), 26)
	return YogaNames[idx]
}

// ComputeKarana names the karana: the half-tithi. The continuous tithi
// (elongation / 12) is doubled, floored, and reduced mod 60 before the
// table lookup.
func ComputeKarana(sunDeg, moonDeg float64) string {
	tithi := elongation(sunDeg, moonDeg) / 12
	idx := int(math.Floor(tithi*2)) % 60
	return KaranaNames[clampIndex(idx, 59)]
}
