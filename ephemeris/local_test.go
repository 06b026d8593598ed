package ephemeris_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supernova/panchang-engine/ephemeris"
	"github.com/supernova/panchang-engine/panchang"
)

var ist = time.FixedZone("IST", 5*3600+30*60)

// =============================================================================
// LONGITUDES
// =============================================================================

func TestLocal_Longitudes_SunAtEquinox(t *testing.T) {
	// GIVEN: The March 2024 equinox instant
	// THEN: The Sun's ecliptic longitude is near 0 (the first point of Aries)

	local := ephemeris.NewLocal()
	equinox := time.Date(2024, time.March, 20, 3, 6, 0, 0, time.UTC)

	pos, err := local.Longitudes(context.Background(), equinox, 12.97, 77.59)
	require.NoError(t, err)

	// Near zero means within a degree of either side of the wrap point.
	near := pos.SunDeg < 1.0 || pos.SunDeg > 359.0
	assert.True(t, near, "sun longitude at equinox was %v", pos.SunDeg)
}

func TestLocal_Longitudes_SunAtSolstice(t *testing.T) {
	// June solstice: solar longitude near 90.

	local := ephemeris.NewLocal()
	solstice := time.Date(2024, time.June, 20, 20, 51, 0, 0, time.UTC)

	pos, err := local.Longitudes(context.Background(), solstice, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 90, pos.SunDeg, 1.0)
}

func TestLocal_Longitudes_RangesAndSiderealFields(t *testing.T) {
	local := ephemeris.NewLocal()
	names := make(map[string]bool, 27)
	for _, n := range panchang.NakshatraNames {
		names[n] = true
	}

	// Walk a synodic month in 6h steps; every snapshot must be well-formed.
	at := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30*4; i++ {
		pos, err := local.Longitudes(context.Background(), at, 12.97, 77.59)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, pos.SunDeg, 0.0)
		assert.Less(t, pos.SunDeg, 360.0)
		assert.GreaterOrEqual(t, pos.MoonDeg, 0.0)
		assert.Less(t, pos.MoonDeg, 360.0)
		assert.True(t, names[pos.MoonNakshatra], "unknown nakshatra %q", pos.MoonNakshatra)
		assert.GreaterOrEqual(t, pos.MoonPada, 1)
		assert.LessOrEqual(t, pos.MoonPada, 4)

		at = at.Add(6 * time.Hour)
	}
}

func TestLocal_Longitudes_MoonOutrunsSun(t *testing.T) {
	// The Moon gains roughly 12 degrees of elongation per day.

	local := ephemeris.NewLocal()
	day1 := time.Date(2025, time.March, 1, 6, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	p1, err := local.Longitudes(context.Background(), day1, 0, 0)
	require.NoError(t, err)
	p2, err := local.Longitudes(context.Background(), day2, 0, 0)
	require.NoError(t, err)

	e1 := panchang.NormalizeDegrees(p1.MoonDeg - p1.SunDeg)
	e2 := panchang.NormalizeDegrees(p2.MoonDeg - p2.SunDeg)
	gain := panchang.NormalizeDegrees(e2 - e1)
	assert.InDelta(t, 12.2, gain, 2.0)
}

// =============================================================================
// RISE/SET
// =============================================================================

func TestLocal_RiseSet_Tropics(t *testing.T) {
	// GIVEN: Bengaluru (12.97N) on a January day
	// THEN: Sunrise and sunset exist, roughly 6:40 / 18:10 IST, and all
	//       three daylight windows are populated

	local := ephemeris.NewLocal()
	rs, err := local.RiseSet(context.Background(), 2025, time.January, 15, 12.97, 77.59, ist)
	require.NoError(t, err)

	require.NotNil(t, rs.Sunrise)
	require.NotNil(t, rs.Sunset)
	assert.InDelta(t, 6.7, float64(rs.Sunrise.Hour())+float64(rs.Sunrise.Minute())/60, 0.5)
	assert.InDelta(t, 18.1, float64(rs.Sunset.Hour())+float64(rs.Sunset.Minute())/60, 0.5)

	assert.Regexp(t, `^\d{2}:\d{2} - \d{2}:\d{2}$`, rs.RahuKalam)
	assert.Regexp(t, `^\d{2}:\d{2} - \d{2}:\d{2}$`, rs.YamaGanda)
	assert.Regexp(t, `^\d{2}:\d{2} - \d{2}:\d{2}$`, rs.GulikaKalam)

	// Moonrise is out of scope for the local provider.
	assert.Nil(t, rs.Moonrise)
	assert.Nil(t, rs.Moonset)
}

func TestLocal_RiseSet_PolarDay(t *testing.T) {
	// At 80N in late June the Sun never sets; events and windows are absent.

	local := ephemeris.NewLocal()
	rs, err := local.RiseSet(context.Background(), 2025, time.June, 21, 80.0, 15.0, time.UTC)
	require.NoError(t, err)

	assert.Nil(t, rs.Sunrise)
	assert.Nil(t, rs.Sunset)
	assert.Empty(t, rs.RahuKalam)
	assert.Empty(t, rs.YamaGanda)
	assert.Empty(t, rs.GulikaKalam)
}

func TestLocal_RiseSet_WindowsOrdering(t *testing.T) {
	// Rahu Kalam on a Monday is the second eighth of daylight: it must
	// start after sunrise and end before noon-ish for a tropical site.

	local := ephemeris.NewLocal()
	// 2025-01-13 is a Monday.
	rs, err := local.RiseSet(context.Background(), 2025, time.January, 13, 12.97, 77.59, ist)
	require.NoError(t, err)
	require.NotNil(t, rs.Sunrise)

	var startH, startM, endH, endM int
	_, err = fmt.Sscanf(rs.RahuKalam, "%02d:%02d - %02d:%02d", &startH, &startM, &endH, &endM)
	require.NoError(t, err)
	assert.Greater(t, startH*60+startM, rs.Sunrise.Hour()*60+rs.Sunrise.Minute())
	assert.Less(t, startH, 12)
}
