package panchang_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supernova/panchang-engine/panchang"
)

// =============================================================================
// TITHI
// =============================================================================

func TestComputeTithi_NewMoonStart(t *testing.T) {
	// GIVEN: Sun and Moon at the same longitude (new moon just passed)
	// THEN: First tithi of the waxing fortnight

	name, paksha := panchang.ComputeTithi(0, 0)
	assert.Equal(t, "Shukla Pratipada", name)
	assert.Equal(t, panchang.PakshaShukla, paksha)
}

func TestComputeTithi_FullMoonBoundary(t *testing.T) {
	// An elongation just under 180 is still Purnima (waxing side);
	// exactly 180.0 floors into index 15 and flips to Krishna.

	name, paksha := panchang.ComputeTithi(0, 179.9)
	assert.Equal(t, "Purnima", name)
	assert.Equal(t, panchang.PakshaShukla, paksha)

	name, paksha = panchang.ComputeTithi(0, 180.0)
	assert.Equal(t, "Krishna Pratipada", name)
	assert.Equal(t, panchang.PakshaKrishna, paksha)
}

func TestComputeTithi_TraceThrough(t *testing.T) {
	// sun=260.5, moon=15.3:
	//   diff = (15.3 - 260.5 + 360) mod 360 = 114.8
	//   index = floor(114.8 / 12) = 9

	name, paksha := panchang.ComputeTithi(260.5, 15.3)
	assert.Equal(t, "Shukla Dashami", name)
	assert.Equal(t, panchang.PakshaShukla, paksha)
}

func TestComputeTithi_PeriodicMod360(t *testing.T) {
	// Longitude is periodic: adding whole turns to either input must not
	// change the result, including negative inputs.

	cases := []struct{ sun, moon float64 }{
		{0, 0}, {10, 100}, {260.5, 15.3}, {359.99, 0.01}, {123.4, 321.9},
	}
	for _, c := range cases {
		baseName, basePaksha := panchang.ComputeTithi(c.sun, c.moon)
		for _, k := range []float64{-720, -360, 360, 1080} {
			name, paksha := panchang.ComputeTithi(c.sun+k, c.moon+k*3)
			assert.Equal(t, baseName, name, "sun=%v moon=%v k=%v", c.sun, c.moon, k)
			assert.Equal(t, basePaksha, paksha)
		}
	}
}

func TestComputeTithi_TotalOverSweep(t *testing.T) {
	// Sweep the input space: every result must be one of the 30 fixed
	// names with a paksha consistent with the index threshold.

	valid := make(map[string]int, 30)
	for i, n := range panchang.TithiNames {
		valid[n] = i
	}

	for sun := -360.0; sun < 720; sun += 37.7 {
		for moon := -360.0; moon < 720; moon += 11.3 {
			name, paksha := panchang.ComputeTithi(sun, moon)
			idx, ok := valid[name]
			require.True(t, ok, "unknown tithi name %q", name)
			if idx < 15 {
				assert.Equal(t, panchang.PakshaShukla, paksha)
			} else {
				assert.Equal(t, panchang.PakshaKrishna, paksha)
			}
		}
	}
}

// =============================================================================
// YOGA
// =============================================================================

func TestComputeYoga_FirstArc(t *testing.T) {
	assert.Equal(t, "Vishkambha", panchang.ComputeYoga(0, 0))
}

func TestComputeYoga_TraceThrough(t *testing.T) {
	// sum = 260.5 + 15.3 = 275.8
	// index = floor(275.8 / 13.333...) = 20 -> 21st name in the table

	assert.Equal(t, panchang.YogaNames[20], panchang.ComputeYoga(260.5, 15.3))
	assert.Equal(t, "Siddha", panchang.ComputeYoga(260.5, 15.3))
}

func TestComputeYoga_LastArc(t *testing.T) {
	// 359.9 sits in the final 13d20' arc.
	assert.Equal(t, "Vaidhriti", panchang.ComputeYoga(359.9, 0))
}

func TestComputeYoga_RangeOverSweep(t *testing.T) {
	valid := make(map[string]bool, 27)
	for _, n := range panchang.YogaNames {
		valid[n] = true
	}
	for sun := -180.0; sun < 540; sun += 13.9 {
		for moon := -180.0; moon < 540; moon += 29.1 {
			name := panchang.ComputeYoga(sun, moon)
			require.True(t, valid[name], "unknown yoga name %q", name)
		}
	}
}

// =============================================================================
// KARANA
// =============================================================================

func TestComputeKarana_TraceThrough(t *testing.T) {
	// diff=72 -> tithi=6.0 -> index = floor(12) = 12.
	// Slot 12 of the table is the 6th name of the repeating cycle
	// (12 mod 7 = 5, zero-based), which is Vanija.

	assert.Equal(t, panchang.KaranaNames[12], panchang.ComputeKarana(0, 72))
	assert.Equal(t, "Vanija", panchang.ComputeKarana(0, 72))
}

func TestComputeKarana_EndToEndScenario(t *testing.T) {
	// sun=260.5, moon=15.3 -> diff=114.8 -> tithi=9.5667
	// index = floor(19.133) = 19; slot 19 is again Vanija (19 mod 7 = 5).

	assert.Equal(t, panchang.KaranaNames[19], panchang.ComputeKarana(260.5, 15.3))
	assert.Equal(t, "Vanija", panchang.ComputeKarana(260.5, 15.3))
}

func TestComputeKarana_FixedKaranas(t *testing.T) {
	// Slots 56-59 are the fixed karanas at the dark end of the month.
	// tithi*2 = 57 -> diff = 342 degrees.

	assert.Equal(t, "Bava", panchang.ComputeKarana(0, 0))          // slot 0
	assert.Equal(t, "Shakuni", panchang.ComputeKarana(0, 336))     // slot 56
	assert.Equal(t, "Chatushpada", panchang.ComputeKarana(0, 342)) // slot 57
	assert.Equal(t, "Naga", panchang.ComputeKarana(0, 348))        // slot 58
	assert.Equal(t, "Kimstughna", panchang.ComputeKarana(0, 354))  // slot 59
}

func TestComputeKarana_TableShape(t *testing.T) {
	// The movable cycle repeats 8 times (slots 0-55) followed by the four
	// fixed karanas. The trailing 61st entry is retained for table
	// compatibility but must be unreachable.

	cycle := []string{"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti"}
	for i := 0; i < 56; i++ {
		assert.Equal(t, cycle[i%7], panchang.KaranaNames[i], "slot %d", i)
	}
	assert.Equal(t, "Shakuni", panchang.KaranaNames[56])
	assert.Equal(t, "Kimstughna", panchang.KaranaNames[59])
	assert.Equal(t, "Bava", panchang.KaranaNames[60])
}

func TestComputeKarana_RangeOverSweep(t *testing.T) {
	valid := make(map[string]bool)
	for _, n := range panchang.KaranaNames[:60] {
		valid[n] = true
	}
	for diff := -360.0; diff < 720; diff += 1.7 {
		name := panchang.ComputeKarana(0, diff)
		require.True(t, valid[name], "unknown karana %q at diff=%v", name, diff)
	}
}

// =============================================================================
// INPUT VALIDATION
// =============================================================================

func TestCheckLongitudes(t *testing.T) {
	assert.NoError(t, panchang.CheckLongitudes(0, 359.9, -720.5))

	err := panchang.CheckLongitudes(12.3, math.NaN())
	require.Error(t, err)
	assert.ErrorIs(t, err, panchang.ErrNonFiniteLongitude)

	var invErr *panchang.InvalidLongitudeError
	err = panchang.CheckLongitudes(math.Inf(1))
	require.ErrorAs(t, err, &invErr)
	assert.True(t, math.IsInf(invErr.Value, 1))
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 0.0, panchang.NormalizeDegrees(0))
	assert.Equal(t, 0.0, panchang.NormalizeDegrees(720))
	assert.InDelta(t, 359.5, panchang.NormalizeDegrees(-0.5), 1e-9)
	assert.InDelta(t, 114.8, panchang.NormalizeDegrees(15.3-260.5), 1e-9)
}
