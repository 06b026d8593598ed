package calendar_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supernova/panchang-engine/calendar"
	"github.com/supernova/panchang-engine/ephemeris"
	"github.com/supernova/panchang-engine/panchang"
)

// recordingLongitudes remembers the instant it was asked about.
type recordingLongitudes struct {
	askedAt time.Time
	lons    ephemeris.Longitudes
	err     error
}

func (r *recordingLongitudes) Longitudes(_ context.Context, at time.Time, _, _ float64) (ephemeris.Longitudes, error) {
	r.askedAt = at
	return r.lons, r.err
}

func TestBuildDay_AnchorsAtSunrise(t *testing.T) {
	// GIVEN: A day with a 06:12 sunrise
	// WHEN: The day record is built
	// THEN: The ephemeris is sampled at the sunrise instant, in UTC

	lons := &recordingLongitudes{lons: ephemeris.Longitudes{SunDeg: 280, MoonDeg: 100, MoonNakshatra: "Magha", MoonPada: 1}}
	a := calendar.NewAssembler(lons, &fakeRiseSet{})

	ist := time.FixedZone("IST", 5*3600+30*60)
	rec, err := a.BuildDay(context.Background(), 2025, time.January, 15, 12.97, 77.59, ist, nil)
	require.NoError(t, err)

	want := time.Date(2025, time.January, 15, 6, 12, 0, 0, ist).UTC()
	assert.True(t, lons.askedAt.Equal(want), "asked at %v, want %v", lons.askedAt, want)

	assert.Equal(t, "2025-01-15", rec.Date)
	assert.Equal(t, "06:12", rec.Sunrise)
	assert.Equal(t, "18:30", rec.Sunset)
	assert.Equal(t, "Magha", rec.Nakshatra)
	assert.Equal(t, 1, rec.Pada)
	assert.Equal(t, "07:45 - 09:17", rec.RahuKalam)
}

func TestBuildDay_PolarDayFallsBackToMidnight(t *testing.T) {
	// Above the polar circles the sun may never rise; the ephemeris is
	// then sampled at local midnight and the event fields stay empty.

	lons := &recordingLongitudes{lons: ephemeris.Longitudes{SunDeg: 90, MoonDeg: 200}}
	a := calendar.NewAssembler(lons, &fakeRiseSet{noSun: true})

	rec, err := a.BuildDay(context.Background(), 2025, time.June, 21, 80, 20, time.UTC, nil)
	require.NoError(t, err)

	assert.True(t, lons.askedAt.Equal(time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, rec.Sunrise)
	assert.Empty(t, rec.Sunset)
	assert.Empty(t, rec.RahuKalam)
	assert.NotEmpty(t, rec.Tithi)
}

func TestBuildDay_RejectsNonFiniteLongitudes(t *testing.T) {
	lons := &recordingLongitudes{lons: ephemeris.Longitudes{SunDeg: math.NaN(), MoonDeg: 100}}
	a := calendar.NewAssembler(lons, &fakeRiseSet{})

	_, err := a.BuildDay(context.Background(), 2025, time.January, 15, 12.97, 77.59, time.UTC, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, panchang.ErrNonFiniteLongitude)

	var perr *panchang.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "longitude", perr.Provider)
}

func TestBuildDay_CopiesFestivalSlice(t *testing.T) {
	lons := &recordingLongitudes{lons: ephemeris.Longitudes{SunDeg: 280, MoonDeg: 100}}
	a := calendar.NewAssembler(lons, &fakeRiseSet{})

	input := []string{"Makar Sankranti"}
	rec, err := a.BuildDay(context.Background(), 2025, time.January, 14, 12.97, 77.59, time.UTC, input)
	require.NoError(t, err)

	input[0] = "mutated"
	assert.Equal(t, []string{"Makar Sankranti"}, rec.Festivals)
}

func TestBuildDay_NilFestivalsBecomesEmptySlice(t *testing.T) {
	lons := &recordingLongitudes{lons: ephemeris.Longitudes{SunDeg: 280, MoonDeg: 100}}
	a := calendar.NewAssembler(lons, &fakeRiseSet{})

	rec, err := a.BuildDay(context.Background(), 2025, time.January, 16, 12.97, 77.59, time.UTC, nil)
	require.NoError(t, err)
	assert.NotNil(t, rec.Festivals)
	assert.Empty(t, rec.Festivals)
}
