package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supernova/panchang-engine/festival"
	"github.com/supernova/panchang-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func intPtr(i int) *int { return &i }

func TestStore_SeedDefaults_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDefaults(ctx))
	require.NoError(t, store.SeedDefaults(ctx))

	all, err := store.ListFestivals(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(festival.Defaults()))
}

func TestStore_FestivalsForMonth_RegionAndRecurrence(t *testing.T) {
	// GIVEN: a recurring festival, a year-pinned one, and one for another region
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveFestival(ctx, festival.Festival{
		ID: "sankranti", Region: festival.RegionAll, Month: time.January, Day: 14, Name: "Makar Sankranti",
	}))
	require.NoError(t, store.SaveFestival(ctx, festival.Festival{
		ID: "eclipse-2025", Region: "north", Month: time.January, Day: 29, Name: "Surya Grahan", Year: intPtr(2025),
	}))
	require.NoError(t, store.SaveFestival(ctx, festival.Festival{
		ID: "pongal", Region: "south", Month: time.January, Day: 15, Name: "Pongal",
	}))

	// WHEN: asking for north / January 2025
	byDay, err := store.FestivalsForMonth(ctx, 2025, time.January, "north")
	require.NoError(t, err)

	// THEN: catch-all and north entries appear; south does not
	assert.Equal(t, []string{"Makar Sankranti"}, byDay[14])
	assert.Equal(t, []string{"Surya Grahan"}, byDay[29])
	assert.Empty(t, byDay[15])

	// The pinned entry vanishes in other years.
	byDay, err = store.FestivalsForMonth(ctx, 2026, time.January, "north")
	require.NoError(t, err)
	assert.Empty(t, byDay[29])
	assert.Equal(t, []string{"Makar Sankranti"}, byDay[14])
}

func TestStore_FestivalsForYear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SeedDefaults(ctx))

	byMonth, err := store.FestivalsForYear(ctx, 2025, "south")
	require.NoError(t, err)

	assert.Contains(t, byMonth[time.January], "Makar Sankranti")
	assert.Contains(t, byMonth[time.January], "Pongal")
	assert.Contains(t, byMonth[time.April], "Puthandu")
	assert.NotContains(t, byMonth[time.April], "Baisakhi") // north only
}

func TestStore_SaveFestival_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	f := festival.Festival{ID: "holi", Region: "north", Month: time.March, Day: 14, Name: "Holi", Year: intPtr(2025)}
	require.NoError(t, store.SaveFestival(ctx, f))

	// Republished with a corrected date for the same year.
	f.Day = 15
	require.NoError(t, store.SaveFestival(ctx, f))

	byDay, err := store.FestivalsForMonth(ctx, 2025, time.March, "north")
	require.NoError(t, err)
	assert.Empty(t, byDay[14])
	assert.Equal(t, []string{"Holi"}, byDay[15])
}

func TestStore_DeleteAndReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SeedDefaults(ctx))

	require.NoError(t, store.DeleteFestival(ctx, "pongal"))
	all, err := store.ListFestivals(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(festival.Defaults())-1)

	require.NoError(t, store.Reset(ctx))
	all, err = store.ListFestivals(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}
