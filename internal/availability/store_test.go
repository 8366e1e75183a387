package availability_test

import (
	"sync"
	"testing"

	"github.com/mauv0809/scrimsync/internal/availability"
	"github.com/mauv0809/scrimsync/internal/database"
	"github.com/mauv0809/scrimsync/internal/weekclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publisherSpy struct {
	mu    sync.Mutex
	calls []string
}

func (p *publisherSpy) PublishAvailabilityUpdated(teamID string, weekID weekclock.WeekID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, teamID+"/"+string(weekID))
}

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (availability.AvailabilityStore, *publisherSpy, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	pub := &publisherSpy{}
	store := availability.New(db, pub)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, pub, teardown
}

func TestGetRecordEmpty(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	record, err := store.GetRecord("team-a", "2026-03")
	require.NoError(t, err)
	assert.Equal(t, "team-a", record.TeamID)
	assert.Empty(t, record.Slots)
	assert.Empty(t, record.Unavailable)
}

func TestSaveSlotUpdateRoundTrip(t *testing.T) {
	store, pub, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "anna", availability.OpAdd))
	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "ben", availability.OpAdd))

	record, err := store.GetRecord("team-a", "2026-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"anna", "ben"}, record.Slots["wed_2000"])
	assert.Len(t, pub.calls, 2)
}

func TestSaveSlotUpdateValidation(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	assert.Error(t, store.SaveSlotUpdate("team-a", "garbage", "wed_2000", "anna", availability.OpAdd))
	assert.Error(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2015", "anna", availability.OpAdd))
	assert.Error(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "anna", availability.Op("steal")))
}

func TestAddIsIdempotent(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "anna", availability.OpAdd))
	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "anna", availability.OpAdd))

	record, err := store.GetRecord("team-a", "2026-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"anna"}, record.Slots["wed_2000"])
}

func TestAvailableAndUnavailableAreMutuallyExclusive(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "anna", availability.OpAdd))
	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "anna", availability.OpMarkUnavailable))

	record, err := store.GetRecord("team-a", "2026-03")
	require.NoError(t, err)
	assert.NotContains(t, record.Slots["wed_2000"], "anna")
	assert.Equal(t, []string{"anna"}, record.Unavailable["wed_2000"])

	// Signing back up clears the opt-out again.
	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "anna", availability.OpAdd))
	record, err = store.GetRecord("team-a", "2026-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"anna"}, record.Slots["wed_2000"])
	assert.NotContains(t, record.Unavailable["wed_2000"], "anna")
}

func TestRemoveDropsEmptySlot(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "anna", availability.OpAdd))
	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "anna", availability.OpRemove))

	record, err := store.GetRecord("team-a", "2026-03")
	require.NoError(t, err)
	assert.NotContains(t, record.Slots, "wed_2000")
}

func TestClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "anna", availability.OpAdd))
	store.Clear()

	record, err := store.GetRecord("team-a", "2026-03")
	require.NoError(t, err)
	assert.Empty(t, record.Slots)
}

func TestUserTouchedWeek(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "wed_2000", "anna", availability.OpAdd))
	require.NoError(t, store.SaveSlotUpdate("team-a", "2026-03", "thu_1900", "ben", availability.OpMarkUnavailable))

	record, err := store.GetRecord("team-a", "2026-03")
	require.NoError(t, err)
	assert.True(t, record.UserTouchedWeek("anna"))
	// Opt-outs count as touching the week too.
	assert.True(t, record.UserTouchedWeek("ben"))
	assert.False(t, record.UserTouchedWeek("cleo"))
}
