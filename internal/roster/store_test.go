package roster_test

import (
	"testing"

	"github.com/mauv0809/scrimsync/internal/database"
	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (roster.RosterStore, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := roster.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, teardown
}

func TestUpsertAndGetTeam(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	team := roster.Team{ID: "team-a", Name: "Alpha", HideRosterNames: true}
	require.NoError(t, store.UpsertTeam(team))

	got, err := store.GetTeam("team-a")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)
	assert.True(t, got.HideRosterNames)
	assert.False(t, got.HideFromComparison)

	// Upsert again with new values overwrites in place.
	team.Name = "Alpha Squad"
	team.HideFromComparison = true
	require.NoError(t, store.UpsertTeam(team))

	got, err = store.GetTeam("team-a")
	require.NoError(t, err)
	assert.Equal(t, "Alpha Squad", got.Name)
	assert.True(t, got.HideFromComparison)

	teams, err := store.GetAllTeams()
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}

func TestGetTeamNotFound(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetTeam("ghost")
	assert.True(t, faults.IsNotFound(err))
}

func TestRosterMembership(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertTeam(roster.Team{ID: "team-a", Name: "Alpha"}))
	require.NoError(t, store.AddMember("team-a", "u1", "Anna"))
	require.NoError(t, store.AddMember("team-a", "u2", "Ben"))

	members, err := store.GetRoster("team-a")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Anna", members[0].Name)
	assert.Equal(t, "Ben", members[1].Name)

	// Re-adding refreshes the name rather than duplicating the row.
	require.NoError(t, store.AddMember("team-a", "u1", "Annika"))
	members, err = store.GetRoster("team-a")
	require.NoError(t, err)
	require.Len(t, members, 2)

	require.NoError(t, store.RemoveMember("team-a", "u2"))
	members, err = store.GetRoster("team-a")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "u1", members[0].UserID)
}

func TestGetRosterEmptyTeam(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertTeam(roster.Team{ID: "team-a", Name: "Alpha"}))

	members, err := store.GetRoster("team-a")
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestTeamsForUser(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertTeam(roster.Team{ID: "team-a", Name: "Alpha"}))
	require.NoError(t, store.UpsertTeam(roster.Team{ID: "team-b", Name: "Bravo"}))
	require.NoError(t, store.AddMember("team-a", "u1", "Anna"))
	require.NoError(t, store.AddMember("team-b", "u1", "Anna"))
	require.NoError(t, store.AddMember("team-b", "u2", "Ben"))

	teams, err := store.TeamsForUser("u1")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "team-a", teams[0].ID)
	assert.Equal(t, "team-b", teams[1].ID)

	teams, err = store.TeamsForUser("u2")
	require.NoError(t, err)
	require.Len(t, teams, 1)
}

func TestClearWipesTeamsAndRosters(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertTeam(roster.Team{ID: "team-a", Name: "Alpha"}))
	require.NoError(t, store.AddMember("team-a", "u1", "Anna"))

	store.Clear()

	teams, err := store.GetAllTeams()
	require.NoError(t, err)
	assert.Empty(t, teams)
}
