package matcher_test

import (
	"context"
	"testing"

	"github.com/mauv0809/scrimsync/internal/availability"
	"github.com/mauv0809/scrimsync/internal/matcher"
	"github.com/mauv0809/scrimsync/internal/metrics"
	"github.com/mauv0809/scrimsync/internal/roster"
	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotStub serves fixed availability records keyed by team and week.
type snapshotStub struct {
	records map[string]*availability.Record
}

func (s *snapshotStub) Snapshot(teamID string, weekID weekclock.WeekID) (*availability.Record, error) {
	if record, ok := s.records[teamID+"/"+string(weekID)]; ok {
		return record.Clone(), nil
	}
	return &availability.Record{
		TeamID:      teamID,
		WeekID:      weekID,
		Slots:       map[timeslot.SlotID][]string{},
		Unavailable: map[timeslot.SlotID][]string{},
	}, nil
}

func record(teamID, weekID string, slots map[timeslot.SlotID][]string) *availability.Record {
	return &availability.Record{
		TeamID:      teamID,
		WeekID:      weekclock.WeekID(weekID),
		Slots:       slots,
		Unavailable: map[timeslot.SlotID][]string{},
	}
}

func matcherFixture() (*matcher.Matcher, *snapshotStub, *roster.MockStore, *schedule.MockStore) {
	snapshots := &snapshotStub{records: map[string]*availability.Record{
		"team-a/2026-03": record("team-a", "2026-03", map[timeslot.SlotID][]string{
			"wed_2000": {"a1", "a2", "a3"},
			"thu_1900": {"a1", "a2", "a3", "a4"},
		}),
		"team-b/2026-03": record("team-b", "2026-03", map[timeslot.SlotID][]string{
			"wed_2000": {"b1", "b2", "b3", "b4"},
			"thu_1900": {"b1", "b2", "b3", "b4"},
		}),
	}}
	rosters := roster.NewMock()
	matches := schedule.NewMock()
	m := matcher.New(snapshots, rosters, matches, metrics.NewMock())
	return m, snapshots, rosters, matches
}

func TestRecomputeFindsMatches(t *testing.T) {
	m, _, _, _ := matcherFixture()

	err := m.SetSelection(context.Background(), "team-a", []string{"team-b"}, []weekclock.WeekID{"2026-03"}, matcher.MinFilter{YourTeam: 3, Opponent: 3})
	require.NoError(t, err)

	info := m.GetSlotMatchInfo("2026-03", "wed_2000")
	require.NotNil(t, info)
	assert.True(t, info.HasMatch)
	assert.Equal(t, 3, info.UserCount)
	require.Len(t, info.Matches, 1)
	assert.Equal(t, "team-b", info.Matches[0].TeamID)
	assert.Equal(t, 4, info.Matches[0].AvailableCount)
}

func TestFilterExcludesThinSlots(t *testing.T) {
	m, _, _, _ := matcherFixture()

	// team-a only has 3 in wed_2000, so a 4/4 filter drops that slot.
	err := m.SetSelection(context.Background(), "team-a", []string{"team-b"}, []weekclock.WeekID{"2026-03"}, matcher.MinFilter{YourTeam: 4, Opponent: 4})
	require.NoError(t, err)

	assert.Nil(t, m.GetSlotMatchInfo("2026-03", "wed_2000"))
	assert.NotNil(t, m.GetSlotMatchInfo("2026-03", "thu_1900"))
}

func TestFullMatchRequiresFourASide(t *testing.T) {
	m, _, _, _ := matcherFixture()

	err := m.SetSelection(context.Background(), "team-a", []string{"team-b"}, []weekclock.WeekID{"2026-03"}, matcher.MinFilter{YourTeam: 1, Opponent: 1})
	require.NoError(t, err)

	// 3 vs 4 is a match but not a full one.
	info := m.GetSlotMatchInfo("2026-03", "wed_2000")
	require.NotNil(t, info)
	assert.False(t, info.IsFullMatch)

	// 4 vs 4 is full.
	info = m.GetSlotMatchInfo("2026-03", "thu_1900")
	require.NotNil(t, info)
	assert.True(t, info.IsFullMatch)
}

func TestBlockedSlotsExcluded(t *testing.T) {
	m, _, _, matches := matcherFixture()
	matches.GetMatchesForWeekFunc = func(weekID weekclock.WeekID) ([]*schedule.ScheduledMatch, error) {
		return []*schedule.ScheduledMatch{{
			ID:          "m1",
			TeamAID:     "team-b",
			TeamBID:     "team-c",
			WeekID:      "2026-03",
			BlockedSlot: "wed_2000",
			Status:      schedule.StatusUpcoming,
		}}, nil
	}

	err := m.SetSelection(context.Background(), "team-a", []string{"team-b"}, []weekclock.WeekID{"2026-03"}, matcher.MinFilter{YourTeam: 1, Opponent: 1})
	require.NoError(t, err)

	assert.Nil(t, m.GetSlotMatchInfo("2026-03", "wed_2000"))
	assert.NotNil(t, m.GetSlotMatchInfo("2026-03", "thu_1900"))
}

func TestHiddenTeamContributesNothing(t *testing.T) {
	m, _, rosters, _ := matcherFixture()
	rosters.GetTeamFunc = func(teamID string) (*roster.Team, error) {
		return &roster.Team{ID: teamID, Name: teamID, HideFromComparison: teamID == "team-b"}, nil
	}

	err := m.SetSelection(context.Background(), "team-a", []string{"team-b"}, []weekclock.WeekID{"2026-03"}, matcher.MinFilter{YourTeam: 1, Opponent: 1})
	require.NoError(t, err)

	assert.Nil(t, m.GetSlotMatchInfo("2026-03", "wed_2000"))
	assert.Nil(t, m.GetSlotMatchInfo("2026-03", "thu_1900"))
}

func TestAnonymizedRoster(t *testing.T) {
	m, _, rosters, _ := matcherFixture()
	rosters.GetTeamFunc = func(teamID string) (*roster.Team, error) {
		return &roster.Team{ID: teamID, Name: "Bravo", HideRosterNames: true}, nil
	}

	err := m.SetSelection(context.Background(), "team-a", []string{"team-b"}, []weekclock.WeekID{"2026-03"}, matcher.MinFilter{YourTeam: 1, Opponent: 1})
	require.NoError(t, err)

	info := m.GetSlotMatchInfo("2026-03", "wed_2000")
	require.NotNil(t, info)
	require.Len(t, info.Matches, 1)
	opp := info.Matches[0]
	assert.True(t, opp.Anonymized)
	assert.Equal(t, 4, opp.AvailableCount)
	require.Len(t, opp.Available, 4)
	assert.Equal(t, "Player 1", opp.Available[0].Name)
	assert.Empty(t, opp.Available[0].UserID)
}

func TestMissingOpponentDataDegradesToEmpty(t *testing.T) {
	m, _, _, _ := matcherFixture()

	// team-z has no availability at all; the comparison still succeeds,
	// it just finds nothing for that opponent.
	err := m.SetSelection(context.Background(), "team-a", []string{"team-z"}, []weekclock.WeekID{"2026-03"}, matcher.MinFilter{YourTeam: 1, Opponent: 1})
	require.NoError(t, err)

	assert.Nil(t, m.GetSlotMatchInfo("2026-03", "wed_2000"))
}

func TestGetUserTeamInfo(t *testing.T) {
	m, _, rosters, _ := matcherFixture()
	rosters.GetRosterFunc = func(teamID string) ([]roster.Member, error) {
		return []roster.Member{{UserID: "a1", Name: "Anna"}, {UserID: "a2", Name: "Ben"}, {UserID: "a3", Name: "Cleo"}}, nil
	}

	err := m.SetSelection(context.Background(), "team-a", []string{"team-b"}, []weekclock.WeekID{"2026-03"}, matcher.MinFilter{YourTeam: 1, Opponent: 1})
	require.NoError(t, err)

	info := m.GetUserTeamInfo("2026-03", "wed_2000")
	require.NotNil(t, info)
	assert.Equal(t, 3, info.Count)
	require.Len(t, info.Available, 3)
	assert.Equal(t, "Anna", info.Available[0].Name)
}

func TestHandleInvalidationIgnoresUnrelatedTeams(t *testing.T) {
	m, snapshots, _, _ := matcherFixture()
	metricsMock := metrics.NewMock()
	m = matcher.New(snapshots, roster.NewMock(), schedule.NewMock(), metricsMock)

	err := m.SetSelection(context.Background(), "team-a", []string{"team-b"}, []weekclock.WeekID{"2026-03"}, matcher.MinFilter{})
	require.NoError(t, err)
	runs := metricsMock.MatchComputeRuns()

	m.HandleInvalidation("team-x", "2026-03")
	assert.Equal(t, runs, metricsMock.MatchComputeRuns())

	m.HandleInvalidation("team-b", "2026-09")
	assert.Equal(t, runs, metricsMock.MatchComputeRuns())

	m.HandleInvalidation("team-b", "2026-03")
	assert.Equal(t, runs+1, metricsMock.MatchComputeRuns())
}
