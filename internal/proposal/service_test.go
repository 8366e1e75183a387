package proposal

import (
	"testing"

	"github.com/mauv0809/scrimsync/internal/availability"
	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/matcher"
	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotStub struct {
	records map[string]*availability.Record
}

func (s *snapshotStub) Snapshot(teamID string, weekID weekclock.WeekID) (*availability.Record, error) {
	if r, ok := s.records[teamID]; ok {
		return r, nil
	}
	return &availability.Record{
		TeamID:      teamID,
		WeekID:      weekID,
		Slots:       make(map[timeslot.SlotID][]string),
		Unavailable: make(map[timeslot.SlotID][]string),
	}, nil
}

type publisherSpy struct {
	weeks []weekclock.WeekID
}

func (p *publisherSpy) PublishMatchesChanged(weekID weekclock.WeekID) {
	p.weeks = append(p.weeks, weekID)
}

const testWeek = weekclock.WeekID("2026-03")

func newTestService(matches *schedule.MockStore) (*Service, *MockStore, *MockNotifier, *publisherSpy) {
	snapshots := &snapshotStub{records: map[string]*availability.Record{
		"team-a": {
			TeamID: "team-a",
			WeekID: testWeek,
			Slots: map[timeslot.SlotID][]string{
				"wed_2000": {"anna", "ben", "cleo"},
			},
			Unavailable: make(map[timeslot.SlotID][]string),
		},
		"team-b": {
			TeamID: "team-b",
			WeekID: testWeek,
			Slots: map[timeslot.SlotID][]string{
				"wed_2000": {"dan", "eve", "finn", "gus"},
			},
			Unavailable: make(map[timeslot.SlotID][]string),
		},
	}}
	store := NewMockStore()
	notifier := &MockNotifier{}
	pub := &publisherSpy{}
	resolver := matcher.NewResolver(snapshots, matches)
	return NewService(store, matches, resolver, notifier, pub), store, notifier, pub
}

func TestCreateProposal(t *testing.T) {
	svc, store, notifier, _ := newTestService(schedule.NewMock())

	p, err := svc.Create("team-a", "team-b", testWeek, "wed_2000", matcher.MinFilter{YourTeam: 3, Opponent: 3}, false)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, "team-a", p.ProposerTeamID)
	assert.NotEmpty(t, p.ID)

	stored, err := store.GetProposal(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Len(t, notifier.Created, 1)
}

func TestCreateProposalNotViable(t *testing.T) {
	svc, _, notifier, _ := newTestService(schedule.NewMock())

	// Proposer only has 3 players in the slot.
	_, err := svc.Create("team-a", "team-b", testWeek, "wed_2000", matcher.MinFilter{YourTeam: 4, Opponent: 3}, false)
	require.Error(t, err)
	assert.True(t, faults.IsFailedPrecondition(err))
	assert.Empty(t, notifier.Created)
}

func TestCreateProposalBlockedSlot(t *testing.T) {
	matches := schedule.NewMock()
	matches.GetMatchesForWeekFunc = func(weekID weekclock.WeekID) ([]*schedule.ScheduledMatch, error) {
		return []*schedule.ScheduledMatch{{
			ID:          "existing",
			TeamAID:     "team-b",
			TeamBID:     "team-c",
			WeekID:      testWeek,
			BlockedSlot: "wed_2000",
			Status:      schedule.StatusUpcoming,
		}}, nil
	}
	svc, _, _, _ := newTestService(matches)

	_, err := svc.Create("team-a", "team-b", testWeek, "wed_2000", matcher.MinFilter{YourTeam: 3, Opponent: 3}, false)
	require.Error(t, err)
	assert.True(t, faults.IsFailedPrecondition(err))
}

func TestCreateProposalValidation(t *testing.T) {
	svc, _, _, _ := newTestService(schedule.NewMock())

	_, err := svc.Create("team-a", "team-a", testWeek, "wed_2000", matcher.MinFilter{}, false)
	assert.True(t, faults.IsValidation(err))

	_, err = svc.Create("team-a", "team-b", "garbage", "wed_2000", matcher.MinFilter{}, false)
	assert.Error(t, err)

	_, err = svc.Create("team-a", "team-b", testWeek, "wed_2015", matcher.MinFilter{}, false)
	assert.Error(t, err)
}

func TestConfirmAndSeal(t *testing.T) {
	matches := schedule.NewMock()
	svc, store, notifier, pub := newTestService(matches)

	p, err := svc.Create("team-a", "team-b", testWeek, "wed_2000", matcher.MinFilter{YourTeam: 3, Opponent: 3}, false)
	require.NoError(t, err)

	confirmed, err := svc.Confirm(p.ID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)
	assert.Len(t, notifier.Confirmed, 1)

	match, err := svc.Seal(p.ID, schedule.GameOfficial, false)
	require.NoError(t, err)
	assert.Equal(t, timeslot.SlotID("wed_2000"), match.BlockedSlot)
	assert.Equal(t, schedule.OriginProposal, match.Origin)
	assert.Equal(t, schedule.StatusUpcoming, match.Status)
	// Week 2026-03 starts Monday 2026-01-12, so Wednesday is the 14th.
	assert.Equal(t, "2026-01-14", match.ScheduledDate)

	require.Len(t, matches.CreateMatchCalls, 1)
	assert.Equal(t, []weekclock.WeekID{testWeek}, pub.weeks)
	assert.Len(t, notifier.Sealed, 1)

	sealed, err := store.GetProposal(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSealed, sealed.Status)
}

func TestSealRequiresConfirmed(t *testing.T) {
	svc, _, _, _ := newTestService(schedule.NewMock())

	p, err := svc.Create("team-a", "team-b", testWeek, "wed_2000", matcher.MinFilter{YourTeam: 3, Opponent: 3}, false)
	require.NoError(t, err)

	_, err = svc.Seal(p.ID, schedule.GamePractice, false)
	require.Error(t, err)
	assert.True(t, faults.IsFailedPrecondition(err))
}

func TestSealConflictKeepsProposalConfirmed(t *testing.T) {
	matches := schedule.NewMock()
	matches.CreateMatchFunc = func(match *schedule.ScheduledMatch) error {
		return faults.AlreadyExistsf("slot %s in week %s is already booked", match.BlockedSlot, match.WeekID)
	}
	svc, store, _, pub := newTestService(matches)

	p, err := svc.Create("team-a", "team-b", testWeek, "wed_2000", matcher.MinFilter{YourTeam: 3, Opponent: 3}, false)
	require.NoError(t, err)
	_, err = svc.Confirm(p.ID, false)
	require.NoError(t, err)

	_, err = svc.Seal(p.ID, schedule.GameOfficial, false)
	require.Error(t, err)
	assert.True(t, faults.IsAlreadyExists(err))
	assert.Empty(t, pub.weeks)

	// The proposal is still confirmed and can be retried or cancelled.
	stored, err := store.GetProposal(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, stored.Status)
}

func TestSealDryRun(t *testing.T) {
	matches := schedule.NewMock()
	svc, store, _, pub := newTestService(matches)

	p, err := svc.Create("team-a", "team-b", testWeek, "wed_2000", matcher.MinFilter{YourTeam: 3, Opponent: 3}, false)
	require.NoError(t, err)
	_, err = svc.Confirm(p.ID, false)
	require.NoError(t, err)

	match, err := svc.Seal(p.ID, schedule.GameOfficial, true)
	require.NoError(t, err)
	assert.NotNil(t, match)
	assert.Empty(t, matches.CreateMatchCalls)
	assert.Empty(t, pub.weeks)

	stored, err := store.GetProposal(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, stored.Status)
}

func TestCancel(t *testing.T) {
	svc, store, notifier, _ := newTestService(schedule.NewMock())

	// Cancel while pending.
	p, err := svc.Create("team-a", "team-b", testWeek, "wed_2000", matcher.MinFilter{YourTeam: 3, Opponent: 3}, false)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(p.ID, false))
	stored, err := store.GetProposal(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, stored.Status)

	// Cancel while confirmed.
	p2, err := svc.Create("team-a", "team-b", testWeek, "wed_2000", matcher.MinFilter{YourTeam: 3, Opponent: 3}, false)
	require.NoError(t, err)
	_, err = svc.Confirm(p2.ID, false)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(p2.ID, false))
	stored2, err := store.GetProposal(p2.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, stored2.Status)
	assert.Len(t, notifier.Cancelled, 2)

	// Cancelling a sealed or unknown proposal fails.
	assert.Error(t, svc.Cancel("missing", false))
}
