package schedule_test

import (
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/scrimsync/internal/metrics"
	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/weekclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchesPublisherSpy struct {
	mu    sync.Mutex
	weeks []weekclock.WeekID
}

func (p *matchesPublisherSpy) PublishMatchesChanged(weekID weekclock.WeekID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.weeks = append(p.weeks, weekID)
}

func TestIsPastBoundary(t *testing.T) {
	// Thursday 2026-02-12, slot thu_2200 in UTC. The match occupies one
	// 30 minute slot, so it is over strictly after 22:30.
	match := upcomingMatch("m1", "team-a", "team-b", "2026-07", "thu_2200", "2026-02-12")

	atStart := time.Date(2026, 2, 12, 22, 0, 0, 0, time.UTC)
	past, err := schedule.IsPast(match, atStart)
	require.NoError(t, err)
	assert.False(t, past)

	atSlotEnd := time.Date(2026, 2, 12, 22, 30, 0, 0, time.UTC)
	past, err = schedule.IsPast(match, atSlotEnd)
	require.NoError(t, err)
	assert.False(t, past)

	justAfter := time.Date(2026, 2, 12, 22, 30, 0, 1, time.UTC)
	past, err = schedule.IsPast(match, justAfter)
	require.NoError(t, err)
	assert.True(t, past)
}

func TestIsPastMalformedDate(t *testing.T) {
	match := upcomingMatch("m1", "team-a", "team-b", "2026-07", "thu_2200", "not-a-date")
	_, err := schedule.IsPast(match, time.Now())
	assert.Error(t, err)
}

func TestSweepCompletesExpiredMatches(t *testing.T) {
	expired := upcomingMatch("m1", "team-a", "team-b", "2026-07", "mon_1900", "2026-02-09")
	future := upcomingMatch("m2", "team-c", "team-d", "2026-07", "sat_1000", "2026-02-14")
	store := schedule.NewMock()
	store.GetUpcomingMatchesFunc = func() ([]*schedule.ScheduledMatch, error) {
		return []*schedule.ScheduledMatch{expired, future}, nil
	}
	pub := &matchesPublisherSpy{}
	metricsMock := metrics.NewMock()
	sweeper := schedule.NewSweeper(store, metricsMock, pub)

	now := time.Date(2026, 2, 12, 12, 1, 0, 0, time.UTC)
	require.NoError(t, sweeper.Sweep(now, false))

	require.Len(t, store.CompleteMatchesCalls, 1)
	assert.Equal(t, []string{"m1"}, store.CompleteMatchesCalls[0])
	assert.Equal(t, 1, metricsMock.MatchesCompleted())
	assert.Equal(t, []weekclock.WeekID{"2026-07"}, pub.weeks)
}

func TestSweepNothingToExpire(t *testing.T) {
	store := schedule.NewMock()
	pub := &matchesPublisherSpy{}
	sweeper := schedule.NewSweeper(store, metrics.NewMock(), pub)

	require.NoError(t, sweeper.Sweep(time.Now(), false))
	assert.Empty(t, store.CompleteMatchesCalls)
	assert.Empty(t, pub.weeks)
}

func TestSweepDryRun(t *testing.T) {
	expired := upcomingMatch("m1", "team-a", "team-b", "2026-07", "mon_1900", "2026-02-09")
	store := schedule.NewMock()
	store.GetUpcomingMatchesFunc = func() ([]*schedule.ScheduledMatch, error) {
		return []*schedule.ScheduledMatch{expired}, nil
	}
	pub := &matchesPublisherSpy{}
	metricsMock := metrics.NewMock()
	sweeper := schedule.NewSweeper(store, metricsMock, pub)

	now := time.Date(2026, 2, 12, 12, 1, 0, 0, time.UTC)
	require.NoError(t, sweeper.Sweep(now, true))

	assert.Empty(t, store.CompleteMatchesCalls)
	assert.Equal(t, 0, metricsMock.MatchesCompleted())
	assert.Empty(t, pub.weeks)
}

func TestSweepSkipsUnreadableMatches(t *testing.T) {
	broken := upcomingMatch("m1", "team-a", "team-b", "2026-07", "mon_1900", "garbage")
	expired := upcomingMatch("m2", "team-c", "team-d", "2026-07", "tue_1900", "2026-02-10")
	store := schedule.NewMock()
	store.GetUpcomingMatchesFunc = func() ([]*schedule.ScheduledMatch, error) {
		return []*schedule.ScheduledMatch{broken, expired}, nil
	}
	sweeper := schedule.NewSweeper(store, metrics.NewMock(), nil)

	now := time.Date(2026, 2, 12, 12, 1, 0, 0, time.UTC)
	require.NoError(t, sweeper.Sweep(now, false))

	require.Len(t, store.CompleteMatchesCalls, 1)
	assert.Equal(t, []string{"m2"}, store.CompleteMatchesCalls[0])
}
