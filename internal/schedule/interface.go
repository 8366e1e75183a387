package schedule

import (
	"time"

	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// MatchStore defines the interface for interacting with scheduled matches.
//
// CreateMatch is the single enforcement point for double booking: it
// atomically verifies that neither team already has an upcoming match in
// the same (week, slot) before committing, and fails with an
// already-exists error otherwise. The read-time exclusion done by the
// blocked-slot tracker is a UX optimization, not the guarantee.
type MatchStore interface {
	CreateMatch(match *ScheduledMatch) error
	GetUpcomingMatches() ([]*ScheduledMatch, error)
	GetMatchesForWeek(weekID weekclock.WeekID) ([]*ScheduledMatch, error)
	GetAllMatches() ([]*ScheduledMatch, error)
	CompleteMatches(matchIDs []string, completedAt time.Time) error
	CancelMatch(matchID string) error
	Clear()
}

// Publisher announces match collection changes so downstream caches and
// matchers can recompute. Implemented by the pubsub adapter.
type Publisher interface {
	PublishMatchesChanged(weekID weekclock.WeekID)
}
