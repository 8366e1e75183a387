package schedule

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/metrics"
	"github.com/mauv0809/scrimsync/internal/timeslot"
)

// Sweeper periodically transitions matches whose time has passed from
// upcoming to completed. It is designed to run shortly after each
// half-hour slot boundary; a superseded or repeated run is a no-op.
type Sweeper struct {
	store   MatchStore
	metrics metrics.Metrics
	pub     Publisher
}

// NewSweeper creates a new expiration Sweeper. pub may be nil.
func NewSweeper(store MatchStore, metricsSvc metrics.Metrics, pub Publisher) *Sweeper {
	return &Sweeper{
		store:   store,
		metrics: metricsSvc,
		pub:     pub,
	}
}

// MatchStart derives a match's UTC start instant from its scheduled date
// (midnight UTC) plus the time component of its blocked slot.
func MatchStart(match *ScheduledMatch) (time.Time, error) {
	day, err := time.Parse("2006-01-02", match.ScheduledDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed scheduled date %q: %w", match.ScheduledDate, err)
	}
	_, hour, minute, err := timeslot.ParseSlotID(match.BlockedSlot)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC), nil
}

// IsPast reports whether the match is over at the given instant. A match
// occupies one slot, so it is considered finished 30 minutes after its
// start: a 20:00 match is over at 20:30.
func IsPast(match *ScheduledMatch, now time.Time) (bool, error) {
	start, err := MatchStart(match)
	if err != nil {
		return false, err
	}
	return now.After(start.Add(timeslot.SlotMinutes * time.Minute)), nil
}

// Sweep finds all upcoming matches whose time has passed and batch-
// transitions them to completed. Per-match parse failures are logged and
// skipped; a failed batch is simply retried whole on the next cadence.
func (s *Sweeper) Sweep(now time.Time, dryRun bool) error {
	log.Info("Starting match expiration sweep...")
	s.metrics.IncExpirationSweeps()

	matches, err := s.store.GetUpcomingMatches()
	if err != nil {
		return fmt.Errorf("failed to load upcoming matches: %w", err)
	}

	var expiredIDs []string
	changedWeeks := map[string]*ScheduledMatch{}
	for _, match := range matches {
		past, err := IsPast(match, now)
		if err != nil {
			log.Error("Skipping match with unreadable schedule", "matchID", match.ID, "error", err)
			continue
		}
		if past {
			expiredIDs = append(expiredIDs, match.ID)
			changedWeeks[string(match.WeekID)] = match
		}
	}

	if len(expiredIDs) == 0 {
		log.Info("No matches to expire.")
		return nil
	}

	if dryRun {
		log.Info("[Dry Run] Would complete expired matches", "count", len(expiredIDs))
		return nil
	}

	if err := s.store.CompleteMatches(expiredIDs, now); err != nil {
		return fmt.Errorf("failed to complete expired matches: %w", err)
	}
	s.metrics.AddMatchesCompleted(len(expiredIDs))
	log.Info("Match expiration sweep finished.", "completed", len(expiredIDs))

	if s.pub != nil {
		for _, match := range changedWeeks {
			s.pub.PublishMatchesChanged(match.WeekID)
		}
	}
	return nil
}
