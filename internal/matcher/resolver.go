package matcher

import (
	"fmt"
	"sort"

	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// Resolver is the single-opponent variant of the matcher, used once a
// concrete opponent has been chosen for a proposal. It works from the
// cached snapshots synchronously, with no fan-out, and returns a
// deterministically sorted list rather than a reactive match map.
type Resolver struct {
	snapshots SnapshotProvider
	matches   schedule.MatchStore
}

// NewResolver creates a new Resolver.
func NewResolver(snapshots SnapshotProvider, matches schedule.MatchStore) *Resolver {
	return &Resolver{
		snapshots: snapshots,
		matches:   matches,
	}
}

// ComputeViableSlots returns every slot where both teams meet the filter
// and neither is blocked, sorted by day-of-week (Monday first) then
// time-of-day. The ordering is a contract consumed by downstream
// selection UIs and must stay deterministic.
func (r *Resolver) ComputeViableSlots(proposerTeam, opponentTeam string, weekID weekclock.WeekID, filter MinFilter) ([]ViableSlot, error) {
	if _, _, err := weekclock.ParseWeekID(weekID); err != nil {
		return nil, err
	}

	proposerRecord, err := r.snapshots.Snapshot(proposerTeam, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability for %s/%s: %w", proposerTeam, weekID, err)
	}
	opponentRecord, err := r.snapshots.Snapshot(opponentTeam, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability for %s/%s: %w", opponentTeam, weekID, err)
	}

	weekMatches, err := r.matches.GetMatchesForWeek(weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for %s: %w", weekID, err)
	}
	proposerBlocked := schedule.BlockedSlots(weekMatches, proposerTeam, weekID)
	opponentBlocked := schedule.BlockedSlots(weekMatches, opponentTeam, weekID)

	var viable []ViableSlot
	for _, slot := range unionSlots(proposerRecord, opponentRecord) {
		if _, ok := proposerBlocked[slot]; ok {
			continue
		}
		if _, ok := opponentBlocked[slot]; ok {
			continue
		}

		proposerPlayers := proposerRecord.Slots[slot]
		opponentPlayers := opponentRecord.Slots[slot]
		if len(proposerPlayers) < filter.YourTeam || len(opponentPlayers) < filter.Opponent {
			continue
		}

		viable = append(viable, ViableSlot{
			Slot:            slot,
			ProposerCount:   len(proposerPlayers),
			OpponentCount:   len(opponentPlayers),
			ProposerPlayers: append([]string(nil), proposerPlayers...),
			OpponentPlayers: append([]string(nil), opponentPlayers...),
		})
	}

	// unionSlots already sorts, but the contract lives here.
	sort.Slice(viable, func(i, j int) bool {
		return timeslot.SortKey(viable[i].Slot) < timeslot.SortKey(viable[j].Slot)
	})
	return viable, nil
}
