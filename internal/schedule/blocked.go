package schedule

import (
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// BlockedSlots derives, from a snapshot of scheduled matches, the set of
// slots the team cannot be newly matched into for the given week: every
// slot claimed by an upcoming match the team plays in. Pure over the given
// collection; callers recompute whenever the match collection changes.
func BlockedSlots(matches []*ScheduledMatch, teamID string, weekID weekclock.WeekID) map[timeslot.SlotID]struct{} {
	blocked := make(map[timeslot.SlotID]struct{})
	for _, match := range matches {
		if match.Status != StatusUpcoming {
			continue
		}
		if match.WeekID != weekID {
			continue
		}
		if !match.Involves(teamID) {
			continue
		}
		blocked[match.BlockedSlot] = struct{}{}
	}
	return blocked
}
