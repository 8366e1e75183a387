package schedule_test

import (
	"testing"

	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/stretchr/testify/assert"
)

func TestBlockedSlots(t *testing.T) {
	matches := []*schedule.ScheduledMatch{
		upcomingMatch("m1", "team-a", "team-b", "2026-03", "wed_2000", "2026-01-14"),
		upcomingMatch("m2", "team-a", "team-c", "2026-03", "thu_1900", "2026-01-15"),
		upcomingMatch("m3", "team-c", "team-d", "2026-03", "fri_1800", "2026-01-16"),
		upcomingMatch("m4", "team-a", "team-b", "2026-04", "mon_1900", "2026-01-19"),
	}

	blocked := schedule.BlockedSlots(matches, "team-a", "2026-03")
	assert.Len(t, blocked, 2)
	assert.Contains(t, blocked, timeslot.SlotID("wed_2000"))
	assert.Contains(t, blocked, timeslot.SlotID("thu_1900"))

	// Opponent side of the pairing blocks too.
	blocked = schedule.BlockedSlots(matches, "team-b", "2026-03")
	assert.Len(t, blocked, 1)
	assert.Contains(t, blocked, timeslot.SlotID("wed_2000"))

	// Different week, nothing carries over.
	blocked = schedule.BlockedSlots(matches, "team-a", "2026-05")
	assert.Empty(t, blocked)
}

func TestBlockedSlotsIgnoresSettledMatches(t *testing.T) {
	completed := upcomingMatch("m1", "team-a", "team-b", "2026-03", "wed_2000", "2026-01-14")
	completed.Status = schedule.StatusCompleted
	cancelled := upcomingMatch("m2", "team-a", "team-b", "2026-03", "thu_1900", "2026-01-15")
	cancelled.Status = schedule.StatusCancelled

	blocked := schedule.BlockedSlots([]*schedule.ScheduledMatch{completed, cancelled}, "team-a", "2026-03")
	assert.Empty(t, blocked)
}
