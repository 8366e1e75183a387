package availability

import (
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// AvailabilityStore defines the interface for reading and writing weekly
// availability records. SaveSlotUpdate is the sole write path; everything
// that fills availability (users, the template applier) goes through it.
type AvailabilityStore interface {
	GetRecord(teamID string, weekID weekclock.WeekID) (*Record, error)
	SaveSlotUpdate(teamID string, weekID weekclock.WeekID, slotID timeslot.SlotID, userID string, op Op) error
	Clear()
}

// Publisher is the outbound notification seam. After a committed write the
// store announces which (team, week) changed so caches can invalidate.
// This keeps the availability package decoupled from the pubsub client.
type Publisher interface {
	PublishAvailabilityUpdated(teamID string, weekID weekclock.WeekID)
}
