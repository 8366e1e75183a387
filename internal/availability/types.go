package availability

import (
	"database/sql"
	"sync"

	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// store handles all database operations for availability records.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	pub Publisher
}

// Record is a team's availability for one week: per slot, the ordered list
// of players who signed up, plus explicit opt-outs. A player sits in
// Slots[s] or Unavailable[s] for a given slot, never both; the write path
// maintains that exclusion with last-writer-wins semantics.
type Record struct {
	TeamID      string                          `json:"team_id"`
	WeekID      weekclock.WeekID                `json:"week_id"`
	Slots       map[timeslot.SlotID][]string    `json:"slots"`
	Unavailable map[timeslot.SlotID][]string    `json:"unavailable"`
}

// Op is a slot update operation.
type Op string

const (
	OpAdd              Op = "add"
	OpRemove           Op = "remove"
	OpMarkUnavailable  Op = "mark_unavailable"
	OpClearUnavailable Op = "clear_unavailable"
)

// UserTouchedWeek reports whether the user appears anywhere in the record,
// either as available or as explicitly opted out. The template applier
// treats any appearance as a manual edit and leaves the whole week alone.
func (r *Record) UserTouchedWeek(userID string) bool {
	for _, users := range r.Slots {
		for _, u := range users {
			if u == userID {
				return true
			}
		}
	}
	for _, users := range r.Unavailable {
		for _, u := range users {
			if u == userID {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy so cached records can be handed out as
// immutable snapshots.
func (r *Record) Clone() *Record {
	out := &Record{
		TeamID:      r.TeamID,
		WeekID:      r.WeekID,
		Slots:       make(map[timeslot.SlotID][]string, len(r.Slots)),
		Unavailable: make(map[timeslot.SlotID][]string, len(r.Unavailable)),
	}
	for slot, users := range r.Slots {
		out.Slots[slot] = append([]string(nil), users...)
	}
	for slot, users := range r.Unavailable {
		out.Unavailable[slot] = append([]string(nil), users...)
	}
	return out
}
