package template

import (
	"database/sql"
	"sync"

	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// store handles all database operations for slot templates.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Template is a user's saved set of slot preferences. When Recurring is
// set, the weekly sweep applies the template to each upcoming week;
// LastAppliedWeekID tracks how far the sweep has advanced for this user.
type Template struct {
	UserID            string            `json:"user_id"`
	Slots             []timeslot.SlotID `json:"slots"`
	Recurring         bool              `json:"recurring"`
	LastAppliedWeekID weekclock.WeekID  `json:"last_applied_week_id"`
}
