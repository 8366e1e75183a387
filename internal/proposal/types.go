package proposal

import (
	"database/sql"
	"sync"
	"time"

	"github.com/mauv0809/scrimsync/internal/matcher"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// store handles database operations for match proposals.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Status represents the status of a match proposal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusSealed    Status = "sealed"
	StatusCancelled Status = "cancelled"
)

// Proposal is an offer from one team to play another in a specific slot.
// Sealing a confirmed proposal is what turns an availability overlap into
// a fixed ScheduledMatch.
type Proposal struct {
	ID             string            `json:"id"`
	ProposerTeamID string            `json:"proposer_team_id"`
	OpponentTeamID string            `json:"opponent_team_id"`
	WeekID         weekclock.WeekID  `json:"week_id"`
	Slot           timeslot.SlotID   `json:"slot"`
	MinFilter      matcher.MinFilter `json:"min_filter"`
	Status         Status            `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
