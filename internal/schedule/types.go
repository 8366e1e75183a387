package schedule

import (
	"database/sql"
	"sync"

	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// store handles all database operations for scheduled matches.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Status is the lifecycle state of a scheduled match.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// GameType distinguishes ladder games from practice scrims.
type GameType string

const (
	GameOfficial GameType = "official"
	GamePractice GameType = "practice"
)

// Origin records how a match came to exist.
type Origin string

const (
	OriginProposal Origin = "proposal"
	OriginImported Origin = "imported"
)

// ScheduledMatch is a fixed match between two teams. BlockedSlot is the
// canonical UTC slot the match occupies; while the match is upcoming that
// slot is unavailable to both teams for new matches in the same week.
type ScheduledMatch struct {
	ID            string           `json:"id"`
	TeamAID       string           `json:"team_a_id"`
	TeamBID       string           `json:"team_b_id"`
	WeekID        weekclock.WeekID `json:"week_id"`
	BlockedSlot   timeslot.SlotID  `json:"blocked_slot"`
	ScheduledDate string           `json:"scheduled_date"` // YYYY-MM-DD, UTC
	Status        Status           `json:"status"`
	GameType      GameType         `json:"game_type"`
	Origin        Origin           `json:"origin"`
	CreatedAt     int64            `json:"created_at"`
	CompletedAt   *int64           `json:"completed_at,omitempty"`
}

// Involves reports whether the given team plays in this match.
func (m *ScheduledMatch) Involves(teamID string) bool {
	return m.TeamAID == teamID || m.TeamBID == teamID
}
