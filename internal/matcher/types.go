package matcher

import (
	"github.com/mauv0809/scrimsync/internal/availability"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// FullMatchThreshold is the fixed per-side headcount at which a candidate
// match counts as a full match. It is a domain constant (standard team
// size) and is deliberately independent of the configured MinFilter.
const FullMatchThreshold = 4

// MinFilter is the minimum-headcount filter applied to both sides of a
// comparison. Zero values mean "any headcount above zero is enough" in
// practice, since only slots someone signed up for are considered.
type MinFilter struct {
	YourTeam int `json:"your_team"`
	Opponent int `json:"opponent"`
}

// RosterEntry is one player in a disclosed (or anonymized) roster list.
// Anonymized entries carry a stable placeholder name and no user id.
type RosterEntry struct {
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name"`
}

// OpponentMatch is one opponent's side of a candidate match in a slot.
type OpponentMatch struct {
	TeamID         string        `json:"team_id"`
	TeamName       string        `json:"team_name"`
	AvailableCount int           `json:"available_count"`
	Available      []RosterEntry `json:"available"`
	Unavailable    []RosterEntry `json:"unavailable"`
	Anonymized     bool          `json:"anonymized"`
}

// SlotMatchInfo is the per-slot result of the availability comparison,
// consumed by UI tooltips and the proposal flow.
type SlotMatchInfo struct {
	HasMatch    bool            `json:"has_match"`
	IsFullMatch bool            `json:"is_full_match"`
	UserCount   int             `json:"user_count"`
	Matches     []OpponentMatch `json:"matches"`
}

// UserTeamInfo is the viewer's own team's state for a slot; no privacy
// variant applies to one's own roster.
type UserTeamInfo struct {
	Count       int           `json:"count"`
	Available   []RosterEntry `json:"available"`
	Unavailable []RosterEntry `json:"unavailable"`
}

// WeekMatches maps each slot with at least one candidate match to its info.
type WeekMatches map[timeslot.SlotID]*SlotMatchInfo

// Result is a full matching computation across the visible weeks.
type Result map[weekclock.WeekID]WeekMatches

// ViableSlot is one entry of the resolver's sorted output, carrying both
// sides' headcounts and participant ids. Proposal flows assume mutual
// visibility, so there is no anonymized variant here.
type ViableSlot struct {
	Slot            timeslot.SlotID `json:"slot"`
	ProposerCount   int             `json:"proposer_count"`
	OpponentCount   int             `json:"opponent_count"`
	ProposerPlayers []string        `json:"proposer_players"`
	OpponentPlayers []string        `json:"opponent_players"`
}

// SnapshotProvider hands out immutable availability records. Implemented
// by availability.Cache; a direct store works too.
type SnapshotProvider interface {
	Snapshot(teamID string, weekID weekclock.WeekID) (*availability.Record, error)
}
