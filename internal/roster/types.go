package roster

import (
	"database/sql"
	"sync"
)

// store handles all database operations for teams and their rosters.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Team represents a competitive team. The two privacy flags control how a
// team appears in cross-team availability comparison: HideFromComparison
// removes the team from opponents' match views entirely, HideRosterNames
// keeps the team visible but replaces player identities with anonymized
// placeholders.
type Team struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	HideFromComparison bool   `json:"hide_from_comparison"`
	HideRosterNames    bool   `json:"hide_roster_names"`
}

// Member is one player on a team's roster.
type Member struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}
