package roster

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/faults"
)

// New creates a new RosterStore.
func New(db *sql.DB) RosterStore {
	return &store{
		db: db,
	}
}

// UpsertTeam inserts a new team or updates an existing one.
func (s *store) UpsertTeam(team Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO teams (id, name, hide_from_comparison, hide_roster_names)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			hide_from_comparison = excluded.hide_from_comparison,
			hide_roster_names = excluded.hide_roster_names;
	`, team.ID, team.Name, team.HideFromComparison, team.HideRosterNames)
	if err != nil {
		return fmt.Errorf("failed to upsert team %s: %w", team.ID, err)
	}
	return nil
}

// GetTeam retrieves a team by ID.
func (s *store) GetTeam(teamID string) (*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var team Team
	err := s.db.QueryRow(`
		SELECT id, name, hide_from_comparison, hide_roster_names
		FROM teams WHERE id = ?
	`, teamID).Scan(&team.ID, &team.Name, &team.HideFromComparison, &team.HideRosterNames)
	if err == sql.ErrNoRows {
		return nil, faults.NotFoundf("team %s", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team %s: %w", teamID, err)
	}
	return &team, nil
}

// GetAllTeams returns every registered team.
func (s *store) GetAllTeams() ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, hide_from_comparison, hide_roster_names FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.Name, &team.HideFromComparison, &team.HideRosterNames); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// AddMember adds a player to a team's roster. Re-adding an existing member
// refreshes the stored name.
func (s *store) AddMember(teamID, userID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO team_members (team_id, user_id, name)
		VALUES (?, ?, ?)
		ON CONFLICT(team_id, user_id) DO UPDATE SET name = excluded.name;
	`, teamID, userID, name)
	if err != nil {
		return fmt.Errorf("failed to add member %s to team %s: %w", userID, teamID, err)
	}
	return nil
}

// RemoveMember removes a player from a team's roster.
func (s *store) RemoveMember(teamID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM team_members WHERE team_id = ? AND user_id = ?`, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member %s from team %s: %w", userID, teamID, err)
	}
	return nil
}

// GetRoster returns the members of a team. A team with no members yields an
// empty roster, not an error.
func (s *store) GetRoster(teamID string) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT user_id, name FROM team_members WHERE team_id = ? ORDER BY name`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster for team %s: %w", teamID, err)
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.Name); err != nil {
			log.Error("Failed to scan roster row", "error", err)
			continue
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// TeamsForUser returns every team the user is rostered on.
func (s *store) TeamsForUser(userID string) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.hide_from_comparison, t.hide_roster_names
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = ?
		ORDER BY t.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams for user %s: %w", userID, err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.Name, &team.HideFromComparison, &team.HideRosterNames); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// Clear wipes all teams and rosters.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM team_members`); err != nil {
		log.Error("Failed to clear team members", "error", err)
	}
	if _, err := s.db.Exec(`DELETE FROM teams`); err != nil {
		log.Error("Failed to clear teams", "error", err)
	}
}
