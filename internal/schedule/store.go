package schedule

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// New creates a new MatchStore.
func New(db *sql.DB) MatchStore {
	return &store{
		db: db,
	}
}

// CreateMatch inserts a new scheduled match after verifying, inside the
// same transaction, that no conflicting upcoming match exists for either
// team in that week and slot. Two racing creations for the same slot
// serialize on the transaction; the loser gets an already-exists error.
func (s *store) CreateMatch(match *ScheduledMatch) error {
	if _, _, err := weekclock.ParseWeekID(match.WeekID); err != nil {
		return err
	}
	if _, _, _, err := timeslot.ParseSlotID(match.BlockedSlot); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin match creation: %w", err)
	}

	var conflicts int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM scheduled_matches
		WHERE week_id = ? AND blocked_slot = ? AND status = ?
		  AND (team_a_id IN (?, ?) OR team_b_id IN (?, ?))
	`, string(match.WeekID), string(match.BlockedSlot), string(StatusUpcoming),
		match.TeamAID, match.TeamBID, match.TeamAID, match.TeamBID).Scan(&conflicts)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to check for conflicting matches: %w", err)
	}
	if conflicts > 0 {
		tx.Rollback()
		return faults.AlreadyExistsf("slot %s in week %s is already booked", match.BlockedSlot, match.WeekID)
	}

	_, err = tx.Exec(`
		INSERT INTO scheduled_matches (id, team_a_id, team_b_id, week_id, blocked_slot, scheduled_date, status, game_type, origin, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, match.ID, match.TeamAID, match.TeamBID, string(match.WeekID), string(match.BlockedSlot),
		match.ScheduledDate, string(match.Status), string(match.GameType), string(match.Origin),
		match.CreatedAt, match.CompletedAt)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert match %s: %w", match.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match creation: %w", err)
	}

	log.Info("Created scheduled match", "matchID", match.ID, "week", match.WeekID, "slot", match.BlockedSlot, "origin", match.Origin)
	return nil
}

// GetUpcomingMatches returns all matches still in the upcoming state.
func (s *store) GetUpcomingMatches() ([]*ScheduledMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches(`status = ?`, string(StatusUpcoming))
}

// GetMatchesForWeek returns all matches in a week regardless of status.
func (s *store) GetMatchesForWeek(weekID weekclock.WeekID) ([]*ScheduledMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches(`week_id = ?`, string(weekID))
}

// GetAllMatches returns every match in the store.
func (s *store) GetAllMatches() ([]*ScheduledMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches(`1 = 1`)
}

func (s *store) queryMatches(where string, args ...any) ([]*ScheduledMatch, error) {
	rows, err := s.db.Query(`
		SELECT id, team_a_id, team_b_id, week_id, blocked_slot, scheduled_date, status, game_type, origin, created_at, completed_at
		FROM scheduled_matches
		WHERE `+where+`
		ORDER BY week_id, blocked_slot
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*ScheduledMatch
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func scanMatch(scanner interface{ Scan(...any) error }) (*ScheduledMatch, error) {
	var match ScheduledMatch
	var weekID, blockedSlot, status, gameType, origin string
	var completedAt sql.NullInt64

	err := scanner.Scan(
		&match.ID,
		&match.TeamAID,
		&match.TeamBID,
		&weekID,
		&blockedSlot,
		&match.ScheduledDate,
		&status,
		&gameType,
		&origin,
		&match.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	match.WeekID = weekclock.WeekID(weekID)
	match.BlockedSlot = timeslot.SlotID(blockedSlot)
	match.Status = Status(status)
	match.GameType = GameType(gameType)
	match.Origin = Origin(origin)
	if completedAt.Valid {
		match.CompletedAt = &completedAt.Int64
	}
	return &match, nil
}

// CompleteMatches transitions the given matches to completed with the same
// completion timestamp. Matches already completed are unaffected, which
// keeps repeated sweeps idempotent.
func (s *store) CompleteMatches(matchIDs []string, completedAt time.Time) error {
	if len(matchIDs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin match completion: %w", err)
	}

	stmt, err := tx.Prepare(`
		UPDATE scheduled_matches SET status = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare match completion: %w", err)
	}
	defer stmt.Close()

	for _, id := range matchIDs {
		if _, err := stmt.Exec(string(StatusCompleted), completedAt.Unix(), id, string(StatusUpcoming)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to complete match %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match completion: %w", err)
	}
	return nil
}

// CancelMatch transitions an upcoming match to cancelled, freeing its slot.
func (s *store) CancelMatch(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE scheduled_matches SET status = ? WHERE id = ? AND status = ?
	`, string(StatusCancelled), matchID, string(StatusUpcoming))
	if err != nil {
		return fmt.Errorf("failed to cancel match %s: %w", matchID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to cancel match %s: %w", matchID, err)
	}
	if affected == 0 {
		return faults.NotFoundf("upcoming match %s", matchID)
	}
	return nil
}

// Clear wipes all scheduled matches.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM scheduled_matches`); err != nil {
		log.Error("Failed to clear scheduled matches", "error", err)
	}
}
