package availability

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// New creates a new AvailabilityStore. pub may be nil when no invalidation
// fan-out is wanted (e.g. in tests).
func New(db *sql.DB, pub Publisher) AvailabilityStore {
	return &store{
		db:  db,
		pub: pub,
	}
}

// GetRecord loads a team's availability for a week. A team with no record
// yet yields an empty record, not an error; records are created lazily on
// first write.
func (s *store) GetRecord(teamID string, weekID weekclock.WeekID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRecordLocked(s.db, teamID, weekID)
}

type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (s *store) getRecordLocked(q queryRower, teamID string, weekID weekclock.WeekID) (*Record, error) {
	record := &Record{
		TeamID:      teamID,
		WeekID:      weekID,
		Slots:       map[timeslot.SlotID][]string{},
		Unavailable: map[timeslot.SlotID][]string{},
	}

	var slotsJSON, unavailableJSON []byte
	err := q.QueryRow(`
		SELECT slots_json, unavailable_json FROM availability
		WHERE team_id = ? AND week_id = ?
	`, teamID, string(weekID)).Scan(&slotsJSON, &unavailableJSON)
	if err == sql.ErrNoRows {
		return record, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load availability for %s/%s: %w", teamID, weekID, err)
	}

	if err := json.Unmarshal(slotsJSON, &record.Slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots for %s/%s: %w", teamID, weekID, err)
	}
	if err := json.Unmarshal(unavailableJSON, &record.Unavailable); err != nil {
		return nil, fmt.Errorf("failed to decode unavailable for %s/%s: %w", teamID, weekID, err)
	}
	return record, nil
}

// SaveSlotUpdate applies one slot operation for one user and persists the
// record. Adding a user to a slot removes any opt-out for that slot, and
// opting out removes the user from the available list; the two lists stay
// mutually exclusive per user per slot.
func (s *store) SaveSlotUpdate(teamID string, weekID weekclock.WeekID, slotID timeslot.SlotID, userID string, op Op) error {
	if _, _, err := weekclock.ParseWeekID(weekID); err != nil {
		return err
	}
	if _, _, _, err := timeslot.ParseSlotID(slotID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin slot update: %w", err)
	}

	record, err := s.getRecordLocked(tx, teamID, weekID)
	if err != nil {
		tx.Rollback()
		return err
	}

	switch op {
	case OpAdd:
		record.Slots[slotID] = appendUnique(record.Slots[slotID], userID)
		record.Unavailable[slotID] = removeUser(record.Unavailable[slotID], userID)
	case OpRemove:
		record.Slots[slotID] = removeUser(record.Slots[slotID], userID)
	case OpMarkUnavailable:
		record.Unavailable[slotID] = appendUnique(record.Unavailable[slotID], userID)
		record.Slots[slotID] = removeUser(record.Slots[slotID], userID)
	case OpClearUnavailable:
		record.Unavailable[slotID] = removeUser(record.Unavailable[slotID], userID)
	default:
		tx.Rollback()
		return faults.Validationf("unknown slot operation %q", op)
	}

	pruneEmpty(record.Slots)
	pruneEmpty(record.Unavailable)

	slotsJSON, err := json.Marshal(record.Slots)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to encode slots: %w", err)
	}
	unavailableJSON, err := json.Marshal(record.Unavailable)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to encode unavailable: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO availability (team_id, week_id, slots_json, unavailable_json, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(team_id, week_id) DO UPDATE SET
			slots_json = excluded.slots_json,
			unavailable_json = excluded.unavailable_json,
			updated_at = excluded.updated_at;
	`, teamID, string(weekID), slotsJSON, unavailableJSON, time.Now().Unix())
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to save availability for %s/%s: %w", teamID, weekID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit slot update: %w", err)
	}

	log.Debug("Saved slot update", "team", teamID, "week", weekID, "slot", slotID, "user", userID, "op", op)
	if s.pub != nil {
		s.pub.PublishAvailabilityUpdated(teamID, weekID)
	}
	return nil
}

// Clear wipes all availability records.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM availability`); err != nil {
		log.Error("Failed to clear availability", "error", err)
	}
}

func appendUnique(users []string, userID string) []string {
	for _, u := range users {
		if u == userID {
			return users
		}
	}
	return append(users, userID)
}

func removeUser(users []string, userID string) []string {
	out := users[:0]
	for _, u := range users {
		if u != userID {
			out = append(out, u)
		}
	}
	return out
}

func pruneEmpty(m map[timeslot.SlotID][]string) {
	for slot, users := range m {
		if len(users) == 0 {
			delete(m, slot)
		}
	}
}
