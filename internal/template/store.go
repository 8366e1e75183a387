package template

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// New creates a new TemplateStore.
func New(db *sql.DB) TemplateStore {
	return &store{
		db: db,
	}
}

// GetTemplate retrieves a user's template.
func (s *store) GetTemplate(userID string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT user_id, slots_json, recurring, last_applied_week_id
		FROM templates WHERE user_id = ?
	`, userID)
	template, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, faults.NotFoundf("template for user %s", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template for user %s: %w", userID, err)
	}
	return template, nil
}

// SaveTemplate inserts or replaces a user's template.
func (s *store) SaveTemplate(template *Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slotsJSON, err := json.Marshal(template.Slots)
	if err != nil {
		return fmt.Errorf("failed to encode template slots: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO templates (user_id, slots_json, recurring, last_applied_week_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			slots_json = excluded.slots_json,
			recurring = excluded.recurring,
			last_applied_week_id = excluded.last_applied_week_id;
	`, template.UserID, slotsJSON, template.Recurring, string(template.LastAppliedWeekID))
	if err != nil {
		return fmt.Errorf("failed to save template for user %s: %w", template.UserID, err)
	}
	return nil
}

// SetRecurringFlag updates only the recurring flag and sweep watermark.
func (s *store) SetRecurringFlag(userID string, recurring bool, lastApplied weekclock.WeekID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE templates SET recurring = ?, last_applied_week_id = ? WHERE user_id = ?
	`, recurring, string(lastApplied), userID)
	if err != nil {
		return fmt.Errorf("failed to set recurring flag for user %s: %w", userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set recurring flag for user %s: %w", userID, err)
	}
	if affected == 0 {
		return faults.NotFoundf("template for user %s", userID)
	}
	return nil
}

// GetRecurringTemplates returns every template with recurring enabled.
func (s *store) GetRecurringTemplates() ([]*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT user_id, slots_json, recurring, last_applied_week_id
		FROM templates WHERE recurring = 1 ORDER BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring templates: %w", err)
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			log.Error("Failed to scan template row", "error", err)
			continue
		}
		templates = append(templates, template)
	}
	return templates, rows.Err()
}

func scanTemplate(scanner interface{ Scan(...any) error }) (*Template, error) {
	var template Template
	var slotsJSON []byte
	var lastApplied string

	if err := scanner.Scan(&template.UserID, &slotsJSON, &template.Recurring, &lastApplied); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(slotsJSON, &template.Slots); err != nil {
		return nil, err
	}
	template.LastAppliedWeekID = weekclock.WeekID(lastApplied)
	return &template, nil
}

// Clear wipes all templates.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM templates`); err != nil {
		log.Error("Failed to clear templates", "error", err)
	}
}
