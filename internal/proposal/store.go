package proposal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// NewStore creates a new ProposalStore.
func NewStore(db *sql.DB) ProposalStore {
	return &store{
		db: db,
	}
}

// CreateProposal inserts a new proposal.
func (s *store) CreateProposal(p *Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO proposals (id, proposer_team_id, opponent_team_id, week_id, slot, min_your_team, min_opponent, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.ProposerTeamID, p.OpponentTeamID, string(p.WeekID), string(p.Slot),
		p.MinFilter.YourTeam, p.MinFilter.Opponent, string(p.Status), p.CreatedAt.Unix(), p.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}

	log.Info("Created proposal", "id", p.ID, "proposer", p.ProposerTeamID, "opponent", p.OpponentTeamID, "week", p.WeekID, "slot", p.Slot)
	return nil
}

// GetProposal retrieves a proposal by ID.
func (s *store) GetProposal(proposalID string) (*Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, proposer_team_id, opponent_team_id, week_id, slot, min_your_team, min_opponent, status, created_at, updated_at
		FROM proposals WHERE id = ?
	`, proposalID)
	p, err := scanProposal(row)
	if err == sql.ErrNoRows {
		return nil, faults.NotFoundf("proposal %s", proposalID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal %s: %w", proposalID, err)
	}
	return p, nil
}

// UpdateStatus transitions a proposal between statuses with a guard on the
// expected current status.
func (s *store) UpdateStatus(proposalID string, from, to Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE proposals SET status = ?, updated_at = ? WHERE id = ? AND status = ?
	`, string(to), time.Now().Unix(), proposalID, string(from))
	if err != nil {
		return fmt.Errorf("failed to update proposal %s: %w", proposalID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update proposal %s: %w", proposalID, err)
	}
	if affected == 0 {
		return faults.FailedPreconditionf("proposal %s is not %s", proposalID, from)
	}
	return nil
}

// GetOpenProposals returns all proposals still pending or confirmed.
func (s *store) GetOpenProposals() ([]*Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, proposer_team_id, opponent_team_id, week_id, slot, min_your_team, min_opponent, status, created_at, updated_at
		FROM proposals WHERE status IN (?, ?) ORDER BY created_at
	`, string(StatusPending), string(StatusConfirmed))
	if err != nil {
		return nil, fmt.Errorf("failed to list open proposals: %w", err)
	}
	defer rows.Close()

	var proposals []*Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			log.Error("Failed to scan proposal row", "error", err)
			continue
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func scanProposal(scanner interface{ Scan(...any) error }) (*Proposal, error) {
	var p Proposal
	var weekID, slot, status string
	var createdAt, updatedAt int64

	err := scanner.Scan(
		&p.ID,
		&p.ProposerTeamID,
		&p.OpponentTeamID,
		&weekID,
		&slot,
		&p.MinFilter.YourTeam,
		&p.MinFilter.Opponent,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.WeekID = weekclock.WeekID(weekID)
	p.Slot = timeslot.SlotID(slot)
	p.Status = Status(status)
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

// Clear wipes all proposals.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM proposals`); err != nil {
		log.Error("Failed to clear proposals", "error", err)
	}
}
