// Package proposal mediates the propose, confirm, seal lifecycle that
// turns an availability overlap into a fixed scheduled match. Who may
// propose or confirm is an authorization question the transport layer
// answers before calling in here.
package proposal

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/matcher"
	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// Service drives proposals through their lifecycle.
type Service struct {
	proposals ProposalStore
	matches   schedule.MatchStore
	resolver  *matcher.Resolver
	notifier  Notifier
	pub       schedule.Publisher
}

// NewService creates a new proposal Service. notifier and pub may be nil.
func NewService(proposals ProposalStore, matches schedule.MatchStore, resolver *matcher.Resolver, notifier Notifier, pub schedule.Publisher) *Service {
	return &Service{
		proposals: proposals,
		matches:   matches,
		resolver:  resolver,
		notifier:  notifier,
		pub:       pub,
	}
}

// Create opens a new proposal for a specific slot. The slot must currently
// be viable for the pair under the given filter; proposing a blocked or
// under-populated slot fails with a precondition error.
func (s *Service) Create(proposerTeam, opponentTeam string, weekID weekclock.WeekID, slot timeslot.SlotID, filter matcher.MinFilter, dryRun bool) (*Proposal, error) {
	if _, _, err := weekclock.ParseWeekID(weekID); err != nil {
		return nil, err
	}
	if _, _, _, err := timeslot.ParseSlotID(slot); err != nil {
		return nil, err
	}
	if proposerTeam == opponentTeam {
		return nil, faults.Validationf("a team cannot propose a match against itself")
	}

	viable, err := s.resolver.ComputeViableSlots(proposerTeam, opponentTeam, weekID, filter)
	if err != nil {
		return nil, err
	}
	found := false
	for _, v := range viable {
		if v.Slot == slot {
			found = true
			break
		}
	}
	if !found {
		return nil, faults.FailedPreconditionf("slot %s in week %s is not viable for %s vs %s", slot, weekID, proposerTeam, opponentTeam)
	}

	now := time.Now()
	p := &Proposal{
		ID:             uuid.New().String(),
		ProposerTeamID: proposerTeam,
		OpponentTeamID: opponentTeam,
		WeekID:         weekID,
		Slot:           slot,
		MinFilter:      filter,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.proposals.CreateProposal(p); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendProposalCreated(p, dryRun); err != nil {
			log.Error("Failed to send proposal notification", "proposalID", p.ID, "error", err)
		}
	}
	return p, nil
}

// Confirm moves a pending proposal to confirmed.
func (s *Service) Confirm(proposalID string, dryRun bool) (*Proposal, error) {
	if err := s.proposals.UpdateStatus(proposalID, StatusPending, StatusConfirmed); err != nil {
		return nil, err
	}
	p, err := s.proposals.GetProposal(proposalID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendProposalConfirmed(p, dryRun); err != nil {
			log.Error("Failed to send confirmation notification", "proposalID", p.ID, "error", err)
		}
	}
	return p, nil
}

// Seal turns a confirmed proposal into a scheduled match. The match store
// re-checks for a conflicting upcoming match inside its transaction, so a
// race between two proposals for the same slot surfaces here as an
// already-booked error and the proposal stays confirmed.
func (s *Service) Seal(proposalID string, gameType schedule.GameType, dryRun bool) (*schedule.ScheduledMatch, error) {
	p, err := s.proposals.GetProposal(proposalID)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusConfirmed {
		return nil, faults.FailedPreconditionf("proposal %s is not confirmed", proposalID)
	}

	scheduledDate, err := slotDate(p.WeekID, p.Slot)
	if err != nil {
		return nil, err
	}

	match := &schedule.ScheduledMatch{
		ID:            uuid.New().String(),
		TeamAID:       p.ProposerTeamID,
		TeamBID:       p.OpponentTeamID,
		WeekID:        p.WeekID,
		BlockedSlot:   p.Slot,
		ScheduledDate: scheduledDate,
		Status:        schedule.StatusUpcoming,
		GameType:      gameType,
		Origin:        schedule.OriginProposal,
		CreatedAt:     time.Now().Unix(),
	}

	if dryRun {
		log.Info("[Dry Run] Would seal proposal", "proposalID", p.ID, "matchID", match.ID)
		return match, nil
	}

	if err := s.matches.CreateMatch(match); err != nil {
		return nil, err
	}
	if err := s.proposals.UpdateStatus(proposalID, StatusConfirmed, StatusSealed); err != nil {
		// The match exists; losing the status update just means the
		// proposal shows as confirmed until retried.
		log.Error("Sealed match but failed to update proposal status", "proposalID", p.ID, "matchID", match.ID, "error", err)
	}

	if s.pub != nil {
		s.pub.PublishMatchesChanged(p.WeekID)
	}
	if s.notifier != nil {
		if err := s.notifier.SendMatchSealed(p, match, dryRun); err != nil {
			log.Error("Failed to send sealed notification", "proposalID", p.ID, "error", err)
		}
	}
	return match, nil
}

// Cancel withdraws a pending or confirmed proposal.
func (s *Service) Cancel(proposalID string, dryRun bool) error {
	if err := s.proposals.UpdateStatus(proposalID, StatusPending, StatusCancelled); err == nil {
		return s.notifyCancelled(proposalID, dryRun)
	}
	if err := s.proposals.UpdateStatus(proposalID, StatusConfirmed, StatusCancelled); err != nil {
		return err
	}
	return s.notifyCancelled(proposalID, dryRun)
}

func (s *Service) notifyCancelled(proposalID string, dryRun bool) error {
	if s.notifier == nil {
		return nil
	}
	p, err := s.proposals.GetProposal(proposalID)
	if err != nil {
		return err
	}
	if err := s.notifier.SendProposalCancelled(p, dryRun); err != nil {
		log.Error("Failed to send cancellation notification", "proposalID", proposalID, "error", err)
	}
	return nil
}

// slotDate resolves the calendar date (UTC, YYYY-MM-DD) a slot falls on
// within its week.
func slotDate(weekID weekclock.WeekID, slot timeslot.SlotID) (string, error) {
	monday, err := weekclock.MondayOfWeek(weekID)
	if err != nil {
		return "", err
	}
	day, _, _, err := timeslot.ParseSlotID(slot)
	if err != nil {
		return "", err
	}
	return monday.AddDate(0, 0, day).Format("2006-01-02"), nil
}
