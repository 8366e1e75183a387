package proposal

import "github.com/mauv0809/scrimsync/internal/schedule"

// ProposalStore defines the interface for persisting match proposals.
type ProposalStore interface {
	CreateProposal(p *Proposal) error
	GetProposal(proposalID string) (*Proposal, error)
	// UpdateStatus transitions a proposal from an expected current status
	// to a new one; it fails when the proposal is not in that status, so
	// concurrent transitions cannot double-apply.
	UpdateStatus(proposalID string, from, to Status) error
	GetOpenProposals() ([]*Proposal, error)
	Clear()
}

// Notifier defines the notification operations required by the proposal
// lifecycle. This keeps the proposal package decoupled from the main
// notifier interface.
type Notifier interface {
	SendProposalCreated(p *Proposal, dryRun bool) error
	SendProposalConfirmed(p *Proposal, dryRun bool) error
	SendMatchSealed(p *Proposal, match *schedule.ScheduledMatch, dryRun bool) error
	SendProposalCancelled(p *Proposal, dryRun bool) error
}
