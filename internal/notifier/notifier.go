package notifier

import (
	"github.com/mauv0809/scrimsync/internal/proposal"
	"github.com/mauv0809/scrimsync/internal/schedule"
)

// Notifier defines a high-level interface for announcing scheduling events.
// This decouples the rest of the application from the specific notification
// provider (e.g., Slack). It satisfies proposal.Notifier.
type Notifier interface {
	SendProposalCreated(p *proposal.Proposal, dryRun bool) error
	SendProposalConfirmed(p *proposal.Proposal, dryRun bool) error
	SendMatchSealed(p *proposal.Proposal, match *schedule.ScheduledMatch, dryRun bool) error
	SendProposalCancelled(p *proposal.Proposal, dryRun bool) error
}
