package notifier

import (
	"sync"

	"github.com/mauv0809/scrimsync/internal/proposal"
	"github.com/mauv0809/scrimsync/internal/schedule"
)

// MockNotifier is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	// Spies for method calls
	SendProposalCreatedFunc   func(p *proposal.Proposal, dryRun bool) error
	SendProposalConfirmedFunc func(p *proposal.Proposal, dryRun bool) error
	SendMatchSealedFunc       func(p *proposal.Proposal, match *schedule.ScheduledMatch, dryRun bool) error
	SendProposalCancelledFunc func(p *proposal.Proposal, dryRun bool) error

	// Call records
	CreatedCalls   []*proposal.Proposal
	ConfirmedCalls []*proposal.Proposal
	SealedCalls    []*schedule.ScheduledMatch
	CancelledCalls []*proposal.Proposal
}

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

var _ Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) SendProposalCreated(p *proposal.Proposal, dryRun bool) error {
	m.mu.Lock()
	m.CreatedCalls = append(m.CreatedCalls, p)
	m.mu.Unlock()
	if m.SendProposalCreatedFunc != nil {
		return m.SendProposalCreatedFunc(p, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendProposalConfirmed(p *proposal.Proposal, dryRun bool) error {
	m.mu.Lock()
	m.ConfirmedCalls = append(m.ConfirmedCalls, p)
	m.mu.Unlock()
	if m.SendProposalConfirmedFunc != nil {
		return m.SendProposalConfirmedFunc(p, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendMatchSealed(p *proposal.Proposal, match *schedule.ScheduledMatch, dryRun bool) error {
	m.mu.Lock()
	m.SealedCalls = append(m.SealedCalls, match)
	m.mu.Unlock()
	if m.SendMatchSealedFunc != nil {
		return m.SendMatchSealedFunc(p, match, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendProposalCancelled(p *proposal.Proposal, dryRun bool) error {
	m.mu.Lock()
	m.CancelledCalls = append(m.CancelledCalls, p)
	m.mu.Unlock()
	if m.SendProposalCancelledFunc != nil {
		return m.SendProposalCancelledFunc(p, dryRun)
	}
	return nil
}
