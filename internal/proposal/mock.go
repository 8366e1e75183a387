package proposal

import (
	"sync"

	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/schedule"
)

// MockStore is an in-memory ProposalStore for tests.
type MockStore struct {
	mu        sync.Mutex
	proposals map[string]*Proposal

	CreateProposalFunc func(p *Proposal) error
	UpdateStatusFunc   func(proposalID string, from, to Status) error

	UpdateStatusCalls []UpdateStatusCall
}

type UpdateStatusCall struct {
	ProposalID string
	From       Status
	To         Status
}

var _ ProposalStore = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{proposals: make(map[string]*Proposal)}
}

func (m *MockStore) CreateProposal(p *Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateProposalFunc != nil {
		return m.CreateProposalFunc(p)
	}
	cp := *p
	m.proposals[p.ID] = &cp
	return nil
}

func (m *MockStore) GetProposal(proposalID string) (*Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.proposals[proposalID]
	if !ok {
		return nil, faults.NotFoundf("proposal %s not found", proposalID)
	}
	cp := *p
	return &cp, nil
}

func (m *MockStore) UpdateStatus(proposalID string, from, to Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateStatusCalls = append(m.UpdateStatusCalls, UpdateStatusCall{ProposalID: proposalID, From: from, To: to})
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(proposalID, from, to)
	}
	p, ok := m.proposals[proposalID]
	if !ok || p.Status != from {
		return faults.FailedPreconditionf("proposal %s is not in status %s", proposalID, from)
	}
	p.Status = to
	return nil
}

func (m *MockStore) GetOpenProposals() ([]*Proposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Proposal
	for _, p := range m.proposals {
		if p.Status == StatusPending || p.Status == StatusConfirmed {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proposals = make(map[string]*Proposal)
	m.UpdateStatusCalls = nil
}

// MockNotifier records proposal notifications for tests.
type MockNotifier struct {
	mu        sync.Mutex
	Created   []*Proposal
	Confirmed []*Proposal
	Sealed    []*schedule.ScheduledMatch
	Cancelled []*Proposal
}

var _ Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) SendProposalCreated(p *Proposal, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, p)
	return nil
}

func (m *MockNotifier) SendProposalConfirmed(p *Proposal, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Confirmed = append(m.Confirmed, p)
	return nil
}

func (m *MockNotifier) SendMatchSealed(p *Proposal, match *schedule.ScheduledMatch, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sealed = append(m.Sealed, match)
	return nil
}

func (m *MockNotifier) SendProposalCancelled(p *Proposal, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cancelled = append(m.Cancelled, p)
	return nil
}
