package schedule

import (
	"sync"
	"time"

	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// MockStore is a mock implementation of the MatchStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateMatchFunc        func(match *ScheduledMatch) error
	GetUpcomingMatchesFunc func() ([]*ScheduledMatch, error)
	GetMatchesForWeekFunc  func(weekID weekclock.WeekID) ([]*ScheduledMatch, error)
	GetAllMatchesFunc      func() ([]*ScheduledMatch, error)
	CompleteMatchesFunc    func(matchIDs []string, completedAt time.Time) error
	CancelMatchFunc        func(matchID string) error
	ClearFunc              func()

	// Call records
	CreateMatchCalls     []*ScheduledMatch
	CompleteMatchesCalls [][]string
	CancelMatchCalls     []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

var _ MatchStore = (*MockStore)(nil)

func (m *MockStore) CreateMatch(match *ScheduledMatch) error {
	m.mu.Lock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, match)
	m.mu.Unlock()
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(match)
	}
	return nil
}

func (m *MockStore) GetUpcomingMatches() ([]*ScheduledMatch, error) {
	if m.GetUpcomingMatchesFunc != nil {
		return m.GetUpcomingMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) GetMatchesForWeek(weekID weekclock.WeekID) ([]*ScheduledMatch, error) {
	if m.GetMatchesForWeekFunc != nil {
		return m.GetMatchesForWeekFunc(weekID)
	}
	return nil, nil
}

func (m *MockStore) GetAllMatches() ([]*ScheduledMatch, error) {
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) CompleteMatches(matchIDs []string, completedAt time.Time) error {
	m.mu.Lock()
	m.CompleteMatchesCalls = append(m.CompleteMatchesCalls, matchIDs)
	m.mu.Unlock()
	if m.CompleteMatchesFunc != nil {
		return m.CompleteMatchesFunc(matchIDs, completedAt)
	}
	return nil
}

func (m *MockStore) CancelMatch(matchID string) error {
	m.mu.Lock()
	m.CancelMatchCalls = append(m.CancelMatchCalls, matchID)
	m.mu.Unlock()
	if m.CancelMatchFunc != nil {
		return m.CancelMatchFunc(matchID)
	}
	return nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
