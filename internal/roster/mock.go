package roster

import "sync"

// MockStore is a mock implementation of the RosterStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertTeamFunc   func(team Team) error
	GetTeamFunc      func(teamID string) (*Team, error)
	GetAllTeamsFunc  func() ([]Team, error)
	AddMemberFunc    func(teamID, userID, name string) error
	RemoveMemberFunc func(teamID, userID string) error
	GetRosterFunc    func(teamID string) ([]Member, error)
	TeamsForUserFunc func(userID string) ([]Team, error)
	ClearFunc        func()

	// Call records
	UpsertTeamCalls []Team
	GetRosterCalls  []string
	AddMemberCalls  []struct {
		TeamID string
		UserID string
		Name   string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

var _ RosterStore = (*MockStore)(nil)

func (m *MockStore) UpsertTeam(team Team) error {
	m.mu.Lock()
	m.UpsertTeamCalls = append(m.UpsertTeamCalls, team)
	m.mu.Unlock()
	if m.UpsertTeamFunc != nil {
		return m.UpsertTeamFunc(team)
	}
	return nil
}

func (m *MockStore) GetTeam(teamID string) (*Team, error) {
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(teamID)
	}
	return &Team{ID: teamID, Name: teamID}, nil
}

func (m *MockStore) GetAllTeams() ([]Team, error) {
	if m.GetAllTeamsFunc != nil {
		return m.GetAllTeamsFunc()
	}
	return nil, nil
}

func (m *MockStore) AddMember(teamID, userID, name string) error {
	m.mu.Lock()
	m.AddMemberCalls = append(m.AddMemberCalls, struct {
		TeamID string
		UserID string
		Name   string
	}{teamID, userID, name})
	m.mu.Unlock()
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(teamID, userID, name)
	}
	return nil
}

func (m *MockStore) RemoveMember(teamID, userID string) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(teamID, userID)
	}
	return nil
}

func (m *MockStore) GetRoster(teamID string) ([]Member, error) {
	m.mu.Lock()
	m.GetRosterCalls = append(m.GetRosterCalls, teamID)
	m.mu.Unlock()
	if m.GetRosterFunc != nil {
		return m.GetRosterFunc(teamID)
	}
	return []Member{}, nil
}

func (m *MockStore) TeamsForUser(userID string) ([]Team, error) {
	if m.TeamsForUserFunc != nil {
		return m.TeamsForUserFunc(userID)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
