package fixtures

import "sync"

// MockClient is a mock implementation of the LeagueClient interface for testing.
type MockClient struct {
	mu sync.Mutex

	GetFixturesFunc func(params *SearchFixturesParams) ([]Fixture, error)

	GetFixturesCalls []*SearchFixturesParams
}

var _ LeagueClient = (*MockClient)(nil)

func (m *MockClient) GetFixtures(params *SearchFixturesParams) ([]Fixture, error) {
	m.mu.Lock()
	m.GetFixturesCalls = append(m.GetFixturesCalls, params)
	m.mu.Unlock()
	if m.GetFixturesFunc != nil {
		return m.GetFixturesFunc(params)
	}
	return nil, nil
}
