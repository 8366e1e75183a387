package template

import (
	"sync"

	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// MockStore is a mock implementation of the TemplateStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetTemplateFunc           func(userID string) (*Template, error)
	SaveTemplateFunc          func(template *Template) error
	SetRecurringFlagFunc      func(userID string, recurring bool, lastApplied weekclock.WeekID) error
	GetRecurringTemplatesFunc func() ([]*Template, error)
	ClearFunc                 func()

	// Call records
	SaveTemplateCalls     []*Template
	SetRecurringFlagCalls []struct {
		UserID      string
		Recurring   bool
		LastApplied weekclock.WeekID
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

var _ TemplateStore = (*MockStore)(nil)

func (m *MockStore) GetTemplate(userID string) (*Template, error) {
	if m.GetTemplateFunc != nil {
		return m.GetTemplateFunc(userID)
	}
	return &Template{UserID: userID}, nil
}

func (m *MockStore) SaveTemplate(template *Template) error {
	m.mu.Lock()
	m.SaveTemplateCalls = append(m.SaveTemplateCalls, template)
	m.mu.Unlock()
	if m.SaveTemplateFunc != nil {
		return m.SaveTemplateFunc(template)
	}
	return nil
}

func (m *MockStore) SetRecurringFlag(userID string, recurring bool, lastApplied weekclock.WeekID) error {
	m.mu.Lock()
	m.SetRecurringFlagCalls = append(m.SetRecurringFlagCalls, struct {
		UserID      string
		Recurring   bool
		LastApplied weekclock.WeekID
	}{userID, recurring, lastApplied})
	m.mu.Unlock()
	if m.SetRecurringFlagFunc != nil {
		return m.SetRecurringFlagFunc(userID, recurring, lastApplied)
	}
	return nil
}

func (m *MockStore) GetRecurringTemplates() ([]*Template, error) {
	if m.GetRecurringTemplatesFunc != nil {
		return m.GetRecurringTemplatesFunc()
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
