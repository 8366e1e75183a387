package availability

import (
	"sync"

	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// MockStore is a mock implementation of the AvailabilityStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetRecordFunc      func(teamID string, weekID weekclock.WeekID) (*Record, error)
	SaveSlotUpdateFunc func(teamID string, weekID weekclock.WeekID, slotID timeslot.SlotID, userID string, op Op) error
	ClearFunc          func()

	// Call records
	SaveSlotUpdateCalls []SlotUpdateCall
	GetRecordCalls      []struct {
		TeamID string
		WeekID weekclock.WeekID
	}
}

// SlotUpdateCall records one SaveSlotUpdate invocation.
type SlotUpdateCall struct {
	TeamID string
	WeekID weekclock.WeekID
	SlotID timeslot.SlotID
	UserID string
	Op     Op
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

var _ AvailabilityStore = (*MockStore)(nil)

func (m *MockStore) GetRecord(teamID string, weekID weekclock.WeekID) (*Record, error) {
	m.mu.Lock()
	m.GetRecordCalls = append(m.GetRecordCalls, struct {
		TeamID string
		WeekID weekclock.WeekID
	}{teamID, weekID})
	m.mu.Unlock()
	if m.GetRecordFunc != nil {
		return m.GetRecordFunc(teamID, weekID)
	}
	return &Record{
		TeamID:      teamID,
		WeekID:      weekID,
		Slots:       map[timeslot.SlotID][]string{},
		Unavailable: map[timeslot.SlotID][]string{},
	}, nil
}

func (m *MockStore) SaveSlotUpdate(teamID string, weekID weekclock.WeekID, slotID timeslot.SlotID, userID string, op Op) error {
	m.mu.Lock()
	m.SaveSlotUpdateCalls = append(m.SaveSlotUpdateCalls, SlotUpdateCall{teamID, weekID, slotID, userID, op})
	m.mu.Unlock()
	if m.SaveSlotUpdateFunc != nil {
		return m.SaveSlotUpdateFunc(teamID, weekID, slotID, userID, op)
	}
	return nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
