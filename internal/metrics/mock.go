package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	matchComputeRuns int
	computeDurations []float64
	expirationSweeps int
	matchesCompleted int
	templateSweeps   int
	templatesApplied int
	fixturesImported int
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		computeDurations: make([]float64, 0),
	}
}

var _ Metrics = (*Mock)(nil)

func (m *Mock) IncMatchComputeRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchComputeRuns++
}

func (m *Mock) ObserveMatchComputeDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.computeDurations = append(m.computeDurations, duration)
}

func (m *Mock) IncExpirationSweeps() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expirationSweeps++
}

func (m *Mock) AddMatchesCompleted(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCompleted += count
}

func (m *Mock) IncTemplateSweeps() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templateSweeps++
}

func (m *Mock) AddTemplatesApplied(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templatesApplied += count
}

func (m *Mock) AddFixturesImported(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixturesImported += count
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchComputeRuns returns the number of times IncMatchComputeRuns was called.
func (m *Mock) MatchComputeRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchComputeRuns
}

// MatchesCompleted returns the accumulated completed-match count.
func (m *Mock) MatchesCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCompleted
}

// TemplatesApplied returns the accumulated applied-slot count.
func (m *Mock) TemplatesApplied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.templatesApplied
}

// FixturesImported returns the accumulated imported-fixture count.
func (m *Mock) FixturesImported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fixturesImported
}

// SlackNotifSent returns the number of successful notification sends.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}
