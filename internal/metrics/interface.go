package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchComputeRuns()
	ObserveMatchComputeDuration(duration float64)
	IncExpirationSweeps()
	AddMatchesCompleted(count int)
	IncTemplateSweeps()
	AddTemplatesApplied(count int)
	AddFixturesImported(count int)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
