package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	MatchComputeRuns     prometheus.Counter
	MatchComputeDuration prometheus.Histogram
	ExpirationSweeps     prometheus.Counter
	MatchesCompleted     prometheus.Counter
	TemplateSweeps       prometheus.Counter
	TemplatesApplied     prometheus.Counter
	FixturesImported     prometheus.Counter
	SlackNotifSent       prometheus.Counter
	SlackNotifFailed     prometheus.Counter
	StartupTimeSeconds   prometheus.Gauge
}
