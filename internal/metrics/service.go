package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchComputeRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_match_compute_runs_total",
			Help: "The total number of availability matching computations.",
		}),
		MatchComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scrim_match_compute_duration_seconds",
			Help:    "The duration of individual availability matching computations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ExpirationSweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_expiration_sweeps_total",
			Help: "The total number of match expiration sweep runs.",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_matches_completed_total",
			Help: "The total number of matches transitioned to completed by the sweeper.",
		}),
		TemplateSweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_template_sweeps_total",
			Help: "The total number of weekly template sweep runs.",
		}),
		TemplatesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_templates_applied_total",
			Help: "The total number of template slots written by the applier.",
		}),
		FixturesImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_fixtures_imported_total",
			Help: "The total number of league fixtures imported as matches.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scrim_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchComputeRuns,
		s.MatchComputeDuration,
		s.ExpirationSweeps,
		s.MatchesCompleted,
		s.TemplateSweeps,
		s.TemplatesApplied,
		s.FixturesImported,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchComputeRuns() {
	s.MatchComputeRuns.Inc()
}

func (s *Service) ObserveMatchComputeDuration(duration float64) {
	s.MatchComputeDuration.Observe(duration)
}

func (s *Service) IncExpirationSweeps() {
	s.ExpirationSweeps.Inc()
}

func (s *Service) AddMatchesCompleted(count int) {
	s.MatchesCompleted.Add(float64(count))
}

func (s *Service) IncTemplateSweeps() {
	s.TemplateSweeps.Inc()
}

func (s *Service) AddTemplatesApplied(count int) {
	s.TemplatesApplied.Add(float64(count))
}

func (s *Service) AddFixturesImported(count int) {
	s.FixturesImported.Add(float64(count))
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
