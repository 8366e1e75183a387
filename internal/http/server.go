package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mauv0809/scrimsync/internal/availability"
	"github.com/mauv0809/scrimsync/internal/config"
	"github.com/mauv0809/scrimsync/internal/fixtures"
	"github.com/mauv0809/scrimsync/internal/matcher"
	"github.com/mauv0809/scrimsync/internal/metrics"
	"github.com/mauv0809/scrimsync/internal/proposal"
	"github.com/mauv0809/scrimsync/internal/pubsub"
	"github.com/mauv0809/scrimsync/internal/roster"
	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/template"
)

// Deps bundles everything the server needs. Optional fields (Importer,
// pubsub) may be nil; their endpoints then return 503.
type Deps struct {
	Rosters        roster.RosterStore
	Avail          availability.AvailabilityStore
	Cache          *availability.Cache
	Matcher        *matcher.Matcher
	Resolver       *matcher.Resolver
	Matches        schedule.MatchStore
	Sweeper        *schedule.Sweeper
	Proposals      *proposal.Service
	ProposalStore  proposal.ProposalStore
	Templates      template.TemplateStore
	Applier        *template.Applier
	Importer       *fixtures.Importer
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	PubSub         pubsub.PubSubClient
}

func NewServer(cfg config.Config, deps Deps) *Server {
	server := &Server{
		Rosters:        deps.Rosters,
		Avail:          deps.Avail,
		Cache:          deps.Cache,
		Matcher:        deps.Matcher,
		Resolver:       deps.Resolver,
		Matches:        deps.Matches,
		Sweeper:        deps.Sweeper,
		Proposals:      deps.Proposals,
		ProposalStore:  deps.ProposalStore,
		Templates:      deps.Templates,
		Applier:        deps.Applier,
		Importer:       deps.Importer,
		Metrics:        deps.Metrics,
		MetricsHandler: deps.MetricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         deps.PubSub,
		validate:       validator.New(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/teams", Chain(s.TeamsHandler(), paramsMiddleware))
	s.Router.Handle("/teams/member", Chain(s.TeamMemberHandler(), paramsMiddleware))
	s.Router.Handle("/teams/roster", Chain(s.RosterHandler(), paramsMiddleware))
	s.Router.Handle("/availability", Chain(s.AvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("/availability/slot", Chain(s.SlotUpdateHandler(), paramsMiddleware))
	s.Router.Handle("/matching", Chain(s.MatchingHandler(), paramsMiddleware))
	s.Router.Handle("/viable-slots", Chain(s.ViableSlotsHandler(), paramsMiddleware))
	s.Router.Handle("/blocked-slots", Chain(s.BlockedSlotsHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/matches/cancel", Chain(s.CancelMatchHandler(), paramsMiddleware))
	s.Router.Handle("/proposals", Chain(s.ProposalsHandler(), paramsMiddleware))
	s.Router.Handle("/proposals/confirm", Chain(s.ConfirmProposalHandler(), paramsMiddleware))
	s.Router.Handle("/proposals/seal", Chain(s.SealProposalHandler(), paramsMiddleware))
	s.Router.Handle("/proposals/cancel", Chain(s.CancelProposalHandler(), paramsMiddleware))
	s.Router.Handle("/templates", Chain(s.TemplatesHandler(), paramsMiddleware))
	s.Router.Handle("/templates/recurring", Chain(s.RecurringTemplateHandler(), paramsMiddleware))
	s.Router.Handle("/sweep/expiration", Chain(s.ExpirationSweepHandler(), paramsMiddleware))
	s.Router.Handle("/sweep/templates", Chain(s.TemplateSweepHandler(), paramsMiddleware))
	s.Router.Handle("/fixtures/import", Chain(s.ImportFixturesHandler(), paramsMiddleware))
	s.Router.Handle("/pubsub/availability-updated", Chain(s.AvailabilityUpdatedHandler(), paramsMiddleware))
	s.Router.Handle("/pubsub/matches-changed", Chain(s.MatchesChangedHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
