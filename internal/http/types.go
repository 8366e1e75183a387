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

type Server struct {
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
	Cfg            config.Config
	Router         *http.ServeMux

	pubsub   pubsub.PubSubClient
	validate *validator.Validate
}
