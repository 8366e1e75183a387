package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/availability"
	"github.com/mauv0809/scrimsync/internal/config"
	"github.com/mauv0809/scrimsync/internal/database"
	"github.com/mauv0809/scrimsync/internal/fixtures"
	server "github.com/mauv0809/scrimsync/internal/http"
	"github.com/mauv0809/scrimsync/internal/jobs"
	"github.com/mauv0809/scrimsync/internal/matcher"
	"github.com/mauv0809/scrimsync/internal/metrics"
	"github.com/mauv0809/scrimsync/internal/notifier"
	"github.com/mauv0809/scrimsync/internal/notifier/slack"
	"github.com/mauv0809/scrimsync/internal/proposal"
	"github.com/mauv0809/scrimsync/internal/pubsub"
	"github.com/mauv0809/scrimsync/internal/roster"
	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/template"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	pubsubClient := pubsub.New(cfg.ProjectID)
	publisher := pubsub.NewPublisher(pubsubClient)

	rosterStore := roster.New(db)
	availStore := availability.New(db, publisher)
	cache := availability.NewCache(availStore)
	matchStore := schedule.New(db)
	templateStore := template.New(db)
	proposalStore := proposal.NewStore(db)

	matcherSvc := matcher.New(cache, rosterStore, matchStore, metricsSvc)
	cache.Subscribe(matcherSvc.HandleInvalidation)
	resolver := matcher.NewResolver(cache, matchStore)

	var notifierSvc notifier.Notifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, cfg.Timezone, metricsSvc)
	sweeper := schedule.NewSweeper(matchStore, metricsSvc, publisher)
	applier := template.NewApplier(templateStore, availStore, rosterStore, metricsSvc)
	proposalSvc := proposal.NewService(proposalStore, matchStore, resolver, notifierSvc, publisher)

	var importer *fixtures.Importer
	if cfg.League.LeagueID != "" {
		leagueClient := fixtures.NewClient(cfg.League.BaseURL)
		importer = fixtures.NewImporter(leagueClient, matchStore, metricsSvc, publisher)
	} else {
		log.Info("LEAGUE_ID not set, fixture import disabled")
	}

	runner := jobs.NewRunner(sweeper, applier)
	if err := runner.Start(); err != nil {
		log.Fatalf("Failed to start background jobs: %s", err)
	}
	defer runner.Stop()

	s := server.NewServer(cfg, server.Deps{
		Rosters:        rosterStore,
		Avail:          availStore,
		Cache:          cache,
		Matcher:        matcherSvc,
		Resolver:       resolver,
		Matches:        matchStore,
		Sweeper:        sweeper,
		Proposals:      proposalSvc,
		ProposalStore:  proposalStore,
		Templates:      templateStore,
		Applier:        applier,
		Importer:       importer,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		PubSub:         pubsubClient,
	})

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
