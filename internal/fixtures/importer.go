// Package fixtures imports externally scheduled league games so their
// slots show up as blocked in the matching views. An imported fixture
// becomes a regular ScheduledMatch with an imported origin; the schedule
// store's conflict check deduplicates re-imports of the same slot.
package fixtures

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/scrimsync/internal/faults"
	"github.com/mauv0809/scrimsync/internal/metrics"
	"github.com/mauv0809/scrimsync/internal/schedule"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

const startLayout = "2006-01-02T15:04:05"

// Importer maps league fixtures onto scheduled matches.
type Importer struct {
	client  LeagueClient
	matches schedule.MatchStore
	metrics metrics.Metrics
	pub     schedule.Publisher
}

// NewImporter creates a new Importer. pub may be nil.
func NewImporter(client LeagueClient, matches schedule.MatchStore, metricsSvc metrics.Metrics, pub schedule.Publisher) *Importer {
	return &Importer{
		client:  client,
		matches: matches,
		metrics: metricsSvc,
		pub:     pub,
	}
}

// Run fetches fixtures for the league and imports each as an upcoming
// match. Fixtures whose slot is already booked are skipped rather than
// failing the run, so re-importing is safe.
func (i *Importer) Run(params *SearchFixturesParams, dryRun bool) (*ImportReport, error) {
	fetched, err := i.client.GetFixtures(params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixtures: %w", err)
	}

	report := &ImportReport{Fetched: len(fetched), DryRun: dryRun}
	changedWeeks := make(map[weekclock.WeekID]struct{})

	for _, f := range fetched {
		match, err := fixtureToMatch(f)
		if err != nil {
			log.Warn("Skipping unmappable fixture", "fixtureID", f.FixtureID, "error", err)
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", f.FixtureID, err))
			report.Skipped++
			continue
		}

		if dryRun {
			log.Info("[Dry Run] Would import fixture", "fixtureID", f.FixtureID, "weekID", match.WeekID, "slot", match.BlockedSlot)
			report.Imported++
			continue
		}

		if err := i.matches.CreateMatch(match); err != nil {
			if faults.IsAlreadyExists(err) {
				log.Debug("Fixture slot already booked, skipping", "fixtureID", f.FixtureID, "slot", match.BlockedSlot)
				report.Skipped++
				continue
			}
			log.Error("Failed to import fixture", "fixtureID", f.FixtureID, "error", err)
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", f.FixtureID, err))
			report.Skipped++
			continue
		}
		report.Imported++
		changedWeeks[match.WeekID] = struct{}{}
	}

	if i.pub != nil {
		for weekID := range changedWeeks {
			i.pub.PublishMatchesChanged(weekID)
		}
	}
	if i.metrics != nil && !dryRun {
		i.metrics.AddFixturesImported(report.Imported)
	}
	log.Info("Fixture import finished", "fetched", report.Fetched, "imported", report.Imported, "skipped", report.Skipped)
	return report, nil
}

// fixtureToMatch converts a league fixture into an upcoming match. The
// fixture's start time is floored to its half-hour slot.
func fixtureToMatch(f Fixture) (*schedule.ScheduledMatch, error) {
	if f.HomeTeamID == "" || f.AwayTeamID == "" {
		return nil, fmt.Errorf("fixture is missing a team")
	}
	start, err := time.Parse(startLayout, f.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	start = start.UTC()

	dayIndex := (int(start.Weekday()) + 6) % 7
	minute := start.Minute()
	if minute >= 30 {
		minute = 30
	} else {
		minute = 0
	}

	return &schedule.ScheduledMatch{
		ID:            uuid.New().String(),
		TeamAID:       f.HomeTeamID,
		TeamBID:       f.AwayTeamID,
		WeekID:        weekclock.WeekIDOf(start),
		BlockedSlot:   timeslot.FormatSlotID(dayIndex, start.Hour(), minute),
		ScheduledDate: start.Format("2006-01-02"),
		Status:        schedule.StatusUpcoming,
		GameType:      schedule.GameOfficial,
		Origin:        schedule.OriginImported,
		CreatedAt:     time.Now().Unix(),
	}, nil
}
