package template

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/availability"
	"github.com/mauv0809/scrimsync/internal/metrics"
	"github.com/mauv0809/scrimsync/internal/roster"
	"github.com/mauv0809/scrimsync/internal/timeslot"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

// Applier applies saved slot templates to weekly availability records.
// All writes go through the availability store's SaveSlotUpdate path so
// template fills are indistinguishable from manual edits downstream.
type Applier struct {
	templates TemplateStore
	avail     availability.AvailabilityStore
	rosters   roster.RosterStore
	metrics   metrics.Metrics
}

// NewApplier creates a new Applier.
func NewApplier(templates TemplateStore, avail availability.AvailabilityStore, rosters roster.RosterStore, metricsSvc metrics.Metrics) *Applier {
	return &Applier{
		templates: templates,
		avail:     avail,
		rosters:   rosters,
		metrics:   metricsSvc,
	}
}

// ApplyTemplateToWeek fills the user's template slots into one team's week.
// If the user already appears anywhere in that week's record - any slot,
// available or opted out - nothing is applied and 0 is returned: manual
// edits take precedence over auto-fill for the whole week.
func (a *Applier) ApplyTemplateToWeek(userID string, templateSlots []timeslot.SlotID, teamID string, weekID weekclock.WeekID) (int, error) {
	record, err := a.avail.GetRecord(teamID, weekID)
	if err != nil {
		return 0, err
	}
	if record.UserTouchedWeek(userID) {
		log.Debug("Skipping template application, user already edited week", "user", userID, "team", teamID, "week", weekID)
		return 0, nil
	}

	applied := 0
	for _, slot := range templateSlots {
		if err := a.avail.SaveSlotUpdate(teamID, weekID, slot, userID, availability.OpAdd); err != nil {
			return applied, fmt.Errorf("failed to apply template slot %s: %w", slot, err)
		}
		applied++
	}
	if applied > 0 {
		a.metrics.AddTemplatesApplied(applied)
	}
	return applied, nil
}

// SetRecurring toggles weekly auto-application for a user. Enabling
// applies the template immediately to the current and next week across
// every team the user belongs to, then records next week as applied.
// Disabling only clears the flag; already-applied slots stay.
func (a *Applier) SetRecurring(userID string, enabled bool, now time.Time) error {
	template, err := a.templates.GetTemplate(userID)
	if err != nil {
		return err
	}

	if !enabled {
		return a.templates.SetRecurringFlag(userID, false, template.LastAppliedWeekID)
	}

	teams, err := a.rosters.TeamsForUser(userID)
	if err != nil {
		return fmt.Errorf("failed to resolve teams for user %s: %w", userID, err)
	}

	currentWeek, nextWeek := weekclock.CurrentAndNext(now)
	for _, team := range teams {
		for _, week := range []weekclock.WeekID{currentWeek, nextWeek} {
			if _, err := a.ApplyTemplateToWeek(userID, template.Slots, team.ID, week); err != nil {
				return err
			}
		}
	}

	return a.templates.SetRecurringFlag(userID, true, nextWeek)
}

// RunWeeklySweep applies every recurring template to the upcoming week.
// A failure for one user is logged and skipped; the sweep continues for
// the rest.
func (a *Applier) RunWeeklySweep(now time.Time, dryRun bool) error {
	log.Info("Starting weekly template sweep...")
	a.metrics.IncTemplateSweeps()

	_, nextWeek := weekclock.CurrentAndNext(now)

	templates, err := a.templates.GetRecurringTemplates()
	if err != nil {
		return fmt.Errorf("failed to load recurring templates: %w", err)
	}

	swept := 0
	for _, template := range templates {
		if template.LastAppliedWeekID >= nextWeek {
			continue
		}

		if dryRun {
			log.Info("[Dry Run] Would apply template", "user", template.UserID, "week", nextWeek, "slots", len(template.Slots))
			continue
		}

		teams, err := a.rosters.TeamsForUser(template.UserID)
		if err != nil {
			log.Error("Failed to resolve teams during template sweep", "user", template.UserID, "error", err)
			continue
		}

		failed := false
		for _, team := range teams {
			if _, err := a.ApplyTemplateToWeek(template.UserID, template.Slots, team.ID, nextWeek); err != nil {
				log.Error("Failed to apply template during sweep", "user", template.UserID, "team", team.ID, "week", nextWeek, "error", err)
				failed = true
			}
		}
		if failed {
			continue
		}

		if err := a.templates.SetRecurringFlag(template.UserID, true, nextWeek); err != nil {
			log.Error("Failed to advance template watermark", "user", template.UserID, "error", err)
			continue
		}
		swept++
	}

	log.Info("Weekly template sweep finished.", "users_swept", swept, "week", nextWeek)
	return nil
}
