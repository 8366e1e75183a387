// Package jobs owns the background cadences: the half-hourly expiration
// sweep and the weekly template sweep. Both run shortly after the
// boundary they care about so that a match ending exactly on the
// half-hour has already expired when the sweep fires.
package jobs

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

const (
	// One minute past each half-hour boundary.
	expirationSchedule = "1,31 * * * *"
	// Sunday evening, before players start filling in the new week.
	templateSchedule = "0 18 * * 0"
)

// ExpirationSweeper is implemented by schedule.Sweeper.
type ExpirationSweeper interface {
	Sweep(now time.Time, dryRun bool) error
}

// TemplateSweeper is implemented by template.Applier.
type TemplateSweeper interface {
	RunWeeklySweep(now time.Time, dryRun bool) error
}

// Runner schedules the background sweeps on a shared cron instance
// pinned to UTC.
type Runner struct {
	cron      *cron.Cron
	expirer   ExpirationSweeper
	templates TemplateSweeper
}

// NewRunner creates a new Runner. Either sweeper may be nil to disable
// that cadence.
func NewRunner(expirer ExpirationSweeper, templates TemplateSweeper) *Runner {
	return &Runner{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		expirer:   expirer,
		templates: templates,
	}
}

// Start registers the cadences and starts the scheduler.
func (r *Runner) Start() error {
	if r.expirer != nil {
		if _, err := r.cron.AddFunc(expirationSchedule, func() {
			if err := r.expirer.Sweep(time.Now().UTC(), false); err != nil {
				log.Error("Expiration sweep failed", "error", err)
			}
		}); err != nil {
			return err
		}
	}
	if r.templates != nil {
		if _, err := r.cron.AddFunc(templateSchedule, func() {
			if err := r.templates.RunWeeklySweep(time.Now().UTC(), false); err != nil {
				log.Error("Template sweep failed", "error", err)
			}
		}); err != nil {
			return err
		}
	}
	r.cron.Start()
	log.Info("Background jobs started", "expiration", expirationSchedule, "templates", templateSchedule)
	return nil
}

// Stop stops the scheduler and waits for any running job to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	log.Info("Background jobs stopped")
}
