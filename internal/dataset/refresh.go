package dataset

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher keeps the dataset cache warm by calling Load on a fixed
// interval. The mtime check inside Load makes each tick cheap when the
// file has not changed, so this only pays for a parse after the file is
// actually replaced.
type Refresher struct {
	cron   *cron.Cron
	loader *Loader
	log    *slog.Logger
}

// NewRefresher creates a Refresher that reloads the dataset every
// interval.
func NewRefresher(l *Loader, interval time.Duration, log *slog.Logger) (*Refresher, error) {
	c := cron.New()

	r := &Refresher{
		cron:   c,
		loader: l,
		log:    log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), r.refresh); err != nil {
		return nil, err
	}

	return r, nil
}

// Start begins the periodic refresh.
func (r *Refresher) Start() {
	r.log.Info("dataset refresher started")
	r.cron.Start()
}

// Stop gracefully stops the refresher, waiting for a running refresh to
// finish.
func (r *Refresher) Stop() context.Context {
	r.log.Info("dataset refresher stopping")
	return r.cron.Stop()
}

func (r *Refresher) refresh() {
	if _, err := r.loader.Load(); err != nil {
		r.log.Error("scheduled dataset refresh failed", "error", err)
	}
}
