package cycle

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stridehq/stride/internal/notify"
	"gorm.io/gorm"
)

const defaultSweepInterval = 24 * time.Hour

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// DaemonOpts configures the sweep daemon.
type DaemonOpts struct {
	DB       *gorm.DB
	Location *time.Location
	Interval time.Duration // fixed interval, used when Schedule is empty
	Schedule string        // optional 5-field cron expression
	Notifier notify.Notifier
	Out      io.Writer
}

// RunDaemon sweeps once immediately, then on the configured schedule until
// ctx is cancelled. Sweep failures are logged, never fatal: the daemon's job
// is to keep trying.
func RunDaemon(ctx context.Context, opts DaemonOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("cycle: daemon: db is required")
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultSweepInterval
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	var sched cron.Schedule
	if opts.Schedule != "" {
		parsed, err := cronParser.Parse(opts.Schedule)
		if err != nil {
			return fmt.Errorf("cycle: daemon: bad schedule %q: %w", opts.Schedule, err)
		}
		sched = parsed
	}

	fmt.Fprintf(opts.Out, "Cycle sweep daemon starting (interval %s)\n", opts.Interval)

	runOnce := func() {
		transitions, err := Sweep(opts.DB, opts.Location, time.Now(), opts.Notifier)
		if err != nil {
			log.Printf("sweep: %v", err)
			return
		}
		for _, tr := range transitions {
			fmt.Fprintf(opts.Out, "Cycle %s: %s -> %s\n", tr.CycleID, tr.OldStatus, tr.NewStatus)
		}
	}

	runOnce()

	for {
		wait := opts.Interval
		if sched != nil {
			if d := time.Until(sched.Next(time.Now())); d > 0 {
				wait = d
			}
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			runOnce()
		}
	}
}
