package cronjobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of scheduled work, such as the documentation walkthrough.
type Job interface {
	Run(ctx context.Context) error
}

// InitCronJobs schedules job on a standard five-field cron spec (descriptors
// like "@hourly" and "@every 10m" also work) and starts the scheduler.
// Each run gets at most timeout; zero leaves it unbounded.
func InitCronJobs(spec string, job Job, timeout time.Duration, log *zap.Logger) (*cron.Cron, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("starting cron jobs", zap.String("schedule", spec))

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() {
		runJob(job, timeout, log)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule documentation job %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}

// Stop halts the scheduler and waits for a running job to return.
func Stop(c *cron.Cron) {
	<-c.Stop().Done()
}

func runJob(job Job, timeout time.Duration, log *zap.Logger) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := time.Now()
	log.Info("cron job running")
	if err := job.Run(ctx); err != nil {
		log.Error("cron job failed", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return
	}
	log.Info("cron job finished", zap.Duration("elapsed", time.Since(started)))
}
