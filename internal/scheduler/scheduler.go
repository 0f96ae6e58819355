// Package scheduler runs periodic maintenance over stored training plans.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/planning"
	"alcyxob/fitness-coach/internal/repository"

	"github.com/robfig/cron"
)

// DefaultProgressSpec runs the progress job once a day at midnight.
const DefaultProgressSpec = "@daily"

// jobTimeout bounds a single progress run.
const jobTimeout = 5 * time.Minute

// ProgressStats summarizes one progress run.
type ProgressStats struct {
	Checked   int
	Advanced  int
	Completed int
	Failed    int
}

// ProgressJob moves each active plan's CurrentWeek to today and completes finished plans.
type ProgressJob struct {
	plans  repository.TrainingPlanRepository
	now    func() time.Time
	logger *slog.Logger
}

func NewProgressJob(plans repository.TrainingPlanRepository, now func() time.Time, logger *slog.Logger) *ProgressJob {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressJob{plans: plans, now: now, logger: logger}
}

// Run processes every active plan. A failing plan does not stop the others;
// all failures are returned joined.
func (j *ProgressJob) Run(ctx context.Context) (ProgressStats, error) {
	var stats ProgressStats
	plans, err := j.plans.ListActive(ctx)
	if err != nil {
		return stats, fmt.Errorf("list active plans: %w", err)
	}

	now := j.now()
	var errs []error
	for i := range plans {
		plan := &plans[i]
		stats.Checked++
		week, finished := planning.Progress(plan, now)

		switch {
		case finished:
			if err := j.plans.SetStatus(ctx, plan.ID, domain.PlanCompleted); err != nil {
				stats.Failed++
				errs = append(errs, fmt.Errorf("complete plan %s: %w", plan.ID.Hex(), err))
				continue
			}
			stats.Completed++
			j.logger.InfoContext(ctx, "training plan completed",
				slog.String("plan_id", plan.ID.Hex()),
				slog.String("user_id", plan.UserID.Hex()))
		case week != plan.CurrentWeek:
			if err := j.plans.UpdateProgress(ctx, plan.ID, week); err != nil {
				stats.Failed++
				errs = append(errs, fmt.Errorf("advance plan %s: %w", plan.ID.Hex(), err))
				continue
			}
			stats.Advanced++
		}
	}
	return stats, errors.Join(errs...)
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// Start registers the progress job under spec and starts the cron runner.
func Start(spec string, job *ProgressJob, logger *slog.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultProgressSpec
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := cron.New()
	err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		stats, err := job.Run(ctx)
		if err != nil {
			logger.Error("plan progress job finished with errors", slog.Any("error", err), slog.Int("failed", stats.Failed))
		}
		logger.Info("plan progress job finished",
			slog.Int("checked", stats.Checked),
			slog.Int("advanced", stats.Advanced),
			slog.Int("completed", stats.Completed))
	})
	if err != nil {
		return nil, fmt.Errorf("schedule progress job %q: %w", spec, err)
	}

	c.Start()
	logger.Info("scheduler started", slog.String("progress_spec", spec))
	return &Scheduler{cron: c, logger: logger}, nil
}

// Stop halts the cron runner. A job already running is not interrupted.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}
