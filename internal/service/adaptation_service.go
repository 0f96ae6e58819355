package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/logging"
	"alcyxob/fitness-coach/internal/planning"
	"alcyxob/fitness-coach/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdaptationService applies adaptation triggers to the caller's active plan and
// persists the mutated plan with its audit record.
type AdaptationService interface {
	AdaptMissedWorkouts(ctx context.Context, userID primitive.ObjectID, workoutIDs []primitive.ObjectID) (*planning.Result, error)
	AdaptIntensity(ctx context.Context, userID primitive.ObjectID, dir planning.Direction) (*planning.Result, error)
	AdaptFeedback(ctx context.Context, userID primitive.ObjectID, feedback string) (*planning.Result, error)
	AdaptSchedule(ctx context.Context, userID primitive.ObjectID, availability domain.Availability) (*planning.Result, error)
	AdaptInjury(ctx context.Context, userID primitive.ObjectID, injury domain.InjuryLimitation) (*planning.Result, error)
	AdaptTimeline(ctx context.Context, userID primitive.ObjectID, newEnd time.Time) (*planning.Result, error)
	ListAdaptations(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanAdaptation, error)
}

type adaptationService struct {
	planRepo       repository.TrainingPlanRepository
	adaptationRepo repository.AdaptationRepository
	locks          *UserLocks
	cooldown       time.Duration
	now            func() time.Time
	logger         *slog.Logger
}

// AdaptationServiceConfig holds the optional knobs of NewAdaptationService.
type AdaptationServiceConfig struct {
	Cooldown time.Duration
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewAdaptationService creates an AdaptationService. locks must be shared with the PlanService.
func NewAdaptationService(planRepo repository.TrainingPlanRepository, adaptationRepo repository.AdaptationRepository, locks *UserLocks, cfg AdaptationServiceConfig) AdaptationService {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = planning.DefaultCooldown
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &adaptationService{
		planRepo:       planRepo,
		adaptationRepo: adaptationRepo,
		locks:          locks,
		cooldown:       cfg.Cooldown,
		now:            cfg.Now,
		logger:         cfg.Logger,
	}
}

// adaptFunc runs one engine entry point. last is nil when no cooldown-relevant adaptation exists.
type adaptFunc func(a *planning.Adapter, plan *domain.TrainingPlan, last *domain.PlanAdaptation) (*planning.Result, error)

func (s *adaptationService) AdaptMissedWorkouts(ctx context.Context, userID primitive.ObjectID, workoutIDs []primitive.ObjectID) (*planning.Result, error) {
	return s.run(ctx, userID, domain.TriggerMissedWorkouts, func(a *planning.Adapter, plan *domain.TrainingPlan, last *domain.PlanAdaptation) (*planning.Result, error) {
		return a.MissedWorkouts(plan, last, workoutIDs)
	})
}

func (s *adaptationService) AdaptIntensity(ctx context.Context, userID primitive.ObjectID, dir planning.Direction) (*planning.Result, error) {
	return s.run(ctx, userID, domain.TriggerIntensityChange, func(a *planning.Adapter, plan *domain.TrainingPlan, last *domain.PlanAdaptation) (*planning.Result, error) {
		return a.IntensityChange(plan, last, dir)
	})
}

func (s *adaptationService) AdaptFeedback(ctx context.Context, userID primitive.ObjectID, feedback string) (*planning.Result, error) {
	return s.run(ctx, userID, domain.TriggerPerceivedDifficulty, func(a *planning.Adapter, plan *domain.TrainingPlan, last *domain.PlanAdaptation) (*planning.Result, error) {
		return a.PerceivedDifficulty(plan, last, feedback)
	})
}

func (s *adaptationService) AdaptSchedule(ctx context.Context, userID primitive.ObjectID, availability domain.Availability) (*planning.Result, error) {
	return s.run(ctx, userID, domain.TriggerScheduleChange, func(a *planning.Adapter, plan *domain.TrainingPlan, last *domain.PlanAdaptation) (*planning.Result, error) {
		return a.ScheduleChange(plan, last, availability)
	})
}

// AdaptInjury skips the cooldown lookup entirely.
func (s *adaptationService) AdaptInjury(ctx context.Context, userID primitive.ObjectID, injury domain.InjuryLimitation) (*planning.Result, error) {
	return s.run(ctx, userID, domain.TriggerInjury, func(a *planning.Adapter, plan *domain.TrainingPlan, _ *domain.PlanAdaptation) (*planning.Result, error) {
		return a.Injury(plan, injury)
	})
}

func (s *adaptationService) AdaptTimeline(ctx context.Context, userID primitive.ObjectID, newEnd time.Time) (*planning.Result, error) {
	return s.run(ctx, userID, domain.TriggerTimelineChange, func(a *planning.Adapter, plan *domain.TrainingPlan, last *domain.PlanAdaptation) (*planning.Result, error) {
		return a.TimelineChange(plan, last, newEnd)
	})
}

// ListAdaptations returns the active plan's adaptation records, newest first.
func (s *adaptationService) ListAdaptations(ctx context.Context, userID primitive.ObjectID) ([]domain.PlanAdaptation, error) {
	plan, err := s.activePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.adaptationRepo.ListByPlanID(ctx, plan.ID)
}

func (s *adaptationService) run(ctx context.Context, userID primitive.ObjectID, trigger domain.AdaptationTrigger, fn adaptFunc) (*planning.Result, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	ctx = logging.WithAttrs(ctx, slog.String("user_id", userID.Hex()), slog.String("trigger", string(trigger)))

	plan, err := s.activePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithAttrs(ctx, slog.String("plan_id", plan.ID.Hex()))

	// injury skips the check, but its record still starts a new cooldown
	var last *domain.PlanAdaptation
	if trigger != domain.TriggerInjury {
		last, err = s.adaptationRepo.GetLatestByPlanID(ctx, plan.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("load latest adaptation: %w", err)
		}
	}

	adapter := planning.NewAdapter(
		planning.WithClock(s.now),
		planning.WithCooldown(s.cooldown),
		planning.WithLogger(s.logger),
	)
	result, err := fn(adapter, plan, last)
	if err != nil {
		var cooldownErr *planning.CooldownError
		if errors.As(err, &cooldownErr) {
			s.logger.InfoContext(ctx, "adaptation rejected by cooldown", slog.Int("days_remaining", cooldownErr.DaysRemaining))
		}
		return nil, err
	}
	if !result.Success {
		s.logger.InfoContext(ctx, "adaptation was a no-op", slog.String("reason", result.Reason))
		return result, nil
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist adapted plan", slog.Any("error", err))
		return nil, planWriteError(err)
	}
	result.Adaptation.UserID = userID
	if _, err := s.adaptationRepo.Create(ctx, result.Adaptation); err != nil {
		s.logger.ErrorContext(ctx, "plan adapted but audit record was not stored", slog.Any("error", err))
		return nil, fmt.Errorf("store adaptation record: %w", err)
	}

	s.logger.InfoContext(ctx, "plan adapted",
		slog.String("adaptation_id", result.AdaptationID.Hex()),
		slog.Int("workouts_affected", result.WorkoutsAffected),
		slog.Int("warnings", len(result.Warnings)))
	return result, nil
}

func (s *adaptationService) activePlan(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivePlanNotFound
		}
		return nil, err
	}
	return plan, nil
}
