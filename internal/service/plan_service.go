package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/export"
	"alcyxob/fitness-coach/internal/logging"
	"alcyxob/fitness-coach/internal/planning"
	"alcyxob/fitness-coach/internal/repository"
	"alcyxob/fitness-coach/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanService generates training plans and handles the plan's day-to-day updates.
type PlanService interface {
	// GeneratePlan builds a plan from the stored profile and makes it the only active plan.
	GeneratePlan(ctx context.Context, userID primitive.ObjectID) (*planning.Generation, error)
	GetActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error)
	UpdateWorkoutStatus(ctx context.Context, userID, workoutID primitive.ObjectID, status domain.CompletionStatus) (*domain.Workout, error)
	// ExportPlan uploads the active plan in the given format and returns a download link.
	ExportPlan(ctx context.Context, userID primitive.ObjectID, format export.Format) (*PlanExport, error)
}

// PlanExport is a rendered plan stored in object storage.
type PlanExport struct {
	Format      export.Format `json:"format"`
	ObjectKey   string        `json:"objectKey"`
	DownloadURL string        `json:"downloadUrl"`
	ExpiresAt   time.Time     `json:"expiresAt"`
}

// PlanServiceConfig holds the optional knobs of NewPlanService.
type PlanServiceConfig struct {
	// RandomSeed fixes exercise selection; 0 seeds from the clock.
	RandomSeed uint64
	URLExpiry  time.Duration
	Now        func() time.Time
	Logger     *slog.Logger
}

type planService struct {
	profileRepo  repository.ProfileRepository
	exerciseRepo repository.ExerciseRepository
	planRepo     repository.TrainingPlanRepository
	fileStorage  storage.FileStorage
	locks        *UserLocks
	seed         uint64
	urlExpiry    time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// NewPlanService creates a PlanService. fileStorage may be nil, which disables export.
func NewPlanService(
	profileRepo repository.ProfileRepository,
	exerciseRepo repository.ExerciseRepository,
	planRepo repository.TrainingPlanRepository,
	fileStorage storage.FileStorage,
	locks *UserLocks,
	cfg PlanServiceConfig,
) PlanService {
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = storage.DefaultPresignedURLExpiry
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &planService{
		profileRepo:  profileRepo,
		exerciseRepo: exerciseRepo,
		planRepo:     planRepo,
		fileStorage:  fileStorage,
		locks:        locks,
		seed:         cfg.RandomSeed,
		urlExpiry:    cfg.URLExpiry,
		now:          cfg.Now,
		logger:       cfg.Logger,
	}
}

func (s *planService) GeneratePlan(ctx context.Context, userID primitive.ObjectID) (*planning.Generation, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	ctx = logging.WithAttrs(ctx, slog.String("user_id", userID.Hex()))

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if err := planning.ValidateProfile(profile); err != nil {
		return nil, err
	}

	pool, err := s.loadCatalog(ctx, profile)
	if err != nil {
		return nil, err
	}

	generator := planning.NewGenerator(pool, s.random(),
		planning.WithClock(s.now),
		planning.WithLogger(s.logger))
	gen, err := generator.Generate(profile)
	if err != nil {
		return nil, err
	}

	// only one plan per user may be active, so the old one is abandoned
	// before the insert and reactivated if the insert fails
	current, err := s.planRepo.GetActiveByUserID(ctx, userID)
	switch {
	case err == nil:
		if err := s.planRepo.SetStatus(ctx, current.ID, domain.PlanAbandoned); err != nil {
			return nil, fmt.Errorf("abandon active plan: %w", err)
		}
	case errors.Is(err, repository.ErrNotFound):
		current = nil
	default:
		return nil, err
	}

	planID, err := s.planRepo.Create(ctx, gen.Plan)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store generated plan", slog.Any("error", err))
		if current != nil {
			if rerr := s.planRepo.SetStatus(ctx, current.ID, domain.PlanActive); rerr != nil {
				s.logger.ErrorContext(ctx, "failed to reactivate previous plan",
					slog.String("plan_id", current.ID.Hex()), slog.Any("error", rerr))
			}
		}
		return nil, planWriteError(err)
	}
	if current != nil {
		s.logger.InfoContext(ctx, "previous plan abandoned", slog.String("plan_id", current.ID.Hex()))
	}
	gen.Plan.ID = planID

	s.logger.InfoContext(ctx, "training plan generated",
		slog.String("plan_id", planID.Hex()),
		slog.Int("weeks", gen.Plan.TotalWeeks),
		slog.Int("sessions_per_week", gen.Plan.SessionsPerWeek),
		slog.Int("exercise_pool", len(pool)))
	return gen, nil
}

// loadCatalog preloads every exercise of the disciplines the goals allocate to.
func (s *planService) loadCatalog(ctx context.Context, profile *domain.UserProfile) (planning.ExercisePool, error) {
	weights := planning.DisciplineWeights(profile.Goals)
	disciplines := make([]domain.Discipline, 0, len(weights))
	for d := range weights {
		disciplines = append(disciplines, d)
	}
	slices.Sort(disciplines)
	if len(disciplines) == 0 {
		// the allocator falls back to hybrid when no goal is active
		disciplines = []domain.Discipline{domain.DisciplineHybrid}
	}

	exercises, err := s.exerciseRepo.ListByDisciplines(ctx, disciplines)
	if err != nil {
		return nil, fmt.Errorf("load exercise catalog: %w", err)
	}
	return planning.ExercisePool(exercises), nil
}

func (s *planService) random() *rand.Rand {
	seed := s.seed
	if seed == 0 {
		seed = uint64(s.now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func (s *planService) GetActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivePlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// UpdateWorkoutStatus records completion. It is not an adaptation and has no cooldown.
func (s *planService) UpdateWorkoutStatus(ctx context.Context, userID, workoutID primitive.ObjectID, status domain.CompletionStatus) (*domain.Workout, error) {
	switch status {
	case domain.StatusNotStarted, domain.StatusCompleted, domain.StatusSkipped:
	default:
		return nil, fmt.Errorf("%w: unknown workout status %q", ErrValidation, status)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	plan, err := s.GetActivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	workout := plan.FindWorkout(workoutID)
	if workout == nil {
		return nil, ErrWorkoutNotFound
	}

	now := s.now().UTC()
	workout.Status = status
	workout.CompletedAt = nil
	if status == domain.StatusCompleted {
		workout.CompletedAt = &now
	}
	plan.UpdatedAt = now

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, planWriteError(err)
	}
	s.logger.InfoContext(ctx, "workout status updated",
		slog.String("user_id", userID.Hex()),
		slog.String("workout_id", workoutID.Hex()),
		slog.String("status", string(status)))
	return workout, nil
}

func (s *planService) ExportPlan(ctx context.Context, userID primitive.ObjectID, format export.Format) (*PlanExport, error) {
	if s.fileStorage == nil {
		return nil, ErrExportUnavailable
	}
	plan, err := s.GetActivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	data, err := export.Render(format, plan, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	key := fmt.Sprintf("exports/%s/%s.%s", userID.Hex(), uuid.NewString(), format)
	if err := s.fileStorage.PutObject(ctx, key, format.ContentType(), bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, err
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, s.urlExpiry)
	if err != nil {
		if delErr := s.fileStorage.DeleteObject(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned export", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "plan exported",
		slog.String("plan_id", plan.ID.Hex()),
		slog.String("format", string(format)),
		slog.Int("bytes", len(data)))
	return &PlanExport{
		Format:      format,
		ObjectKey:   key,
		DownloadURL: url,
		ExpiresAt:   now.Add(s.urlExpiry).UTC(),
	}, nil
}
