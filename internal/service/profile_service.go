package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/planning"
	"alcyxob/fitness-coach/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileService manages the fitness profile the planner reads.
type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	SaveProfile(ctx context.Context, userID primitive.ObjectID, profile *domain.UserProfile) (*domain.UserProfile, error)
	// AddInjury records an injury and adapts the active plan when there is one.
	// The returned result is nil when no plan was adapted.
	AddInjury(ctx context.Context, userID primitive.ObjectID, injury domain.InjuryLimitation) (*domain.UserProfile, *planning.Result, error)
	UpdateInjuryStatus(ctx context.Context, userID primitive.ObjectID, index int, status domain.InjuryStatus) (*domain.UserProfile, *planning.Result, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	adaptations AdaptationService
	now         func() time.Time
	logger      *slog.Logger
}

func NewProfileService(profileRepo repository.ProfileRepository, adaptations AdaptationService, now func() time.Time, logger *slog.Logger) ProfileService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &profileService{profileRepo: profileRepo, adaptations: adaptations, now: now, logger: logger}
}

func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// SaveProfile replaces the caller's profile. Injuries are kept from the stored
// profile when the new one carries none.
func (s *profileService) SaveProfile(ctx context.Context, userID primitive.ObjectID, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if err := planning.ValidateProfile(profile); err != nil {
		return nil, err
	}
	for i := range profile.Goals {
		if profile.Goals[i].Status == "" {
			profile.Goals[i].Status = domain.GoalActive
		}
	}

	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil && len(profile.Injuries) == 0 {
		profile.Injuries = existing.Injuries
	}
	for i := range profile.Injuries {
		normalizeInjury(&profile.Injuries[i], s.now())
	}

	profile.UserID = userID
	profile.UpdatedAt = s.now().UTC()
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "profile saved", slog.String("user_id", userID.Hex()), slog.Int("goals", len(profile.Goals)))
	return s.GetProfile(ctx, userID)
}

func (s *profileService) AddInjury(ctx context.Context, userID primitive.ObjectID, injury domain.InjuryLimitation) (*domain.UserProfile, *planning.Result, error) {
	if strings.TrimSpace(injury.BodyPart) == "" {
		return nil, nil, fmt.Errorf("%w: injured body part is required", ErrValidation)
	}
	if injury.Class != "" && injury.Class != domain.InjuryAcute && injury.Class != domain.InjuryChronic {
		return nil, nil, fmt.Errorf("%w: injury class must be acute or chronic", ErrValidation)
	}
	if injury.Status != "" && !domain.InjuryActive.CanTransitionTo(injury.Status) {
		return nil, nil, fmt.Errorf("%w: unknown injury status %q", ErrValidation, injury.Status)
	}
	normalizeInjury(&injury, s.now())

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile.Injuries = append(profile.Injuries, injury)
	profile.UpdatedAt = s.now().UTC()
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, nil, err
	}
	s.logger.InfoContext(ctx, "injury recorded", slog.String("user_id", userID.Hex()), slog.String("body_part", injury.BodyPart))

	result, err := s.adaptForInjury(ctx, userID, injury)
	return profile, result, err
}

// UpdateInjuryStatus moves an injury forward. Injuries that are still limiting re-adapt the plan.
func (s *profileService) UpdateInjuryStatus(ctx context.Context, userID primitive.ObjectID, index int, status domain.InjuryStatus) (*domain.UserProfile, *planning.Result, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= len(profile.Injuries) {
		return nil, nil, ErrInjuryNotFound
	}
	injury := &profile.Injuries[index]
	if !injury.Status.CanTransitionTo(status) {
		return nil, nil, fmt.Errorf("%w: injury status cannot move from %s to %s", ErrValidation, injury.Status, status)
	}
	if injury.Status == status {
		return profile, nil, nil
	}

	injury.Status = status
	profile.UpdatedAt = s.now().UTC()
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, nil, err
	}
	s.logger.InfoContext(ctx, "injury status changed",
		slog.String("user_id", userID.Hex()),
		slog.String("body_part", injury.BodyPart),
		slog.String("status", string(status)))

	if !injury.IsLimiting() {
		return profile, nil, nil
	}
	result, err := s.adaptForInjury(ctx, userID, *injury)
	return profile, result, err
}

// adaptForInjury tolerates users without an active plan.
func (s *profileService) adaptForInjury(ctx context.Context, userID primitive.ObjectID, injury domain.InjuryLimitation) (*planning.Result, error) {
	if !injury.IsLimiting() {
		return nil, nil
	}
	result, err := s.adaptations.AdaptInjury(ctx, userID, injury)
	if errors.Is(err, ErrActivePlanNotFound) {
		return nil, nil
	}
	return result, err
}

func normalizeInjury(inj *domain.InjuryLimitation, now time.Time) {
	inj.BodyPart = strings.ToLower(strings.TrimSpace(inj.BodyPart))
	for i, r := range inj.Restrictions {
		inj.Restrictions[i] = strings.ToLower(strings.TrimSpace(r))
	}
	if inj.Class == "" {
		inj.Class = domain.InjuryAcute
	}
	if inj.Status == "" {
		inj.Status = domain.InjuryActive
	}
	if inj.ReportedAt.IsZero() {
		inj.ReportedAt = now.UTC()
	}
}
