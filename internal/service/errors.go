package service

import (
	"errors"

	"alcyxob/fitness-coach/internal/planning"
	"alcyxob/fitness-coach/internal/repository"
)

// Errors shared by the plan, profile and adaptation services.
var (
	// ErrValidation is the engine's validation sentinel so callers need a single check.
	ErrValidation         = planning.ErrValidation
	ErrProfileNotFound    = errors.New("fitness profile not found")
	ErrActivePlanNotFound = errors.New("no active training plan")
	ErrWorkoutNotFound    = errors.New("workout not found in the active plan")
	ErrInjuryNotFound     = errors.New("injury not found")
	ErrPlanConflict       = errors.New("training plan was modified concurrently, retry the request")
	ErrExportUnavailable  = errors.New("plan export storage is not configured")
)

// planWriteError maps optimistic-concurrency failures onto ErrPlanConflict.
func planWriteError(err error) error {
	if errors.Is(err, repository.ErrVersionConflict) || errors.Is(err, repository.ErrDuplicate) {
		return ErrPlanConflict
	}
	return err
}
