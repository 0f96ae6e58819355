package planning

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation wraps every rejected input; the wrapping error carries the reason.
	ErrValidation = errors.New("validation failed")
	// ErrPlanNotFound means there is no active plan to adapt.
	ErrPlanNotFound = errors.New("active training plan not found")
	// ErrCooldownActive matches any *CooldownError.
	ErrCooldownActive = errors.New("adaptation cooldown active")
)

// CooldownError is returned when the previous adaptation is too recent.
type CooldownError struct {
	DaysRemaining int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: %d day(s) remaining", ErrCooldownActive, e.DaysRemaining)
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
