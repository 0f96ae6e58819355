package planning

import (
	"log/slog"
	"time"
)

// DefaultCooldown is the minimum time between two non-injury adaptations.
const DefaultCooldown = 7 * 24 * time.Hour

type options struct {
	now      func() time.Time
	cooldown time.Duration
	logger   *slog.Logger
}

// Option customizes a Generator or Adapter.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCooldown overrides DefaultCooldown. Non-positive values are ignored.
func WithCooldown(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cooldown = d
		}
	}
}

// WithLogger sets the logger used for advisory warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:      time.Now,
		cooldown: DefaultCooldown,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// dateOf truncates t to midnight UTC.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
