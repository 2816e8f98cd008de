package authsession

import (
	"log/slog"
	"time"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for recovered storage problems.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxInactivity overrides the inactivity ceiling (default MaxInactivity).
func WithMaxInactivity(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.maxInactivity = d
		}
	}
}

// WithObserver reports the result of Login, Logout and Touch to fn.
func WithObserver(fn Observer) Option {
	return func(s *Session) { s.observer = fn }
}
