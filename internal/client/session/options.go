package session

import (
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
)

const DefaultBootstrapCooldown = 3 * time.Second

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) {
		m.logger = l.With("component", "session")
	}
}

// WithCooldown sets the minimum time between the starts of two bootstrap
// runs. Zero disables the throttle.
func WithCooldown(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.cooldown = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
