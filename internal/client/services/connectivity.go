package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/client"
	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
	backoff "github.com/cenkalti/backoff/v4"
)

// Prober checks that the backend answers; client.HTTPClient.Health
// satisfies it.
type Prober interface {
	Health(ctx context.Context) (*client.Envelope[json.RawMessage], error)
}

const maxOfflineBackoff = time.Minute

// ConnectivityWatcher tracks whether the backend is reachable. While online
// it probes every interval; once offline it retries with exponential
// backoff capped at one minute.
type ConnectivityWatcher struct {
	probe    Prober
	interval time.Duration
	onChange func(online bool)
	logger   logging.Logger

	mu     sync.Mutex
	known  bool
	online bool
}

func NewConnectivityWatcher(probe Prober, interval time.Duration, onChange func(online bool), logger logging.Logger) *ConnectivityWatcher {
	if logger == nil {
		logger = logging.Nop()
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &ConnectivityWatcher{
		probe:    probe,
		interval: interval,
		onChange: onChange,
		logger:   logger.With("component", "connectivity"),
	}
}

// Online reports the result of the last probe. Before the first probe the
// backend is assumed reachable.
func (w *ConnectivityWatcher) Online() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.known || w.online
}

// Check probes once and records the result.
func (w *ConnectivityWatcher) Check(ctx context.Context) bool {
	env, err := w.probe.Health(ctx)
	online := err == nil && env.OK()
	if err != nil {
		w.logger.Debug(ctx, "health probe failed", "error", err)
	}

	w.mu.Lock()
	changed := !w.known || w.online != online
	w.known, w.online = true, online
	w.mu.Unlock()

	if changed {
		w.logger.Info(ctx, "connectivity changed", "online", online)
		if w.onChange != nil {
			w.onChange(online)
		}
	}
	return online
}

// Run probes until ctx is done.
func (w *ConnectivityWatcher) Run(ctx context.Context) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = min(w.interval, time.Second)
	exp.Multiplier = 2
	exp.MaxInterval = maxOfflineBackoff
	exp.MaxElapsedTime = 0
	exp.Reset()

	for {
		wait := w.interval
		if w.Check(ctx) {
			exp.Reset()
		} else {
			wait = exp.NextBackOff()
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
