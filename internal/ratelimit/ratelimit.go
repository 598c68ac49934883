// internal/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"time"
)

// Default pacing: minimum spacing between consecutive sends in one dispatch
// pass, and the extra pause after the provider reports a rate limit.
const (
	DefaultInterval = 500 * time.Millisecond
	DefaultPenalty  = 2 * time.Second
)

// SleepFunc waits for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Limiter enforces inter-send spacing for a single dispatch pass. It holds no
// cross-pass state; construct a fresh Limiter for every pass.
type Limiter struct {
	interval time.Duration
	penalty  time.Duration
	sleep    SleepFunc

	penalized bool
}

// New builds a Limiter with the given spacing. Non-positive durations fall
// back to the defaults. sleep may be nil, in which case a timer-based wait
// is used.
func New(interval, penalty time.Duration, sleep SleepFunc) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if penalty <= 0 {
		penalty = DefaultPenalty
	}
	if sleep == nil {
		sleep = wait
	}
	return &Limiter{interval: interval, penalty: penalty, sleep: sleep}
}

// Throttle pauses before recipient i is attempted. The first recipient of a
// pass is never delayed. A pending penalty from Penalize is served here, on
// top of the regular spacing.
func (l *Limiter) Throttle(ctx context.Context, i int) error {
	if l.penalized {
		l.penalized = false
		if err := l.sleep(ctx, l.penalty); err != nil {
			return err
		}
	}
	if i == 0 {
		return nil
	}
	return l.sleep(ctx, l.interval)
}

// Penalize schedules the extended backoff after a provider rate-limit error.
// The pause is served before the next recipient is attempted.
func (l *Limiter) Penalize() {
	l.penalized = true
}

func wait(ctx context.Context, d time.Duration) error {
	tmr := time.NewTimer(d)
	select {
	case <-ctx.Done():
		if !tmr.Stop() {
			<-tmr.C
		}
		return ctx.Err()
	case <-tmr.C:
		return nil
	}
}
