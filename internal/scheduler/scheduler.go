// Package scheduler repeats a frame callback with a fixed delay after each
// completed frame, the way a view re-posts its own invalidation.
package scheduler

import (
	"context"
	"errors"
	"time"
)

// DefaultDelay is the pause between the end of one frame and the next.
const DefaultDelay = 10 * time.Millisecond

// ErrStop may be returned by a frame callback to end Run without error.
var ErrStop = errors.New("stop")

// Scheduler tracks when the next frame is due.
type Scheduler struct {
	delay time.Duration
	next  time.Time
}

// New returns a scheduler whose first frame is due immediately.
// A non-positive delay means DefaultDelay.
func New(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{delay: delay}
}

// Delay returns the configured delay.
func (s *Scheduler) Delay() time.Duration { return s.delay }

// Due reports whether a frame should run at now.
func (s *Scheduler) Due(now time.Time) bool {
	return !now.Before(s.next)
}

// Done records that a frame finished at now.
func (s *Scheduler) Done(now time.Time) {
	s.next = now.Add(s.delay)
}

// Run calls frame until ctx is done or frame returns an error, waiting the
// delay after each completed frame. ErrStop ends the loop with a nil error.
func (s *Scheduler) Run(ctx context.Context, frame func(now time.Time) error) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := frame(time.Now()); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
		now := time.Now()
		s.Done(now)
		timer.Reset(s.next.Sub(now))
	}
}
