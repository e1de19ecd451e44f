package learn

import (
	"context"
	"time"
)

// Countdown renders the time left until a cooldown deadline, once per
// second, never negative, stopping at zero.
type Countdown struct {
	deadline time.Time
	now      func() time.Time
}

func NewCountdown(deadline time.Time) *Countdown {
	return &Countdown{deadline: deadline, now: time.Now}
}

// Remaining returns the time left, clamped at zero.
func (c *Countdown) Remaining() time.Duration {
	rem := c.deadline.Sub(c.now())
	if rem < 0 {
		return 0
	}
	return rem
}

// Run emits the remaining duration immediately and then once per second
// until it reaches zero or ctx is done.
func (c *Countdown) Run(ctx context.Context, emit func(remaining time.Duration)) {
	rem := c.Remaining()
	emit(rem)
	if rem <= 0 {
		return
	}
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rem = c.Remaining()
			emit(rem)
			if rem <= 0 {
				return
			}
		}
	}
}
