package engine

import (
	"context"
	"time"
)

const (
	DefaultTimeout = 5 * time.Second

	MaxTimeout = 24 * time.Hour
)

// Clock tracks the time budget of one search. It is polled from the search
// loop and never interrupts it.
type Clock struct {
	ctx     context.Context
	cancel  context.CancelFunc
	started time.Time
	done    bool
}

func NewClock() *Clock {
	return &Clock{
		done: true,
	}
}

// Start arms the clock. A zero timeout only stops on ctx cancellation.
func (c *Clock) Start(ctx context.Context, timeout time.Duration) {
	c.Stop()
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}
	if timeout > 0 {
		c.ctx, c.cancel = context.WithTimeout(ctx, timeout)
	} else {
		c.ctx, c.cancel = context.WithCancel(ctx)
	}
	c.started = time.Now()
	c.done = false
}

func (c *Clock) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Done reports whether the budget is spent. Once done, it stays done until
// the next Start.
func (c *Clock) Done() bool {
	if c.done {
		return true
	}
	select {
	case <-c.ctx.Done():
		c.done = true
	default:
	}
	return c.done
}

func (c *Clock) Elapsed() time.Duration {
	return time.Since(c.started)
}
