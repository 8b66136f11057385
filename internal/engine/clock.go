package engine

import "time"

// Clock owns the countdown and the lives budget of a session.
//
// A zero limit means the session is untimed: Tick only accumulates elapsed
// time. Once terminal, Tick and LoseLife are no-ops.
type Clock struct {
	limit     time.Duration
	remaining time.Duration
	elapsed   time.Duration
	lives     int
	terminal  bool
	onEnd     func(EndReason)
}

// NewClock returns a clock with the given time limit and starting lives.
func NewClock(limit time.Duration, lives int) *Clock {
	if lives < 0 {
		lives = 0
	}
	return &Clock{limit: limit, remaining: limit, lives: lives}
}

// Tick consumes d of session time.
func (c *Clock) Tick(d time.Duration) {
	if c.terminal || d <= 0 {
		return
	}
	c.elapsed += d
	if c.limit <= 0 {
		return
	}
	c.remaining -= d
	if c.remaining <= 0 {
		c.remaining = 0
		c.expire(EndTimeUp)
	}
}

// LoseLife removes n lives, clamped at zero.
func (c *Clock) LoseLife(n int) {
	if c.terminal || n <= 0 {
		return
	}
	c.lives -= n
	if c.lives <= 0 {
		c.lives = 0
		c.expire(EndOutOfLives)
	}
}

// IsTerminal reports whether the clock has stopped.
func (c *Clock) IsTerminal() bool {
	return c.terminal
}

// Timed reports whether the clock counts down.
func (c *Clock) Timed() bool {
	return c.limit > 0
}

// Remaining returns the time left on the countdown.
func (c *Clock) Remaining() time.Duration {
	return c.remaining
}

// Elapsed returns the session time consumed so far.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Lives returns the lives left.
func (c *Clock) Lives() int {
	return c.lives
}

func (c *Clock) expire(reason EndReason) {
	c.terminal = true
	if c.onEnd != nil {
		c.onEnd(reason)
	}
}

// stop freezes the clock when the session ends for another reason.
func (c *Clock) stop() {
	c.terminal = true
}
