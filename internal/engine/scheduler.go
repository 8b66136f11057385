package engine

import "time"

// Scheduler runs periodic callbacks against virtual time.
//
// Time only moves when Advance is called, so every callback runs on the
// caller's goroutine and never interleaves with input handling. Callbacks
// due at the same instant fire in registration order.
type Scheduler struct {
	now     time.Time
	entries []*Token
	seq     uint64
}

// Token identifies a scheduled callback.
type Token struct {
	interval  time.Duration
	next      time.Time
	fn        func()
	seq       uint64
	cancelled bool
}

// Cancel stops the callback. It is safe to call more than once and from
// inside any callback, including its own.
func (t *Token) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Cancelled reports whether Cancel has been called.
func (t *Token) Cancelled() bool {
	return t == nil || t.cancelled
}

// NewScheduler returns a scheduler whose clock starts at start.
func NewScheduler(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// Schedule runs fn every interval, first firing one interval from now.
func (s *Scheduler) Schedule(interval time.Duration, fn func()) *Token {
	if interval <= 0 {
		panic("engine: schedule interval must be positive")
	}
	s.seq++
	t := &Token{
		interval: interval,
		next:     s.now.Add(interval),
		fn:       fn,
		seq:      s.seq,
	}
	s.entries = append(s.entries, t)
	return t
}

// Pending returns the number of live callbacks.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.entries {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every callback that falls due
// in order of deadline. Each callback observes Now() equal to its deadline.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now.Add(d)
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.next
		t.next = t.next.Add(t.interval)
		t.fn()
	}
	s.now = target
	s.compact()
}

func (s *Scheduler) nextDue(target time.Time) *Token {
	var best *Token
	for _, t := range s.entries {
		if t.cancelled || t.next.After(target) {
			continue
		}
		if best == nil || t.next.Before(best.next) || (t.next.Equal(best.next) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	live := s.entries[:0]
	for _, t := range s.entries {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = live
}
