package throttle

import "time"

// Throttle invokes a function at most once per wait interval. With both
// edges enabled (the default) the first call of a quiet period runs
// immediately and any further calls inside the interval collapse into a
// single trailing run when the interval expires.
//
// A Throttle is not safe for concurrent use; it expects calls and timer
// callbacks to be serialised by its Clock's owner.
type Throttle struct {
	fn       func()
	wait     time.Duration
	clock    Clock
	leading  bool
	trailing bool

	timer      Timer
	gen        int
	pending    bool
	invoked    bool
	lastInvoke time.Time
}

// Option configures a Throttle.
type Option func(*Throttle)

// WithClock sets the clock used for timestamps and timers.
func WithClock(c Clock) Option {
	return func(t *Throttle) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithLeading toggles invocation on the leading edge.
func WithLeading(on bool) Option {
	return func(t *Throttle) { t.leading = on }
}

// WithTrailing toggles invocation on the trailing edge.
func WithTrailing(on bool) Option {
	return func(t *Throttle) { t.trailing = on }
}

// New creates a Throttle around fn. A negative wait is treated as zero.
func New(wait time.Duration, fn func(), opts ...Option) *Throttle {
	if wait < 0 {
		wait = 0
	}
	t := &Throttle{
		fn:       fn,
		wait:     wait,
		clock:    SystemClock(),
		leading:  true,
		trailing: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Call requests an invocation.
func (t *Throttle) Call() {
	now := t.clock.Now()

	if t.timer != nil {
		if t.trailing {
			t.pending = true
		}
		return
	}

	elapsed := now.Sub(t.lastInvoke)
	if t.leading && (!t.invoked || elapsed >= t.wait) {
		// Armed first: a call made from inside fn joins the trailing run.
		t.arm(t.wait)
		t.invoke(now)
		return
	}

	if !t.trailing {
		return
	}
	t.pending = true
	remaining := t.wait
	if t.leading && t.invoked {
		remaining = t.wait - elapsed
	}
	t.arm(remaining)
}

// Pending reports whether a trailing invocation is scheduled.
func (t *Throttle) Pending() bool {
	return t.timer != nil && t.pending
}

// Cancel drops any scheduled invocation and resets the throttle to a quiet
// period. A timer that already fired but has not been delivered is ignored.
func (t *Throttle) Cancel() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = false
	t.invoked = false
	t.lastInvoke = time.Time{}
}

func (t *Throttle) arm(d time.Duration) {
	gen := t.gen
	t.timer = t.clock.AfterFunc(d, func() { t.expire(gen) })
}

func (t *Throttle) expire(gen int) {
	if gen != t.gen {
		return
	}
	t.timer = nil
	if !t.pending {
		return
	}
	t.pending = false
	t.invoke(t.clock.Now())
}

func (t *Throttle) invoke(now time.Time) {
	t.invoked = true
	t.lastInvoke = now
	t.fn()
}
