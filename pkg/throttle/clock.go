// Package throttle provides a leading+trailing rate limiter driven by an
// injectable Clock, so callers decide on which goroutine deferred callbacks
// run and tests can step time by hand.
package throttle

import "time"

// Timer is a pending callback created by Clock.AfterFunc.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer (false if it already fired or was stopped).
	Stop() bool
}

// Clock abstracts time for the throttle and anything else that schedules
// deferred work.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// SystemClock returns a Clock backed by the time package. Callbacks run on
// their own goroutine, so owners that are not safe for concurrent use should
// wrap it (see NewLoopClock).
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// loopClock schedules with the system clock but hands fired callbacks to
// post instead of running them, letting an event loop execute them in turn.
type loopClock struct {
	post func(func())
}

// NewLoopClock returns a Clock whose callbacks are delivered through post.
// post must be safe to call from any goroutine.
func NewLoopClock(post func(func())) Clock {
	return loopClock{post: post}
}

func (c loopClock) Now() time.Time { return time.Now() }

func (c loopClock) AfterFunc(d time.Duration, f func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		c.post(func() {
			// Stop may have raced with delivery; the flag is read on the loop.
			if lt.stopped {
				return
			}
			lt.fired = true
			f()
		})
	})
	return lt
}

type loopTimer struct {
	t       *time.Timer
	stopped bool
	fired   bool
}

func (lt *loopTimer) Stop() bool {
	if lt.stopped || lt.fired {
		return false
	}
	lt.stopped = true
	lt.t.Stop()
	return true
}
