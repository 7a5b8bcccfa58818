package navigator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/wesen/grailnav/pkg/throttle"
)

// Defaults for the construction-time options.
const (
	DefaultDoubleClickDelay = 200 * time.Millisecond
	DefaultRerenderDelay    = 500 * time.Millisecond
)

// LiveRate controls how drag movement propagates to the host's pan.
// The zero value is LiveInstant.
type LiveRate struct {
	onDragEnd bool
	fps       float64
}

// LiveOnDragEnd propagates only once, when the drag ends.
func LiveOnDragEnd() LiveRate { return LiveRate{onDragEnd: true} }

// LiveInstant propagates on every move.
func LiveInstant() LiveRate { return LiveRate{} }

// LiveFPS propagates at most fps times per second. fps <= 0 is LiveInstant.
func LiveFPS(fps float64) LiveRate {
	if fps <= 0 {
		return LiveInstant()
	}
	return LiveRate{fps: fps}
}

// Enabled reports whether moves propagate during the drag.
func (r LiveRate) Enabled() bool { return !r.onDragEnd }

// FPS returns the cap, 0 meaning instant. Meaningless when !Enabled().
func (r LiveRate) FPS() float64 { return r.fps }

// Interval is the minimum gap between propagations, 0 for instant.
func (r LiveRate) Interval() time.Duration {
	if r.onDragEnd || r.fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / r.fps)
}

func (r LiveRate) String() string {
	switch {
	case r.onDragEnd:
		return "on-drag-end"
	case r.fps <= 0:
		return "instant"
	}
	return fmt.Sprintf("%gfps", r.fps)
}

type options struct {
	container             Panel
	selector              string
	liveRate              LiveRate
	doubleClickDelay      time.Duration
	removeCustomContainer bool
	rerenderDelay         time.Duration
	border                Insets
	clock                 throttle.Clock
	logger                *slog.Logger
}

func defaultOptions() options {
	return options{
		liveRate:              LiveInstant(),
		doubleClickDelay:      DefaultDoubleClickDelay,
		removeCustomContainer: true,
		rerenderDelay:         DefaultRerenderDelay,
		clock:                 throttle.SystemClock(),
		logger:                slog.New(slog.DiscardHandler),
	}
}

// Option configures a Navigator at construction.
type Option func(*options)

// WithContainer supplies an existing panel instead of creating one.
func WithContainer(p Panel) Option {
	return func(o *options) { o.container = p }
}

// WithContainerSelector looks the panel up on the platform by "#id" or
// ".class". An unresolved selector falls back to a created panel.
func WithContainerSelector(sel string) Option {
	return func(o *options) { o.selector = sel }
}

// WithLiveRate sets drag propagation behaviour.
func WithLiveRate(r LiveRate) Option {
	return func(o *options) { o.liveRate = r }
}

// WithDoubleClickDelay sets the maximum gap between two pointer-downs that
// counts as a double click. Negative values keep the default.
func WithDoubleClickDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.doubleClickDelay = d
		}
	}
}

// WithRemoveCustomContainer chooses whether Destroy removes a supplied
// container (true) or only clears it.
func WithRemoveCustomContainer(remove bool) Option {
	return func(o *options) { o.removeCustomContainer = remove }
}

// WithRerenderDelay sets the thumbnail re-render throttle interval.
// Negative values keep the default.
func WithRerenderDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.rerenderDelay = d
		}
	}
}

// WithBorder sets the view rectangle's border widths.
func WithBorder(in Insets) Option {
	return func(o *options) { o.border = in }
}

// WithClock sets the clock for double-click timing and all timers.
func WithClock(c throttle.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
