package grailui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/grailnav/internal/hostgraph"
	"github.com/wesen/grailnav/pkg/throttle"
)

// timerMsg carries a fired navigator timer back onto the update loop.
type timerMsg func()

// reloadMsg carries a graph reloaded by the file watcher.
type reloadMsg struct {
	graph *hostgraph.Graph
	err   error
}

// watchDoneMsg reports that the file watcher stopped.
type watchDoneMsg struct{ err error }

const timerQueue = 64

// newLoopClock returns a clock whose callbacks arrive as timerMsg through
// timers.
func newLoopClock(timers chan<- func()) throttle.Clock {
	return throttle.NewLoopClock(func(f func()) { timers <- f })
}

func waitTimer(timers <-chan func()) tea.Cmd {
	return func() tea.Msg {
		return timerMsg(<-timers)
	}
}

func waitReload(reloads <-chan reloadMsg) tea.Cmd {
	return func() tea.Msg {
		return <-reloads
	}
}

// watchGraph runs the file watcher until ctx ends.
func watchGraph(ctx context.Context, path string, debounce time.Duration, reloads chan<- reloadMsg) tea.Cmd {
	return func() tea.Msg {
		err := hostgraph.Watch(ctx, path, debounce, func(g *hostgraph.Graph, err error) {
			select {
			case reloads <- reloadMsg{graph: g, err: err}:
			case <-ctx.Done():
			}
		})
		return watchDoneMsg{err: err}
	}
}
