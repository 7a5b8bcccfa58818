package navigator

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestNewRejectsNilHost(t *testing.T) {
	if _, err := New(nil, &fakePlatform{}); !errors.Is(err, ErrNilHost) {
		t.Errorf("expected ErrNilHost, got %v", err)
	}
}

func TestNewRequiresPlatformOrContainer(t *testing.T) {
	if _, err := New(newFakeHost(), nil); !errors.Is(err, ErrNilPlatform) {
		t.Errorf("expected ErrNilPlatform, got %v", err)
	}
	if _, err := New(newFakeHost(), nil, WithContainer(newFakePanel())); err != nil {
		t.Errorf("container without platform should work: %v", err)
	}
}

func TestNewDoesNotRenderImmediately(t *testing.T) {
	f := newFixture(t)
	if len(f.host.snapshots) != 0 {
		t.Errorf("expected no snapshot before a render event, got %d", len(f.host.snapshots))
	}
}

func TestDefaultLoggerDiscards(t *testing.T) {
	f := newFixture(t)
	if f.nav.log.Enabled(context.Background(), slog.LevelError) {
		t.Error("navigator should log nothing without WithLogger")
	}
}

// ── Container resolution ──

func TestSelectorResolvesExistingPanel(t *testing.T) {
	existing := newFakePanel()
	platform := &fakePlatform{byName: map[string]*fakePanel{"#minimap": existing}}
	nav, err := New(newFakeHost(), platform, WithContainerSelector("#minimap"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if nav.Panel() != Panel(existing) {
		t.Error("expected selector to resolve existing panel")
	}
	if len(platform.created) != 0 {
		t.Errorf("expected no panel created, got %d", len(platform.created))
	}
}

func TestSelectorFallsBackToCreatedPanel(t *testing.T) {
	platform := &fakePlatform{}
	nav, err := New(newFakeHost(), platform, WithContainerSelector(".missing"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(platform.created) != 1 || nav.Panel() != Panel(platform.created[0]) {
		t.Error("expected a created panel when the selector matches nothing")
	}
	nav.Destroy()
	if !platform.created[0].removed {
		t.Error("created panel should be removed on destroy")
	}
}

// ── Destroy ──

func TestDestroyReleasesEverything(t *testing.T) {
	f := newFixture(t)
	if f.host.listenerCount() == 0 || f.panel.listenerCount() == 0 {
		t.Fatal("expected subscriptions after New")
	}
	f.nav.Destroy()

	if n := f.host.listenerCount(); n != 0 {
		t.Errorf("expected 0 host listeners, got %d", n)
	}
	if n := f.panel.listenerCount(); n != 0 {
		t.Errorf("expected 0 panel listeners, got %d", n)
	}
	if !f.panel.removed {
		t.Error("expected created panel to be removed")
	}
}

func TestDestroyCancelsPendingWork(t *testing.T) {
	f := newFixture(t, WithLiveRate(LiveFPS(10)))
	f.host.payload = pngPayload(t)

	f.host.emit(TopicRender)
	f.host.emit(TopicRender)
	f.down(10, 10)
	f.move(30, 10)
	if f.clock.Pending() == 0 {
		t.Fatal("expected pending timers before destroy")
	}

	f.nav.Destroy()
	if f.clock.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", f.clock.Pending())
	}
	f.clock.Advance(5 * time.Second)
	if len(f.host.snapshots) != 1 {
		t.Errorf("expected only the leading snapshot, got %d", len(f.host.snapshots))
	}
	if len(f.host.setPans) != 0 {
		t.Errorf("expected no pans after destroy, got %v", f.host.setPans)
	}
	if f.nav.State() != StateIdle {
		t.Errorf("expected idle after destroy, got %v", f.nav.State())
	}
}

func TestDestroyIgnoresLaterInput(t *testing.T) {
	f := newFixture(t)
	f.nav.Destroy()
	f.nav.Destroy()
	f.down(10, 10)
	f.nav.RequestRender()
	f.nav.Resize()
	if f.nav.State() != StateIdle || len(f.host.snapshots) != 0 {
		t.Error("destroyed navigator reacted to input")
	}
}

func TestDestroyCustomContainer(t *testing.T) {
	keep := newFakePanel()
	nav, err := New(newFakeHost(), nil, WithContainer(keep), WithRemoveCustomContainer(false))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	nav.Destroy()
	if !keep.cleared || keep.removed {
		t.Errorf("expected clear only, got cleared=%v removed=%v", keep.cleared, keep.removed)
	}

	drop := newFakePanel()
	nav, err = New(newFakeHost(), nil, WithContainer(drop))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	nav.Destroy()
	if !drop.removed {
		t.Error("expected custom container removed by default")
	}
}

// ── Geometry updates ──

func TestHostPanMovesRectangle(t *testing.T) {
	f := newFixture(t)
	f.host.SetPan(Point{X: -400, Y: -300})
	if v := f.nav.View(); v.X != 50 || v.Y != 37.5 {
		t.Errorf("expected rectangle at (50,37.5), got (%v,%v)", v.X, v.Y)
	}
}

func TestResizeRebuildsGeometry(t *testing.T) {
	f := newFixture(t)
	f.panel.size = Size{W: 400, H: 300}
	f.host.emit(TopicResize)

	if z := f.nav.Transform().Zoom; z != 0.5 {
		t.Errorf("expected transform zoom 0.5, got %v", z)
	}
	if w := f.nav.View().W; w != 200 {
		t.Errorf("expected rectangle width 200, got %v", w)
	}
	if len(f.host.snapshots) != 1 {
		t.Errorf("expected resize to request a render, got %d", len(f.host.snapshots))
	}
}

func TestResizeWithoutChangeDoesNotRender(t *testing.T) {
	f := newFixture(t)
	f.host.emit(TopicResize)
	if len(f.host.snapshots) != 0 {
		t.Errorf("expected no render, got %d", len(f.host.snapshots))
	}
}

func TestBorderOffsetsRectangle(t *testing.T) {
	f := newFixture(t, WithBorder(Insets{Top: 2, Left: 3, Right: 3, Bottom: 2}))
	if v := f.nav.View(); v.X != -3 || v.Y != -2 {
		t.Errorf("expected rectangle at (-3,-2), got (%v,%v)", v.X, v.Y)
	}
}
