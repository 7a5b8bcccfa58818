package navigator

import (
	"math"
	"testing"
	"time"
)

func TestInitialView(t *testing.T) {
	f := newFixture(t)
	want := Rect{X: 0, Y: 0, W: 100, H: 75}
	if !nearRect(f.nav.View(), want) {
		t.Fatalf("expected %+v, got %+v", want, f.nav.View())
	}
	if !f.panel.visible || !f.nav.ViewVisible() {
		t.Error("expected rectangle to be visible")
	}
	if f.nav.State() != StateIdle {
		t.Errorf("expected idle, got %v", f.nav.State())
	}
}

// ── Dragging ──

func TestDragInsideKeepsGrabOffset(t *testing.T) {
	f := newFixture(t)
	f.down(10, 10)
	if f.nav.State() != StateDragging {
		t.Fatalf("expected dragging, got %v", f.nav.State())
	}
	f.move(60, 40)

	if v := f.nav.View(); v.X != 50 || v.Y != 30 {
		t.Errorf("expected rectangle at (50,30), got (%v,%v)", v.X, v.Y)
	}
	if f.panel.view.X != 50 || f.panel.view.Y != 30 {
		t.Errorf("panel not updated: %+v", f.panel.view)
	}
	if len(f.host.setPans) != 1 || f.host.pan != (Point{X: -400, Y: -240}) {
		t.Errorf("expected one pan to (-400,-240), got %v", f.host.setPans)
	}
}

func TestClickOutsideJumpsRectangle(t *testing.T) {
	f := newFixture(t)
	f.down(150, 100)

	// Centre of the rectangle lands on the pointer.
	if v := f.nav.View(); v.X != 100 || v.Y != 62.5 {
		t.Errorf("expected rectangle at (100,62.5), got (%v,%v)", v.X, v.Y)
	}
	if f.host.pan != (Point{X: -800, Y: -500}) {
		t.Errorf("expected host pan (-800,-500), got %v", f.host.pan)
	}
	if f.nav.State() != StateDragging {
		t.Errorf("expected dragging after jump, got %v", f.nav.State())
	}
}

func TestTrackingLockIgnoresHostPan(t *testing.T) {
	f := newFixture(t)
	f.down(10, 10)
	f.move(60, 40)

	f.host.SetPan(Point{X: 0, Y: 0})
	if v := f.nav.View(); v.X != 50 || v.Y != 30 {
		t.Errorf("rectangle moved during drag: %+v", v)
	}

	f.up(60, 40)
	f.host.SetPan(Point{X: 0, Y: 0})
	if v := f.nav.View(); v.X != 0 || v.Y != 0 {
		t.Errorf("rectangle should follow host after release, got %+v", v)
	}
}

func TestDragIsNotClamped(t *testing.T) {
	f := newFixture(t)
	f.down(10, 10)
	f.move(-490, -490)
	if v := f.nav.View(); v.X != -500 || v.Y != -500 {
		t.Errorf("expected rectangle at (-500,-500), got (%v,%v)", v.X, v.Y)
	}
}

func TestReleaseRoundTripsThroughHost(t *testing.T) {
	f := newFixture(t, WithLiveRate(LiveOnDragEnd()))
	f.down(10, 10)
	f.move(47.5, 21.25)
	f.up(47.5, 21.25)

	// Host pan was set once and the re-derived rectangle matches the drop.
	if len(f.host.setPans) != 1 {
		t.Fatalf("expected one pan, got %d", len(f.host.setPans))
	}
	want := Rect{X: 37.5, Y: 11.25, W: 100, H: 75}
	if !nearRect(f.nav.View(), want) {
		t.Errorf("expected %+v after round trip, got %+v", want, f.nav.View())
	}
}

func TestPointerUpWithoutDragOnlyHovers(t *testing.T) {
	f := newFixture(t)
	f.up(50, 30)
	if len(f.host.setPans) != 0 {
		t.Errorf("unexpected pan: %v", f.host.setPans)
	}
	if !f.panel.hover {
		t.Error("expected hover over rectangle")
	}
}

// ── Live rate ──

func TestLiveOnDragEndPansOnlyOnRelease(t *testing.T) {
	f := newFixture(t, WithLiveRate(LiveOnDragEnd()))
	f.down(10, 10)
	f.move(20, 10)
	f.move(30, 10)
	if len(f.host.setPans) != 0 {
		t.Fatalf("expected no pans during drag, got %v", f.host.setPans)
	}
	f.up(40, 10)
	if len(f.host.setPans) != 1 || f.host.pan.X != -240 {
		t.Errorf("expected one pan to x=-240, got %v", f.host.setPans)
	}
}

func TestLiveInstantPansOnEveryMove(t *testing.T) {
	f := newFixture(t, WithLiveRate(LiveInstant()))
	f.down(10, 10)
	f.move(20, 10)
	f.move(30, 10)
	f.move(40, 10)
	if len(f.host.setPans) != 3 {
		t.Fatalf("expected 3 pans, got %d", len(f.host.setPans))
	}
	f.up(40, 10)
	if len(f.host.setPans) != 4 {
		t.Errorf("expected the release move to pan too, got %d", len(f.host.setPans))
	}
}

func TestLiveFPSCoalescesMoves(t *testing.T) {
	f := newFixture(t, WithLiveRate(LiveFPS(10)))
	f.down(10, 10)
	f.move(20, 10)
	f.move(30, 10)
	f.clock.Advance(50 * time.Millisecond)
	f.move(40, 10)
	if len(f.host.setPans) != 0 {
		t.Fatalf("expected no pans before interval, got %v", f.host.setPans)
	}

	f.clock.Advance(50 * time.Millisecond)
	if len(f.host.setPans) != 1 || f.host.pan.X != -240 {
		t.Fatalf("expected one pan with latest position, got %v", f.host.setPans)
	}

	f.move(50, 10)
	f.up(50, 10)
	if len(f.host.setPans) != 2 || f.host.pan.X != -320 {
		t.Fatalf("expected release to flush pending pan, got %v", f.host.setPans)
	}
	f.clock.Advance(time.Second)
	if len(f.host.setPans) != 2 {
		t.Errorf("cancelled timer fired: %v", f.host.setPans)
	}
}

func TestLiveFPSZeroIsInstant(t *testing.T) {
	if LiveFPS(0) != LiveInstant() || LiveFPS(-3).Interval() != 0 {
		t.Error("non-positive fps should be instant")
	}
	if LiveFPS(4).Interval() != 250*time.Millisecond {
		t.Errorf("unexpected interval %v", LiveFPS(4).Interval())
	}
	if LiveOnDragEnd().Enabled() {
		t.Error("on-drag-end should not be enabled")
	}
}

// ── Double click ──

func TestDoubleClickCentersRectangle(t *testing.T) {
	f := newFixture(t)
	f.down(10, 10)
	f.up(10, 10)
	f.clock.Advance(50 * time.Millisecond)
	f.down(10, 10)

	if v := f.nav.View(); v.X != 50 || v.Y != 37.5 {
		t.Errorf("expected centred rectangle at (50,37.5), got (%v,%v)", v.X, v.Y)
	}
	if f.nav.State() != StateIdle {
		t.Errorf("double click should not start a drag, got %v", f.nav.State())
	}
	if f.host.pan != (Point{X: -400, Y: -300}) {
		t.Errorf("expected host pan (-400,-300), got %v", f.host.pan)
	}
}

func TestSlowClicksDoNotCenter(t *testing.T) {
	f := newFixture(t)
	f.down(10, 10)
	f.up(10, 10)
	f.clock.Advance(300 * time.Millisecond)
	f.down(10, 10)

	if f.nav.State() != StateDragging {
		t.Errorf("expected second click to start a drag, got %v", f.nav.State())
	}
	if v := f.nav.View(); v.X != 0 || v.Y != 0 {
		t.Errorf("rectangle should not move, got %+v", v)
	}
}

func TestTripleClickStartsDragAgain(t *testing.T) {
	f := newFixture(t)
	f.down(10, 10)
	f.up(10, 10)
	f.down(10, 10)
	f.down(60, 40)
	if f.nav.State() != StateDragging {
		t.Errorf("third click should be a plain click, got %v", f.nav.State())
	}
}

// ── Wheel ──

func TestWheelZoomsAroundViewCenter(t *testing.T) {
	f := newFixture(t)
	f.panel.dispatch(ChannelLocal, WheelEvent{WheelDeltaY: 120, Page: Point{X: 30, Y: 30}})

	if len(f.host.zooms) != 1 {
		t.Fatalf("expected one zoom, got %d", len(f.host.zooms))
	}
	z := f.host.zooms[0]
	if !near(z.level, 2*math.Pow(10, 0.12)) {
		t.Errorf("unexpected level %v", z.level)
	}
	if z.rendered != (Point{X: 400, Y: 300}) {
		t.Errorf("expected zoom around (400,300), got %v", z.rendered)
	}
	if !near(f.nav.View().W, 800/z.level*0.25) {
		t.Errorf("rectangle not rebuilt after zoom: %+v", f.nav.View())
	}
}

func TestWheelIgnoredWhenZoomingDisabled(t *testing.T) {
	f := newFixture(t)
	f.host.zoomEnabled = false
	f.panel.dispatch(ChannelLocal, WheelEvent{WheelDeltaY: 120})
	if len(f.host.zooms) != 0 {
		t.Errorf("expected no zoom, got %v", f.host.zooms)
	}
}

func TestWheelWithoutDeltaIgnored(t *testing.T) {
	f := newFixture(t)
	f.panel.dispatch(ChannelLocal, WheelEvent{})
	if len(f.host.zooms) != 0 {
		t.Errorf("expected no zoom, got %v", f.host.zooms)
	}
}

// ── Events and hover ──

func TestRawEventsUsePanelOrigin(t *testing.T) {
	f := newFixture(t)
	f.panel.origin = Point{X: 300, Y: 200}
	f.panel.dispatch(ChannelLocal, PointerEvent{Type: PointerDown, Page: Point{X: 310, Y: 210}})
	f.panel.dispatch(ChannelGlobal, PointerEvent{Type: PointerMove, Page: Point{X: 360, Y: 240}})
	f.panel.dispatch(ChannelGlobal, PointerEvent{Type: PointerUp, Page: Point{X: 360, Y: 240}})

	if v := f.nav.View(); v.X != 50 || v.Y != 30 {
		t.Errorf("expected rectangle at (50,30), got (%v,%v)", v.X, v.Y)
	}
	if f.nav.State() != StateIdle {
		t.Errorf("expected idle after release, got %v", f.nav.State())
	}
}

func TestHoverToggles(t *testing.T) {
	f := newFixture(t)
	f.move(50, 30)
	if !f.panel.hover || !f.nav.Hovering() {
		t.Error("expected hover inside rectangle")
	}
	f.move(150, 120)
	if f.panel.hover || f.nav.Hovering() {
		t.Error("expected hover cleared outside rectangle")
	}
}

func TestDegenerateBoundsHideRectangle(t *testing.T) {
	host := newFakeHost()
	host.bounds = BoundingBox{X1: 10, Y1: 10, X2: 10, Y2: 10}
	panel := newFakePanel()
	nav, err := New(host, &fakePlatform{template: panel})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if panel.visible || nav.ViewVisible() {
		t.Error("rectangle should be hidden for empty content")
	}
	nav.HandleInput(Input{Kind: InputPointerDown, X: 100, Y: 75})
	if nav.State() != StateIdle || len(host.setPans) != 0 {
		t.Error("hidden rectangle should ignore pointer input")
	}
}
