package navigator

import "time"

// HandleEvent implements Controller.
func (n *Navigator) HandleEvent(ev Event) {
	if n.destroyed {
		return
	}
	in, ok := Normalize(ev, Frame{Origin: n.panel.Origin(), View: n.view})
	if !ok {
		return
	}
	n.HandleInput(in)
}

// HandleInput implements Controller.
func (n *Navigator) HandleInput(in Input) {
	if n.destroyed {
		return
	}
	switch in.Kind {
	case InputPointerDown:
		n.pointerDown(in.Point())
	case InputPointerMove:
		n.pointerMove(in.Point())
	case InputPointerUp:
		n.pointerUp(in.Point())
	case InputWheel:
		n.wheel(in)
	}
}

func (n *Navigator) interactive() bool {
	return n.viewVisible
}

func (n *Navigator) pointerDown(p Point) {
	if !n.interactive() {
		return
	}
	now := n.opts.clock.Now()

	if !n.lastDown.IsZero() && now.Before(n.lastDown.Add(n.opts.doubleClickDelay)) {
		n.lastDown = time.Time{}
		n.center()
		return
	}

	n.lastDown = now
	n.state = StateDragging

	if n.view.Contains(p) {
		n.hook = Point{X: p.X - n.view.X, Y: p.Y - n.view.Y}
		return
	}
	// Click on the thumbnail outside the rectangle: jump there.
	n.hook = n.view.Center()
	n.pointerMove(p)
}

// center moves the rectangle to the middle of the panel without taking the
// tracking lock.
func (n *Navigator) center() {
	n.hook = n.view.Center()
	n.place(n.panelSize.Center())
	n.log.Debug("center", "view_x", n.view.X, "view_y", n.view.Y)
	if n.opts.liveRate.Enabled() {
		n.propagate()
	} else {
		n.moveHost()
	}
	n.state = StateIdle
}

func (n *Navigator) pointerMove(p Point) {
	n.updateHover(p)
	if n.state != StateDragging {
		return
	}
	n.place(p)
	n.propagate()
}

func (n *Navigator) pointerUp(p Point) {
	if n.state != StateDragging {
		n.updateHover(p)
		return
	}
	n.pointerMove(p)
	n.state = StateIdle

	pending := n.moveTimer != nil
	if pending {
		n.moveTimer.Stop()
		n.moveTimer = nil
	}
	if pending || !n.opts.liveRate.Enabled() {
		n.moveHost()
	}
}

func (n *Navigator) wheel(in Input) {
	if in.ZoomDelta == 0 || !n.host.ZoomingEnabled() {
		return
	}
	rate := ZoomRate(in.ZoomDelta)
	// The pointer position is reported but the zoom stays centred on the
	// main view.
	center := n.hostSize.Center()
	n.log.Debug("wheel zoom", "rate", rate, "pointer_x", in.X, "pointer_y", in.Y)
	n.host.ZoomAt(n.host.Zoom()*rate, center)
}

// place moves the rectangle so the hook point sits under pointer. The panel
// is updated in the same turn; the host follows per the live rate.
func (n *Navigator) place(pointer Point) {
	n.view.X = pointer.X - n.hook.X
	n.view.Y = pointer.Y - n.hook.Y
	n.panel.SetView(n.view, n.viewVisible)
}

func (n *Navigator) propagate() {
	rate := n.opts.liveRate
	if !rate.Enabled() {
		return
	}
	iv := rate.Interval()
	if iv == 0 {
		n.moveHost()
		return
	}
	if n.moveTimer != nil {
		return
	}
	n.moveTimer = n.opts.clock.AfterFunc(iv, func() {
		n.moveTimer = nil
		if n.destroyed {
			return
		}
		n.moveHost()
	})
}

// moveHost pans the host so its visible region matches the rectangle.
func (n *Navigator) moveHost() {
	pan, ok := HostPanFor(n.view, n.hostSize, n.transform, n.opts.border)
	if !ok {
		return
	}
	n.log.Debug("pan host", "x", pan.X, "y", pan.Y)
	n.host.SetPan(pan)
}

func (n *Navigator) updateHover(p Point) {
	on := n.viewVisible && hovering(n.view, n.opts.border, p)
	if on == n.hover {
		return
	}
	n.hover = on
	n.panel.SetHover(on)
}
