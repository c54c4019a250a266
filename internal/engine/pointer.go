package engine

// ClickSlop is how far, in window pixels, the cursor may travel between press
// and release for the release to still count as a click.
const ClickSlop = 3

// pointerTracker turns raw cursor and button events into hover, click and
// drag gestures.
type pointerTracker struct {
	handler        InputHandler
	pressed        bool
	dragging       bool
	pan            bool
	pressX, pressY float32
	lastX, lastY   float32
}

func newPointerTracker(handler InputHandler) *pointerTracker {
	return &pointerTracker{handler: handler}
}

func (p *pointerTracker) press(x, y float32, pan bool) {
	p.pressed = true
	p.dragging = false
	p.pan = pan
	p.pressX, p.pressY = x, y
	p.lastX, p.lastY = x, y
}

func (p *pointerTracker) move(x, y float32) {
	if p.handler == nil {
		return
	}
	if !p.pressed {
		p.handler.PointerMove(x, y)
		return
	}

	if !p.dragging {
		dx, dy := x-p.pressX, y-p.pressY
		if dx*dx+dy*dy <= ClickSlop*ClickSlop {
			return
		}
		p.dragging = true
		p.handler.DragStart()
	}
	p.handler.Drag(x-p.lastX, y-p.lastY, p.pan)
	p.lastX, p.lastY = x, y
}

func (p *pointerTracker) release(x, y float32) {
	if !p.pressed {
		return
	}
	p.pressed = false
	if p.handler == nil {
		return
	}
	if p.dragging {
		p.dragging = false
		p.handler.DragEnd()
		p.handler.PointerMove(x, y)
		return
	}
	if !p.pan {
		p.handler.PointerClick(x, y)
	}
}

func (p *pointerTracker) leave() {
	if p.handler != nil && !p.dragging {
		p.handler.PointerLeave()
	}
}
