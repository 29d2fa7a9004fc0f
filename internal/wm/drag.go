package wm

// Drag tracks a pointer drag of one window by its header. Only one drag is
// active at a time.
type Drag struct {
	active     bool
	id         ID
	offX, offY int
}

// Begin focuses the window and remembers where it was grabbed.
func (d *Drag) Begin(m *Manager, id ID, px, py int) bool {
	w := m.Window(id)
	if w == nil {
		return false
	}
	m.Focus(id)
	d.active = true
	d.id = id
	d.offX, d.offY = px-w.X, py-w.Y
	return true
}

// Update moves the dragged window so the grab point follows the pointer.
// A drag whose window has gone away ends itself.
func (d *Drag) Update(m *Manager, px, py int) bool {
	if !d.active {
		return false
	}
	if !m.Move(d.id, px-d.offX, py-d.offY) {
		d.End()
		return false
	}
	return true
}

// End stops the drag.
func (d *Drag) End() {
	*d = Drag{}
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool { return d.active }

// ID returns the dragged window.
func (d *Drag) ID() ID { return d.id }
