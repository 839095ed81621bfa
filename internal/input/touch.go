package input

// Panel is the touch panel driver. It reports at most one contact point.
type Panel interface {
	Touch() (present bool, x, y int)
}

// Rect is a hit region. All four edges are inclusive.
type Rect struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
	W int `json:"w" yaml:"w" toml:"w"`
	H int `json:"h" yaml:"h" toml:"h"`
}

// Contains reports whether (x, y) lies within the region, edges included.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Layout maps on-screen regions to controls. Buttons without a region are
// never touch-active. The four directional regions drive the left stick.
type Layout struct {
	Buttons [NumControls]*Rect

	Up, Down, Left, Right *Rect
}

// DefaultLayout is the 320x240 landscape layout: stick pad on the left, face
// buttons on the right, system buttons along the top.
func DefaultLayout() Layout {
	var l Layout
	l.Buttons[A] = &Rect{X: 240, Y: 120, W: 70, H: 50}
	l.Buttons[B] = &Rect{X: 240, Y: 180, W: 70, H: 50}
	l.Buttons[X] = &Rect{X: 160, Y: 120, W: 70, H: 50}
	l.Buttons[Y] = &Rect{X: 160, Y: 180, W: 70, H: 50}
	l.Buttons[Plus] = &Rect{X: 280, Y: 60, W: 35, H: 25}
	l.Buttons[Minus] = &Rect{X: 5, Y: 60, W: 35, H: 25}
	l.Buttons[Home] = &Rect{X: 280, Y: 30, W: 35, H: 25}

	l.Up = &Rect{X: 60, Y: 100, W: 50, H: 40}
	l.Down = &Rect{X: 60, Y: 180, W: 50, H: 40}
	l.Left = &Rect{X: 10, Y: 140, W: 40, H: 50}
	l.Right = &Rect{X: 110, Y: 140, W: 40, H: 50}
	return l
}

// TouchSnapshot is one sample of the touch panel mapped onto controls.
type TouchSnapshot struct {
	Buttons [NumControls]bool
	// Stick is the left-stick proxy derived from the directional regions.
	Stick Axis
	// Up, Down, Left, Right are the raw directional region states.
	Up, Down, Left, Right bool
}

// TouchSampler maps panel contacts onto the layout.
type TouchSampler struct {
	panel   Panel
	layout  Layout
	enabled bool
}

// NewTouchSampler creates a sampler. A nil panel disables touch input.
func NewTouchSampler(panel Panel, layout Layout, enabled bool) *TouchSampler {
	return &TouchSampler{
		panel:   panel,
		layout:  layout,
		enabled: enabled && panel != nil,
	}
}

// Enabled reports whether touch input is active on this device. A nil
// sampler is disabled.
func (t *TouchSampler) Enabled() bool { return t != nil && t.enabled }

// Layout returns the active layout.
func (t *TouchSampler) Layout() Layout { return t.layout }

// Sample reads the panel once. A disabled sampler reports nothing touched
// and a centred stick without querying the panel.
func (t *TouchSampler) Sample() TouchSnapshot {
	var snap TouchSnapshot
	if !t.Enabled() {
		return snap
	}
	present, x, y := t.panel.Touch()
	if !present {
		return snap
	}
	hit := func(r *Rect) bool { return r != nil && r.Contains(x, y) }

	for i, r := range t.layout.Buttons {
		snap.Buttons[i] = hit(r)
	}
	snap.Up = hit(t.layout.Up)
	snap.Down = hit(t.layout.Down)
	snap.Left = hit(t.layout.Left)
	snap.Right = hit(t.layout.Right)
	snap.Stick = directionalAxis(snap.Up, snap.Down, snap.Left, snap.Right)
	return snap
}

// directionalAxis folds the four directional regions into a stick position.
// Right is evaluated after Left and Down after Up, so the later assignment
// wins when regions overlap.
func directionalAxis(up, down, left, right bool) Axis {
	var a Axis
	if left {
		a.X = -AxisLimit
	}
	if right {
		a.X = AxisLimit
	}
	if up {
		a.Y = -AxisLimit
	}
	if down {
		a.Y = AxisLimit
	}
	return a
}
