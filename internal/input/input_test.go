package input

import (
	"sync"
	"time"
)

type pulseCall struct {
	Control  Control
	Duration time.Duration
}

type tiltCall struct {
	Stick Stick
	Axis  Axis
}

// recordingEmitter satisfies HIDEmitter and records every call.
type recordingEmitter struct {
	pulses []Control
	tilts  []tiltCall
	err    error
}

func (e *recordingEmitter) Pulse(c Control) error {
	e.pulses = append(e.pulses, c)
	return e.err
}

func (e *recordingEmitter) Tilt(s Stick, a Axis) error {
	e.tilts = append(e.tilts, tiltCall{Stick: s, Axis: a})
	return e.err
}

func (e *recordingEmitter) lastTilt(s Stick) Axis {
	for i := len(e.tilts) - 1; i >= 0; i-- {
		if e.tilts[i].Stick == s {
			return e.tilts[i].Axis
		}
	}
	return Axis{}
}

// recordingTransport satisfies Transport.
type recordingTransport struct {
	mu     sync.Mutex
	pulses []pulseCall
	tilts  []tiltCall
	err    error
}

func (t *recordingTransport) Pulse(c Control, d time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pulses = append(t.pulses, pulseCall{Control: c, Duration: d})
	return t.err
}

func (t *recordingTransport) Tilt(s Stick, a Axis) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tilts = append(t.tilts, tiltCall{Stick: s, Axis: a})
	return t.err
}

func (t *recordingTransport) setErr(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
}

// fakePanel is a Panel with a settable contact.
type fakePanel struct {
	present bool
	x, y    int
	reads   int
}

func (p *fakePanel) Touch() (bool, int, int) {
	p.reads++
	return p.present, p.x, p.y
}

func (p *fakePanel) touchAt(x, y int) {
	p.present, p.x, p.y = true, x, y
}

func (p *fakePanel) lift() {
	p.present = false
}

// centre returns the middle point of a region.
func centre(r *Rect) (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func touched(cs ...Control) TouchSnapshot {
	var s TouchSnapshot
	for _, c := range cs {
		s.Buttons[c] = true
	}
	return s
}

func networked(cs ...Control) NetworkSnapshot {
	var s NetworkSnapshot
	for _, c := range cs {
		s.Buttons[c] = true
	}
	return s
}
