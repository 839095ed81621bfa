package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Alia5/netpad/apitypes"
)

// ParseError is returned when a network payload cannot be decoded into the
// expected shape. A ParseError never mutates receiver state.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "invalid controller payload: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

var errNullPayload = errors.New("payload is null")

// Marker is the latest-active-input marker. Seq increases with every new
// marker so readers can tell a fresh marker from one they already consumed.
type Marker struct {
	Source InputSource
	At     time.Time
	Seq    uint64
}

// NetworkSnapshot is a consistent copy of the network staging record.
type NetworkSnapshot struct {
	Buttons [NumControls]bool
	Sticks  [NumSticks]Axis
	Marker  Marker
}

// Receiver is the network staging record. Request handlers write to it from
// any goroutine; the control loop reads it once per tick through Snapshot.
type Receiver struct {
	mu        sync.Mutex
	state     NetworkSnapshot
	seq       uint64
	applied   uint64
	lastApply time.Time
	now       func() time.Time
}

// NewReceiver creates an empty staging record.
func NewReceiver() *Receiver {
	return &Receiver{now: time.Now}
}

// Apply decodes a JSON payload and merges it. Malformed input returns a
// *ParseError and leaves the staging record untouched.
func (r *Receiver) Apply(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if bytes.Equal(trimmed, []byte("null")) {
		return &ParseError{Err: errNullPayload}
	}
	var p apitypes.ControllerPayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return &ParseError{Err: err}
	}
	r.ApplyPayload(p)
	return nil
}

// ApplyPayload merges an already decoded payload.
//
// The payload is not a diff: every digital field of an absent group is
// cleared, and a present group overwrites all of its fields. Stick axes only
// change when their own group is present.
func (r *Receiver) ApplyPayload(p apitypes.ControllerPayload) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.state
	latest := InputSource{}
	set := func(c Control, v bool) {
		next.Buttons[c] = v
		if v {
			latest = ButtonSource(c)
		}
	}
	setStick := func(s Stick, g *apitypes.StickGroup) {
		if g == nil {
			return
		}
		next.Sticks[s] = NewAxis(g.X, g.Y)
		if next.Sticks[s].Active() {
			latest = StickSource(s)
		}
	}

	var buttons apitypes.ButtonsGroup
	if p.Buttons != nil {
		buttons = *p.Buttons
	}
	set(A, buttons.A)
	set(B, buttons.B)
	set(X, buttons.X)
	set(Y, buttons.Y)

	setStick(StickLeft, p.LStick)
	setStick(StickRight, p.RStick)

	var shoulder apitypes.ShoulderGroup
	if p.Shoulder != nil {
		shoulder = *p.Shoulder
	}
	set(L, shoulder.L)
	set(R, shoulder.R)
	set(ZL, shoulder.ZL)
	set(ZR, shoulder.ZR)

	var system apitypes.SystemGroup
	if p.System != nil {
		system = *p.System
	}
	set(Plus, system.Plus)
	set(Minus, system.Minus)
	set(Home, system.Home)

	now := r.now()
	if !latest.IsNone() {
		r.seq++
		next.Marker = Marker{Source: latest, At: now, Seq: r.seq}
	}
	r.state = next
	r.applied++
	r.lastApply = now
}

// Snapshot returns a copy of the staging record taken under one lock, so
// button and stick groups are never torn.
func (r *Receiver) Snapshot() NetworkSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Reset releases every network-held button and centres both sticks. The
// marker is kept; readers re-validate it against the cleared state.
func (r *Receiver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Buttons = [NumControls]bool{}
	r.state.Sticks = [NumSticks]Axis{}
}

// Applied returns the number of payloads merged so far.
func (r *Receiver) Applied() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applied
}

// LastApply returns when the last payload was merged, or the zero time.
func (r *Receiver) LastApply() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastApply
}

// Held reports whether any network button is set or any stick is off centre.
func (s NetworkSnapshot) Held() bool {
	for _, b := range s.Buttons {
		if b {
			return true
		}
	}
	for _, a := range s.Sticks {
		if !a.IsZero() {
			return true
		}
	}
	return false
}
