package input

import (
	"errors"
	"log/slog"
)

// HIDEmitter is the consumer side of the reconciler.
type HIDEmitter interface {
	Pulse(c Control) error
	Tilt(s Stick, a Axis) error
}

// TickResult describes what one reconciliation pass emitted.
type TickResult struct {
	// Pulsed lists controls that saw a rising edge this tick, in table order.
	Pulsed []Control
	// Sticks holds the position forwarded for each stick.
	Sticks [NumSticks]Axis
	// Err joins transport errors of this tick. It is informational only.
	Err error
}

// Reconciler folds touch and network input into the canonical controller
// state. It is not safe for concurrent use; the control loop owns it.
type Reconciler struct {
	emitter HIDEmitter
	logger  *slog.Logger

	controls [NumControls]DigitalControlState
	sticks   [NumSticks]Axis
	network  [NumSticks]Axis
	presses  uint64

	marker    Marker
	markerSeq uint64
}

// NewReconciler creates a reconciler with every control released.
func NewReconciler(emitter HIDEmitter, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{emitter: emitter, logger: logger}
}

// combineDigital merges both sources of a button: either one asserts it.
func combineDigital(touch, network bool) bool {
	return touch || network
}

// combineStick merges both sources of a stick. Sticks are continuous and
// cannot be OR-ed: a deflected network stick overrides touch, touch is the
// fallback when the network stick is centred.
func combineStick(network, touch Axis) Axis {
	if !network.IsZero() {
		return network
	}
	return touch
}

// Tick runs one reconciliation pass. Every rising edge emits exactly one
// pulse; sustained presses and falling edges emit nothing.
func (r *Reconciler) Tick(touch TouchSnapshot, net NetworkSnapshot) TickResult {
	var res TickResult
	var errs []error

	for c := range r.controls {
		st := &r.controls[c]
		st.TouchActive = touch.Buttons[c]
		st.NetworkActive = net.Buttons[c]
		effective := combineDigital(st.TouchActive, st.NetworkActive)

		if effective && !st.PreviousEffective {
			ctl := Control(c)
			r.presses++
			res.Pulsed = append(res.Pulsed, ctl)
			r.logger.Debug("press", "control", ctl.Label(), "touch", st.TouchActive, "network", st.NetworkActive)
			if err := r.emitter.Pulse(ctl); err != nil {
				errs = append(errs, err)
			}
		}
		st.PreviousEffective = effective
	}

	touchProxy := [NumSticks]Axis{StickLeft: touch.Stick}
	for s := range r.sticks {
		a := combineStick(net.Sticks[s], touchProxy[s])
		r.sticks[s] = a
		r.network[s] = net.Sticks[s]
		res.Sticks[s] = a
		if err := r.emitter.Tilt(Stick(s), a); err != nil {
			errs = append(errs, err)
		}
	}

	if net.Marker.Seq > r.markerSeq {
		r.marker = net.Marker
		r.markerSeq = net.Marker.Seq
	}

	res.Err = errors.Join(errs...)
	return res
}

// ActiveInput returns the most recently activated input that is still
// active. A stale marker is cleared on read and reported as no input.
func (r *Reconciler) ActiveInput() InputSource {
	m, ok := r.LatestMarker()
	if !ok {
		return InputSource{}
	}
	return m.Source
}

// LatestMarker returns the validated marker, clearing it when the input it
// names is no longer effectively active.
func (r *Reconciler) LatestMarker() (Marker, bool) {
	src := r.marker.Source
	var active bool
	switch src.Kind {
	case SourceButton:
		active = int(src.Control) < NumControls && r.controls[src.Control].PreviousEffective
	case SourceStick:
		active = int(src.Stick) < NumSticks && r.network[src.Stick].Active()
	}
	if !active {
		r.marker = Marker{}
		return Marker{}, false
	}
	return r.marker, true
}

// Effective returns the merged state of c as of the last tick.
func (r *Reconciler) Effective(c Control) bool {
	return r.controls[c].PreviousEffective
}

// State returns the per-source state of c as of the last tick.
func (r *Reconciler) State(c Control) DigitalControlState {
	return r.controls[c]
}

// StickValue returns the position forwarded for s on the last tick.
func (r *Reconciler) StickValue(s Stick) Axis {
	return r.sticks[s]
}

// PressCount is the number of rising edges seen since start.
func (r *Reconciler) PressCount() uint64 {
	return r.presses
}
