// Package input implements the reconciliation engine that merges touch and
// network input into one canonical gamepad state and drives the HID layer.
//
// All state in this package is owned by a single control loop. The only
// exception is the network staging record in Receiver, which is written by
// request handlers and read once per tick under its own lock.
package input

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Control is one digital button of the emulated gamepad.
type Control uint8

const (
	A Control = iota
	B
	X
	Y
	L
	R
	ZL
	ZR
	Plus
	Minus
	Home

	// NumControls sizes per-control tables.
	NumControls = int(Home) + 1
)

var controlLabels = [NumControls]string{
	A:     "A",
	B:     "B",
	X:     "X",
	Y:     "Y",
	L:     "L",
	R:     "R",
	ZL:    "ZL",
	ZR:    "ZR",
	Plus:  "+",
	Minus: "-",
	Home:  "HOME",
}

var controlNames = [NumControls]string{
	A:     "a",
	B:     "b",
	X:     "x",
	Y:     "y",
	L:     "l",
	R:     "r",
	ZL:    "zl",
	ZR:    "zr",
	Plus:  "plus",
	Minus: "minus",
	Home:  "home",
}

// Controls returns all digital controls in table order.
func Controls() []Control {
	out := make([]Control, NumControls)
	for i := range out {
		out[i] = Control(i)
	}
	return out
}

// Label is the short user-facing label ("A", "+", "HOME", ...).
func (c Control) Label() string {
	if int(c) >= NumControls {
		return "?"
	}
	return controlLabels[c]
}

// String returns the lower-case config name of the control.
func (c Control) String() string {
	if int(c) >= NumControls {
		return fmt.Sprintf("control(%d)", uint8(c))
	}
	return controlNames[c]
}

// ParseControl resolves a config name or label, case-insensitively.
func ParseControl(s string) (Control, error) {
	ls := strings.ToLower(strings.TrimSpace(s))
	for i := 0; i < NumControls; i++ {
		if ls == controlNames[i] || ls == strings.ToLower(controlLabels[i]) {
			return Control(i), nil
		}
	}
	return 0, fmt.Errorf("unknown control %q", s)
}

// Stick is one of the two analog sticks.
type Stick uint8

const (
	StickLeft Stick = iota
	StickRight

	NumSticks = int(StickRight) + 1
)

// Label is the feedback label used for the latest-active-input marker.
func (s Stick) Label() string {
	if s == StickRight {
		return "STICK_R"
	}
	return "STICK_L"
}

func (s Stick) String() string {
	if s == StickRight {
		return "right"
	}
	return "left"
}

// SourceKind discriminates InputSource.
type SourceKind uint8

const (
	SourceNone SourceKind = iota
	SourceButton
	SourceStick
)

// InputSource is either a digital control or a stick. The zero value is
// "no input".
type InputSource struct {
	Kind    SourceKind
	Control Control
	Stick   Stick
}

// ButtonSource wraps a digital control.
func ButtonSource(c Control) InputSource {
	return InputSource{Kind: SourceButton, Control: c}
}

// StickSource wraps a stick.
func StickSource(s Stick) InputSource {
	return InputSource{Kind: SourceStick, Stick: s}
}

// IsNone reports whether the source refers to nothing.
func (s InputSource) IsNone() bool { return s.Kind == SourceNone }

// Label returns the feedback label, or "" for no input.
func (s InputSource) Label() string {
	switch s.Kind {
	case SourceButton:
		return s.Control.Label()
	case SourceStick:
		return s.Stick.Label()
	default:
		return ""
	}
}

func (s InputSource) String() string {
	if s.IsNone() {
		return "none"
	}
	return s.Label()
}

// AxisLimit bounds every stick axis to [-AxisLimit, AxisLimit].
const AxisLimit = 100

// StickActiveThreshold is the magnitude an axis must exceed for a stick to
// count as an active input.
const StickActiveThreshold = 10

// Clamp limits v to [-AxisLimit, AxisLimit].
func Clamp[T constraints.Signed](v T) int {
	switch {
	case v < -AxisLimit:
		return -AxisLimit
	case v > AxisLimit:
		return AxisLimit
	default:
		return int(v)
	}
}

// Axis is a clamped stick position. Positive Y points down.
type Axis struct {
	X, Y int
}

// NewAxis builds an Axis with both components clamped.
func NewAxis[T constraints.Signed](x, y T) Axis {
	return Axis{X: Clamp(x), Y: Clamp(y)}
}

// IsZero reports whether both axes are centred.
func (a Axis) IsZero() bool { return a.X == 0 && a.Y == 0 }

// Active reports whether either axis exceeds StickActiveThreshold.
func (a Axis) Active() bool {
	return abs(a.X) > StickActiveThreshold || abs(a.Y) > StickActiveThreshold
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DigitalControlState tracks both sources of one digital control plus the
// effective state of the previous tick, which exists only for edge detection.
type DigitalControlState struct {
	TouchActive       bool
	NetworkActive     bool
	PreviousEffective bool
}
