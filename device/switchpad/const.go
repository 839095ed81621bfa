// Package switchpad models a HORIPAD-compatible wired controller, the
// generic HID gamepad the Nintendo Switch accepts without a handshake.
package switchpad

// USB identity of the emulated pad.
const (
	VendorID  uint16 = 0x0F0D
	ProductID uint16 = 0x0092
	BcdDevice uint16 = 0x0100

	Manufacturer = "HORI CO.,LTD."
	Product      = "POKKEN CONTROLLER"
)

const (
	InputStateSize  = 8
	OutputStateSize = 8
)

// Button bits of InputState.Buttons.
const (
	ButtonY uint16 = 1 << iota
	ButtonB
	ButtonA
	ButtonX
	ButtonL
	ButtonR
	ButtonZL
	ButtonZR
	ButtonMinus
	ButtonPlus
	ButtonLClick
	ButtonRClick
	ButtonHome
	ButtonCapture
)

// Hat positions, clockwise from up. HatNeutral is the null state.
const (
	HatUp uint8 = iota
	HatUpRight
	HatRight
	HatDownRight
	HatDown
	HatDownLeft
	HatLeft
	HatUpLeft
	HatNeutral
)

// Stick axes are unsigned bytes centred on AxisCenter.
const (
	AxisMin    uint8 = 0x00
	AxisCenter uint8 = 0x80
	AxisMax    uint8 = 0xFF
)

// AxisValue maps a percentage deflection in [-100, 100] to the report
// range. Out-of-range input saturates.
func AxisValue(percent int) uint8 {
	switch {
	case percent <= -100:
		return AxisMin
	case percent >= 100:
		return AxisMax
	case percent < 0:
		return uint8(int(AxisCenter) + percent*int(AxisCenter)/100)
	default:
		return uint8(int(AxisCenter) + percent*int(AxisMax-AxisCenter)/100)
	}
}
