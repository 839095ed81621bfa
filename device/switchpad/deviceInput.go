package switchpad

import (
	"encoding/binary"
	"io"
)

// InputState is one input report as sent to the console.
//
// Wire format: fixed 8 bytes, little-endian.
// buttons:u16 hat:u8 lx:u8 ly:u8 rx:u8 ry:u8 vendor:u8
type InputState struct {
	Buttons uint16
	Hat     uint8

	LX, LY uint8
	RX, RY uint8

	Vendor uint8
}

// Neutral returns a report with nothing pressed and both sticks centred.
func Neutral() InputState {
	return InputState{
		Hat: HatNeutral,
		LX:  AxisCenter,
		LY:  AxisCenter,
		RX:  AxisCenter,
		RY:  AxisCenter,
	}
}

// Pressed reports whether every bit in mask is set.
func (s InputState) Pressed(mask uint16) bool {
	return s.Buttons&mask == mask
}

// MarshalBinary encodes InputState to the fixed 8-byte report.
func (s InputState) MarshalBinary() ([]byte, error) {
	b := make([]byte, InputStateSize)
	binary.LittleEndian.PutUint16(b[0:2], s.Buttons)
	b[2] = s.Hat & 0x0F
	b[3] = s.LX
	b[4] = s.LY
	b[5] = s.RX
	b[6] = s.RY
	b[7] = s.Vendor
	return b, nil
}

// UnmarshalBinary decodes InputState from the fixed 8-byte report.
func (s *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < InputStateSize {
		return io.ErrUnexpectedEOF
	}
	s.Buttons = binary.LittleEndian.Uint16(data[0:2])
	s.Hat = data[2] & 0x0F
	s.LX = data[3]
	s.LY = data[4]
	s.RX = data[5]
	s.RY = data[6]
	s.Vendor = data[7]
	return nil
}
