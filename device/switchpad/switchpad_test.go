package switchpad_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/netpad/device/switchpad"
	"github.com/Alia5/netpad/usb/hid"
)

func TestInputReports(t *testing.T) {
	cases := []struct {
		name           string
		inputState     switchpad.InputState
		expectedReport []byte
	}{
		{
			name:           "neutral",
			inputState:     switchpad.Neutral(),
			expectedReport: []byte{0x00, 0x00, 0x08, 0x80, 0x80, 0x80, 0x80, 0x00},
		},
		{
			name: "a and home",
			inputState: func() switchpad.InputState {
				s := switchpad.Neutral()
				s.Buttons = switchpad.ButtonA | switchpad.ButtonHome
				return s
			}(),
			expectedReport: []byte{0x04, 0x10, 0x08, 0x80, 0x80, 0x80, 0x80, 0x00},
		},
		{
			name: "shoulders and sticks",
			inputState: switchpad.InputState{
				Buttons: switchpad.ButtonL | switchpad.ButtonZR | switchpad.ButtonMinus,
				Hat:     switchpad.HatNeutral,
				LX:      0x00,
				LY:      0xFF,
				RX:      0x40,
				RY:      0xBF,
			},
			expectedReport: []byte{0x90, 0x01, 0x08, 0x00, 0xFF, 0x40, 0xBF, 0x00},
		},
		{
			name:           "hat is four bits",
			inputState:     switchpad.InputState{Hat: 0xF2},
			expectedReport: []byte{0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.inputState.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, tc.expectedReport, b)
		})
	}
}

func TestInputStateUnmarshal(t *testing.T) {
	var s switchpad.InputState
	require.NoError(t, s.UnmarshalBinary([]byte{0x04, 0x02, 0x08, 0x10, 0x20, 0x30, 0x40, 0x7F}))
	assert.True(t, s.Pressed(switchpad.ButtonA|switchpad.ButtonPlus))
	assert.False(t, s.Pressed(switchpad.ButtonB))
	assert.Equal(t, switchpad.HatNeutral, s.Hat)
	assert.Equal(t, uint8(0x10), s.LX)
	assert.Equal(t, uint8(0x40), s.RY)
	assert.Equal(t, uint8(0x7F), s.Vendor)

	assert.ErrorIs(t, s.UnmarshalBinary([]byte{0x00}), io.ErrUnexpectedEOF)
}

func TestOutputState(t *testing.T) {
	var o switchpad.OutputState
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, o.UnmarshalBinary(raw))
	b, err := o.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, raw, b)
	assert.ErrorIs(t, o.UnmarshalBinary(raw[:3]), io.ErrUnexpectedEOF)
}

func TestAxisValue(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{in: -1000, want: 0x00},
		{in: -100, want: 0x00},
		{in: -50, want: 0x40},
		{in: -1, want: 0x7F},
		{in: 0, want: 0x80},
		{in: 1, want: 0x81},
		{in: 50, want: 0xBF},
		{in: 100, want: 0xFF},
		{in: 250, want: 0xFF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, switchpad.AxisValue(tt.in), "AxisValue(%d)", tt.in)
	}
}

func TestReportDescriptor(t *testing.T) {
	want := []byte{
		0x05, 0x01, 0x09, 0x05, 0xA1, 0x01,
		0x15, 0x00, 0x25, 0x01, 0x35, 0x00, 0x45, 0x01,
		0x75, 0x01, 0x95, 0x10, 0x05, 0x09, 0x19, 0x01, 0x29, 0x10, 0x81, 0x02,
		0x05, 0x01, 0x25, 0x07, 0x46, 0x3B, 0x01, 0x75, 0x04, 0x95, 0x01,
		0x65, 0x14, 0x09, 0x39, 0x81, 0x42, 0x65, 0x00, 0x95, 0x01, 0x81, 0x01,
		0x26, 0xFF, 0x00, 0x46, 0xFF, 0x00,
		0x09, 0x30, 0x09, 0x31, 0x09, 0x32, 0x09, 0x35,
		0x75, 0x08, 0x95, 0x04, 0x81, 0x02,
		0x06, 0x00, 0xFF, 0x09, 0x20, 0x95, 0x01, 0x81, 0x02,
		0x0A, 0x21, 0x26, 0x95, 0x08, 0x91, 0x02,
		0xC0,
	}
	got := switchpad.ReportDescriptor()
	assert.Equal(t, hid.Data(want), got)
	assert.Len(t, got, 86)

	var dump bytes.Buffer
	require.NoError(t, hid.Dump(&dump, got))
	assert.Contains(t, dump.String(), "Usage (57)")
}

func TestGadget(t *testing.T) {
	g := switchpad.Gadget("netpad", "NP0001")
	assert.Equal(t, switchpad.VendorID, g.VendorID)
	assert.Equal(t, switchpad.ProductID, g.ProductID)
	require.Len(t, g.Functions, 1)
	assert.Equal(t, uint16(switchpad.InputStateSize), g.Functions[0].ReportLength)
	assert.Equal(t, switchpad.ReportDescriptor(), g.Functions[0].ReportDesc)
}
