package transport

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// frameStart marks the beginning of a frame on the serial bridge.
const frameStart = 0xA5

// Frame wraps a report for the serial bridge:
// start byte, length, report bytes, XOR of length and report bytes.
func Frame(report []byte) []byte {
	out := make([]byte, 0, len(report)+3)
	out = append(out, frameStart, byte(len(report)))
	sum := byte(len(report))
	for _, b := range report {
		sum ^= b
	}
	out = append(out, report...)
	return append(out, sum)
}

// frameWriter frames every report onto an underlying stream.
type frameWriter struct {
	w io.WriteCloser
}

func (f frameWriter) WriteReport(report []byte) error {
	frame := Frame(report)
	n, err := f.w.Write(frame)
	if err != nil {
		return err
	}
	if n != len(frame) {
		return io.ErrShortWrite
	}
	return nil
}

func (f frameWriter) Close() error { return f.w.Close() }

// OpenSerial opens a UART connected to a microcontroller that replays the
// frames as USB HID reports.
func OpenSerial(port string, baud int) (ReportWriter, error) {
	p, err := serial.Open(port, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", port, err)
	}
	return frameWriter{w: p}, nil
}

// SerialPorts lists the serial ports present on this machine.
func SerialPorts() ([]string, error) {
	return serial.GetPortsList()
}
