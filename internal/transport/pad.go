// Package transport presents the reconciled controller state to the console
// as HID input reports.
package transport

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Alia5/netpad/device/switchpad"
	"github.com/Alia5/netpad/internal/input"
	"github.com/Alia5/netpad/internal/log"
)

// ReportWriter delivers complete input reports to the console.
type ReportWriter interface {
	WriteReport(report []byte) error
	Close() error
}

var buttonBits = [input.NumControls]uint16{
	input.A:     switchpad.ButtonA,
	input.B:     switchpad.ButtonB,
	input.X:     switchpad.ButtonX,
	input.Y:     switchpad.ButtonY,
	input.L:     switchpad.ButtonL,
	input.R:     switchpad.ButtonR,
	input.ZL:    switchpad.ButtonZL,
	input.ZR:    switchpad.ButtonZR,
	input.Plus:  switchpad.ButtonPlus,
	input.Minus: switchpad.ButtonMinus,
	input.Home:  switchpad.ButtonHome,
}

// ButtonBit returns the report bit of c.
func ButtonBit(c input.Control) uint16 { return buttonBits[c] }

// Pad owns the current input report. Every change is written through the
// ReportWriter and raw-logged. It satisfies input.Transport.
type Pad struct {
	w      ReportWriter
	raw    log.RawLogger
	logger *slog.Logger

	afterFunc func(time.Duration, func())

	mu     sync.Mutex
	state  switchpad.InputState
	gen    [input.NumControls]uint64
	failed bool
	writes uint64
}

// NewPad creates a pad with nothing pressed and both sticks centred.
func NewPad(w ReportWriter, raw log.RawLogger, logger *slog.Logger) *Pad {
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pad{
		w:         w,
		raw:       raw,
		logger:    logger,
		afterFunc: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		state:     switchpad.Neutral(),
	}
}

// Pulse presses c now and releases it after d. A newer pulse of the same
// control owns the release; an older timer firing late is ignored.
func (p *Pad) Pulse(c input.Control, d time.Duration) error {
	p.mu.Lock()
	p.state.Buttons |= buttonBits[c]
	p.gen[c]++
	gen := p.gen[c]
	err := p.flushLocked()
	p.mu.Unlock()

	p.afterFunc(d, func() { p.release(c, gen) })
	return err
}

func (p *Pad) release(c input.Control, gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen[c] != gen {
		return
	}
	p.state.Buttons &^= buttonBits[c]
	if err := p.flushLocked(); err != nil {
		p.logger.Debug("release not delivered", "control", c.Label(), "error", err)
	}
}

// Tilt sets a stick. The report is only written when it changed or the
// previous write failed, so calling Tilt every tick stays cheap.
func (p *Pad) Tilt(s input.Stick, a input.Axis) error {
	x, y := switchpad.AxisValue(a.X), switchpad.AxisValue(a.Y)

	p.mu.Lock()
	defer p.mu.Unlock()
	next := p.state
	switch s {
	case input.StickLeft:
		next.LX, next.LY = x, y
	case input.StickRight:
		next.RX, next.RY = x, y
	default:
		return fmt.Errorf("unknown stick %d", s)
	}
	if next == p.state && !p.failed && p.writes > 0 {
		return nil
	}
	p.state = next
	return p.flushLocked()
}

// State returns the current report.
func (p *Pad) State() switchpad.InputState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Reset returns the pad to neutral and writes the report.
func (p *Pad) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.gen {
		p.gen[i]++
	}
	p.state = switchpad.Neutral()
	return p.flushLocked()
}

// Close sends a neutral report and closes the writer.
func (p *Pad) Close() error {
	if err := p.Reset(); err != nil {
		p.logger.Debug("neutral report on close", "error", err)
	}
	return p.w.Close()
}

func (p *Pad) flushLocked() error {
	b, err := p.state.MarshalBinary()
	if err != nil {
		return err
	}
	p.raw.Log(true, b)
	p.writes++
	if err := p.w.WriteReport(b); err != nil {
		p.failed = true
		return fmt.Errorf("%w: %w", input.ErrTransportUnavailable, err)
	}
	p.failed = false
	return nil
}
