package input

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrTransportUnavailable is returned (wrapped) when the HID transport cannot
// be reached. It is never fatal: state is re-evaluated on the next tick.
var ErrTransportUnavailable = errors.New("hid transport unavailable")

const (
	// DefaultPulseDuration is how long a single press is held.
	DefaultPulseDuration = 40 * time.Millisecond
	// DefaultPulseGap separates two pulses of the same control so the host
	// sees at least one released report in between.
	DefaultPulseGap = 8 * time.Millisecond
)

// Transport is the HID side of the device.
//
// Pulse must not block for the pulse duration; the release is the
// transport's job. Implementations must be safe for concurrent use because
// deferred pulses fire from timer goroutines.
type Transport interface {
	Pulse(c Control, d time.Duration) error
	Tilt(s Stick, a Axis) error
}

// EmitterOptions configures an Emitter. Zero values select defaults.
type EmitterOptions struct {
	PulseDuration time.Duration
	PulseGap      time.Duration
	// OnStatus is called whenever the transport flips between healthy and
	// unavailable. It runs on the calling goroutine and must not block.
	OnStatus func(healthy bool, err error)
}

// Emitter turns rising edges into fixed-duration pulses and forwards stick
// positions. Pulses for the same control never overlap: a pulse requested
// while the previous one is still held is deferred until it has ended. At
// most one pulse per control waits; edges arriving meanwhile are coalesced
// into it, so a fast toggling client never builds a backlog.
type Emitter struct {
	transport Transport
	logger    *slog.Logger
	duration  time.Duration
	gap       time.Duration
	onStatus  func(bool, error)

	now       func() time.Time
	afterFunc func(time.Duration, func())

	mu        sync.Mutex
	busyUntil [NumControls]time.Time
	pending   [NumControls]bool
	coalesced uint64
	healthy   bool
	lastErr   error
	failures  uint64
}

// NewEmitter creates an emitter writing to t.
func NewEmitter(t Transport, opts EmitterOptions, logger *slog.Logger) *Emitter {
	if opts.PulseDuration <= 0 {
		opts.PulseDuration = DefaultPulseDuration
	}
	if opts.PulseGap <= 0 {
		opts.PulseGap = DefaultPulseGap
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		transport: t,
		logger:    logger,
		duration:  opts.PulseDuration,
		gap:       opts.PulseGap,
		onStatus:  opts.OnStatus,
		now:       time.Now,
		afterFunc: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		healthy:   true,
	}
}

// PulseDuration returns the configured press length.
func (e *Emitter) PulseDuration() time.Duration { return e.duration }

// Pulse issues one press of c. It never blocks for the pulse duration.
func (e *Emitter) Pulse(c Control) error {
	now := e.now()

	e.mu.Lock()
	if e.pending[c] {
		e.coalesced++
		e.mu.Unlock()
		return nil
	}
	start := now
	if busy := e.busyUntil[c]; busy.After(now) {
		start = busy.Add(e.gap)
		e.pending[c] = true
	}
	e.busyUntil[c] = start.Add(e.duration)
	e.mu.Unlock()

	if !start.After(now) {
		return e.fire(c)
	}
	delay := start.Sub(now)
	e.logger.Debug("pulse deferred", "control", c.Label(), "delay", delay)
	e.afterFunc(delay, func() {
		e.mu.Lock()
		e.pending[c] = false
		e.mu.Unlock()
		_ = e.fire(c)
	})
	return nil
}

// Coalesced counts rising edges merged into an already waiting pulse.
func (e *Emitter) Coalesced() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.coalesced
}

// Tilt forwards a stick position verbatim.
func (e *Emitter) Tilt(s Stick, a Axis) error {
	return e.record(e.transport.Tilt(s, a))
}

func (e *Emitter) fire(c Control) error {
	return e.record(e.transport.Pulse(c, e.duration))
}

// record updates health tracking. Only transitions are logged so a
// disconnected transport does not flood the log at the tick rate.
func (e *Emitter) record(err error) error {
	if err != nil && !errors.Is(err, ErrTransportUnavailable) {
		err = fmt.Errorf("%w: %w", ErrTransportUnavailable, err)
	}

	e.mu.Lock()
	was := e.healthy
	e.healthy = err == nil
	if err != nil {
		e.lastErr = err
		e.failures++
	}
	changed := was != e.healthy
	cb := e.onStatus
	e.mu.Unlock()

	if changed {
		if err != nil {
			e.logger.Error("hid transport unavailable", "error", err)
		} else {
			e.logger.Info("hid transport recovered")
		}
		if cb != nil {
			cb(err == nil, err)
		}
	}
	return err
}

// Healthy reports whether the last transport call succeeded.
func (e *Emitter) Healthy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.healthy
}

// LastError returns the most recent transport error, if any.
func (e *Emitter) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Failures counts failed transport calls.
func (e *Emitter) Failures() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.failures
}
