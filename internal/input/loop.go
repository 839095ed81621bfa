package input

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Alia5/netpad/internal/log"
)

const (
	DefaultTickInterval    = 5 * time.Millisecond
	DefaultDisplayInterval = 30 * time.Millisecond
)

// View is the read-only state handed to display projectors and the API.
type View struct {
	Effective        [NumControls]bool
	Touch            [NumControls]bool
	Network          [NumControls]bool
	Sticks           [NumSticks]Axis
	Active           InputSource
	Presses          uint64
	TransportHealthy bool
	TouchEnabled     bool
	At               time.Time
}

// Projector renders a View. Projectors run on the control loop and must
// return quickly.
type Projector interface {
	Project(v View)
}

// LoopConfig controls tick timing.
type LoopConfig struct {
	TickInterval    time.Duration
	DisplayInterval time.Duration
	// StaleAfter releases all network input when no payload arrived for
	// this long. Zero keeps the last network state indefinitely.
	StaleAfter time.Duration
}

// LoopDeps wires the loop phases together. Health and Projector are optional.
type LoopDeps struct {
	Touch      *TouchSampler
	Receiver   *Receiver
	Reconciler *Reconciler
	Health     interface{ Healthy() bool }
	Projector  Projector
}

// Loop is the single control loop. Each tick runs, strictly in order:
// touch sampling, network snapshot, reconciliation and display projection.
type Loop struct {
	cfg    LoopConfig
	deps   LoopDeps
	logger *slog.Logger

	lastDisplay time.Time
	staleSince  time.Time
	ticks       uint64

	view atomic.Pointer[View]
}

// NewLoop creates a loop. Zero intervals select the defaults.
func NewLoop(cfg LoopConfig, deps LoopDeps, logger *slog.Logger) *Loop {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.DisplayInterval <= 0 {
		cfg.DisplayInterval = DefaultDisplayInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loop{cfg: cfg, deps: deps, logger: logger}
	l.view.Store(&View{TransportHealthy: true, TouchEnabled: deps.Touch.Enabled()})
	return l
}

// Run ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	t := time.NewTicker(l.cfg.TickInterval)
	defer t.Stop()

	l.logger.Info("control loop started", "tick", l.cfg.TickInterval, "touch", l.deps.Touch.Enabled())
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("control loop stopped", "ticks", l.ticks)
			return nil
		case now := <-t.C:
			l.Step(now)
		}
	}
}

// Step runs one tick at the given time.
func (l *Loop) Step(now time.Time) TickResult {
	l.ticks++
	l.releaseStale(now)

	touch := l.deps.Touch.Sample()
	net := l.deps.Receiver.Snapshot()
	res := l.deps.Reconciler.Tick(touch, net)
	if res.Err != nil {
		l.logger.Log(context.Background(), log.LevelTrace, "tick transport error", "error", res.Err)
	}

	v := l.buildView(now, touch, net)
	l.view.Store(&v)

	if l.deps.Projector != nil && (l.lastDisplay.IsZero() || now.Sub(l.lastDisplay) >= l.cfg.DisplayInterval) {
		l.deps.Projector.Project(v)
		l.lastDisplay = now
	}
	return res
}

// View returns the state published by the most recent tick. Safe for
// concurrent use.
func (l *Loop) View() View {
	return *l.view.Load()
}

func (l *Loop) buildView(now time.Time, touch TouchSnapshot, net NetworkSnapshot) View {
	r := l.deps.Reconciler
	v := View{
		Touch:            touch.Buttons,
		Network:          net.Buttons,
		Active:           r.ActiveInput(),
		Presses:          r.PressCount(),
		TransportHealthy: true,
		TouchEnabled:     l.deps.Touch.Enabled(),
		At:               now,
	}
	for i := 0; i < NumControls; i++ {
		v.Effective[i] = r.Effective(Control(i))
	}
	for s := 0; s < NumSticks; s++ {
		v.Sticks[s] = r.StickValue(Stick(s))
	}
	if l.deps.Health != nil {
		v.TransportHealthy = l.deps.Health.Healthy()
	}
	return v
}

func (l *Loop) releaseStale(now time.Time) {
	if l.cfg.StaleAfter <= 0 {
		return
	}
	last := l.deps.Receiver.LastApply()
	if last.IsZero() || last.Equal(l.staleSince) {
		return
	}
	if now.Sub(last) < l.cfg.StaleAfter {
		return
	}
	l.deps.Receiver.Reset()
	l.staleSince = last
	l.logger.Info("released stale network input", "idle", now.Sub(last))
}
