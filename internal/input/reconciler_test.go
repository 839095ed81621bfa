package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineDigitalIsOr(t *testing.T) {
	assert.False(t, combineDigital(false, false))
	assert.True(t, combineDigital(true, false))
	assert.True(t, combineDigital(false, true))
	assert.True(t, combineDigital(true, true))
}

func TestCombineStickNetworkOverridesTouch(t *testing.T) {
	touch := Axis{X: -100}
	assert.Equal(t, Axis{X: 20}, combineStick(Axis{X: 20}, touch))
	assert.Equal(t, Axis{Y: -1}, combineStick(Axis{Y: -1}, touch))
	assert.Equal(t, touch, combineStick(Axis{}, touch))
}

func TestReconcilerPulseOnRisingEdgeOnly(t *testing.T) {
	// Every (prev, touch, net) combination for a single control.
	for _, prevTouch := range []bool{false, true} {
		for _, prevNet := range []bool{false, true} {
			for _, curTouch := range []bool{false, true} {
				for _, curNet := range []bool{false, true} {
					em := &recordingEmitter{}
					r := NewReconciler(em, nil)

					var ts TouchSnapshot
					var ns NetworkSnapshot
					ts.Buttons[X], ns.Buttons[X] = prevTouch, prevNet
					r.Tick(ts, ns)
					em.pulses = nil

					ts.Buttons[X], ns.Buttons[X] = curTouch, curNet
					res := r.Tick(ts, ns)

					prev := prevTouch || prevNet
					cur := curTouch || curNet
					wantPulse := cur && !prev

					assert.Equal(t, cur, r.Effective(X))
					if wantPulse {
						assert.Equal(t, []Control{X}, em.pulses)
						assert.Equal(t, []Control{X}, res.Pulsed)
					} else {
						assert.Empty(t, em.pulses)
						assert.Empty(t, res.Pulsed)
					}
				}
			}
		}
	}
}

func TestReconcilerSustainedPressPulsesOnce(t *testing.T) {
	em := &recordingEmitter{}
	r := NewReconciler(em, nil)

	for i := 0; i < 10; i++ {
		r.Tick(TouchSnapshot{}, networked(A, ZR))
	}
	assert.Equal(t, []Control{A, ZR}, em.pulses)
	assert.Equal(t, uint64(2), r.PressCount())
}

func TestReconcilerTouchPressThreeTicksThenRelease(t *testing.T) {
	em := &recordingEmitter{}
	r := NewReconciler(em, nil)

	res := r.Tick(touched(B), NetworkSnapshot{})
	assert.Equal(t, []Control{B}, res.Pulsed)
	res = r.Tick(touched(B), NetworkSnapshot{})
	assert.Empty(t, res.Pulsed)
	res = r.Tick(touched(B), NetworkSnapshot{})
	assert.Empty(t, res.Pulsed)
	res = r.Tick(TouchSnapshot{}, NetworkSnapshot{})
	assert.Empty(t, res.Pulsed)

	assert.Equal(t, []Control{B}, em.pulses)
	assert.False(t, r.Effective(B))
	assert.Equal(t, uint64(1), r.PressCount())
}

func TestReconcilerSourceHandoverDoesNotRepulse(t *testing.T) {
	em := &recordingEmitter{}
	r := NewReconciler(em, nil)

	r.Tick(touched(Home), NetworkSnapshot{})
	r.Tick(touched(Home), networked(Home))
	r.Tick(TouchSnapshot{}, networked(Home))
	assert.Equal(t, []Control{Home}, em.pulses)

	r.Tick(TouchSnapshot{}, NetworkSnapshot{})
	r.Tick(touched(Home), NetworkSnapshot{})
	assert.Equal(t, []Control{Home, Home}, em.pulses)
}

func TestReconcilerStickPrecedence(t *testing.T) {
	em := &recordingEmitter{}
	r := NewReconciler(em, nil)

	touch := TouchSnapshot{Left: true, Stick: Axis{X: -100}}
	var net NetworkSnapshot
	net.Sticks[StickLeft] = Axis{X: 20, Y: 0}

	res := r.Tick(touch, net)
	assert.Equal(t, Axis{X: 20}, res.Sticks[StickLeft])
	assert.Equal(t, Axis{X: 20}, em.lastTilt(StickLeft))

	net.Sticks[StickLeft] = Axis{}
	res = r.Tick(touch, net)
	assert.Equal(t, Axis{X: -100}, res.Sticks[StickLeft])
	assert.Equal(t, Axis{X: -100}, r.StickValue(StickLeft))
}

func TestReconcilerRightStickHasNoTouchProxy(t *testing.T) {
	em := &recordingEmitter{}
	r := NewReconciler(em, nil)

	res := r.Tick(TouchSnapshot{Stick: Axis{X: 100}}, NetworkSnapshot{})
	assert.Equal(t, Axis{}, res.Sticks[StickRight])

	var net NetworkSnapshot
	net.Sticks[StickRight] = Axis{X: -30, Y: 60}
	res = r.Tick(TouchSnapshot{}, net)
	assert.Equal(t, Axis{X: -30, Y: 60}, res.Sticks[StickRight])
}

func TestReconcilerTiltsEveryTick(t *testing.T) {
	em := &recordingEmitter{}
	r := NewReconciler(em, nil)

	r.Tick(TouchSnapshot{}, NetworkSnapshot{})
	r.Tick(TouchSnapshot{}, NetworkSnapshot{})
	assert.Len(t, em.tilts, 2*NumSticks)
}

func TestReconcilerTransportErrorStillAdvancesState(t *testing.T) {
	em := &recordingEmitter{err: ErrTransportUnavailable}
	r := NewReconciler(em, nil)

	res := r.Tick(touched(A), NetworkSnapshot{})
	require.Error(t, res.Err)
	assert.True(t, errors.Is(res.Err, ErrTransportUnavailable))
	assert.True(t, r.Effective(A))
	assert.Equal(t, uint64(1), r.PressCount())

	em.err = nil
	res = r.Tick(touched(A), NetworkSnapshot{})
	assert.NoError(t, res.Err)
	assert.Empty(t, res.Pulsed)
}

func TestReconcilerMarkerScenario(t *testing.T) {
	em := &recordingEmitter{}
	r := NewReconciler(em, nil)
	rx := newTestReceiver()

	require.NoError(t, rx.Apply([]byte(`{"buttons":{"A":true}}`)))
	r.Tick(TouchSnapshot{}, rx.Snapshot())
	assert.Equal(t, ButtonSource(A), r.ActiveInput())

	require.NoError(t, rx.Apply([]byte(`{"lstick":{"x":50,"y":0}}`)))
	r.Tick(TouchSnapshot{}, rx.Snapshot())
	assert.False(t, r.Effective(A))
	assert.Equal(t, StickSource(StickLeft), r.ActiveInput())
}

func TestReconcilerStaleMarkerClearedOnRead(t *testing.T) {
	em := &recordingEmitter{}
	r := NewReconciler(em, nil)
	rx := newTestReceiver()

	require.NoError(t, rx.Apply([]byte(`{"buttons":{"A":true},"system":{"home":true}}`)))
	r.Tick(TouchSnapshot{}, rx.Snapshot())
	assert.Equal(t, "HOME", r.ActiveInput().Label())

	// HOME released, A still held: the marker does not fall back to A.
	require.NoError(t, rx.Apply([]byte(`{"buttons":{"A":true}}`)))
	r.Tick(TouchSnapshot{}, rx.Snapshot())
	_, ok := r.LatestMarker()
	assert.True(t, ok, "A payload sets a fresh marker")
	assert.Equal(t, ButtonSource(A), r.ActiveInput())

	require.NoError(t, rx.Apply([]byte(`{}`)))
	r.Tick(TouchSnapshot{}, rx.Snapshot())
	assert.True(t, r.ActiveInput().IsNone())

	// A cleared marker is not re-adopted from the unchanged snapshot.
	r.Tick(TouchSnapshot{}, rx.Snapshot())
	assert.True(t, r.ActiveInput().IsNone())
}

func TestReconcilerMarkerStaysWhileTouchHolds(t *testing.T) {
	em := &recordingEmitter{}
	r := NewReconciler(em, nil)
	rx := newTestReceiver()

	require.NoError(t, rx.Apply([]byte(`{"buttons":{"B":true}}`)))
	r.Tick(touched(B), rx.Snapshot())
	require.NoError(t, rx.Apply([]byte(`{}`)))
	r.Tick(touched(B), rx.Snapshot())

	assert.Equal(t, ButtonSource(B), r.ActiveInput(), "B is still effective through touch")
}

func TestReconcilerStickMarkerNeedsNetworkDeflection(t *testing.T) {
	em := &recordingEmitter{}
	r := NewReconciler(em, nil)
	rx := newTestReceiver()

	require.NoError(t, rx.Apply([]byte(`{"rstick":{"x":0,"y":80}}`)))
	r.Tick(TouchSnapshot{}, rx.Snapshot())
	assert.Equal(t, StickSource(StickRight), r.ActiveInput())

	require.NoError(t, rx.Apply([]byte(`{"rstick":{"x":0,"y":5}}`)))
	r.Tick(TouchSnapshot{}, rx.Snapshot())
	assert.True(t, r.ActiveInput().IsNone())
}
