package touch

import (
	"context"
	"encoding/binary"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rawEvent struct {
	typ, code uint16
	value     int32
}

func encode(size int, evs ...rawEvent) []byte {
	var out []byte
	for _, ev := range evs {
		b := make([]byte, size)
		o := size - 8
		binary.LittleEndian.PutUint16(b[o:], ev.typ)
		binary.LittleEndian.PutUint16(b[o+2:], ev.code)
		binary.LittleEndian.PutUint32(b[o+4:], uint32(ev.value))
		out = append(out, b...)
	}
	return out
}

func syn() rawEvent { return rawEvent{evSyn, synReport, 0} }

var testCfg = Config{Width: 320, Height: 240}

func testTracker(cfg Config) *tracker {
	return newTracker(cfg, axisRange{0, 4095}, axisRange{0, 4095})
}

func TestAxisRangeScale(t *testing.T) {
	r := axisRange{min: 100, max: 1100}
	assert.Equal(t, 0, r.scale(100, 320))
	assert.Equal(t, 319, r.scale(1100, 320))
	assert.Equal(t, 159, r.scale(600, 320))
	assert.Equal(t, 0, r.scale(-50, 320), "below range saturates")
	assert.Equal(t, 319, r.scale(5000, 320), "above range saturates")
	assert.Equal(t, 0, axisRange{}.scale(10, 320), "empty range")
}

func TestParserBothEventSizes(t *testing.T) {
	for _, size := range []int{16, 24} {
		var got []rawEvent
		p := eventParser{size: size}
		stream := encode(size, rawEvent{evAbs, absX, 1234}, rawEvent{evKey, btnTouch, 1}, syn())

		// Split mid-record to check buffering.
		p.feed(stream[:size+3], func(typ, code uint16, v int32) { got = append(got, rawEvent{typ, code, v}) })
		assert.Len(t, got, 1)
		p.feed(stream[size+3:], func(typ, code uint16, v int32) { got = append(got, rawEvent{typ, code, v}) })

		assert.Equal(t, []rawEvent{{evAbs, absX, 1234}, {evKey, btnTouch, 1}, syn()}, got, "size %d", size)
	}
}

func TestTrackerSingleTouch(t *testing.T) {
	tr := testTracker(testCfg)
	tr.handle(evKey, btnTouch, 1)
	tr.handle(evAbs, absX, 4095)
	tr.handle(evAbs, absY, 0)

	present, _, _ := tr.touch()
	assert.False(t, present, "nothing is visible before SYN_REPORT")

	tr.handle(evSyn, synReport, 0)
	present, x, y := tr.touch()
	assert.True(t, present)
	assert.Equal(t, 319, x)
	assert.Equal(t, 0, y)

	tr.handle(evKey, btnTouch, 0)
	tr.handle(evSyn, synReport, 0)
	present, _, _ = tr.touch()
	assert.False(t, present)
}

func TestTrackerMultitouchSlotZeroOnly(t *testing.T) {
	tr := testTracker(testCfg)
	tr.handle(evAbs, absMTSlot, 0)
	tr.handle(evAbs, absMTTrackingID, 7)
	tr.handle(evAbs, absMTPositionX, 2048)
	tr.handle(evAbs, absMTPositionY, 2048)
	tr.handle(evAbs, absMTSlot, 1)
	tr.handle(evAbs, absMTTrackingID, 8)
	tr.handle(evAbs, absMTPositionX, 0)
	tr.handle(evSyn, synReport, 0)

	present, x, y := tr.touch()
	assert.True(t, present)
	assert.Equal(t, 159, x)
	assert.Equal(t, 119, y)

	tr.handle(evAbs, absMTSlot, 0)
	tr.handle(evAbs, absMTTrackingID, -1)
	tr.handle(evSyn, synReport, 0)
	present, _, _ = tr.touch()
	assert.False(t, present)
}

func TestTrackerDroppedFrameDiscarded(t *testing.T) {
	tr := testTracker(testCfg)
	tr.handle(evKey, btnTouch, 1)
	tr.handle(evSyn, synDropped, 0)
	tr.handle(evSyn, synReport, 0)
	present, _, _ := tr.touch()
	assert.False(t, present)

	tr.handle(evSyn, synReport, 0)
	present, _, _ = tr.touch()
	assert.True(t, present)
}

func TestTrackerOrientation(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		wantX int
		wantY int
	}{
		{name: "plain", cfg: testCfg, wantX: 0, wantY: 239},
		{name: "invert x", cfg: Config{Width: 320, Height: 240, InvertX: true}, wantX: 319, wantY: 239},
		{name: "invert y", cfg: Config{Width: 320, Height: 240, InvertY: true}, wantX: 0, wantY: 0},
		{name: "swap", cfg: Config{Width: 320, Height: 240, SwapXY: true}, wantX: 319, wantY: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := testTracker(tt.cfg)
			tr.handle(evKey, btnTouch, 1)
			tr.handle(evAbs, absX, 0)
			tr.handle(evAbs, absY, 4095)
			tr.handle(evSyn, synReport, 0)
			_, x, y := tr.touch()
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestPanelRun(t *testing.T) {
	pr, pw := io.Pipe()
	p := newPanel(pr, 24, testTracker(testCfg), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	_, err := pw.Write(encode(24, rawEvent{evKey, btnTouch, 1}, rawEvent{evAbs, absX, 2048}, rawEvent{evAbs, absY, 0}, syn()))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		present, _, _ := p.Touch()
		return present
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	present, _, _ := p.Touch()
	assert.False(t, present, "contact is released when reading stops")
}

func TestPanelRunDeviceGone(t *testing.T) {
	pr, pw := io.Pipe()
	p := newPanel(pr, 16, testTracker(testCfg), nil)
	require.NoError(t, pw.Close())
	assert.ErrorIs(t, p.Run(context.Background()), io.ErrUnexpectedEOF)
}
