// Package touch reads a single-contact touch panel from a Linux evdev node
// and reports the contact in screen coordinates. Panel satisfies
// input.Panel.
package touch

import (
	"encoding/binary"
	"errors"
	"sync"
)

// ErrUnsupported is returned by Open on platforms without evdev.
var ErrUnsupported = errors.New("touch: evdev is not supported on this platform")

// Event types and codes used by touch panels.
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	synReport  = 0x00
	synDropped = 0x03

	btnTouch = 0x14A

	absX               = 0x00
	absY               = 0x01
	absMTSlot          = 0x2F
	absMTPositionX     = 0x35
	absMTPositionY     = 0x36
	absMTTrackingID    = 0x39
	noTrackingID int32 = -1
)

// Config describes the panel and how raw coordinates map to the screen.
type Config struct {
	Device  string `help:"Touch panel event device (e.g. /dev/input/event0); empty disables touch input" env:"NETPAD_TOUCH_DEVICE"`
	Width   int    `help:"Screen width in layout pixels" default:"320" env:"NETPAD_TOUCH_WIDTH"`
	Height  int    `help:"Screen height in layout pixels" default:"240" env:"NETPAD_TOUCH_HEIGHT"`
	SwapXY  bool   `help:"Swap panel axes" env:"NETPAD_TOUCH_SWAP_XY"`
	InvertX bool   `help:"Mirror the X axis" env:"NETPAD_TOUCH_INVERT_X"`
	InvertY bool   `help:"Mirror the Y axis" env:"NETPAD_TOUCH_INVERT_Y"`
	Grab    bool   `help:"Grab the device so no other reader sees its events" env:"NETPAD_TOUCH_GRAB"`
}

type axisRange struct {
	min, max int32
}

// scale maps v from r onto [0, size-1].
func (r axisRange) scale(v int32, size int) int {
	if size <= 1 || r.max <= r.min {
		return 0
	}
	if v < r.min {
		v = r.min
	}
	if v > r.max {
		v = r.max
	}
	return int(int64(v-r.min) * int64(size-1) / int64(r.max-r.min))
}

// tracker folds the evdev stream into one contact. Values become visible
// only on SYN_REPORT so a reader never sees X from one frame and Y from
// the next.
type tracker struct {
	cfg    Config
	xRange axisRange
	yRange axisRange

	// pending frame
	down     bool
	rawX     int32
	rawY     int32
	slot     int32
	dropping bool

	mu      sync.Mutex
	present bool
	x, y    int
}

func newTracker(cfg Config, xr, yr axisRange) *tracker {
	return &tracker{cfg: cfg, xRange: xr, yRange: yr}
}

func (t *tracker) handle(typ, code uint16, value int32) {
	switch typ {
	case evSyn:
		switch code {
		case synDropped:
			t.dropping = true
		case synReport:
			if t.dropping {
				// Events up to this report are incomplete.
				t.dropping = false
				return
			}
			t.commit()
		}
	case evKey:
		if code == btnTouch {
			t.down = value != 0
		}
	case evAbs:
		t.handleAbs(code, value)
	}
}

func (t *tracker) handleAbs(code uint16, value int32) {
	switch code {
	case absX:
		t.rawX = value
	case absY:
		t.rawY = value
	case absMTSlot:
		t.slot = value
	case absMTTrackingID:
		if t.slot == 0 {
			t.down = value != noTrackingID
		}
	case absMTPositionX:
		if t.slot == 0 {
			t.rawX = value
		}
	case absMTPositionY:
		if t.slot == 0 {
			t.rawY = value
		}
	}
}

func (t *tracker) commit() {
	rx, ry := t.rawX, t.rawY
	xr, yr := t.xRange, t.yRange
	if t.cfg.SwapXY {
		rx, ry = ry, rx
		xr, yr = yr, xr
	}
	x := xr.scale(rx, t.cfg.Width)
	y := yr.scale(ry, t.cfg.Height)
	if t.cfg.InvertX {
		x = t.cfg.Width - 1 - x
	}
	if t.cfg.InvertY {
		y = t.cfg.Height - 1 - y
	}

	t.mu.Lock()
	t.present, t.x, t.y = t.down, x, y
	t.mu.Unlock()
}

func (t *tracker) touch() (bool, int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.present, t.x, t.y
}

func (t *tracker) lift() {
	t.down = false
	t.mu.Lock()
	t.present = false
	t.mu.Unlock()
}

// eventParser splits a byte stream into input_event records. The record is
// 16 bytes with a 32-bit timeval and 24 bytes with a 64-bit one.
type eventParser struct {
	size int
	buf  []byte
}

func (p *eventParser) feed(chunk []byte, cb func(typ, code uint16, value int32)) {
	p.buf = append(p.buf, chunk...)
	tv := p.size - 8
	for len(p.buf) >= p.size {
		ev := p.buf[:p.size]
		cb(
			binary.LittleEndian.Uint16(ev[tv:tv+2]),
			binary.LittleEndian.Uint16(ev[tv+2:tv+4]),
			int32(binary.LittleEndian.Uint32(ev[tv+4:tv+8])),
		)
		p.buf = p.buf[p.size:]
	}
}
