package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger records raw HID reports exchanged with the console.
type RawLogger interface {
	// Log records one report. outbound is true for reports sent to the
	// console.
	Log(outbound bool, data []byte)
}

// NewRaw returns a RawLogger writing to w. A nil w discards everything.
func NewRaw(w io.Writer) RawLogger {
	if w == nil {
		return nopRaw{}
	}
	return &rawLogger{w: w, now: time.Now}
}

type nopRaw struct{}

func (nopRaw) Log(bool, []byte) {}

type rawLogger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// Log writes one line: time, direction, length and the report bytes in hex.
func (l *rawLogger) Log(outbound bool, data []byte) {
	dir := "<<"
	if outbound {
		dir = ">>"
	}
	line := fmt.Sprintf("%s %s %3d % x\n",
		l.now().Format("15:04:05.000000"), dir, len(data), data)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, line)
}
