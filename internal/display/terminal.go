package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/Alia5/netpad/internal/input"
)

// Terminal writes the status line to w. On a terminal the line is rewritten
// in place; otherwise every change is appended as a new line.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	inPlace bool
	last    string
}

// NewTerminal creates a Terminal projector for w.
func NewTerminal(w io.Writer) *Terminal {
	inPlace := false
	if f, ok := w.(*os.File); ok {
		inPlace = term.IsTerminal(int(f.Fd()))
	}
	return &Terminal{w: w, inPlace: inPlace}
}

func (t *Terminal) Project(v input.View) {
	line := StatusLine(v)

	t.mu.Lock()
	defer t.mu.Unlock()
	if line == t.last {
		return
	}
	t.last = line
	if t.inPlace {
		_, _ = fmt.Fprintf(t.w, "\r\033[K%s", line)
		return
	}
	_, _ = fmt.Fprintln(t.w, line)
}

// Finish terminates an in-place line so later output starts on a fresh row.
func (t *Terminal) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inPlace && t.last != "" {
		_, _ = fmt.Fprintln(t.w)
	}
}
