// Package display renders the reconciled controller state for humans:
// a terminal status line, a system tray entry and desktop notifications.
package display

import (
	"fmt"
	"strings"

	"github.com/Alia5/netpad/internal/input"
)

// Multi fans a View out to several projectors in order. Nil entries are
// skipped.
type Multi []input.Projector

func (m Multi) Project(v input.View) {
	for _, p := range m {
		if p != nil {
			p.Project(v)
		}
	}
}

// ActiveLabel is the label of the latest active input, or "-" when there is
// none.
func ActiveLabel(v input.View) string {
	if v.Active.IsNone() {
		return "-"
	}
	return v.Active.Label()
}

// StatusLine formats v as a single line of key=value pairs.
func StatusLine(v input.View) string {
	var held []string
	for _, c := range input.Controls() {
		if v.Effective[c] {
			held = append(held, c.Label())
		}
	}
	heldStr := "-"
	if len(held) > 0 {
		heldStr = strings.Join(held, ",")
	}
	hid := "ok"
	if !v.TransportHealthy {
		hid = "down"
	}
	touch := "off"
	if v.TouchEnabled {
		touch = "on"
	}
	l, r := v.Sticks[input.StickLeft], v.Sticks[input.StickRight]
	return fmt.Sprintf("active=%s presses=%d held=%s lstick=(%d,%d) rstick=(%d,%d) hid=%s touch=%s",
		ActiveLabel(v), v.Presses, heldStr, l.X, l.Y, r.X, r.Y, hid, touch)
}
