package display

import (
	"log/slog"
	"sync"

	"github.com/ncruces/zenity"

	"github.com/Alia5/netpad/internal/input"
)

// Notifier raises a desktop notification whenever the HID transport goes
// down or comes back. The first View only records the initial state.
type Notifier struct {
	title  string
	logger *slog.Logger
	notify func(text string, opts ...zenity.Option) error

	mu      sync.Mutex
	seen    bool
	healthy bool
	wg      sync.WaitGroup
}

// NewNotifier creates a Notifier.
func NewNotifier(title string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{title: title, logger: logger, notify: zenity.Notify}
}

func (n *Notifier) Project(v input.View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.seen {
		n.seen, n.healthy = true, v.TransportHealthy
		return
	}
	if v.TransportHealthy == n.healthy {
		return
	}
	n.healthy = v.TransportHealthy

	text, icon := "HID transport recovered", zenity.InfoIcon
	if !v.TransportHealthy {
		text, icon = "HID transport unavailable", zenity.WarningIcon
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.notify(text, zenity.Title(n.title), icon); err != nil {
			n.logger.Debug("desktop notification failed", "error", err)
		}
	}()
}

// Wait blocks until all pending notifications have been delivered.
func (n *Notifier) Wait() { n.wg.Wait() }
