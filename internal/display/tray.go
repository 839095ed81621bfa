package display

import (
	"context"
	"fmt"
	"sync"

	"fyne.io/systray"

	"github.com/Alia5/netpad/internal/input"
)

// Tray mirrors the active input into the system tray title and tooltip.
type Tray struct {
	mu          sync.Mutex
	title       string
	setTitle    func(string)
	setTooltip  func(string)
	lastTitle   string
	lastTooltip string
}

// NewTray creates a Tray projector. The tray itself must be running, see
// RunTray.
func NewTray(title string) *Tray {
	return &Tray{
		title:      title,
		setTitle:   systray.SetTitle,
		setTooltip: systray.SetTooltip,
	}
}

func (t *Tray) Project(v input.View) {
	title := fmt.Sprintf("%s %s", t.title, ActiveLabel(v))
	tooltip := StatusLine(v)

	t.mu.Lock()
	defer t.mu.Unlock()
	if title != t.lastTitle {
		t.setTitle(title)
		t.lastTitle = title
	}
	if tooltip != t.lastTooltip {
		t.setTooltip(tooltip)
		t.lastTooltip = tooltip
	}
}

// RunTray runs the systray event loop on the calling goroutine and calls run
// once the tray is ready. The context passed to run is cancelled when the
// user picks "Quit". RunTray returns run's error after the tray has exited.
func RunTray(ctx context.Context, title string, run func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	onReady := func() {
		systray.SetTitle(title)
		systray.SetTooltip(title)
		quit := systray.AddMenuItem("Quit", "Stop "+title)
		go func() {
			select {
			case <-quit.ClickedCh:
				cancel()
			case <-ctx.Done():
			}
		}()
		go func() {
			errCh <- run(ctx)
			systray.Quit()
		}()
	}
	systray.Run(onReady, nil)
	return <-errCh
}
