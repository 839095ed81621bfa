package touch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

// Panel is an open touch device.
type Panel struct {
	*tracker
	r      io.ReadCloser
	parser eventParser
	logger *slog.Logger
}

func newPanel(r io.ReadCloser, eventSize int, t *tracker, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.Default()
	}
	return &Panel{tracker: t, r: r, parser: eventParser{size: eventSize}, logger: logger}
}

// Touch returns the contact committed by the last complete frame.
func (p *Panel) Touch() (present bool, x, y int) {
	return p.tracker.touch()
}

// Run reads events until ctx is cancelled or the device goes away. The
// contact is released when reading stops so no touch stays stuck.
func (p *Panel) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = p.r.Close() })
	defer stop()
	defer p.tracker.lift()

	buf := make([]byte, 64*p.parser.size)
	for {
		n, err := p.r.Read(buf)
		if n > 0 {
			p.parser.feed(buf[:n], p.tracker.handle)
		}
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, os.ErrClosed) {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
}

// Close releases the device.
func (p *Panel) Close() error {
	err := p.r.Close()
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
