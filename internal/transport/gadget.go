package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Alia5/netpad/device/switchpad"
	"github.com/Alia5/netpad/internal/log"
)

// Gadget writes reports to a Linux USB gadget HID function node such as
// /dev/hidg0 and drains the output reports the console sends back.
type Gadget struct {
	f       *os.File
	timeout time.Duration
	logger  *slog.Logger
	raw     log.RawLogger
}

// OpenGadget opens the function node. A positive timeout bounds each write
// so an unplugged cable cannot stall the control loop.
func OpenGadget(path string, timeout time.Duration, logger *slog.Logger, raw log.RawLogger) (*Gadget, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open hid gadget %s: %w", path, err)
	}
	g := &Gadget{f: f, timeout: timeout, logger: logger, raw: raw}
	go g.readOutputs()
	return g, nil
}

func (g *Gadget) WriteReport(report []byte) error {
	if g.timeout > 0 {
		// Not every node supports deadlines; writes then block as usual.
		_ = g.f.SetWriteDeadline(time.Now().Add(g.timeout))
	}
	_, err := g.f.Write(report)
	return err
}

func (g *Gadget) readOutputs() {
	buf := make([]byte, 64)
	for {
		n, err := g.f.Read(buf)
		if err != nil {
			if !errors.Is(err, os.ErrClosed) && !errors.Is(err, io.EOF) {
				g.logger.Debug("hid gadget read stopped", "error", err)
			}
			return
		}
		g.raw.Log(false, buf[:n])
		var out switchpad.OutputState
		if err := out.UnmarshalBinary(buf[:n]); err == nil {
			g.logger.Log(context.Background(), log.LevelTrace, "hid output report", "payload", fmt.Sprintf("% x", out.Payload))
		}
	}
}

func (g *Gadget) Close() error {
	return g.f.Close()
}
