package transport

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Alia5/netpad/internal/log"
)

// Transport kinds.
const (
	KindGadget = "gadget"
	KindSerial = "serial"
	KindDryRun = "log"
)

// Config selects and configures the HID transport.
type Config struct {
	Kind         string        `help:"HID transport: gadget, serial or log (dry run)" enum:"gadget,serial,log" default:"gadget" env:"NETPAD_HID_TRANSPORT"`
	Device       string        `help:"USB gadget HID function node" default:"/dev/hidg0" env:"NETPAD_HID_DEVICE"`
	SerialPort   string        `help:"Serial port of the HID bridge" env:"NETPAD_HID_SERIAL_PORT"`
	Baud         int           `help:"Baud rate of the HID bridge" default:"115200" env:"NETPAD_HID_BAUD"`
	WriteTimeout time.Duration `help:"Maximum time a single report write may block" default:"20ms" env:"NETPAD_HID_WRITE_TIMEOUT"`
}

// Open creates the configured report writer.
func Open(cfg Config, logger *slog.Logger, raw log.RawLogger) (ReportWriter, error) {
	switch cfg.Kind {
	case KindGadget, "":
		return OpenGadget(cfg.Device, cfg.WriteTimeout, logger, raw)
	case KindSerial:
		if cfg.SerialPort == "" {
			ports, err := SerialPorts()
			if err != nil || len(ports) == 0 {
				return nil, fmt.Errorf("no serial port configured and none detected")
			}
			cfg.SerialPort = ports[0]
			logger.Info("using first detected serial port", "port", cfg.SerialPort, "available", ports)
		}
		return OpenSerial(cfg.SerialPort, cfg.Baud)
	case KindDryRun:
		return DryRun{}, nil
	}
	return nil, fmt.Errorf("unknown hid transport %q", cfg.Kind)
}
