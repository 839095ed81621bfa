package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/netpad/device/switchpad"
	"github.com/Alia5/netpad/usb"
	"github.com/Alia5/netpad/usb/hid"
)

// Descriptor prints the HID report descriptor or installs the USB gadget.
type Descriptor struct {
	Format string `help:"Output format: dump (annotated), hex or raw" enum:"dump,hex,raw" default:"dump"`
	Output string `help:"Write to this file instead of stdout" type:"path" short:"o"`

	Configfs bool   `help:"Create the USB HID gadget in configfs instead of printing"`
	Root     string `help:"configfs usb_gadget directory" default:"/sys/kernel/config/usb_gadget" env:"NETPAD_CONFIGFS"`
	Name     string `help:"Gadget name" default:"netpad" env:"NETPAD_GADGET_NAME"`
	Serial   string `help:"USB serial number" default:"000000000001" env:"NETPAD_GADGET_SERIAL"`
	Bind     bool   `help:"Bind the gadget to a device controller after creating it"`
	UDC      string `help:"Device controller to bind (default: first in /sys/class/udc)" env:"NETPAD_UDC"`
}

// Run is called by Kong when the descriptor command is executed.
func (d *Descriptor) Run(logger *slog.Logger) error {
	if d.Configfs {
		return d.createGadget(logger)
	}

	out := io.Writer(os.Stdout)
	if d.Output != "" {
		f, err := os.Create(d.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return WriteDescriptor(out, d.Format, switchpad.ReportDescriptor())
}

// WriteDescriptor renders desc in format.
func WriteDescriptor(w io.Writer, format string, desc hid.Data) error {
	switch format {
	case "dump":
		return hid.Dump(w, desc)
	case "hex":
		_, err := fmt.Fprintln(w, hex.EncodeToString(desc))
		return err
	case "raw":
		_, err := w.Write(desc)
		return err
	}
	return fmt.Errorf("unknown descriptor format %q", format)
}

func (d *Descriptor) createGadget(logger *slog.Logger) error {
	g := switchpad.Gadget(d.Name, d.Serial)
	if err := g.Create(d.Root); err != nil {
		return err
	}
	logger.Info("USB gadget created", "name", d.Name, "root", d.Root)
	if !d.Bind {
		return nil
	}
	udc, err := g.Bind(d.Root, usb.DefaultUDCDir, d.UDC)
	if err != nil {
		return err
	}
	logger.Info("USB gadget bound", "udc", udc)
	return nil
}
