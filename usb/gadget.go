// Package usb describes the emulated device for the Linux USB gadget
// framework and writes that description into configfs.
package usb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alia5/netpad/usb/hid"
)

// DefaultConfigFS is where configfs exposes USB gadgets.
const DefaultConfigFS = "/sys/kernel/config/usb_gadget"

// DefaultUDCDir lists the device controllers a gadget can bind to.
const DefaultUDCDir = "/sys/class/udc"

const (
	langUS     = "0x409"
	configName = "c.1"
)

// Gadget holds the static descriptor data of a device.
type Gadget struct {
	// Name is the gadget directory below the configfs root.
	Name string

	VendorID  uint16
	ProductID uint16
	BcdDevice uint16
	BcdUSB    uint16

	Manufacturer string
	Product      string
	SerialNumber string

	// MaxPower in mA.
	MaxPower uint16

	Functions []HIDFunction
}

// HIDFunction is one f_hid instance. Each becomes a /dev/hidgN node once the
// gadget is bound.
type HIDFunction struct {
	Name         string
	Protocol     uint8
	SubClass     uint8
	ReportLength uint16
	ReportDesc   hid.Data
}

// Attribute is one configfs file relative to the gadget directory.
type Attribute struct {
	Path  string
	Value []byte
}

func hex16(v uint16) []byte { return []byte(fmt.Sprintf("0x%04x\n", v)) }

func text(s string) []byte { return []byte(s + "\n") }

// Attributes lists every file to write, parents before children.
func (g Gadget) Attributes() []Attribute {
	strs := filepath.Join("strings", langUS)
	cfg := filepath.Join("configs", configName)

	attrs := []Attribute{
		{Path: "idVendor", Value: hex16(g.VendorID)},
		{Path: "idProduct", Value: hex16(g.ProductID)},
		{Path: "bcdDevice", Value: hex16(g.BcdDevice)},
		{Path: "bcdUSB", Value: hex16(g.BcdUSB)},
		{Path: filepath.Join(strs, "manufacturer"), Value: text(g.Manufacturer)},
		{Path: filepath.Join(strs, "product"), Value: text(g.Product)},
		{Path: filepath.Join(strs, "serialnumber"), Value: text(g.SerialNumber)},
		{Path: filepath.Join(cfg, strs, "configuration"), Value: text("HID")},
		{Path: filepath.Join(cfg, "MaxPower"), Value: text(fmt.Sprint(g.MaxPower))},
	}
	for _, f := range g.Functions {
		dir := filepath.Join("functions", f.Name)
		attrs = append(attrs,
			Attribute{Path: filepath.Join(dir, "protocol"), Value: text(fmt.Sprint(f.Protocol))},
			Attribute{Path: filepath.Join(dir, "subclass"), Value: text(fmt.Sprint(f.SubClass))},
			Attribute{Path: filepath.Join(dir, "report_length"), Value: text(fmt.Sprint(f.ReportLength))},
			Attribute{Path: filepath.Join(dir, "report_desc"), Value: []byte(f.ReportDesc)},
		)
	}
	return attrs
}

// Create writes the gadget below root and links every function into the
// configuration. It does not bind the gadget; see Bind.
func (g Gadget) Create(root string) error {
	if g.Name == "" {
		return errors.New("usb: gadget name is empty")
	}
	base := filepath.Join(root, g.Name)
	for _, a := range g.Attributes() {
		p := filepath.Join(base, a.Path)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("usb: create %s: %w", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, a.Value, 0o644); err != nil {
			return fmt.Errorf("usb: write %s: %w", a.Path, err)
		}
	}
	for _, f := range g.Functions {
		link := filepath.Join(base, "configs", configName, f.Name)
		if _, err := os.Lstat(link); err == nil {
			continue
		}
		if err := os.Symlink(filepath.Join(base, "functions", f.Name), link); err != nil {
			return fmt.Errorf("usb: link %s: %w", f.Name, err)
		}
	}
	return nil
}

// Bind attaches the gadget to a device controller. An empty udc selects
// the first controller listed in udcDir.
func (g Gadget) Bind(root, udcDir, udc string) (string, error) {
	if udc == "" {
		udcs, err := ListUDCs(udcDir)
		if err != nil {
			return "", err
		}
		if len(udcs) == 0 {
			return "", fmt.Errorf("usb: no device controller in %s", udcDir)
		}
		udc = udcs[0]
	}
	if err := os.WriteFile(filepath.Join(root, g.Name, "UDC"), text(udc), 0o644); err != nil {
		return "", fmt.Errorf("usb: bind %s: %w", udc, err)
	}
	return udc, nil
}

// ListUDCs returns the names of the available device controllers.
func ListUDCs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("usb: list controllers: %w", err)
	}
	var out []string
	for _, e := range entries {
		if name := strings.TrimSpace(e.Name()); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}
