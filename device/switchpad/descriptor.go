package switchpad

import (
	"github.com/Alia5/netpad/usb"
	"github.com/Alia5/netpad/usb/hid"
)

// vendorOutputUsage tags the 8-byte vendor output report.
const vendorOutputUsage uint16 = 0x2621

// Report is the HID report descriptor of the pad: 14 buttons padded to
// 16, a 4-bit hat with null state, four 8-bit axes, one vendor input byte
// and an 8-byte vendor output report.
var Report = hid.Report{Items: []hid.Item{
	hid.UsagePage{Page: hid.UsagePageGenericDesktop},
	hid.Usage{Usage: hid.UsageGamePad},
	hid.Collection{Kind: hid.CollectionApplication, Items: []hid.Item{
		hid.LogicalMinimum{Min: 0},
		hid.LogicalMaximum{Max: 1},
		hid.PhysicalMinimum{Min: 0},
		hid.PhysicalMaximum{Max: 1},
		hid.ReportSize{Bits: 1},
		hid.ReportCount{Count: 16},
		hid.UsagePage{Page: hid.UsagePageButton},
		hid.UsageMinimum{Min: 0x01},
		hid.UsageMaximum{Max: 0x10},
		hid.Input{Flags: hid.MainData | hid.MainVar | hid.MainAbs},

		hid.UsagePage{Page: hid.UsagePageGenericDesktop},
		hid.LogicalMaximum{Max: 7},
		hid.PhysicalMaximum{Max: 315},
		hid.ReportSize{Bits: 4},
		hid.ReportCount{Count: 1},
		hid.Unit{Unit: hid.UnitDegrees},
		hid.Usage{Usage: hid.UsageHatSwitch},
		hid.Input{Flags: hid.MainData | hid.MainVar | hid.MainAbs | hid.MainNullState},
		hid.Unit{Unit: hid.UnitNone},
		hid.ReportCount{Count: 1},
		hid.Input{Flags: hid.MainConst},

		hid.LogicalMaximum{Max: 255},
		hid.PhysicalMaximum{Max: 255},
		hid.Usage{Usage: hid.UsageX},
		hid.Usage{Usage: hid.UsageY},
		hid.Usage{Usage: hid.UsageZ},
		hid.Usage{Usage: hid.UsageRz},
		hid.ReportSize{Bits: 8},
		hid.ReportCount{Count: 4},
		hid.Input{Flags: hid.MainData | hid.MainVar | hid.MainAbs},

		hid.UsagePage{Page: hid.UsagePageVendor},
		hid.Usage{Usage: 0x20},
		hid.ReportCount{Count: 1},
		hid.Input{Flags: hid.MainData | hid.MainVar | hid.MainAbs},
		hid.Usage{Usage: vendorOutputUsage},
		hid.ReportCount{Count: OutputStateSize},
		hid.Output{Flags: hid.MainData | hid.MainVar | hid.MainAbs},
	}},
}}

// ReportDescriptor returns the encoded report descriptor.
func ReportDescriptor() hid.Data {
	return Report.MustBytes()
}

// Gadget describes the pad for the Linux USB gadget configfs.
func Gadget(name, serial string) usb.Gadget {
	return usb.Gadget{
		Name:         name,
		VendorID:     VendorID,
		ProductID:    ProductID,
		BcdDevice:    BcdDevice,
		BcdUSB:       0x0200,
		Manufacturer: Manufacturer,
		Product:      Product,
		SerialNumber: serial,
		MaxPower:     500,
		Functions: []usb.HIDFunction{{
			Name:         "hid.usb0",
			ReportLength: InputStateSize,
			ReportDesc:   ReportDescriptor(),
		}},
	}
}
