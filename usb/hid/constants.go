package hid

// Usage pages, per HID Usage Tables.
const (
	UsagePageGenericDesktop uint16 = 0x01
	UsagePageButton         uint16 = 0x09
	UsagePageVendor         uint16 = 0xFF00
)

// Generic Desktop usages.
const (
	UsageJoystick  uint16 = 0x04
	UsageGamePad   uint16 = 0x05
	UsageX         uint16 = 0x30
	UsageY         uint16 = 0x31
	UsageZ         uint16 = 0x32
	UsageRx        uint16 = 0x33
	UsageRy        uint16 = 0x34
	UsageRz        uint16 = 0x35
	UsageHatSwitch uint16 = 0x39
)

// Unit values used by game controllers. The nibbles are
// system=English Rotation and rotation exponent 1.
const (
	UnitNone    uint32 = 0x00
	UnitDegrees uint32 = 0x14
)

type CollectionKind uint8

const (
	CollectionPhysical    CollectionKind = 0x00
	CollectionApplication CollectionKind = 0x01
	CollectionLogical     CollectionKind = 0x02
)

// MainFlags are the data bits of Input, Output and Feature items. Each pair
// shares a bit; the zero value is the first of the pair.
type MainFlags uint8

const (
	MainData  MainFlags = 0x00
	MainConst MainFlags = 0x01

	MainArray MainFlags = 0x00
	MainVar   MainFlags = 0x02

	MainAbs MainFlags = 0x00
	MainRel MainFlags = 0x04

	MainNoWrap MainFlags = 0x00
	MainWrap   MainFlags = 0x08

	MainLinear    MainFlags = 0x00
	MainNonLinear MainFlags = 0x10

	MainPreferredState   MainFlags = 0x00
	MainNoPreferredState MainFlags = 0x20

	MainNoNullPosition MainFlags = 0x00
	MainNullState      MainFlags = 0x40
)
